// Package shape describes the reference elements used by the geometry and
// field representations: their dimension, vertices, centroid and measure,
// together with Lagrange shape functions defined on them.
//
// Reference elements are the unit line [0,1], the unit triangle with
// vertices (0,0),(1,0),(0,1), the unit square [0,1]^2, the unit
// tetrahedron and the unit cube [0,1]^3.
package shape

import (
	"fmt"
	"strings"
)

type Shape int

const (
	Line Shape = iota
	Triangle
	Quad
	Tet
	Hex
)

func (s Shape) String() string {
	return [...]string{"Line", "Triangle", "Quad", "Tet", "Hex"}[s]
}

// NewShape parses a shape name, case insensitive
func NewShape(name string) (s Shape, err error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "line", "bar", "interval":
		s = Line
	case "triangle", "tri":
		s = Triangle
	case "quad", "quadrilateral":
		s = Quad
	case "tet", "tetrahedron":
		s = Tet
	case "hex", "hexahedron", "brick":
		s = Hex
	default:
		err = fmt.Errorf("unknown shape: %q", name)
	}
	return
}

func (s Shape) Dim() int {
	return [...]int{1, 2, 2, 3, 3}[s]
}

func (s Shape) NumVertices() int {
	return [...]int{2, 3, 4, 4, 8}[s]
}

func (s Shape) IsSimplex() bool {
	return s == Line || s == Triangle || s == Tet
}

// Vertices returns the reference coordinates of the element vertices in
// their canonical order.
func (s Shape) Vertices() [][]float64 {
	switch s {
	case Line:
		return [][]float64{{0}, {1}}
	case Triangle:
		return [][]float64{{0, 0}, {1, 0}, {0, 1}}
	case Quad:
		return [][]float64{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	case Tet:
		return [][]float64{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	case Hex:
		return [][]float64{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
		}
	}
	panic(fmt.Errorf("unknown shape %d", s))
}

// Edges returns the local vertex pairs of the element edges
func (s Shape) Edges() [][2]int {
	switch s {
	case Line:
		return [][2]int{{0, 1}}
	case Triangle:
		return [][2]int{{0, 1}, {1, 2}, {2, 0}}
	case Quad:
		return [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}}
	case Tet:
		return [][2]int{{0, 1}, {1, 2}, {2, 0}, {0, 3}, {1, 3}, {2, 3}}
	case Hex:
		return [][2]int{
			{0, 1}, {1, 2}, {2, 3}, {3, 0},
			{4, 5}, {5, 6}, {6, 7}, {7, 4},
			{0, 4}, {1, 5}, {2, 6}, {3, 7},
		}
	}
	panic(fmt.Errorf("unknown shape %d", s))
}

// Centroid returns the reference coordinate of the element's centre
func (s Shape) Centroid() []float64 {
	switch s {
	case Line:
		return []float64{0.5}
	case Triangle:
		return []float64{1. / 3., 1. / 3.}
	case Quad:
		return []float64{0.5, 0.5}
	case Tet:
		return []float64{0.25, 0.25, 0.25}
	case Hex:
		return []float64{0.5, 0.5, 0.5}
	}
	panic(fmt.Errorf("unknown shape %d", s))
}

// RefMeasure is the length, area or volume of the reference element
func (s Shape) RefMeasure() float64 {
	return [...]float64{1, 0.5, 1, 1. / 6., 1}[s]
}

// Contains reports whether xi lies inside the reference element, up to tol
func (s Shape) Contains(xi []float64, tol float64) bool {
	var sum float64
	for _, c := range xi {
		if c < -tol || c > 1+tol {
			return false
		}
		sum += c
	}
	if s.IsSimplex() {
		return sum <= 1+tol
	}
	return true
}

// SamplePoints returns the midpoints of a uniform n^dim subdivision of the
// reference element's bounding box that fall inside the element.
func (s Shape) SamplePoints(n int) (pts [][]float64) {
	if n < 1 {
		n = 1
	}
	var (
		dim   = s.Dim()
		total = 1
		h     = 1. / float64(n)
	)
	for d := 0; d < dim; d++ {
		total *= n
	}
	for k := 0; k < total; k++ {
		var (
			xi  = make([]float64, dim)
			ind = k
		)
		for d := 0; d < dim; d++ {
			xi[d] = (float64(ind%n) + 0.5) * h
			ind /= n
		}
		if s.Contains(xi, 0) {
			pts = append(pts, xi)
		}
	}
	return
}
