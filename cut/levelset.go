package cut

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// LevelSet is an implicit geometry: Eval is negative inside the physical
// domain and approximates the signed distance to its boundary.
type LevelSet interface {
	Eval(x []float64) float64
}

func Inside(ls LevelSet, x []float64) bool { return ls.Eval(x) <= 0 }

type Sphere struct {
	Center []float64
	Radius float64
}

func (s Sphere) Eval(x []float64) float64 {
	return floats.Distance(x, s.Center, 2) - s.Radius
}

// HalfSpace is the side of the plane through Point that Normal points away
// from
type HalfSpace struct {
	Point, Normal []float64
}

func (h HalfSpace) Eval(x []float64) (val float64) {
	for d := range x {
		val += (x[d] - h.Point[d]) * h.Normal[d]
	}
	return val / floats.Norm(h.Normal, 2)
}

// Cylinder of infinite length around the line through Point along Axis. In
// two dimensions it is a disc of the given radius.
type Cylinder struct {
	Point, Axis []float64
	Radius      float64
}

func (c Cylinder) Eval(x []float64) float64 {
	var (
		rel   = make([]float64, len(x))
		axisN = floats.Norm(c.Axis, 2)
	)
	floats.SubTo(rel, x, c.Point)
	if len(x) == 3 {
		along := floats.Dot(rel, c.Axis) / axisN
		floats.AddScaled(rel, -along/axisN, c.Axis)
	}
	return floats.Norm(rel, 2) - c.Radius
}

type Union []LevelSet

func (u Union) Eval(x []float64) float64 {
	val := math.Inf(1)
	for _, ls := range u {
		val = math.Min(val, ls.Eval(x))
	}
	return val
}

type Intersection []LevelSet

func (in Intersection) Eval(x []float64) float64 {
	val := math.Inf(-1)
	for _, ls := range in {
		val = math.Max(val, ls.Eval(x))
	}
	return val
}

type Complement struct {
	LevelSet
}

func (c Complement) Eval(x []float64) float64 { return -c.LevelSet.Eval(x) }
