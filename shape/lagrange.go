package shape

import (
	"fmt"

	"github.com/notargets/gocut/utils"
)

// Lagrange is a nodal basis on a reference shape. The first NumPrimary()
// functions belong to the element vertices, the remaining ones to edges.
type Lagrange struct {
	Shape Shape
	Order int
}

func NewLagrange(s Shape, order int) (l *Lagrange, err error) {
	switch {
	case order == 1:
	case order == 2 && (s == Line || s == Triangle):
	default:
		err = fmt.Errorf("lagrange basis of order %d is not available on %s", order, s)
		return
	}
	l = &Lagrange{Shape: s, Order: order}
	return
}

func (l *Lagrange) NumPrimary() int { return l.Shape.NumVertices() }

func (l *Lagrange) NumFunctions() int {
	if l.Order == 1 {
		return l.Shape.NumVertices()
	}
	return l.Shape.NumVertices() + len(l.Shape.Edges())
}

// Nodes returns the reference support point of every shape function
func (l *Lagrange) Nodes() (nodes [][]float64) {
	nodes = l.Shape.Vertices()
	if l.Order == 1 {
		return
	}
	verts := l.Shape.Vertices()
	for _, e := range l.Shape.Edges() {
		mid := make([]float64, l.Shape.Dim())
		for d := range mid {
			mid[d] = 0.5 * (verts[e[0]][d] + verts[e[1]][d])
		}
		nodes = append(nodes, mid)
	}
	return
}

// Evaluate returns the value of every shape function at xi
func (l *Lagrange) Evaluate(xi []float64) (phi []float64) {
	l.checkCoord(xi)
	switch l.Shape {
	case Line:
		x := xi[0]
		if l.Order == 1 {
			return []float64{1 - x, x}
		}
		return []float64{(1 - x) * (1 - 2*x), x * (2*x - 1), 4 * x * (1 - x)}
	case Triangle:
		lam := [3]float64{1 - xi[0] - xi[1], xi[0], xi[1]}
		if l.Order == 1 {
			return lam[:]
		}
		phi = make([]float64, 6)
		for i := 0; i < 3; i++ {
			phi[i] = lam[i] * (2*lam[i] - 1)
		}
		for k, e := range l.Shape.Edges() {
			phi[3+k] = 4 * lam[e[0]] * lam[e[1]]
		}
		return
	case Quad:
		x, y := xi[0], xi[1]
		return []float64{(1 - x) * (1 - y), x * (1 - y), x * y, (1 - x) * y}
	case Tet:
		return []float64{1 - xi[0] - xi[1] - xi[2], xi[0], xi[1], xi[2]}
	case Hex:
		x, y, z := xi[0], xi[1], xi[2]
		q := []float64{(1 - x) * (1 - y), x * (1 - y), x * y, (1 - x) * y}
		phi = make([]float64, 8)
		for i := 0; i < 4; i++ {
			phi[i] = q[i] * (1 - z)
			phi[i+4] = q[i] * z
		}
		return
	}
	panic(fmt.Errorf("unknown shape %d", l.Shape))
}

// Gradient returns the reference derivatives, one row per shape function
func (l *Lagrange) Gradient(xi []float64) (G utils.Matrix) {
	l.checkCoord(xi)
	var (
		dim = l.Shape.Dim()
	)
	G = utils.NewMatrix(l.NumFunctions(), dim)
	switch l.Shape {
	case Line:
		x := xi[0]
		if l.Order == 1 {
			G.Set(0, 0, -1).Set(1, 0, 1)
			return
		}
		G.Set(0, 0, 4*x-3).Set(1, 0, 4*x-1).Set(2, 0, 4-8*x)
	case Triangle:
		var (
			lam  = [3]float64{1 - xi[0] - xi[1], xi[0], xi[1]}
			dLam = [3][2]float64{{-1, -1}, {1, 0}, {0, 1}}
		)
		for i := 0; i < 3; i++ {
			fac := 1.
			if l.Order == 2 {
				fac = 4*lam[i] - 1
			}
			G.Set(i, 0, fac*dLam[i][0]).Set(i, 1, fac*dLam[i][1])
		}
		if l.Order == 1 {
			return
		}
		for k, e := range l.Shape.Edges() {
			a, b := e[0], e[1]
			for d := 0; d < 2; d++ {
				G.Set(3+k, d, 4*(lam[b]*dLam[a][d]+lam[a]*dLam[b][d]))
			}
		}
	case Quad:
		x, y := xi[0], xi[1]
		G.Set(0, 0, -(1 - y)).Set(0, 1, -(1 - x))
		G.Set(1, 0, 1-y).Set(1, 1, -x)
		G.Set(2, 0, y).Set(2, 1, x)
		G.Set(3, 0, -y).Set(3, 1, 1-x)
	case Tet:
		G.Set(0, 0, -1).Set(0, 1, -1).Set(0, 2, -1)
		G.Set(1, 0, 1).Set(2, 1, 1).Set(3, 2, 1)
	case Hex:
		var (
			x, y, z = xi[0], xi[1], xi[2]
			q       = [4]float64{(1 - x) * (1 - y), x * (1 - y), x * y, (1 - x) * y}
			dq      = [4][2]float64{{-(1 - y), -(1 - x)}, {1 - y, -x}, {y, x}, {-y, 1 - x}}
		)
		for i := 0; i < 4; i++ {
			G.Set(i, 0, dq[i][0]*(1-z)).Set(i, 1, dq[i][1]*(1-z)).Set(i, 2, -q[i])
			G.Set(i+4, 0, dq[i][0]*z).Set(i+4, 1, dq[i][1]*z).Set(i+4, 2, q[i])
		}
	}
	return
}

func (l *Lagrange) checkCoord(xi []float64) {
	if len(xi) != l.Shape.Dim() {
		err := fmt.Errorf("local coordinate of length %d on %s, need %d", len(xi), l.Shape, l.Shape.Dim())
		panic(err)
	}
}
