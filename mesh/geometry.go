package mesh

import (
	"fmt"
	"math"

	"github.com/notargets/gocut/shape"
	"github.com/notargets/gocut/utils"
)

func (m *Mesh) ElementShape(elem int) shape.Shape { return m.ElementTypes[elem] }

// geometryBasis is the vertex interpolant of the element's reference shape
func (m *Mesh) geometryBasis(elem int) *shape.Lagrange {
	return &shape.Lagrange{Shape: m.ElementTypes[elem], Order: 1}
}

// Position maps the local coordinate xi of element elem to global space
func (m *Mesh) Position(elem int, xi []float64) (x []float64) {
	var (
		verts = m.EtoV[elem]
		phi   = m.geometryBasis(elem).Evaluate(xi)
	)
	x = make([]float64, m.Dim)
	for i, v := range verts {
		for d := 0; d < m.Dim; d++ {
			x[d] += phi[i] * m.Vertices[v][d]
		}
	}
	return
}

// Jacobian returns dx/dxi at xi, of size [Dim, shape dim]
func (m *Mesh) Jacobian(elem int, xi []float64) (J utils.Matrix) {
	var (
		verts = m.EtoV[elem]
		G     = m.geometryBasis(elem).Gradient(xi)
		_, nl = G.Dims()
	)
	J = utils.NewMatrix(m.Dim, nl)
	for i, v := range verts {
		for d := 0; d < m.Dim; d++ {
			for k := 0; k < nl; k++ {
				J.Set(d, k, J.At(d, k)+m.Vertices[v][d]*G.At(i, k))
			}
		}
	}
	return
}

// ContravariantBasis returns J (JᵀJ)⁻¹ at xi, the inverse transpose of the
// Jacobian for full dimensional elements. Its transpose maps a global
// displacement to the local increment.
func (m *Mesh) ContravariantBasis(elem int, xi []float64) (G utils.Matrix, err error) {
	if G, err = m.Jacobian(elem, xi).PseudoInverseT(); err != nil {
		err = fmt.Errorf("degenerate geometry in element %d: %w", elem, err)
	}
	return
}

func (m *Mesh) Centroid(elem int) []float64 {
	return m.Position(elem, m.ElementTypes[elem].Centroid())
}

// Measure is the length, area or volume of the element. Simplices are exact,
// the other shapes use the midpoint rule on a 4^dim subdivision.
func (m *Mesh) Measure(elem int) (meas float64) {
	s := m.ElementTypes[elem]
	if s.IsSimplex() {
		return s.RefMeasure() * m.Jacobian(elem, s.Centroid()).GramDeterminant()
	}
	const n = 4
	pts := s.SamplePoints(n)
	w := s.RefMeasure() / float64(len(pts))
	for _, xi := range pts {
		meas += w * m.Jacobian(elem, xi).GramDeterminant()
	}
	return
}

// Quality summarises element sizes and the conditioning of the geometry map
type Quality struct {
	TotalMeasure           float64
	MinMeasure, MaxMeasure float64
	WorstCondition         float64
	WorstElement           int
}

func (m *Mesh) Quality() (q Quality) {
	q.MinMeasure = math.Inf(1)
	q.WorstElement = -1
	for k := 0; k < m.NumElements; k++ {
		meas := m.Measure(k)
		q.TotalMeasure += meas
		q.MinMeasure = math.Min(q.MinMeasure, meas)
		q.MaxMeasure = math.Max(q.MaxMeasure, meas)
		cond := m.Jacobian(k, m.ElementTypes[k].Centroid()).ConditionNumber()
		if q.WorstElement < 0 || cond > q.WorstCondition {
			q.WorstCondition, q.WorstElement = cond, k
		}
	}
	if m.NumElements == 0 {
		q.MinMeasure = 0
	}
	return
}
