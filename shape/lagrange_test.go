package shape

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allBases(t *testing.T) (bases []*Lagrange) {
	for _, s := range []Shape{Line, Triangle, Quad, Tet, Hex} {
		l, err := NewLagrange(s, 1)
		require.NoError(t, err)
		bases = append(bases, l)
	}
	for _, s := range []Shape{Line, Triangle} {
		l, err := NewLagrange(s, 2)
		require.NoError(t, err)
		bases = append(bases, l)
	}
	return
}

func TestLagrangeKronecker(t *testing.T) {
	for _, l := range allBases(t) {
		nodes := l.Nodes()
		require.Equal(t, l.NumFunctions(), len(nodes), l.Shape.String())
		for i, xi := range nodes {
			phi := l.Evaluate(xi)
			for j, val := range phi {
				if i == j {
					assert.InDelta(t, 1., val, 1.e-14, "%s order %d", l.Shape, l.Order)
				} else {
					assert.InDelta(t, 0., val, 1.e-14, "%s order %d", l.Shape, l.Order)
				}
			}
		}
	}
}

func TestLagrangePartitionOfUnity(t *testing.T) {
	for _, l := range allBases(t) {
		// also outside the reference element, as used for extrapolation
		for _, xi := range [][]float64{l.Shape.Centroid(), fill(l.Shape.Dim(), -0.7), fill(l.Shape.Dim(), 2.3)} {
			var sum float64
			for _, val := range l.Evaluate(xi) {
				sum += val
			}
			assert.InDelta(t, 1., sum, 1.e-13)
			G := l.Gradient(xi)
			for d := 0; d < l.Shape.Dim(); d++ {
				assert.InDelta(t, 0., G.Col(d).Sum(), 1.e-13)
			}
		}
	}
}

func TestLagrangeGradientFiniteDifference(t *testing.T) {
	h := 1.e-6
	for _, l := range allBases(t) {
		xi := l.Shape.Centroid()
		xi[0] += 0.1
		G := l.Gradient(xi)
		for d := 0; d < l.Shape.Dim(); d++ {
			xp, xm := append([]float64{}, xi...), append([]float64{}, xi...)
			xp[d] += h
			xm[d] -= h
			fp, fm := l.Evaluate(xp), l.Evaluate(xm)
			for i := range fp {
				assert.InDelta(t, (fp[i]-fm[i])/(2*h), G.At(i, d), 1.e-7)
			}
		}
	}
}

func TestShapeReference(t *testing.T) {
	{
		assert.Equal(t, 0.5, Triangle.RefMeasure())
		assert.InDelta(t, 1./6., Tet.RefMeasure(), 1.e-15)
		assert.Equal(t, []float64{0.5}, Line.Centroid())
		assert.Equal(t, 8, Hex.NumVertices())
		assert.Equal(t, 6, len(Tet.Edges()))
	}
	{
		s, err := NewShape("Tetrahedron")
		require.NoError(t, err)
		assert.Equal(t, Tet, s)
		_, err = NewShape("pentagon")
		assert.Error(t, err)
	}
	{
		_, err := NewLagrange(Hex, 2)
		assert.Error(t, err)
	}
	// Sampling
	{
		assert.Equal(t, 16, len(Quad.SamplePoints(4)))
		assert.Equal(t, 10, len(Triangle.SamplePoints(4)))
		for _, xi := range Tet.SamplePoints(3) {
			assert.True(t, Tet.Contains(xi, 0))
		}
	}
}

func fill(n int, val float64) (x []float64) {
	x = make([]float64, n)
	for i := range x {
		x[i] = val
	}
	return
}
