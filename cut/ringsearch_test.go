package cut

import (
	"math"
	"testing"

	"github.com/notargets/gocut/dof"
	"github.com/notargets/gocut/mesh"
	"github.com/notargets/gocut/shape"
	"github.com/notargets/gocut/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIncidenceIndex(t *testing.T) {
	m, err := mesh.UnitCube(shape.Triangle, 3)
	require.NoError(t, err)
	f, err := dof.NewLagrangeField(m, 2, 1)
	require.NoError(t, err)
	ix := NewIncidenceIndex(f)
	require.Len(t, ix, f.NumDoFs())
	// same mapping as the pairwise scan
	for id := range f.DoFs {
		var want []int
		for _, e := range f.Elements {
			if utils.Index(e.DoFs).Contains(id) {
				want = append(want, e.ID)
			}
		}
		assert.Equal(t, want, ix.OneRing(id), "DoF %d", id)
	}
	// vertex DoFs share the mesh's vertex to element map
	for v := 0; v < m.NumVertices; v++ {
		assert.Equal(t, m.VToE[v], ix.OneRing(v))
	}

	g := dof.NewField(1)
	g.AddDoF()
	g.AddDoF()
	g.AddElement([]int{0, 1, 1}, 2, nil)
	assert.Equal(t, []int{0}, NewIncidenceIndex(g).OneRing(1))
}

func TestComponentMask(t *testing.T) {
	var mask ComponentMask
	assert.True(t, mask.IsEmpty())
	mask = mask.Set(0).Set(5).Set(63)
	assert.True(t, mask.Has(5))
	assert.False(t, mask.Has(4))
	assert.Equal(t, 3, mask.Count())
	assert.Equal(t, []int{0, 5, 63}, mask.Components())
}

func TestThresholds(t *testing.T) {
	th := NewThresholds(shape.Triangle.RefMeasure(), 1, DefaultLower)
	assert.Less(t, th.Upper, 0.5)
	assert.InDelta(t, 0.5, th.Upper, 1.e-7)
	assert.Greater(t, th.Lower, 0.)
	// a measure equal to one element up to rounding is supported
	assert.GreaterOrEqual(t, 0.5-1.e-12, th.Upper)
}

func TestClassifyBorrowedActivity(t *testing.T) {
	m, err := mesh.NewStructuredMesh(shape.Line, []int{3}, []float64{0}, []float64{3})
	require.NoError(t, err)
	f, err := dof.NewLagrangeField(m, 2, 1)
	require.NoError(t, err)
	// vertices 0..3, element interiors 4..6
	measures := []float64{0.5, 2, 2, 0, 0.3, 0.1, 0}
	th := NewThresholds(1, 1, DefaultLower)
	list := Classify(f, NewIncidenceIndex(f), measures, th)
	assert.Equal(t, []Degenerate{{DoF: 0, Mask: 1}, {DoF: 4, Mask: 1}}, list)

	// the interior DoF of element 1 borrows activity from its vertices,
	// the one of element 2 has no fully active primary neighbour
	assert.True(t, f.DoFs[5].IsActive(0))
	assert.Equal(t, dof.Inactive, f.DoFs[6].Status(0))
	assert.Equal(t, dof.Inactive, f.DoFs[3].Status(0))
}

func TestRingSearch(t *testing.T) {
	m, f, _ := lineProblem(t, 6, 1)
	th := NewThresholds(1, 1, DefaultLower)
	ix := NewIncidenceIndex(f)
	Classify(f, ix, []float64{2, 2, 2, 0.5, 2, 2, 2}, th)
	rs := &RingSearch{Geometry: m, Field: f, Index: ix}

	assert.Equal(t, utils.Index{1, 4}, rs.TwoRing(3).Sorted())
	assert.Equal(t, utils.Index{0, 1, 4, 5}, rs.ThreeRing(3).Sorted())

	donor, threeRing, err := rs.Find(3, []float64{3.2})
	require.NoError(t, err)
	assert.False(t, threeRing)
	assert.Equal(t, 4, donor)

	// repeated searches agree
	for i := 0; i < 5; i++ {
		again, _, err := rs.Find(3, []float64{3.2})
		require.NoError(t, err)
		assert.Equal(t, donor, again)
	}
}

func TestPointLocator(t *testing.T) {
	// a non affine quadrilateral
	m := mesh.NewMesh(2)
	m.Vertices = [][]float64{{0, 0}, {2, 0}, {2.5, 2}, {0, 1.5}}
	m.AddElement(shape.Quad, []int{0, 1, 2, 3}, 0)
	m.BuildConnectivity()
	pl := PointLocator{Geometry: m, Tolerance: 1.e-10, MaxIterations: 20}

	// round trip from inside the element
	{
		target := []float64{0.3, 0.7}
		x := m.Position(0, target)
		loc, err := pl.Locate(0, x)
		require.NoError(t, err)
		assert.Equal(t, Converged, loc.Outcome)
		assert.Less(t, loc.Residual, pl.Tolerance)
		assert.InDeltaSlice(t, target, loc.Xi, 1.e-9)
		xr := m.Position(0, loc.Xi)
		assert.InDelta(t, 0., math.Hypot(xr[0]-x[0], xr[1]-x[1]), pl.Tolerance)

		// restarting from a converged point returns it unchanged
		again, err := pl.LocateFrom(0, x, loc.Xi)
		require.NoError(t, err)
		assert.Equal(t, Converged, again.Outcome)
		assert.Equal(t, 0, again.Iterations)
		assert.Equal(t, loc.Xi, again.Xi)
	}
	// extrapolation outside the element
	{
		x := []float64{3, 1}
		loc, err := pl.Locate(0, x)
		require.NoError(t, err)
		assert.Equal(t, Converged, loc.Outcome)
		xr := m.Position(0, loc.Xi)
		assert.InDelta(t, 3., xr[0], 1.e-9)
		assert.InDelta(t, 1., xr[1], 1.e-9)
	}
	// no iterations allowed
	{
		pl.MaxIterations = 0
		pl.Logger = nil
		loc, err := pl.Locate(0, []float64{1, 1})
		require.NoError(t, err)
		assert.Equal(t, Exhausted, loc.Outcome)
		assert.Equal(t, []float64{0.5, 0.5}, loc.Xi)
		assert.Equal(t, "Exhausted", loc.Outcome.String())
	}
}
