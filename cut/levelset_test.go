package cut

import (
	"testing"

	"github.com/notargets/gocut/dof"
	"github.com/notargets/gocut/mesh"
	"github.com/notargets/gocut/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelSets(t *testing.T) {
	sphere := Sphere{Center: []float64{0, 0, 0}, Radius: 1}
	assert.InDelta(t, -1., sphere.Eval([]float64{0, 0, 0}), 1.e-15)
	assert.InDelta(t, 1., sphere.Eval([]float64{0, 2, 0}), 1.e-15)

	half := HalfSpace{Point: []float64{0, 1}, Normal: []float64{0, 2}}
	assert.InDelta(t, 2., half.Eval([]float64{5, 3}), 1.e-15)
	assert.True(t, Inside(half, []float64{5, 0}))

	cyl := Cylinder{Point: []float64{0, 0, 0}, Axis: []float64{0, 0, 3}, Radius: 1}
	assert.InDelta(t, 1., cyl.Eval([]float64{2, 0, 5}), 1.e-14)
	disc := Cylinder{Point: []float64{1, 1}, Radius: 0.5}
	assert.InDelta(t, 0.5, disc.Eval([]float64{2, 1}), 1.e-15)

	// a ball with a hole drilled along z
	body := Intersection{sphere, Complement{Cylinder{Point: []float64{0, 0, 0}, Axis: []float64{0, 0, 1}, Radius: 0.25}}}
	assert.False(t, Inside(body, []float64{0, 0, 0}))
	assert.True(t, Inside(body, []float64{0.5, 0, 0}))
	assert.False(t, Inside(body, []float64{1.5, 0, 0}))

	both := Union{Sphere{Center: []float64{0}, Radius: 1}, Sphere{Center: []float64{3}, Radius: 1}}
	assert.True(t, Inside(both, []float64{2.5}))
	assert.False(t, Inside(both, []float64{1.5}))
}

func TestSupportMeasures(t *testing.T) {
	m, f, locs := lineProblem(t, 5, 1)
	measures, err := SupportMeasures(m, f, HalfSpace{Point: []float64{2.5}, Normal: []float64{1}}, 4)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 1.5, 0.5, 0, 0}, measures)

	_, err = SupportMeasures(m, f, Sphere{Center: []float64{0}, Radius: 1}, 0)
	assert.Error(t, err)

	rep, err := StabiliseBasis(m, f, measures, locs, quiet())
	require.NoError(t, err)
	require.Len(t, rep.Entries, 1)
	assert.Equal(t, 3, rep.Entries[0].DoF)
	assert.Equal(t, 1, rep.Entries[0].Donor)
	assert.Equal(t, []dof.WeightedDoF{{DoF: 1, Weight: -1}, {DoF: 2, Weight: 2}}, f.DoFs[3].Constraint(0).Weights)
	assert.Equal(t, dof.Inactive, f.DoFs[4].Status(0))
	assert.Equal(t, dof.Inactive, f.DoFs[5].Status(0))
}

func TestSupportMeasuresQuad(t *testing.T) {
	m, err := mesh.UnitCube(shape.Quad, 2)
	require.NoError(t, err)
	f, err := dof.NewLagrangeField(m, 1, 1)
	require.NoError(t, err)
	all := Sphere{Center: []float64{0.5, 0.5}, Radius: 10}
	measures, err := SupportMeasures(m, f, all, 3)
	require.NoError(t, err)
	// corner, edge and centre vertices touch 1, 2 and 4 elements
	assert.Equal(t, 1., measures[0])
	assert.Equal(t, 2., measures[1])
	assert.Equal(t, 4., measures[4])
}
