package store

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/notargets/gocut/cut"
	"github.com/notargets/gocut/dof"
	"github.com/notargets/gocut/mesh"
	"github.com/notargets/gocut/shape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stabilisedLine(t *testing.T) (*cut.Report, *dof.Field) {
	t.Helper()
	m, err := mesh.NewStructuredMesh(shape.Line, []int{5}, []float64{0}, []float64{5})
	require.NoError(t, err)
	f, err := dof.NewLagrangeField(m, 1, 1)
	require.NoError(t, err)
	locs, err := f.Locations()
	require.NoError(t, err)
	f.DoFs[5].ConstrainValue(0, 7)
	rep, err := cut.StabiliseBasis(m, f, []float64{1, 2, 1.5, 0.5, 0, 0}, locs,
		cut.WithLogger(log.New(io.Discard)))
	require.NoError(t, err)
	return rep, f
}

func TestSaveRun(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer s.Close()

	rep, f := stabilisedLine(t)
	require.Len(t, rep.Entries, 1)
	id, err := s.SaveRun("line", rep, f)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	runs, err := s.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, id, runs[0].ID)
	assert.Equal(t, "line", runs[0].Title)
	assert.Equal(t, 1, runs[0].Degenerate)
	assert.Equal(t, 0, runs[0].ThreeRing)
	assert.Equal(t, cut.DefaultMaxIterations, runs[0].MaxIterations)
	assert.Equal(t, rep.Thresholds.Upper, runs[0].Upper)

	status, err := s.Status(id, 3, 0)
	require.NoError(t, err)
	assert.Equal(t, "Constrained", status)
	status, err = s.Status(id, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, "Inactive", status)

	c, err := s.Constraint(id, 3, 0)
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, f.DoFs[3].Constraint(0).Weights, c.Weights)
	assert.Equal(t, []dof.WeightedDoF{{DoF: 1, Weight: -1}, {DoF: 2, Weight: 2}}, c.Weights)

	// Dirichlet value survives without weights
	c, err = s.Constraint(id, 5, 0)
	require.NoError(t, err)
	assert.Equal(t, &dof.Constraint{Inhomogeneity: 7}, c)

	c, err = s.Constraint(id, 0, 0)
	require.NoError(t, err)
	assert.Nil(t, c)

	_, err = s.Status(id, 42, 0)
	assert.Error(t, err)
}

func TestReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := Open(path)
	require.NoError(t, err)
	rep, f := stabilisedLine(t)
	first, err := s.SaveRun("first", rep, f)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	second, err := s.SaveRun("second", rep, f)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
	runs, err := s.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "first", runs[0].Title)
	assert.Equal(t, "second", runs[1].Title)
}
