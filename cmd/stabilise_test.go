package cmd

import (
	"bytes"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/notargets/gocut/InputParameters"
	"github.com/notargets/gocut/dof"
	"github.com/notargets/gocut/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunStabilise(t *testing.T) {
	fileInput := []byte(`
Title: Cut square
Mesh:
  Shape: Triangle
  Divisions: [8, 8]
Geometry:
  - Type: HalfSpace
    Center: [0.52, 0]
    Normal: [1, 0]
Samples: 4
Dirichlet:
  - Boundary: xmin
    Value: 1.5
`)
	var ip InputParameters.StabiliseParameters
	require.NoError(t, ip.Parse(fileInput))
	ip.SetDefaults()
	require.NoError(t, ip.Validate())
	ip.Output = filepath.Join(t.TempDir(), "runs.db")

	var buf bytes.Buffer
	rep, err := RunStabilise(&ip, log.New(io.Discard), &buf)
	require.NoError(t, err)
	require.NotEmpty(t, rep.Entries)
	assert.Equal(t, 81, rep.Counts[dof.Active]+rep.Counts[dof.Inactive]+rep.Counts[dof.Constrained])
	// nine Dirichlet vertices on xmin plus the degenerate DoFs
	assert.Equal(t, 9+len(rep.Entries), rep.Counts[dof.Constrained])
	assert.Contains(t, buf.String(), "Cut square")
	assert.Contains(t, buf.String(), "Degenerate DoFs")

	db, err := store.Open(ip.Output)
	require.NoError(t, err)
	defer db.Close()
	runs, err := db.Runs()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "Cut square", runs[0].Title)
	assert.Equal(t, rep.Degenerate(), runs[0].Degenerate)
	status, err := db.Status(runs[0].ID, rep.Entries[0].DoF, 0)
	require.NoError(t, err)
	assert.Equal(t, "Constrained", status)
}

func TestRunStabiliseErrors(t *testing.T) {
	ip := InputParameters.StabiliseParameters{
		Mesh:     InputParameters.MeshParameters{Shape: "Quad", Divisions: []int{2}},
		Geometry: []InputParameters.GeometryParameters{{Type: "Sphere", Center: []float64{0.5, 0.5}, Radius: 0.3}},
	}
	ip.SetDefaults()
	_, err := RunStabilise(&ip, log.New(io.Discard), io.Discard)
	assert.Error(t, err)

	ip.Mesh.Divisions = []int{2, 2}
	ip.Dirichlet = []InputParameters.DirichletParameters{{Boundary: "inlet"}}
	_, err = RunStabilise(&ip, log.New(io.Discard), io.Discard)
	assert.Error(t, err)
}

func TestStartProfile(t *testing.T) {
	p, err := startProfile("")
	assert.NoError(t, err)
	assert.Nil(t, p)
	_, err = startProfile("gpu")
	assert.Error(t, err)
}
