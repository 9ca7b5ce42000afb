package InputParameters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/notargets/gocut/cut"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var yamlInput = []byte(`
Title: Drilled sphere
Mesh:
  Shape: Tet
  Divisions: [4, 4, 4]
  Lower: [-1, -1, -1]
  Upper: [1, 1, 1]
PolynomialOrder: 1
Components: 3
Geometry:
  - Type: Sphere
    Center: [0, 0, 0]
    Radius: 0.9
  - Type: Cylinder
    Center: [0, 0, 0]
    Axis: [0, 0, 1]
    Radius: 0.2
    Complement: true
MaxIterations: 0
Dirichlet:
  - Boundary: zmin
    Value: 0
  - Boundary: xmax
    Components: [0]
    Value: 0.1
Output: result.db
`)

var tomlInput = []byte(`
Title = "Cut square"
Components = 1
Tolerance = 1e-10

[Mesh]
Shape = "Triangle"
Divisions = [8, 8]

[[Geometry]]
Type = "HalfSpace"
Center = [0.52, 0.0]
Normal = [1.0, 0.0]
`)

func TestParseYAML(t *testing.T) {
	var ip StabiliseParameters
	require.NoError(t, ip.Parse(yamlInput))
	ip.SetDefaults()
	require.NoError(t, ip.Validate())
	assert.Equal(t, "Drilled sphere", ip.Title)
	assert.Equal(t, []int{4, 4, 4}, ip.Mesh.Divisions)
	assert.Equal(t, 3, ip.Components)
	// explicitly zero, not defaulted
	assert.Equal(t, 0, *ip.MaxIterations)
	assert.Equal(t, cut.DefaultTolerance, ip.Tolerance)
	assert.Equal(t, 8, ip.Samples)
	require.Len(t, ip.Dirichlet, 2)
	assert.Equal(t, []int{0}, ip.Dirichlet[1].Components)
	assert.Equal(t, 0.1, ip.Dirichlet[1].Value)

	ls, err := ip.LevelSet()
	require.NoError(t, err)
	assert.False(t, cut.Inside(ls, []float64{0, 0, 0}))
	assert.True(t, cut.Inside(ls, []float64{0.5, 0, 0}))
	assert.False(t, cut.Inside(ls, []float64{0.95, 0, 0}))
	assert.Len(t, ip.Options(), 4)
	ip.Print()
}

func TestParseTOML(t *testing.T) {
	var ip StabiliseParameters
	require.NoError(t, ip.ParseTOML(tomlInput))
	ip.SetDefaults()
	require.NoError(t, ip.Validate())
	assert.Equal(t, 1.e-10, ip.Tolerance)
	assert.Equal(t, cut.DefaultMaxIterations, *ip.MaxIterations)
	assert.Equal(t, []float64{0, 0}, ip.Mesh.Lower)
	assert.Equal(t, []float64{1, 1}, ip.Mesh.Upper)
	ls, err := ip.LevelSet()
	require.NoError(t, err)
	assert.IsType(t, cut.HalfSpace{}, ls)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	{
		path := filepath.Join(dir, "input.yaml")
		require.NoError(t, os.WriteFile(path, yamlInput, 0644))
		ip, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "result.db", ip.Output)
	}
	{
		path := filepath.Join(dir, "input.toml")
		require.NoError(t, os.WriteFile(path, tomlInput, 0644))
		ip, err := ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "Cut square", ip.Title)
	}
	{
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("Title: no geometry\nMesh:\n  Shape: Quad\n"), 0644))
		_, err := ReadFile(path)
		assert.Error(t, err)
	}
	_, err := ReadFile(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestGeometryParameters(t *testing.T) {
	testCases := []struct {
		name string
		g    GeometryParameters
		ok   bool
	}{
		{"sphere", GeometryParameters{Type: "sphere", Center: []float64{0}, Radius: 1}, true},
		{"sphere without radius", GeometryParameters{Type: "sphere", Center: []float64{0}}, false},
		{"plane", GeometryParameters{Type: "plane", Center: []float64{0, 0}, Normal: []float64{0, 1}}, true},
		{"plane mismatch", GeometryParameters{Type: "plane", Center: []float64{0, 0}, Normal: []float64{1}}, false},
		{"cylinder without axis", GeometryParameters{Type: "cylinder", Center: []float64{0, 0, 0}, Radius: 1}, false},
		{"disc", GeometryParameters{Type: "cylinder", Center: []float64{0, 0}, Radius: 1, Complement: true}, true},
		{"torus", GeometryParameters{Type: "torus"}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.g.LevelSet()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
