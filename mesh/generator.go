package mesh

import (
	"fmt"

	"github.com/notargets/gocut/shape"
	"github.com/notargets/gocut/utils"
)

// kuhnPaths are the axis orders of the six tetrahedra of a cube sharing the
// main diagonal
var kuhnPaths = [6][3]int{{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0}}

// NewStructuredMesh generates a box mesh of [lo,hi] with n[d] cells along
// each direction. Simplex shapes split every cell: two triangles per square,
// six tetrahedra per cube. Vertices on the box faces are collected in the
// boundaries "xmin", "xmax", "ymin", "ymax", "zmin" and "zmax".
func NewStructuredMesh(s shape.Shape, n []int, lo, hi []float64) (*Mesh, error) {
	var (
		dim = s.Dim()
	)
	if len(n) != dim || len(lo) != dim || len(hi) != dim {
		return nil, fmt.Errorf("%s mesh needs %d divisions and bounds, have %d, %d and %d",
			s, dim, len(n), len(lo), len(hi))
	}
	for d := 0; d < dim; d++ {
		if n[d] < 1 {
			return nil, fmt.Errorf("need at least one cell along direction %d, have %d", d, n[d])
		}
		if !(hi[d] > lo[d]) {
			return nil, fmt.Errorf("empty box along direction %d: [%v,%v]", d, lo[d], hi[d])
		}
	}
	var (
		m        = NewMesh(dim)
		nv       = [3]int{1, 1, 1}
		nc       = [3]int{1, 1, 1}
		names    = [3][2]string{{"xmin", "xmax"}, {"ymin", "ymax"}, {"zmin", "zmax"}}
		vertexID = func(i, j, k int) int { return i + nv[0]*(j+nv[1]*k) }
	)
	for d := 0; d < dim; d++ {
		nv[d], nc[d] = n[d]+1, n[d]
	}
	for k := 0; k < nv[2]; k++ {
		for j := 0; j < nv[1]; j++ {
			for i := 0; i < nv[0]; i++ {
				ijk := [3]int{i, j, k}
				x := make([]float64, dim)
				for d := 0; d < dim; d++ {
					x[d] = lo[d] + (hi[d]-lo[d])*float64(ijk[d])/float64(n[d])
					if ijk[d] == 0 {
						m.Boundaries[names[d][0]] = append(m.Boundaries[names[d][0]], vertexID(i, j, k))
					}
					if ijk[d] == n[d] {
						m.Boundaries[names[d][1]] = append(m.Boundaries[names[d][1]], vertexID(i, j, k))
					}
				}
				m.Vertices = append(m.Vertices, x)
			}
		}
	}
	for k := 0; k < nc[2]; k++ {
		for j := 0; j < nc[1]; j++ {
			for i := 0; i < nc[0]; i++ {
				// corner(b) is the cell vertex offset by the bits of b
				corner := func(b int) int {
					o := [3]int{b & 1, (b >> 1) & 1, (b >> 2) & 1}
					for d := dim; d < 3; d++ {
						o[d] = 0
					}
					return vertexID(i+o[0], j+o[1], k+o[2])
				}
				switch s {
				case shape.Line:
					m.AddElement(s, []int{corner(0), corner(1)}, 0)
				case shape.Quad:
					m.AddElement(s, []int{corner(0), corner(1), corner(3), corner(2)}, 0)
				case shape.Triangle:
					m.AddElement(s, []int{corner(0), corner(1), corner(3)}, 0)
					m.AddElement(s, []int{corner(0), corner(3), corner(2)}, 0)
				case shape.Hex:
					m.AddElement(s, []int{
						corner(0), corner(1), corner(3), corner(2),
						corner(4), corner(5), corner(7), corner(6),
					}, 0)
				case shape.Tet:
					for _, path := range kuhnPaths {
						b := 0
						verts := []int{corner(b)}
						for _, axis := range path {
							b |= 1 << axis
							verts = append(verts, corner(b))
						}
						m.AddElement(s, verts, 0)
					}
				}
			}
		}
	}
	for name, verts := range m.Boundaries {
		m.Boundaries[name] = utils.Index(verts).Unique()
	}
	m.BuildConnectivity()
	return m, nil
}

// UnitCube meshes [0,1]^dim with n cells per direction
func UnitCube(s shape.Shape, n int) (*Mesh, error) {
	var (
		dim = s.Dim()
		ns  = make([]int, dim)
		lo  = make([]float64, dim)
		hi  = make([]float64, dim)
	)
	for d := 0; d < dim; d++ {
		ns[d], hi[d] = n, 1
	}
	return NewStructuredMesh(s, ns, lo, hi)
}
