// Package mesh holds the background mesh: vertex coordinates, element to
// vertex connectivity and the affine or multilinear geometry map of every
// element.
package mesh

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/notargets/gocut/shape"
	"github.com/notargets/gocut/utils"
)

// Edge represents an edge of the mesh, shared by one or more elements
type Edge struct {
	Vertices [2]int // Sorted vertex indices
	Element  int    // First element visiting the edge
	LocalID  int    // Local edge ID within that element
}

// Mesh represents an unstructured mesh with element and edge connectivity
type Mesh struct {
	Dim int // Spatial dimension of the vertex coordinates

	// Geometry
	Vertices [][]float64 // Vertex coordinates [nvertices][Dim]

	// Element data
	EtoV         [][]int       // Element to vertex connectivity [nelems][nverts_per_elem]
	ElementTypes []shape.Shape // Reference shape of each element
	ElementTags  []int         // Physical group/tag for each element

	// Connectivity (built by BuildConnectivity)
	EToEdge [][]int        // Element to edge connectivity [nelems][nedges_per_elem]
	VToE    [][]int        // Vertex to element incidence, ascending element ids
	Edges   []Edge         // All unique edges in the mesh
	EdgeMap map[[2]int]int // Sorted vertex pair to edge ID

	Boundaries map[string]utils.Index // Marker name to sorted vertex ids

	NumElements int
	NumVertices int
	NumEdges    int
}

func NewMesh(dim int) *Mesh {
	return &Mesh{
		Dim:        dim,
		EdgeMap:    make(map[[2]int]int),
		Boundaries: make(map[string]utils.Index),
	}
}

// ReadMeshFile reads a mesh file based on extension
func ReadMeshFile(filename string) (*Mesh, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	switch ext {
	case ".su2":
		return ReadSU2(filename)
	case ".smf":
		return ReadSMF(filename)
	default:
		return nil, fmt.Errorf("unsupported mesh format: %s", ext)
	}
}

// AddElement appends an element and returns its id
func (m *Mesh) AddElement(s shape.Shape, verts []int, tag int) (id int) {
	id = len(m.EtoV)
	m.EtoV = append(m.EtoV, verts)
	m.ElementTypes = append(m.ElementTypes, s)
	m.ElementTags = append(m.ElementTags, tag)
	m.NumElements = len(m.EtoV)
	return
}

// Validate checks the connectivity against the vertex list and the element
// shapes against the spatial dimension.
func (m *Mesh) Validate() error {
	if len(m.EtoV) != len(m.ElementTypes) {
		return fmt.Errorf("mesh has %d connectivities but %d element types",
			len(m.EtoV), len(m.ElementTypes))
	}
	for i, v := range m.Vertices {
		if len(v) != m.Dim {
			return fmt.Errorf("vertex %d has %d coordinates, mesh dimension is %d", i, len(v), m.Dim)
		}
	}
	for k, verts := range m.EtoV {
		s := m.ElementTypes[k]
		if s.Dim() > m.Dim {
			return fmt.Errorf("element %d is a %s, mesh dimension is %d", k, s, m.Dim)
		}
		if len(verts) != s.NumVertices() {
			return fmt.Errorf("element %d is a %s with %d vertices, need %d",
				k, s, len(verts), s.NumVertices())
		}
		for _, v := range verts {
			if v < 0 || v >= len(m.Vertices) {
				return fmt.Errorf("element %d references vertex %d, mesh has %d", k, v, len(m.Vertices))
			}
		}
	}
	return nil
}

// BuildConnectivity builds the edge table and the vertex to element map
func (m *Mesh) BuildConnectivity() {
	m.NumElements = len(m.EtoV)
	m.NumVertices = len(m.Vertices)
	m.EToEdge = make([][]int, m.NumElements)
	m.VToE = make([][]int, m.NumVertices)
	m.Edges = m.Edges[:0]
	m.EdgeMap = make(map[[2]int]int)

	for elemID := 0; elemID < m.NumElements; elemID++ {
		verts := m.EtoV[elemID]
		for _, v := range verts {
			m.VToE[v] = append(m.VToE[v], elemID)
		}
		localEdges := m.ElementTypes[elemID].Edges()
		m.EToEdge[elemID] = make([]int, len(localEdges))
		for localID, le := range localEdges {
			key := [2]int{verts[le[0]], verts[le[1]]}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			edgeID, exists := m.EdgeMap[key]
			if !exists {
				edgeID = len(m.Edges)
				m.Edges = append(m.Edges, Edge{Vertices: key, Element: elemID, LocalID: localID})
				m.EdgeMap[key] = edgeID
			}
			m.EToEdge[elemID][localID] = edgeID
		}
	}
	m.NumEdges = len(m.Edges)
}

// UniformShape returns the shape shared by all elements
func (m *Mesh) UniformShape() (s shape.Shape, err error) {
	if m.NumElements == 0 {
		err = fmt.Errorf("mesh has no elements")
		return
	}
	s = m.ElementTypes[0]
	for k, t := range m.ElementTypes {
		if t != s {
			err = fmt.Errorf("element %d is a %s, element 0 is a %s", k, t, s)
			return
		}
	}
	return
}

// PrintStatistics prints mesh statistics
func (m *Mesh) PrintStatistics(w io.Writer) {
	fmt.Fprintf(w, "Mesh Statistics:\n")
	fmt.Fprintf(w, "  Dimension: %d\n", m.Dim)
	fmt.Fprintf(w, "  Vertices: %d\n", m.NumVertices)
	fmt.Fprintf(w, "  Elements: %d\n", m.NumElements)
	fmt.Fprintf(w, "  Edges: %d\n", m.NumEdges)
	names := make([]string, 0, len(m.Boundaries))
	for name := range m.Boundaries {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  Boundary %q: %d vertices\n", name, len(m.Boundaries[name]))
	}

	typeCounts := make(map[shape.Shape]int)
	for _, t := range m.ElementTypes {
		typeCounts[t]++
	}
	types := make([]shape.Shape, 0, len(typeCounts))
	for t := range typeCounts {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	fmt.Fprintf(w, "  Element types:\n")
	for _, t := range types {
		fmt.Fprintf(w, "    %s: %d\n", t, typeCounts[t])
	}

	q := m.Quality()
	fmt.Fprintf(w, "  Total measure: %.6g\n", q.TotalMeasure)
	fmt.Fprintf(w, "  Element measure: min %.6g, max %.6g\n", q.MinMeasure, q.MaxMeasure)
	fmt.Fprintf(w, "  Worst Jacobian condition: %.6g (element %d)\n", q.WorstCondition, q.WorstElement)
}
