package dof

import (
	"fmt"

	"github.com/notargets/gocut/mesh"
	"github.com/notargets/gocut/shape"
	"github.com/notargets/gocut/utils"
)

// Basis evaluates the shape functions of a field element. Nodes returns the
// reference support point of each function, in local DoF order.
type Basis interface {
	Evaluate(xi []float64) []float64
	Nodes() [][]float64
}

// Element is the field counterpart of the geometric element with the same
// ID. The first NumPrimary entries of DoFs belong to the element vertices.
type Element struct {
	ID         int
	DoFs       []int
	NumPrimary int
	Basis      Basis
}

func (e *Element) Primary() []int { return e.DoFs[:e.NumPrimary] }

// Location places a DoF in an element at a reference coordinate
type Location struct {
	Element int
	Xi      []float64
}

// Field is the mutable context of a stabilisation pass: DoFs are indexed by
// their ID, elements by the ID of the geometric element they live on.
type Field struct {
	Components int
	Order      int
	DoFs       []*DegreeOfFreedom
	Elements   []*Element

	numVertices int
}

func NewField(components int) *Field {
	return &Field{Components: components}
}

// AddDoF appends a DoF with the next free ID
func (f *Field) AddDoF() *DegreeOfFreedom {
	d := NewDegreeOfFreedom(len(f.DoFs), f.Components)
	f.DoFs = append(f.DoFs, d)
	return d
}

// AddElement appends an element with the next free ID
func (f *Field) AddElement(dofs []int, numPrimary int, basis Basis) *Element {
	e := &Element{ID: len(f.Elements), DoFs: dofs, NumPrimary: numPrimary, Basis: basis}
	f.Elements = append(f.Elements, e)
	return e
}

func (f *Field) NumDoFs() int { return len(f.DoFs) }

// Validate checks ids, local DoF references and component counts
func (f *Field) Validate() error {
	if f.Components < 1 {
		return fmt.Errorf("field needs at least one component, have %d", f.Components)
	}
	for i, d := range f.DoFs {
		if d.ID != i {
			return fmt.Errorf("DoF at index %d has ID %d", i, d.ID)
		}
		if d.Size() != f.Components {
			return fmt.Errorf("DoF %d has %d components, field has %d", i, d.Size(), f.Components)
		}
	}
	for k, e := range f.Elements {
		if e.ID != k {
			return fmt.Errorf("element at index %d has ID %d", k, e.ID)
		}
		if e.NumPrimary < 0 || e.NumPrimary > len(e.DoFs) {
			return fmt.Errorf("element %d has %d primary DoFs out of %d", k, e.NumPrimary, len(e.DoFs))
		}
		for _, id := range e.DoFs {
			if id < 0 || id >= len(f.DoFs) {
				return fmt.Errorf("element %d references DoF %d, field has %d", k, id, len(f.DoFs))
			}
		}
	}
	return nil
}

// NewLagrangeField builds a continuous Lagrange field on m. Vertex DoFs come
// first and share the vertex ids; order 2 adds one DoF per mesh edge,
// numbered NumVertices + edge id.
func NewLagrangeField(m *mesh.Mesh, order, components int) (f *Field, err error) {
	if components < 1 {
		err = fmt.Errorf("field needs at least one component, have %d", components)
		return
	}
	bases := make(map[shape.Shape]*shape.Lagrange)
	f = NewField(components)
	f.Order = order
	f.numVertices = m.NumVertices
	nDoFs := m.NumVertices
	if order == 2 {
		nDoFs += m.NumEdges
	}
	for i := 0; i < nDoFs; i++ {
		f.AddDoF()
	}
	for k := 0; k < m.NumElements; k++ {
		s := m.ElementTypes[k]
		basis, ok := bases[s]
		if !ok {
			if basis, err = shape.NewLagrange(s, order); err != nil {
				return nil, err
			}
			bases[s] = basis
		}
		dofs := make([]int, 0, basis.NumFunctions())
		dofs = append(dofs, m.EtoV[k]...)
		if order == 2 {
			for _, edgeID := range m.EToEdge[k] {
				dofs = append(dofs, m.NumVertices+edgeID)
			}
		}
		f.AddElement(dofs, basis.NumPrimary(), basis)
	}
	return
}

// Locations returns, for every DoF, the lowest id element containing it and
// the DoF's reference support point in that element.
func (f *Field) Locations() (locs []Location, err error) {
	locs = make([]Location, len(f.DoFs))
	found := make([]bool, len(f.DoFs))
	for _, e := range f.Elements {
		nodes := e.Basis.Nodes()
		for j, id := range e.DoFs {
			if found[id] {
				continue
			}
			locs[id] = Location{Element: e.ID, Xi: nodes[j]}
			found[id] = true
		}
	}
	for id, ok := range found {
		if !ok {
			return nil, fmt.Errorf("DoF %d is not referenced by any element", id)
		}
	}
	return
}

// BoundaryDoFs returns the DoFs on the named boundary of m: its vertices
// and, for quadratic fields, the edges with both vertices on it.
func (f *Field) BoundaryDoFs(m *mesh.Mesh, name string) (dofs utils.Index, err error) {
	verts, ok := m.Boundaries[name]
	if !ok {
		err = fmt.Errorf("mesh has no boundary named %q", name)
		return
	}
	dofs = verts.Copy()
	if f.Order == 2 {
		for edgeID, e := range m.Edges {
			if verts.Contains(e.Vertices[0]) && verts.Contains(e.Vertices[1]) {
				dofs = append(dofs, f.numVertices+edgeID)
			}
		}
	}
	dofs = dofs.Unique()
	return
}

// ConstrainBoundary fixes the listed components of the given DoFs to val.
// All components are fixed when none are listed.
func (f *Field) ConstrainBoundary(dofs utils.Index, val float64, components ...int) (err error) {
	if len(components) == 0 {
		components = utils.NewRange(0, f.Components-1)
	}
	for _, c := range components {
		if c < 0 || c >= f.Components {
			return fmt.Errorf("component %d out of range, field has %d", c, f.Components)
		}
	}
	for _, id := range dofs {
		if id < 0 || id >= len(f.DoFs) {
			return fmt.Errorf("DoF %d out of range, field has %d", id, len(f.DoFs))
		}
		for _, c := range components {
			f.DoFs[id].ConstrainValue(c, val)
		}
	}
	return
}

// StatusCount returns the number of components in each status
func (f *Field) StatusCount() (counts map[Status]int) {
	counts = make(map[Status]int)
	for _, d := range f.DoFs {
		for c := 0; c < d.Size(); c++ {
			counts[d.Status(c)]++
		}
	}
	return
}
