package cut

import (
	"math"

	"github.com/notargets/gocut/dof"
	"github.com/notargets/gocut/utils"
	"gonum.org/v1/gonum/floats"
)

// RingSearch finds donor elements for degenerate DoFs by walking outwards
// through the incidence index
type RingSearch struct {
	Geometry Geometry
	Field    *dof.Field
	Index    IncidenceIndex
}

// TwoRing collects the elements around the other DoFs of the DoF's one-ring
// that are fully active. Elements of the one-ring itself contain the
// degenerate DoF and so never pass the filter.
func (rs *RingSearch) TwoRing(id int) (ring utils.IndexSet) {
	for _, k := range rs.Index.OneRing(id) {
		for _, other := range rs.Field.Elements[k].DoFs {
			if other == id {
				continue
			}
			for _, k2 := range rs.Index.OneRing(other) {
				if ring.Has(k2) {
					continue
				}
				if fullyActive(rs.Field, rs.Field.Elements[k2]) {
					ring.Insert(k2)
				}
			}
		}
	}
	return
}

// ThreeRing is the union of the two-rings of the DoFs surrounding id
func (rs *RingSearch) ThreeRing(id int) (ring utils.IndexSet) {
	var surrounding utils.IndexSet
	for _, k := range rs.Index.OneRing(id) {
		surrounding.Insert(rs.Field.Elements[k].DoFs...)
	}
	for _, other := range surrounding.Sorted() {
		ring.Union(rs.TwoRing(other))
	}
	return
}

// Find returns the candidate whose mapped reference centroid is closest to
// x, searching the two-ring and falling back to the three-ring. Equal
// distances go to the lowest element id.
func (rs *RingSearch) Find(id int, x []float64) (donor int, threeRing bool, err error) {
	candidates := rs.TwoRing(id)
	if candidates.Len() == 0 {
		threeRing = true
		candidates = rs.ThreeRing(id)
	}
	if candidates.Len() == 0 {
		err = &NoDonorError{DoF: id, X: x}
		return
	}
	var (
		minDist = math.Inf(1)
	)
	donor = -1
	for _, k := range candidates.Sorted() {
		centroid := rs.Geometry.Position(k, rs.Geometry.ElementShape(k).Centroid())
		if dist := floats.Distance(x, centroid, 2); dist < minDist || donor < 0 {
			minDist, donor = dist, k
		}
	}
	return
}
