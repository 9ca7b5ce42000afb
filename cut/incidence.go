package cut

import (
	"github.com/notargets/gocut/dof"
)

// IncidenceIndex lists, for every DoF id, the ascending ids of the elements
// whose local DoF list contains it (the DoF's one-ring).
type IncidenceIndex [][]int

func NewIncidenceIndex(f *dof.Field) (ix IncidenceIndex) {
	ix = make(IncidenceIndex, len(f.DoFs))
	for _, e := range f.Elements {
		for _, id := range e.DoFs {
			ring := ix[id]
			// a DoF repeated within one element is recorded once
			if n := len(ring); n > 0 && ring[n-1] == e.ID {
				continue
			}
			ix[id] = append(ring, e.ID)
		}
	}
	return
}

func (ix IncidenceIndex) OneRing(id int) []int { return ix[id] }
