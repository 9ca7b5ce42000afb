package cut

import (
	"math"
	"math/bits"

	"github.com/notargets/gocut/dof"
	"github.com/notargets/gocut/utils"
)

// MaxComponents is the widest field a ComponentMask can describe
const MaxComponents = 64

// ComponentMask has bit c set when component c is degenerate
type ComponentMask uint64

func (m ComponentMask) Has(c int) bool          { return m&(1<<uint(c)) != 0 }
func (m ComponentMask) Set(c int) ComponentMask { return m | 1<<uint(c) }
func (m ComponentMask) Count() int              { return bits.OnesCount64(uint64(m)) }
func (m ComponentMask) IsEmpty() bool           { return m == 0 }

// Components lists the set bits in ascending order
func (m ComponentMask) Components() (comps []int) {
	for w := uint64(m); w != 0; w &= w - 1 {
		comps = append(comps, bits.TrailingZeros64(w))
	}
	return
}

// Degenerate is a DoF whose masked components need a constraint
type Degenerate struct {
	DoF  int
	Mask ComponentMask
}

// Thresholds of the support measure. A DoF at or above Upper is active, one
// below Lower is dropped without a constraint.
type Thresholds struct {
	Lower, Upper float64
}

// NewThresholds places the upper threshold just below factor times the
// reference element measure, so that a measure equal to one element up to
// rounding counts as fully supported.
func NewThresholds(refMeasure, factor, lower float64) Thresholds {
	return Thresholds{
		Lower: lower,
		Upper: factor*refMeasure - math.Sqrt(utils.MachineEpsilon),
	}
}

// Classify sets the status of every non constrained component and returns
// the degenerate DoFs. Primary DoFs are classified first, in element order;
// the remaining DoFs follow in id order and count as supported when one of
// their elements has all primary DoFs active. Each DoF is classified once.
func Classify(f *dof.Field, ix IncidenceIndex, measures []float64, th Thresholds) (list []Degenerate) {
	visited := make([]bool, len(f.DoFs))

	for _, e := range f.Elements {
		for _, id := range e.Primary() {
			if visited[id] {
				continue
			}
			visited[id] = true
			if mask := classifyDoF(f.DoFs[id], measures[id], measures[id] >= th.Upper, th); !mask.IsEmpty() {
				list = append(list, Degenerate{DoF: id, Mask: mask})
			}
		}
	}

	for id, d := range f.DoFs {
		if visited[id] {
			continue
		}
		visited[id] = true
		borrowed := false
		for _, k := range ix.OneRing(id) {
			if primaryActive(f, f.Elements[k]) {
				borrowed = true
				break
			}
		}
		supported := measures[id] >= th.Upper || borrowed
		if mask := classifyDoF(d, measures[id], supported, th); !mask.IsEmpty() {
			list = append(list, Degenerate{DoF: id, Mask: mask})
		}
	}
	return
}

func classifyDoF(d *dof.DegreeOfFreedom, measure float64, supported bool, th Thresholds) (mask ComponentMask) {
	for c := 0; c < d.Size(); c++ {
		if d.IsConstrained(c) {
			continue
		}
		if supported {
			d.Activate(c)
			continue
		}
		d.Deactivate(c)
		if measure >= th.Lower {
			mask = mask.Set(c)
		}
	}
	return
}

// primaryActive reports whether every component of every primary DoF of e
// is Active
func primaryActive(f *dof.Field, e *dof.Element) bool {
	for _, id := range e.Primary() {
		if !f.DoFs[id].IsFullyActive() {
			return false
		}
	}
	return true
}

// fullyActive reports whether every component of every DoF of e is Active
func fullyActive(f *dof.Field, e *dof.Element) bool {
	for _, id := range e.DoFs {
		if !f.DoFs[id].IsFullyActive() {
			return false
		}
	}
	return true
}
