package utils

import (
	"slices"
)

type Index []int

func NewRange(rmin, rmax int) (r Index) {
	var (
		size = rmax - rmin + 1 // INCLUSIVE RANGE
	)
	if size < 0 {
		size = 0
	}
	r = make(Index, size)
	for i := range r {
		r[i] = i + rmin
	}
	return
}

func (I Index) Copy() (r Index) {
	r = make(Index, len(I))
	copy(r, I)
	return
}

func (I Index) Contains(val int) bool {
	return slices.Contains(I, val)
}

// Unique returns the sorted set of values in I
func (I Index) Unique() (r Index) {
	r = I.Copy()
	slices.Sort(r)
	return slices.Compact(r)
}

// IndexSet is an ordered set of non-negative integers, iterated in ascending
// order. The zero value is ready to use.
type IndexSet struct {
	members map[int]struct{}
}

func (s *IndexSet) Insert(vals ...int) {
	if s.members == nil {
		s.members = make(map[int]struct{})
	}
	for _, val := range vals {
		s.members[val] = struct{}{}
	}
}

func (s *IndexSet) Union(o IndexSet) {
	for val := range o.members {
		s.Insert(val)
	}
}

func (s IndexSet) Has(val int) bool {
	_, ok := s.members[val]
	return ok
}

func (s IndexSet) Len() int { return len(s.members) }

func (s IndexSet) Sorted() (r Index) {
	r = make(Index, 0, len(s.members))
	for val := range s.members {
		r = append(r, val)
	}
	slices.Sort(r)
	return
}
