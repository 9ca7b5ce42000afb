package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector(t *testing.T) {
	v := NewVector(2, []float64{3, 4})
	assert.Equal(t, 5., v.Norm())
	assert.Equal(t, 7., v.Sum())
	assert.Equal(t, 4., v.AtVec(1))

	c := v.Copy()
	c.Add(NewVector(2, []float64{1, 1})).Scale(2)
	assert.Equal(t, []float64{8, 10}, c.Data())
	assert.Equal(t, []float64{3, 4}, v.Data())

	c.Subtract(v)
	assert.Equal(t, []float64{5, 6}, c.Data())
	assert.Equal(t, []float64{-1, -1}, c.Set(-1).Data())

	assert.Panics(t, func() { v.Add(NewVector(3)) })
	assert.Panics(t, func() { NewVector(3, []float64{1}) })
}

func TestIndex(t *testing.T) {
	assert.Equal(t, Index{2, 3, 4, 5}, NewRange(2, 5))
	assert.Empty(t, NewRange(3, 2))
	I := Index{3, 1, 3, 2}
	assert.Equal(t, Index{1, 2, 3}, I.Unique())
	assert.Equal(t, Index{3, 1, 3, 2}, I)
	assert.True(t, I.Contains(2))
	assert.False(t, I.Contains(0))

	var s IndexSet
	assert.False(t, s.Has(1))
	assert.Equal(t, 0, s.Len())
	assert.Empty(t, s.Sorted())
	s.Insert(5, 1, 5)
	assert.Equal(t, 2, s.Len())
	var o IndexSet
	o.Insert(3, 1)
	s.Union(o)
	assert.Equal(t, Index{1, 3, 5}, s.Sorted())
	assert.True(t, s.Has(3))
}
