package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatrix(t *testing.T) {
	// Transpose
	{
		M := NewMatrix(2, 3, []float64{
			1, 2, 3,
			4, 5, 6,
		})
		mNr, mNc := M.Dims()
		A := M.Transpose()
		aNr, aNc := A.Dims()
		assert.Equal(t, aNc, mNr)
		assert.Equal(t, aNr, mNc)
		assert.Equal(t, []float64{1, 4, 2, 5, 3, 6}, A.RawMatrix().Data)
		assert.Equal(t, []float64{4, 5, 6}, M.Row(1).Data())
		assert.Equal(t, []float64{3, 6}, M.Col(-1).Data())
	}
	// Mul, MulVec
	{
		A := NewMatrix(2, 2, []float64{1, 2, 3, 4})
		B := NewMatrix(2, 2, []float64{5, 6, 7, 8})
		assert.Equal(t, []float64{19, 22, 43, 50}, A.Mul(B).Data())
		assert.Equal(t, []float64{3, 7}, A.MulVec(NewVector(2, []float64{1, 1})).Data())
		assert.Panics(t, func() { A.Mul(NewMatrix(3, 1)) })
	}
	// Chained setters change the receiver, Copy does not share storage
	{
		A := NewMatrix(2, 2)
		A.Set(0, 0, 1).Set(-1, -1, 2).Scale(3)
		assert.Equal(t, []float64{3, 0, 0, 6}, A.Data())
		C := A.Copy()
		C.SetCol(1, []float64{7, 8})
		assert.Equal(t, []float64{3, 0, 0, 6}, A.Data())
		assert.Equal(t, []float64{3, 7, 0, 8}, C.Data())
		A.SetReadOnly("A")
		assert.Panics(t, func() { A.Set(0, 0, 1) })
	}
}

func TestMatrixInverse(t *testing.T) {
	{
		R, err := NewMatrix(2, 2, []float64{4, 7, 2, 6}).Inverse()
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.6, -0.7, -0.2, 0.4}, R.Data(), 1.e-14)
	}
	{
		_, err := NewMatrix(2, 2, []float64{1, 2, 2, 4}).Inverse()
		assert.Error(t, err)
		_, err = NewMatrix(2, 3).Inverse()
		assert.Error(t, err)
	}
	// Square: the inverse transpose
	{
		R, err := NewMatrix(2, 2, []float64{2, 0, 1, 1}).PseudoInverseT()
		require.NoError(t, err)
		assert.InDeltaSlice(t, []float64{0.5, -0.5, 0, 1}, R.Data(), 1.e-14)
	}
	// Tall: columns dual to the columns of m
	{
		M := NewMatrix(3, 2, []float64{1, 0, 0, 1, 1, 1})
		R, err := M.PseudoInverseT()
		require.NoError(t, err)
		I := R.Transpose().Mul(M)
		assert.InDeltaSlice(t, []float64{1, 0, 0, 1}, I.Data(), 1.e-14)
		_, err = M.Transpose().PseudoInverseT()
		assert.Error(t, err)
	}
}

func TestMatrixConditioning(t *testing.T) {
	{
		M := NewMatrix(2, 2, []float64{3, 0, 0, -2})
		min, max := M.SingularValues()
		assert.InDelta(t, 2., min, 1.e-14)
		assert.InDelta(t, 3., max, 1.e-14)
		assert.InDelta(t, 1.5, M.ConditionNumber(), 1.e-14)
		assert.InDelta(t, 6., M.GramDeterminant(), 1.e-14)
	}
	assert.True(t, math.IsInf(NewMatrix(2, 2, []float64{1, 2, 2, 4}).ConditionNumber(), 1))
	assert.InDelta(t, 2., NewMatrix(3, 2, []float64{1, 0, 0, 2, 0, 0}).GramDeterminant(), 1.e-14)
	assert.InDelta(t, math.Sqrt(3), NewMatrix(3, 2, []float64{1, 0, 0, 1, 1, 1}).GramDeterminant(), 1.e-14)
}
