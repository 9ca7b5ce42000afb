package utils

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// SingularValues returns the smallest and largest singular value of m
func (m Matrix) SingularValues() (min, max float64) {
	var svd mat.SVD
	if !svd.Factorize(m.M, mat.SVDNone) {
		return 0, math.Inf(1)
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0, math.Inf(1)
	}
	return values[len(values)-1], values[0]
}

// ConditionNumber is the ratio of the extreme singular values, +Inf when m
// is rank deficient.
func (m Matrix) ConditionNumber() float64 {
	min, max := m.SingularValues()
	if min < MachineEpsilon*max || min == 0 {
		return math.Inf(1)
	}
	return max / min
}

// GramDeterminant returns sqrt(det(mᵀm)), the volume scaling of the columns
// of m. For square m it is |det(m)|.
func (m Matrix) GramDeterminant() float64 {
	var (
		nr, nc = m.Dims()
	)
	if nr == nc {
		return math.Abs(mat.Det(m.M))
	}
	var gram mat.Dense
	gram.Mul(m.M.T(), m.M)
	return math.Sqrt(math.Max(mat.Det(&gram), 0))
}
