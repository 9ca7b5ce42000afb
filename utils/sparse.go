package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

// DOK is the assembly format: entries are set in any order, then the matrix
// is compressed with ToCSR for products.
type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)        { return m.M.Dims() }
func (m DOK) At(i, j int) float64     { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix           { return m.M.T() }
func (m DOK) NNZ() int                { return m.M.NNZ() }
func (m *DOK) SetReadOnly(name string) { m.name, m.readOnly = name, true }

func (m DOK) Set(i, j int, val float64) DOK { // Changes receiver
	var (
		nr, nc = m.Dims()
	)
	m.checkWritable()
	if i < 0 || i >= nr || j < 0 || j >= nc {
		err := fmt.Errorf("index out of bounds: (%v,%v) in [%v,%v]", i, j, nr, nc)
		panic(err)
	}
	m.M.Set(i, j, val)
	return m
}

// Accumulate adds val to the entry at (i,j)
func (m DOK) Accumulate(i, j int, val float64) DOK { // Changes receiver
	return m.Set(i, j, m.M.At(i, j)+val)
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:    m.M.ToCSR(),
		name: m.name,
	}
}

// CSR is read only once compressed.
type CSR struct {
	M    *sparse.CSR
	name string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }
func (m CSR) NNZ() int            { return m.M.NNZ() }

func (m CSR) DoNonZero(fn func(i, j int, v float64)) {
	m.M.DoNonZero(fn)
}

// MulVec returns m·x
func (m CSR) MulVec(x Vector) (R Vector) {
	var (
		nr, nc = m.Dims()
		dataX  = x.Data()
	)
	if nc != x.Len() {
		err := fmt.Errorf("dimension mismatch in MulVec: [%v,%v] x [%v]", nr, nc, x.Len())
		panic(err)
	}
	R = NewVector(nr)
	dataR := R.Data()
	m.M.DoNonZero(func(i, j int, v float64) {
		dataR[i] += v * dataX[j]
	})
	return
}

// RowNonZeros returns the column indices and values of row i, ordered by
// column.
func (m CSR) RowNonZeros(i int) (cols Index, vals []float64) {
	var (
		_, nc = m.Dims()
	)
	for j := 0; j < nc; j++ {
		if v := m.M.At(i, j); v != 0 {
			cols = append(cols, j)
			vals = append(vals, v)
		}
	}
	return
}
