package utils

import (
	"fmt"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

type Vector struct {
	V *mat.VecDense
}

func NewVector(N int, dataO ...[]float64) Vector {
	var (
		data []float64
	)
	if len(dataO) != 0 {
		if len(dataO[0]) != N {
			err := fmt.Errorf("mismatch in allocation: NewVector N = %v, len(data[0]) = %v", N, len(dataO[0]))
			panic(err)
		}
		data = dataO[0]
	} else {
		data = make([]float64, N)
	}
	return Vector{mat.NewVecDense(N, data)}
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (v Vector) Dims() (r, c int)         { return v.V.Dims() }
func (v Vector) At(i, j int) float64      { return v.V.At(i, j) }
func (v Vector) T() mat.Matrix            { return v.V.T() }
func (v Vector) AtVec(i int) float64      { return v.V.AtVec(i) }
func (v Vector) RawVector() blas64.Vector { return v.V.RawVector() }
func (v Vector) Len() int                 { return v.V.Len() }
func (v Vector) Data() []float64          { return v.V.RawVector().Data }

func (v Vector) Copy() Vector {
	data := make([]float64, v.Len())
	copy(data, v.Data())
	return NewVector(v.Len(), data)
}

// Chainable (extended) methods, all change the receiver
func (v Vector) Set(a float64) Vector {
	data := v.Data()
	for i := range data {
		data[i] = a
	}
	return v
}

func (v Vector) Add(a Vector) Vector {
	v.checkLen(a)
	floats.Add(v.Data(), a.Data())
	return v
}

func (v Vector) Subtract(a Vector) Vector {
	v.checkLen(a)
	floats.Sub(v.Data(), a.Data())
	return v
}

func (v Vector) Scale(a float64) Vector {
	floats.Scale(a, v.Data())
	return v
}

// Reductions
func (v Vector) Norm() float64 { return floats.Norm(v.Data(), 2) }

func (v Vector) Sum() float64 { return floats.Sum(v.Data()) }

func (v Vector) checkLen(a Vector) {
	if v.Len() != a.Len() {
		err := fmt.Errorf("vector length mismatch: %v vs %v", v.Len(), a.Len())
		panic(err)
	}
}
