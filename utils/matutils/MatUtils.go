// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// RowMax computes and returns the maximum of each row of a matrix
func RowMax(matrix *mat.Dense) *mat.VecDense {
	r, _ := matrix.Dims()
	rowMax := make([]float64, r)

	for i := 0; i < r; i++ {
		rowMax[i] = floats.Max(matrix.RawRowView(i))
	}
	return mat.NewVecDense(r, rowMax)
}

// Reshape returns the values of a vector as a rows x cols matrix in
// row-major order. It panics if the vector does not have rows*cols
// elements.
func Reshape(v mat.Vector, rows, cols int) *mat.Dense {
	if v.Len() != rows*cols {
		panic(fmt.Sprintf("reshape: cannot reshape %d elements to (%d, %d)",
			v.Len(), rows, cols))
	}
	data := make([]float64, v.Len())
	for i := range data {
		data[i] = v.AtVec(i)
	}
	return mat.NewDense(rows, cols, data)
}

// MaxAbsDiff returns the largest absolute element-wise difference of
// two vectors of equal length
func MaxAbsDiff(a, b mat.Vector) float64 {
	if a.Len() != b.Len() {
		panic("maxAbsDiff: vectors have different lengths")
	}
	var max float64
	for i := 0; i < a.Len(); i++ {
		d := a.AtVec(i) - b.AtVec(i)
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}
