// Package matrix is the dense matrix kernel behind the closed-form solver:
// transpose, multiply and Gauss-Jordan inversion on row-major gonum matrices.
package matrix

import (
	"math"
	"strconv"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// SingularThreshold is the smallest pivot magnitude Invert accepts. A pivot
// below it marks the matrix as numerically non-invertible.
const SingularThreshold = 1e-10

// Transpose returns a new cols×rows matrix.
func Transpose(a mat.Matrix) *mat.Dense {
	return mat.DenseCopyOf(a.T())
}

// Multiply returns a·b. cols(a) must equal rows(b).
func Multiply(a, b mat.Matrix) (*mat.Dense, error) {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar == 0 || ac == 0 || br == 0 || bc == 0 {
		return nil, errors.NewModelError("matrix.Multiply", "empty operand", errors.ErrEmptyData)
	}
	if ac != br {
		return nil, errors.NewDimensionError("matrix.Multiply", ac, br, 0)
	}

	var out mat.Dense
	out.Mul(a, b)
	return &out, nil
}

// Identity returns the n×n identity matrix.
func Identity(n int) *mat.Dense {
	id := mat.NewDense(n, n, nil)
	for i := 0; i < n; i++ {
		id.Set(i, i, 1)
	}
	return id
}

// AugmentBias prepends a constant-1 column to x, giving the design matrix
// whose first coefficient is the bias.
func AugmentBias(x mat.Matrix) *mat.Dense {
	r, c := x.Dims()
	out := mat.NewDense(r, c+1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, 1)
		for j := 0; j < c; j++ {
			out.Set(i, j+1, x.At(i, j))
		}
	}
	return out
}

// Invert returns the inverse of the square matrix a using Gauss-Jordan
// elimination with partial pivoting on the augmented matrix [a | I].
//
// For each column the row with the largest absolute entry at or below the
// diagonal becomes the pivot row (the first one on ties). If that pivot is
// smaller than SingularThreshold the inversion stops with ErrSingularMatrix.
func Invert(a mat.Matrix) (*mat.Dense, error) {
	n, c := a.Dims()
	if n == 0 || c == 0 {
		return nil, errors.NewModelError("matrix.Invert", "empty matrix", errors.ErrEmptyData)
	}
	if n != c {
		return nil, errors.NewDimensionError("matrix.Invert", n, c, 1)
	}

	aug := mat.NewDense(n, 2*n, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			aug.Set(i, j, a.At(i, j))
		}
		aug.Set(i, n+i, 1)
	}

	tmp := make([]float64, 2*n)
	for col := 0; col < n; col++ {
		pivotRow := col
		for k := col + 1; k < n; k++ {
			if math.Abs(aug.At(k, col)) > math.Abs(aug.At(pivotRow, col)) {
				pivotRow = k
			}
		}
		if pivotRow != col {
			swapRows(aug, col, pivotRow, tmp)
		}

		pivot := aug.At(col, col)
		if math.Abs(pivot) < SingularThreshold {
			return nil, errors.NewModelError("matrix.Invert",
				"pivot below threshold in column "+strconv.Itoa(col), errors.ErrSingularMatrix)
		}

		pr := aug.RawRowView(col)
		floats.Scale(1/pivot, pr)

		for k := 0; k < n; k++ {
			if k == col {
				continue
			}
			factor := aug.At(k, col)
			floats.AddScaled(aug.RawRowView(k), -factor, pr)
		}
	}

	return mat.DenseCopyOf(aug.Slice(0, n, n, 2*n)), nil
}

func swapRows(m *mat.Dense, i, j int, tmp []float64) {
	ri, rj := m.RawRowView(i), m.RawRowView(j)
	copy(tmp, ri)
	copy(ri, rj)
	copy(rj, tmp)
}
