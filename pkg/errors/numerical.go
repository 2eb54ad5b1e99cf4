package errors

import (
	"math"
)

// maxReportedValues bounds how many offending values an instability error carries.
const maxReportedValues = 10

// CheckNumericalStability returns a NumericalInstabilityError if values contain NaN or Inf.
func CheckNumericalStability(operation string, values []float64, iteration int) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewNumericalInstabilityError(operation, values, iteration)
		}
	}
	return nil
}

// CheckScalar checks a single scalar value for numerical instability.
func CheckScalar(operation string, value float64, iteration int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value}, iteration)
	}
	return nil
}

// CheckMatrix scans every entry of a matrix and reports the first non-finite values found.
// Pass iteration = -1 when validating caller input rather than training state.
func CheckMatrix(operation string, matrix interface{ Dims() (int, int); At(int, int) float64 }, iteration int) error {
	rows, cols := matrix.Dims()
	var unstable []float64

	for i := 0; i < rows && len(unstable) < maxReportedValues; i++ {
		for j := 0; j < cols; j++ {
			v := matrix.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				unstable = append(unstable, v)
				if len(unstable) >= maxReportedValues {
					break
				}
			}
		}
	}

	if len(unstable) > 0 {
		return NewNumericalInstabilityError(operation, unstable, iteration)
	}
	return nil
}
