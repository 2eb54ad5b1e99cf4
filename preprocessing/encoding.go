package preprocessing

import (
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/metrics"
	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// OneHot encodes class indices in [0, k) as an n×k matrix with a single 1 per row.
func OneHot(labels []int, k int) (*mat.Dense, error) {
	if len(labels) == 0 {
		return nil, errors.NewModelError("OneHot", "empty data", errors.ErrEmptyData)
	}
	if k <= 0 {
		return nil, errors.NewValidationError("k", "must be positive", k)
	}

	out := mat.NewDense(len(labels), k, nil)
	for i, c := range labels {
		if c < 0 || c >= k {
			return nil, errors.NewValueError("OneHot", "label "+strconv.Itoa(c)+" at row "+strconv.Itoa(i)+" is out of range")
		}
		out.Set(i, c, 1)
	}
	return out, nil
}

// ArgMaxRows returns the column index of the largest entry in every row.
// It decodes one-hot targets and turns score matrices into class labels.
func ArgMaxRows(m mat.Matrix) []int {
	r, c := m.Dims()
	out := make([]int, r)
	row := make([]float64, c)
	for i := range out {
		out[i] = metrics.ArgMax(mat.Row(row, i, m))
	}
	return out
}
