package metrics

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

// CrossEntropyEpsilon is added to probabilities before taking the log.
const CrossEntropyEpsilon = 1e-15

// ArgMax returns the index of the largest entry. Ties go to the lowest index.
// It returns -1 for an empty slice.
func ArgMax(v []float64) int {
	if len(v) == 0 {
		return -1
	}
	return floats.MaxIdx(v)
}

// Accuracy returns the fraction of equal labels.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if yTrue == nil || yTrue.Len() == 0 {
		return 0, errors.NewValueError("Accuracy", "empty vector")
	}
	n := yTrue.Len()
	if yPred == nil || yPred.Len() != n {
		return 0, errors.NewDimensionError("Accuracy", n, lenOf(yPred), 0)
	}

	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// OneHotAccuracy compares the argmax of every row of scores with the argmax of
// the matching one-hot target row.
func OneHotAccuracy(yTrue, scores mat.Matrix) (float64, error) {
	r, c := yTrue.Dims()
	rs, cs := scores.Dims()
	if r == 0 || c == 0 {
		return 0, errors.NewValueError("OneHotAccuracy", "empty matrix")
	}
	if r != rs {
		return 0, errors.NewDimensionError("OneHotAccuracy", r, rs, 0)
	}
	if c != cs {
		return 0, errors.NewDimensionError("OneHotAccuracy", c, cs, 1)
	}

	t := make([]float64, c)
	p := make([]float64, c)
	correct := 0
	for i := 0; i < r; i++ {
		if ArgMax(mat.Row(t, i, yTrue)) == ArgMax(mat.Row(p, i, scores)) {
			correct++
		}
	}
	return float64(correct) / float64(r), nil
}

// SampleCrossEntropy is -Σ log(p[j] + ε) over the classes j whose target is exactly 1.
func SampleCrossEntropy(target, probs []float64) float64 {
	var loss float64
	for j, y := range target {
		if y == 1 {
			loss -= math.Log(probs[j] + CrossEntropyEpsilon)
		}
	}
	return loss
}

// CrossEntropy returns the mean SampleCrossEntropy over the rows of one-hot
// targets and predicted probabilities.
func CrossEntropy(yTrue, probs mat.Matrix) (float64, error) {
	r, c := yTrue.Dims()
	rp, cp := probs.Dims()
	if r == 0 || c == 0 {
		return 0, errors.NewValueError("CrossEntropy", "empty matrix")
	}
	if r != rp {
		return 0, errors.NewDimensionError("CrossEntropy", r, rp, 0)
	}
	if c != cp {
		return 0, errors.NewDimensionError("CrossEntropy", c, cp, 1)
	}

	t := make([]float64, c)
	p := make([]float64, c)
	var total float64
	for i := 0; i < r; i++ {
		total += SampleCrossEntropy(mat.Row(t, i, yTrue), mat.Row(p, i, probs))
	}
	return total / float64(r), nil
}
