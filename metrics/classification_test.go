package metrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestArgMax(t *testing.T) {
	tests := []struct {
		name string
		v    []float64
		want int
	}{
		{"single", []float64{0.3}, 0},
		{"clear max", []float64{0.1, 0.7, 0.2}, 1},
		{"tie resolves to lowest index", []float64{0.4, 0.4, 0.2}, 0},
		{"tie later in slice", []float64{0.1, 0.45, 0.45}, 1},
		{"empty", nil, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ArgMax(tt.v))
		})
	}
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []float64
		yPred   []float64
		want    float64
		wantErr bool
	}{
		{"perfect accuracy", []float64{0, 1, 2, 1, 0}, []float64{0, 1, 2, 1, 0}, 1.0, false},
		{"80% accuracy", []float64{0, 1, 2, 1, 0}, []float64{0, 1, 1, 1, 0}, 0.8, false},
		{"zero accuracy", []float64{0, 0, 0}, []float64{1, 1, 1}, 0.0, false},
		{"empty vectors", nil, nil, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var yTrue, yPred *mat.VecDense
			if len(tt.yTrue) > 0 {
				yTrue = mat.NewVecDense(len(tt.yTrue), tt.yTrue)
			}
			if len(tt.yPred) > 0 {
				yPred = mat.NewVecDense(len(tt.yPred), tt.yPred)
			}

			got, err := Accuracy(yTrue, yPred)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestOneHotAccuracy(t *testing.T) {
	yTrue := mat.NewDense(3, 2, []float64{
		1, 0,
		0, 1,
		0, 1,
	})
	scores := mat.NewDense(3, 2, []float64{
		0.9, 0.1,
		0.2, 0.8,
		0.6, 0.4,
	})
	got, err := OneHotAccuracy(yTrue, scores)
	require.NoError(t, err)
	assert.InDelta(t, 2.0/3.0, got, 1e-12)
}

func TestCrossEntropy(t *testing.T) {
	yTrue := mat.NewDense(2, 2, []float64{
		1, 0,
		0, 1,
	})
	probs := mat.NewDense(2, 2, []float64{
		0.5, 0.5,
		0.0, 1.0,
	})

	got, err := CrossEntropy(yTrue, probs)
	require.NoError(t, err)
	want := (-math.Log(0.5+CrossEntropyEpsilon) - math.Log(1.0+CrossEntropyEpsilon)) / 2
	assert.InDelta(t, want, got, 1e-12)

	// 確率0でもεにより有限値になる
	worst := SampleCrossEntropy([]float64{1, 0}, []float64{0, 1})
	assert.False(t, math.IsInf(worst, 0))
	assert.InDelta(t, -math.Log(CrossEntropyEpsilon), worst, 1e-9)

	_, err = CrossEntropy(yTrue, mat.NewDense(3, 2, nil))
	assert.Error(t, err)
}
