package preprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/pkg/errors"
)

func TestStandardScaler_FitTransform(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 10,
		3, 10,
		4, 10,
	})

	scaler := NewStandardScalerDefault()
	scaled, err := scaler.FitTransform(X)
	require.NoError(t, err)

	assert.InDeltaSlice(t, []float64{2.5, 10}, scaler.Mean(), 1e-12)
	// 2列目は定数なので 1 で割る
	assert.InDeltaSlice(t, []float64{math.Sqrt(1.25), 1}, scaler.Scale(), 1e-12)

	var sum, sumSq float64
	for i := 0; i < 4; i++ {
		v := scaled.At(i, 0)
		sum += v
		sumSq += v * v
		assert.Equal(t, 0.0, scaled.At(i, 1))
	}
	assert.InDelta(t, 0.0, sum/4, 1e-12)
	assert.InDelta(t, 1.0, sumSq/4, 1e-12)

	restored, err := scaler.InverseTransform(scaled)
	require.NoError(t, err)
	assert.True(t, mat.EqualApprox(X, restored, 1e-12))
}

func TestStandardScaler_Options(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{2, 4, 6})

	tests := []struct {
		name     string
		withMean bool
		withStd  bool
		want     []float64
	}{
		{"mean only", true, false, []float64{-2, 0, 2}},
		{"std only", false, true, []float64{2 / math.Sqrt(8.0/3), 4 / math.Sqrt(8.0/3), 6 / math.Sqrt(8.0/3)}},
		{"neither", false, false, []float64{2, 4, 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scaled, err := NewStandardScaler(tt.withMean, tt.withStd).FitTransform(X)
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, mat.Col(nil, 0, scaled), 1e-12)
		})
	}
}

func TestStandardScaler_Errors(t *testing.T) {
	scaler := NewStandardScalerDefault()

	_, err := scaler.Transform(mat.NewDense(1, 1, nil))
	assert.True(t, errors.IsNotFitted(err))

	err = scaler.Fit(&mat.Dense{})
	assert.True(t, errors.Is(err, errors.ErrEmptyData))

	err = scaler.Fit(mat.NewDense(2, 1, []float64{1, math.NaN()}))
	assert.True(t, errors.IsInvalidInput(err))

	require.NoError(t, scaler.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = scaler.Transform(mat.NewDense(1, 3, nil))
	assert.True(t, errors.IsInvalidInput(err))

	assert.Contains(t, scaler.String(), "n_features=2")
	assert.Equal(t, true, scaler.GetParams()["with_mean"])
}

func TestOneHot(t *testing.T) {
	Y, err := OneHot([]int{0, 2, 1, 2}, 3)
	require.NoError(t, err)

	r, c := Y.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, []float64{
		1, 0, 0,
		0, 0, 1,
		0, 1, 0,
		0, 0, 1,
	}, Y.RawMatrix().Data)

	assert.Equal(t, []int{0, 2, 1, 2}, ArgMaxRows(Y))
}

func TestOneHot_Errors(t *testing.T) {
	_, err := OneHot(nil, 3)
	assert.True(t, errors.IsInvalidInput(err))

	_, err = OneHot([]int{0, 1}, 0)
	assert.True(t, errors.IsInvalidInput(err))

	_, err = OneHot([]int{0, 3}, 3)
	assert.True(t, errors.IsInvalidInput(err))

	_, err = OneHot([]int{-1}, 3)
	assert.True(t, errors.IsInvalidInput(err))
}

func TestArgMaxRows_TiesGoToLowestIndex(t *testing.T) {
	scores := mat.NewDense(3, 3, []float64{
		0.2, 0.4, 0.4,
		0.5, 0.5, 0.0,
		0.1, 0.1, 0.8,
	})
	assert.Equal(t, []int{1, 0, 2}, ArgMaxRows(scores))
}
