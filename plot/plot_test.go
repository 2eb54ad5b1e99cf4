package plot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/dataset"
	"github.com/YuminosukeSato/linfit/linear"
	"github.com/YuminosukeSato/linfit/logistic"
	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

func quietLogger() log.Logger {
	logger, _ := log.NewTestLogger(log.LevelError)
	return logger
}

func requireNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestDecisionRegions(t *testing.T) {
	X, Y := dataset.ThreeClusters()
	clf := logistic.NewSoftmaxRegression(0.1, 200, logistic.WithLogger(quietLogger()))
	require.NoError(t, clf.Fit(X, Y))

	logger, _ := log.NewTestLogger(log.LevelInfo)
	path := filepath.Join(t.TempDir(), "regions.png")
	require.NoError(t, DecisionRegions(clf, X, Y, path, WithResolution(20), WithLogger(logger), WithTitle("three clusters")))

	requireNonEmptyFile(t, path)
	assert.True(t, logger.ContainsField(log.OutputPathKey, path))
	assert.True(t, logger.ContainsField(log.PlotKindKey, "decision_regions"))
}

func TestDecisionRegions_SingleOutputModel(t *testing.T) {
	X, y := dataset.Stripes()
	m := linear.NewPathRegression(0.5, 100, linear.WithLogger(quietLogger()))
	require.NoError(t, m.Fit(X, y))

	path := filepath.Join(t.TempDir(), "stripes.svg")
	require.NoError(t, DecisionRegions(m, X, y, path, WithResolution(10), WithLogger(quietLogger())))
	requireNonEmptyFile(t, path)
}

func TestDecisionRegions_Errors(t *testing.T) {
	X, Y := dataset.ThreeClusters()
	dir := t.TempDir()

	unfitted := logistic.NewSoftmaxRegression(0.1, 10)
	err := DecisionRegions(unfitted, X, Y, filepath.Join(dir, "a.png"), WithLogger(quietLogger()))
	assert.True(t, errors.IsNotFitted(err))

	err = DecisionRegions(unfitted, mat.NewDense(2, 3, nil), mat.NewDense(2, 1, nil), filepath.Join(dir, "b.png"))
	assert.True(t, errors.IsInvalidInput(err))

	err = DecisionRegions(unfitted, X, mat.NewDense(2, 3, nil), filepath.Join(dir, "c.png"))
	assert.True(t, errors.IsInvalidInput(err))

	_, statErr := os.Stat(filepath.Join(dir, "a.png"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestTrajectory(t *testing.T) {
	X, y := dataset.Stripes()
	m := linear.NewPathRegression(0.5, 500, linear.WithLogger(quietLogger()))
	require.NoError(t, m.Fit(X, y))

	path := filepath.Join(t.TempDir(), "surface.png")
	require.NoError(t, Trajectory(m, X, y, path, WithResolution(15), WithLogger(quietLogger())))
	requireNonEmptyFile(t, path)
}

func TestTrajectory_Errors(t *testing.T) {
	X, y := dataset.Stripes()
	dir := t.TempDir()

	err := Trajectory(linear.NewPathRegression(0.5, 10), X, y, filepath.Join(dir, "a.png"))
	assert.True(t, errors.IsNotFitted(err))

	m := linear.NewPathRegression(0.5, 10, linear.WithLogger(quietLogger()))
	require.NoError(t, m.Fit(X, y))
	err = Trajectory(m, X, mat.NewDense(3, 1, nil), filepath.Join(dir, "b.png"))
	assert.True(t, errors.IsInvalidInput(err))

	// nil モデルのパニックはエラーに変換される
	err = Trajectory(nil, X, y, filepath.Join(dir, "c.png"))
	require.Error(t, err)
	var panicErr *errors.PanicError
	assert.True(t, errors.As(err, &panicErr))
}

func TestLossCurve(t *testing.T) {
	X, Y := dataset.TwoClusters()
	clf := logistic.NewSoftmaxRegression(0.5, 100, logistic.WithLogger(quietLogger()))
	require.NoError(t, clf.Fit(X, Y))

	path := filepath.Join(t.TempDir(), "loss.png")
	require.NoError(t, LossCurve(clf.LossHistory(), path, WithSize(200, 150), WithLogger(quietLogger())))
	requireNonEmptyFile(t, path)

	err := LossCurve(nil, path)
	assert.True(t, errors.Is(err, errors.ErrEmptyData))
}

func TestAxisSpan(t *testing.T) {
	span := axisSpan([]float64{0, 1}, 5, 0.1)
	assert.InDeltaSlice(t, []float64{-0.1, 0.25, 0.6, 0.95, 1.3}, span, 1e-12)

	// 幅0のときは ±0.5 の範囲にする
	span = axisSpan([]float64{2, 2}, 3, 0.1)
	assert.InDeltaSlice(t, []float64{1.5, 2, 2.5}, span, 1e-12)
}

func TestClassOf(t *testing.T) {
	assert.Equal(t, 1, classOf([]float64{0.7}))
	assert.Equal(t, 0, classOf([]float64{0.2}))
	assert.Equal(t, 2, classOf([]float64{0.1, 0.2, 0.7}))
	assert.Equal(t, 0, classOf([]float64{0.5, 0.5}))
}
