// Package linear implements multi-output linear regression fitted either by
// batch gradient descent or by the normal equation, plus a two-feature variant
// that records its gradient-descent trajectory.
package linear

import (
	"context"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/core/matrix"
	"github.com/YuminosukeSato/linfit/core/model"
	"github.com/YuminosukeSato/linfit/metrics"
	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

// Mode は重みの推定方法
type Mode int

const (
	// GradientDescent は固定回数のバッチ勾配降下法
	GradientDescent Mode = iota
	// ClosedForm は正規方程式 (AᵗA)⁻¹AᵗY による厳密解
	ClosedForm
)

func (m Mode) String() string {
	switch m {
	case GradientDescent:
		return log.SolverGradientDescent
	case ClosedForm:
		return log.SolverClosedForm
	default:
		return "unknown"
	}
}

const modelName = "LinearRegression"

// LinearRegression は多出力の線形回帰モデル。
// 重み行列は (特徴量数+1)×出力数 で、行0がバイアス。
// 推定方法は生成時に決まり、以後変更できない。
type LinearRegression struct {
	state *model.StateManager
	cfg   config

	mode          Mode
	learningRate  float64
	maxIterations int

	mu      sync.RWMutex
	weights *mat.Dense
}

// NewGradientDescent は勾配降下法で学習する線形回帰モデルを作成する。
// ハイパーパラメータの検証は Fit 時に行う。
func NewGradientDescent(learningRate float64, maxIterations int, opts ...Option) *LinearRegression {
	return &LinearRegression{
		state:         model.NewStateManager(),
		cfg:           newConfig(modelName, opts),
		mode:          GradientDescent,
		learningRate:  learningRate,
		maxIterations: maxIterations,
	}
}

// NewClosedForm は正規方程式で学習する線形回帰モデルを作成する。
func NewClosedForm(opts ...Option) *LinearRegression {
	return &LinearRegression{
		state:  model.NewStateManager(),
		cfg:    newConfig(modelName, opts),
		mode:   ClosedForm,
	}
}

// Fit はモデルを X (n×F) と Y (n×O) で学習させる。
//
// 失敗した場合（空データ、行数不一致、特異行列など）モデルは未学習状態になり、
// 以前の重みも破棄される。
func (lr *LinearRegression) Fit(X, Y mat.Matrix) error {
	const op = modelName + ".Fit"

	nSamples, nFeatures, nOutputs, err := model.ValidateTrainingData(op, X, Y)
	if err != nil {
		lr.reset()
		return err
	}

	logger := lr.cfg.logger.With(log.SolverKey, lr.mode.String())
	fields := []any{
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.TargetsKey, nOutputs,
	}
	if lr.mode == GradientDescent {
		fields = append(fields,
			log.LearningRateKey, lr.learningRate,
			log.MaxIterationsKey, lr.maxIterations,
			log.RandomSeedKey, lr.cfg.randomState,
		)
	}
	logger.Info("Training started", fields...)
	start := time.Now()

	var weights *mat.Dense
	switch lr.mode {
	case ClosedForm:
		weights, err = solveNormalEquation(X, Y)
	default:
		if err = model.ValidateGradientParams(lr.learningRate, lr.maxIterations); err == nil {
			weights = lr.gradientDescent(logger, X, Y, nSamples, nFeatures, nOutputs)
		}
	}
	if err != nil {
		lr.reset()
		return err
	}

	lr.mu.Lock()
	lr.weights = weights
	lr.mu.Unlock()
	lr.state.SetFitted(nFeatures, nOutputs, nSamples)

	if logger.Enabled(context.Background(), log.LevelInfo) {
		mse, _ := trainingMSE(weights, X, Y)
		logger.Info("Training completed",
			log.DurationMsKey, time.Since(start).Milliseconds(),
			log.MSEKey, mse,
		)
	}
	return nil
}

// solveNormalEquation は W = (AᵗA)⁻¹ · AᵗY を計算する。A は X の先頭に1の列を加えた行列。
// 反復による代替手段はなく、特異行列の場合はそのままエラーを返す。
func solveNormalEquation(X, Y mat.Matrix) (*mat.Dense, error) {
	a := matrix.AugmentBias(X)
	at := matrix.Transpose(a)

	ata, err := matrix.Multiply(at, a)
	if err != nil {
		return nil, err
	}
	ataInv, err := matrix.Invert(ata)
	if err != nil {
		return nil, errors.Wrap(err, "closed-form solution")
	}
	aty, err := matrix.Multiply(at, Y)
	if err != nil {
		return nil, err
	}
	return matrix.Multiply(ataInv, aty)
}

// gradientDescent はバッチ勾配降下法を maxIterations 回だけ実行する。
// 収束判定や学習率の減衰は行わない。
func (lr *LinearRegression) gradientDescent(logger log.Logger, X, Y mat.Matrix, nSamples, nFeatures, nOutputs int) *mat.Dense {
	w := model.UniformWeights(nFeatures+1, nOutputs, lr.cfg.randomState, model.GradientInitScale)
	grad := mat.NewDense(nFeatures+1, nOutputs, nil)

	x := make([]float64, nFeatures)
	y := make([]float64, nOutputs)
	residual := make([]float64, nOutputs)
	debug := logger.Enabled(context.Background(), log.LevelDebug)

	for iter := 0; iter < lr.maxIterations; iter++ {
		grad.Zero()
		var sse float64

		for i := 0; i < nSamples; i++ {
			mat.Row(x, i, X)
			mat.Row(y, i, Y)
			model.AffineInto(residual, w, x)
			for j := range residual {
				residual[j] -= y[j]
				sse += residual[j] * residual[j]
			}
			model.AccumulateGradient(grad, residual, x)
		}

		model.ApplyGradient(w, grad, lr.learningRate, nSamples)

		if debug && lr.cfg.shouldLog(iter, lr.maxIterations) {
			logger.Debug("Training progress",
				log.IterationKey, iter,
				log.MSEKey, sse/float64(nSamples*nOutputs),
			)
		}
	}

	// 発散しても学習は完了扱いにし、警告だけ出す
	if err := errors.CheckMatrix(modelName+".gradient_descent", w, lr.maxIterations); err != nil {
		errors.Warn(err)
	}
	return w
}

// Predict は X の各行に対する予測を n×O 行列で返す。
func (lr *LinearRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if err := lr.state.RequireFeatures(modelName, "Predict", c); err != nil {
		return nil, err
	}

	lr.mu.RLock()
	defer lr.mu.RUnlock()
	lr.cfg.logger.Debug("Predicting", log.OperationKey, log.OperationPredict, log.SamplesKey, r)
	return predictAffine(lr.weights, X, r, c), nil
}

// PredictOne は1サンプルの予測 bias + Wᵗx を返す。
func (lr *LinearRegression) PredictOne(x []float64) ([]float64, error) {
	if err := lr.state.RequireFeatures(modelName, "PredictOne", len(x)); err != nil {
		return nil, err
	}

	lr.mu.RLock()
	defer lr.mu.RUnlock()
	_, nOutputs := lr.weights.Dims()
	out := make([]float64, nOutputs)
	model.AffineInto(out, lr.weights, x)
	return out, nil
}

// Weights は (F+1)×O の重み行列のコピーを返す。行0がバイアス。
func (lr *LinearRegression) Weights() (*mat.Dense, error) {
	if err := lr.state.RequireFitted(modelName, "Weights"); err != nil {
		return nil, err
	}
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	return mat.DenseCopyOf(lr.weights), nil
}

// Coef は特徴量の係数 (F×O) を返す。未学習なら nil。
func (lr *LinearRegression) Coef() *mat.Dense {
	if !lr.state.IsFitted() {
		return nil
	}
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	r, c := lr.weights.Dims()
	return mat.DenseCopyOf(lr.weights.Slice(1, r, 0, c))
}

// Intercept は各出力のバイアスを返す。未学習なら nil。
func (lr *LinearRegression) Intercept() []float64 {
	if !lr.state.IsFitted() {
		return nil
	}
	lr.mu.RLock()
	defer lr.mu.RUnlock()
	return mat.Row(nil, 0, lr.weights)
}

// Score は出力ごとの決定係数（R²）の平均を返す。
func (lr *LinearRegression) Score(X, Y mat.Matrix) (float64, error) {
	yPred, err := lr.Predict(X)
	if err != nil {
		return 0, err
	}
	score, err := metrics.R2ScoreMatrix(Y, yPred)
	if err != nil {
		return 0, err
	}
	lr.cfg.logger.Debug("Scored", log.OperationKey, log.OperationScore, log.R2Key, score)
	return score, nil
}

// Mode は推定方法を返す。
func (lr *LinearRegression) Mode() Mode {
	return lr.mode
}

// IsFitted は学習済みかどうかを返す。
func (lr *LinearRegression) IsFitted() bool {
	return lr.state.IsFitted()
}

// NFeatures は学習時の特徴量数を返す。
func (lr *LinearRegression) NFeatures() int {
	n, _, _ := lr.state.Dimensions()
	return n
}

// NOutputs は学習時の出力数を返す。
func (lr *LinearRegression) NOutputs() int {
	_, n, _ := lr.state.Dimensions()
	return n
}

// GetParams はハイパーパラメータを返す。
func (lr *LinearRegression) GetParams() map[string]interface{} {
	params := map[string]interface{}{
		"solver": lr.mode.String(),
	}
	if lr.mode == GradientDescent {
		params["learning_rate"] = lr.learningRate
		params["max_iterations"] = lr.maxIterations
		params["random_state"] = lr.cfg.randomState
	}
	return params
}

func (lr *LinearRegression) reset() {
	lr.mu.Lock()
	lr.weights = nil
	lr.mu.Unlock()
	lr.state.Reset()
}

func predictAffine(w *mat.Dense, X mat.Matrix, rows, cols int) *mat.Dense {
	_, nOutputs := w.Dims()
	out := mat.NewDense(rows, nOutputs, nil)
	x := make([]float64, cols)
	for i := 0; i < rows; i++ {
		model.AffineInto(out.RawRowView(i), w, mat.Row(x, i, X))
	}
	return out
}

func trainingMSE(w *mat.Dense, X, Y mat.Matrix) (float64, error) {
	r, c := X.Dims()
	return metrics.MSEMatrix(Y, predictAffine(w, X, r, c))
}

var (
	_ model.Estimator       = (*LinearRegression)(nil)
	_ model.Scorer          = (*LinearRegression)(nil)
	_ model.ParameterGetter = (*LinearRegression)(nil)
)
