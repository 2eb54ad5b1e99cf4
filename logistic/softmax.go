// Package logistic implements multinomial logistic (softmax) regression
// trained by batch gradient descent on one-hot targets.
package logistic

import (
	"context"
	"math"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/core/model"
	"github.com/YuminosukeSato/linfit/metrics"
	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

const modelName = "SoftmaxRegression"

// Softmax converts logits into a probability vector. The largest logit is
// subtracted before exponentiation, so the result sums to 1 even for very
// large or very small inputs.
func Softmax(logits []float64) []float64 {
	if len(logits) == 0 {
		return nil
	}
	maxLogit := floats.Max(logits)
	probs := make([]float64, len(logits))
	for i, z := range logits {
		probs[i] = math.Exp(z - maxLogit)
	}
	floats.Scale(1/floats.Sum(probs), probs)
	return probs
}

// SoftmaxRegression is a multinomial classifier over K classes.
// Weights are (F+1)×K with the bias in row 0, as in linear.LinearRegression.
type SoftmaxRegression struct {
	state *model.StateManager
	cfg   config

	learningRate  float64
	maxIterations int

	mu          sync.RWMutex
	weights     *mat.Dense
	lossHistory []float64
}

// NewSoftmaxRegression creates a classifier trained by batch gradient descent
// for exactly maxIterations iterations.
func NewSoftmaxRegression(learningRate float64, maxIterations int, opts ...Option) *SoftmaxRegression {
	return &SoftmaxRegression{
		state:         model.NewStateManager(),
		cfg:           newConfig(opts),
		learningRate:  learningRate,
		maxIterations: maxIterations,
	}
}

// Fit trains on X (n×F) and one-hot targets Y (n×K).
func (s *SoftmaxRegression) Fit(X, Y mat.Matrix) error {
	const op = modelName + ".Fit"

	nSamples, nFeatures, nClasses, err := model.ValidateTrainingData(op, X, Y)
	if err == nil {
		err = model.ValidateGradientParams(s.learningRate, s.maxIterations)
	}
	if err != nil {
		s.reset()
		return err
	}

	logger := s.cfg.logger.With(log.SolverKey, log.SolverGradientDescent)
	logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.TargetsKey, nClasses,
		log.LearningRateKey, s.learningRate,
		log.MaxIterationsKey, s.maxIterations,
		log.RandomSeedKey, s.cfg.randomState,
	)
	start := time.Now()

	w := model.UniformWeights(nFeatures+1, nClasses, s.cfg.randomState, model.GradientInitScale)
	grad := mat.NewDense(nFeatures+1, nClasses, nil)
	history := make([]float64, 0, s.maxIterations)

	x := make([]float64, nFeatures)
	y := make([]float64, nClasses)
	logits := make([]float64, nClasses)
	debug := logger.Enabled(context.Background(), log.LevelDebug)

	for iter := 0; iter < s.maxIterations; iter++ {
		grad.Zero()
		var loss float64

		for i := 0; i < nSamples; i++ {
			mat.Row(x, i, X)
			mat.Row(y, i, Y)
			model.AffineInto(logits, w, x)
			probs := Softmax(logits)
			loss += metrics.SampleCrossEntropy(y, probs)

			// p - y を残差として線形回帰と同じ形で勾配に積む
			floats.Sub(probs, y)
			model.AccumulateGradient(grad, probs, x)
		}

		model.ApplyGradient(w, grad, s.learningRate, nSamples)

		mean := loss / float64(nSamples)
		history = append(history, mean)
		if debug && (iter%s.cfg.logInterval == 0 || iter == s.maxIterations-1) {
			logger.Debug("Training progress", log.IterationKey, iter, log.LossKey, mean)
		}
	}

	if err := errors.CheckMatrix(modelName+".gradient_descent", w, s.maxIterations); err != nil {
		errors.Warn(err)
	}

	s.mu.Lock()
	s.weights = w
	s.lossHistory = history
	s.mu.Unlock()
	s.state.SetFitted(nFeatures, nClasses, nSamples)

	fields := []any{log.DurationMsKey, time.Since(start).Milliseconds()}
	if len(history) > 0 {
		fields = append(fields, log.LossKey, history[len(history)-1])
	}
	logger.Info("Training completed", fields...)
	return nil
}

// Predict returns an n×K matrix of class probabilities.
func (s *SoftmaxRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if err := s.state.RequireFeatures(modelName, "Predict", c); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	s.cfg.logger.Debug("Predicting", log.OperationKey, log.OperationPredict, log.SamplesKey, r)
	_, k := s.weights.Dims()
	out := mat.NewDense(r, k, nil)
	x := make([]float64, c)
	for i := 0; i < r; i++ {
		row := out.RawRowView(i)
		model.AffineInto(row, s.weights, mat.Row(x, i, X))
		copy(row, Softmax(row))
	}
	return out, nil
}

// PredictOne returns the probability vector for one sample.
func (s *SoftmaxRegression) PredictOne(x []float64) ([]float64, error) {
	if err := s.state.RequireFeatures(modelName, "PredictOne", len(x)); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	_, k := s.weights.Dims()
	logits := make([]float64, k)
	model.AffineInto(logits, s.weights, x)
	return Softmax(logits), nil
}

// PredictClass returns the index of the most probable class.
// Ties go to the lowest index.
func (s *SoftmaxRegression) PredictClass(x []float64) (int, error) {
	probs, err := s.PredictOne(x)
	if err != nil {
		return -1, err
	}
	return metrics.ArgMax(probs), nil
}

// PredictClasses returns PredictClass for every row of X.
func (s *SoftmaxRegression) PredictClasses(X mat.Matrix) ([]int, error) {
	probs, err := s.Predict(X)
	if err != nil {
		return nil, err
	}
	r, k := probs.Dims()
	classes := make([]int, r)
	row := make([]float64, k)
	for i := range classes {
		classes[i] = metrics.ArgMax(mat.Row(row, i, probs))
	}
	return classes, nil
}

// Score returns the accuracy against one-hot targets Y.
func (s *SoftmaxRegression) Score(X, Y mat.Matrix) (float64, error) {
	probs, err := s.Predict(X)
	if err != nil {
		return 0, err
	}
	acc, err := metrics.OneHotAccuracy(Y, probs)
	if err != nil {
		return 0, err
	}
	s.cfg.logger.Debug("Scored", log.OperationKey, log.OperationScore, log.AccuracyKey, acc)
	return acc, nil
}

// LossHistory returns the mean cross-entropy of every iteration, measured with
// the weights at the start of that iteration.
func (s *SoftmaxRegression) LossHistory() []float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]float64, len(s.lossHistory))
	copy(out, s.lossHistory)
	return out
}

// Weights returns a copy of the (F+1)×K weight matrix.
func (s *SoftmaxRegression) Weights() (*mat.Dense, error) {
	if err := s.state.RequireFitted(modelName, "Weights"); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return mat.DenseCopyOf(s.weights), nil
}

// NClasses returns the number of classes seen during Fit, or 0 before fitting.
func (s *SoftmaxRegression) NClasses() int {
	_, k, _ := s.state.Dimensions()
	return k
}

func (s *SoftmaxRegression) IsFitted() bool {
	return s.state.IsFitted()
}

// GetParams returns the hyperparameters.
func (s *SoftmaxRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"learning_rate":  s.learningRate,
		"max_iterations": s.maxIterations,
		"random_state":   s.cfg.randomState,
	}
}

func (s *SoftmaxRegression) reset() {
	s.mu.Lock()
	s.weights = nil
	s.lossHistory = nil
	s.mu.Unlock()
	s.state.Reset()
}

var (
	_ model.Classifier      = (*SoftmaxRegression)(nil)
	_ model.WeightInspector = (*SoftmaxRegression)(nil)
	_ model.Scorer          = (*SoftmaxRegression)(nil)
	_ model.ParameterGetter = (*SoftmaxRegression)(nil)
)
