package linear

import (
	"context"
	"math/rand"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/linfit/core/model"
	"github.com/YuminosukeSato/linfit/pkg/errors"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

const (
	// PathRecordInterval is the spacing, in iterations, between recorded trajectory steps.
	PathRecordInterval = 5

	// PathInitScale is the width of the initial weight range, [-0.05, 0.05).
	PathInitScale = 0.1

	pathModelName = "PathRegression"
)

// PathStep is one point of the gradient-descent trajectory.
type PathStep struct {
	Weight1 float64
	Weight2 float64
	Loss    float64
}

// PathRegression fits y = bias + w1·x1 + w2·x2 by batch gradient descent and
// records the (w1, w2, MSE) path it takes. It exists to visualize how the
// optimizer moves across the error surface.
type PathRegression struct {
	state *model.StateManager
	cfg   config

	learningRate  float64
	maxIterations int

	mu         sync.RWMutex
	bias       float64
	w1, w2     float64
	trajectory []PathStep
}

// NewPathRegression creates a two-feature regressor that keeps its trajectory.
func NewPathRegression(learningRate float64, maxIterations int, opts ...Option) *PathRegression {
	return &PathRegression{
		state:         model.NewStateManager(),
		cfg:           newConfig(pathModelName, opts),
		learningRate:  learningRate,
		maxIterations: maxIterations,
	}
}

// Fit trains on X (n×2) and y (n×1).
//
// The initial weights and their MSE are recorded first. Afterwards a step is
// recorded every PathRecordInterval iterations and on the final one, holding
// the updated weights and the MSE measured before that update.
func (p *PathRegression) Fit(X, y mat.Matrix) error {
	const op = pathModelName + ".Fit"

	nSamples, nFeatures, nOutputs, err := model.ValidateTrainingData(op, X, y)
	if err == nil && nFeatures != 2 {
		err = errors.NewDimensionError(op, 2, nFeatures, 1)
	}
	if err == nil && nOutputs != 1 {
		err = errors.NewDimensionError(op+".y", 1, nOutputs, 1)
	}
	if err == nil {
		err = model.ValidateGradientParams(p.learningRate, p.maxIterations)
	}
	if err != nil {
		p.reset()
		return err
	}

	logger := p.cfg.logger.With(log.SolverKey, log.SolverGradientDescent)
	logger.Info("Training started",
		log.OperationKey, log.OperationFit,
		log.SamplesKey, nSamples,
		log.FeaturesKey, nFeatures,
		log.LearningRateKey, p.learningRate,
		log.MaxIterationsKey, p.maxIterations,
		log.RandomSeedKey, p.cfg.randomState,
	)

	rng := rand.New(rand.NewSource(p.cfg.randomState))
	bias := (rng.Float64() - 0.5) * PathInitScale
	w1 := (rng.Float64() - 0.5) * PathInitScale
	w2 := (rng.Float64() - 0.5) * PathInitScale

	x1 := mat.Col(nil, 0, X)
	x2 := mat.Col(nil, 1, X)
	ys := mat.Col(nil, 0, y)
	n := float64(nSamples)

	trajectory := make([]PathStep, 0, 2+p.maxIterations/PathRecordInterval)
	trajectory = append(trajectory, PathStep{Weight1: w1, Weight2: w2, Loss: squaredError(x1, x2, ys, bias, w1, w2)})

	debug := logger.Enabled(context.Background(), log.LevelDebug)
	for iter := 0; iter < p.maxIterations; iter++ {
		var gb, g1, g2, sse float64
		for i := range ys {
			r := bias + w1*x1[i] + w2*x2[i] - ys[i]
			gb += r
			g1 += r * x1[i]
			g2 += r * x2[i]
			sse += r * r
		}
		bias -= p.learningRate * (gb / n)
		w1 -= p.learningRate * (g1 / n)
		w2 -= p.learningRate * (g2 / n)

		last := iter == p.maxIterations-1
		if iter%PathRecordInterval == 0 || last {
			trajectory = append(trajectory, PathStep{Weight1: w1, Weight2: w2, Loss: sse / n})
		}
		if debug && p.cfg.shouldLog(iter, p.maxIterations) {
			logger.Debug("Training progress", log.IterationKey, iter, log.MSEKey, sse/n)
		}
	}

	if err := errors.CheckNumericalStability(pathModelName+".gradient_descent", []float64{bias, w1, w2}, p.maxIterations); err != nil {
		errors.Warn(err)
	}

	p.mu.Lock()
	p.bias, p.w1, p.w2 = bias, w1, w2
	p.trajectory = trajectory
	p.mu.Unlock()
	p.state.SetFitted(2, 1, nSamples)

	logger.Info("Training completed",
		log.MSEKey, trajectory[len(trajectory)-1].Loss,
		log.PathStepsKey, len(trajectory),
	)
	return nil
}

// SquaredError returns the mean squared error of bias + w1·x1 + w2·x2 against y.
// X must be n×2 and y n×1.
func SquaredError(X, y mat.Matrix, bias, w1, w2 float64) (float64, error) {
	const op = "linear.SquaredError"
	r, c := X.Dims()
	yr, yc := y.Dims()
	switch {
	case r == 0:
		return 0, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	case c != 2:
		return 0, errors.NewDimensionError(op, 2, c, 1)
	case yr != r:
		return 0, errors.NewDimensionError(op, r, yr, 0)
	case yc != 1:
		return 0, errors.NewDimensionError(op+".y", 1, yc, 1)
	}
	return squaredError(mat.Col(nil, 0, X), mat.Col(nil, 1, X), mat.Col(nil, 0, y), bias, w1, w2), nil
}

func squaredError(x1, x2, y []float64, bias, w1, w2 float64) float64 {
	var sse float64
	for i := range y {
		r := bias + w1*x1[i] + w2*x2[i] - y[i]
		sse += r * r
	}
	return sse / float64(len(y))
}

// Path returns a copy of the recorded trajectory.
func (p *PathRegression) Path() []PathStep {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]PathStep, len(p.trajectory))
	copy(out, p.trajectory)
	return out
}

// Weight1s returns the w1 coordinate of every recorded step.
func (p *PathRegression) Weight1s() []float64 {
	return p.column(func(s PathStep) float64 { return s.Weight1 })
}

// Weight2s returns the w2 coordinate of every recorded step.
func (p *PathRegression) Weight2s() []float64 {
	return p.column(func(s PathStep) float64 { return s.Weight2 })
}

// Losses returns the MSE of every recorded step.
func (p *PathRegression) Losses() []float64 {
	return p.column(func(s PathStep) float64 { return s.Loss })
}

func (p *PathRegression) column(get func(PathStep) float64) []float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]float64, len(p.trajectory))
	for i, s := range p.trajectory {
		out[i] = get(s)
	}
	return out
}

func (p *PathRegression) Bias() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.bias
}

func (p *PathRegression) W1() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.w1
}

func (p *PathRegression) W2() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.w2
}

// Weights returns the fitted weights as a 3×1 matrix: bias, w1, w2.
func (p *PathRegression) Weights() (*mat.Dense, error) {
	if err := p.state.RequireFitted(pathModelName, "Weights"); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return mat.NewDense(3, 1, []float64{p.bias, p.w1, p.w2}), nil
}

// PredictOne returns bias + w1·x[0] + w2·x[1].
func (p *PathRegression) PredictOne(x []float64) ([]float64, error) {
	if err := p.state.RequireFeatures(pathModelName, "PredictOne", len(x)); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return []float64{p.bias + p.w1*x[0] + p.w2*x[1]}, nil
}

// Predict returns an n×1 matrix of predictions.
func (p *PathRegression) Predict(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if err := p.state.RequireFeatures(pathModelName, "Predict", c); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		out.Set(i, 0, p.bias+p.w1*X.At(i, 0)+p.w2*X.At(i, 1))
	}
	return out, nil
}

func (p *PathRegression) IsFitted() bool {
	return p.state.IsFitted()
}

// GetParams returns the hyperparameters.
func (p *PathRegression) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"learning_rate":  p.learningRate,
		"max_iterations": p.maxIterations,
		"random_state":   p.cfg.randomState,
	}
}

func (p *PathRegression) reset() {
	p.mu.Lock()
	p.bias, p.w1, p.w2 = 0, 0, 0
	p.trajectory = nil
	p.mu.Unlock()
	p.state.Reset()
}

var _ model.Estimator = (*PathRegression)(nil)
