package linear

import (
	"github.com/YuminosukeSato/linfit/core/model"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

// DefaultLogInterval is how often gradient descent logs progress, in iterations.
const DefaultLogInterval = 200

type config struct {
	randomState int64
	logger      log.Logger
	logInterval int
}

func newConfig(component string, opts []Option) config {
	cfg := config{
		randomState: model.DefaultRandomState,
		logInterval: DefaultLogInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("linear")
	}
	cfg.logger = cfg.logger.With(log.ModelNameKey, component)
	if cfg.logInterval <= 0 {
		cfg.logInterval = DefaultLogInterval
	}
	return cfg
}

// Option configures an estimator in this package.
type Option func(*config)

// WithRandomState sets the seed of the weight initialization.
// Every Fit reseeds, so repeated fits on the same data are identical.
func WithRandomState(seed int64) Option {
	return func(c *config) {
		c.randomState = seed
	}
}

// WithLogger sets the logger used for training progress.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithLogInterval sets how often gradient descent logs progress.
// The final iteration is always logged.
func WithLogInterval(n int) Option {
	return func(c *config) {
		c.logInterval = n
	}
}

func (c config) shouldLog(iter, maxIterations int) bool {
	return iter%c.logInterval == 0 || iter == maxIterations-1
}
