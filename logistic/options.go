package logistic

import (
	"github.com/YuminosukeSato/linfit/core/model"
	"github.com/YuminosukeSato/linfit/pkg/log"
)

// DefaultLogInterval is how often training logs the mean cross-entropy, in iterations.
const DefaultLogInterval = 200

type config struct {
	randomState int64
	logger      log.Logger
	logInterval int
}

// Option configures a SoftmaxRegression.
type Option func(*config)

// WithRandomState sets the seed of the weight initialization.
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

// WithLogInterval sets how often the loss is logged. The final iteration is always logged.
func WithLogInterval(n int) Option {
	return func(c *config) {
		c.logInterval = n
	}
}

func newConfig(opts []Option) config {
	cfg := config{
		randomState: model.DefaultRandomState,
		logInterval: DefaultLogInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("logistic")
	}
	cfg.logger = cfg.logger.With(log.ModelNameKey, modelName)
	if cfg.logInterval <= 0 {
		cfg.logInterval = DefaultLogInterval
	}
	return cfg
}
