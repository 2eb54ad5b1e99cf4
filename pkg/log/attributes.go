// Standard attribute keys shared by every log record linfit emits.
// Keys follow a hierarchical "category.name" convention.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type, e.g. "LinearRegression".
	ModelNameKey = "model.name"

	// OperationKey names the operation: "fit", "predict", "score".
	OperationKey = "ml.operation"

	// ComponentKey identifies the package or subsystem emitting the record.
	ComponentKey = "ml.component"

	// SolverKey records the estimation strategy: "gradient_descent" or "closed_form".
	SolverKey = "model.solver"
)

// Data shape.
const (
	SamplesKey  = "data.samples"
	FeaturesKey = "data.features"
	TargetsKey  = "data.targets"
)

// Training progress and metrics.
const (
	DurationMsKey = "perf.duration_ms"
	LossKey       = "metrics.loss"
	MSEKey        = "metrics.mse"
	R2Key         = "metrics.r2"
	AccuracyKey   = "metrics.accuracy"
	IterationKey  = "training.iteration"
	PathStepsKey  = "training.path_steps"
)

// Hyperparameters.
const (
	LearningRateKey  = "hyperparams.learning_rate"
	MaxIterationsKey = "hyperparams.max_iterations"
	RandomSeedKey    = "config.random_seed"
)

// Rendering output.
const (
	OutputPathKey = "output.path"
	PlotKindKey   = "plot.kind"
)

// Error context.
const (
	ErrorKey      = "error"
	StacktraceKey = "error.stacktrace"
	ErrorTypeKey  = "error.type"
)

// Standard attribute values.
const (
	OperationFit     = "fit"
	OperationPredict = "predict"
	OperationScore   = "score"

	SolverGradientDescent = "gradient_descent"
	SolverClosedForm      = "closed_form"
)
