package plot

import (
	"gonum.org/v1/plot/vg"

	"github.com/YuminosukeSato/linfit/pkg/log"
)

const (
	// DefaultResolution is the number of grid cells per axis for region and surface plots.
	DefaultResolution = 80

	defaultSize = 5 * vg.Inch
)

type config struct {
	title      string
	width      vg.Length
	height     vg.Length
	resolution int
	logger     log.Logger
}

// Option configures a rendering call.
type Option func(*config)

// WithTitle sets the plot title.
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = title
	}
}

// WithSize sets the image size.
func WithSize(width, height vg.Length) Option {
	return func(c *config) {
		c.width = width
		c.height = height
	}
}

// WithResolution sets the number of grid cells per axis.
func WithResolution(n int) Option {
	return func(c *config) {
		c.resolution = n
	}
}

// WithLogger sets the logger that reports written files.
func WithLogger(logger log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func newConfig(title string, opts []Option) config {
	cfg := config{
		title:      title,
		width:      defaultSize,
		height:     defaultSize,
		resolution: DefaultResolution,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = log.GetLoggerWithName("plot")
	}
	if cfg.resolution < 2 {
		cfg.resolution = 2
	}
	return cfg
}
