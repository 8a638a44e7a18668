package geochrono

import (
	"log/slog"

	"github.com/hupe1980/geochrono/index/spatial"
	"github.com/hupe1980/geochrono/index/temporal"
)

// DefaultNearestOverfetch is the default factor NearestInRange multiplies k
// by when asking the spatial index for candidates.
const DefaultNearestOverfetch = 2

type options struct {
	metricsCollector MetricsCollector
	logger           *Logger
	spatialBackend   func() spatial.Backend
	temporalBackend  temporal.Backend
	minChildren      int
	maxChildren      int
	degree           int
	overfetch        int
}

// Option configures a SpatiotemporalIndex.
type Option func(*options)

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &geochrono.BasicMetricsCollector{}
//	idx := geochrono.New[string](geochrono.WithMetricsCollector(metrics))
//	// ... use idx ...
//	stats := metrics.GetStats()
//	fmt.Printf("Queries: %d, Avg latency: %dns\n", stats.QueryCount, stats.QueryAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := geochrono.NewJSONLogger(slog.LevelDebug)
//	idx := geochrono.New[string](geochrono.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithSpatialBackend replaces the default R-tree. The backend must be empty
// and must not be shared with another index, so an option slice holding it
// builds one index only. Use WithSpatialBackendFunc for reusable options.
func WithSpatialBackend(b spatial.Backend) Option {
	return func(o *options) {
		o.spatialBackend = func() spatial.Backend { return b }
	}
}

// WithSpatialBackendFunc replaces the default R-tree with a backend built by
// newBackend. It is called once per index, so the option can be reused.
func WithSpatialBackendFunc(newBackend func() spatial.Backend) Option {
	return func(o *options) {
		o.spatialBackend = newBackend
	}
}

// WithTemporalBackend replaces the default B-tree. The backend must be empty
// and must not be shared with another index.
func WithTemporalBackend(b temporal.Backend) Option {
	return func(o *options) {
		o.temporalBackend = b
	}
}

// WithNodeCapacity sets the fan-out of the default R-tree.
func WithNodeCapacity(minChildren, maxChildren int) Option {
	return func(o *options) {
		o.minChildren = minChildren
		o.maxChildren = maxChildren
	}
}

// WithBTreeDegree sets the degree of the default B-tree.
func WithBTreeDegree(degree int) Option {
	return func(o *options) {
		o.degree = degree
	}
}

// WithNearestOverfetch sets how many spatial candidates per requested result
// NearestInRange considers. Values below 1 select DefaultNearestOverfetch.
func WithNearestOverfetch(factor int) Option {
	return func(o *options) {
		o.overfetch = factor
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		minChildren:      spatial.DefaultMinChildren,
		maxChildren:      spatial.DefaultMaxChildren,
		degree:           temporal.DefaultDegree,
		overfetch:        DefaultNearestOverfetch,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	if o.overfetch < 1 {
		o.overfetch = DefaultNearestOverfetch
	}
	return o
}

func (o options) spatialOptions() []spatial.Option {
	if o.spatialBackend != nil {
		if b := o.spatialBackend(); b != nil {
			return []spatial.Option{spatial.WithBackend(b)}
		}
	}
	return []spatial.Option{spatial.WithNodeCapacity(o.minChildren, o.maxChildren)}
}

func (o options) temporalOptions() []temporal.Option {
	if o.temporalBackend != nil {
		return []temporal.Option{temporal.WithBackend(o.temporalBackend)}
	}
	return []temporal.Option{temporal.WithDegree(o.degree)}
}
