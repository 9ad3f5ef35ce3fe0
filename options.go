package flexgp

// Option configures a Splitter with optional dependencies.
type Option func(*splitterOptions)

// splitterOptions holds optional Splitter configuration.
type splitterOptions struct {
	strategy SelectionStrategy
	hooks    *Hooks
	metrics  MetricsCollector
	logger   Logger
}

// WithStrategy sets the selection strategy.
//
// Parameters:
//   - strategy: SelectionStrategy implementation (default: strategy.NewWindowed())
//
// Returns:
//   - Option: Functional option for NewSplitter
//
// Example:
//
//	splitter, err := flexgp.NewSplitter(src, flexgp.WithStrategy(strategy.NewHashRank()))
func WithStrategy(strategy SelectionStrategy) Option {
	return func(o *splitterOptions) {
		o.strategy = strategy
	}
}

// WithHooks sets run event hooks.
//
// Parameters:
//   - hooks: Hooks structure with callback functions
//
// Returns:
//   - Option: Functional option for NewSplitter
//
// Example:
//
//	hooks := &flexgp.Hooks{
//	    OnSplitCompleted: func(ctx context.Context, stats flexgp.Stats) error {
//	        return report(stats)
//	    },
//	}
//	splitter, err := flexgp.NewSplitter(src, flexgp.WithHooks(hooks))
func WithHooks(hooks *Hooks) Option {
	return func(o *splitterOptions) {
		o.hooks = hooks
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for NewSplitter
//
// Example:
//
//	metrics := flexgp.NewPrometheusMetrics(prometheus.DefaultRegisterer, "flexgp")
//	splitter, err := flexgp.NewSplitter(src, flexgp.WithMetrics(metrics))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *splitterOptions) {
		o.metrics = metrics
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for NewSplitter
//
// Example:
//
//	logger := zap.NewExample().Sugar()
//	splitter, err := flexgp.NewSplitter(src, flexgp.WithLogger(logger))
func WithLogger(logger Logger) Option {
	return func(o *splitterOptions) {
		o.logger = logger
	}
}
