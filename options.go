package reactor

import (
	"github.com/itssanjib/reactor-core/internal/logger"
	"github.com/itssanjib/reactor-core/internal/metrics"
	"github.com/itssanjib/reactor-core/internal/registry"
	"github.com/itssanjib/reactor-core/types"
)

// Option configures a Using operator with optional dependencies.
type Option func(*usingOptions)

// usingOptions holds optional Using configuration.
type usingOptions struct {
	lazy    bool
	logger  types.Logger
	metrics types.MetricsCollector
	hooks   *types.Hooks
	scopes  *registry.Registry
}

func newUsingOptions(opts []Option) *usingOptions {
	o := &usingOptions{
		logger:  logger.NewNop(),
		metrics: metrics.NewNop(),
		hooks:   &types.Hooks{},
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithLazyCleanup selects the lazy cleanup policy: the terminal signal is
// forwarded to the consumer first and cleanup runs afterwards.
//
// Any failure raised during lazy cleanup is dropped (reported only through
// Hooks.OnErrorDropped, the logger and metrics) because the protocol channel
// is already closed. This is a documented data-loss tradeoff; the default
// eager policy is recommended for correctness-sensitive resources.
//
// Example:
//
//	p := reactor.Using(supplier, factory, cleanup, reactor.WithLazyCleanup())
func WithLazyCleanup() Option {
	return func(o *usingOptions) {
		o.lazy = true
	}
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Example:
//
//	logger := logging.NewSlogDefault()
//	p := reactor.Using(supplier, factory, cleanup, reactor.WithLogger(logger))
func WithLogger(l types.Logger) Option {
	return func(o *usingOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - collector: MetricsCollector implementation
//
// Example:
//
//	collector := myPrometheusCollector
//	p := reactor.Using(supplier, factory, cleanup, reactor.WithMetrics(collector))
func WithMetrics(collector types.MetricsCollector) Option {
	return func(o *usingOptions) {
		if collector != nil {
			o.metrics = collector
		}
	}
}

// WithHooks sets resource lifecycle event hooks.
//
// Example:
//
//	hooks := &reactor.Hooks{
//	    OnErrorDropped: func(err error) { audit.Record(err) },
//	}
//	p := reactor.Using(supplier, factory, cleanup, reactor.WithHooks(hooks))
func WithHooks(hooks *types.Hooks) Option {
	return func(o *usingOptions) {
		if hooks != nil {
			o.hooks = hooks
		}
	}
}

// WithScopeTracking registers every live resource scope of the operator in
// the module-wide registry surfaced by ActiveScopes. Adds a map store/delete
// per subscription attempt; intended for diagnostics rather than hot paths.
func WithScopeTracking() Option {
	return func(o *usingOptions) {
		o.scopes = defaultScopes
	}
}

// defaultScopes backs ActiveScopes. The gauge is reported through the
// operator's own collector at registration time, so the registry itself
// carries none.
var defaultScopes = registry.New(nil)

// ActiveScopes returns diagnostics for every live resource scope created by
// operators constructed with WithScopeTracking, ordered by acquisition time.
//
// A scope is live from resource creation until its cleanup action has run;
// scopes that persist after their consumers are gone indicate a leak.
func ActiveScopes() []types.ScopeInfo {
	return defaultScopes.Snapshot()
}
