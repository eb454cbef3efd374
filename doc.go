// Package reactor provides a small reactive-streams toolkit for Go centered
// on the Using operator: a resource-scoped stream that guarantees a resource
// is released exactly once, however its stream ends.
//
// # Quick Start
//
//	import reactor "github.com/itssanjib/reactor-core"
//
//	p := reactor.Using(
//	    func() (*sql.Conn, error) { return db.Conn(ctx) },
//	    func(c *sql.Conn) (reactor.Publisher[Row], error) { return rowsOf(c), nil },
//	    func(c *sql.Conn) error { return c.Close() },
//	)
//
//	p.Subscribe(subscriber) // the connection is closed exactly once,
//	                        // whether rowsOf completes, fails, or the
//	                        // subscriber cancels
//
// # Resource safety
//
// Each Subscribe call creates a fresh resource via the supplier, derives the
// value stream from it via the factory, and ties the cleanup action to the
// subscription's terminal state machine. Cleanup runs exactly once per
// attempt, on exactly one goroutine, even when cancellation races with a
// terminal signal from the inner stream.
//
// Cleanup timing is selectable: eager (the default) runs cleanup before the
// terminal signal is forwarded, so a cleanup failure can still be reported
// downstream; lazy mode forwards the terminal signal first and drops any
// cleanup failure, an explicit tradeoff for resources whose release must not
// delay the consumer.
//
// # Capabilities
//
// Using negotiates the most capable wrapper for each subscription: a
// Fuseable inner stream gets a fused wrapper that intercepts pull-based
// draining, a ConditionalSubscriber consumer gets the accept-or-reject fast
// path, and everything else gets the plain wrapper. All three share one
// termination state machine.
//
// # Observability
//
// Structured logging, metrics and lifecycle hooks are injected through
// functional options (WithLogger, WithMetrics, WithHooks). Scope tracking
// (WithScopeTracking) maintains a registry of live resources for leak
// diagnostics, surfaced through ActiveScopes.
//
// See the examples/ directory for complete working examples, and the
// natsbridge package for a JetStream-backed publisher built on Using.
package reactor
