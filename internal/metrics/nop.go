// Package metrics provides MetricsCollector implementations for the reactor
// library.
package metrics

import "github.com/itssanjib/reactor-core/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external metrics
// collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Example:
//
//	collector := metrics.NewNop()
//	p := reactor.Using(supplier, factory, cleanup, reactor.WithMetrics(collector))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// RecordSubscription discards the subscription metric.
func (n *NopMetrics) RecordSubscription(_ /* variant */ string) {
	// No-op
}

// RecordSupplyFailure discards the supply failure metric.
func (n *NopMetrics) RecordSupplyFailure() {
	// No-op
}

// RecordFactoryFailure discards the factory failure metric.
func (n *NopMetrics) RecordFactoryFailure() {
	// No-op
}

// RecordTerminal discards the terminal signal metric.
func (n *NopMetrics) RecordTerminal(_ /* signal */ string, _ /* eager */ bool) {
	// No-op
}

// RecordCleanup discards the cleanup outcome metric.
func (n *NopMetrics) RecordCleanup(_ /* path */ string, _ /* success */ bool) {
	// No-op
}

// RecordDroppedError discards the dropped error counter.
func (n *NopMetrics) RecordDroppedError() {
	// No-op
}

// RecordActiveScopes discards the active scope gauge.
func (n *NopMetrics) RecordActiveScopes(_ /* count */ int) {
	// No-op
}
