package metrics

import (
	"strconv"
	"sync"

	"github.com/itssanjib/reactor-core/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	subscriptions  *prometheus.CounterVec
	supplyFailures prometheus.Counter
	factoryFails   prometheus.Counter
	terminals      *prometheus.CounterVec
	cleanups       *prometheus.CounterVec
	droppedErrors  prometheus.Counter
	activeScopes   prometheus.Gauge
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "reactor" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "reactor"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.subscriptions = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "using",
			Name:      "subscriptions_total",
			Help:      "Total subscription attempts by installed wrapper variant (plain|conditional|fused).",
		}, []string{"variant"})

		p.supplyFailures = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "using",
			Name:      "supply_failures_total",
			Help:      "Total resource supplier failures (no resource created).",
		})

		p.factoryFails = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "using",
			Name:      "factory_failures_total",
			Help:      "Total source factory failures and contract violations after resource creation.",
		})

		p.terminals = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "using",
			Name:      "terminals_total",
			Help:      "Total terminal signals forwarded downstream by signal and cleanup policy.",
		}, []string{"signal", "eager"})

		p.cleanups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "using",
			Name:      "cleanups_total",
			Help:      "Total cleanup invocations by trigger path (terminal|cancel|poll|setup) and result.",
		}, []string{"path", "result"})

		p.droppedErrors = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "using",
			Name:      "dropped_errors_total",
			Help:      "Total failures dropped because no delivery channel remained.",
		})

		p.activeScopes = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "using",
			Name:      "active_scopes",
			Help:      "Current number of live resource scopes (requires scope tracking).",
		})

		p.reg.MustRegister(p.subscriptions)
		p.reg.MustRegister(p.supplyFailures)
		p.reg.MustRegister(p.factoryFails)
		p.reg.MustRegister(p.terminals)
		p.reg.MustRegister(p.cleanups)
		p.reg.MustRegister(p.droppedErrors)
		p.reg.MustRegister(p.activeScopes)
	})
}

// RecordSubscription increments the subscription counter for the variant.
func (p *PrometheusCollector) RecordSubscription(variant string) {
	p.ensureRegistered()
	p.subscriptions.WithLabelValues(variant).Inc()
}

// RecordSupplyFailure increments the supplier failure counter.
func (p *PrometheusCollector) RecordSupplyFailure() {
	p.ensureRegistered()
	p.supplyFailures.Inc()
}

// RecordFactoryFailure increments the factory failure counter.
func (p *PrometheusCollector) RecordFactoryFailure() {
	p.ensureRegistered()
	p.factoryFails.Inc()
}

// RecordTerminal increments the terminal signal counter.
func (p *PrometheusCollector) RecordTerminal(signal string, eager bool) {
	p.ensureRegistered()
	p.terminals.WithLabelValues(signal, strconv.FormatBool(eager)).Inc()
}

// RecordCleanup increments the cleanup counter for the given path and result.
func (p *PrometheusCollector) RecordCleanup(path string, success bool) {
	p.ensureRegistered()
	result := "success"
	if !success {
		result = "failure"
	}
	p.cleanups.WithLabelValues(path, result).Inc()
}

// RecordDroppedError increments the dropped error counter.
func (p *PrometheusCollector) RecordDroppedError() {
	p.ensureRegistered()
	p.droppedErrors.Inc()
}

// RecordActiveScopes sets the active scope gauge.
func (p *PrometheusCollector) RecordActiveScopes(count int) {
	p.ensureRegistered()
	p.activeScopes.Set(float64(count))
}
