// Package metrics provides Prometheus instrumentation for the type registry.
//
// # Overview
//
// RegistryMetrics records:
//   - signature resolutions by result (hit, constructed, error)
//   - constructions of new Type instances by base name
//   - the number of registered leaf and parametric types
//   - resolution latency
//
// # Basic Usage
//
//	reg := prometheus.NewRegistry()
//	m := metrics.NewRegistryMetrics(reg, "coltype")
//	r := registry.New(registry.WithMetrics(m))
//
// A nil *RegistryMetrics is valid and records nothing, so instrumented code
// does not need to check whether metrics are enabled.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DefaultNamespace prefixes every metric name
const DefaultNamespace = "coltype"

// Resolution results used as the "result" label of the resolutions counter
const (
	ResultHit         = "hit"
	ResultConstructed = "constructed"
	ResultError       = "error"
)

// RegistryMetrics groups the collectors of one registry
type RegistryMetrics struct {
	resolutions   *prometheus.CounterVec
	constructions *prometheus.CounterVec
	registered    *prometheus.GaugeVec
	resolveTime   prometheus.Histogram
}

// NewRegistryMetrics creates the registry collectors and registers them with reg.
// A nil reg registers with prometheus.DefaultRegisterer; an empty namespace uses
// DefaultNamespace. Registering twice against the same Registerer panics.
//
// Example:
//
//	m := metrics.NewRegistryMetrics(prometheus.NewRegistry(), "")
//	m.ObserveResolution(metrics.ResultHit, time.Since(start))
func NewRegistryMetrics(reg prometheus.Registerer, namespace string) *RegistryMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = DefaultNamespace
	}
	factory := promauto.With(reg)

	return &RegistryMetrics{
		resolutions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "registry",
				Name:      "resolutions_total",
				Help:      "Total number of type signature resolutions",
			},
			[]string{"result"},
		),
		constructions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "registry",
				Name:      "constructions_total",
				Help:      "Total number of parametric type instances constructed",
			},
			[]string{"base"},
		),
		registered: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "registry",
				Name:      "registered",
				Help:      "Number of registered types",
			},
			[]string{"kind"},
		),
		resolveTime: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "registry",
				Name:      "resolve_seconds",
				Help:      "Type signature resolution latency in seconds",
				Buckets: []float64{
					1e-7, // 100ns - interned hit
					1e-6, // 1μs
					1e-5, // 10μs - leaf construction
					1e-4, // 100μs
					1e-3, // 1ms - contended construction
					1e-2, // 10ms
				},
			},
		),
	}
}

// ObserveResolution counts one resolution and records its latency
func (m *RegistryMetrics) ObserveResolution(result string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(result).Inc()
	m.resolveTime.Observe(elapsed.Seconds())
}

// IncConstructions counts one newly constructed instance of base
func (m *RegistryMetrics) IncConstructions(base string) {
	if m == nil {
		return
	}
	m.constructions.WithLabelValues(base).Inc()
}

// SetRegistered sets the number of registered types of a kind, "leaf" or "parametric"
func (m *RegistryMetrics) SetRegistered(kind string, n int) {
	if m == nil {
		return
	}
	m.registered.WithLabelValues(kind).Set(float64(n))
}

// Timer measures the duration of a single operation
type Timer struct {
	start time.Time
}

// NewTimer starts a timer
func NewTimer() Timer {
	return Timer{start: time.Now()}
}

// Elapsed returns the time since the timer started
func (t Timer) Elapsed() time.Duration {
	return time.Since(t.start)
}
