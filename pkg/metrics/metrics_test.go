package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRegistryMetrics(reg, "")

	m.ObserveResolution(ResultHit, time.Microsecond)
	m.ObserveResolution(ResultHit, time.Microsecond)
	m.ObserveResolution(ResultError, time.Microsecond)
	m.IncConstructions("qdigest")
	m.SetRegistered("leaf", 5)
	m.SetRegistered("parametric", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.resolutions.WithLabelValues(ResultHit)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resolutions.WithLabelValues(ResultError)))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.resolutions.WithLabelValues(ResultConstructed)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.constructions.WithLabelValues("qdigest")))
	assert.Equal(t, 5.0, testutil.ToFloat64(m.registered.WithLabelValues("leaf")))

	expected := `
# HELP coltype_registry_constructions_total Total number of parametric type instances constructed
# TYPE coltype_registry_constructions_total counter
coltype_registry_constructions_total{base="qdigest"} 1
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected), "coltype_registry_constructions_total"))

	count, err := testutil.GatherAndCount(reg, "coltype_registry_resolve_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestRegistryMetricsNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewRegistryMetrics(reg, "engine")
	m.IncConstructions("tdigest")

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "engine_registry_constructions_total")
	assert.Contains(t, names, "engine_registry_resolve_seconds")
}

func TestRegistryMetricsDuplicateRegistrationPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewRegistryMetrics(reg, "")

	assert.Panics(t, func() { NewRegistryMetrics(reg, "") })
}

func TestNilRegistryMetrics(t *testing.T) {
	var m *RegistryMetrics

	assert.NotPanics(t, func() {
		m.ObserveResolution(ResultHit, time.Second)
		m.IncConstructions("qdigest")
		m.SetRegistered("leaf", 1)
	})
}

func TestTimer(t *testing.T) {
	timer := NewTimer()
	assert.GreaterOrEqual(t, timer.Elapsed(), time.Duration(0))
}
