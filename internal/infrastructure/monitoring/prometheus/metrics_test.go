package prometheus

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAtlasMetricsRegisters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewAtlasMetrics(reg)
	require.NotNil(t, m)

	m.RebuildsTotal.Inc()
	m.TracksMapped.Set(42)
	m.GraphEdges.Set(99)
	m.PathQueriesTotal.WithLabelValues("graph").Inc()
	m.PathQueriesTotal.WithLabelValues("interpolated").Add(2)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.RebuildsTotal))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.TracksMapped))
	assert.Equal(t, 99.0, testutil.ToFloat64(m.GraphEdges))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PathQueriesTotal.WithLabelValues("graph")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.PathQueriesTotal.WithLabelValues("interpolated")))
}

func TestNewAtlasMetricsDoubleRegisterPanics(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewAtlasMetrics(reg)
	assert.Panics(t, func() { NewAtlasMetrics(reg) })
}

func TestNewNopMetrics(t *testing.T) {
	m := NewNopMetrics()
	require.NotNil(t, m)
	// Usable without touching the default registerer.
	m.JourneysTotal.Inc()
	m.JourneyPoints.Observe(5)
	m.ExportsTotal.Inc()
	m.ExportEdgeCount.Observe(100)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.JourneysTotal))
}
