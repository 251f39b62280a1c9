// Package prometheus defines the engine metrics for SonicAtlas.  Metrics are
// registered on an injectable Registerer; exposing them over HTTP is the
// embedding application's concern, not this package's.
package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Default histogram buckets for rebuild and query durations, in seconds.
var (
	DefaultRebuildBuckets = []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120}
	DefaultQueryBuckets   = []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1}
)

// AtlasMetrics holds every metric emitted by the emotional-space engine.
type AtlasMetrics struct {
	// Space layer
	RebuildsTotal   prometheus.Counter
	RebuildDuration prometheus.Histogram
	TracksMapped    prometheus.Gauge
	GraphEdges      prometheus.Gauge

	// Query layer
	NearestQueriesTotal prometheus.Counter
	PathQueriesTotal    *prometheus.CounterVec
	QueryDuration       prometheus.Histogram

	// Journey layer
	JourneysTotal   prometheus.Counter
	JourneyPoints   prometheus.Histogram
	ExportsTotal    prometheus.Counter
	ExportEdgeCount prometheus.Histogram
}

// NewAtlasMetrics constructs and registers all engine metrics on reg.
// Passing prometheus.NewRegistry() gives tests an isolated metric space;
// production callers typically pass prometheus.DefaultRegisterer.
func NewAtlasMetrics(reg prometheus.Registerer) *AtlasMetrics {
	m := &AtlasMetrics{
		RebuildsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonicatlas",
			Subsystem: "space",
			Name:      "rebuilds_total",
			Help:      "Number of full emotional-space rebuilds.",
		}),
		RebuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sonicatlas",
			Subsystem: "space",
			Name:      "rebuild_duration_seconds",
			Help:      "Wall-clock duration of full rebuilds (embedding plus graph).",
			Buckets:   DefaultRebuildBuckets,
		}),
		TracksMapped: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sonicatlas",
			Subsystem: "space",
			Name:      "tracks_mapped",
			Help:      "Number of tracks in the coordinate cache after the last rebuild.",
		}),
		GraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "sonicatlas",
			Subsystem: "space",
			Name:      "graph_edges",
			Help:      "Number of edges in the similarity graph after the last rebuild.",
		}),
		NearestQueriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonicatlas",
			Subsystem: "query",
			Name:      "nearest_total",
			Help:      "Number of nearest-neighbor queries served.",
		}),
		PathQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "sonicatlas",
			Subsystem: "query",
			Name:      "paths_total",
			Help:      "Number of path queries served, by resolution kind.",
		}, []string{"kind"}),
		QueryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sonicatlas",
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Duration of read-side queries (nearest, path).",
			Buckets:   DefaultQueryBuckets,
		}),
		JourneysTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonicatlas",
			Subsystem: "journey",
			Name:      "synthesized_total",
			Help:      "Number of journeys synthesized.",
		}),
		JourneyPoints: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sonicatlas",
			Subsystem: "journey",
			Name:      "points",
			Help:      "Number of points per synthesized journey.",
			Buckets:   []float64{1, 2, 3, 5, 8, 10, 15, 20, 30, 50},
		}),
		ExportsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sonicatlas",
			Subsystem: "export",
			Name:      "bundles_total",
			Help:      "Number of visualization bundles exported.",
		}),
		ExportEdgeCount: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sonicatlas",
			Subsystem: "export",
			Name:      "edges",
			Help:      "Number of connections included per exported bundle.",
			Buckets:   []float64{0, 10, 100, 1000, 5000, 10000, 20000},
		}),
	}

	reg.MustRegister(
		m.RebuildsTotal,
		m.RebuildDuration,
		m.TracksMapped,
		m.GraphEdges,
		m.NearestQueriesTotal,
		m.PathQueriesTotal,
		m.QueryDuration,
		m.JourneysTotal,
		m.JourneyPoints,
		m.ExportsTotal,
		m.ExportEdgeCount,
	)
	return m
}

// NewNopMetrics constructs a fully-populated AtlasMetrics that is not
// registered anywhere.  Handy for tests that exercise services without
// caring about metric values.
func NewNopMetrics() *AtlasMetrics {
	return NewAtlasMetrics(prometheus.NewRegistry())
}
