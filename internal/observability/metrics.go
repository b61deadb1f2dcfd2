package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analysis service.
type Metrics struct {
	RefreshTotal    prometheus.Counter
	RefreshErrors   prometheus.Counter
	RefreshRunning  prometheus.Gauge
	StationsCurrent prometheus.Gauge
	SnapshotsHeld   prometheus.Gauge

	FetchDuration prometheus.Histogram

	// Render endpoint metrics.
	RenderRequests *prometheus.CounterVec // labels: outcome={success,error,bad_request}
	RenderDuration prometheus.Histogram
	RenderCache    *prometheus.CounterVec // labels: result={hit,miss}

	// Snapshot publishing metrics.
	SnapshotsPublished prometheus.Counter
	PublishErrors      prometheus.Counter
	PublishEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RefreshTotal,
		m.RefreshErrors,
		m.RefreshRunning,
		m.StationsCurrent,
		m.SnapshotsHeld,
		m.FetchDuration,
		m.RenderRequests,
		m.RenderDuration,
		m.RenderCache,
		m.SnapshotsPublished,
		m.PublishErrors,
		m.PublishEnabled,
	)
	return m
}

// NewMetricsForTesting creates Metrics without touching the default registry
// to avoid "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		RefreshTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mesoanalysis",
			Name:      "refresh_total",
			Help:      "Total observation refresh cycles attempted.",
		}),
		RefreshErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mesoanalysis",
			Name:      "refresh_errors_total",
			Help:      "Total refresh cycles that failed.",
		}),
		RefreshRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mesoanalysis",
			Name:      "refresh_running",
			Help:      "1 while a refresh cycle is in flight, 0 otherwise.",
		}),
		StationsCurrent: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mesoanalysis",
			Name:      "stations_current",
			Help:      "Stations decoded in the most recent snapshot.",
		}),
		SnapshotsHeld: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mesoanalysis",
			Name:      "snapshots_held",
			Help:      "Snapshots currently retained in memory.",
		}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mesoanalysis",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a complete upstream fetch and decode.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		RenderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mesoanalysis",
			Name:      "render_requests_total",
			Help:      "Render requests by outcome.",
		}, []string{"outcome"}),
		RenderDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mesoanalysis",
			Name:      "render_duration_seconds",
			Help:      "Duration of analysis rendering, cache misses only.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		RenderCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mesoanalysis",
			Name:      "render_cache_total",
			Help:      "Render cache lookups by result.",
		}, []string{"result"}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mesoanalysis",
			Name:      "snapshots_published_total",
			Help:      "Snapshots written to the broker.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mesoanalysis",
			Name:      "publish_errors_total",
			Help:      "Snapshot publish failures.",
		}),
		PublishEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "mesoanalysis",
			Name:      "publish_enabled",
			Help:      "1 when snapshot publishing is enabled, 0 otherwise.",
		}),
	}
}
