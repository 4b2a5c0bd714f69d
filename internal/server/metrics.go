package server

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath serves the dev server's Prometheus metrics.
const MetricsPath = "/metrics"

// Metrics tracks rebuilds and live-reload clients.
type Metrics struct {
	registry *prometheus.Registry

	builds        *prometheus.CounterVec
	buildDuration prometheus.Histogram
	pages         prometheus.Gauge
	assets        prometheus.Gauge
}

// NewMetrics creates a private registry. clients is sampled on every scrape.
func NewMetrics(clients func() int) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "alphalabs",
			Name:      "builds_total",
			Help:      "Site builds by result.",
		}, []string{"result"}),
		buildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "alphalabs",
			Name:      "build_duration_seconds",
			Help:      "Duration of successful site builds.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
		}),
		pages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "alphalabs",
			Name:      "export_pages",
			Help:      "Pages in the current export.",
		}),
		assets: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "alphalabs",
			Name:      "export_assets",
			Help:      "Asset files in the current export.",
		}),
	}
	m.registry.MustRegister(m.builds, m.buildDuration, m.pages, m.assets,
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "alphalabs",
			Name:      "livereload_clients",
			Help:      "Connected live-reload pages.",
		}, func() float64 { return float64(clients()) }),
	)
	return m
}

// BuildSucceeded records a finished build.
func (m *Metrics) BuildSucceeded(pages, assets int, d time.Duration) {
	m.builds.WithLabelValues("success").Inc()
	m.buildDuration.Observe(d.Seconds())
	m.pages.Set(float64(pages))
	m.assets.Set(float64(assets))
}

// BuildFailed records a rejected build. The export gauges keep describing
// the export still on disk.
func (m *Metrics) BuildFailed() {
	m.builds.WithLabelValues("failure").Inc()
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
