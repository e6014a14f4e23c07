package metrics

import (
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics represents the collection of Prometheus metrics for scan runs.
type Metrics struct {
	ScansTotal        *prometheus.CounterVec
	ScanDuration      prometheus.Histogram
	ComponentsScanned prometheus.Counter
	CachedArtifacts   prometheus.Gauge

	registry *prometheus.Registry
}

// NewMetrics creates and registers all scan metrics on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{registry: prometheus.NewRegistry()}

	m.ScansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "xscan_scans_total",
			Help: "Total number of scan runs by terminal status",
		},
		[]string{"status"},
	)

	m.ScanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "xscan_scan_duration_seconds",
			Help:    "Duration of scan runs in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	m.ComponentsScanned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "xscan_components_scanned_total",
			Help: "Total number of components sent for scanning",
		},
	)

	m.CachedArtifacts = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "xscan_cached_artifacts",
			Help: "Number of artifacts currently held in the scan cache",
		},
	)

	m.registry.MustRegister(m.ScansTotal, m.ScanDuration, m.ComponentsScanned, m.CachedArtifacts)
	return m
}

// ObserveScan records one finished scan run.
func (m *Metrics) ObserveScan(status string, duration time.Duration) {
	m.ScansTotal.WithLabelValues(status).Inc()
	m.ScanDuration.Observe(duration.Seconds())
}

// Handler returns the Prometheus scrape handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on the given port in the background.
func (m *Metrics) Serve(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		_ = srv.ListenAndServe()
	}()
	return srv
}
