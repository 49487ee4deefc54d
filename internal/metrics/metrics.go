// Package metrics exposes upload and session counters in Prometheus format.
//
// Metrics live on a dedicated registry so tests can build as many instances
// as they like and the /metrics page only shows what this service records
// plus the standard Go and process collectors.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ledgerview"

// Metrics implements core.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	uploads        *prometheus.CounterVec
	uploadBytes    prometheus.Histogram
	parseDuration  prometheus.Histogram
	sessionsActive prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Workbook uploads by outcome.",
		}, []string{"result"}),
		uploadBytes: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upload_bytes",
			Help:      "Size of uploaded workbooks in bytes.",
			Buckets:   prometheus.ExponentialBuckets(4<<10, 4, 8),
		}),
		parseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_duration_seconds",
			Help:      "Time spent decoding a workbook.",
			Buckets:   prometheus.DefBuckets,
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Browser sessions currently held in memory.",
		}),
	}

	reg.MustRegister(
		m.uploads,
		m.uploadBytes,
		m.parseDuration,
		m.sessionsActive,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// UploadFinished records one finished upload. Zero sizes and durations are
// not observed, so rejected uploads only bump the counter.
func (m *Metrics) UploadFinished(result string, bytes int64, parse time.Duration) {
	m.uploads.WithLabelValues(result).Inc()
	if bytes > 0 {
		m.uploadBytes.Observe(float64(bytes))
	}
	if parse > 0 {
		m.parseDuration.Observe(parse.Seconds())
	}
}

// SessionsActive sets the live session gauge.
func (m *Metrics) SessionsActive(n int) {
	m.sessionsActive.Set(float64(n))
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{
		Registry: m.registry,
	})
}
