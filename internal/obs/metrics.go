// Package obs exposes application metrics through Prometheus and the
// health endpoint.
package obs

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the trip service. Each
// instance carries its own registry, so tests can construct one freely.
type Metrics struct {
	registry *prometheus.Registry

	searches        *prometheus.CounterVec
	searchDuration  prometheus.Histogram
	cacheHits       prometheus.Counter
	upstreamErrors  *prometheus.CounterVec
	resorts         *prometheus.CounterVec
	publishedOffers prometheus.Gauge
}

// New creates and registers the collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trips",
				Subsystem: "search",
				Name:      "requests_total",
				Help:      "Total number of search requests by outcome.",
			},
			[]string{"outcome"},
		),
		searchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "trips",
				Subsystem: "search",
				Name:      "duration_seconds",
				Help:      "Duration of full search runs, upstream call included.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
		),
		cacheHits: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: "trips",
				Subsystem: "search",
				Name:      "cache_hits_total",
				Help:      "Total number of raw-response cache hits.",
			},
		),
		upstreamErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trips",
				Subsystem: "search",
				Name:      "upstream_errors_total",
				Help:      "Total number of failed upstream calls by category.",
			},
			[]string{"category"},
		),
		resorts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "trips",
				Subsystem: "pipeline",
				Name:      "resorts_total",
				Help:      "Total number of re-sort runs, split by whether the list was republished.",
			},
			[]string{"republished"},
		),
		publishedOffers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "trips",
				Subsystem: "pipeline",
				Name:      "published_offers",
				Help:      "Number of offers in the currently published list.",
			},
		),
	}

	m.registry.MustRegister(
		m.searches,
		m.searchDuration,
		m.cacheHits,
		m.upstreamErrors,
		m.resorts,
		m.publishedOffers,
	)
	return m
}

// IncSearch counts one search request with its outcome
// ("ok", "missing_field", "network", "upstream").
func (m *Metrics) IncSearch(outcome string) {
	m.searches.WithLabelValues(outcome).Inc()
}

// ObserveSearchDuration records the duration of one full search run.
func (m *Metrics) ObserveSearchDuration(d time.Duration) {
	m.searchDuration.Observe(d.Seconds())
}

// IncCacheHit counts one raw-response cache hit.
func (m *Metrics) IncCacheHit() {
	m.cacheHits.Inc()
}

// IncUpstreamError counts one failed upstream call.
func (m *Metrics) IncUpstreamError(category string) {
	m.upstreamErrors.WithLabelValues(category).Inc()
}

// IncResort counts one re-sort run.
func (m *Metrics) IncResort(republished bool) {
	m.resorts.WithLabelValues(strconv.FormatBool(republished)).Inc()
}

// SetPublishedOffers records the size of the published list.
func (m *Metrics) SetPublishedOffers(n int) {
	m.publishedOffers.Set(float64(n))
}

// Handler serves the /metrics endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// HealthHandler returns a handler for /healthz requests.
func HealthHandler(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health response", "error", err)
		}
	}
}
