// Package metrics holds the Prometheus collectors of the service. A nil
// *Metrics is valid and records nothing.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "scoreboard"

type Metrics struct {
	registry *prometheus.Registry

	standingsComputed  prometheus.Counter
	standingsDuration  prometheus.Histogram
	skippedReferences  *prometheus.CounterVec
	resultsSaved       *prometheus.CounterVec
	standingsPublished *prometheus.CounterVec
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
}

// New registers every collector on a fresh registry, plus the Go and
// process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		standingsComputed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "standings_computed_total",
			Help:      "Number of standings tables computed.",
		}),
		standingsDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "standings_compute_seconds",
			Help:      "Time spent loading and computing a standings table.",
			Buckets:   prometheus.DefBuckets,
		}),
		skippedReferences: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "standings_skipped_references_total",
			Help:      "Results or penalties pointing at athletics missing from the roster.",
		}, []string{"kind"}),
		resultsSaved: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "results_saved_total",
			Help:      "Modality results saved, by entry mode.",
		}, []string{"mode"}),
		standingsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "standings_published_total",
			Help:      "Standings snapshots published to object storage, by outcome.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route pattern, method and status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route pattern.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.standingsComputed,
		m.standingsDuration,
		m.skippedReferences,
		m.resultsSaved,
		m.standingsPublished,
		m.httpRequests,
		m.httpDuration,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveStandings(elapsed time.Duration, skippedByKind map[string]int) {
	if m == nil {
		return
	}
	m.standingsComputed.Inc()
	m.standingsDuration.Observe(elapsed.Seconds())
	for kind, n := range skippedByKind {
		m.skippedReferences.WithLabelValues(kind).Add(float64(n))
	}
}

func (m *Metrics) ResultSaved(mode string) {
	if m == nil {
		return
	}
	m.resultsSaved.WithLabelValues(mode).Inc()
}

func (m *Metrics) StandingsPublished(ok bool) {
	if m == nil {
		return
	}
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	m.standingsPublished.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveHTTP(route, method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, status).Inc()
	m.httpDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
