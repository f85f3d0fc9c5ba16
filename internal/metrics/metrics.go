package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors exported by the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	RequestDuration *prometheus.HistogramVec
	CacheLookups    *prometheus.CounterVec
	FetchErrors     *prometheus.CounterVec
	AnalyticsErrors *prometheus.CounterVec
	SnapshotRuns    *prometheus.CounterVec
	StreamClients   prometheus.Gauge
}

// New creates and registers the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		RequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "stockboard_http_request_duration_seconds",
				Help:    "Duration of HTTP requests by route and status",
				Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route", "method", "status"},
		),
		CacheLookups: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockboard_cache_lookups_total",
				Help: "Cache lookups by backend and result",
			},
			[]string{"backend", "result"},
		),
		FetchErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockboard_fetch_errors_total",
				Help: "Market data fetch failures by operation",
			},
			[]string{"op"},
		),
		AnalyticsErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockboard_analytics_errors_total",
				Help: "Rejected analytics calls by function",
			},
			[]string{"func"},
		),
		SnapshotRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stockboard_snapshot_runs_total",
				Help: "Scheduled market snapshot refreshes by result",
			},
			[]string{"result"},
		),
		StreamClients: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "stockboard_stream_clients",
				Help: "Connected websocket quote stream clients",
			},
		),
	}
	m.registry.MustRegister(
		m.RequestDuration,
		m.CacheLookups,
		m.FetchErrors,
		m.AnalyticsErrors,
		m.SnapshotRuns,
		m.StreamClients,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveRequest records one HTTP request duration by route template.
func (m *Metrics) ObserveRequest(route, method, status string, seconds float64) {
	if m == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, method, status).Observe(seconds)
}

// CacheLookup counts a hit or miss on backend.
func (m *Metrics) CacheLookup(backend string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.CacheLookups.WithLabelValues(backend, result).Inc()
}

// FetchError counts a failed provider call.
func (m *Metrics) FetchError(op string) {
	if m == nil {
		return
	}
	m.FetchErrors.WithLabelValues(op).Inc()
}

// AnalyticsError counts a failed analytics computation.
func (m *Metrics) AnalyticsError(fn string) {
	if m == nil {
		return
	}
	m.AnalyticsErrors.WithLabelValues(fn).Inc()
}

// SnapshotRun counts one scheduled snapshot refresh.
func (m *Metrics) SnapshotRun(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "error"
	}
	m.SnapshotRuns.WithLabelValues(result).Inc()
}

// StreamClientDelta adjusts the connected stream client gauge.
func (m *Metrics) StreamClientDelta(d float64) {
	if m == nil {
		return
	}
	m.StreamClients.Add(d)
}
