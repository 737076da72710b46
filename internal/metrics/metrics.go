// Package metrics exposes Prometheus instrumentation for Backoffice.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Upstream request outcomes.
const (
	OutcomeOK          = "ok"
	OutcomeNotFound    = "not_found"
	OutcomeUnavailable = "unavailable"
)

// Metrics holds the Prometheus collectors for the dashboard backend.
// A nil *Metrics is valid and records nothing, so components don't need
// to guard every observation.
type Metrics struct {
	registry *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	fallbackOps      *prometheus.CounterVec
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		upstreamRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Name:      "upstream_requests_total",
			Help:      "Requests issued to the upstream storefront API.",
		}, []string{"collection", "operation", "outcome"}),
		fallbackOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Name:      "fallback_operations_total",
			Help:      "Operations served by the local fallback store.",
		}, []string{"collection", "operation"}),
	}

	registry.MustRegister(
		m.upstreamRequests,
		m.fallbackOps,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// ObserveUpstream records one upstream API request.
func (m *Metrics) ObserveUpstream(collection, operation, outcome string) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(collection, operation, outcome).Inc()
}

// ObserveFallback records one operation answered from the fallback store.
func (m *Metrics) ObserveFallback(collection, operation string) {
	if m == nil {
		return
	}
	m.fallbackOps.WithLabelValues(collection, operation).Inc()
}

// Handler returns the HTTP handler serving the metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
