package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the per-endpoint collectors on a private registry so tests
// can build servers without duplicate-registration panics.
type Metrics struct {
	Requests *prometheus.CounterVec
	Errors   *prometheus.CounterVec
	Duration *prometheus.HistogramVec

	registry *prometheus.Registry
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "le_requests_total",
			Help: "Total requests",
		}, []string{"endpoint"}),
		Errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "le_errors_total",
			Help: "Total errors",
		}, []string{"endpoint"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "le_request_duration_seconds",
			Help: "Request duration (s)",
		}, []string{"endpoint"}),
		registry: prometheus.NewRegistry(),
	}
	m.registry.MustRegister(m.Requests, m.Errors, m.Duration)
	return m
}

// Handler serves the text exposition format for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
