// Package metrics exposes Prometheus collectors for backend calls made by the
// client. Each Collector owns its registry so several can coexist in tests.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Request outcomes used as the "outcome" label.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport"
	OutcomeDecode    = "decode"
	OutcomeStatus    = "status"
)

// Collector records backend request counts, latency, in-flight calls and
// responses dropped because a newer selection superseded them.
type Collector struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
	stale    *prometheus.CounterVec
	handler  http.Handler
}

// NewCollector builds a Collector with Go runtime metrics included.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedforge_backend_requests_total",
			Help: "Backend requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "schedforge_backend_request_duration_seconds",
			Help:    "Backend request latency by endpoint.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"endpoint"}),
		inFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "schedforge_backend_requests_in_flight",
			Help: "Backend requests currently awaiting a response.",
		}),
		stale: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "schedforge_stale_responses_total",
			Help: "Responses discarded because the session moved on before they arrived.",
		}, []string{"step"}),
	}
	c.registry.MustRegister(
		c.requests, c.duration, c.inFlight, c.stale,
		collectors.NewGoCollector(),
	)
	c.handler = promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	return c
}

// ObserveRequest records one finished backend call.
func (c *Collector) ObserveRequest(endpoint, outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.requests.WithLabelValues(endpoint, outcome).Inc()
	c.duration.WithLabelValues(endpoint).Observe(d.Seconds())
}

// IncInFlight marks a request as started.
func (c *Collector) IncInFlight() {
	if c != nil {
		c.inFlight.Inc()
	}
}

// DecInFlight marks a request as finished.
func (c *Collector) DecInFlight() {
	if c != nil {
		c.inFlight.Dec()
	}
}

// StaleDropped counts a discarded response for step.
func (c *Collector) StaleDropped(step string) {
	if c != nil {
		c.stale.WithLabelValues(step).Inc()
	}
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// WritePrometheus serves the metrics in the Prometheus text format.
func (c *Collector) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	c.handler.ServeHTTP(w, r)
}
