// Package telemetry exposes Prometheus metrics for routing, memory and
// generation.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics. A nil *Metrics records nothing.
type Metrics struct {
	RouteTotal           *prometheus.CounterVec
	MemoryEntries        prometheus.Gauge
	MemoryOpsTotal       *prometheus.CounterVec
	RetrievalTotal       *prometheus.CounterVec
	GenerationTotal      *prometheus.CounterVec
	GenerationDurationMs *prometheus.HistogramVec
	HTTPRequestsTotal    *prometheus.CounterVec
}

// NewMetrics creates all metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RouteTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "text_assist_route_total",
			Help: "Requests routed, by intent and routing path.",
		}, []string{"intent", "via"}),

		MemoryEntries: f.NewGauge(prometheus.GaugeOpts{
			Name: "text_assist_memory_entries",
			Help: "Entries currently held by the memory store.",
		}),

		MemoryOpsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "text_assist_memory_operations_total",
			Help: "Memory store operations, by operation and outcome.",
		}, []string{"op", "result"}),

		RetrievalTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "text_assist_retrieval_total",
			Help: "Memory retrievals, by retrieval type.",
		}, []string{"type"}),

		GenerationTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "text_assist_generation_total",
			Help: "Generation calls, by backend, intent and status.",
		}, []string{"backend", "intent", "status"}),

		GenerationDurationMs: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "text_assist_generation_duration_ms",
			Help:    "Generation latency in milliseconds.",
			Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000, 10000, 30000, 60000},
		}, []string{"backend"}),

		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "text_assist_http_requests_total",
			Help: "HTTP requests served, by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
	}
}

// RecordRoute counts one routing decision.
func (m *Metrics) RecordRoute(intent, via string) {
	if m == nil {
		return
	}
	m.RouteTotal.WithLabelValues(intent, via).Inc()
}

// RecordMemoryOp counts one memory operation. result is "ok" or "error".
func (m *Metrics) RecordMemoryOp(op, result string) {
	if m == nil {
		return
	}
	m.MemoryOpsTotal.WithLabelValues(op, result).Inc()
}

// SetMemoryEntries reports the current store size.
func (m *Metrics) SetMemoryEntries(n int) {
	if m == nil {
		return
	}
	m.MemoryEntries.Set(float64(n))
}

// RecordRetrieval counts one retrieval of the given type.
func (m *Metrics) RecordRetrieval(kind string) {
	if m == nil {
		return
	}
	m.RetrievalTotal.WithLabelValues(kind).Inc()
}

// RecordGeneration counts a generation call and observes its latency.
func (m *Metrics) RecordGeneration(backend, intent, status string, d time.Duration) {
	if m == nil {
		return
	}
	m.GenerationTotal.WithLabelValues(backend, intent, status).Inc()
	m.GenerationDurationMs.WithLabelValues(backend).Observe(float64(d.Milliseconds()))
}

// RecordHTTP counts a served HTTP request.
func (m *Metrics) RecordHTTP(method, route, status string) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
}
