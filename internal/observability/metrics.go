package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for the query API.
type Metrics struct {
	Requests        *prometheus.CounterVec   // labels: route, status
	RequestDuration *prometheus.HistogramVec // labels: route
	StoreErrors     *prometheus.CounterVec   // labels: operation
}

// NewMetrics creates the API metrics and registers them with reg.
// Production passes prometheus.DefaultRegisterer; tests pass a fresh
// prometheus.NewRegistry() to avoid "already registered" panics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_api",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "climate_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route"}),
		StoreErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "climate_api",
			Name:      "store_errors_total",
			Help:      "Failed store reads by operation.",
		}, []string{"operation"}),
	}

	reg.MustRegister(m.Requests, m.RequestDuration, m.StoreErrors)
	return m
}

// IncStoreError counts one failed store read
func (m *Metrics) IncStoreError(operation string) {
	m.StoreErrors.WithLabelValues(operation).Inc()
}

// ObserveRequest records one finished HTTP request
func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	m.Requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
