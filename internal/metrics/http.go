// Package metrics содержит метрики Prometheus для HTTP API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// HTTPMetrics счётчик запросов и гистограмма длительности.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewRegistry создаёт реестр со стандартными метриками процесса и Go.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// NewHTTPMetrics регистрирует метрики HTTP в registry.
func NewHTTPMetrics(registry *prometheus.Registry) *HTTPMetrics {
	requests := promauto.With(registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymadmin_http_requests_total",
			Help: "The total number of handled HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	duration := promauto.With(registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymadmin_http_request_duration_seconds",
			Help:    "HTTP request latency distribution",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	return &HTTPMetrics{
		requests: requests,
		duration: duration,
	}
}

// Observe записывает один обработанный запрос.
func (m *HTTPMetrics) Observe(method, route string, status int, elapsed time.Duration) {
	m.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Handler отдаёт метрики из registry.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
