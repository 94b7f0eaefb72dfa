package observability

import (
	"net"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsCollector provides Prometheus metrics for REST calls executed by the
// network transport.
type MetricsCollector struct {
	requestDuration  *prometheus.HistogramVec
	activeRequests   *prometheus.GaugeVec
	unexpectedStatus *prometheus.CounterVec
	transportErrors  *prometheus.CounterVec
}

// NewMetricsCollector creates a new Prometheus metrics collector.
// If registry is nil, uses the default Prometheus registry.
func NewMetricsCollector(registry prometheus.Registerer) *MetricsCollector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	return &MetricsCollector{
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "rest_client_request_duration_seconds",
				Help: "REST client request duration in seconds",
				Buckets: []float64{
					0.001, // 1ms
					0.005, // 5ms
					0.01,  // 10ms
					0.05,  // 50ms
					0.1,   // 100ms
					0.5,   // 500ms
					1.0,   // 1s
					2.0,   // 2s
					5.0,   // 5s
					10.0,  // 10s
				},
			},
			[]string{"method", "status_code", "host"},
		),

		activeRequests: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "rest_client_active_requests",
				Help: "Number of in-flight REST requests",
			},
			[]string{"host"},
		),

		unexpectedStatus: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rest_client_unexpected_status_total",
				Help: "Total number of responses whose status was not in the expected set",
			},
			[]string{"method", "status_code", "host"},
		),

		transportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rest_client_transport_errors_total",
				Help: "Total number of requests that failed without a response",
			},
			[]string{"method", "host"},
		),
	}
}

// RecordRequestDuration records the duration of a request that got a response.
func (m *MetricsCollector) RecordRequestDuration(method, host string, statusCode int, duration time.Duration) {
	m.requestDuration.WithLabelValues(
		method,
		strconv.Itoa(statusCode),
		host,
	).Observe(duration.Seconds())
}

// IncrementActiveRequests increments the in-flight requests gauge.
func (m *MetricsCollector) IncrementActiveRequests(host string) {
	m.activeRequests.WithLabelValues(host).Inc()
}

// DecrementActiveRequests decrements the in-flight requests gauge.
func (m *MetricsCollector) DecrementActiveRequests(host string) {
	m.activeRequests.WithLabelValues(host).Dec()
}

// IncrementUnexpectedStatus counts a response rejected by status code validation.
func (m *MetricsCollector) IncrementUnexpectedStatus(method, host string, statusCode int) {
	m.unexpectedStatus.WithLabelValues(method, strconv.Itoa(statusCode), host).Inc()
}

// IncrementTransportErrors counts a request that failed below the HTTP layer.
func (m *MetricsCollector) IncrementTransportErrors(method, host string) {
	m.transportErrors.WithLabelValues(method, host).Inc()
}

// NormalizeHost strips default ports to reduce label cardinality.
func NormalizeHost(host string) string {
	h, port, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}
	if port == "80" || port == "443" {
		return h
	}
	return host
}
