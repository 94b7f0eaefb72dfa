package observability

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHost(t *testing.T) {
	tests := map[string]string{
		"api.example.com:443":  "api.example.com",
		"api.example.com:80":   "api.example.com",
		"api.example.com:8443": "api.example.com:8443",
		"api.example.com":      "api.example.com",
		"127.0.0.1:9000":       "127.0.0.1:9000",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizeHost(in), in)
	}
}

func TestMetricsCollector(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := NewMetricsCollector(registry)

	m.IncrementActiveRequests("api.example.com")
	m.IncrementActiveRequests("api.example.com")
	m.DecrementActiveRequests("api.example.com")
	m.RecordRequestDuration("GET", "api.example.com", 200, 25*time.Millisecond)
	m.IncrementUnexpectedStatus("GET", "api.example.com", 404)
	m.IncrementTransportErrors("POST", "api.example.com")
	m.IncrementTransportErrors("POST", "api.example.com")

	families, err := registry.Gather()
	require.NoError(t, err)

	values := map[string]float64{}
	for _, family := range families {
		for _, metric := range family.GetMetric() {
			switch {
			case metric.Counter != nil:
				values[family.GetName()] = metric.Counter.GetValue()
			case metric.Gauge != nil:
				values[family.GetName()] = metric.Gauge.GetValue()
			case metric.Histogram != nil:
				values[family.GetName()] = float64(metric.Histogram.GetSampleCount())
			}
		}
	}

	assert.Equal(t, map[string]float64{
		"rest_client_active_requests":          1,
		"rest_client_request_duration_seconds": 1,
		"rest_client_unexpected_status_total":  1,
		"rest_client_transport_errors_total":   2,
	}, values)
}
