package resttest

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/seb7887/simplerest/rest"
)

// AssertMetricExists asserts that a metric with the given name exists in the registry.
func AssertMetricExists(t *testing.T, registry *prometheus.Registry, metricName string) {
	t.Helper()

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}

	for _, family := range families {
		if family.GetName() == metricName {
			return
		}
	}

	t.Errorf("metric %q not found in registry", metricName)
}

// GetMetricValue retrieves the value of a metric with the given name and labels.
// Histograms report their sample count.
func GetMetricValue(registry *prometheus.Registry, metricName string, labels map[string]string) (float64, error) {
	families, err := registry.Gather()
	if err != nil {
		return 0, fmt.Errorf("failed to gather metrics: %w", err)
	}

	for _, family := range families {
		if family.GetName() != metricName {
			continue
		}

		for _, metric := range family.GetMetric() {
			if !matchesLabels(metric, labels) {
				continue
			}
			switch {
			case metric.Counter != nil:
				return metric.Counter.GetValue(), nil
			case metric.Gauge != nil:
				return metric.Gauge.GetValue(), nil
			case metric.Histogram != nil:
				return float64(metric.Histogram.GetSampleCount()), nil
			}
		}
	}

	return 0, fmt.Errorf("metric %q with labels %v not found", metricName, labels)
}

func matchesLabels(metric *dto.Metric, expectedLabels map[string]string) bool {
	metricLabels := make(map[string]string)
	for _, label := range metric.GetLabel() {
		metricLabels[label.GetName()] = label.GetValue()
	}

	for key, expectedValue := range expectedLabels {
		actualValue, exists := metricLabels[key]
		if !exists || actualValue != expectedValue {
			return false
		}
	}

	return true
}

// AssertMetricValueWithLabels asserts that a metric with specific labels has the expected value.
func AssertMetricValueWithLabels(t *testing.T, registry *prometheus.Registry, metricName string, labels map[string]string, expected float64) {
	t.Helper()

	actual, err := GetMetricValue(registry, metricName, labels)
	if err != nil {
		t.Fatalf("failed to get metric value: %v", err)
	}

	if actual != expected {
		t.Errorf("metric %q with labels %v: got %v, want %v", metricName, labels, actual, expected)
	}
}

// AssertHTTPError asserts that err is a *rest.HTTPError with the given code.
func AssertHTTPError(t *testing.T, err error, code int) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected HTTP error %d, got nil", code)
	}
	if got := rest.StatusCode(err); got != code {
		t.Errorf("HTTP error code: got %d, want %d (err: %v)", got, code, err)
	}
}
