package flexgp

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/flexgp/flexgp/internal/metrics"
)

// NewPrometheusMetrics returns a MetricsCollector backed by Prometheus.
//
// Collectors are registered on reg the first time they are used.
//
// Parameters:
//   - reg: Registerer (prometheus.DefaultRegisterer when nil)
//   - namespace: Metric name prefix ("flexgp" when empty)
//
// Returns:
//   - MetricsCollector: Prometheus-backed collector
func NewPrometheusMetrics(reg prometheus.Registerer, namespace string) MetricsCollector {
	return metrics.NewPrometheus(reg, namespace)
}
