package metrics

import (
	"sync"

	"github.com/flexgp/flexgp/types"
	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusCollector implements types.MetricsCollector backed by Prometheus.
//
// Collectors are created and registered lazily on first use, so constructing
// one that is never exercised leaves the registry untouched.
type PrometheusCollector struct {
	reg       prometheus.Registerer
	namespace string
	once      sync.Once

	lookups        *prometheus.CounterVec
	lookupLatency  *prometheus.HistogramVec
	excluded       prometheus.Counter
	groups         prometheus.Gauge
	splits         *prometheus.CounterVec
	splitRecords   *prometheus.CounterVec
	splitDeviation *prometheus.GaugeVec
	splitFailures  *prometheus.CounterVec
	splitDuration  *prometheus.HistogramVec
}

// Compile-time assertion that PrometheusCollector implements MetricsCollector.
var _ types.MetricsCollector = (*PrometheusCollector)(nil)

// NewPrometheus creates a new Prometheus-backed metrics collector.
//
// Parameters:
//   - reg: Prometheus registerer interface (uses prometheus.DefaultRegisterer if nil)
//   - namespace: Prometheus metrics namespace (defaults to "flexgp" if empty)
//
// Returns:
//   - *PrometheusCollector: A MetricsCollector implementation using Prometheus
func NewPrometheus(reg prometheus.Registerer, namespace string) *PrometheusCollector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	if namespace == "" {
		namespace = "flexgp"
	}

	return &PrometheusCollector{reg: reg, namespace: namespace}
}

func (p *PrometheusCollector) ensureRegistered() {
	p.once.Do(func() {
		p.lookups = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "lookup",
			Name:      "requests_total",
			Help:      "Total resolver calls by result (found,not_found,error).",
		}, []string{"result"})

		p.lookupLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "lookup",
			Name:      "duration_seconds",
			Help:      "Latency of resolver calls in seconds by result.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8), // 100µs .. ~1.6s
		}, []string{"result"})

		p.excluded = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "aggregate",
			Name:      "excluded_records_total",
			Help:      "Total records dropped because the resolver had no metadata for them.",
		})

		p.groups = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "aggregate",
			Name:      "groups",
			Help:      "Number of groups built by the most recent aggregation.",
		})

		p.splits = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "split",
			Name:      "completed_total",
			Help:      "Total completed splits by mode (grouped,lines,allocate).",
		}, []string{"mode"})

		p.splitRecords = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "split",
			Name:      "records_total",
			Help:      "Total records emitted by mode and side (split,rest).",
		}, []string{"mode", "side"})

		p.splitDeviation = prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: p.namespace,
			Subsystem: "split",
			Name:      "deviation_records",
			Help:      "Obtained minus requested split size of the most recent split by mode.",
		}, []string{"mode"})

		p.splitFailures = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: p.namespace,
			Subsystem: "split",
			Name:      "failures_total",
			Help:      "Total failed splits by mode and reason.",
		}, []string{"mode", "reason"})

		p.splitDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: p.namespace,
			Subsystem: "split",
			Name:      "duration_seconds",
			Help:      "Duration of split runs in seconds by mode.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 30, 120},
		}, []string{"mode"})

		p.reg.MustRegister(p.lookups)
		p.reg.MustRegister(p.lookupLatency)
		p.reg.MustRegister(p.excluded)
		p.reg.MustRegister(p.groups)
		p.reg.MustRegister(p.splits)
		p.reg.MustRegister(p.splitRecords)
		p.reg.MustRegister(p.splitDeviation)
		p.reg.MustRegister(p.splitFailures)
		p.reg.MustRegister(p.splitDuration)
	})
}

// LookupMetrics implementation

// RecordLookup counts one resolver call and observes its latency.
func (p *PrometheusCollector) RecordLookup(result string, duration float64) {
	p.ensureRegistered()
	p.lookups.WithLabelValues(result).Inc()
	p.lookupLatency.WithLabelValues(result).Observe(duration)
}

// AggregatorMetrics implementation

// RecordExcluded adds count to the excluded records counter.
func (p *PrometheusCollector) RecordExcluded(count int) {
	if count <= 0 {
		return
	}
	p.ensureRegistered()
	p.excluded.Add(float64(count))
}

// RecordGroupCount sets the group gauge.
func (p *PrometheusCollector) RecordGroupCount(count int) {
	p.ensureRegistered()
	p.groups.Set(float64(count))
}

// PartitionMetrics implementation

// RecordSplit records a completed split.
func (p *PrometheusCollector) RecordSplit(mode string, splitRecords, restRecords, deviation int) {
	p.ensureRegistered()
	p.splits.WithLabelValues(mode).Inc()
	p.splitRecords.WithLabelValues(mode, "split").Add(float64(splitRecords))
	p.splitRecords.WithLabelValues(mode, "rest").Add(float64(restRecords))
	p.splitDeviation.WithLabelValues(mode).Set(float64(deviation))
}

// RecordSplitFailure increments the failure counter.
func (p *PrometheusCollector) RecordSplitFailure(mode, reason string) {
	p.ensureRegistered()
	p.splitFailures.WithLabelValues(mode, reason).Inc()
}

// RecordSplitDuration observes the split duration.
func (p *PrometheusCollector) RecordSplitDuration(mode string, duration float64) {
	p.ensureRegistered()
	p.splitDuration.WithLabelValues(mode).Observe(duration)
}
