package metrics

import "github.com/flexgp/flexgp/types"

// NopMetrics implements a no-op metrics collector.
//
// All metrics are discarded. Useful for testing or when external
// metrics collection is used.
type NopMetrics struct{}

// Compile-time assertion that NopMetrics implements MetricsCollector.
var _ types.MetricsCollector = (*NopMetrics)(nil)

// NewNop creates a new no-op metrics collector.
//
// Returns:
//   - *NopMetrics: A new no-op metrics collector instance
//
// Example:
//
//	metrics := metrics.NewNop()
//	splitter, err := flexgp.NewSplitter(resolver, flexgp.WithMetrics(metrics))
func NewNop() *NopMetrics {
	return &NopMetrics{}
}

// LookupMetrics implementation

// RecordLookup discards the lookup metric.
func (n *NopMetrics) RecordLookup(_ /* result */ string, _ /* duration */ float64) {}

// AggregatorMetrics implementation

// RecordExcluded discards the excluded record count.
func (n *NopMetrics) RecordExcluded(_ /* count */ int) {}

// RecordGroupCount discards the group count.
func (n *NopMetrics) RecordGroupCount(_ /* count */ int) {}

// PartitionMetrics implementation

// RecordSplit discards the split metric.
func (n *NopMetrics) RecordSplit(_ /* mode */ string, _ /* splitRecords */, _ /* restRecords */, _ /* deviation */ int) {
}

// RecordSplitFailure discards the failure metric.
func (n *NopMetrics) RecordSplitFailure(_ /* mode */, _ /* reason */ string) {}

// RecordSplitDuration discards the duration metric.
func (n *NopMetrics) RecordSplitDuration(_ /* mode */ string, _ /* duration */ float64) {}
