package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestNewPrometheus_Defaults(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewPrometheus(reg, "")

	require.Equal(t, "flexgp", collector.namespace)

	// Nothing is registered until the first observation.
	families, err := reg.Gather()
	require.NoError(t, err)
	require.Empty(t, families)
}

func TestPrometheusCollector_Lookups(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewPrometheus(reg, "test")

	collector.RecordLookup("found", 0.001)
	collector.RecordLookup("found", 0.002)
	collector.RecordLookup("not_found", 0.001)

	require.InDelta(t, 2, testutil.ToFloat64(collector.lookups.WithLabelValues("found")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(collector.lookups.WithLabelValues("not_found")), 0)
	require.Equal(t, 2, testutil.CollectAndCount(collector.lookupLatency))
}

func TestPrometheusCollector_Aggregator(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewPrometheus(reg, "test")

	collector.RecordExcluded(3)
	collector.RecordExcluded(0)
	collector.RecordExcluded(2)
	collector.RecordGroupCount(10)
	collector.RecordGroupCount(7)

	require.InDelta(t, 5, testutil.ToFloat64(collector.excluded), 0)
	require.InDelta(t, 7, testutil.ToFloat64(collector.groups), 0)
}

func TestPrometheusCollector_Splits(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector := NewPrometheus(reg, "test")

	collector.RecordSplit("grouped", 30, 70, -1)
	collector.RecordSplit("grouped", 10, 20, 0)
	collector.RecordSplitFailure("lines", "invalid_target")
	collector.RecordSplitDuration("grouped", 0.25)

	require.InDelta(t, 2, testutil.ToFloat64(collector.splits.WithLabelValues("grouped")), 0)
	require.InDelta(t, 40, testutil.ToFloat64(collector.splitRecords.WithLabelValues("grouped", "split")), 0)
	require.InDelta(t, 90, testutil.ToFloat64(collector.splitRecords.WithLabelValues("grouped", "rest")), 0)
	require.InDelta(t, 0, testutil.ToFloat64(collector.splitDeviation.WithLabelValues("grouped")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(collector.splitFailures.WithLabelValues("lines", "invalid_target")), 0)

	count, err := testutil.GatherAndCount(reg, "test_split_duration_seconds")
	require.NoError(t, err)
	require.Equal(t, 1, count)
}
