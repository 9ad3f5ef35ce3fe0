package types

// MetricsCollector defines methods for recording split metrics.
//
// Implementations should be non-blocking and handle failures gracefully.
// A Splitter may be shared between goroutines, so methods must be thread-safe.
//
// This interface composes smaller, domain-focused interfaces for better modularity.
type MetricsCollector interface {
	LookupMetrics
	AggregatorMetrics
	PartitionMetrics
}

// LookupMetrics defines metrics for resolver calls.
type LookupMetrics interface {
	// RecordLookup records one resolver call.
	//
	// Parameters:
	//   - result: "found", "not_found" or "error"
	//   - duration: Time taken in seconds
	RecordLookup(result string, duration float64)
}

// AggregatorMetrics defines metrics for group aggregation.
type AggregatorMetrics interface {
	// RecordExcluded records records dropped by the filtering policy.
	RecordExcluded(count int)

	// RecordGroupCount sets the number of groups built by the last run (gauge metric).
	RecordGroupCount(count int)
}

// PartitionMetrics defines metrics for completed splits.
type PartitionMetrics interface {
	// RecordSplit records a completed split.
	//
	// Parameters:
	//   - mode: "grouped", "lines" or "allocate"
	//   - splitRecords: Records on the split side
	//   - restRecords: Records on the rest side
	//   - deviation: Split records minus requested records
	RecordSplit(mode string, splitRecords, restRecords, deviation int)

	// RecordSplitFailure records a split that returned an error.
	//
	// Parameters:
	//   - mode: "grouped", "lines" or "allocate"
	//   - reason: "invalid_target", "constraint", "lookup" or "other"
	RecordSplitFailure(mode, reason string)

	// RecordSplitDuration records the time a split took in seconds.
	RecordSplitDuration(mode string, duration float64)
}
