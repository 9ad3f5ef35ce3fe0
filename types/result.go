package types

// Stats summarizes a split run.
type Stats struct {
	// RunID identifies the run in logs and hooks.
	RunID string `json:"run_id"`

	// InputRecords is the number of distinct record ids given to the run.
	InputRecords int `json:"input_records"`

	// Records is the number of records that survived lookup filtering.
	Records int `json:"records"`

	// Excluded is the number of records the resolver did not find.
	Excluded int `json:"excluded"`

	// Groups is the number of groups partitioned (equals Records for ungrouped runs).
	Groups int `json:"groups"`

	// SplitGroups and RestGroups count groups on each side.
	SplitGroups int `json:"split_groups"`
	RestGroups  int `json:"rest_groups"`

	// SplitRecords and RestRecords count records on each side.
	SplitRecords int `json:"split_records"`
	RestRecords  int `json:"rest_records"`

	// Fraction is the normalized target fraction.
	Fraction float64 `json:"fraction"`

	// Requested is the number of split records the target asked for.
	Requested int `json:"requested"`
}

// Deviation returns how many records the split side differs from the request.
func (s Stats) Deviation() int {
	return s.SplitRecords - s.Requested
}

// Result is the output of a split run.
type Result struct {
	// Split holds the record ids of the side the target refers to.
	Split []string `json:"split"`

	// Rest holds the remaining record ids.
	Rest []string `json:"rest"`

	// Stats summarizes the run.
	Stats Stats `json:"stats"`
}
