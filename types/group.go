package types

import "strings"

// Group is a set of records that must not be split across the partition boundary.
//
// A group's record list is in discovery order and is frozen once the
// aggregator returns it.
type Group struct {
	// ID is the group key, unique within a run.
	ID string

	// RecordIDs holds member record ids in the order they were discovered.
	RecordIDs []string

	// Aggregate is the mean sort key of the member records.
	Aggregate float64
}

// Size returns the number of member records.
func (g Group) Size() int {
	return len(g.RecordIDs)
}

// Compare orders groups by aggregate value, breaking ties by group id.
//
// Returns:
//   - int: -1 if g sorts before o, 0 if equal, +1 if g sorts after o
func (g Group) Compare(o Group) int {
	if g.Aggregate < o.Aggregate {
		return -1
	}
	if g.Aggregate > o.Aggregate {
		return 1
	}

	return strings.Compare(g.ID, o.ID)
}

// GroupIDs returns the ids of groups in slice order.
func GroupIDs(groups []Group) []string {
	ids := make([]string, len(groups))
	for i, g := range groups {
		ids[i] = g.ID
	}

	return ids
}
