package types

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGroupCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		a    Group
		b    Group
		want int
	}{
		{Group{ID: "a", Aggregate: 2000}, Group{ID: "a", Aggregate: 2000}, 0},
		{Group{ID: "b", Aggregate: 1999}, Group{ID: "a", Aggregate: 2000}, -1},
		{Group{ID: "a", Aggregate: 2001}, Group{ID: "b", Aggregate: 2000}, 1},
		{Group{ID: "a", Aggregate: 2000}, Group{ID: "b", Aggregate: 2000}, -1},
		{Group{ID: "c", Aggregate: 2000}, Group{ID: "b", Aggregate: 2000}, 1},
	}

	for _, tt := range tests {
		got := tt.a.Compare(tt.b)
		switch tt.want {
		case 0:
			require.Equal(t, 0, got)
		case -1:
			require.Less(t, got, 0)
		case 1:
			require.Greater(t, got, 0)
		}
	}
}

func TestGroupSortAndIDs(t *testing.T) {
	groups := []Group{
		{ID: "C", RecordIDs: []string{"6"}, Aggregate: 2020},
		{ID: "B", RecordIDs: []string{"4", "5"}, Aggregate: 2010},
		{ID: "A", RecordIDs: []string{"1", "2", "3"}, Aggregate: 2000},
		{ID: "AA", RecordIDs: []string{"7"}, Aggregate: 2010},
	}
	slices.SortFunc(groups, Group.Compare)

	require.Equal(t, []string{"A", "AA", "B", "C"}, GroupIDs(groups))
	require.Equal(t, 3, groups[0].Size())
}
