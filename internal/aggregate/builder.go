package aggregate

import (
	"errors"
	"fmt"
	"slices"

	"github.com/flexgp/flexgp/types"
)

// ErrBuilderFrozen is returned when records are added after Build.
var ErrBuilderFrozen = errors.New("group builder already built")

// ErrDuplicateRecord is returned when the same record id is added twice.
var ErrDuplicateRecord = errors.New("record already assigned to a group")

// Builder accumulates records into groups.
//
// The builder owns the accumulator: groups are append-only until Build, which
// freezes them into immutable types.Group values.
type Builder struct {
	groups map[string]*accumulator
	seen   map[string]struct{}
	built  bool
}

type accumulator struct {
	recordIDs []string
	sum       float64
}

// NewBuilder creates an empty group builder.
func NewBuilder() *Builder {
	return &Builder{
		groups: make(map[string]*accumulator),
		seen:   make(map[string]struct{}),
	}
}

// Add appends a record to its group.
//
// Parameters:
//   - recordID: Record identifier (must not have been added before)
//   - meta: Resolved group and sort key
//
// Returns:
//   - error: ErrBuilderFrozen after Build, ErrDuplicateRecord for repeated ids
func (b *Builder) Add(recordID string, meta types.RecordMeta) error {
	if b.built {
		return ErrBuilderFrozen
	}
	if _, ok := b.seen[recordID]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateRecord, recordID)
	}
	b.seen[recordID] = struct{}{}

	acc, ok := b.groups[meta.GroupID]
	if !ok {
		acc = &accumulator{}
		b.groups[meta.GroupID] = acc
	}
	acc.recordIDs = append(acc.recordIDs, recordID)
	acc.sum += meta.SortKey

	return nil
}

// Records returns the number of records added so far.
func (b *Builder) Records() int {
	return len(b.seen)
}

// Build freezes the builder and returns its groups.
//
// Groups are sorted ascending by mean sort key, ties broken by group id, so
// the result is independent of map iteration order.
//
// Returns:
//   - []types.Group: Groups with member ids in discovery order
func (b *Builder) Build() []types.Group {
	b.built = true

	groups := make([]types.Group, 0, len(b.groups))
	for id, acc := range b.groups {
		groups = append(groups, types.Group{
			ID:        id,
			RecordIDs: slices.Clone(acc.recordIDs),
			Aggregate: acc.sum / float64(len(acc.recordIDs)),
		})
	}
	slices.SortFunc(groups, types.Group.Compare)

	return groups
}
