// Package hooks provides default hook implementations.
package hooks

import (
	"context"

	"github.com/flexgp/flexgp/types"
)

// NopHooks implements Hooks with no-op callbacks.
//
// Missing callbacks are replaced with these so callers never need nil checks.
type NopHooks struct{}

// Compile-time assertions that NopHooks implements hook callbacks.
var (
	_ func(context.Context, string) error      = (*NopHooks)(nil).OnRecordExcluded
	_ func(context.Context, types.Stats) error = (*NopHooks)(nil).OnSplitCompleted
)

// NewNop creates a new no-op hooks implementation.
//
// Returns:
//   - types.Hooks: Hooks with no-op implementations
func NewNop() types.Hooks {
	h := &NopHooks{}
	return types.Hooks{
		OnRecordExcluded: h.OnRecordExcluded,
		OnSplitCompleted: h.OnSplitCompleted,
	}
}

// Fill returns a copy of h with every nil callback replaced by a no-op.
//
// Parameters:
//   - h: User hooks (may be nil)
//
// Returns:
//   - types.Hooks: Hooks safe to call unconditionally
func Fill(h *types.Hooks) types.Hooks {
	filled := NewNop()
	if h == nil {
		return filled
	}
	if h.OnRecordExcluded != nil {
		filled.OnRecordExcluded = h.OnRecordExcluded
	}
	if h.OnSplitCompleted != nil {
		filled.OnSplitCompleted = h.OnSplitCompleted
	}

	return filled
}

// OnRecordExcluded is a no-op implementation.
func (h *NopHooks) OnRecordExcluded(_ context.Context, _ string) error {
	return nil
}

// OnSplitCompleted is a no-op implementation.
func (h *NopHooks) OnSplitCompleted(_ context.Context, _ types.Stats) error {
	return nil
}
