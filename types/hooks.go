package types

import "context"

// Hooks defines callbacks for split run events.
//
// All hooks are optional. They run synchronously on the caller's goroutine,
// so they should complete quickly. Hook errors are logged and never fail the run.
//
// Example:
//
//	hooks := &flexgp.Hooks{
//	    OnRecordExcluded: func(ctx context.Context, recordID string) error {
//	        excluded = append(excluded, recordID)
//	        return nil
//	    },
//	}
type Hooks struct {
	// OnRecordExcluded is called when the resolver does not find a record.
	OnRecordExcluded func(ctx context.Context, recordID string) error

	// OnSplitCompleted is called once a split has produced its result.
	OnSplitCompleted func(ctx context.Context, stats Stats) error
}
