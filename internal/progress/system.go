package progress

import "context"

// System defines per-validator progress operations.
type System interface {
	Handler() *Handler

	// Resume returns the view at the persisted cursor.
	Resume(ctx context.Context, validatorID int64) (*View, error)
	// Cursor returns the persisted cursor.
	Cursor(ctx context.Context, validatorID int64) (int, error)
	// Current returns the view at an explicit browsing state.
	Current(ctx context.Context, validatorID int64, state State) (*View, error)
	// Navigate applies a browsing action. The persisted cursor is untouched.
	Navigate(ctx context.Context, validatorID int64, state State, action Action) (*View, error)
	// Classify records the displayed argument in the typed ledger, advances
	// the cursor by one, and returns the view at the next command.
	Classify(ctx context.Context, validatorID int64, state State, ledgerType string) (*View, error)
}
