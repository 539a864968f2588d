package ledger

import (
	"context"
	"time"

	"github.com/JaimeStill/cmdreview/pkg/pagination"
	"github.com/JaimeStill/cmdreview/pkg/repository"
)

// System defines ledger writes and history reads.
type System interface {
	Handler(loc *time.Location) *Handler

	// Append records a classification and stamps the validator's last_seen.
	Append(ctx context.Context, cmd AppendCommand) (*Record, error)
	// AppendTx performs Append within the caller's transaction.
	AppendTx(ctx context.Context, tx repository.DB, cmd AppendCommand) (*Record, error)

	Counts(ctx context.Context, validatorID int64) (Counts, error)

	// Query returns the capped, ordered history for a validator.
	Query(ctx context.Context, validatorID int64, filters Filters) ([]Record, error)
	// List pages through the capped history.
	List(
		ctx context.Context,
		validatorID int64,
		filters Filters,
		page pagination.PageRequest,
	) (*pagination.PageResult[Record], error)
}
