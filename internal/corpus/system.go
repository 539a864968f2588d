package corpus

import (
	"context"
	"io"

	"github.com/JaimeStill/cmdreview/pkg/pagination"
)

// System defines read access to the command corpus and bulk loading.
type System interface {
	Handler() *Handler

	// Count returns the number of distinct commands.
	Count(ctx context.Context) (int, error)
	// CommandAt returns the command at a zero-based position in id order.
	CommandAt(ctx context.Context, index int) (*Command, error)
	Find(ctx context.Context, id int64) (*Command, error)
	List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Command], error)
	// ContextsFor returns a command's arguments and contexts ordered by argument id.
	ContextsFor(ctx context.Context, commandID int64) ([]Context, error)

	// Load upserts JSON-line entries in a single transaction.
	Load(ctx context.Context, r io.Reader) (*LoadResult, error)
}
