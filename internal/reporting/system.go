package reporting

import "context"

// System defines the read-only reporting operations.
type System interface {
	Handler() *Handler

	Stats(ctx context.Context, validatorID int64) (*Stats, error)
	RoleCounts(ctx context.Context) (*RoleCounts, error)
	// RecentActivity returns validators by last_seen descending, never-seen last.
	RecentActivity(ctx context.Context, limit int) ([]Activity, error)
	// Leaderboard ranks validators by processed count, ties broken by name.
	Leaderboard(ctx context.Context) ([]Standing, error)
	Live(ctx context.Context) ([]LiveStatus, error)
	// Overview gathers every admin panel concurrently.
	Overview(ctx context.Context) (*Overview, error)
}
