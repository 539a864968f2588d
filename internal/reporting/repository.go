package reporting

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/cmdreview/internal/corpus"
	"github.com/JaimeStill/cmdreview/internal/ledger"
	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/formatting"
	"github.com/JaimeStill/cmdreview/pkg/repository"
)

const (
	roleNamesQuery = `
		SELECT role, name FROM users
		WHERE role IN ($1, $2)
		ORDER BY name, id`

	recentQuery = `
		SELECT id, name, last_seen FROM users
		WHERE role = $1
		ORDER BY CASE WHEN last_seen IS NULL THEN 1 ELSE 0 END, last_seen DESC, name, id
		LIMIT $2`

	processedQuery = `
		SELECT u.id, u.name, u.last_processed_command_index, COUNT(c.id)
		FROM users u
		LEFT JOIN classifications c ON c.validator_id = u.id
		WHERE u.role = $1
		GROUP BY u.id, u.name, u.last_processed_command_index`

	leaderboardOrder = ` ORDER BY COUNT(c.id) DESC, u.name, u.id`
	liveOrder        = ` ORDER BY u.name, u.id`
)

type repo struct {
	db     *sql.DB
	corpus corpus.System
	ledger ledger.System
	logger *slog.Logger
	loc    *time.Location
	now    func() time.Time
}

// New creates the reporting system. Absolute recency labels render in loc;
// now defaults to time.Now when nil.
func New(
	db *sql.DB,
	corpus corpus.System,
	ledger ledger.System,
	logger *slog.Logger,
	loc *time.Location,
	now func() time.Time,
) System {
	if now == nil {
		now = time.Now
	}
	if loc == nil {
		loc = time.UTC
	}
	return &repo{
		db:     db,
		corpus: corpus,
		ledger: ledger,
		logger: logger.With("system", "reporting"),
		loc:    loc,
		now:    now,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Stats(ctx context.Context, validatorID int64) (*Stats, error) {
	counts, err := r.ledger.Counts(ctx, validatorID)
	if err != nil {
		return nil, err
	}

	total, err := r.corpus.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &Stats{
		Dynamic:   counts.Dynamic,
		Static:    counts.Static,
		Processed: counts.Processed(),
		Remaining: total - counts.Processed(),
		Total:     total,
	}, nil
}

func (r *repo) RoleCounts(ctx context.Context) (*RoleCounts, error) {
	type named struct{ role, name string }

	rows, err := repository.QueryMany(ctx, r.db, roleNamesQuery,
		[]any{auth.RoleValidator, auth.RoleViewer},
		func(s repository.Scanner) (named, error) {
			var n named
			err := s.Scan(&n.role, &n.name)
			return n, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query role names: %w", err)
	}

	rc := &RoleCounts{ValidatorNames: []string{}, ViewerNames: []string{}}
	for _, n := range rows {
		switch n.role {
		case auth.RoleValidator:
			rc.ValidatorNames = append(rc.ValidatorNames, n.name)
		case auth.RoleViewer:
			rc.ViewerNames = append(rc.ViewerNames, n.name)
		}
	}
	rc.ValidatorCount = len(rc.ValidatorNames)
	rc.ViewerCount = len(rc.ViewerNames)
	return rc, nil
}

func (r *repo) RecentActivity(ctx context.Context, limit int) ([]Activity, error) {
	if limit < 1 || limit > maxRecentLimit {
		return nil, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidParameter, maxRecentLimit)
	}

	now := r.now()
	activity, err := repository.QueryMany(ctx, r.db, recentQuery,
		[]any{auth.RoleValidator, limit},
		func(s repository.Scanner) (Activity, error) {
			var (
				a        Activity
				lastSeen sql.NullTime
			)
			if err := s.Scan(&a.ID, &a.Name, &lastSeen); err != nil {
				return a, err
			}
			if lastSeen.Valid {
				t := lastSeen.Time.UTC()
				a.LastSeen = &t
			}
			a.Label = formatting.Recency(now, a.LastSeen, r.loc)
			return a, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query recent activity: %w", err)
	}
	return activity, nil
}

type processedRow struct {
	id        int64
	name      string
	cursor    int
	processed int
}

func (r *repo) processed(ctx context.Context, order string) ([]processedRow, error) {
	rows, err := repository.QueryMany(ctx, r.db, processedQuery+order,
		[]any{auth.RoleValidator},
		func(s repository.Scanner) (processedRow, error) {
			var p processedRow
			err := s.Scan(&p.id, &p.name, &p.cursor, &p.processed)
			return p, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query processed counts: %w", err)
	}
	return rows, nil
}

func (r *repo) Leaderboard(ctx context.Context) ([]Standing, error) {
	rows, err := r.processed(ctx, leaderboardOrder)
	if err != nil {
		return nil, err
	}

	board := make([]Standing, len(rows))
	for i, p := range rows {
		board[i] = Standing{
			Rank:        i + 1,
			ValidatorID: p.id,
			Name:        p.name,
			Processed:   p.processed,
		}
	}
	return board, nil
}

func (r *repo) Live(ctx context.Context) ([]LiveStatus, error) {
	total, err := r.corpus.Count(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := r.processed(ctx, liveOrder)
	if err != nil {
		return nil, err
	}

	live := make([]LiveStatus, len(rows))
	for i, p := range rows {
		live[i] = LiveStatus{
			ValidatorID: p.id,
			Name:        p.name,
			Cursor:      p.cursor,
			Processed:   p.processed,
			Remaining:   total - p.processed,
		}
	}
	return live, nil
}

func (r *repo) Overview(ctx context.Context) (*Overview, error) {
	var ov Overview
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		roles, err := r.RoleCounts(ctx)
		if err != nil {
			return err
		}
		ov.Roles = *roles
		return nil
	})

	g.Go(func() (err error) {
		ov.Recent, err = r.RecentActivity(ctx, DefaultRecentLimit)
		return err
	})

	g.Go(func() (err error) {
		ov.Leaderboard, err = r.Leaderboard(ctx)
		return err
	})

	g.Go(func() (err error) {
		ov.Live, err = r.Live(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ov, nil
}
