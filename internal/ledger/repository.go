package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/JaimeStill/cmdreview/pkg/pagination"
	"github.com/JaimeStill/cmdreview/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	now        func() time.Time
}

// New creates the ledger system. now stamps processed_time and last_seen;
// nil uses time.Now.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, now func() time.Time) System {
	if now == nil {
		now = time.Now
	}
	return &repo{
		db:         db,
		logger:     logger.With("system", "ledger"),
		pagination: pagination,
		now:        now,
	}
}

func (r *repo) Handler(loc *time.Location) *Handler {
	return NewHandler(r, r.logger, r.pagination, loc)
}

func (r *repo) Append(ctx context.Context, cmd AppendCommand) (*Record, error) {
	return repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*Record, error) {
		return r.AppendTx(ctx, tx, cmd)
	})
}

func (r *repo) AppendTx(ctx context.Context, tx repository.DB, cmd AppendCommand) (*Record, error) {
	typ, err := ParseType(string(cmd.Type))
	if err != nil {
		return nil, err
	}

	now := r.now().UTC()

	if err := repository.ExecExpectOne(ctx, tx,
		`UPDATE users SET last_seen = $1 WHERE id = $2`,
		now, cmd.ValidatorID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUnknownValidator
		}
		return nil, fmt.Errorf("update last_seen: %w", err)
	}

	rec := Record{
		ValidatorID:   cmd.ValidatorID,
		CommandID:     cmd.CommandID,
		CommandText:   cmd.CommandText,
		Type:          typ,
		ProcessedTime: now,
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO classifications (validator_id, command_id, command_text, ledger_type, processed_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		cmd.ValidatorID, cmd.CommandID, cmd.CommandText, string(typ), now,
	).Scan(&rec.ID)
	if err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrAlreadyClassified
		}
		return nil, fmt.Errorf("insert classification: %w", err)
	}

	r.logger.Info(
		"classification recorded",
		"validator_id", rec.ValidatorID,
		"command_id", rec.CommandID,
		"type", rec.Type,
	)
	return &rec, nil
}

func (r *repo) Counts(ctx context.Context, validatorID int64) (Counts, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ledger_type, COUNT(*)
		FROM classifications
		WHERE validator_id = $1
		GROUP BY ledger_type`, validatorID)
	if err != nil {
		return Counts{}, fmt.Errorf("count ledgers: %w", err)
	}
	defer rows.Close()

	var c Counts
	for rows.Next() {
		var (
			typ string
			n   int
		)
		if err := rows.Scan(&typ, &n); err != nil {
			return Counts{}, fmt.Errorf("scan ledger count: %w", err)
		}
		switch Type(typ) {
		case TypeDynamic:
			c.Dynamic = n
		case TypeStatic:
			c.Static = n
		}
	}
	if err := rows.Err(); err != nil {
		return Counts{}, fmt.Errorf("count ledgers: %w", err)
	}
	return c, nil
}
