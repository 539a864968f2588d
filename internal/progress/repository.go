package progress

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/cmdreview/internal/corpus"
	"github.com/JaimeStill/cmdreview/internal/ledger"
	"github.com/JaimeStill/cmdreview/pkg/repository"
)

type repo struct {
	db     *sql.DB
	corpus corpus.System
	ledger ledger.System
	logger *slog.Logger
}

// New creates the progress system over the corpus and ledger systems.
func New(db *sql.DB, corpus corpus.System, ledger ledger.System, logger *slog.Logger) System {
	return &repo{
		db:     db,
		corpus: corpus,
		ledger: ledger,
		logger: logger.With("system", "progress"),
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger)
}

func (r *repo) Cursor(ctx context.Context, validatorID int64) (int, error) {
	cursor, err := repository.QueryInt(ctx, r.db,
		`SELECT last_processed_command_index FROM users WHERE id = $1`,
		validatorID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrUnknownValidator
		}
		return 0, fmt.Errorf("read cursor: %w", err)
	}
	return cursor, nil
}

func (r *repo) Resume(ctx context.Context, validatorID int64) (*View, error) {
	cursor, err := r.Cursor(ctx, validatorID)
	if err != nil {
		return nil, err
	}
	return r.view(ctx, cursor, State{Index: cursor})
}

func (r *repo) Current(ctx context.Context, validatorID int64, state State) (*View, error) {
	if state.Index < 0 || state.SubIndex < 0 {
		return nil, ErrInvalidState
	}

	cursor, err := r.Cursor(ctx, validatorID)
	if err != nil {
		return nil, err
	}
	return r.view(ctx, cursor, state)
}

func (r *repo) Navigate(ctx context.Context, validatorID int64, state State, action Action) (*View, error) {
	if state.Index < 0 || state.SubIndex < 0 {
		return nil, ErrInvalidState
	}

	cursor, err := r.Cursor(ctx, validatorID)
	if err != nil {
		return nil, err
	}

	current, err := r.view(ctx, cursor, state)
	if err != nil {
		return nil, err
	}

	next, err := Navigate(current.State, action, current.Total, current.ArgumentCount)
	if err != nil {
		return nil, err
	}
	return r.view(ctx, cursor, next)
}

func (r *repo) Classify(ctx context.Context, validatorID int64, state State, ledgerType string) (*View, error) {
	typ, err := ledger.ParseType(ledgerType)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLedgerType, ledgerType)
	}

	if state.Index < 0 || state.SubIndex < 0 {
		return nil, ErrInvalidState
	}

	cursor, err := r.Cursor(ctx, validatorID)
	if err != nil {
		return nil, err
	}

	shown, err := r.view(ctx, cursor, state)
	if err != nil {
		return nil, err
	}
	if shown.Complete {
		return nil, ErrSequenceComplete
	}

	text := shown.Command.FullCommandLine
	if shown.Argument != nil {
		text = shown.Argument.FullCommandLine
	}

	cursor, err = repository.WithTx(ctx, r.db, func(tx *sql.Tx) (int, error) {
		if _, err := r.ledger.AppendTx(ctx, tx, ledger.AppendCommand{
			ValidatorID: validatorID,
			CommandID:   shown.Command.ID,
			CommandText: text,
			Type:        typ,
		}); err != nil {
			return 0, err
		}

		if err := repository.ExecExpectOne(ctx, tx, `
			UPDATE users
			SET last_processed_command_index = last_processed_command_index + 1
			WHERE id = $1`, validatorID,
		); err != nil {
			return 0, fmt.Errorf("advance cursor: %w", err)
		}

		return repository.QueryInt(ctx, tx,
			`SELECT last_processed_command_index FROM users WHERE id = $1`,
			validatorID,
		)
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"cursor advanced",
		"validator_id", validatorID,
		"command_id", shown.Command.ID,
		"cursor", cursor,
	)

	return r.view(ctx, cursor, State{Index: state.Index + 1})
}

func (r *repo) view(ctx context.Context, cursor int, state State) (*View, error) {
	total, err := r.corpus.Count(ctx)
	if err != nil {
		return nil, err
	}

	v := &View{State: state, Cursor: cursor, Total: total}
	if state.Index >= total {
		v.Complete = true
		v.State.SubIndex = 0
		return v, nil
	}

	cmd, err := r.corpus.CommandAt(ctx, state.Index)
	if err != nil {
		return nil, err
	}

	contexts, err := r.corpus.ContextsFor(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	v.Command = cmd
	v.ArgumentCount = len(contexts)
	if v.State.SubIndex >= len(contexts) {
		v.State.SubIndex = 0
	}
	if len(contexts) > 0 {
		v.Argument = &contexts[v.State.SubIndex]
	}
	return v, nil
}
