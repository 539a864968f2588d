package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/JaimeStill/cmdreview/pkg/pagination"
	"github.com/JaimeStill/cmdreview/pkg/query"
	"github.com/JaimeStill/cmdreview/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates the corpus system.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "corpus"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) Count(ctx context.Context) (int, error) {
	n, err := repository.QueryInt(ctx, r.db, `SELECT COUNT(DISTINCT id) FROM commands`)
	if err != nil {
		return 0, fmt.Errorf("count commands: %w", err)
	}
	return n, nil
}

func (r *repo) CommandAt(ctx context.Context, index int) (*Command, error) {
	if index < 0 {
		return nil, ErrNotFound
	}

	q, args := query.NewBuilder(commandProjection, commandSort).BuildWindow(1, index)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCommand)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidEntry)
	}
	return &c, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*Command, error) {
	q, args := query.NewBuilder(commandProjection).BuildSingle("ID", id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanCommand)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrInvalidEntry)
	}
	return &c, nil
}

func (r *repo) List(ctx context.Context, page pagination.PageRequest) (*pagination.PageResult[Command], error) {
	page.Normalize(r.pagination)

	if err := commandProjection.ValidateSort(page.Sort); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSort, err)
	}

	qb := query.
		NewBuilder(commandProjection, commandSort).
		WhereSearch(page.Search, "FullCommandLine")

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryInt(ctx, r.db, countSQL, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("count commands: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	commands, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanCommand)
	if err != nil {
		return nil, fmt.Errorf("query commands: %w", err)
	}

	result := pagination.NewPageResult(commands, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) ContextsFor(ctx context.Context, commandID int64) ([]Context, error) {
	if commandID < 0 {
		return nil, ErrInvalidID
	}

	q, args := query.NewBuilder(contextProjection, contextSort).
		WhereEquals("CommandID", commandID).
		Build()

	contexts, err := repository.QueryMany(ctx, r.db, q, args, scanContext)
	if err != nil {
		return nil, fmt.Errorf("query contexts for command %d: %w", commandID, err)
	}
	return contexts, nil
}

const (
	upsertCommand = `
		INSERT INTO commands (id, full_command_line) VALUES ($1, $2)
		ON CONFLICT (id) DO UPDATE SET full_command_line = excluded.full_command_line`

	upsertArgument = `
		INSERT INTO arguments (id, command_id, full_command_line) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET
			command_id = excluded.command_id,
			full_command_line = excluded.full_command_line`

	upsertContext = `
		INSERT INTO contexts (argument_id, context_lines) VALUES ($1, $2)
		ON CONFLICT (argument_id) DO UPDATE SET context_lines = excluded.context_lines`
)

func (r *repo) Load(ctx context.Context, src io.Reader) (*LoadResult, error) {
	entries, err := decodeEntries(src)
	if err != nil {
		return nil, err
	}

	result, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (*LoadResult, error) {
		var res LoadResult
		for _, e := range entries {
			if _, err := tx.ExecContext(ctx, upsertCommand, e.ID, e.FullCommandLine); err != nil {
				return nil, fmt.Errorf("upsert command %d: %w", e.ID, err)
			}
			res.Commands++

			for _, a := range e.Arguments {
				if _, err := tx.ExecContext(ctx, upsertArgument, a.ID, e.ID, a.FullCommandLine); err != nil {
					return nil, fmt.Errorf("upsert argument %d: %w", a.ID, err)
				}
				res.Arguments++

				if a.ContextLines == nil {
					continue
				}
				if _, err := tx.ExecContext(ctx, upsertContext, a.ID, Escape(*a.ContextLines)); err != nil {
					return nil, fmt.Errorf("upsert context %d: %w", a.ID, err)
				}
				res.Contexts++
			}
		}
		return &res, nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.Info(
		"corpus loaded",
		"commands", result.Commands,
		"arguments", result.Arguments,
		"contexts", result.Contexts,
	)
	return result, nil
}

func decodeEntries(src io.Reader) ([]Entry, error) {
	dec := json.NewDecoder(src)
	dec.DisallowUnknownFields()

	var (
		entries  []Entry
		commands = make(map[int64]bool)
		args     = make(map[int64]bool)
	)

	for n := 1; ; n++ {
		var e Entry
		if err := dec.Decode(&e); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidEntry, n, err)
		}
		if err := validateEntry(e, commands, args); err != nil {
			return nil, fmt.Errorf("%w: entry %d: %v", ErrInvalidEntry, n, err)
		}
		entries = append(entries, e)
	}

	return entries, nil
}

func validateEntry(e Entry, commands, args map[int64]bool) error {
	switch {
	case e.ID <= 0:
		return fmt.Errorf("command id must be positive")
	case strings.TrimSpace(e.FullCommandLine) == "":
		return fmt.Errorf("command %d: full_command_line is required", e.ID)
	case commands[e.ID]:
		return fmt.Errorf("command %d: duplicate id", e.ID)
	}
	commands[e.ID] = true

	for _, a := range e.Arguments {
		switch {
		case a.ID <= 0:
			return fmt.Errorf("command %d: argument id must be positive", e.ID)
		case strings.TrimSpace(a.FullCommandLine) == "":
			return fmt.Errorf("argument %d: full_command_line is required", a.ID)
		case args[a.ID]:
			return fmt.Errorf("argument %d: duplicate id", a.ID)
		}
		args[a.ID] = true
	}
	return nil
}
