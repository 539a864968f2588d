package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/pagination"
	"github.com/JaimeStill/cmdreview/pkg/query"
	"github.com/JaimeStill/cmdreview/pkg/repository"
)

type repo struct {
	db         *sql.DB
	logger     *slog.Logger
	pagination pagination.Config
	cost       int
}

// New creates the users system. cost is the bcrypt work factor.
func New(db *sql.DB, logger *slog.Logger, pagination pagination.Config, cost int) System {
	return &repo{
		db:         db,
		logger:     logger.With("system", "users"),
		pagination: pagination,
		cost:       cost,
	}
}

func (r *repo) Handler(tokens *auth.Tokens) *Handler {
	return NewHandler(r, tokens, r.logger, r.pagination)
}

func (r *repo) Register(ctx context.Context, cmd RegisterCommand) (*User, error) {
	return r.Create(ctx, CreateCommand{
		Name:     cmd.Name,
		Email:    cmd.Email,
		Password: cmd.Password,
		Role:     auth.RoleValidator,
	})
}

func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*User, error) {
	if err := cmd.normalize(); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(cmd.Password, r.cost)
	if err != nil {
		return nil, err
	}

	var id int64
	err = r.db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id`,
		cmd.Name, cmd.Email, hash, cmd.Role,
	).Scan(&id)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	u, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	r.logger.Info("user created", "id", u.ID, "role", u.Role)
	return u, nil
}

func (r *repo) Authenticate(ctx context.Context, cmd LoginCommand) (*User, error) {
	email, err := normalizeEmail(cmd.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	q, args := query.NewBuilder(projection).BuildSingle("Email", email)
	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}

	ok, err := auth.CheckPassword(u.PasswordHash, cmd.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if role := strings.ToLower(strings.TrimSpace(cmd.Role)); role != "" && role != u.Role {
		return nil, ErrRoleMismatch
	}

	return &u, nil
}

func (r *repo) Find(ctx context.Context, id int64) (*User, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	u, err := repository.QueryOne(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &u, nil
}

func (r *repo) ListByRole(ctx context.Context, role string) ([]User, error) {
	q, args := query.NewBuilder(projection, defaultSort, query.SortField{Field: "ID"}).
		WhereEquals("Role", role).
		Build()

	users, err := repository.QueryMany(ctx, r.db, q, args, scanUser)
	if err != nil {
		return nil, fmt.Errorf("list %s users: %w", role, err)
	}
	return users, nil
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[User], error) {
	page.Normalize(r.pagination)

	if err := validateSort(page.Sort); err != nil {
		return nil, err
	}

	qb := query.
		NewBuilder(projection, defaultSort, query.SortField{Field: "ID"}).
		WhereSearch(page.Search, "Name", "Email")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	total, err := repository.QueryInt(ctx, r.db, countSQL, countArgs...)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	users, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanUser)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}

	result := pagination.NewPageResult(users, total, page.Page, page.PageSize)
	return &result, nil
}
