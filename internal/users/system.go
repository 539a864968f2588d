package users

import (
	"context"

	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/pagination"
)

// System defines the identity operations.
type System interface {
	Handler(tokens *auth.Tokens) *Handler

	Register(ctx context.Context, cmd RegisterCommand) (*User, error)
	Create(ctx context.Context, cmd CreateCommand) (*User, error)
	Authenticate(ctx context.Context, cmd LoginCommand) (*User, error)

	Find(ctx context.Context, id int64) (*User, error)
	ListByRole(ctx context.Context, role string) ([]User, error)
	List(ctx context.Context, page pagination.PageRequest, filters Filters) (*pagination.PageResult[User], error)
}
