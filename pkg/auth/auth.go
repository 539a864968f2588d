// Package auth issues and verifies bearer tokens, hashes passwords, and
// enforces role requirements on HTTP routes.
package auth

import (
	"context"
	"errors"
	"slices"
)

// Roles recognised by the review service.
const (
	RoleValidator = "validator"
	RoleViewer    = "viewer"
	RoleAdmin     = "admin"
)

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("insufficient role")
	ErrInvalidToken    = errors.New("invalid or expired token")
)

// Roles lists every valid role.
func Roles() []string {
	return []string{RoleValidator, RoleViewer, RoleAdmin}
}

// ValidRole reports whether role is one of Roles.
func ValidRole(role string) bool {
	return slices.Contains(Roles(), role)
}

// Principal is the authenticated caller attached to a request.
type Principal struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Is reports whether the principal holds one of roles.
func (p Principal) Is(roles ...string) bool {
	return slices.Contains(roles, p.Role)
}

type principalKey struct{}

// WithPrincipal returns ctx carrying p.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// FromContext returns the principal attached by Authenticate.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(Principal)
	return p, ok
}
