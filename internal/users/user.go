// Package users owns identity records: registration, credential checks, and
// the per-validator cursor and activity columns read by the review systems.
package users

import (
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/JaimeStill/cmdreview/pkg/auth"
)

const minPasswordLength = 8

// User is an identity record. PasswordHash never leaves the package in JSON.
type User struct {
	ID           int64      `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	Role         string     `json:"role"`
	Cursor       int        `json:"last_processed_command_index"`
	LastSeen     *time.Time `json:"last_seen"`
	CreatedAt    time.Time  `json:"created_at"`
	PasswordHash string     `json:"-"`
}

// Principal returns the auth principal for u.
func (u *User) Principal() auth.Principal {
	return auth.Principal{ID: u.ID, Name: u.Name, Role: u.Role}
}

// RegisterCommand is self-service signup. The role is always validator.
type RegisterCommand struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateCommand creates an account with any role.
type CreateCommand struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginCommand carries credentials and an optional expected role.
type LoginCommand struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// Session is returned on successful login.
type Session struct {
	auth.Token
	User *User `json:"user"`
}

func (c *CreateCommand) normalize() error {
	c.Name = strings.TrimSpace(c.Name)
	c.Role = strings.ToLower(strings.TrimSpace(c.Role))

	email, err := normalizeEmail(c.Email)
	if err != nil {
		return err
	}
	c.Email = email

	switch {
	case c.Name == "":
		return invalid("name is required")
	case !auth.ValidRole(c.Role):
		return invalid("role must be one of validator, viewer, admin")
	case utf8.RuneCountInString(c.Password) < minPasswordLength:
		return invalid("password must be at least 8 characters")
	case len(c.Password) > auth.MaxPasswordBytes:
		return invalid("password must be at most 72 bytes")
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(raw))
	if err != nil || addr.Name != "" {
		return "", invalid("email is invalid")
	}
	return strings.ToLower(addr.Address), nil
}
