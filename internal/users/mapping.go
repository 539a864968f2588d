package users

import (
	"database/sql"
	"fmt"
	"net/url"
	"strings"

	"github.com/JaimeStill/cmdreview/pkg/query"
	"github.com/JaimeStill/cmdreview/pkg/repository"
)

var projection = query.
	NewProjectionMap("users", "u").
	Project("id", "ID").
	Project("name", "Name").
	Project("email", "Email").
	Project("role", "Role").
	Project("last_processed_command_index", "Cursor").
	Project("last_seen", "LastSeen").
	Project("created_at", "CreatedAt").
	Project("password_hash", "PasswordHash")

var defaultSort = query.SortField{Field: "Name"}

var sortable = map[string]bool{
	"ID":        true,
	"Name":      true,
	"Email":     true,
	"Role":      true,
	"Cursor":    true,
	"LastSeen":  true,
	"CreatedAt": true,
}

func validateSort(fields []query.SortField) error {
	for _, f := range fields {
		if !sortable[f.Field] {
			return invalid(fmt.Sprintf("cannot sort by %q", f.Field))
		}
	}
	return nil
}

// Filters narrows user listings. Nil fields are ignored.
type Filters struct {
	Role *string `json:"role,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	return b.WhereEquals("Role", f.Role)
}

// FiltersFromQuery extracts filter values from URL query parameters.
func FiltersFromQuery(values url.Values) Filters {
	var f Filters
	if r := strings.ToLower(values.Get("role")); r != "" {
		f.Role = &r
	}
	return f
}

func scanUser(s repository.Scanner) (User, error) {
	var (
		u        User
		lastSeen sql.NullTime
	)
	err := s.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&u.Cursor,
		&lastSeen,
		&u.CreatedAt,
		&u.PasswordHash,
	)
	if lastSeen.Valid {
		t := lastSeen.Time.UTC()
		u.LastSeen = &t
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return u, err
}
