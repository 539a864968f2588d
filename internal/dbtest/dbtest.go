// Package dbtest opens throwaway SQLite databases with the full schema applied.
package dbtest

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/JaimeStill/cmdreview/migrations"
	"github.com/JaimeStill/cmdreview/pkg/database"
)

// Open returns a migrated SQLite pool in a temp directory, closed on cleanup.
func Open(t testing.TB) *sql.DB {
	t.Helper()

	cfg := &database.Config{
		Driver: database.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "review.db"),
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("finalize database config: %v", err)
	}

	db, err := database.Open(cfg)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := migrations.Up(context.Background(), db, database.DriverSQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// Clock is a settable time source for repositories that stamp rows.
type Clock struct {
	now time.Time
}

// NewClock starts a clock at t (UTC).
func NewClock(t time.Time) *Clock {
	return &Clock{now: t.UTC()}
}

// Now returns the current clock time.
func (c *Clock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d and returns the new time.
func (c *Clock) Advance(d time.Duration) time.Time {
	c.now = c.now.Add(d)
	return c.now
}

// Set moves the clock to t.
func (c *Clock) Set(t time.Time) {
	c.now = t.UTC()
}

// SeedCommands inserts commands 1..n, each with args arguments and a context line.
func SeedCommands(t testing.TB, db *sql.DB, n, args int) {
	t.Helper()

	ctx := context.Background()
	for id := 1; id <= n; id++ {
		if _, err := db.ExecContext(ctx,
			`INSERT INTO commands (id, full_command_line) VALUES ($1, $2)`,
			id, fmt.Sprintf("cmd-%d --flag", id),
		); err != nil {
			t.Fatalf("seed command %d: %v", id, err)
		}
		for a := 1; a <= args; a++ {
			argID := id*100 + a
			if _, err := db.ExecContext(ctx,
				`INSERT INTO arguments (id, command_id, full_command_line) VALUES ($1, $2, $3)`,
				argID, id, fmt.Sprintf("cmd-%d --arg %d", id, a),
			); err != nil {
				t.Fatalf("seed argument %d: %v", argID, err)
			}
			if _, err := db.ExecContext(ctx,
				`INSERT INTO contexts (argument_id, context_lines) VALUES ($1, $2)`,
				argID, fmt.Sprintf(`line one of %d\nline two`, argID),
			); err != nil {
				t.Fatalf("seed context %d: %v", argID, err)
			}
		}
	}
}

// SeedUser inserts a user with a placeholder password hash and returns its id.
func SeedUser(t testing.TB, db *sql.DB, name, role string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRowContext(context.Background(),
		`INSERT INTO users (name, email, password_hash, role) VALUES ($1, $2, $3, $4) RETURNING id`,
		name, name+"@example.com", "x", role,
	).Scan(&id)
	if err != nil {
		t.Fatalf("seed user %s: %v", name, err)
	}
	return id
}
