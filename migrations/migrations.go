// Package migrations embeds the schema for each supported database driver and
// applies it with golang-migrate.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Source returns the embedded migration source for driver ("postgres" or "sqlite").
func Source(driver string) (source.Driver, error) {
	switch driver {
	case "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("no migrations for driver %q", driver)
	}

	src, err := iofs.New(files, driver)
	if err != nil {
		return nil, fmt.Errorf("open migration source: %w", err)
	}
	return src, nil
}

// NewFromURL builds a migrator that owns its own connection to url.
// The caller must Close it.
func NewFromURL(driver, url string) (*migrate.Migrate, error) {
	src, err := Source(driver)
	if err != nil {
		return nil, err
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}

// Up applies all pending migrations through an existing pool. The pool is
// left open.
func Up(ctx context.Context, db *sql.DB, driver string) error {
	src, err := Source(driver)
	if err != nil {
		return err
	}
	defer src.Close()

	var target database.Driver
	switch driver {
	case "sqlite":
		target, err = sqlite.WithInstance(db, &sqlite.Config{})
	case "postgres":
		conn, cerr := db.Conn(ctx)
		if cerr != nil {
			return fmt.Errorf("acquire migration connection: %w", cerr)
		}
		defer conn.Close()
		target, err = postgres.WithConnection(ctx, conn, &postgres.Config{})
	}
	if err != nil {
		return fmt.Errorf("open migration target: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, driver, target)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
