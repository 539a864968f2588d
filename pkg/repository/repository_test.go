package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"

	"github.com/JaimeStill/cmdreview/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

type item struct {
	ID   int
	Name string
}

func scanItem(s repository.Scanner) (item, error) {
	var i item
	err := s.Scan(&i.ID, &i.Name)
	return i, err
}

func openDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "repo.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	_, err = db.Exec(`CREATE TABLE items (id INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE)`)
	require.NoError(t, err)
	return db
}

func TestMapError(t *testing.T) {
	other := errors.New("some other error")
	fk := &pgconn.PgError{Code: "23503"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"wrapped no rows", errors.Join(errors.New("ctx"), sql.ErrNoRows), errNotFound},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"postgres foreign key passthrough", fk, fk},
		{"passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repository.MapError(tt.err, errNotFound, errDuplicate))
		})
	}
}

func TestMapErrorSQLiteUnique(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO items (id, name) VALUES ($1, $2)`, 1, "ls -la")
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO items (id, name) VALUES ($1, $2)`, 2, "ls -la")
	require.Error(t, err)

	assert.True(t, repository.IsUniqueViolation(err))
	assert.ErrorIs(t, repository.MapError(err, errNotFound, errDuplicate), errDuplicate)
}

func TestQueryHelpers(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	inserted, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (int, error) {
		for i, name := range []string{"git status", "make build"} {
			if err := repository.ExecExpectOne(ctx, tx,
				`INSERT INTO items (id, name) VALUES ($1, $2)`, i+1, name,
			); err != nil {
				return 0, err
			}
		}
		return 2, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, inserted)

	one, err := repository.QueryOne(ctx, db, `SELECT id, name FROM items WHERE id = $1`, []any{2}, scanItem)
	require.NoError(t, err)
	assert.Equal(t, item{ID: 2, Name: "make build"}, one)

	_, err = repository.QueryOne(ctx, db, `SELECT id, name FROM items WHERE id = $1`, []any{9}, scanItem)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	many, err := repository.QueryMany(ctx, db, `SELECT id, name FROM items ORDER BY id`, nil, scanItem)
	require.NoError(t, err)
	assert.Len(t, many, 2)

	none, err := repository.QueryMany(ctx, db, `SELECT id, name FROM items WHERE id > $1`, []any{10}, scanItem)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	n, err := repository.QueryInt(ctx, db, `SELECT COUNT(*) FROM items`)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestWithTxRollsBack(t *testing.T) {
	db := openDB(t)
	ctx := context.Background()

	_, err := repository.WithTx(ctx, db, func(tx *sql.Tx) (struct{}, error) {
		if _, err := tx.ExecContext(ctx, `INSERT INTO items (id, name) VALUES (1, 'echo')`); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, errDuplicate
	})
	assert.ErrorIs(t, err, errDuplicate)

	n, err := repository.QueryInt(ctx, db, `SELECT COUNT(*) FROM items`)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestExecExpectOneNoRows(t *testing.T) {
	db := openDB(t)

	err := repository.ExecExpectOne(context.Background(), db, `UPDATE items SET name = 'x' WHERE id = $1`, 42)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}
