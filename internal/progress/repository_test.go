package progress_test

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/cmdreview/internal/corpus"
	"github.com/JaimeStill/cmdreview/internal/dbtest"
	"github.com/JaimeStill/cmdreview/internal/ledger"
	"github.com/JaimeStill/cmdreview/internal/progress"
	"github.com/JaimeStill/cmdreview/pkg/auth"
	"github.com/JaimeStill/cmdreview/pkg/pagination"
)

var pageConfig = pagination.Config{DefaultPageSize: 10, MaxPageSize: 50}

type fixture struct {
	db     *sql.DB
	ledger ledger.System
	sys    progress.System
	clock  *dbtest.Clock
	ada    int64
}

func setup(t *testing.T, commands, args int) fixture {
	t.Helper()

	db := dbtest.Open(t)
	dbtest.SeedCommands(t, db, commands, args)

	f := fixture{
		db:    db,
		clock: dbtest.NewClock(time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)),
		ada:   dbtest.SeedUser(t, db, "ada", auth.RoleValidator),
	}
	f.ledger = ledger.New(db, slog.Default(), pageConfig, f.clock.Now)
	f.sys = newSystem(f.db, f.ledger)
	return f
}

func newSystem(db *sql.DB, l ledger.System) progress.System {
	return progress.New(db, corpus.New(db, slog.Default(), pageConfig), l, slog.Default())
}

func (f fixture) classify(t *testing.T, state progress.State, typ string) *progress.View {
	t.Helper()
	f.clock.Advance(time.Minute)
	v, err := f.sys.Classify(context.Background(), f.ada, state, typ)
	require.NoError(t, err)
	return v
}

func TestResumeAfterRestart(t *testing.T) {
	f := setup(t, 10, 2)
	ctx := context.Background()

	v, err := f.sys.Resume(ctx, f.ada)
	require.NoError(t, err)
	assert.Equal(t, progress.State{}, v.State)
	assert.Equal(t, 10, v.Total)
	assert.Equal(t, int64(1), v.Command.ID)
	assert.Equal(t, 2, v.ArgumentCount)
	require.NotNil(t, v.Argument)
	assert.Equal(t, int64(101), v.Argument.ArgumentID)

	for range 4 {
		v = f.classify(t, v.State, "dynamic")
	}
	assert.Equal(t, 4, v.Cursor)

	restarted := newSystem(f.db, ledger.New(f.db, slog.Default(), pageConfig, nil))

	v, err = restarted.Resume(ctx, f.ada)
	require.NoError(t, err)
	assert.Equal(t, progress.State{Index: 4}, v.State)
	assert.Equal(t, int64(5), v.Command.ID)
}

func TestCursorAdvancesOncePerClassification(t *testing.T) {
	f := setup(t, 10, 1)
	ctx := context.Background()

	before, err := f.sys.Cursor(ctx, f.ada)
	require.NoError(t, err)

	state := progress.State{}
	for i, typ := range []string{"dynamic", "static", "Static", "DYNAMIC", "static"} {
		v := f.classify(t, state, typ)
		state = v.State

		cursor, err := f.sys.Cursor(ctx, f.ada)
		require.NoError(t, err)
		assert.Equal(t, before+i+1, cursor)
	}

	counts, err := f.ledger.Counts(ctx, f.ada)
	require.NoError(t, err)
	assert.Equal(t, ledger.Counts{Dynamic: 2, Static: 3}, counts)

	records, err := f.ledger.Query(ctx, f.ada, ledger.Filters{})
	require.NoError(t, err)
	require.Len(t, records, 5)
	assert.Equal(t, "cmd-1 --arg 1", records[0].CommandText)

	var lastSeen time.Time
	require.NoError(t, f.db.QueryRowContext(ctx, `SELECT last_seen FROM users WHERE id = $1`, f.ada).Scan(&lastSeen))
	assert.True(t, lastSeen.Equal(f.clock.Now()))
}

func TestBrowsingDoesNotMoveCursor(t *testing.T) {
	f := setup(t, 10, 3)
	ctx := context.Background()

	v, err := f.sys.Resume(ctx, f.ada)
	require.NoError(t, err)
	for range 3 {
		v = f.classify(t, v.State, "static")
	}

	v, err = f.sys.Navigate(ctx, f.ada, v.State, progress.ActionPreviousCommand)
	require.NoError(t, err)
	v, err = f.sys.Navigate(ctx, f.ada, v.State, progress.ActionPreviousCommand)
	require.NoError(t, err)

	assert.Equal(t, 1, v.State.Index)
	assert.Equal(t, 3, v.Cursor)

	cursor, err := f.sys.Cursor(ctx, f.ada)
	require.NoError(t, err)
	assert.Equal(t, 3, cursor)

	v, err = f.sys.Navigate(ctx, f.ada, v.State, progress.ActionNextContext)
	require.NoError(t, err)
	assert.Equal(t, progress.State{Index: 1, SubIndex: 1}, v.State)
	assert.Equal(t, int64(202), v.Argument.ArgumentID)
	assert.Equal(t, "line one of 202\nline two", *v.Argument.ContextLines)

	v, err = f.sys.Navigate(ctx, f.ada, v.State, progress.ActionNextCommand)
	require.NoError(t, err)
	assert.Equal(t, progress.State{Index: 2}, v.State)

	_, err = f.sys.Navigate(ctx, f.ada, v.State, "jump")
	assert.ErrorIs(t, err, progress.ErrInvalidAction)
}

func TestClassifyRejections(t *testing.T) {
	f := setup(t, 2, 1)
	ctx := context.Background()

	_, err := f.sys.Classify(ctx, f.ada, progress.State{}, "maybe")
	assert.ErrorIs(t, err, progress.ErrInvalidLedgerType)

	v := f.classify(t, progress.State{}, "dynamic")

	_, err = f.sys.Classify(ctx, f.ada, progress.State{Index: 0}, "static")
	assert.ErrorIs(t, err, ledger.ErrAlreadyClassified)

	cursor, err := f.sys.Cursor(ctx, f.ada)
	require.NoError(t, err)
	assert.Equal(t, 1, cursor)

	v = f.classify(t, v.State, "static")
	assert.True(t, v.Complete)
	assert.Nil(t, v.Command)

	_, err = f.sys.Classify(ctx, f.ada, v.State, "static")
	assert.ErrorIs(t, err, progress.ErrSequenceComplete)

	_, err = f.sys.Resume(ctx, 999)
	assert.ErrorIs(t, err, progress.ErrUnknownValidator)

	_, err = f.sys.Current(ctx, f.ada, progress.State{Index: -1})
	assert.ErrorIs(t, err, progress.ErrInvalidState)
}

func TestCommandWithoutArguments(t *testing.T) {
	f := setup(t, 1, 0)
	ctx := context.Background()

	v, err := f.sys.Current(ctx, f.ada, progress.State{Index: 0, SubIndex: 4})
	require.NoError(t, err)
	assert.Equal(t, progress.State{}, v.State)
	assert.Nil(t, v.Argument)
	assert.Zero(t, v.ArgumentCount)

	f.classify(t, v.State, "static")

	records, err := f.ledger.Query(ctx, f.ada, ledger.Filters{})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "cmd-1 --flag", records[0].CommandText)
}
