package corpus_test

import (
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/cmdreview/internal/corpus"
	"github.com/JaimeStill/cmdreview/internal/dbtest"
	"github.com/JaimeStill/cmdreview/pkg/pagination"
)

var pageConfig = pagination.Config{DefaultPageSize: 10, MaxPageSize: 50}

func TestCountAndCommandAt(t *testing.T) {
	db := dbtest.Open(t)
	sys := corpus.New(db, slog.Default(), pageConfig)
	ctx := context.Background()

	n, err := sys.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	dbtest.SeedCommands(t, db, 5, 0)

	n, err = sys.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	first, err := sys.CommandAt(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.ID)

	last, err := sys.CommandAt(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(5), last.ID)
	assert.Equal(t, "cmd-5 --flag", last.FullCommandLine)

	_, err = sys.CommandAt(ctx, 5)
	assert.ErrorIs(t, err, corpus.ErrNotFound)

	_, err = sys.CommandAt(ctx, -1)
	assert.ErrorIs(t, err, corpus.ErrNotFound)
}

func TestContextsFor(t *testing.T) {
	db := dbtest.Open(t)
	sys := corpus.New(db, slog.Default(), pageConfig)
	ctx := context.Background()

	dbtest.SeedCommands(t, db, 2, 3)

	contexts, err := sys.ContextsFor(ctx, 2)
	require.NoError(t, err)
	require.Len(t, contexts, 3)

	for i, c := range contexts {
		assert.Equal(t, int64(201+i), c.ArgumentID)
		assert.Equal(t, int64(2), c.CommandID)
	}

	require.NotNil(t, contexts[0].ContextLines)
	assert.Equal(t, "line one of 201\nline two", *contexts[0].ContextLines)
	assert.Equal(t, []string{"cmd-2", "--arg", "1"}, contexts[0].Argv)

	none, err := sys.ContextsFor(ctx, 99)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestContextsForMissingContextRow(t *testing.T) {
	db := dbtest.Open(t)
	sys := corpus.New(db, slog.Default(), pageConfig)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO commands (id, full_command_line) VALUES (1, 'ls')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO arguments (id, command_id, full_command_line) VALUES (7, 1, 'ls -la')`)
	require.NoError(t, err)

	contexts, err := sys.ContextsFor(ctx, 1)
	require.NoError(t, err)
	require.Len(t, contexts, 1)
	assert.Nil(t, contexts[0].ContextLines)
}

func TestList(t *testing.T) {
	db := dbtest.Open(t)
	sys := corpus.New(db, slog.Default(), pageConfig)
	ctx := context.Background()

	dbtest.SeedCommands(t, db, 12, 0)

	page, err := sys.List(ctx, pagination.PageRequest{Page: 2})
	require.NoError(t, err)
	assert.Equal(t, 12, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	require.Len(t, page.Data, 2)
	assert.Equal(t, int64(11), page.Data[0].ID)

	search := "CMD-1"
	page, err = sys.List(ctx, pagination.PageRequest{Search: &search})
	require.NoError(t, err)
	assert.Equal(t, 4, page.Total)
}

const corpusFile = `{"id":2,"full_command_line":"tar -xzf a.tgz","arguments":[{"id":21,"full_command_line":"tar -xzf a.tgz -C out","context_lines":"cd build\ntar -xzf a.tgz -C out"}]}
{"id":1,"full_command_line":"ls","arguments":[{"id":11,"full_command_line":"ls -la"},{"id":12,"full_command_line":"ls C:\\tmp","context_lines":"dir C:\\tmp"}]}
`

func TestLoad(t *testing.T) {
	db := dbtest.Open(t)
	sys := corpus.New(db, slog.Default(), pageConfig)
	ctx := context.Background()

	res, err := sys.Load(ctx, strings.NewReader(corpusFile))
	require.NoError(t, err)
	assert.Equal(t, corpus.LoadResult{Commands: 2, Arguments: 3, Contexts: 2}, *res)

	var stored string
	require.NoError(t, db.QueryRowContext(ctx, `SELECT context_lines FROM contexts WHERE argument_id = 21`).Scan(&stored))
	assert.Equal(t, `cd build\ntar -xzf a.tgz -C out`, stored)

	contexts, err := sys.ContextsFor(ctx, 1)
	require.NoError(t, err)
	require.Len(t, contexts, 2)
	assert.Nil(t, contexts[0].ContextLines)
	require.NotNil(t, contexts[1].ContextLines)
	assert.Equal(t, `dir C:\tmp`, *contexts[1].ContextLines)

	res, err = sys.Load(ctx, strings.NewReader(`{"id":1,"full_command_line":"ls -1","arguments":[]}`))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Commands)

	cmd, err := sys.Find(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "ls -1", cmd.FullCommandLine)
}

func TestLoadRejectsInvalidEntries(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed json", `{"id":1,`},
		{"unknown field", `{"id":1,"full_command_line":"ls","extra":true}`},
		{"zero id", `{"id":0,"full_command_line":"ls"}`},
		{"empty command", `{"id":1,"full_command_line":"  "}`},
		{"duplicate command", `{"id":1,"full_command_line":"ls"}` + "\n" + `{"id":1,"full_command_line":"ls"}`},
		{"duplicate argument", `{"id":1,"full_command_line":"ls","arguments":[{"id":5,"full_command_line":"a"},{"id":5,"full_command_line":"b"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := dbtest.Open(t)
			sys := corpus.New(db, slog.Default(), pageConfig)

			_, err := sys.Load(context.Background(), strings.NewReader(tt.input))
			assert.ErrorIs(t, err, corpus.ErrInvalidEntry)

			n, err := sys.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}
