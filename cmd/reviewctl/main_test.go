package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const entries = `{"id":1,"full_command_line":"git status","arguments":[{"id":11,"full_command_line":"git status --short","context_lines":"cd repo\ngit status --short"}]}
{"id":2,"full_command_line":"make build","arguments":[]}
{"id":3,"full_command_line":"docker ps -a","arguments":[{"id":31,"full_command_line":"docker ps -a"}]}
`

type harness struct {
	t      *testing.T
	dir    string
	config string
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	dir := t.TempDir()
	body := fmt.Sprintf(`
[database]
driver = "sqlite"
path = %q

[storage]
provider = "local"
root = %q

[auth]
secret = "reviewctl-test-secret-that-is-long-enough"
bcrypt_cost = 4
`, filepath.Join(dir, "review.db"), filepath.Join(dir, "assets"))

	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	t.Setenv("CMDREVIEW_ENV", "")

	return &harness{t: t, dir: dir, config: path}
}

func (h *harness) run(args ...string) (string, error) {
	h.t.Helper()

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"--config", h.config, "--migrate"}, args...))

	err := root.Execute()
	return out.String(), err
}

func (h *harness) file(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestUserAddAndList(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("user", "add", "--name", "Root", "--email", "root@example.com", "--password", "s3cretpass", "--role", "admin")
	require.NoError(t, err)
	assert.Contains(t, out, "created admin #1 Root <root@example.com>")

	_, err = h.run("user", "add", "--name", "Val", "--email", "val@example.com", "--password", "s3cretpass")
	require.NoError(t, err)

	_, err = h.run("user", "add", "--name", "Dup", "--email", "VAL@example.com", "--password", "s3cretpass")
	assert.Error(t, err)

	out, err = h.run("user", "list", "--role", "validator")
	require.NoError(t, err)
	assert.Contains(t, out, "val@example.com")
	assert.NotContains(t, out, "root@example.com")
	assert.Contains(t, out, "(1 total)")
}

func TestCorpusLoad(t *testing.T) {
	h := newHarness(t)
	path := h.file("corpus.jsonl", entries)

	out, err := h.run("corpus", "load", path)
	require.NoError(t, err)
	assert.Contains(t, out, "loaded 3 commands, 2 arguments, 1 contexts")

	out, err = h.run("asset", "put", "imports/corpus.jsonl", path)
	require.NoError(t, err)
	assert.Contains(t, out, "uploaded imports/corpus.jsonl")

	out, err = h.run("corpus", "load", "--blob", "imports/corpus.jsonl")
	require.NoError(t, err)
	assert.Contains(t, out, "loaded 3 commands")

	_, err = h.run("corpus", "load", path, "--blob", "imports/corpus.jsonl")
	assert.Error(t, err)

	_, err = h.run("corpus", "load")
	assert.Error(t, err)

	_, err = h.run("corpus", "load", h.file("bad.jsonl", `{"id":0,"full_command_line":""}`))
	assert.Error(t, err)
}

func TestStatsAndRecent(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("corpus", "load", h.file("corpus.jsonl", entries))
	require.NoError(t, err)
	_, err = h.run("user", "add", "--name", "Val", "--email", "val@example.com", "--password", "s3cretpass")
	require.NoError(t, err)

	out, err := h.run("stats", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "processed: 0")
	assert.Contains(t, out, "remaining: 3")
	assert.Contains(t, out, "total:     3")

	_, err = h.run("stats", "abc")
	assert.Error(t, err)

	out, err = h.run("recent", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "Val")
	assert.Contains(t, out, "never")
}

func TestAssetRemove(t *testing.T) {
	h := newHarness(t)
	path := h.file("logo.png", "png-bytes")

	_, err := h.run("asset", "put", "branding/logo.png", path)
	require.NoError(t, err)

	out, err := h.run("asset", "rm", "branding/logo.png")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted branding/logo.png")

	_, err = h.run("asset", "rm", "branding/logo.png")
	assert.Error(t, err)
}
