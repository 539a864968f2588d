// Package corpus reads the shared command, argument, and context tables and
// loads them from JSON lines.
package corpus

import (
	"strings"

	"github.com/kballard/go-shellquote"
)

// Command is one distinct command line in the review sequence.
type Command struct {
	ID              int64  `json:"id"`
	FullCommandLine string `json:"full_command_line"`
}

// Context is an argument of a command joined with its source context.
type Context struct {
	ArgumentID      int64    `json:"argument_id"`
	CommandID       int64    `json:"command_id"`
	FullCommandLine string   `json:"full_command_line"`
	ContextLines    *string  `json:"context_lines"`
	Argv            []string `json:"argv"`
}

// Entry is one JSON line of a corpus file. Context lines are plain text and
// are escaped on write.
type Entry struct {
	ID              int64           `json:"id"`
	FullCommandLine string          `json:"full_command_line"`
	Arguments       []EntryArgument `json:"arguments"`
}

// EntryArgument is an argument row within an Entry.
type EntryArgument struct {
	ID              int64   `json:"id"`
	FullCommandLine string  `json:"full_command_line"`
	ContextLines    *string `json:"context_lines,omitempty"`
}

// LoadResult counts the rows written by Load.
type LoadResult struct {
	Commands  int `json:"commands"`
	Arguments int `json:"arguments"`
	Contexts  int `json:"contexts"`
}

var (
	escaper   = strings.NewReplacer(`\`, `\\`, "\n", `\n`)
	unescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n")
)

// Escape converts plain context text to its stored form.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Unescape converts stored context text back to plain text.
// A literal \n becomes a newline and \\ becomes a backslash.
func Unescape(s string) string {
	return unescaper.Replace(s)
}

// Argv splits a command line into arguments using shell quoting rules.
// Lines that do not parse (an unterminated quote) fall back to whitespace splitting.
func Argv(line string) []string {
	words, err := shellquote.Split(line)
	if err != nil {
		return strings.Fields(line)
	}
	if words == nil {
		return []string{}
	}
	return words
}
