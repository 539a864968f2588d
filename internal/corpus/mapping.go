package corpus

import (
	"database/sql"

	"github.com/JaimeStill/cmdreview/pkg/query"
	"github.com/JaimeStill/cmdreview/pkg/repository"
)

var commandProjection = query.
	NewProjectionMap("commands", "c").
	Project("id", "ID").
	Project("full_command_line", "FullCommandLine")

var contextProjection = query.
	NewProjectionMap("arguments", "a").
	Project("id", "ArgumentID").
	Project("command_id", "CommandID").
	Project("full_command_line", "FullCommandLine").
	Join("contexts", "x", "LEFT JOIN", "x.argument_id = a.id").
	Project("context_lines", "ContextLines")

var (
	commandSort = query.SortField{Field: "ID"}
	contextSort = query.SortField{Field: "ArgumentID"}
)

func scanCommand(s repository.Scanner) (Command, error) {
	var c Command
	err := s.Scan(&c.ID, &c.FullCommandLine)
	return c, err
}

func scanContext(s repository.Scanner) (Context, error) {
	var (
		c     Context
		lines sql.NullString
	)
	if err := s.Scan(&c.ArgumentID, &c.CommandID, &c.FullCommandLine, &lines); err != nil {
		return c, err
	}
	if lines.Valid {
		text := Unescape(lines.String)
		c.ContextLines = &text
	}
	c.Argv = Argv(c.FullCommandLine)
	return c, nil
}
