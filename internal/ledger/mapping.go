package ledger

import (
	"github.com/JaimeStill/cmdreview/pkg/query"
	"github.com/JaimeStill/cmdreview/pkg/repository"
)

var projection = query.
	NewProjectionMap("classifications", "l").
	Project("id", "ID").
	Project("validator_id", "ValidatorID").
	Project("command_id", "CommandID").
	Project("command_text", "CommandText").
	Project("ledger_type", "Type").
	Project("processed_time", "ProcessedTime")

var historySort = []query.SortField{
	{Field: "CommandID"},
	{Field: "ProcessedTime"},
	{Field: "ID"},
}

func scanRecord(s repository.Scanner) (Record, error) {
	var (
		r   Record
		typ string
	)
	err := s.Scan(&r.ID, &r.ValidatorID, &r.CommandID, &r.CommandText, &typ, &r.ProcessedTime)
	r.Type = Type(typ)
	r.ProcessedTime = r.ProcessedTime.UTC()
	return r, err
}
