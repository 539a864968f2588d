// Package ledger records classification decisions per validator and answers
// history queries over them.
package ledger

import (
	"strings"
	"time"
)

// Type partitions a validator's records into the dynamic and static ledgers.
type Type string

const (
	TypeDynamic Type = "dynamic"
	TypeStatic  Type = "static"
)

// MaxHistoryRows caps every history result.
const MaxHistoryRows = 2000

// ParseType parses a ledger type case-insensitively.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case TypeDynamic, TypeStatic:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

// Record is one classification decision.
type Record struct {
	ID            int64     `json:"sequence_id"`
	ValidatorID   int64     `json:"validator_id"`
	CommandID     int64     `json:"command_id"`
	CommandText   string    `json:"command_text"`
	Type          Type      `json:"type"`
	ProcessedTime time.Time `json:"processed_time"`
}

// AppendCommand describes a record to append.
type AppendCommand struct {
	ValidatorID int64
	CommandID   int64
	CommandText string
	Type        Type
}

// Counts holds the size of each ledger for one validator.
type Counts struct {
	Dynamic int `json:"dynamic"`
	Static  int `json:"static"`
}

// Processed is the combined size of both ledgers.
func (c Counts) Processed() int {
	return c.Dynamic + c.Static
}
