package ledger

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/JaimeStill/cmdreview/pkg/query"
)

const dateLayout = "2006-01-02"

// Filters narrows a history query. Nil fields and an empty Type match everything.
// All conditions combine with AND; Start and End are inclusive.
type Filters struct {
	Start     *time.Time `json:"start,omitempty"`
	End       *time.Time `json:"end,omitempty"`
	CommandID *int64     `json:"command_id,omitempty"`
	Type      Type       `json:"type,omitempty"`
}

// Apply adds filter conditions to a query builder.
func (f Filters) Apply(b *query.Builder) *query.Builder {
	b.WhereEquals("CommandID", f.CommandID)
	if f.Start != nil {
		b.WhereAtLeast("ProcessedTime", f.Start.UTC())
	}
	if f.End != nil {
		b.WhereAtMost("ProcessedTime", f.End.UTC())
	}
	if f.Type != "" {
		b.WhereEquals("Type", string(f.Type))
	}
	return b
}

// FiltersFromQuery parses start, end, command_id, and type query parameters.
// Calendar dates expand to the start or end of that day in loc; RFC 3339
// timestamps are used as given. Any malformed value yields ErrInvalidFilter.
func FiltersFromQuery(values url.Values, loc *time.Location) (Filters, error) {
	var f Filters

	if s := strings.TrimSpace(values.Get("start")); s != "" {
		t, err := parseBound(s, loc, false)
		if err != nil {
			return Filters{}, err
		}
		f.Start = &t
	}

	if s := strings.TrimSpace(values.Get("end")); s != "" {
		t, err := parseBound(s, loc, true)
		if err != nil {
			return Filters{}, err
		}
		f.End = &t
	}

	if s := strings.TrimSpace(values.Get("command_id")); s != "" {
		id, err := ParseCommandID(s)
		if err != nil {
			return Filters{}, err
		}
		f.CommandID = &id
	}

	switch s := strings.ToLower(strings.TrimSpace(values.Get("type"))); s {
	case "", "all":
	default:
		t, err := ParseType(s)
		if err != nil {
			return Filters{}, fmt.Errorf("%w: type %q", ErrInvalidFilter, s)
		}
		f.Type = t
	}

	return f, nil
}

// ParseCommandID accepts only non-negative decimal integers.
func ParseCommandID(s string) (int64, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("%w: command id must be a number", ErrInvalidFilter)
		}
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: command id must be a number", ErrInvalidFilter)
	}
	return id, nil
}

func parseBound(s string, loc *time.Location, end bool) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	if day, err := time.ParseInLocation(dateLayout, s, loc); err == nil {
		if end {
			return day.AddDate(0, 0, 1).Add(-time.Nanosecond), nil
		}
		return day, nil
	}

	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a date or RFC 3339 timestamp", ErrInvalidFilter, s)
	}
	return t, nil
}
