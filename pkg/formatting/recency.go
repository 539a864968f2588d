package formatting

import (
	"fmt"
	"time"
)

// AbsoluteLayout renders timestamps older than a day.
const AbsoluteLayout = "02 Jan 2006, 03:04 PM"

// Never is the label for a validator with no recorded activity.
const Never = "never"

// Recency describes how long ago t was relative to now:
//
//	< 1 minute   "just now"
//	< 10 minutes "N mins ago"
//	< 1 hour     "N mins ago (inactive)"
//	< 1 day      "N hours ago (offline)"
//	otherwise    t in loc formatted with AbsoluteLayout
//
// Timestamps in the future count as "just now". A nil t yields Never.
func Recency(now time.Time, t *time.Time, loc *time.Location) string {
	if t == nil {
		return Never
	}
	if loc == nil {
		loc = time.UTC
	}

	d := now.Sub(*t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < 10*time.Minute:
		return fmt.Sprintf("%d mins ago", int(d/time.Minute))
	case d < time.Hour:
		return fmt.Sprintf("%d mins ago (inactive)", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%d hours ago (offline)", int(d/time.Hour))
	default:
		return t.In(loc).Format(AbsoluteLayout)
	}
}
