package formatting_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/cmdreview/pkg/formatting"
)

func at(d time.Duration, now time.Time) *time.Time {
	t := now.Add(-d)
	return &t
}

func TestRecency(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  *time.Time
		want string
	}{
		{"never seen", nil, "never"},
		{"30 seconds", at(30*time.Second, now), "just now"},
		{"in the future", at(-5*time.Minute, now), "just now"},
		{"exactly one minute", at(time.Minute, now), "1 mins ago"},
		{"5 minutes", at(5*time.Minute, now), "5 mins ago"},
		{"9m59s", at(9*time.Minute+59*time.Second, now), "9 mins ago"},
		{"10 minutes", at(10*time.Minute, now), "10 mins ago (inactive)"},
		{"59 minutes", at(59*time.Minute, now), "59 mins ago (inactive)"},
		{"1 hour", at(time.Hour, now), "1 hours ago (offline)"},
		{"23 hours", at(23*time.Hour+59*time.Minute, now), "23 hours ago (offline)"},
		{"2 days", at(48*time.Hour, now), "08 Mar 2024, 03:30 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.Recency(now, tt.ago, time.UTC); got != tt.want {
				t.Errorf("Recency() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRecencyLocation(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 30, 0, 0, time.UTC)
	loc := time.FixedZone("UTC+2", 2*60*60)

	got := formatting.Recency(now, at(72*time.Hour, now), loc)
	if want := "07 Mar 2024, 05:30 PM"; got != want {
		t.Errorf("Recency() = %q, want %q", got, want)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 1, "0 B"},
		{512, 0, "512 B"},
		{1024, 1, "1.0 KB"},
		{1536, 1, "1.5 KB"},
		{5 * 1024 * 1024, 0, "5 MB"},
		{1024, -3, "1 KB"},
	}

	for _, tt := range tests {
		if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
			t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
		}
	}
}
