// Package reporting aggregates ledger and identity data for dashboards.
package reporting

import "time"

// DefaultRecentLimit is the number of validators RecentActivity returns by default.
const DefaultRecentLimit = 10

const maxRecentLimit = 100

// Stats summarizes one validator's progress against the corpus.
// Remaining may be negative if the corpus shrinks after classification.
type Stats struct {
	Dynamic   int `json:"dynamic"`
	Static    int `json:"static"`
	Processed int `json:"processed"`
	Remaining int `json:"remaining"`
	Total     int `json:"total"`
}

// RoleCounts lists validator and viewer accounts.
type RoleCounts struct {
	ValidatorCount int      `json:"validator_count"`
	ViewerCount    int      `json:"viewer_count"`
	ValidatorNames []string `json:"validator_names"`
	ViewerNames    []string `json:"viewer_names"`
}

// Activity is a validator's last classification time with a display label.
type Activity struct {
	ID       int64      `json:"id"`
	Name     string     `json:"name"`
	LastSeen *time.Time `json:"last_seen"`
	Label    string     `json:"last_seen_label"`
}

// Standing is a leaderboard row.
type Standing struct {
	Rank        int    `json:"rank"`
	ValidatorID int64  `json:"validator_id"`
	Name        string `json:"name"`
	Processed   int    `json:"processed"`
}

// LiveStatus is a validator's current position in the sequence.
type LiveStatus struct {
	ValidatorID int64  `json:"validator_id"`
	Name        string `json:"name"`
	Cursor      int    `json:"cursor"`
	Processed   int    `json:"processed"`
	Remaining   int    `json:"remaining"`
}

// Overview combines the admin dashboard panels.
type Overview struct {
	Roles       RoleCounts   `json:"roles"`
	Recent      []Activity   `json:"recent"`
	Leaderboard []Standing   `json:"leaderboard"`
	Live        []LiveStatus `json:"live"`
}
