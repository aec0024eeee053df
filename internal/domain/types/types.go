// Package types contains common read-model types shared across layers.
package types

import "time"

// Entry represents one leaderboard row: an engineer ranked by burnout
// risk, highest score first.
type Entry struct {
	Rank       int     `json:"rank"`
	EngineerID string  `json:"engineer_id"`
	Score      float64 `json:"score"`
	Tier       string  `json:"tier"`
	Trend      string  `json:"trend,omitempty"`
}

// RunOverrides carries per-request deviations from the configured
// analysis defaults. Zero or nil fields keep the defaults.
type RunOverrides struct {
	Days          int
	IncludeGitHub *bool
	IncludeSlack  *bool
}

// RunSummary acknowledges an accepted analysis run.
type RunSummary struct {
	RunID       string    `json:"run_id"`
	Windows     int       `json:"windows"`
	PeriodStart time.Time `json:"period_start"`
	PeriodEnd   time.Time `json:"period_end"`
}
