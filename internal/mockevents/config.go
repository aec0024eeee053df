package mockevents

import "time"

// Config holds configuration for a mock data run.
type Config struct {
	BaseURL    string        // Base URL of a running detector; empty skips the live run
	PayloadDir string        // Directory generated payloads are written to
	Engineers  int           // Number of synthetic engineers
	Days       int           // Analysis period length in days
	TopN       int           // Number of leaderboard entries to fetch
	Timeout    time.Duration // HTTP request timeout
	Verbose    bool          // Enable verbose logging
}

// Entry represents one leaderboard row returned by the API.
type Entry struct {
	Rank       int     `json:"rank"`
	EngineerID string  `json:"engineer_id"`
	Score      float64 `json:"score"`
	Tier       string  `json:"tier"`
	Trend      string  `json:"trend,omitempty"`
}

// runSummary is the acknowledgement returned by POST /api/v1/analyze.
type runSummary struct {
	RunID   string `json:"run_id"`
	Windows int    `json:"windows"`
}

// statsResponse carries the subset of GET /api/v1/stats the runner
// polls while waiting for scores to publish.
type statsResponse struct {
	TotalEngineers int `json:"totalEngineers"`
	QueueLength    int `json:"queueLength"`
}

// Stats holds mock run statistics.
type Stats struct {
	EngineersGenerated    int
	IncidentsGenerated    int
	CommitsGenerated      int
	PullRequestsGenerated int
	ReviewsGenerated      int
	MessagesGenerated     int
	WindowsAnalyzed       int
	LeaderboardEntries    int
	StartTime             time.Time
	EndTime               time.Time
	Duration              time.Duration
}
