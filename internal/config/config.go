// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() initializer to build a Config with defaults.
// - Layer defaults, optional YAML file, and environment overrides via koanf.
// - Validation failures name the offending field and wrap ErrInvalidConfig.
package config

import (
	"fmt"
	"math"
	"runtime"
	"strings"
	"time"
)

// Weight-sum tolerance for source weight validation.
const weightSumTolerance = 1e-3

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory analysis job queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of scoring workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the event deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxLeaderboardLimit caps GET /api/v1/leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// LookbackDays is the analysis period length in days. Every
	// engineer in a run is scored over the same period so scores
	// stay comparable.
	LookbackDays int `koanf:"lookback_days"`

	// HistoryPath locates the SQLite file holding per-period score
	// history. Empty disables history (and with it trend tags).
	HistoryPath string `koanf:"history_path"`

	// PayloadDir holds cached collector payloads read by one-shot runs.
	PayloadDir string `koanf:"payload_dir"`

	// OutputDir receives JSON reports written by one-shot runs.
	OutputDir string `koanf:"output_dir"`

	// BusinessStartHour and BusinessEndHour bound the local business
	// window [start, end) in whole hours.
	BusinessStartHour int `koanf:"business_start_hour"`
	BusinessEndHour   int `koanf:"business_end_hour"`

	// BusinessDays lists working weekdays by name, e.g. "monday".
	BusinessDays []string `koanf:"business_days"`

	// ClusterWindowHours is the neighbor window for burst detection.
	ClusterWindowHours float64 `koanf:"cluster_window_hours"`

	// CommitSweetSpotLow/High bound the commits-per-week range treated
	// as a healthy cadence.
	CommitSweetSpotLow  float64 `koanf:"commit_sweet_spot_low"`
	CommitSweetSpotHigh float64 `koanf:"commit_sweet_spot_high"`

	// StressKeywords replaces the built-in stress keyword list when set.
	StressKeywords []string `koanf:"stress_keywords"`

	// TrendTolerance is the stable band for trend classification.
	TrendTolerance float64 `koanf:"trend_tolerance"`

	// SourceWeights maps source names to their base fusion weights.
	SourceWeights map[string]float64 `koanf:"source_weights"`

	// IncludeGitHub and IncludeSlack enable the optional sources.
	// Incident data is always scored.
	IncludeGitHub bool `koanf:"include_github"`
	IncludeSlack  bool `koanf:"include_slack"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		QueueSize:           10_000,
		WorkerCount:         runtime.NumCPU() * 2,
		DedupeSize:          500_000,
		MaxLeaderboardLimit: 100,
		LookbackDays:        30,
		HistoryPath:         "burnout_history.db",
		PayloadDir:          ".cache",
		OutputDir:           "output",
		BusinessStartHour:   9,
		BusinessEndHour:     17,
		BusinessDays:        []string{"monday", "tuesday", "wednesday", "thursday", "friday"},
		ClusterWindowHours:  4,
		CommitSweetSpotLow:  3,
		CommitSweetSpotHigh: 8,
		TrendTolerance:      0.10,
		SourceWeights: map[string]float64{
			"incident": 0.70,
			"github":   0.15,
			"slack":    0.15,
		},
	}
}

// weekdayNames maps config day names to time.Weekday values.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// Weekdays resolves BusinessDays into time.Weekday values. Unknown
// names surface as an InvalidConfiguration error.
func (c *Config) Weekdays() ([]time.Weekday, error) {
	days := make([]time.Weekday, 0, len(c.BusinessDays))
	for _, name := range c.BusinessDays {
		d, ok := weekdayNames[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("%w: business_days contains unknown day %q", ErrInvalidConfig, name)
		}
		days = append(days, d)
	}
	return days, nil
}

// Validate checks the configuration and names the first offending
// field. It runs before anything is wired so bad values never reach
// the scoring engine.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.QueueSize)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("%w: worker_count must be positive, got %d", ErrInvalidConfig, c.WorkerCount)
	}
	if c.LookbackDays <= 0 {
		return fmt.Errorf("%w: lookback_days must be positive, got %d", ErrInvalidConfig, c.LookbackDays)
	}
	if c.BusinessStartHour >= c.BusinessEndHour {
		return fmt.Errorf("%w: business_start_hour %d must be before business_end_hour %d",
			ErrInvalidConfig, c.BusinessStartHour, c.BusinessEndHour)
	}
	if c.BusinessStartHour < 0 || c.BusinessEndHour > 24 {
		return fmt.Errorf("%w: business hours must lie within [0, 24]", ErrInvalidConfig)
	}
	if len(c.BusinessDays) == 0 {
		return fmt.Errorf("%w: business_days must not be empty", ErrInvalidConfig)
	}
	if _, err := c.Weekdays(); err != nil {
		return err
	}
	if c.ClusterWindowHours <= 0 {
		return fmt.Errorf("%w: cluster_window_hours must be positive, got %g", ErrInvalidConfig, c.ClusterWindowHours)
	}
	if c.CommitSweetSpotLow >= c.CommitSweetSpotHigh {
		return fmt.Errorf("%w: commit_sweet_spot_low %g must be below commit_sweet_spot_high %g",
			ErrInvalidConfig, c.CommitSweetSpotLow, c.CommitSweetSpotHigh)
	}
	if c.TrendTolerance < 0 {
		return fmt.Errorf("%w: trend_tolerance must not be negative, got %g", ErrInvalidConfig, c.TrendTolerance)
	}
	var sum float64
	for name, w := range c.SourceWeights {
		if w < 0 {
			return fmt.Errorf("%w: source_weights.%s must not be negative, got %g", ErrInvalidConfig, name, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: source_weights must sum to 1.0, got %.4f", ErrInvalidConfig, sum)
	}
	return nil
}
