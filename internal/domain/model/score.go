package model

import "time"

// Dimension is one of the three burnout axes.
type Dimension string

// The three dimensions of the Maslach model.
const (
	DimExhaustion        Dimension = "emotional_exhaustion"
	DimDepersonalization Dimension = "depersonalization"
	DimAccomplishment    Dimension = "personal_accomplishment"
)

// Source is one of the event origins feeding the engine.
type Source string

// Supported sources.
const (
	SourceIncident Source = "incident"
	SourceGitHub   Source = "github"
	SourceSlack    Source = "slack"
)

// RiskTier classifies a composed score.
type RiskTier string

// Risk tiers, lowest to highest.
const (
	TierLow    RiskTier = "low"
	TierMedium RiskTier = "medium"
	TierHigh   RiskTier = "high"
)

// Trend tags the direction of a per-period series.
type Trend string

// Trend directions.
const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDegrading Trend = "degrading"
)

// MetricScore is one named metric's contribution, clamped to [0,10]
// before it enters any mean.
type MetricScore struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// SubScore is one dimension's score as computed from one source alone.
// Value is the unweighted mean of Metrics.
type SubScore struct {
	Source  Source        `json:"source"`
	Metrics []MetricScore `json:"metrics"`
	Value   float64       `json:"value"`
}

// DimensionScore is the weighted blend of a dimension's per-source
// sub-scores. Weights holds the renormalized weights actually applied,
// so absent sources are visible to consumers.
type DimensionScore struct {
	Dimension Dimension          `json:"dimension"`
	Value     float64            `json:"value"`
	Sources   []SubScore         `json:"sources"`
	Weights   map[Source]float64 `json:"weights"`
}

// BurnoutResult is the final outcome for one engineer and period.
type BurnoutResult struct {
	EngineerID        string         `json:"engineer_id"`
	Score             float64        `json:"score"`
	Tier              RiskTier       `json:"tier"`
	Trend             Trend          `json:"trend,omitempty"`
	Exhaustion        DimensionScore `json:"emotional_exhaustion"`
	Depersonalization DimensionScore `json:"depersonalization"`
	Accomplishment    DimensionScore `json:"personal_accomplishment"`
	PeriodStart       time.Time      `json:"period_start"`
	PeriodEnd         time.Time      `json:"period_end"`
}
