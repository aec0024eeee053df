// Package scoring turns normalized per-engineer event windows into
// burnout scores: per-source sub-scores, fused dimension scores and
// the composed result with its risk tier.
package scoring

import (
	"fmt"
	"math"
	"time"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/sentiment"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/timeclass"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/trend"
)

// Default engine configuration.
const (
	defaultBusinessStartHour = 9
	defaultBusinessEndHour   = 17
	defaultClusterWindow     = 4 * time.Hour
	defaultSweetSpotLow      = 3.0
	defaultSweetSpotHigh     = 8.0
	defaultTrendTolerance    = 0.10

	// weightSumTolerance bounds how far base weights may drift from 1.
	weightSumTolerance = 1e-3
)

// Engine scores engineer windows. It is immutable after construction
// and safe for concurrent use; every call is a pure function over its
// inputs.
type Engine struct {
	startHour      int
	endHour        int
	businessDays   []time.Weekday
	clusterWindow  time.Duration
	sweetLow       float64
	sweetHigh      float64
	stressKeywords []string
	weights        Weights
	trendTolerance float64
	enabled        map[model.Source]bool
	analyzer       *sentiment.Analyzer
}

// NewEngine builds an Engine, failing fast on invalid configuration
// before any scoring can happen.
func NewEngine(opts ...Option) (*Engine, error) {
	e := &Engine{
		startHour:      defaultBusinessStartHour,
		endHour:        defaultBusinessEndHour,
		businessDays:   []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday},
		clusterWindow:  defaultClusterWindow,
		sweetLow:       defaultSweetSpotLow,
		sweetHigh:      defaultSweetSpotHigh,
		weights:        DefaultWeights(),
		trendTolerance: defaultTrendTolerance,
		enabled: map[model.Source]bool{
			model.SourceIncident: true,
			model.SourceGitHub:   true,
			model.SourceSlack:    true,
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	e.analyzer = sentiment.New(sentiment.WithStressKeywords(e.stressKeywords))
	return e, nil
}

func (e *Engine) validate() error {
	if e.startHour >= e.endHour {
		return fmt.Errorf("%w: business_hours start %d, end %d", ErrInvalidBusinessHours, e.startHour, e.endHour)
	}
	if e.clusterWindow <= 0 {
		return fmt.Errorf("%w: cluster_window %s", ErrInvalidClusterWindow, e.clusterWindow)
	}
	if e.sweetLow >= e.sweetHigh {
		return fmt.Errorf("%w: commit_sweet_spot low %.1f, high %.1f", ErrInvalidSweetSpot, e.sweetLow, e.sweetHigh)
	}
	if e.trendTolerance < 0 {
		return fmt.Errorf("%w: trend_tolerance %.3f", ErrInvalidTolerance, e.trendTolerance)
	}
	var sum float64
	for src, w := range e.weights {
		if w < 0 {
			return fmt.Errorf("%w: source_weights.%s %.3f", ErrNegativeWeight, src, w)
		}
		sum += w
	}
	if math.Abs(sum-1) > weightSumTolerance {
		return fmt.Errorf("%w: source_weights sum %.4f", ErrInvalidWeights, sum)
	}
	return nil
}

// Weights returns a copy of the engine's base fusion weights.
func (e *Engine) Weights() Weights {
	out := make(Weights, len(e.weights))
	for src, w := range e.weights {
		out[src] = w
	}
	return out
}

// ScoreWindow runs the full chain for one engineer: classify, score
// each enabled source, fuse the dimensions and compose the result.
// A window whose enabled sources carry no events produces a
// zero-evidence result rather than an error.
func (e *Engine) ScoreWindow(win model.EngineerWindow) (model.BurnoutResult, error) {
	if err := win.Validate(); err != nil {
		return model.BurnoutResult{}, err
	}
	cls, err := timeclass.New(win.Timezone,
		timeclass.WithBusinessHours(e.startHour, e.endHour),
		timeclass.WithBusinessDays(e.businessDays...),
	)
	if err != nil {
		return model.BurnoutResult{}, err
	}
	loc, err := win.Location()
	if err != nil {
		return model.BurnoutResult{}, err
	}

	part := win.Partition()
	byDim := map[model.Dimension]map[model.Source]model.SubScore{
		model.DimExhaustion:        {},
		model.DimDepersonalization: {},
		model.DimAccomplishment:    {},
	}
	merge := func(src model.Source, scores map[model.Dimension]model.SubScore) {
		for dim, sub := range scores {
			byDim[dim][src] = sub
		}
	}

	if e.enabled[model.SourceIncident] {
		scorer := incidentScorer{cls: cls, clusterWindow: e.clusterWindow, trendTolerance: e.trendTolerance}
		merge(model.SourceIncident, scorer.score(part.Incidents, &win))
	}
	if e.enabled[model.SourceGitHub] {
		scorer := githubScorer{cls: cls, loc: loc, clusterWindow: e.clusterWindow, sweetLow: e.sweetLow, sweetHigh: e.sweetHigh}
		merge(model.SourceGitHub, scorer.score(part, &win))
	}
	if e.enabled[model.SourceSlack] {
		scorer := slackScorer{cls: cls, analyzer: e.analyzer}
		merge(model.SourceSlack, scorer.score(part.Messages, &win))
	}

	exhaustion := Fuse(model.DimExhaustion, byDim[model.DimExhaustion], e.weights)
	depersonalization := Fuse(model.DimDepersonalization, byDim[model.DimDepersonalization], e.weights)
	accomplishment := Fuse(model.DimAccomplishment, byDim[model.DimAccomplishment], e.weights)

	score, tier := Compose(exhaustion, depersonalization, accomplishment)
	return model.BurnoutResult{
		EngineerID:        win.EngineerID,
		Score:             score,
		Tier:              tier,
		Exhaustion:        exhaustion,
		Depersonalization: depersonalization,
		Accomplishment:    accomplishment,
		PeriodStart:       win.PeriodStart,
		PeriodEnd:         win.PeriodEnd,
	}, nil
}

// ScoreTrend tags the movement between two consecutive periods'
// composed scores using the engine's tolerance band.
func (e *Engine) ScoreTrend(previous, current float64) model.Trend {
	return TrendBetween(previous, current, trend.WithTolerance(e.trendTolerance))
}
