// Package scoring turns normalized per-engineer event windows into
// burnout scores.
package scoring

import (
	"time"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithBusinessHours sets the local business window [start, end) in
// whole hours.
func WithBusinessHours(start, end int) Option {
	return func(e *Engine) {
		e.startHour = start
		e.endHour = end
	}
}

// WithBusinessDays replaces the default Monday-Friday business days.
func WithBusinessDays(days ...time.Weekday) Option {
	return func(e *Engine) {
		if len(days) > 0 {
			e.businessDays = days
		}
	}
}

// WithClusterWindow sets the neighbor window for burst detection.
func WithClusterWindow(window time.Duration) Option {
	return func(e *Engine) {
		e.clusterWindow = window
	}
}

// WithCommitSweetSpot sets the commits-per-week range treated as a
// healthy cadence.
func WithCommitSweetSpot(low, high float64) Option {
	return func(e *Engine) {
		e.sweetLow = low
		e.sweetHigh = high
	}
}

// WithStressKeywords replaces the built-in stress keyword list used
// by the chat scorer.
func WithStressKeywords(keywords []string) Option {
	return func(e *Engine) {
		e.stressKeywords = keywords
	}
}

// WithWeights replaces the base fusion weights. The map is copied.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		if len(w) == 0 {
			return
		}
		e.weights = make(Weights, len(w))
		for src, weight := range w {
			e.weights[src] = weight
		}
	}
}

// WithTrendTolerance sets the stable band for trend classification.
func WithTrendTolerance(tolerance float64) Option {
	return func(e *Engine) {
		e.trendTolerance = tolerance
	}
}

// WithSources restricts scoring to the given sources. Events from
// other sources are ignored even when present in a window.
func WithSources(sources ...model.Source) Option {
	return func(e *Engine) {
		e.enabled = map[model.Source]bool{}
		for _, src := range sources {
			e.enabled[src] = true
		}
	}
}
