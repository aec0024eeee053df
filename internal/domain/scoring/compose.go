package scoring

import (
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/trend"
)

// Dimension weights in the composed score. Personal accomplishment is
// protective, so its inverse enters the sum.
const (
	exhaustionWeight        = 0.4
	depersonalizationWeight = 0.3
	accomplishmentWeight    = 0.3
)

// Risk tier floors, inclusive.
const (
	mediumTierFloor = 4.0
	highTierFloor   = 7.0
)

// Compose folds the three fused dimensions into the final score and
// its risk tier.
func Compose(exhaustion, depersonalization, accomplishment model.DimensionScore) (float64, model.RiskTier) {
	score := clamp(exhaustion.Value*exhaustionWeight +
		depersonalization.Value*depersonalizationWeight +
		(maxMetricValue-accomplishment.Value)*accomplishmentWeight)
	return score, TierFor(score)
}

// TierFor classifies a composed score. Band floors are inclusive: a
// score of exactly 4.0 is medium and exactly 7.0 is high.
func TierFor(score float64) model.RiskTier {
	switch {
	case score >= highTierFloor:
		return model.TierHigh
	case score >= mediumTierFloor:
		return model.TierMedium
	default:
		return model.TierLow
	}
}

// TrendBetween tags the movement from the previous period's composed
// score to the current one. Lower burnout is improvement.
func TrendBetween(previous, current float64, opts ...trend.Option) model.Trend {
	series := []trend.Point{
		{Period: 1, Value: previous},
		{Period: 2, Value: current},
	}
	return trend.Classify(series, false, opts...)
}
