package scoring_test

import (
	"testing"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/scoring"
	"github.com/smartystreets/goconvey/convey"
)

func dim(d model.Dimension, value float64) model.DimensionScore {
	return model.DimensionScore{Dimension: d, Value: value}
}

func TestCompose(t *testing.T) {
	convey.Convey("Given fused dimension scores", t, func() {
		convey.Convey("When composing the standard-analysis example", func() {
			score, tier := scoring.Compose(
				dim(model.DimExhaustion, 6.5),
				dim(model.DimDepersonalization, 3.0),
				dim(model.DimAccomplishment, 7.0),
			)

			convey.Convey("Then the weighted sum and tier match", func() {
				convey.So(score, convey.ShouldAlmostEqual, 4.4, 1e-9)
				convey.So(tier, convey.ShouldEqual, model.TierMedium)
			})
		})

		convey.Convey("When accomplishment is maximal", func() {
			score, tier := scoring.Compose(
				dim(model.DimExhaustion, 0),
				dim(model.DimDepersonalization, 0),
				dim(model.DimAccomplishment, 10),
			)

			convey.Convey("Then the floor of the scale is reached", func() {
				convey.So(score, convey.ShouldEqual, 0)
				convey.So(tier, convey.ShouldEqual, model.TierLow)
			})
		})

		convey.Convey("When every dimension is at its worst", func() {
			score, tier := scoring.Compose(
				dim(model.DimExhaustion, 10),
				dim(model.DimDepersonalization, 10),
				dim(model.DimAccomplishment, 0),
			)

			convey.Convey("Then the ceiling of the scale is reached", func() {
				convey.So(score, convey.ShouldEqual, 10)
				convey.So(tier, convey.ShouldEqual, model.TierHigh)
			})
		})
	})
}

func TestTierBoundaries(t *testing.T) {
	convey.Convey("Given the tier floors", t, func() {
		convey.Convey("When classifying scores around the boundaries", func() {
			convey.So(scoring.TierFor(3.9999), convey.ShouldEqual, model.TierLow)
			convey.So(scoring.TierFor(4.0), convey.ShouldEqual, model.TierMedium)
			convey.So(scoring.TierFor(6.9999), convey.ShouldEqual, model.TierMedium)
			convey.So(scoring.TierFor(7.0), convey.ShouldEqual, model.TierHigh)
		})

		convey.Convey("When classifying the scale ends", func() {
			convey.So(scoring.TierFor(0), convey.ShouldEqual, model.TierLow)
			convey.So(scoring.TierFor(10), convey.ShouldEqual, model.TierHigh)
		})
	})
}

func TestComposeMonotonicity(t *testing.T) {
	convey.Convey("Given a baseline composition", t, func() {
		base, _ := scoring.Compose(
			dim(model.DimExhaustion, 5),
			dim(model.DimDepersonalization, 5),
			dim(model.DimAccomplishment, 5),
		)

		convey.Convey("When exhaustion rises", func() {
			higher, _ := scoring.Compose(
				dim(model.DimExhaustion, 7),
				dim(model.DimDepersonalization, 5),
				dim(model.DimAccomplishment, 5),
			)
			convey.So(higher, convey.ShouldBeGreaterThan, base)
		})

		convey.Convey("When depersonalization rises", func() {
			higher, _ := scoring.Compose(
				dim(model.DimExhaustion, 5),
				dim(model.DimDepersonalization, 9),
				dim(model.DimAccomplishment, 5),
			)
			convey.So(higher, convey.ShouldBeGreaterThan, base)
		})

		convey.Convey("When accomplishment rises", func() {
			lower, _ := scoring.Compose(
				dim(model.DimExhaustion, 5),
				dim(model.DimDepersonalization, 5),
				dim(model.DimAccomplishment, 9),
			)
			convey.So(lower, convey.ShouldBeLessThan, base)
		})

		convey.Convey("When sweeping exhaustion across the scale", func() {
			prev := -1.0
			for ee := 0.0; ee <= 10; ee += 0.5 {
				score, _ := scoring.Compose(
					dim(model.DimExhaustion, ee),
					dim(model.DimDepersonalization, 5),
					dim(model.DimAccomplishment, 5),
				)
				convey.So(score, convey.ShouldBeGreaterThanOrEqualTo, prev)
				prev = score
			}
		})
	})
}

func TestTrendBetween(t *testing.T) {
	convey.Convey("Given two consecutive period scores", t, func() {
		convey.Convey("When the score drops sharply", func() {
			convey.So(scoring.TrendBetween(8, 5), convey.ShouldEqual, model.TrendImproving)
		})

		convey.Convey("When the score climbs sharply", func() {
			convey.So(scoring.TrendBetween(4, 7), convey.ShouldEqual, model.TrendDegrading)
		})

		convey.Convey("When the change sits inside the tolerance band", func() {
			convey.So(scoring.TrendBetween(5, 5.2), convey.ShouldEqual, model.TrendStable)
		})
	})
}
