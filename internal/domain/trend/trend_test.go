package trend_test

import (
	"testing"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/trend"
	"github.com/smartystreets/goconvey/convey"
)

func pts(values ...float64) []trend.Point {
	out := make([]trend.Point, len(values))
	for i, v := range values {
		out[i] = trend.Point{Period: i + 1, Value: v}
	}
	return out
}

func TestClassify(t *testing.T) {
	convey.Convey("Given a falling resolution-time series", t, func() {
		series := pts(10, 9, 4, 3)

		convey.Convey("When lower values are better", func() {
			got := trend.Classify(series, false)

			convey.Convey("Then the direction is improving", func() {
				convey.So(got, convey.ShouldEqual, model.TrendImproving)
			})
		})

		convey.Convey("When higher values are better", func() {
			got := trend.Classify(series, true)

			convey.Convey("Then the same change reads as degrading", func() {
				convey.So(got, convey.ShouldEqual, model.TrendDegrading)
			})
		})
	})

	convey.Convey("Given a series inside the tolerance band", t, func() {
		series := pts(10, 10.2, 10.4, 10.5)

		convey.Convey("When classifying with the default 10 percent band", func() {
			convey.So(trend.Classify(series, false), convey.ShouldEqual, model.TrendStable)
		})

		convey.Convey("When the band is tightened to 1 percent", func() {
			got := trend.Classify(series, false, trend.WithTolerance(0.01))
			convey.So(got, convey.ShouldEqual, model.TrendDegrading)
		})
	})

	convey.Convey("Given degenerate series", t, func() {
		convey.Convey("When the series is empty", func() {
			convey.So(trend.Classify(nil, true), convey.ShouldEqual, model.TrendStable)
		})

		convey.Convey("When the series has one point", func() {
			convey.So(trend.Classify(pts(42), true), convey.ShouldEqual, model.TrendStable)
		})

		convey.Convey("When every value is zero", func() {
			convey.So(trend.Classify(pts(0, 0, 0, 0), true), convey.ShouldEqual, model.TrendStable)
		})

		convey.Convey("When the early mean is zero and the late mean is not", func() {
			convey.So(trend.Classify(pts(0, 0, 5, 5), true), convey.ShouldEqual, model.TrendImproving)
			convey.So(trend.Classify(pts(0, 0, 5, 5), false), convey.ShouldEqual, model.TrendDegrading)
		})
	})

	convey.Convey("Given an odd-length series", t, func() {
		// Middle point is dropped: halves are [10] and [3].
		series := pts(10, 100, 3)

		convey.Convey("When classifying with lower-is-better", func() {
			convey.So(trend.Classify(series, false), convey.ShouldEqual, model.TrendImproving)
		})
	})

	convey.Convey("Given an unsorted series", t, func() {
		series := []trend.Point{
			{Period: 4, Value: 3},
			{Period: 1, Value: 10},
			{Period: 3, Value: 4},
			{Period: 2, Value: 9},
		}

		convey.Convey("When classifying", func() {
			convey.So(trend.Classify(series, false), convey.ShouldEqual, model.TrendImproving)
		})

		convey.Convey("Then the caller's slice keeps its order", func() {
			trend.Classify(series, false)
			convey.So(series[0].Period, convey.ShouldEqual, 4)
		})
	})

	convey.Convey("Given a rising success-rate series", t, func() {
		series := pts(0.5, 0.55, 0.8, 0.9)

		convey.Convey("When higher values are better", func() {
			convey.So(trend.Classify(series, true), convey.ShouldEqual, model.TrendImproving)
		})
	})
}
