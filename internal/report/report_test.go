package report_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/types"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/report"
	"github.com/smartystreets/goconvey/convey"
)

func scoredResult(id string, score float64, tier model.RiskTier) model.BurnoutResult {
	return model.BurnoutResult{
		EngineerID: id,
		Score:      score,
		Tier:       tier,
		Exhaustion: model.DimensionScore{
			Dimension: model.DimExhaustion,
			Value:     score,
			Sources: []model.SubScore{{
				Source: model.SourceIncident,
				Value:  score,
				Metrics: []model.MetricScore{
					{Name: "after_hours", Value: 9.2},
					{Name: "frequency", Value: 2.1},
				},
			}},
		},
		Depersonalization: model.DimensionScore{
			Dimension: model.DimDepersonalization,
			Value:     score,
			Sources: []model.SubScore{{
				Source:  model.SourceIncident,
				Value:   score,
				Metrics: []model.MetricScore{{Name: "escalation_rate", Value: 7.5}},
			}},
		},
		Accomplishment: model.DimensionScore{
			Dimension: model.DimAccomplishment,
			Value:     2.0,
			Sources: []model.SubScore{{
				Source:  model.SourceIncident,
				Value:   2.0,
				Metrics: []model.MetricScore{{Name: "resolution_success", Value: 2.0}},
			}},
		},
		PeriodStart: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
	}
}

func emptyResult(id string) model.BurnoutResult {
	return model.BurnoutResult{
		EngineerID: id,
		Score:      3.0,
		Tier:       model.TierLow,
	}
}

func testRun() types.RunSummary {
	return types.RunSummary{
		RunID:       "run-7",
		PeriodStart: time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		score float64
		want  string
	}{
		{0, report.StatusHealthy},
		{3.99, report.StatusHealthy},
		{4.0, report.StatusMedium},
		{5.99, report.StatusMedium},
		{6.0, report.StatusHighRisk},
		{7.99, report.StatusHighRisk},
		{8.0, report.StatusCritical},
		{10, report.StatusCritical},
	}
	for _, tc := range cases {
		if got := report.StatusFor(tc.score); got != tc.want {
			t.Errorf("StatusFor(%.2f) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestBuildInsights(t *testing.T) {
	convey.Convey("Given a high-risk result", t, func() {
		result := scoredResult("busy@example.com", 7.2, model.TierHigh)

		convey.Convey("When insights are built", func() {
			insights := report.BuildInsights(result)

			convey.Convey("Then the status band matches the score", func() {
				convey.So(insights.Status, convey.ShouldEqual, report.StatusHighRisk)
			})

			convey.Convey("Then the strongest factors lead, capped at three", func() {
				convey.So(insights.RiskFactors, convey.ShouldHaveLength, 3)
				convey.So(insights.RiskFactors[0].Metric, convey.ShouldEqual, "after_hours")
				convey.So(insights.RiskFactors[0].Contribution, convey.ShouldAlmostEqual, 9.2)
			})

			convey.Convey("Then the protective dimension contributes inverted", func() {
				var found bool
				for _, f := range insights.RiskFactors {
					if f.Metric == "resolution_success" {
						found = true
						convey.So(f.Contribution, convey.ShouldAlmostEqual, 8.0)
					}
				}
				convey.So(found, convey.ShouldBeTrue)
			})

			convey.Convey("Then weak metrics are excluded", func() {
				for _, f := range insights.RiskFactors {
					convey.So(f.Metric, convey.ShouldNotEqual, "frequency")
				}
			})
		})
	})

	convey.Convey("Given a zero-evidence result", t, func() {
		insights := report.BuildInsights(emptyResult("calm@example.com"))
		convey.So(insights.Status, convey.ShouldEqual, report.StatusHealthy)
		convey.So(insights.RiskFactors, convey.ShouldBeEmpty)
	})
}

func TestBuildSummary(t *testing.T) {
	convey.Convey("Given a mixed-run result set", t, func() {
		results := []model.BurnoutResult{
			scoredResult("busy@example.com", 7.2, model.TierHigh),
			scoredResult("warm@example.com", 5.0, model.TierMedium),
			emptyResult("calm@example.com"),
		}

		convey.Convey("When the summary is built", func() {
			summary := report.BuildSummary(testRun(), results)

			convey.Convey("Then the distribution and averages hold", func() {
				convey.So(summary.TotalEngineers, convey.ShouldEqual, 3)
				convey.So(summary.ActiveEngineers, convey.ShouldEqual, 2)
				convey.So(summary.RiskDistribution["high"], convey.ShouldEqual, 1)
				convey.So(summary.RiskDistribution["medium"], convey.ShouldEqual, 1)
				convey.So(summary.RiskDistribution["low"], convey.ShouldEqual, 1)
				convey.So(summary.AverageScore, convey.ShouldAlmostEqual, (7.2+5.0+3.0)/3)
				convey.So(summary.AverageActive, convey.ShouldAlmostEqual, (7.2+5.0)/2)
			})

			convey.Convey("Then each row carries its status band", func() {
				convey.So(summary.Engineers[0].Status, convey.ShouldEqual, report.StatusHighRisk)
				convey.So(summary.Engineers[2].Status, convey.ShouldEqual, report.StatusHealthy)
			})
		})
	})

	convey.Convey("Given no results", t, func() {
		summary := report.BuildSummary(testRun(), nil)
		convey.So(summary.TotalEngineers, convey.ShouldEqual, 0)
		convey.So(summary.AverageScore, convey.ShouldEqual, 0)
	})
}

func TestWriter(t *testing.T) {
	convey.Convey("Given a report writer on a temp directory", t, func() {
		dir := t.TempDir()
		writer := report.NewWriter(dir)
		results := []model.BurnoutResult{
			scoredResult("busy@example.com", 7.2, model.TierHigh),
			emptyResult("calm@example.com"),
		}

		convey.Convey("When a run is written", func() {
			summaryPath, err := writer.Write(context.Background(), testRun(), results)
			convey.So(err, convey.ShouldBeNil)

			convey.Convey("Then the summary file is valid JSON", func() {
				raw, err := os.ReadFile(summaryPath)
				convey.So(err, convey.ShouldBeNil)

				var summary report.Summary
				convey.So(json.Unmarshal(raw, &summary), convey.ShouldBeNil)
				convey.So(summary.RunID, convey.ShouldEqual, "run-7")
				convey.So(summary.Engineers, convey.ShouldHaveLength, 2)
			})

			convey.Convey("Then per-engineer files land under engineers/", func() {
				raw, err := os.ReadFile(filepath.Join(dir, report.EngineersDir, "busy@example.com.json"))
				convey.So(err, convey.ShouldBeNil)

				var detail report.EngineerReport
				convey.So(json.Unmarshal(raw, &detail), convey.ShouldBeNil)
				convey.So(detail.Result.EngineerID, convey.ShouldEqual, "busy@example.com")
				convey.So(detail.Insights.Status, convey.ShouldEqual, report.StatusHighRisk)
			})
		})
	})
}
