package model_test

import (
	"errors"
	"testing"
	"time"

	model "github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestPartition(t *testing.T) {
	convey.Convey("Given a window with mixed event kinds", t, func() {
		start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 30)
		win := model.EngineerWindow{
			EngineerID:  "alice@example.com",
			Timezone:    "UTC",
			PeriodStart: start,
			PeriodEnd:   end,
			Events: []model.Event{
				{ID: "inc-1", Kind: model.KindIncident, Timestamp: start.Add(time.Hour), Incident: &model.IncidentDetails{Severity: "sev2"}},
				{ID: "c-1", Kind: model.KindCommit, Timestamp: start.Add(2 * time.Hour), Commit: &model.CommitDetails{Repo: "api"}},
				{ID: "c-2", Kind: model.KindCommit, Timestamp: start.Add(3 * time.Hour), Commit: &model.CommitDetails{Repo: "api"}},
				{ID: "pr-1", Kind: model.KindPullRequest, Timestamp: start.Add(4 * time.Hour), PullRequest: &model.PullRequestDetails{Repo: "api"}},
				{ID: "rv-1", Kind: model.KindReview, Timestamp: start.Add(5 * time.Hour), Review: &model.ReviewDetails{Repo: "api", Comments: 3}},
				{ID: "m-1", Kind: model.KindMessage, Timestamp: start.Add(6 * time.Hour), Message: &model.MessageDetails{ChannelID: "C123", Text: "deploy done"}},
			},
		}

		convey.Convey("When partitioning by kind", func() {
			p := win.Partition()

			convey.Convey("Then each partition holds its own kind in order", func() {
				convey.So(len(p.Incidents), convey.ShouldEqual, 1)
				convey.So(len(p.Commits), convey.ShouldEqual, 2)
				convey.So(len(p.PullRequests), convey.ShouldEqual, 1)
				convey.So(len(p.Reviews), convey.ShouldEqual, 1)
				convey.So(len(p.Messages), convey.ShouldEqual, 1)
				convey.So(p.Commits[0].ID, convey.ShouldEqual, "c-1")
				convey.So(p.Commits[1].ID, convey.ShouldEqual, "c-2")
			})
		})

		convey.Convey("When asking for the period length", func() {
			convey.Convey("Then days and weeks are derived from the bounds", func() {
				convey.So(win.Days(), convey.ShouldEqual, 30.0)
				convey.So(win.Weeks(), convey.ShouldAlmostEqual, 30.0/7, 1e-9)
			})
		})
	})
}

func TestWindowValidate(t *testing.T) {
	convey.Convey("Given window validation", t, func() {
		start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 14)

		convey.Convey("When the window is well formed", func() {
			win := model.EngineerWindow{
				EngineerID:  "bob@example.com",
				Timezone:    "Europe/Berlin",
				PeriodStart: start,
				PeriodEnd:   end,
				Events: []model.Event{
					{ID: "e1", Kind: model.KindCommit, Timestamp: start.Add(time.Hour)},
				},
			}
			convey.So(win.Validate(), convey.ShouldBeNil)
		})

		convey.Convey("When the engineer id is empty", func() {
			win := model.EngineerWindow{Timezone: "UTC", PeriodStart: start, PeriodEnd: end}
			convey.So(errors.Is(win.Validate(), model.ErrEmptyEngineerID), convey.ShouldBeTrue)
		})

		convey.Convey("When the period bounds are inverted", func() {
			win := model.EngineerWindow{EngineerID: "x", Timezone: "UTC", PeriodStart: end, PeriodEnd: start}
			convey.So(errors.Is(win.Validate(), model.ErrInvalidPeriod), convey.ShouldBeTrue)
		})

		convey.Convey("When the timezone does not exist", func() {
			win := model.EngineerWindow{EngineerID: "x", Timezone: "Mars/Olympus", PeriodStart: start, PeriodEnd: end}
			convey.So(win.Validate(), convey.ShouldNotBeNil)
		})

		convey.Convey("When an event falls outside the period", func() {
			win := model.EngineerWindow{
				EngineerID:  "x",
				Timezone:    "UTC",
				PeriodStart: start,
				PeriodEnd:   end,
				Events: []model.Event{
					{ID: "late", Kind: model.KindCommit, Timestamp: end.Add(time.Minute)},
				},
			}
			convey.So(errors.Is(win.Validate(), model.ErrEventOutsidePeriod), convey.ShouldBeTrue)
		})
	})
}

func TestDetailHelpers(t *testing.T) {
	convey.Convey("Given detail helper methods", t, func() {
		convey.Convey("When checking incident severity and resolution", func() {
			resolved := time.Now()
			inc := model.IncidentDetails{Severity: "sev1", ResolvedAt: &resolved}
			convey.So(inc.HighSeverity(), convey.ShouldBeTrue)
			convey.So(inc.Resolved(), convey.ShouldBeTrue)
			convey.So((&model.IncidentDetails{Severity: "sev4"}).HighSeverity(), convey.ShouldBeFalse)
			convey.So((&model.IncidentDetails{}).Resolved(), convey.ShouldBeFalse)
		})

		convey.Convey("When checking message channels", func() {
			convey.So((&model.MessageDetails{ChannelID: "D042"}).DirectMessage(), convey.ShouldBeTrue)
			convey.So((&model.MessageDetails{ChannelID: "C042"}).DirectMessage(), convey.ShouldBeFalse)
			convey.So((&model.MessageDetails{}).DirectMessage(), convey.ShouldBeFalse)
		})
	})
}
