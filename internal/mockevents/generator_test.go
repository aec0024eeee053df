package mockevents

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/adapters/sources"
)

func TestGeneratePayloads(t *testing.T) {
	convey.Convey("Given a mock config for a small org", t, func() {
		ctx := context.Background()
		cfg := &Config{
			PayloadDir: t.TempDir(),
			Engineers:  8,
			Days:       14,
		}
		stats := &Stats{}

		convey.Convey("When payloads are generated", func() {
			err := generatePayloads(ctx, cfg, stats)
			convey.So(err, convey.ShouldBeNil)
			convey.So(stats.EngineersGenerated, convey.ShouldEqual, 8)

			periodEnd := time.Now().UTC().Add(time.Minute)
			periodStart := periodEnd.AddDate(0, 0, -cfg.Days).Add(-2 * time.Minute)

			convey.Convey("Then all four payload files exist", func() {
				for _, name := range []string{sources.UsersFile, sources.IncidentsFile, sources.GitHubFile, sources.SlackFile} {
					_, err := os.Stat(filepath.Join(cfg.PayloadDir, name))
					convey.So(err, convey.ShouldBeNil)
				}
			})

			convey.Convey("Then the users payload parses back into engineers", func() {
				raw, err := sources.ReadPayload(filepath.Join(cfg.PayloadDir, sources.UsersFile))
				convey.So(err, convey.ShouldBeNil)
				engineers, err := sources.ParseUsers(raw)
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(engineers), convey.ShouldEqual, 8)

				seen := make(map[string]bool)
				for _, eng := range engineers {
					convey.So(eng.Email, convey.ShouldNotBeEmpty)
					convey.So(eng.Timezone, convey.ShouldNotBeEmpty)
					convey.So(seen[eng.Email], convey.ShouldBeFalse)
					seen[eng.Email] = true
				}
			})

			convey.Convey("Then incidents parse and land inside the period", func() {
				raw, err := sources.ReadPayload(filepath.Join(cfg.PayloadDir, sources.IncidentsFile))
				convey.So(err, convey.ShouldBeNil)
				events, err := sources.ParseIncidents(raw, periodStart, periodEnd)
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(events), convey.ShouldEqual, stats.IncidentsGenerated)
				for _, ev := range events {
					convey.So(ev.Timestamp.Before(periodStart), convey.ShouldBeFalse)
					convey.So(ev.Timestamp.After(periodEnd), convey.ShouldBeFalse)
					convey.So(ev.Incident, convey.ShouldNotBeNil)
					convey.So(ev.Incident.Severity, convey.ShouldBeIn, "sev1", "sev2", "sev3")
				}
			})

			convey.Convey("Then GitHub activity parses with every event kind counted", func() {
				raw, err := sources.ReadPayload(filepath.Join(cfg.PayloadDir, sources.GitHubFile))
				convey.So(err, convey.ShouldBeNil)
				events, err := sources.ParseGitHub(raw, periodStart, periodEnd)
				convey.So(err, convey.ShouldBeNil)
				want := stats.CommitsGenerated + stats.PullRequestsGenerated + stats.ReviewsGenerated
				convey.So(len(events), convey.ShouldEqual, want)
			})

			convey.Convey("Then Slack activity parses with a pattern score per engineer", func() {
				raw, err := sources.ReadPayload(filepath.Join(cfg.PayloadDir, sources.SlackFile))
				convey.So(err, convey.ShouldBeNil)
				events, patterns, err := sources.ParseSlack(raw, periodStart, periodEnd)
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(events), convey.ShouldEqual, stats.MessagesGenerated)
				convey.So(len(patterns), convey.ShouldEqual, 8)
			})

			convey.Convey("Then the loader builds one valid window per engineer", func() {
				loader := sources.NewLoader(sources.WithGitHub(true), sources.WithSlack(true))
				windows, err := loader.Load(ctx, cfg.PayloadDir, periodStart, periodEnd)
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(windows), convey.ShouldEqual, 8)
				for _, win := range windows {
					convey.So(win.Validate(), convey.ShouldBeNil)
					convey.So(win.ResponsePatternScore, convey.ShouldNotBeNil)
				}
			})
		})
	})
}

func TestVerification(t *testing.T) {
	convey.Convey("Given leaderboard entries", t, func() {
		board := []Entry{
			{Rank: 1, EngineerID: "a@example.com", Score: 8.2, Tier: "high"},
			{Rank: 2, EngineerID: "b@example.com", Score: 5.0, Tier: "medium"},
			{Rank: 3, EngineerID: "c@example.com", Score: 3.1, Tier: "low"},
		}

		convey.Convey("A consistent board passes ordering and tier checks", func() {
			convey.So(verifyOrdering(board), convey.ShouldBeNil)
			convey.So(verifyTiers(board), convey.ShouldBeNil)
		})

		convey.Convey("A gap in ranks fails", func() {
			broken := []Entry{board[0], {Rank: 3, EngineerID: "b@example.com", Score: 5.0, Tier: "medium"}}
			convey.So(verifyOrdering(broken), convey.ShouldNotBeNil)
		})

		convey.Convey("An out-of-order score fails", func() {
			broken := []Entry{
				{Rank: 1, EngineerID: "a@example.com", Score: 4.0, Tier: "medium"},
				{Rank: 2, EngineerID: "b@example.com", Score: 6.0, Tier: "medium"},
			}
			convey.So(verifyOrdering(broken), convey.ShouldNotBeNil)
		})

		convey.Convey("A tier that disagrees with its score fails", func() {
			broken := []Entry{{Rank: 1, EngineerID: "a@example.com", Score: 8.2, Tier: "low"}}
			convey.So(verifyTiers(broken), convey.ShouldNotBeNil)
		})

		convey.Convey("Tier floors map scores to bands", func() {
			convey.So(tierFor(7.0), convey.ShouldEqual, "high")
			convey.So(tierFor(6.99), convey.ShouldEqual, "medium")
			convey.So(tierFor(4.0), convey.ShouldEqual, "medium")
			convey.So(tierFor(3.99), convey.ShouldEqual, "low")
		})
	})
}
