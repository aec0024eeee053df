package sources_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/adapters/sources"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

var (
	periodStart = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	periodEnd   = time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
)

const usersJSON = `{
  "data": [
    {"id": "u1", "attributes": {"email": "alice@example.com", "full_name": "Alice", "time_zone": "America/Toronto"}},
    {"id": "u2", "attributes": {"email": "bob@example.com", "full_name": "Bob"}},
    {"id": "u3", "attributes": {"full_name": "No Email"}}
  ]
}`

const incidentsJSON = `{
  "data": [
    {
      "id": "inc-1",
      "attributes": {
        "started_at": "2026-07-10T03:15:00Z",
        "acknowledged_at": "2026-07-10T03:20:00Z",
        "resolved_at": "2026-07-10T05:00:00Z",
        "severity": {"data": {"attributes": {"severity": "SEV1"}}},
        "user": {"data": {"attributes": {"email": "alice@example.com"}}},
        "escalated": true,
        "responders": 3,
        "postmortem_published": true,
        "status_updates": ["investigating", "mitigated"]
      }
    },
    {
      "id": "inc-2",
      "attributes": {
        "started_at": "2026-06-01T00:00:00Z",
        "severity": {"data": {"attributes": {"severity": "sev3"}}},
        "user": {"data": {"attributes": {"email": "alice@example.com"}}}
      }
    },
    {
      "id": "inc-3",
      "attributes": {
        "started_at": "2026-07-12T14:00:00Z",
        "severity": {"data": {"attributes": {"severity": "sev4"}}}
      }
    }
  ]
}`

const githubJSON = `{
  "users": {
    "alice@example.com": {
      "commits": [
        {"sha": "abc123", "repo": "payments", "date": "2026-07-11T22:30:00Z"},
        {"sha": "def456", "repo": "payments", "date": 1783809000}
      ],
      "pull_requests": [
        {"number": 42, "repo": "payments", "created_at": "2026-07-12T10:00:00Z", "merged": true}
      ],
      "reviews": [
        {"repo": "billing", "submitted_at": "2026-07-13T09:00:00Z", "comments": 4}
      ]
    }
  }
}`

const slackJSON = `{
  "users": {
    "bob@example.com": {
      "messages": [
        {"ts": "1783641600.000200", "channel_id": "C123", "text": "deploy done"},
        {"ts": "1783641900.000300", "channel_id": "D456", "text": "quick q", "thread_ts": "1783641600.000200"}
      ],
      "response_pattern_score": 6.5
    }
  }
}`

func TestParseUsers(t *testing.T) {
	convey.Convey("Given a Rootly users document", t, func() {
		engineers, err := sources.ParseUsers([]byte(usersJSON))

		convey.Convey("Then users with emails are returned", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(engineers, convey.ShouldHaveLength, 2)
			convey.So(engineers[0].Email, convey.ShouldEqual, "alice@example.com")
			convey.So(engineers[0].Timezone, convey.ShouldEqual, "America/Toronto")
			convey.So(engineers[1].Timezone, convey.ShouldEqual, "UTC")
		})
	})

	convey.Convey("Given a document without a data array", t, func() {
		_, err := sources.ParseUsers([]byte(`{"users": []}`))
		convey.So(errors.Is(err, sources.ErrMalformedPayload), convey.ShouldBeTrue)
	})
}

func TestParseIncidents(t *testing.T) {
	convey.Convey("Given a Rootly incidents document", t, func() {
		events, err := sources.ParseIncidents([]byte(incidentsJSON), periodStart, periodEnd)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then only attributed in-period incidents survive", func() {
			convey.So(events, convey.ShouldHaveLength, 1)
			ev := events[0]
			convey.So(ev.EngineerID, convey.ShouldEqual, "alice@example.com")
			convey.So(ev.Kind, convey.ShouldEqual, model.KindIncident)
			convey.So(ev.Incident.Severity, convey.ShouldEqual, "sev1")
			convey.So(ev.Incident.Escalated, convey.ShouldBeTrue)
			convey.So(ev.Incident.Responders, convey.ShouldEqual, 3)
			convey.So(ev.Incident.Postmortem, convey.ShouldBeTrue)
			convey.So(ev.Incident.Updates, convey.ShouldHaveLength, 2)
			convey.So(ev.Incident.Resolved(), convey.ShouldBeTrue)
			convey.So(ev.Incident.ResolvedAt.Sub(ev.Timestamp), convey.ShouldEqual, 105*time.Minute)
		})
	})

	convey.Convey("Given an incident with a broken timestamp", t, func() {
		doc := `{"data": [{"id": "x", "attributes": {
			"started_at": "yesterdayish",
			"user": {"data": {"attributes": {"email": "a@b.c"}}}}}]}`
		_, err := sources.ParseIncidents([]byte(doc), periodStart, periodEnd)
		convey.So(errors.Is(err, sources.ErrBadTimestamp), convey.ShouldBeTrue)
	})
}

func TestParseGitHub(t *testing.T) {
	convey.Convey("Given a GitHub activity payload", t, func() {
		events, err := sources.ParseGitHub([]byte(githubJSON), periodStart, periodEnd)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then commits, PRs and reviews become events", func() {
			var commits, prs, reviews int
			for _, ev := range events {
				switch ev.Kind {
				case model.KindCommit:
					commits++
				case model.KindPullRequest:
					prs++
					convey.So(ev.PullRequest.Merged, convey.ShouldBeTrue)
				case model.KindReview:
					reviews++
					convey.So(ev.Review.Comments, convey.ShouldEqual, 4)
				}
			}
			convey.So(commits, convey.ShouldEqual, 2)
			convey.So(prs, convey.ShouldEqual, 1)
			convey.So(reviews, convey.ShouldEqual, 1)
		})

		convey.Convey("Then epoch-second dates parse too", func() {
			found := false
			for _, ev := range events {
				if ev.ID == "commit-def456" {
					found = true
					convey.So(ev.Timestamp.Year(), convey.ShouldEqual, 2026)
				}
			}
			convey.So(found, convey.ShouldBeTrue)
		})
	})

	convey.Convey("Given a payload without a users object", t, func() {
		_, err := sources.ParseGitHub([]byte(`{"data": []}`), periodStart, periodEnd)
		convey.So(errors.Is(err, sources.ErrMalformedPayload), convey.ShouldBeTrue)
	})
}

func TestParseSlack(t *testing.T) {
	convey.Convey("Given a Slack activity payload", t, func() {
		events, patterns, err := sources.ParseSlack([]byte(slackJSON), periodStart, periodEnd)
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("Then messages become events with thread and DM detail", func() {
			convey.So(events, convey.ShouldHaveLength, 2)
			convey.So(events[0].Message.InThread, convey.ShouldBeFalse)
			convey.So(events[1].Message.InThread, convey.ShouldBeTrue)
			convey.So(events[1].Message.DirectMessage(), convey.ShouldBeTrue)
		})

		convey.Convey("Then the response pattern score is carried through", func() {
			convey.So(patterns["bob@example.com"], convey.ShouldEqual, 6.5)
		})
	})
}

func TestLoader(t *testing.T) {
	convey.Convey("Given a payload directory with all sources", t, func() {
		ctx := context.Background()
		dir := t.TempDir()

		write := func(name, content string) {
			convey.So(sources.WritePayload(filepath.Join(dir, name), mustRaw(content)), convey.ShouldBeNil)
		}
		write(sources.UsersFile, usersJSON)
		write(sources.IncidentsFile, incidentsJSON)
		write(sources.GitHubFile, githubJSON)
		write(sources.SlackFile, slackJSON)

		convey.Convey("When loading with every source enabled", func() {
			loader := sources.NewLoader(sources.WithGitHub(true), sources.WithSlack(true))
			windows, err := loader.Load(ctx, dir, periodStart, periodEnd)
			convey.So(err, convey.ShouldBeNil)
			convey.So(windows, convey.ShouldHaveLength, 2)

			byID := map[string]model.EngineerWindow{}
			for _, w := range windows {
				byID[w.EngineerID] = w
			}

			convey.Convey("Then alice has incident and github events", func() {
				alice := byID["alice@example.com"]
				convey.So(alice.Timezone, convey.ShouldEqual, "America/Toronto")
				part := alice.Partition()
				convey.So(part.Incidents, convey.ShouldHaveLength, 1)
				convey.So(part.Commits, convey.ShouldHaveLength, 2)
				convey.So(part.PullRequests, convey.ShouldHaveLength, 1)
			})

			convey.Convey("Then bob has slack events and a pattern score", func() {
				bob := byID["bob@example.com"]
				convey.So(bob.Partition().Messages, convey.ShouldHaveLength, 2)
				convey.So(bob.ResponsePatternScore, convey.ShouldNotBeNil)
				convey.So(*bob.ResponsePatternScore, convey.ShouldEqual, 6.5)
			})

			convey.Convey("Then every window validates", func() {
				for _, w := range windows {
					convey.So(w.Validate(), convey.ShouldBeNil)
				}
			})
		})

		convey.Convey("When optional sources are disabled", func() {
			loader := sources.NewLoader()
			windows, err := loader.Load(ctx, dir, periodStart, periodEnd)
			convey.So(err, convey.ShouldBeNil)
			for _, w := range windows {
				part := w.Partition()
				convey.So(part.Commits, convey.ShouldBeEmpty)
				convey.So(part.Messages, convey.ShouldBeEmpty)
			}
		})

		convey.Convey("When the users payload is missing", func() {
			loader := sources.NewLoader()
			_, err := loader.Load(ctx, t.TempDir(), periodStart, periodEnd)
			convey.So(err, convey.ShouldNotBeNil)
		})
	})
}

// mustRaw round-trips a JSON literal so WritePayload re-indents it.
func mustRaw(content string) any {
	var v any
	if err := json.Unmarshal([]byte(content), &v); err != nil {
		panic(err)
	}
	return v
}
