package sources

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
)

// ParseGitHub reads the cached GitHub activity payload:
//
//	{"users": {"alice@example.com": {
//	    "commits":       [{"sha": ..., "repo": ..., "date": ...}],
//	    "pull_requests": [{"number": ..., "repo": ..., "created_at": ..., "merged": ...}],
//	    "reviews":       [{"repo": ..., "submitted_at": ..., "comments": ...}]
//	}}}
//
// Events outside the analysis period are dropped.
func ParseGitHub(raw []byte, periodStart, periodEnd time.Time) ([]model.Event, error) {
	doc := gjson.ParseBytes(raw)
	users := doc.Get("users")
	if !users.Exists() {
		return nil, errors.Wrap(ErrMalformedPayload, "github: missing users object")
	}

	var events []model.Event
	var parseErr error
	inPeriod := func(t time.Time) bool {
		return !t.Before(periodStart) && !t.After(periodEnd)
	}

	users.ForEach(func(email, activity gjson.Result) bool {
		id := email.String()

		activity.Get("commits").ForEach(func(idx, c gjson.Result) bool {
			ts, err := parseTimestamp(c.Get("date"))
			if err != nil {
				parseErr = errors.Wrapf(err, "github: %s commits.%d.date", id, idx.Int())
				return false
			}
			if !inPeriod(ts) {
				return true
			}
			events = append(events, model.Event{
				ID:         "commit-" + c.Get("sha").String(),
				EngineerID: id,
				Kind:       model.KindCommit,
				Timestamp:  ts,
				Commit:     &model.CommitDetails{Repo: c.Get("repo").String()},
			})
			return true
		})
		if parseErr != nil {
			return false
		}

		activity.Get("pull_requests").ForEach(func(idx, pr gjson.Result) bool {
			ts, err := parseTimestamp(pr.Get("created_at"))
			if err != nil {
				parseErr = errors.Wrapf(err, "github: %s pull_requests.%d.created_at", id, idx.Int())
				return false
			}
			if !inPeriod(ts) {
				return true
			}
			events = append(events, model.Event{
				ID:         fmt.Sprintf("pr-%s-%d", pr.Get("repo").String(), pr.Get("number").Int()),
				EngineerID: id,
				Kind:       model.KindPullRequest,
				Timestamp:  ts,
				PullRequest: &model.PullRequestDetails{
					Repo:   pr.Get("repo").String(),
					Merged: pr.Get("merged").Bool(),
				},
			})
			return true
		})
		if parseErr != nil {
			return false
		}

		activity.Get("reviews").ForEach(func(idx, rv gjson.Result) bool {
			ts, err := parseTimestamp(rv.Get("submitted_at"))
			if err != nil {
				parseErr = errors.Wrapf(err, "github: %s reviews.%d.submitted_at", id, idx.Int())
				return false
			}
			if !inPeriod(ts) {
				return true
			}
			events = append(events, model.Event{
				ID:         fmt.Sprintf("review-%s-%s", rv.Get("repo").String(), rv.Get("submitted_at").String()),
				EngineerID: id,
				Kind:       model.KindReview,
				Timestamp:  ts,
				Review: &model.ReviewDetails{
					Repo:     rv.Get("repo").String(),
					Comments: int(rv.Get("comments").Int()),
				},
			})
			return true
		})
		return parseErr == nil
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return events, nil
}
