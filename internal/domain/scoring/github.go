package scoring

import (
	"sort"
	"time"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/clustering"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/timeclass"
)

// githubScorer maps commits, pull requests and reviews onto the three
// dimensions. Off-hours committing feeds exhaustion, collaboration
// signals feed depersonalization, and steady output feeds
// accomplishment.
type githubScorer struct {
	cls           *timeclass.Classifier
	loc           *time.Location
	clusterWindow time.Duration
	sweetLow      float64
	sweetHigh     float64
}

func (s githubScorer) score(part model.Partition, win *model.EngineerWindow) map[model.Dimension]model.SubScore {
	commits := part.Commits
	prs := part.PullRequests
	reviews := part.Reviews
	if len(commits)+len(prs)+len(reviews) == 0 {
		return nil
	}

	weeks := win.Weeks()
	out := make(map[model.Dimension]model.SubScore, 3)

	var ee metricSet
	if n := len(commits); n > 0 {
		var afterHours, weekend int
		timestamps := make([]time.Time, 0, n)
		for _, e := range commits {
			timestamps = append(timestamps, e.Timestamp)
			if s.cls.AfterHours(e.Timestamp) {
				afterHours++
			}
			if s.cls.Weekend(e.Timestamp) {
				weekend++
			}
		}
		ee.add("after_hours_commits", float64(afterHours)/float64(n)*20)
		ee.add("weekend_commits", float64(weekend)/float64(n)*25)
		ee.add("commit_clustering", clustering.Ratio(timestamps, s.clusterWindow)*10)
	}
	if sub, ok := ee.subScore(model.SourceGitHub); ok {
		out[model.DimExhaustion] = sub
	}

	var dp metricSet
	if switches, pairs := repoSwitches(commits); pairs > 0 {
		dp.add("repo_switching", float64(switches)/float64(pairs)*10)
	}
	if len(commits) > 0 {
		ratio := float64(len(prs)) / float64(len(commits))
		var v float64
		switch {
		case ratio >= 0.30:
			v = 0
		case ratio >= 0.15:
			v = 2
		case ratio >= 0.05:
			v = 5
		default:
			v = 8
		}
		dp.add("pr_per_commit", v)
	}
	if n := len(reviews); n > 0 {
		var comments int
		for _, e := range reviews {
			if e.Review != nil {
				comments += e.Review.Comments
			}
		}
		mean := float64(comments) / float64(n)
		var v float64
		switch {
		case mean >= 3:
			v = 0
		case mean >= 1:
			v = 3
		case mean > 0:
			v = 5
		default:
			v = 8
		}
		dp.add("review_engagement", v)
	}
	if sub, ok := dp.subScore(model.SourceGitHub); ok {
		out[model.DimDepersonalization] = sub
	}

	var pa metricSet
	perWeek := float64(len(commits)) / weeks
	var cadence float64
	switch {
	case perWeek >= s.sweetLow && perWeek <= s.sweetHigh:
		cadence = 8
	case perWeek >= 1 && perWeek <= 15:
		cadence = 5
	case perWeek > 0:
		cadence = 3
	}
	pa.add("commit_cadence", cadence)
	pa.add("pr_rate", float64(len(prs))/weeks*4)
	var active float64
	switch ratio := s.activeDayRatio(commits, win); {
	case ratio >= 0.6:
		active = 8
	case ratio >= 0.3:
		active = 6
	case ratio > 0:
		active = 3
	}
	pa.add("active_days", active)
	if sub, ok := pa.subScore(model.SourceGitHub); ok {
		out[model.DimAccomplishment] = sub
	}

	return out
}

// repoSwitches counts consecutive commit pairs that land in different
// repositories, over commits ordered by time.
func repoSwitches(commits []model.Event) (switches, pairs int) {
	if len(commits) < 2 {
		return 0, 0
	}
	ordered := make([]model.Event, len(commits))
	copy(ordered, commits)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Timestamp.Before(ordered[j].Timestamp) })

	for i := 1; i < len(ordered); i++ {
		prev, cur := ordered[i-1].Commit, ordered[i].Commit
		if prev == nil || cur == nil {
			continue
		}
		pairs++
		if prev.Repo != cur.Repo {
			switches++
		}
	}
	return switches, pairs
}

// activeDayRatio is the fraction of period days with at least one
// commit, in the engineer's local calendar.
func (s githubScorer) activeDayRatio(commits []model.Event, win *model.EngineerWindow) float64 {
	if len(commits) == 0 {
		return 0
	}
	days := make(map[string]bool)
	for _, e := range commits {
		days[e.Timestamp.In(s.loc).Format("2006-01-02")] = true
	}
	total := win.Days()
	if total <= 0 {
		return 0
	}
	return float64(len(days)) / total
}
