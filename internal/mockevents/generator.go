package mockevents

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/adapters/sources"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	archetypeDivisor   = 10
)

// Engineer archetypes. The divisor roll maps onto these so the
// population skews toward steady engineers with a burned-out tail,
// which gives the leaderboard a realistic spread of tiers.
const (
	caseSteady      = iota // healthy baseline, business-hours work
	caseSteadyAlt          // second steady slot, makes steady most common
	caseSteadyThird        // third steady slot
	caseOverloaded         // heavy load, some after-hours spill
	caseOverloadedAlt
	caseFirefighter // escalated sev1 pages at night and weekends
	caseQuiet       // barely any activity
	caseNightOwl    // commits and messages land late at night
	caseNightOwlAlt
	caseRandom // anything goes
)

// Per-archetype event count ranges.
const (
	steadyIncidentMax      = 2
	steadyCommitMin        = 8
	steadyCommitRange      = 10
	steadyMessageMin       = 20
	steadyMessageRange     = 30
	overloadedIncidentMin  = 5
	overloadedIncidentMax  = 5
	overloadedCommitMin    = 30
	overloadedCommitRange  = 25
	overloadedMessageMin   = 60
	overloadedMessageRange = 60
	firefighterIncidentMin = 4
	firefighterIncidentMax = 5
	quietMessageMax        = 4
	nightOwlCommitMin      = 15
	nightOwlCommitRange    = 15
	nightOwlMessageMin     = 25
	nightOwlMessageRange   = 35
	randomEventMax         = 12
)

// Response pattern score bands per archetype.
const (
	calmPatternMin       = 1.0
	calmPatternRange     = 2.5
	stressedPatternMin   = 6.0
	stressedPatternRange = 3.5
)

// Daytime and after-hours clock windows used for synthetic timestamps.
const (
	businessHourStart = 9
	businessHourSpan  = 8
	lateHourStart     = 21
	lateHourSpan      = 8
	hoursPerDay       = 24
)

var firstNames = []string{
	"Ava", "Noah", "Mia", "Liam", "Zoe", "Ethan", "Ivy", "Owen",
	"Ruby", "Leo", "Nora", "Finn", "Isla", "Jude", "Eara", "Milo",
}

var repoNames = []string{
	"platform/api", "platform/worker", "infra/terraform", "web/console",
}

var calmTexts = []string{
	"merged, thanks for the review",
	"looks good to me, shipping it",
	"great catch, fixed in the follow-up",
	"happy to pair on this tomorrow",
	"deploy went smoothly",
}

var stressedTexts = []string{
	"another urgent page, I am exhausted",
	"still stuck on this outage, need help asap",
	"completely swamped, the deadline pressure is brutal",
	"so tired of firefighting, this is overwhelming",
	"can't keep up, feeling burned out",
}

// engineerProfile pairs a synthetic engineer with the archetype that
// drives their activity generation.
type engineerProfile struct {
	email     string
	name      string
	timezone  string
	archetype int
}

// randomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func randomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// randomInt returns a random int in [0, n) using crypto/rand.
func randomInt(n int) int {
	if n <= 0 {
		return 0
	}
	v, _ := rand.Int(rand.Reader, big.NewInt(int64(n)))
	return int(v.Int64())
}

func pick(items []string) string {
	return items[randomInt(len(items))]
}

// generatePayloads writes the four collector payload files for a
// synthetic engineering org into config.PayloadDir.
func generatePayloads(ctx context.Context, config *Config, stats *Stats) error {
	log := logger.Get().Named("mockevents")
	log.Info(ctx, "generating synthetic payloads",
		logger.Int("engineers", config.Engineers),
		logger.Int("days", config.Days),
		logger.String("dir", config.PayloadDir))

	periodEnd := time.Now().UTC()
	periodStart := periodEnd.AddDate(0, 0, -config.Days)

	timezones := []string{"UTC", "America/New_York", "Europe/Berlin", "Asia/Tokyo"}

	users := userDoc{Data: make([]userRecord, 0, config.Engineers)}
	// Keep the data slice non-nil so an all-quiet org still marshals
	// as an empty array the parser accepts.
	incidents := incidentDoc{Data: []incidentRecord{}}
	github := githubDoc{Users: make(map[string]githubActivity, config.Engineers)}
	slack := slackDoc{Users: make(map[string]slackActivity, config.Engineers)}

	for i := 0; i < config.Engineers; i++ {
		name := firstNames[i%len(firstNames)]
		profile := engineerProfile{
			email:     fmt.Sprintf("%s.%d@example.com", strings.ToLower(name), i),
			name:      fmt.Sprintf("%s Example", name),
			timezone:  timezones[i%len(timezones)],
			archetype: randomInt(archetypeDivisor),
		}

		users.Data = append(users.Data, userRecord{
			ID: uuid.NewString(),
			Attributes: userAttributes{
				Email:    profile.email,
				FullName: profile.name,
				TimeZone: profile.timezone,
			},
		})

		incidents.Data = append(incidents.Data, generateIncidents(profile, periodStart, config.Days, stats)...)
		github.Users[profile.email] = generateGitHubActivity(profile, periodStart, config.Days, stats)
		slack.Users[profile.email] = generateSlackActivity(profile, periodStart, config.Days, stats)
	}
	stats.EngineersGenerated = config.Engineers

	writes := map[string]any{
		sources.UsersFile:     users,
		sources.IncidentsFile: incidents,
		sources.GitHubFile:    github,
		sources.SlackFile:     slack,
	}
	for file, doc := range writes {
		if err := sources.WritePayload(filepath.Join(config.PayloadDir, file), doc); err != nil {
			return err
		}
	}

	log.Info(ctx, "payloads written",
		logger.Int("incidents", stats.IncidentsGenerated),
		logger.Int("commits", stats.CommitsGenerated),
		logger.Int("pullRequests", stats.PullRequestsGenerated),
		logger.Int("reviews", stats.ReviewsGenerated),
		logger.Int("messages", stats.MessagesGenerated))
	return nil
}

// generateIncidents produces the incident slice for one engineer.
func generateIncidents(p engineerProfile, periodStart time.Time, days int, stats *Stats) []incidentRecord {
	var count int
	afterHours := false
	severity := "sev3"
	escalated := false
	resolved := true

	switch p.archetype {
	case caseSteady, caseSteadyAlt, caseSteadyThird:
		count = randomInt(steadyIncidentMax + 1)
	case caseOverloaded, caseOverloadedAlt:
		count = overloadedIncidentMin + randomInt(overloadedIncidentMax)
		afterHours = randomFloat() < 0.5
		severity = "sev2"
		resolved = randomFloat() < 0.6
	case caseFirefighter:
		count = firefighterIncidentMin + randomInt(firefighterIncidentMax)
		afterHours = true
		severity = "sev1"
		escalated = true
		resolved = randomFloat() < 0.4
	case caseQuiet:
		count = 0
	case caseNightOwl, caseNightOwlAlt:
		count = randomInt(steadyIncidentMax + 1)
		afterHours = true
	default:
		count = randomInt(randomEventMax)
		afterHours = randomFloat() < 0.3
		escalated = randomFloat() < 0.2
		resolved = randomFloat() < 0.7
	}

	records := make([]incidentRecord, 0, count)
	for i := 0; i < count; i++ {
		startedAt := randomTimestamp(periodStart, days, afterHours)
		attrs := incidentAttributes{
			StartedAt:  startedAt.Format(time.RFC3339),
			Severity:   severityWrap{Data: severityData{Attributes: severityAttributes{Severity: severity}}},
			User:       reporterWrap{Data: reporterData{Attributes: reporterAttributes{Email: p.email}}},
			Escalated:  escalated,
			Responders: 1 + randomInt(4),
		}
		ack := startedAt.Add(time.Duration(1+randomInt(20)) * time.Minute)
		attrs.AcknowledgedAt = ack.Format(time.RFC3339)
		if resolved {
			res := ack.Add(time.Duration(10+randomInt(300)) * time.Minute)
			attrs.ResolvedAt = res.Format(time.RFC3339)
			attrs.Postmortem = severity != "sev3" && randomFloat() < 0.8
			attrs.StatusUpdates = []string{"investigating", "identified", "resolved"}
		} else {
			attrs.StatusUpdates = []string{"investigating"}
		}
		records = append(records, incidentRecord{ID: uuid.NewString(), Attributes: attrs})
	}
	stats.IncidentsGenerated += len(records)
	return records
}

// generateGitHubActivity produces commits, pull requests, and reviews
// for one engineer.
func generateGitHubActivity(p engineerProfile, periodStart time.Time, days int, stats *Stats) githubActivity {
	var commits, prs, reviews int
	afterHours := false

	switch p.archetype {
	case caseSteady, caseSteadyAlt, caseSteadyThird:
		commits = steadyCommitMin + randomInt(steadyCommitRange)
		prs = 2 + randomInt(4)
		reviews = 3 + randomInt(5)
	case caseOverloaded, caseOverloadedAlt:
		commits = overloadedCommitMin + randomInt(overloadedCommitRange)
		prs = 5 + randomInt(6)
		reviews = 1 + randomInt(3)
		afterHours = randomFloat() < 0.5
	case caseFirefighter:
		commits = 5 + randomInt(8)
		prs = 1 + randomInt(3)
		afterHours = true
	case caseQuiet:
		commits = randomInt(3)
	case caseNightOwl, caseNightOwlAlt:
		commits = nightOwlCommitMin + randomInt(nightOwlCommitRange)
		prs = 2 + randomInt(4)
		reviews = 1 + randomInt(3)
		afterHours = true
	default:
		commits = randomInt(randomEventMax * 2)
		prs = randomInt(6)
		reviews = randomInt(6)
	}

	activity := githubActivity{
		Commits:      make([]commitRecord, 0, commits),
		PullRequests: make([]prRecord, 0, prs),
		Reviews:      make([]reviewRecord, 0, reviews),
	}
	for i := 0; i < commits; i++ {
		activity.Commits = append(activity.Commits, commitRecord{
			SHA:  uuid.NewString(),
			Repo: pick(repoNames),
			Date: randomTimestamp(periodStart, days, afterHours).Format(time.RFC3339),
		})
	}
	for i := 0; i < prs; i++ {
		activity.PullRequests = append(activity.PullRequests, prRecord{
			Number:    1 + randomInt(9000),
			Repo:      pick(repoNames),
			CreatedAt: randomTimestamp(periodStart, days, afterHours).Format(time.RFC3339),
			Merged:    randomFloat() < 0.8,
		})
	}
	for i := 0; i < reviews; i++ {
		activity.Reviews = append(activity.Reviews, reviewRecord{
			Repo:        pick(repoNames),
			SubmittedAt: randomTimestamp(periodStart, days, false).Format(time.RFC3339),
			Comments:    randomInt(12),
		})
	}
	stats.CommitsGenerated += len(activity.Commits)
	stats.PullRequestsGenerated += len(activity.PullRequests)
	stats.ReviewsGenerated += len(activity.Reviews)
	return activity
}

// generateSlackActivity produces messages and a response pattern score
// for one engineer. Stressed archetypes lean on overload vocabulary so
// sentiment analysis has something to find.
func generateSlackActivity(p engineerProfile, periodStart time.Time, days int, stats *Stats) slackActivity {
	var count int
	afterHours := false
	stressed := false
	pattern := calmPatternMin + randomFloat()*calmPatternRange

	switch p.archetype {
	case caseSteady, caseSteadyAlt, caseSteadyThird:
		count = steadyMessageMin + randomInt(steadyMessageRange)
	case caseOverloaded, caseOverloadedAlt:
		count = overloadedMessageMin + randomInt(overloadedMessageRange)
		afterHours = randomFloat() < 0.5
		stressed = true
		pattern = stressedPatternMin + randomFloat()*stressedPatternRange
	case caseFirefighter:
		count = steadyMessageMin + randomInt(steadyMessageRange)
		afterHours = true
		stressed = true
		pattern = stressedPatternMin + randomFloat()*stressedPatternRange
	case caseQuiet:
		count = randomInt(quietMessageMax)
	case caseNightOwl, caseNightOwlAlt:
		count = nightOwlMessageMin + randomInt(nightOwlMessageRange)
		afterHours = true
	default:
		count = randomInt(randomEventMax * 4)
		stressed = randomFloat() < 0.3
	}

	channels := []string{"C" + uuid.NewString()[:8], "C" + uuid.NewString()[:8], "D" + uuid.NewString()[:8]}
	activity := slackActivity{
		Messages:             make([]messageRecord, 0, count),
		ResponsePatternScore: pattern,
	}
	for i := 0; i < count; i++ {
		text := pick(calmTexts)
		if stressed && randomFloat() < 0.6 {
			text = pick(stressedTexts)
		}
		ts := randomTimestamp(periodStart, days, afterHours)
		msg := messageRecord{
			TS:        fmt.Sprintf("%d.%06d", ts.Unix(), randomInt(randomFloatDivisor)),
			ChannelID: pick(channels),
			Text:      text,
		}
		if randomFloat() < 0.3 {
			msg.ThreadTS = msg.TS
		}
		activity.Messages = append(activity.Messages, msg)
	}
	stats.MessagesGenerated += len(activity.Messages)
	return activity
}

// randomTimestamp picks a moment inside the analysis period, biased
// toward either business hours or late-night hours. Day zero and the
// final partial day are avoided so generated events never race the
// period boundaries.
func randomTimestamp(periodStart time.Time, days int, afterHours bool) time.Time {
	dayRange := days - 1
	if dayRange < 1 {
		dayRange = 1
	}
	day := 1 + randomInt(dayRange)

	var hour int
	if afterHours {
		hour = (lateHourStart + randomInt(lateHourSpan)) % hoursPerDay
	} else {
		hour = businessHourStart + randomInt(businessHourSpan)
	}
	minute := randomInt(60)
	second := randomInt(60)

	base := periodStart.AddDate(0, 0, day)
	return time.Date(base.Year(), base.Month(), base.Day(), hour, minute, second, 0, time.UTC)
}
