// Package sources normalizes cached collector payloads into the
// engineer windows the scoring engine consumes. Each source has its
// own payload shape: Rootly incidents arrive as JSON:API documents,
// GitHub and Slack activity as per-user maps keyed by email. The
// collectors themselves live outside this repository; this package
// only reads what they cached.
package sources

import (
	"context"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/logger"
)

// Well-known payload file names inside the payload directory.
const (
	UsersFile     = "users.json"
	IncidentsFile = "incidents.json"
	GitHubFile    = "github.json"
	SlackFile     = "slack.json"
)

// Engineer is one subject of analysis, identified by email.
type Engineer struct {
	Email    string
	Name     string
	Timezone string
}

// Loader assembles engineer windows from a payload directory.
type Loader struct {
	includeGitHub bool
	includeSlack  bool
	log           logger.Logger
}

// LoaderOption applies a configuration option to the Loader.
type LoaderOption func(*Loader)

// WithGitHub enables reading the GitHub activity payload.
func WithGitHub(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.includeGitHub = enabled
	}
}

// WithSlack enables reading the Slack activity payload.
func WithSlack(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.includeSlack = enabled
	}
}

// NewLoader creates a Loader. Incident data is always read; the
// optional sources are opt-in to match the analysis configuration.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		log: logger.Get().Named("sources"),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the payload directory and builds one window per known
// engineer covering [periodStart, periodEnd]. Engineers without any
// events still get a window; the engine degrades them to
// zero-evidence scores rather than dropping them from the report.
func (l *Loader) Load(ctx context.Context, dir string, periodStart, periodEnd time.Time) ([]model.EngineerWindow, error) {
	usersRaw, err := ReadPayload(filepath.Join(dir, UsersFile))
	if err != nil {
		return nil, errors.Wrap(err, "users payload")
	}
	engineers, err := ParseUsers(usersRaw)
	if err != nil {
		return nil, err
	}
	if len(engineers) == 0 {
		return nil, errors.Errorf("users payload %s lists no engineers", filepath.Join(dir, UsersFile))
	}

	incidentsRaw, err := ReadPayload(filepath.Join(dir, IncidentsFile))
	if err != nil {
		return nil, errors.Wrap(err, "incidents payload")
	}
	incidents, err := ParseIncidents(incidentsRaw, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	eventsByEngineer := make(map[string][]model.Event, len(engineers))
	for _, ev := range incidents {
		eventsByEngineer[ev.EngineerID] = append(eventsByEngineer[ev.EngineerID], ev)
	}

	if l.includeGitHub {
		raw, err := ReadPayload(filepath.Join(dir, GitHubFile))
		if err != nil {
			return nil, errors.Wrap(err, "github payload")
		}
		events, err := ParseGitHub(raw, periodStart, periodEnd)
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			eventsByEngineer[ev.EngineerID] = append(eventsByEngineer[ev.EngineerID], ev)
		}
	}

	patterns := map[string]float64{}
	if l.includeSlack {
		raw, err := ReadPayload(filepath.Join(dir, SlackFile))
		if err != nil {
			return nil, errors.Wrap(err, "slack payload")
		}
		events, scores, err := ParseSlack(raw, periodStart, periodEnd)
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			eventsByEngineer[ev.EngineerID] = append(eventsByEngineer[ev.EngineerID], ev)
		}
		patterns = scores
	}

	windows := make([]model.EngineerWindow, 0, len(engineers))
	for _, eng := range engineers {
		win := model.EngineerWindow{
			EngineerID:  eng.Email,
			Timezone:    eng.Timezone,
			PeriodStart: periodStart,
			PeriodEnd:   periodEnd,
			Events:      eventsByEngineer[eng.Email],
		}
		if score, ok := patterns[eng.Email]; ok {
			s := score
			win.ResponsePatternScore = &s
		}
		windows = append(windows, win)
		l.log.Debug(ctx, "built window",
			logger.String("engineer", eng.Email),
			logger.Int("events", len(win.Events)),
		)
	}
	return windows, nil
}
