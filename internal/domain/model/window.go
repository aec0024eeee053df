package model

import (
	"fmt"
	"time"
)

// EngineerWindow is the full event set for one engineer inside the
// analysis period. The period length is the same for every engineer in
// a run so scores stay comparable.
type EngineerWindow struct {
	EngineerID  string
	Timezone    string // IANA identifier, e.g. "America/Toronto"
	PeriodStart time.Time
	PeriodEnd   time.Time
	Events      []Event

	// ResponsePatternScore is the chat response-pattern indicator
	// pre-scored on a 0-10 scale by the Slack normalizer. Nil when
	// Slack data is absent.
	ResponsePatternScore *float64
}

// Partition groups a window's events by kind.
type Partition struct {
	Incidents    []Event
	Commits      []Event
	PullRequests []Event
	Reviews      []Event
	Messages     []Event
}

// Partition splits the window's events by kind, preserving order.
func (w *EngineerWindow) Partition() Partition {
	var p Partition
	for _, e := range w.Events {
		switch e.Kind {
		case KindIncident:
			p.Incidents = append(p.Incidents, e)
		case KindCommit:
			p.Commits = append(p.Commits, e)
		case KindPullRequest:
			p.PullRequests = append(p.PullRequests, e)
		case KindReview:
			p.Reviews = append(p.Reviews, e)
		case KindMessage:
			p.Messages = append(p.Messages, e)
		}
	}
	return p
}

// Days returns the period length in days.
func (w *EngineerWindow) Days() float64 {
	return w.PeriodEnd.Sub(w.PeriodStart).Hours() / 24
}

// Weeks returns the period length in weeks.
func (w *EngineerWindow) Weeks() float64 {
	return w.Days() / 7
}

// Location resolves the window's IANA timezone. Load failures are
// returned unchanged so callers see the real cause.
func (w *EngineerWindow) Location() (*time.Location, error) {
	return time.LoadLocation(w.Timezone)
}

// Validate checks the window invariants before scoring.
func (w *EngineerWindow) Validate() error {
	if w.EngineerID == "" {
		return ErrEmptyEngineerID
	}
	if !w.PeriodStart.Before(w.PeriodEnd) {
		return fmt.Errorf("%w: start %s, end %s", ErrInvalidPeriod,
			w.PeriodStart.Format(time.RFC3339), w.PeriodEnd.Format(time.RFC3339))
	}
	if _, err := w.Location(); err != nil {
		return err
	}
	for i := range w.Events {
		ts := w.Events[i].Timestamp
		if ts.Before(w.PeriodStart) || ts.After(w.PeriodEnd) {
			return fmt.Errorf("%w: event %s at %s", ErrEventOutsidePeriod,
				w.Events[i].ID, ts.Format(time.RFC3339))
		}
	}
	return nil
}
