// Package model contains domain models passed between layers.
package model

import "time"

// EventKind identifies the origin and shape of an activity event.
type EventKind string

// Event kinds produced by the source normalizers.
const (
	KindIncident    EventKind = "incident"
	KindCommit      EventKind = "commit"
	KindPullRequest EventKind = "pull_request"
	KindReview      EventKind = "review"
	KindMessage     EventKind = "message"
)

// Event is a single timestamped activity item for one engineer.
// Events are immutable once produced by a normalizer; the scoring
// engine only reads them. Exactly one of the detail pointers is set,
// matching Kind.
type Event struct {
	ID         string    // source-assigned id, used for de-duplication
	EngineerID string    // subject engineer identifier
	Kind       EventKind // which source partition the event belongs to
	Timestamp  time.Time // instant; local interpretation uses the window timezone

	Incident    *IncidentDetails
	Commit      *CommitDetails
	PullRequest *PullRequestDetails
	Review      *ReviewDetails
	Message     *MessageDetails
}

// IncidentDetails carries the incident-response fields the scorers read.
// Timestamp on the enclosing Event is the incident start.
type IncidentDetails struct {
	Severity       string     // sev1..sev4
	AcknowledgedAt *time.Time // first response by the engineer, nil if never acked
	ResolvedAt     *time.Time // nil while open or abandoned
	Escalated      bool       // handed up to another tier
	Responders     int        // distinct responders including the engineer
	Postmortem     bool       // a postmortem or runbook update was authored
	Updates        []string   // status update notes authored by the engineer
}

// Resolved reports whether the incident reached resolution.
func (d *IncidentDetails) Resolved() bool { return d.ResolvedAt != nil }

// HighSeverity reports whether the incident is sev1 or sev2.
func (d *IncidentDetails) HighSeverity() bool {
	return d.Severity == "sev1" || d.Severity == "sev2"
}

// CommitDetails carries the commit fields the scorers read.
type CommitDetails struct {
	Repo string // repository the commit landed in
}

// PullRequestDetails carries the pull-request fields the scorers read.
type PullRequestDetails struct {
	Repo   string
	Merged bool
}

// ReviewDetails describes a code review authored by the engineer.
type ReviewDetails struct {
	Repo     string
	Comments int // review comments left on the reviewed PR
}

// MessageDetails carries the chat-message fields the scorers read.
type MessageDetails struct {
	ChannelID string // direct messages use channel ids starting with "D"
	InThread  bool   // message was a threaded reply
	Text      string
}

// DirectMessage reports whether the message was sent in a DM channel.
func (d *MessageDetails) DirectMessage() bool {
	return len(d.ChannelID) > 0 && d.ChannelID[0] == 'D'
}
