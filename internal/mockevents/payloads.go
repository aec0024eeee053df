package mockevents

// Payload document shapes mirror what the real collectors cache: a
// JSON:API document for users and incidents, per-user activity maps
// for GitHub and Slack.

type userDoc struct {
	Data []userRecord `json:"data"`
}

type userRecord struct {
	ID         string         `json:"id"`
	Attributes userAttributes `json:"attributes"`
}

type userAttributes struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	TimeZone string `json:"time_zone"`
}

type incidentDoc struct {
	Data []incidentRecord `json:"data"`
}

type incidentRecord struct {
	ID         string             `json:"id"`
	Attributes incidentAttributes `json:"attributes"`
}

type incidentAttributes struct {
	StartedAt      string       `json:"started_at"`
	AcknowledgedAt string       `json:"acknowledged_at,omitempty"`
	ResolvedAt     string       `json:"resolved_at,omitempty"`
	Severity       severityWrap `json:"severity"`
	User           reporterWrap `json:"user"`
	Escalated      bool         `json:"escalated"`
	Responders     int          `json:"responders"`
	Postmortem     bool         `json:"postmortem_published"`
	StatusUpdates  []string     `json:"status_updates,omitempty"`
}

type severityWrap struct {
	Data severityData `json:"data"`
}

type severityData struct {
	Attributes severityAttributes `json:"attributes"`
}

type severityAttributes struct {
	Severity string `json:"severity"`
}

type reporterWrap struct {
	Data reporterData `json:"data"`
}

type reporterData struct {
	Attributes reporterAttributes `json:"attributes"`
}

type reporterAttributes struct {
	Email string `json:"email"`
}

type githubDoc struct {
	Users map[string]githubActivity `json:"users"`
}

type githubActivity struct {
	Commits      []commitRecord `json:"commits"`
	PullRequests []prRecord     `json:"pull_requests"`
	Reviews      []reviewRecord `json:"reviews"`
}

type commitRecord struct {
	SHA  string `json:"sha"`
	Repo string `json:"repo"`
	Date string `json:"date"`
}

type prRecord struct {
	Number    int    `json:"number"`
	Repo      string `json:"repo"`
	CreatedAt string `json:"created_at"`
	Merged    bool   `json:"merged"`
}

type reviewRecord struct {
	Repo        string `json:"repo"`
	SubmittedAt string `json:"submitted_at"`
	Comments    int    `json:"comments"`
}

type slackDoc struct {
	Users map[string]slackActivity `json:"users"`
}

type slackActivity struct {
	Messages             []messageRecord `json:"messages"`
	ResponsePatternScore float64         `json:"response_pattern_score"`
}

type messageRecord struct {
	TS        string `json:"ts"`
	ChannelID string `json:"channel_id"`
	Text      string `json:"text"`
	ThreadTS  string `json:"thread_ts,omitempty"`
}
