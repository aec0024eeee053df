package mockevents

import "time"

// HTTP status code constants.
const (
	StatusOK       = 200
	StatusAccepted = 202
)

// Polling configuration for waiting on score publication.
const (
	ScorePollInterval = 500 * time.Millisecond
	ScorePollAttempts = 120
)
