package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound     = errors.New("engineer not found")
	ErrInvalidLimit = errors.New("invalid leaderboard limit")
)
