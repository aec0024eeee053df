package service

import "errors"

// Service errors.
var (
	// ErrNotStarted is returned when an analysis is requested before
	// the service components are running.
	ErrNotStarted = errors.New("service not started")

	// ErrQueueFull is returned when the job queue rejects a window.
	ErrQueueFull = errors.New("job queue is full")
)
