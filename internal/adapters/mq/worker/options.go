// Package worker defines worker contracts for asynchronous window
// scoring and result updates.
package worker

import (
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/logger"
)

// Option applies a configuration option to the ScoringWorker.
type Option func(*ScoringWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *ScoringWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(logger logger.Logger) Option {
	return func(w *ScoringWorker) {
		if logger != nil {
			w.logger = logger
		}
	}
}
