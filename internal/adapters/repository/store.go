// Package repository defines the burnout result store interfaces and
// their in-memory and SQLite implementations.
package repository

import (
	"context"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/types"
)

// Store provides read/write access to the current run's results.
type Store interface {
	// Put stores the latest result for an engineer, replacing any
	// previous one.
	Put(ctx context.Context, result model.BurnoutResult) error

	// Get returns the stored result for an engineer.
	// Returns ErrNotFound when the engineer has no result.
	Get(ctx context.Context, engineerID string) (model.BurnoutResult, error)

	// TopN returns the top n entries ranked by score, highest risk
	// first. n <= 0 is ErrInvalidLimit.
	TopN(ctx context.Context, n int) ([]types.Entry, error)

	// Rank returns the leaderboard entry for one engineer.
	Rank(ctx context.Context, engineerID string) (types.Entry, error)

	// Count returns the number of engineers with stored results.
	Count(ctx context.Context) int
}
