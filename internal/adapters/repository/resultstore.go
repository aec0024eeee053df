package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/types"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/metrics"
)

// ResultStore is an in-memory Store. The engineer population is small
// (a team or an on-call rotation), so a map plus a sort on read is the
// whole implementation; results from a new run replace the previous
// run's entry per engineer.
type ResultStore struct {
	mu      sync.RWMutex
	results map[string]model.BurnoutResult
}

// NewResultStore creates an empty in-memory result store.
func NewResultStore() *ResultStore {
	metrics.UpdateTotalEngineers(0)
	return &ResultStore{
		results: make(map[string]model.BurnoutResult),
	}
}

// Put stores the latest result for an engineer.
func (s *ResultStore) Put(ctx context.Context, result model.BurnoutResult) error {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryUpdateLatency(float64(time.Since(start).Milliseconds()))
	}()

	if result.EngineerID == "" {
		return model.ErrEmptyEngineerID
	}

	s.mu.Lock()
	s.results[result.EngineerID] = result
	total := len(s.results)
	s.mu.Unlock()

	metrics.UpdateTotalEngineers(total)
	return nil
}

// Get returns the stored result for an engineer.
func (s *ResultStore) Get(ctx context.Context, engineerID string) (model.BurnoutResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[engineerID]
	if !ok {
		return model.BurnoutResult{}, ErrNotFound
	}
	return result, nil
}

// TopN returns the n highest-risk engineers.
func (s *ResultStore) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if n <= 0 {
		return nil, ErrInvalidLimit
	}

	entries := s.ranked()
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

// Rank returns the leaderboard entry for one engineer.
func (s *ResultStore) Rank(ctx context.Context, engineerID string) (types.Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	for _, entry := range s.ranked() {
		if entry.EngineerID == engineerID {
			return entry, nil
		}
	}
	return types.Entry{}, ErrNotFound
}

// Count returns the number of engineers with stored results.
func (s *ResultStore) Count(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}

// ranked snapshots the stored results sorted by score descending.
// Ties break on engineer id so ranks are stable between reads.
func (s *ResultStore) ranked() []types.Entry {
	s.mu.RLock()
	entries := make([]types.Entry, 0, len(s.results))
	for _, r := range s.results {
		entries = append(entries, types.Entry{
			EngineerID: r.EngineerID,
			Score:      r.Score,
			Tier:       string(r.Tier),
			Trend:      string(r.Trend),
		})
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].EngineerID < entries[j].EngineerID
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
