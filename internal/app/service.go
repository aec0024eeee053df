// Package service provides the core analysis service that implements
// the dependencies required by the HTTP API and the CLI.
package service

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	jobqueue "github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/adapters/mq/queue"
	workerpool "github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/adapters/mq/worker"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/adapters/repository"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/adapters/sources"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/config"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/dedupe"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/scoring"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/types"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/logger"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/pkg/metrics"
)

// Service wires the analysis pipeline: windows go through the job
// queue to the worker pool, each worker scores with the engine, and
// finished results land in the result store with a trend tag derived
// from period history.
//
// Service itself satisfies the pool's Scorer and Updater contracts so
// the engine can be hot-swapped on config reload without restarting
// the workers.
type Service struct {
	mu sync.RWMutex

	// Core components
	results  repository.Store
	history  *repository.History
	deduper  dedupe.Deduper
	jobQueue jobqueue.Queue
	engine   *scoring.Engine
	pool     *workerpool.Pool

	// Configuration
	workerCount   int
	queueSize     int
	dedupeSize    int
	historyPath   string
	payloadDir    string
	lookbackDays  int
	includeGitHub bool
	includeSlack  bool
	engineOpts    []scoring.Option

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of worker goroutines.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the job queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the event deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithHistoryPath sets the SQLite file used for period history. An
// empty path disables history and trend tagging.
func WithHistoryPath(path string) Option {
	return func(s *Service) {
		s.historyPath = path
	}
}

// WithPayloadDir sets the directory holding cached collector payloads.
func WithPayloadDir(dir string) Option {
	return func(s *Service) {
		s.payloadDir = dir
	}
}

// WithLookbackDays sets the default analysis period length.
func WithLookbackDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.lookbackDays = days
		}
	}
}

// WithGitHubSource toggles the GitHub payload as a default input.
func WithGitHubSource(enabled bool) Option {
	return func(s *Service) {
		s.includeGitHub = enabled
	}
}

// WithSlackSource toggles the Slack payload as a default input.
func WithSlackSource(enabled bool) Option {
	return func(s *Service) {
		s.includeSlack = enabled
	}
}

// WithEngineOptions sets the scoring engine options.
func WithEngineOptions(opts ...scoring.Option) Option {
	return func(s *Service) {
		s.engineOpts = opts
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  runtime.NumCPU() * 2,
		queueSize:    10_000,
		dedupeSize:   50_000,
		payloadDir:   ".cache",
		lookbackDays: 30,
		logger:       nil, // replaced when the service starts
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// OptionsFromConfig maps the loaded configuration onto service options.
func OptionsFromConfig(cfg *config.Config) ([]Option, error) {
	engineOpts, err := EngineOptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	return []Option{
		WithWorkerCount(cfg.WorkerCount),
		WithQueueSize(cfg.QueueSize),
		WithDedupeSize(cfg.DedupeSize),
		WithHistoryPath(cfg.HistoryPath),
		WithPayloadDir(cfg.PayloadDir),
		WithLookbackDays(cfg.LookbackDays),
		WithGitHubSource(cfg.IncludeGitHub),
		WithSlackSource(cfg.IncludeSlack),
		WithEngineOptions(engineOpts...),
	}, nil
}

// EngineOptionsFromConfig maps the scoring knobs of the configuration
// onto engine options. Used on startup and again on config reload.
func EngineOptionsFromConfig(cfg *config.Config) ([]scoring.Option, error) {
	days, err := cfg.Weekdays()
	if err != nil {
		return nil, err
	}

	weights := make(scoring.Weights, len(cfg.SourceWeights))
	for name, weight := range cfg.SourceWeights {
		weights[model.Source(name)] = weight
	}

	enabled := []model.Source{model.SourceIncident}
	if cfg.IncludeGitHub {
		enabled = append(enabled, model.SourceGitHub)
	}
	if cfg.IncludeSlack {
		enabled = append(enabled, model.SourceSlack)
	}

	return []scoring.Option{
		scoring.WithBusinessHours(cfg.BusinessStartHour, cfg.BusinessEndHour),
		scoring.WithBusinessDays(days...),
		scoring.WithClusterWindow(time.Duration(cfg.ClusterWindowHours * float64(time.Hour))),
		scoring.WithCommitSweetSpot(cfg.CommitSweetSpotLow, cfg.CommitSweetSpotHigh),
		scoring.WithStressKeywords(cfg.StressKeywords),
		scoring.WithWeights(weights),
		scoring.WithTrendTolerance(cfg.TrendTolerance),
		scoring.WithSources(enabled...),
	}, nil
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting analysis service...")

	engine, err := scoring.NewEngine(s.engineOpts...)
	if err != nil {
		return errors.Wrap(err, "build scoring engine")
	}
	s.engine = engine

	s.results = repository.NewResultStore()
	s.deduper = dedupe.NewMemoryDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.jobQueue = jobqueue.NewInMemoryQueue(
		jobqueue.WithCapacity(s.queueSize),
		jobqueue.WithBufferSize(s.queueSize),
	)

	if s.historyPath != "" {
		history, err := repository.OpenHistory(s.historyPath)
		if err != nil {
			return errors.Wrap(err, "open history store")
		}
		s.history = history
	}

	s.pool = workerpool.NewPool(s.workerCount, s.jobQueue, s, s)
	s.pool.Start(ctx)

	s.started = true
	s.logger.Info(ctx, "analysis service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.String("historyPath", s.historyPath),
	)

	return nil
}

// Stop gracefully shuts down the service. The pool is stopped outside
// the service lock: draining workers still call ScoreWindow, which
// needs the read side.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	s.mu.Unlock()

	ctx := context.Background()
	s.logger.Info(ctx, "stopping analysis service...")

	if s.pool != nil {
		s.pool.Stop()
	}

	if q, ok := s.jobQueue.(*jobqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	if s.history != nil {
		if err := s.history.Close(); err != nil {
			s.logger.Warn(ctx, "closing history store", logger.Error(err))
		}
	}

	s.logger.Info(ctx, "analysis service stopped")
}

// ApplyConfig rebuilds the scoring engine from a reloaded
// configuration. In-flight jobs finish on the engine they started
// with; everything dequeued afterwards scores on the new one.
func (s *Service) ApplyConfig(ctx context.Context, cfg *config.Config) error {
	opts, err := EngineOptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	engine, err := scoring.NewEngine(opts...)
	if err != nil {
		return errors.Wrap(err, "rebuild scoring engine")
	}

	s.mu.Lock()
	s.engine = engine
	s.engineOpts = opts
	s.mu.Unlock()

	s.logger.Info(ctx, "scoring engine reconfigured")
	return nil
}

// ScoreWindow satisfies the worker Scorer contract, delegating to the
// current engine.
func (s *Service) ScoreWindow(win model.EngineerWindow) (model.BurnoutResult, error) {
	s.mu.RLock()
	engine := s.engine
	s.mu.RUnlock()
	return engine.ScoreWindow(win)
}

// Update satisfies the worker Updater contract. It tags the trend
// against the previous recorded period, stores the result, and appends
// it to history.
func (s *Service) Update(ctx context.Context, runID string, result model.BurnoutResult) error {
	if s.history != nil {
		length := result.PeriodEnd.Sub(result.PeriodStart)
		previous, ok, err := s.history.PreviousScore(ctx, result.EngineerID, result.PeriodEnd, length)
		if err != nil {
			s.logger.Warn(ctx, "looking up previous score",
				logger.String("engineerID", result.EngineerID),
				logger.Error(err),
			)
		} else if ok {
			s.mu.RLock()
			result.Trend = s.engine.ScoreTrend(previous, result.Score)
			s.mu.RUnlock()
		}
	}

	if err := s.results.Put(ctx, result); err != nil {
		return errors.Wrapf(err, "store result for %s", result.EngineerID)
	}

	if s.history != nil {
		if err := s.history.Record(ctx, result); err != nil {
			s.logger.Warn(ctx, "recording history",
				logger.String("engineerID", result.EngineerID),
				logger.Error(err),
			)
		}
	}

	s.updateTierMetrics(ctx)

	s.logger.Debug(ctx, "result landed",
		logger.String("runID", runID),
		logger.String("engineerID", result.EngineerID),
		logger.Float64("score", result.Score),
		logger.String("tier", string(result.Tier)),
		logger.String("trend", string(result.Trend)),
	)
	return nil
}

// Analyze enqueues one scoring job per window and returns the run id
// and the number of windows accepted. Duplicate events inside a run
// are dropped before the window is enqueued; collectors that paginate
// with overlap re-deliver the same event ids.
func (s *Service) Analyze(ctx context.Context, windows []model.EngineerWindow) (string, int, error) {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()
	if !started {
		return "", 0, ErrNotStarted
	}

	runID := uuid.NewString()
	enqueued := 0
	for _, win := range windows {
		if err := win.Validate(); err != nil {
			return runID, enqueued, errors.Wrapf(err, "window for %q", win.EngineerID)
		}
		win.Events = s.dedupeEvents(ctx, runID, win.Events)
		if !s.jobQueue.Enqueue(ctx, jobqueue.Job{RunID: runID, Window: win}) {
			s.unrecordEvents(ctx, runID, win.Events)
			return runID, enqueued, errors.Wrapf(ErrQueueFull, "window for %q", win.EngineerID)
		}
		enqueued++
	}

	metrics.RecordAnalysisCompleted()
	metrics.UpdateQueueSize(s.jobQueue.Len(ctx))

	s.logger.Info(ctx, "analysis run enqueued",
		logger.String("runID", runID),
		logger.Int("windows", enqueued),
	)
	return runID, enqueued, nil
}

// StartRun loads the cached collector payloads and enqueues one
// analysis run over the configured lookback period, with optional
// per-request overrides.
func (s *Service) StartRun(ctx context.Context, ov types.RunOverrides) (types.RunSummary, error) {
	days := s.lookbackDays
	if ov.Days > 0 {
		days = ov.Days
	}
	includeGitHub := s.includeGitHub
	if ov.IncludeGitHub != nil {
		includeGitHub = *ov.IncludeGitHub
	}
	includeSlack := s.includeSlack
	if ov.IncludeSlack != nil {
		includeSlack = *ov.IncludeSlack
	}

	periodEnd := time.Now().UTC()
	periodStart := periodEnd.AddDate(0, 0, -days)

	loader := sources.NewLoader(
		sources.WithGitHub(includeGitHub),
		sources.WithSlack(includeSlack),
	)
	windows, err := loader.Load(ctx, s.payloadDir, periodStart, periodEnd)
	if err != nil {
		return types.RunSummary{}, errors.Wrap(err, "load payloads")
	}

	runID, enqueued, err := s.Analyze(ctx, windows)
	if err != nil {
		return types.RunSummary{}, err
	}
	return types.RunSummary{
		RunID:       runID,
		Windows:     enqueued,
		PeriodStart: periodStart,
		PeriodEnd:   periodEnd,
	}, nil
}

// dedupeEvents drops events already seen within this run. The caller's
// slice is left untouched.
func (s *Service) dedupeEvents(ctx context.Context, runID string, events []model.Event) []model.Event {
	kept := make([]model.Event, 0, len(events))
	for _, ev := range events {
		if ev.ID == "" {
			kept = append(kept, ev)
			continue
		}
		if s.SeenAndRecord(ctx, runID+"/"+ev.ID) {
			continue
		}
		kept = append(kept, ev)
	}
	return kept
}

// SeenAndRecord atomically checks if an event id was seen and records
// it if not. Returns true if the id was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordEventDuplicate()
	}
	return seen
}

// Unrecord removes an event id from the seen list, allowing a retry.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// unrecordEvents releases the run-scoped keys of a window that will
// not be scored, so they stop occupying the bounded seen set.
func (s *Service) unrecordEvents(ctx context.Context, runID string, events []model.Event) {
	for _, ev := range events {
		if ev.ID == "" {
			continue
		}
		s.Unrecord(ctx, runID+"/"+ev.ID)
	}
}

// Pending returns the number of windows still waiting in the queue.
func (s *Service) Pending(ctx context.Context) int {
	return s.jobQueue.Len(ctx)
}

// TopN returns the top N leaderboard entries ordered by score.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	return s.results.TopN(ctx, n)
}

// Rank returns the rank entry for a given engineer id.
func (s *Service) Rank(ctx context.Context, engineerID string) (types.Entry, error) {
	return s.results.Rank(ctx, engineerID)
}

// Result returns the full burnout result for a given engineer id.
func (s *Service) Result(ctx context.Context, engineerID string) (model.BurnoutResult, error) {
	return s.results.Get(ctx, engineerID)
}

// Results returns every stored result ordered by score. Used by the
// report writer after a run drains.
func (s *Service) Results(ctx context.Context) ([]model.BurnoutResult, error) {
	count := s.results.Count(ctx)
	if count == 0 {
		return nil, nil
	}
	entries, err := s.results.TopN(ctx, count)
	if err != nil {
		return nil, err
	}
	out := make([]model.BurnoutResult, 0, len(entries))
	for _, entry := range entries {
		result, err := s.results.Get(ctx, entry.EngineerID)
		if err != nil {
			return nil, err
		}
		out = append(out, result)
	}
	return out, nil
}

// Series returns the recorded period history for an engineer, oldest
// first. Without a history store it returns an empty slice.
func (s *Service) Series(ctx context.Context, engineerID string, limit int) ([]repository.PeriodScore, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.Series(ctx, engineerID, limit)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"queueSize":   s.queueSize,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		queueLen := s.jobQueue.Len(ctx)
		totalEngineers := s.results.Count(ctx)

		stats["queueLength"] = queueLen
		stats["totalEngineers"] = totalEngineers

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateTotalEngineers(totalEngineers)
		metrics.UpdateWorkerCount(s.workerCount)
	}

	return stats
}

// Size returns the current number of entries in the deduper.
func (s *Service) Size() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// updateTierMetrics refreshes the per-tier gauge after a result lands.
func (s *Service) updateTierMetrics(ctx context.Context) {
	counts := map[model.RiskTier]int{
		model.TierLow:    0,
		model.TierMedium: 0,
		model.TierHigh:   0,
	}
	count := s.results.Count(ctx)
	if count == 0 {
		return
	}
	entries, err := s.results.TopN(ctx, count)
	if err != nil {
		return
	}
	for _, entry := range entries {
		counts[model.RiskTier(entry.Tier)]++
	}
	for tier, count := range counts {
		metrics.UpdateEngineersByTier(string(tier), count)
	}
}
