// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/adapters/repository"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/types"
)

// Dependencies required by HTTP handlers. Using an interface bundle
// keeps the handler layer loosely coupled to implementations in other
// packages.
type Dependencies interface {
	// StartRun loads cached payloads and enqueues an analysis run.
	StartRun(ctx context.Context, ov types.RunOverrides) (types.RunSummary, error)

	// Read operations expose the risk leaderboard and stored results.
	TopN(ctx context.Context, n int) ([]Entry, error)
	Rank(ctx context.Context, engineerID string) (Entry, error)
	Result(ctx context.Context, engineerID string) (model.BurnoutResult, error)
}

// Entry mirrors the read shape returned by leaderboard queries.
type Entry = types.Entry

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	analyzeHandler     *AnalyzeHandler
	leaderboardHandler *LeaderboardHandler
	engineerHandler    *EngineerHandler
	dashboardHandler   *dashboardHandler
}

// NewServer creates a new API server with all handlers. maxLimit caps
// the leaderboard page size.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		analyzeHandler:     NewAnalyzeHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		engineerHandler:    NewEngineerHandler(deps),
		dashboardHandler:   newDashboardHandler(),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/dashboard", s.dashboardHandler.HandleDashboard)
	mux.HandleFunc("/api/v1/analyze", MetricsMiddleware(s.analyzeHandler.HandleAnalyze, "analyze"))
	mux.HandleFunc("/api/v1/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/api/v1/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/api/v1/engineers/", MetricsMiddleware(s.engineerHandler.HandleGetEngineer, "engineers"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound translates the repository's not-found sentinel to 404.
func isNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound)
}
