// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	service "github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/app"
	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/types"
)

// analyzeRequest mirrors the OpenAPI schema for POST /api/v1/analyze.
// All fields are optional; absent fields keep the configured defaults.
type analyzeRequest struct {
	Days          int   `json:"days"`
	IncludeGitHub *bool `json:"include_github"`
	IncludeSlack  *bool `json:"include_slack"`
}

func (a analyzeRequest) validate() error {
	if a.Days < 0 {
		return errors.New("days must be positive")
	}
	return nil
}

// AnalyzeHandler handles analysis run requests.
type AnalyzeHandler struct {
	deps Dependencies
}

// NewAnalyzeHandler creates a new analyze handler.
func NewAnalyzeHandler(deps Dependencies) *AnalyzeHandler {
	return &AnalyzeHandler{deps: deps}
}

// HandleAnalyze handles POST /api/v1/analyze requests. An empty body
// runs with the configured defaults.
func (h *AnalyzeHandler) HandleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return
	}

	summary, err := h.deps.StartRun(r.Context(), types.RunOverrides{
		Days:          req.Days,
		IncludeGitHub: req.IncludeGitHub,
		IncludeSlack:  req.IncludeSlack,
	})
	if err != nil {
		if errors.Is(err, service.ErrQueueFull) {
			writeError(w, http.StatusTooManyRequests, "backpressure", ErrBackpressure)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusAccepted, summary)
}
