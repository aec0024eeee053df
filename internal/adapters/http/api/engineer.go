// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"strings"

	"github.com/Rootly-AI-Labs/Rootly-burnout-detector/internal/domain/model"
)

// engineerResponse pairs the full scored result with its current rank.
type engineerResponse struct {
	Rank   int                 `json:"rank"`
	Result model.BurnoutResult `json:"result"`
}

// EngineerHandler handles per-engineer result requests.
type EngineerHandler struct {
	deps Dependencies
}

// NewEngineerHandler creates a new engineer handler.
func NewEngineerHandler(deps Dependencies) *EngineerHandler {
	return &EngineerHandler{deps: deps}
}

// HandleGetEngineer handles GET /api/v1/engineers/{id} requests.
func (h *EngineerHandler) HandleGetEngineer(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/engineers/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	result, err := h.deps.Result(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	entry, err := h.deps.Rank(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, engineerResponse{Rank: entry.Rank, Result: result})
}
