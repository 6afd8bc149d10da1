package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/nerrad567/gray-logic-hub/internal/strategy"
)

// handleListExecutions returns recent strategy executions, newest first.
//
// Query parameters:
//   - observer: only executions by this observer ID
//   - limit: max results (default 10, max 100)
func (s *Server) handleListExecutions(w http.ResponseWriter, r *http.Request) {
	if s.executions == nil {
		writeUnavailable(w, "execution history is not configured")
		return
	}

	limit, ok := queryInt(w, r, "limit")
	if !ok {
		return
	}

	executions, err := s.executions.ListExecutions(r.Context(), r.URL.Query().Get("observer"), limit)
	if err != nil {
		s.logger.Error("failed to list executions", "error", err)
		writeInternalError(w, "failed to list executions")
		return
	}
	if executions == nil {
		executions = []strategy.Execution{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"executions": executions,
		"count":      len(executions),
	})
}

// handleGetExecution returns one execution with its step results.
func (s *Server) handleGetExecution(w http.ResponseWriter, r *http.Request) {
	if s.executions == nil {
		writeUnavailable(w, "execution history is not configured")
		return
	}

	id := chi.URLParam(r, "id")
	exec, err := s.executions.GetExecution(r.Context(), id)
	if err != nil {
		if errors.Is(err, strategy.ErrExecutionNotFound) {
			writeNotFound(w, "execution not found")
			return
		}
		s.logger.Error("failed to get execution", "id", id, "error", err)
		writeInternalError(w, "failed to get execution")
		return
	}
	writeJSON(w, http.StatusOK, exec)
}

// queryInt parses an optional non-negative integer query parameter. A
// missing parameter yields 0; a malformed one writes a 400.
func queryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		writeBadRequest(w, name+" must be a non-negative integer")
		return 0, false
	}
	return v, true
}
