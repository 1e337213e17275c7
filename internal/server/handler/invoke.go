// Package handler provides HTTP handlers for the gitgrant service.
package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/sevigo/gitgrant/internal/core"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

// InvokeHandler runs the workflow on the state posted by the client.
type InvokeHandler struct {
	runner core.WorkflowRunner
	logger *slog.Logger
}

// NewInvokeHandler creates a new handler that delegates to runner.
func NewInvokeHandler(runner core.WorkflowRunner, logger *slog.Logger) *InvokeHandler {
	return &InvokeHandler{runner: runner, logger: logger}
}

// Handle decodes the workflow state, runs it to completion and writes the
// final state back.
func (h *InvokeHandler) Handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Warn("failed to read request body", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid or missing JSON payload"})
		return
	}

	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid or missing JSON payload"})
		return
	}

	var state core.State
	if err := json.Unmarshal(body, &state); err != nil {
		h.logger.Debug("rejecting invalid workflow state", "error", err)
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid or missing JSON payload"})
		return
	}

	final, err := h.runner.Run(r.Context(), &state)
	if err != nil {
		h.logger.Error("workflow invocation failed", "repo", state.RepoID(), "action", state.Action, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "error while invoking workflow: " + err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, final)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
