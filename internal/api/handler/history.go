package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/iconidentify/postcraft/internal/history"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// HistoryReader lists recent pipeline runs.
type HistoryReader interface {
	Recent(limit int) ([]history.Entry, error)
}

// HistoryHandler serves the run history.
type HistoryHandler struct {
	log    HistoryReader
	logger *slog.Logger
}

// NewHistoryHandler creates a new history handler.
func NewHistoryHandler(log HistoryReader, logger *slog.Logger) *HistoryHandler {
	return &HistoryHandler{
		log:    log,
		logger: logger,
	}
}

// HistoryResponse lists runs, newest first.
type HistoryResponse struct {
	Runs  []history.Entry `json:"runs"`
	Limit int             `json:"limit"`
}

// List handles GET /api/history
func (h *HistoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if l := r.URL.Query().Get("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= maxHistoryLimit {
			limit = parsed
		}
	}

	runs, err := h.log.Recent(limit)
	if err != nil {
		h.logger.Error("list history failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to read history")
		return
	}
	if runs == nil {
		runs = []history.Entry{}
	}

	writeJSON(w, http.StatusOK, HistoryResponse{Runs: runs, Limit: limit})
}
