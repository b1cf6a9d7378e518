package handlers

import (
	"net/http"
	"strconv"

	"repair-backend/internal/changelog"
	"repair-backend/internal/models"
	"repair-backend/pkg/utils"
)

// ChangeLogHandler is the audit view. It reads the sink the core only ever
// appends to.
type ChangeLogHandler struct {
	Log changelog.Lister
}

func NewChangeLogHandler(log changelog.Lister) *ChangeLogHandler {
	return &ChangeLogHandler{Log: log}
}

// ListEntries returns recent change log entries, newest first
func (h *ChangeLogHandler) ListEntries(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := h.Log.List(r.Context(), limit)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []models.ChangeLogEntry{}
	}
	utils.JSON(w, http.StatusOK, entries)
}
