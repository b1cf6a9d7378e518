package handlers

import (
	"net/http"

	"repair-backend/internal/services"
	"repair-backend/internal/store"
	"repair-backend/pkg/utils"
)

type BackupHandler struct {
	Store  *store.RecordStore
	Backup *services.BackupService // nil when no bucket is configured
}

func NewBackupHandler(st *store.RecordStore, backup *services.BackupService) *BackupHandler {
	return &BackupHandler{Store: st, Backup: backup}
}

// ExportSnapshot returns the full working set, read-only
func (h *BackupHandler) ExportSnapshot(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.Store.Export())
}

// RunBackup uploads the current snapshot to the backup bucket
func (h *BackupHandler) RunBackup(w http.ResponseWriter, r *http.Request) {
	if h.Backup == nil {
		utils.Error(w, http.StatusServiceUnavailable, "backup bucket not configured")
		return
	}

	key, err := h.Backup.Run(r.Context())
	if err != nil {
		utils.Error(w, http.StatusBadGateway, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"key": key})
}
