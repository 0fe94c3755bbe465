package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"staffhub/internal/domain/services"
	"staffhub/internal/httputil"
)

// SyncHandler exposes the mirror replication queue
type SyncHandler struct {
	syncService services.SyncService
	logger      *slog.Logger
}

// NewSyncHandler creates a new sync handler
func NewSyncHandler(syncService services.SyncService, logger *slog.Logger) *SyncHandler {
	return &SyncHandler{
		syncService: syncService,
		logger:      logger,
	}
}

// Status returns the most recent replication tasks for the caller's tenant
// GET /api/sync/status?limit=50
func (h *SyncHandler) Status(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}

	tasks, err := h.syncService.Status(r.Context(), scope.CompanyID, limit)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"tasks": tasks,
	})
}

// RetryFailed replays every exhausted replication task for the tenant
// POST /api/sync/retries
func (h *SyncHandler) RetryFailed(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)

	summary, err := h.syncService.RetryFailed(r.Context(), scope.CompanyID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, summary)
}
