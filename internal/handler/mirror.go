package handler

import (
	"log/slog"
	"net/http"

	"staffhub/internal/domain/services"
	"staffhub/internal/httputil"
)

// MirrorHandler applies replication tasks to the admin mirror.
// The route sits behind the service-key middleware, not employee auth.
type MirrorHandler struct {
	mirrorService services.MirrorService
	logger        *slog.Logger
}

// NewMirrorHandler creates a new mirror handler
func NewMirrorHandler(mirrorService services.MirrorService, logger *slog.Logger) *MirrorHandler {
	return &MirrorHandler{
		mirrorService: mirrorService,
		logger:        logger,
	}
}

// Apply performs one mirror set or delete
// POST /api/admin/mirror
func (h *MirrorHandler) Apply(w http.ResponseWriter, r *http.Request) {
	var req services.ApplyMirrorRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.mirrorService.Apply(r.Context(), &req); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "applied"})
}

// List returns the mirrored records for one tenant collection
// GET /api/admin/mirror?company_id=...&collection=...
func (h *MirrorHandler) List(w http.ResponseWriter, r *http.Request) {
	companyID := r.URL.Query().Get("company_id")
	collection := r.URL.Query().Get("collection")

	records, err := h.mirrorService.ListMirror(r.Context(), companyID, collection)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{"records": records})
}
