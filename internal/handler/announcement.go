package handler

import (
	"log/slog"
	"net/http"

	"staffhub/internal/domain"
	"staffhub/internal/domain/services"
	"staffhub/internal/httputil"
)

// AnnouncementHandler handles announcement HTTP requests
type AnnouncementHandler struct {
	annService services.AnnouncementService
	logger     *slog.Logger
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(annService services.AnnouncementService, logger *slog.Logger) *AnnouncementHandler {
	return &AnnouncementHandler{
		annService: annService,
		logger:     logger,
	}
}

// Create posts a tenant-wide announcement. Admin role only.
// POST /api/announcements
func (h *AnnouncementHandler) Create(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)
	if httputil.GetRole(r) != "admin" {
		handleError(w, domain.ErrForbidden)
		return
	}

	var req services.CreateAnnouncementRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	a, err := h.annService.CreateAnnouncement(r.Context(), scope.CompanyID, scope.EmployeeID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, a)
}

// List returns announcements for the caller's tenant, newest first
// GET /api/announcements
func (h *AnnouncementHandler) List(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)

	announcements, err := h.annService.ListAnnouncements(r.Context(), scope.CompanyID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, announcements)
}

// Delete removes one announcement. Admin role only.
// DELETE /api/announcements/{id}
func (h *AnnouncementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)
	if httputil.GetRole(r) != "admin" {
		handleError(w, domain.ErrForbidden)
		return
	}

	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "announcement id is required")
		return
	}

	if err := h.annService.DeleteAnnouncement(r.Context(), scope.CompanyID, id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
