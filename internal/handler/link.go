package handler

import (
	"log/slog"
	"net/http"

	"staffhub/internal/domain/services"
	"staffhub/internal/httputil"
)

// LinkHandler handles link record HTTP requests
type LinkHandler struct {
	linkService services.LinkService
	logger      *slog.Logger
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(linkService services.LinkService, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{
		linkService: linkService,
		logger:      logger,
	}
}

// Add creates a link record
// POST /api/links
func (h *LinkHandler) Add(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)

	var req services.AddLinkRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}
	req.Role = httputil.GetRole(r)

	rec, err := h.linkService.AddLink(r.Context(), scope, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, rec)
}

// List returns link records, newest first
// GET /api/links
func (h *LinkHandler) List(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)

	links, err := h.linkService.ListLinks(r.Context(), scope)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, links)
}

// Delete removes a link record
// DELETE /api/links/{id}
func (h *LinkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "link id is required")
		return
	}

	if err := h.linkService.DeleteLink(r.Context(), scope, id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
