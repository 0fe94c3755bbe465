package handler

import (
	"log/slog"
	"net/http"

	"staffhub/internal/domain/services"
	"staffhub/internal/httputil"
)

// FavoriteHandler handles favourite HTTP requests
type FavoriteHandler struct {
	favService services.FavoriteService
	logger     *slog.Logger
}

// NewFavoriteHandler creates a new favourite handler
func NewFavoriteHandler(favService services.FavoriteService, logger *slog.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favService: favService,
		logger:     logger,
	}
}

// Add favourites an existing media or link record
// POST /api/favourites
// Returns 409 if the record is already favourited by this employee
func (h *FavoriteHandler) Add(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)

	var req services.AddFavouriteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	rec, err := h.favService.AddFavourite(r.Context(), scope, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, rec)
}

// List returns favourites, newest first
// GET /api/favourites
func (h *FavoriteHandler) List(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)

	favourites, err := h.favService.ListFavourites(r.Context(), scope)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, favourites)
}

// Delete removes a favourite by its own id; the original record stays
// DELETE /api/favourites/{id}
func (h *FavoriteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "favourite id is required")
		return
	}

	if err := h.favService.RemoveFavourite(r.Context(), scope, id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
