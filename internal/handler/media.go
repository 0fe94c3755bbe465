package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strings"

	"staffhub/internal/config"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/services"
	"staffhub/internal/httputil"
)

// MediaHandler handles media and document HTTP requests
type MediaHandler struct {
	mediaService services.MediaService
	logger       *slog.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(mediaService services.MediaService, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
		logger:       logger,
	}
}

// Upload accepts a multipart file upload and creates a media record
// POST /api/media
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)

	r.Body = http.MaxBytesReader(w, r.Body, config.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "file field is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "failed to read file")
		return
	}

	req := &services.UploadMediaRequest{
		FileName:        header.Filename,
		ContentType:     header.Header.Get("Content-Type"),
		Data:            data,
		Title:           r.FormValue("title"),
		SubmitterName:   r.FormValue("submitter_name"),
		Category:        r.FormValue("category"),
		Tags:            parseTags(r.FormValue("tags")),
		Notes:           r.FormValue("notes"),
		TextData:        r.FormValue("text_data"),
		Role:            httputil.GetRole(r),
		DocumentGroupID: r.FormValue("document_group_id"),
	}

	rec, err := h.mediaService.UploadMedia(r.Context(), scope, req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, rec)
}

// List returns records of one kind
// GET /api/media?kind=images
func (h *MediaHandler) List(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)
	kind := models.MediaKind(r.URL.Query().Get("kind"))

	records, err := h.mediaService.ListMedia(r.Context(), scope, kind)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, records)
}

// Delete removes a record, its stored asset and any favourites referencing it
// DELETE /api/media/{id}
func (h *MediaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "record id is required")
		return
	}

	if err := h.mediaService.DeleteMedia(r.Context(), scope, id); err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}

// Counts returns record counts across all five sub-collections
// GET /api/media/counts
func (h *MediaHandler) Counts(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)

	counts, err := h.mediaService.MediaCounts(r.Context(), scope)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, counts)
}

// AddComment appends a comment and returns the full updated list
// POST /api/media/{id}/comments
func (h *MediaHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)
	id := r.PathValue("id")
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, "record id is required")
		return
	}

	var body struct {
		Comment    string `json:"comment"`
		Collection string `json:"collection"`
	}
	if err := httputil.ParseJSON(w, r, &body); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	comments, err := h.mediaService.AddComment(r.Context(), scope, &services.AddCommentRequest{
		DocumentID: id,
		Comment:    body.Comment,
		Collection: body.Collection,
	})
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"id":       id,
		"comments": comments,
	})
}

// parseTags splits a comma-separated tag field, dropping empties
func parseTags(raw string) []string {
	if raw == "" {
		return nil
	}

	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}
