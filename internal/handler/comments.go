package handler

import (
	"log/slog"
	"net/http"

	"staffhub/internal/domain/services"
	"staffhub/internal/handler/sse"
	"staffhub/internal/httputil"
	"staffhub/internal/service"
)

// CommentStreamHandler serves live comment updates over SSE.
// Each connection receives the current comment list immediately, then the
// full updated list on every append until the client disconnects.
type CommentStreamHandler struct {
	mediaService services.MediaService
	broker       *service.CommentBroker
	config       *sse.Config
	logger       *slog.Logger
}

// NewCommentStreamHandler creates a new comment stream handler
func NewCommentStreamHandler(mediaService services.MediaService, broker *service.CommentBroker, config *sse.Config, logger *slog.Logger) *CommentStreamHandler {
	if config == nil {
		config = sse.DefaultConfig()
	}
	return &CommentStreamHandler{
		mediaService: mediaService,
		broker:       broker,
		config:       config,
		logger:       logger,
	}
}

// Stream subscribes one client to a document's comment thread
// GET /api/media/{id}/comments/stream
func (h *CommentStreamHandler) Stream(w http.ResponseWriter, r *http.Request) {
	scope := httputil.GetScope(r)
	documentID := r.PathValue("id")
	if documentID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "record id is required")
		return
	}

	// Resolve the current list before upgrading to a stream so a bad id
	// still gets a regular error response.
	current, err := h.mediaService.GetComments(r.Context(), scope, documentID)
	if err != nil {
		handleError(w, err)
		return
	}

	// Subscribe before the initial write: an append racing the connection
	// setup lands in the channel instead of being missed.
	updates, cancel := h.broker.Subscribe(documentID)
	defer cancel()

	writer, ok := sse.NewEventWriter(w, documentID)
	if !ok {
		httputil.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	if err := writer.WriteComments(current); err != nil {
		h.logger.Debug("initial comment write failed", "document_id", documentID, "error", err)
		return
	}

	keepAlive := sse.NewTickerKeepAlive(h.config.KeepAliveInterval)
	keepAliveDone := keepAlive.Start(writer, h.logger)
	defer keepAlive.Stop()

	h.logger.Debug("comment stream opened", "document_id", documentID)

	for {
		select {
		case comments, open := <-updates:
			if !open {
				return
			}
			if err := writer.WriteComments(comments); err != nil {
				h.logger.Debug("comment stream write failed", "document_id", documentID, "error", err)
				return
			}

		case <-keepAliveDone:
			// Keep-alive detected a dropped connection
			return

		case <-r.Context().Done():
			h.logger.Debug("comment stream closed", "document_id", documentID)
			return
		}
	}
}
