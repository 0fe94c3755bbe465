package services

import (
	"context"

	"staffhub/internal/domain/models"
)

// MediaService handles media/document business logic
type MediaService interface {
	// UploadMedia stores the binary in the asset store, then writes a
	// MediaRecord. Upload failure short-circuits before any write.
	UploadMedia(ctx context.Context, scope models.Scope, req *UploadMediaRequest) (*models.MediaRecord, error)

	// ListMedia lists records of one kind for the data browser
	ListMedia(ctx context.Context, scope models.Scope, kind models.MediaKind) ([]models.MediaRecord, error)

	// DeleteMedia removes the remote asset (best-effort), the record, any
	// favourite referencing it, and queues the mirror delete.
	DeleteMedia(ctx context.Context, scope models.Scope, id string) error

	// AddComment appends a comment and returns the full updated list
	AddComment(ctx context.Context, scope models.Scope, req *AddCommentRequest) ([]string, error)

	// GetComments returns the current comment list for a media or link
	// record. The record kind is derived from the id prefix.
	GetComments(ctx context.Context, scope models.Scope, id string) ([]string, error)

	// MediaCounts returns one-shot counts across all five sub-collections
	MediaCounts(ctx context.Context, scope models.Scope) (*models.MediaCounts, error)
}

// UploadMediaRequest represents a media upload submission
type UploadMediaRequest struct {
	FileName      string `json:"file_name"`
	ContentType   string `json:"content_type"`
	Data          []byte `json:"-"`
	Title         string `json:"title"`
	SubmitterName string `json:"submitter_name"`
	Category      string `json:"category"`
	Tags          []string
	Notes         string `json:"notes"`
	TextData      string `json:"text_data"`
	Role          string `json:"-"` // from auth context, not the form

	// DocumentGroupID groups a multi-file document upload. Empty means a
	// fresh group is generated for document-kind files.
	DocumentGroupID string `json:"document_group_id"`
}

// AddCommentRequest appends one comment to a media or link record
type AddCommentRequest struct {
	DocumentID string `json:"document_id"`
	Comment    string `json:"comment"`
	// Collection is the kind the record lives in: images|audios|videos|links
	Collection string `json:"collection"`
}
