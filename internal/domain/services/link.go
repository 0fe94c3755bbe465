package services

import (
	"context"

	"staffhub/internal/domain/models"
)

// LinkService handles link record business logic
type LinkService interface {
	AddLink(ctx context.Context, scope models.Scope, req *AddLinkRequest) (*models.LinkRecord, error)
	ListLinks(ctx context.Context, scope models.Scope) ([]models.LinkRecord, error)
	DeleteLink(ctx context.Context, scope models.Scope, id string) error
}

// AddLinkRequest represents a link submission. LinkData carries the URL;
// it is stored as the record's url field and the input key is dropped.
type AddLinkRequest struct {
	LinkData      string   `json:"linkData"`
	Title         string   `json:"title"`
	SubmitterName string   `json:"submitter_name"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	Notes         string   `json:"notes"`
	Role          string   `json:"-"`
}
