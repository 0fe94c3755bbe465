package repositories

import (
	"context"
	"encoding/json"

	"staffhub/internal/domain/models"
)

// MirrorRepository persists the admin-scoped duplicates of employee records.
type MirrorRepository interface {
	// Set upserts a mirror record keyed by (company, collection, document)
	Set(ctx context.Context, companyID, collectionName, documentID string, data json.RawMessage) error

	// Delete removes a mirror record. Deleting an absent record is a
	// success: deletes are idempotent at the store layer.
	Delete(ctx context.Context, companyID, collectionName, documentID string) error

	// List returns mirror records for one tenant collection, newest first
	List(ctx context.Context, companyID, collectionName string) ([]models.MirrorRecord, error)
}
