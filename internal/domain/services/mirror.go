package services

import (
	"context"
	"encoding/json"

	"staffhub/internal/domain/models"
)

// MirrorService applies replication tasks to the admin-scoped mirror and
// exposes it for reading. The mirror is an independent copy: nothing here
// reconciles it against the primary records.
type MirrorService interface {
	// Apply performs one set or delete. Deletes of absent documents
	// succeed, which keeps replay harmless.
	Apply(ctx context.Context, req *ApplyMirrorRequest) error

	// ListMirror returns one tenant collection's mirrored records
	ListMirror(ctx context.Context, companyID, collectionName string) ([]models.MirrorRecord, error)
}

// ApplyMirrorRequest is one replication unit received from the sync worker.
type ApplyMirrorRequest struct {
	CompanyID      string               `json:"company_id"`
	CollectionName string               `json:"collection_name"`
	DocumentID     string               `json:"document_id"`
	Operation      models.SyncOperation `json:"operation"`
	Data           json.RawMessage      `json:"data,omitempty"`
}
