package repositories

import (
	"context"

	"staffhub/internal/domain/models"
)

// MediaRepository persists per-employee media and document records.
type MediaRepository interface {
	// Create inserts a new media record
	Create(ctx context.Context, rec *models.MediaRecord) error

	// GetByID retrieves one record within the employee scope
	GetByID(ctx context.Context, scope models.Scope, id string) (*models.MediaRecord, error)

	// ListByKind lists records of one kind, newest first
	ListByKind(ctx context.Context, scope models.Scope, kind models.MediaKind) ([]models.MediaRecord, error)

	// Delete removes one record. Returns domain.ErrNotFound if absent.
	Delete(ctx context.Context, scope models.Scope, id string) error

	// AppendComment appends a comment string and returns the full updated
	// comment list. Append-only, no dedup.
	AppendComment(ctx context.Context, scope models.Scope, id, comment string) ([]string, error)

	// CountByKind returns record counts per media kind for one employee
	CountByKind(ctx context.Context, scope models.Scope) (map[models.MediaKind]int, error)
}
