package repositories

import (
	"context"

	"staffhub/internal/domain/models"
)

// LinkRepository persists per-employee link records.
type LinkRepository interface {
	Create(ctx context.Context, rec *models.LinkRecord) error
	GetByID(ctx context.Context, scope models.Scope, id string) (*models.LinkRecord, error)
	List(ctx context.Context, scope models.Scope) ([]models.LinkRecord, error)
	Delete(ctx context.Context, scope models.Scope, id string) error

	// AppendComment appends a comment string and returns the full updated list
	AppendComment(ctx context.Context, scope models.Scope, id, comment string) ([]string, error)

	// Count returns the number of link records for one employee
	Count(ctx context.Context, scope models.Scope) (int, error)
}
