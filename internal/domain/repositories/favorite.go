package repositories

import (
	"context"

	"staffhub/internal/domain/models"
)

// FavoriteRepository persists the derived favourites index.
type FavoriteRepository interface {
	// Create inserts a favourite. The store enforces uniqueness of
	// (company_id, employee_id, original_id); a duplicate insert returns
	// a *domain.ConflictError.
	Create(ctx context.Context, rec *models.FavoriteRecord) error

	List(ctx context.Context, scope models.Scope) ([]models.FavoriteRecord, error)

	// Delete removes a favourite by its own id (not the original id)
	Delete(ctx context.Context, scope models.Scope, id string) error

	// DeleteByOriginalID removes every favourite referencing an original
	// record. Returns the ids of the removed favourites.
	DeleteByOriginalID(ctx context.Context, scope models.Scope, originalID string) ([]string, error)
}
