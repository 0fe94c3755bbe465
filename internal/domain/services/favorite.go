package services

import (
	"context"

	"staffhub/internal/domain/models"
)

// FavoriteService handles the derived favourites index
type FavoriteService interface {
	// AddFavourite inserts a favourite referencing an original record.
	// At most one favourite per original per employee; a duplicate returns
	// a conflict error.
	AddFavourite(ctx context.Context, scope models.Scope, req *AddFavouriteRequest) (*models.FavoriteRecord, error)

	ListFavourites(ctx context.Context, scope models.Scope) ([]models.FavoriteRecord, error)

	// RemoveFavourite deletes by the favourite's own id
	RemoveFavourite(ctx context.Context, scope models.Scope, id string) error
}

// AddFavouriteRequest references the original record to favourite
type AddFavouriteRequest struct {
	ID   string `json:"id"`   // original record id (required)
	Type string `json:"type"` // images|audios|videos|documents|links (required)
}
