package repositories

import (
	"context"

	"staffhub/internal/domain/models"
)

// AnnouncementRepository persists tenant-wide announcements.
type AnnouncementRepository interface {
	Create(ctx context.Context, a *models.Announcement) error
	List(ctx context.Context, companyID string) ([]models.Announcement, error)
	Delete(ctx context.Context, companyID, id string) error
}
