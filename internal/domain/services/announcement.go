package services

import (
	"context"

	"staffhub/internal/domain/models"
)

// AnnouncementService handles tenant-wide announcements
type AnnouncementService interface {
	CreateAnnouncement(ctx context.Context, companyID, createdBy string, req *CreateAnnouncementRequest) (*models.Announcement, error)
	ListAnnouncements(ctx context.Context, companyID string) ([]models.Announcement, error)
	DeleteAnnouncement(ctx context.Context, companyID, id string) error
}

// CreateAnnouncementRequest represents a new announcement
type CreateAnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}
