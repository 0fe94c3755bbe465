package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"staffhub/internal/config"
	"staffhub/internal/domain"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/repositories"
	"staffhub/internal/domain/services"
)

// announcementService implements the AnnouncementService interface
type announcementService struct {
	repo      repositories.AnnouncementRepository
	outbox    repositories.OutboxRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewAnnouncementService creates a new announcement service
func NewAnnouncementService(
	repo repositories.AnnouncementRepository,
	outbox repositories.OutboxRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.AnnouncementService {
	return &announcementService{
		repo:      repo,
		outbox:    outbox,
		txManager: txManager,
		logger:    logger,
	}
}

// CreateAnnouncement validates and stores a tenant-wide announcement
func (s *announcementService) CreateAnnouncement(ctx context.Context, companyID, createdBy string, req *services.CreateAnnouncementRequest) (*models.Announcement, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&req.Body, validation.Required),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	a := &models.Announcement{
		ID:        newRecordID("announcement"),
		CompanyID: companyID,
		Title:     req.Title,
		Body:      req.Body,
		CreatedBy: createdBy,
		CreatedAt: time.Now().UTC(),
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Create(txCtx, a); err != nil {
			return err
		}
		return enqueueSet(txCtx, s.outbox, companyID, models.AnnouncementCollection, a.ID, a)
	})
	if err != nil {
		s.logger.Error("announcement create failed", "error", err)
		return nil, &domain.StorageError{Op: "failed to save announcement", Err: err}
	}

	return a, nil
}

// ListAnnouncements lists announcements for one tenant, newest first
func (s *announcementService) ListAnnouncements(ctx context.Context, companyID string) ([]models.Announcement, error) {
	announcements, err := s.repo.List(ctx, companyID)
	if err != nil {
		s.logger.Error("list announcements failed", "company_id", companyID, "error", err)
		return nil, &domain.StorageError{Op: "failed to load records", Err: err}
	}
	return announcements, nil
}

// DeleteAnnouncement removes one announcement and queues the mirror delete
func (s *announcementService) DeleteAnnouncement(ctx context.Context, companyID, id string) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.repo.Delete(txCtx, companyID, id); err != nil {
			return err
		}
		return enqueueDelete(txCtx, s.outbox, companyID, models.AnnouncementCollection, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.logger.Error("announcement delete failed", "id", id, "error", err)
		return &domain.StorageError{Op: "delete failed", Err: err}
	}
	return nil
}
