package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"staffhub/internal/config"
	"staffhub/internal/domain"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/repositories"
	"staffhub/internal/domain/services"
)

// linkService implements the LinkService interface
type linkService struct {
	linkRepo  repositories.LinkRepository
	favRepo   repositories.FavoriteRepository
	outbox    repositories.OutboxRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewLinkService creates a new link service
func NewLinkService(
	linkRepo repositories.LinkRepository,
	favRepo repositories.FavoriteRepository,
	outbox repositories.OutboxRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.LinkService {
	return &linkService{
		linkRepo:  linkRepo,
		favRepo:   favRepo,
		outbox:    outbox,
		txManager: txManager,
		logger:    logger,
	}
}

// AddLink validates and stores a link record. The submitted linkData value
// becomes the record's url field; the input key does not survive.
func (s *linkService) AddLink(ctx context.Context, scope models.Scope, req *services.AddLinkRequest) (*models.LinkRecord, error) {
	if err := s.validateAddLinkRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := time.Now().UTC()
	rec := &models.LinkRecord{
		ID:            newRecordID("link"),
		CompanyID:     scope.CompanyID,
		EmployeeID:    scope.EmployeeID,
		URL:           req.LinkData,
		Title:         req.Title,
		SubmitterName: req.SubmitterName,
		Category:      req.Category,
		Tags:          req.Tags,
		Notes:         req.Notes,
		CreatedAt:     now,
		UploadedAt:    now,
		Role:          req.Role,
		Comments:      []string{},
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.linkRepo.Create(txCtx, rec); err != nil {
			return err
		}
		return enqueueSet(txCtx, s.outbox, scope.CompanyID, models.LinkCollection, rec.ID, rec)
	})
	if err != nil {
		s.logger.Error("link create failed", "url", req.LinkData, "error", err)
		return nil, &domain.StorageError{Op: "failed to save link", Err: err}
	}

	s.logger.Info("link added", "id", rec.ID, "company_id", scope.CompanyID, "employee_id", scope.EmployeeID)
	return rec, nil
}

// ListLinks lists link records, newest first
func (s *linkService) ListLinks(ctx context.Context, scope models.Scope) ([]models.LinkRecord, error) {
	links, err := s.linkRepo.List(ctx, scope)
	if err != nil {
		s.logger.Error("list links failed", "error", err)
		return nil, &domain.StorageError{Op: "failed to load records", Err: err}
	}
	return links, nil
}

// DeleteLink removes a link record, queues the mirror delete and cascades
// to favourites referencing it.
func (s *linkService) DeleteLink(ctx context.Context, scope models.Scope, id string) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.linkRepo.Delete(txCtx, scope, id); err != nil {
			return err
		}
		return enqueueDelete(txCtx, s.outbox, scope.CompanyID, models.LinkCollection, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.logger.Error("link delete failed", "id", id, "error", err)
		return &domain.StorageError{Op: "delete failed", Err: err}
	}

	ids, err := s.favRepo.DeleteByOriginalID(ctx, scope, id)
	if err != nil {
		s.logger.Warn("favourite cascade failed", "original_id", id, "error", err)
		return nil
	}
	for _, favID := range ids {
		if err := enqueueDelete(ctx, s.outbox, scope.CompanyID, models.FavoriteCollection, favID); err != nil {
			s.logger.Warn("favourite mirror delete enqueue failed", "favourite_id", favID, "error", err)
		}
	}

	return nil
}

func (s *linkService) validateAddLinkRequest(req *services.AddLinkRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.LinkData, validation.Required, is.URL),
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&req.Category, validation.Length(0, config.MaxCategoryLength)),
		validation.Field(&req.Tags, validation.Length(0, config.MaxTagCount)),
	)
}
