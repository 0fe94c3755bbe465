package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"staffhub/internal/domain"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/repositories"
	"staffhub/internal/domain/services"
)

// favoriteService implements the FavoriteService interface
type favoriteService struct {
	favRepo   repositories.FavoriteRepository
	mediaRepo repositories.MediaRepository
	linkRepo  repositories.LinkRepository
	outbox    repositories.OutboxRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewFavoriteService creates a new favourite service
func NewFavoriteService(
	favRepo repositories.FavoriteRepository,
	mediaRepo repositories.MediaRepository,
	linkRepo repositories.LinkRepository,
	outbox repositories.OutboxRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) services.FavoriteService {
	return &favoriteService{
		favRepo:   favRepo,
		mediaRepo: mediaRepo,
		linkRepo:  linkRepo,
		outbox:    outbox,
		txManager: txManager,
		logger:    logger,
	}
}

// AddFavourite copies display fields from the original record into a new
// favourite. Uniqueness of (employee, original) is enforced by the store;
// a duplicate surfaces as a conflict without a prior existence read.
func (s *favoriteService) AddFavourite(ctx context.Context, scope models.Scope, req *services.AddFavouriteRequest) (*models.FavoriteRecord, error) {
	if err := s.validateAddFavouriteRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	rec, err := s.buildFavourite(ctx, scope, req)
	if err != nil {
		return nil, err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.favRepo.Create(txCtx, rec); err != nil {
			return err
		}
		return enqueueSet(txCtx, s.outbox, scope.CompanyID, models.FavoriteCollection, rec.ID, rec)
	})
	if err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			return nil, conflict
		}
		s.logger.Error("favourite create failed", "original_id", req.ID, "error", err)
		return nil, &domain.StorageError{Op: "failed to save favourite", Err: err}
	}

	s.logger.Info("favourite added", "id", rec.ID, "original_id", req.ID, "company_id", scope.CompanyID)
	return rec, nil
}

// buildFavourite loads the original record and denormalizes its display
// fields into the favourite entry.
func (s *favoriteService) buildFavourite(ctx context.Context, scope models.Scope, req *services.AddFavouriteRequest) (*models.FavoriteRecord, error) {
	now := time.Now().UTC()
	rec := &models.FavoriteRecord{
		ID:                 newRecordID("favourite"),
		CompanyID:          scope.CompanyID,
		EmployeeID:         scope.EmployeeID,
		OriginalID:         req.ID,
		OriginalType:       req.Type,
		OriginalCollection: "data_" + req.Type,
		FavoriteDate:       now,
		FavoritedBy:        scope.EmployeeID,
	}

	if req.Type == "links" {
		link, err := s.linkRepo.GetByID(ctx, scope, req.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			return nil, &domain.StorageError{Op: "failed to save favourite", Err: err}
		}
		rec.Title = link.Title
		rec.SubmitterName = link.SubmitterName
		rec.Category = link.Category
		rec.AssetURL = link.URL
		rec.UploadedAt = link.UploadedAt
		rec.Role = link.Role
		return rec, nil
	}

	original, err := s.mediaRepo.GetByID(ctx, scope, req.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, &domain.StorageError{Op: "failed to save favourite", Err: err}
	}
	rec.Title = original.Title
	rec.SubmitterName = original.SubmitterName
	rec.Category = original.Category
	rec.AssetURL = original.AssetURL
	rec.FileName = original.FileName
	rec.FileType = original.FileType
	rec.FileSize = original.FileSize
	rec.UploadedAt = original.UploadedAt
	rec.Role = original.Role
	return rec, nil
}

// ListFavourites lists favourites, newest first
func (s *favoriteService) ListFavourites(ctx context.Context, scope models.Scope) ([]models.FavoriteRecord, error) {
	favourites, err := s.favRepo.List(ctx, scope)
	if err != nil {
		s.logger.Error("list favourites failed", "error", err)
		return nil, &domain.StorageError{Op: "failed to load records", Err: err}
	}
	return favourites, nil
}

// RemoveFavourite deletes a favourite by its own id and queues the mirror
// delete. The original record is untouched.
func (s *favoriteService) RemoveFavourite(ctx context.Context, scope models.Scope, id string) error {
	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.favRepo.Delete(txCtx, scope, id); err != nil {
			return err
		}
		return enqueueDelete(txCtx, s.outbox, scope.CompanyID, models.FavoriteCollection, id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.logger.Error("favourite delete failed", "id", id, "error", err)
		return &domain.StorageError{Op: "delete failed", Err: err}
	}
	return nil
}

func (s *favoriteService) validateAddFavouriteRequest(req *services.AddFavouriteRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.ID, validation.Required),
		validation.Field(&req.Type, validation.Required, validation.In("images", "audios", "videos", "documents", "links")),
	)
}
