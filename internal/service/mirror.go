package service

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"staffhub/internal/domain"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/repositories"
	"staffhub/internal/domain/services"
)

// mirrorService implements the MirrorService interface
type mirrorService struct {
	repo   repositories.MirrorRepository
	logger *slog.Logger
}

// NewMirrorService creates a new mirror service
func NewMirrorService(repo repositories.MirrorRepository, logger *slog.Logger) services.MirrorService {
	return &mirrorService{repo: repo, logger: logger}
}

// Apply performs one replication set or delete against the mirror store
func (s *mirrorService) Apply(ctx context.Context, req *services.ApplyMirrorRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.CompanyID, validation.Required),
		validation.Field(&req.CollectionName, validation.Required),
		validation.Field(&req.DocumentID, validation.Required),
		validation.Field(&req.Operation, validation.Required, validation.In(models.SyncOpSet, models.SyncOpDelete)),
	)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	switch req.Operation {
	case models.SyncOpSet:
		if len(req.Data) == 0 {
			return fmt.Errorf("%w: set requires a record snapshot", domain.ErrValidation)
		}
		if err := s.repo.Set(ctx, req.CompanyID, req.CollectionName, req.DocumentID, req.Data); err != nil {
			s.logger.Error("mirror set failed", "collection", req.CollectionName, "document_id", req.DocumentID, "error", err)
			return &domain.StorageError{Op: "failed to apply sync", Err: err}
		}
	case models.SyncOpDelete:
		if err := s.repo.Delete(ctx, req.CompanyID, req.CollectionName, req.DocumentID); err != nil {
			s.logger.Error("mirror delete failed", "collection", req.CollectionName, "document_id", req.DocumentID, "error", err)
			return &domain.StorageError{Op: "failed to apply sync", Err: err}
		}
	}

	return nil
}

// ListMirror returns one tenant collection's mirrored records
func (s *mirrorService) ListMirror(ctx context.Context, companyID, collectionName string) ([]models.MirrorRecord, error) {
	if companyID == "" || collectionName == "" {
		return nil, fmt.Errorf("%w: company_id and collection are required", domain.ErrValidation)
	}

	records, err := s.repo.List(ctx, companyID, collectionName)
	if err != nil {
		s.logger.Error("mirror list failed", "collection", collectionName, "error", err)
		return nil, &domain.StorageError{Op: "failed to load records", Err: err}
	}
	return records, nil
}
