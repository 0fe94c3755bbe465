package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"staffhub/internal/classify"
	"staffhub/internal/config"
	"staffhub/internal/domain"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/repositories"
	"staffhub/internal/domain/services"
	"staffhub/internal/storage"
)

// mediaService implements the MediaService interface
type mediaService struct {
	mediaRepo  repositories.MediaRepository
	linkRepo   repositories.LinkRepository
	favRepo    repositories.FavoriteRepository
	outbox     repositories.OutboxRepository
	txManager  repositories.TransactionManager
	assets     storage.AssetStore
	classifier *classify.Classifier
	broker     *CommentBroker
	logger     *slog.Logger
}

// NewMediaService creates a new media service
func NewMediaService(
	mediaRepo repositories.MediaRepository,
	linkRepo repositories.LinkRepository,
	favRepo repositories.FavoriteRepository,
	outbox repositories.OutboxRepository,
	txManager repositories.TransactionManager,
	assets storage.AssetStore,
	classifier *classify.Classifier,
	broker *CommentBroker,
	logger *slog.Logger,
) services.MediaService {
	return &mediaService{
		mediaRepo:  mediaRepo,
		linkRepo:   linkRepo,
		favRepo:    favRepo,
		outbox:     outbox,
		txManager:  txManager,
		assets:     assets,
		classifier: classifier,
		broker:     broker,
		logger:     logger,
	}
}

// UploadMedia stores the binary, then writes the record and queues the
// mirror set in one transaction. An upload failure short-circuits before
// any write; a write failure after a successful upload leaves an orphaned
// asset behind (logged, no compensating delete).
func (s *mediaService) UploadMedia(ctx context.Context, scope models.Scope, req *services.UploadMediaRequest) (*models.MediaRecord, error) {
	if err := s.validateUploadRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	kind := s.classifier.Classify(req.FileName)
	id := newRecordID(string(kind))
	key := assetKey(scope, kind, id, req.FileName)

	asset, err := s.assets.Upload(ctx, key, req.ContentType, req.Data)
	if err != nil {
		s.logger.Error("asset upload failed", "file", req.FileName, "error", err)
		return nil, &domain.StorageError{Op: "upload failed", Err: err}
	}

	rec := &models.MediaRecord{
		ID:                id,
		CompanyID:         scope.CompanyID,
		EmployeeID:        scope.EmployeeID,
		Kind:              kind,
		Title:             req.Title,
		SubmitterName:     req.SubmitterName,
		Category:          req.Category,
		Tags:              req.Tags,
		Notes:             req.Notes,
		TextData:          req.TextData,
		AssetURL:          asset.URL,
		AssetKey:          asset.Key,
		AssetFormat:       asset.Format,
		AssetResourceType: asset.ResourceType,
		AssetBytes:        asset.Bytes,
		FileName:          req.FileName,
		FileType:          req.ContentType,
		FileSize:          int64(len(req.Data)),
		UploadedAt:        time.Now().UTC(),
		Role:              req.Role,
	}

	if kind.HasComments() {
		rec.Comments = []string{}
	} else {
		// Document-kind records group into document sets instead of
		// carrying a comment thread.
		docID := id
		groupID := req.DocumentGroupID
		if groupID == "" {
			groupID = newRecordID("docgroup")
		}
		rec.DocumentID = &docID
		rec.DocumentGroupID = &groupID
	}

	if kind == models.KindImages {
		rec.ThumbnailURL = s.uploadThumbnail(ctx, key, req.Data)
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.mediaRepo.Create(txCtx, rec); err != nil {
			return err
		}
		return enqueueSet(txCtx, s.outbox, scope.CompanyID, kind.CollectionName(), rec.ID, rec)
	})
	if err != nil {
		// The uploaded asset is now orphaned. Deliberately no
		// compensating delete: a dangling object is cheaper than a
		// record pointing at a missing one.
		s.logger.Error("media record write failed after upload",
			"id", id,
			"asset_key", asset.Key,
			"error", err,
		)
		return nil, &domain.StorageError{Op: "upload failed", Err: err}
	}

	s.logger.Info("media uploaded",
		"id", rec.ID,
		"kind", kind,
		"file", req.FileName,
		"bytes", rec.FileSize,
		"company_id", scope.CompanyID,
		"employee_id", scope.EmployeeID,
	)

	// Stored rows keep the empty URL on a private bucket; the response
	// carries a signed link so the uploader can view the file right away.
	s.signAssetURL(ctx, rec)
	return rec, nil
}

// uploadThumbnail generates and stores a preview image. Best-effort: any
// failure returns an empty URL and the original upload stands.
func (s *mediaService) uploadThumbnail(ctx context.Context, originalKey string, data []byte) string {
	thumb, err := storage.MakeThumbnail(data, config.ThumbnailWidth)
	if err != nil {
		s.logger.Warn("thumbnail generation failed", "key", originalKey, "error", err)
		return ""
	}

	asset, err := s.assets.Upload(ctx, thumbnailKey(originalKey), "image/jpeg", thumb)
	if err != nil {
		s.logger.Warn("thumbnail upload failed", "key", originalKey, "error", err)
		return ""
	}

	return asset.URL
}

// ListMedia lists records of one kind for the data browser
func (s *mediaService) ListMedia(ctx context.Context, scope models.Scope, kind models.MediaKind) ([]models.MediaRecord, error) {
	if !models.ValidKind(kind) {
		return nil, fmt.Errorf("%w: unknown media kind %q", domain.ErrValidation, kind)
	}

	records, err := s.mediaRepo.ListByKind(ctx, scope, kind)
	if err != nil {
		s.logger.Error("list media failed", "kind", kind, "error", err)
		return nil, &domain.StorageError{Op: "failed to load records", Err: err}
	}

	for i := range records {
		s.signAssetURL(ctx, &records[i])
	}
	return records, nil
}

// signAssetURL fills in a short-lived download link for records stored in
// a private bucket, where no durable public URL exists. Records uploaded
// with public read keep their stored URL. Best-effort: a signing failure
// leaves the URL empty rather than failing the read.
func (s *mediaService) signAssetURL(ctx context.Context, rec *models.MediaRecord) {
	if rec.AssetURL != "" || rec.AssetKey == "" {
		return
	}

	signed, err := s.assets.DownloadURL(ctx, rec.AssetKey, config.DownloadURLTTL)
	if err != nil {
		s.logger.Warn("asset url signing failed", "id", rec.ID, "key", rec.AssetKey, "error", err)
		return
	}
	rec.AssetURL = signed
}

// DeleteMedia removes the asset (best-effort), the record and its queued
// mirror delete, then cascades to favourites. Only the primary record
// delete surfaces a failure.
func (s *mediaService) DeleteMedia(ctx context.Context, scope models.Scope, id string) error {
	rec, err := s.mediaRepo.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return &domain.StorageError{Op: "delete failed", Err: err}
	}

	// Remote asset cleanup continues on failure: the record delete is the
	// operation whose outcome callers see.
	if rec.AssetKey != "" {
		if err := s.assets.Delete(ctx, rec.AssetKey); err != nil {
			s.logger.Warn("asset delete failed, continuing", "key", rec.AssetKey, "error", err)
		}
	}
	if rec.ThumbnailURL != "" {
		if err := s.assets.Delete(ctx, thumbnailKey(rec.AssetKey)); err != nil {
			s.logger.Warn("thumbnail delete failed, continuing", "key", rec.AssetKey, "error", err)
		}
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.mediaRepo.Delete(txCtx, scope, id); err != nil {
			return err
		}
		return enqueueDelete(txCtx, s.outbox, scope.CompanyID, rec.Kind.CollectionName(), id)
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return err
		}
		s.logger.Error("media delete failed", "id", id, "error", err)
		return &domain.StorageError{Op: "delete failed", Err: err}
	}

	s.cascadeFavourites(ctx, scope, id)

	s.logger.Info("media deleted", "id", id, "kind", rec.Kind, "company_id", scope.CompanyID)
	return nil
}

// cascadeFavourites removes favourites referencing a deleted record and
// queues their mirror deletes. Failures are swallowed: favourite cleanup
// never blocks or rolls back the primary delete.
func (s *mediaService) cascadeFavourites(ctx context.Context, scope models.Scope, originalID string) {
	ids, err := s.favRepo.DeleteByOriginalID(ctx, scope, originalID)
	if err != nil {
		s.logger.Warn("favourite cascade failed", "original_id", originalID, "error", err)
		return
	}

	for _, favID := range ids {
		if err := enqueueDelete(ctx, s.outbox, scope.CompanyID, models.FavoriteCollection, favID); err != nil {
			s.logger.Warn("favourite mirror delete enqueue failed", "favourite_id", favID, "error", err)
		}
	}
}

// AddComment appends a comment, publishes the full updated list to live
// subscribers and queues a mirror refresh of the record.
func (s *mediaService) AddComment(ctx context.Context, scope models.Scope, req *services.AddCommentRequest) ([]string, error) {
	if err := s.validateCommentRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	var comments []string
	var err error
	if req.Collection == "links" {
		comments, err = s.linkRepo.AppendComment(ctx, scope, req.DocumentID, req.Comment)
	} else {
		comments, err = s.mediaRepo.AppendComment(ctx, scope, req.DocumentID, req.Comment)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		s.logger.Error("append comment failed", "document_id", req.DocumentID, "error", err)
		return nil, &domain.StorageError{Op: "failed to add comment", Err: err}
	}

	s.broker.Publish(req.DocumentID, comments)
	s.refreshMirror(ctx, scope, req.DocumentID, req.Collection)

	return comments, nil
}

// GetComments loads the current comment list for one record. Link ids
// carry a "link-" prefix, so the id alone routes the lookup.
func (s *mediaService) GetComments(ctx context.Context, scope models.Scope, id string) ([]string, error) {
	if strings.HasPrefix(id, "link-") {
		rec, err := s.linkRepo.GetByID(ctx, scope, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, err
			}
			return nil, &domain.StorageError{Op: "failed to load comments", Err: err}
		}
		return rec.Comments, nil
	}

	rec, err := s.mediaRepo.GetByID(ctx, scope, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, &domain.StorageError{Op: "failed to load comments", Err: err}
	}
	if !rec.Kind.HasComments() {
		return nil, fmt.Errorf("%w: %s records have no comment thread", domain.ErrValidation, rec.Kind)
	}
	return rec.Comments, nil
}

// refreshMirror re-queues the full record after a comment append so the
// admin copy converges. Best-effort.
func (s *mediaService) refreshMirror(ctx context.Context, scope models.Scope, documentID, collection string) {
	if collection == "links" {
		rec, err := s.linkRepo.GetByID(ctx, scope, documentID)
		if err == nil {
			err = enqueueSet(ctx, s.outbox, scope.CompanyID, models.LinkCollection, rec.ID, rec)
		}
		if err != nil {
			s.logger.Warn("link mirror refresh failed", "document_id", documentID, "error", err)
		}
		return
	}

	rec, err := s.mediaRepo.GetByID(ctx, scope, documentID)
	if err == nil {
		err = enqueueSet(ctx, s.outbox, scope.CompanyID, rec.Kind.CollectionName(), rec.ID, rec)
	}
	if err != nil {
		s.logger.Warn("media mirror refresh failed", "document_id", documentID, "error", err)
	}
}

// MediaCounts returns one-shot counts across all five sub-collections
func (s *mediaService) MediaCounts(ctx context.Context, scope models.Scope) (*models.MediaCounts, error) {
	byKind, err := s.mediaRepo.CountByKind(ctx, scope)
	if err != nil {
		s.logger.Error("media counts failed", "error", err)
		return nil, &domain.StorageError{Op: "failed to load counts", Err: err}
	}

	links, err := s.linkRepo.Count(ctx, scope)
	if err != nil {
		s.logger.Error("link count failed", "error", err)
		return nil, &domain.StorageError{Op: "failed to load counts", Err: err}
	}

	return &models.MediaCounts{
		Images:    byKind[models.KindImages],
		Audios:    byKind[models.KindAudios],
		Videos:    byKind[models.KindVideos],
		Documents: byKind[models.KindDocuments],
		Links:     links,
	}, nil
}

func (s *mediaService) validateUploadRequest(req *services.UploadMediaRequest) error {
	if len(req.Data) == 0 {
		return fmt.Errorf("file content is required")
	}
	if len(req.Data) > config.MaxUploadBytes {
		return fmt.Errorf("file exceeds the %d byte limit", config.MaxUploadBytes)
	}

	return validation.ValidateStruct(req,
		validation.Field(&req.FileName, validation.Required),
		validation.Field(&req.Title, validation.Required, validation.Length(1, config.MaxTitleLength)),
		validation.Field(&req.Category, validation.Length(0, config.MaxCategoryLength)),
		validation.Field(&req.Tags, validation.Length(0, config.MaxTagCount)),
	)
}

func (s *mediaService) validateCommentRequest(req *services.AddCommentRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.DocumentID, validation.Required),
		validation.Field(&req.Comment, validation.Required, validation.Length(1, config.MaxCommentLength)),
		validation.Field(&req.Collection, validation.Required, validation.In("images", "audios", "videos", "links")),
	)
}

// assetKey builds the object key for an uploaded file. The scope prefix
// keeps tenant data separable in the bucket.
func assetKey(scope models.Scope, kind models.MediaKind, id, fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	return path.Join(scope.CompanyID, scope.EmployeeID, string(kind), id) + ext
}

// thumbnailKey derives the preview object key from the original's key
func thumbnailKey(originalKey string) string {
	return path.Join("thumbs", originalKey) + ".jpg"
}
