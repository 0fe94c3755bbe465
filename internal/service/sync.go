package service

import (
	"context"
	"log/slog"
	"time"

	"staffhub/internal/domain"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/repositories"
	"staffhub/internal/domain/services"
)

// SyncDeliverer applies one replication task to the admin mirror.
type SyncDeliverer interface {
	Deliver(ctx context.Context, task *models.SyncTask) error
}

// syncService implements the SyncService interface
type syncService struct {
	outbox    repositories.OutboxRepository
	deliverer SyncDeliverer
	logger    *slog.Logger
}

// NewSyncService creates a new sync service
func NewSyncService(outbox repositories.OutboxRepository, deliverer SyncDeliverer, logger *slog.Logger) services.SyncService {
	return &syncService{
		outbox:    outbox,
		deliverer: deliverer,
		logger:    logger,
	}
}

// Status returns the most recent sync tasks for one tenant
func (s *syncService) Status(ctx context.Context, companyID string, limit int) ([]models.SyncTask, error) {
	tasks, err := s.outbox.ListRecent(ctx, companyID, limit)
	if err != nil {
		s.logger.Error("sync status query failed", "company_id", companyID, "error", err)
		return nil, &domain.StorageError{Op: "failed to load sync status", Err: err}
	}
	return tasks, nil
}

// RetryFailed sequentially replays every exhausted task for one tenant.
// Each task is delivered and marked individually; one failure does not stop
// the replay of the rest.
func (s *syncService) RetryFailed(ctx context.Context, companyID string) (*models.RetrySummary, error) {
	tasks, err := s.outbox.ListFailed(ctx, companyID)
	if err != nil {
		s.logger.Error("failed task query failed", "company_id", companyID, "error", err)
		return nil, &domain.StorageError{Op: "failed to load sync status", Err: err}
	}

	summary := &models.RetrySummary{Total: len(tasks)}
	for i := range tasks {
		task := &tasks[i]
		if err := s.deliverer.Deliver(ctx, task); err != nil {
			summary.Failed++
			s.logger.Warn("manual retry failed",
				"task_id", task.ID,
				"collection", task.CollectionName,
				"document_id", task.DocumentID,
				"error", err,
			)
			if markErr := s.outbox.MarkFailed(ctx, task.ID, err.Error(), time.Now().UTC(), true); markErr != nil {
				s.logger.Error("mark failed errored", "task_id", task.ID, "error", markErr)
			}
			continue
		}

		summary.Successful++
		if err := s.outbox.MarkDelivered(ctx, task.ID); err != nil {
			s.logger.Error("mark delivered errored", "task_id", task.ID, "error", err)
		}
	}

	s.logger.Info("manual retry finished",
		"company_id", companyID,
		"total", summary.Total,
		"successful", summary.Successful,
		"failed", summary.Failed,
	)

	return summary, nil
}
