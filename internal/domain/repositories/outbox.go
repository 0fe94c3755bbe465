package repositories

import (
	"context"
	"time"

	"staffhub/internal/domain/models"
)

// OutboxRepository persists queued mirror replication tasks. Enqueue is
// expected to run inside the same transaction as the primary write so a
// committed record always has a matching task.
type OutboxRepository interface {
	Enqueue(ctx context.Context, task *models.SyncTask) error

	// Due claims pending tasks whose next attempt time has passed,
	// oldest first, up to limit. A claimed task is not handed to a
	// concurrent caller; MarkDelivered or MarkFailed releases it.
	Due(ctx context.Context, limit int) ([]models.SyncTask, error)

	// ListFailed returns exhausted tasks for one tenant, oldest first
	ListFailed(ctx context.Context, companyID string) ([]models.SyncTask, error)

	// ListRecent returns the most recent tasks for one tenant, any state
	ListRecent(ctx context.Context, companyID string, limit int) ([]models.SyncTask, error)

	MarkDelivered(ctx context.Context, id int64) error

	// MarkFailed records a delivery failure. When final is true the task
	// leaves the worker's schedule and waits for a manual retry.
	MarkFailed(ctx context.Context, id int64, lastError string, nextAttempt time.Time, final bool) error
}
