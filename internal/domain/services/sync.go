package services

import (
	"context"

	"staffhub/internal/domain/models"
)

// SyncService exposes the mirror replication queue to callers: recent task
// state for visibility and a manual replay of exhausted tasks.
type SyncService interface {
	// Status returns the most recent sync tasks for one tenant
	Status(ctx context.Context, companyID string, limit int) ([]models.SyncTask, error)

	// RetryFailed sequentially replays every exhausted task for one tenant
	// and reports how many succeeded. Replay of an already-applied set is
	// harmless; a replayed delete of an absent document counts as success.
	RetryFailed(ctx context.Context, companyID string) (*models.RetrySummary, error)
}
