package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffhub/internal/domain"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/repositories"
)

// PostgresOutboxRepository implements the OutboxRepository interface
type PostgresOutboxRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewOutboxRepository creates a new outbox repository
func NewOutboxRepository(config *RepositoryConfig) repositories.OutboxRepository {
	return &PostgresOutboxRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const outboxColumns = `id, company_id, collection_name, document_id, operation, payload,
		state, attempts, COALESCE(last_error, ''), next_attempt_at, created_at, updated_at`

// Enqueue inserts a pending task. Runs on the transaction in ctx when the
// caller enqueues alongside the primary write.
func (r *PostgresOutboxRepository) Enqueue(ctx context.Context, task *models.SyncTask) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (company_id, collection_name, document_id, operation, payload,
		                state, attempts, next_attempt_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'pending', 0, NOW(), NOW(), NOW())
		RETURNING id, created_at, updated_at
	`, r.tables.Outbox)

	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		task.CompanyID,
		task.CollectionName,
		task.DocumentID,
		string(task.Operation),
		[]byte(task.Payload),
	).Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)

	if err != nil {
		return fmt.Errorf("enqueue sync task: %w", err)
	}

	task.State = models.SyncPending
	return nil
}

// Due atomically claims due tasks by moving them to the processing state.
// The claim commits with the statement, so an overlapping drain cannot
// return the same rows; the second branch reclaims tasks a worker left in
// processing when it died mid-delivery (10 minutes comfortably exceeds a
// full batch of 15s HTTP timeouts).
func (r *PostgresOutboxRepository) Due(ctx context.Context, limit int) ([]models.SyncTask, error) {
	query := fmt.Sprintf(`
		WITH claimed AS (
			UPDATE %s
			SET state = 'processing', updated_at = NOW()
			WHERE id IN (
				SELECT id
				FROM %s
				WHERE (state = 'pending' AND next_attempt_at <= NOW())
				   OR (state = 'processing' AND updated_at < NOW() - INTERVAL '10 minutes')
				ORDER BY id ASC
				LIMIT $1
				FOR UPDATE SKIP LOCKED
			)
			RETURNING %s
		)
		SELECT * FROM claimed ORDER BY id ASC
	`, r.tables.Outbox, r.tables.Outbox, outboxColumns)

	return r.queryTasks(ctx, query, limit)
}

// ListFailed returns exhausted tasks for one tenant, oldest first
func (r *PostgresOutboxRepository) ListFailed(ctx context.Context, companyID string) ([]models.SyncTask, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE company_id = $1 AND state = 'failed'
		ORDER BY id ASC
	`, outboxColumns, r.tables.Outbox)

	return r.queryTasks(ctx, query, companyID)
}

// ListRecent returns the most recent tasks for one tenant, any state
func (r *PostgresOutboxRepository) ListRecent(ctx context.Context, companyID string, limit int) ([]models.SyncTask, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE company_id = $1
		ORDER BY id DESC
		LIMIT $2
	`, outboxColumns, r.tables.Outbox)

	return r.queryTasks(ctx, query, companyID, limit)
}

// MarkDelivered transitions a task to delivered
func (r *PostgresOutboxRepository) MarkDelivered(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET state = 'delivered', last_error = NULL, updated_at = NOW()
		WHERE id = $1
	`, r.tables.Outbox)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("mark delivered: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("sync task %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// MarkFailed records a delivery failure and either reschedules the task or
// parks it as failed when attempts are exhausted.
func (r *PostgresOutboxRepository) MarkFailed(ctx context.Context, id int64, lastError string, nextAttempt time.Time, final bool) error {
	state := "pending"
	if final {
		state = "failed"
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET state = $2, attempts = attempts + 1, last_error = $3,
		    next_attempt_at = $4, updated_at = NOW()
		WHERE id = $1
	`, r.tables.Outbox)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, id, state, lastError, nextAttempt)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("sync task %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

func (r *PostgresOutboxRepository) queryTasks(ctx context.Context, query string, args ...interface{}) ([]models.SyncTask, error) {
	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sync tasks: %w", err)
	}
	defer rows.Close()

	var tasks []models.SyncTask
	for rows.Next() {
		var task models.SyncTask
		var operation, state string
		var payload []byte

		err := rows.Scan(
			&task.ID,
			&task.CompanyID,
			&task.CollectionName,
			&task.DocumentID,
			&operation,
			&payload,
			&state,
			&task.Attempts,
			&task.LastError,
			&task.NextAttemptAt,
			&task.CreatedAt,
			&task.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sync task: %w", err)
		}

		task.Operation = models.SyncOperation(operation)
		task.State = models.SyncState(state)
		task.Payload = payload
		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sync tasks: %w", err)
	}

	if tasks == nil {
		tasks = []models.SyncTask{}
	}

	return tasks, nil
}
