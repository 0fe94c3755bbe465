package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffhub/internal/domain/models"
	"staffhub/internal/domain/repositories"
)

// PostgresMirrorRepository implements the MirrorRepository interface.
// Mirror rows are admin-scoped duplicates keyed by the same document id as
// the primary copy; the two are never transactionally linked.
type PostgresMirrorRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewMirrorRepository creates a new mirror repository
func NewMirrorRepository(config *RepositoryConfig) repositories.MirrorRepository {
	return &PostgresMirrorRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Set upserts a mirror record. Re-applying the same set is harmless.
func (r *PostgresMirrorRepository) Set(ctx context.Context, companyID, collectionName, documentID string, data json.RawMessage) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (company_id, collection_name, document_id, data, synced_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (company_id, collection_name, document_id)
		DO UPDATE SET data = EXCLUDED.data, synced_at = NOW()
	`, r.tables.Mirror)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, companyID, collectionName, documentID, []byte(data)); err != nil {
		return fmt.Errorf("set mirror record: %w", err)
	}

	return nil
}

// Delete removes a mirror record. Deleting an absent record succeeds.
func (r *PostgresMirrorRepository) Delete(ctx context.Context, companyID, collectionName, documentID string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE company_id = $1 AND collection_name = $2 AND document_id = $3
	`, r.tables.Mirror)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, companyID, collectionName, documentID); err != nil {
		return fmt.Errorf("delete mirror record: %w", err)
	}

	return nil
}

// List returns mirror records for one tenant collection, newest first
func (r *PostgresMirrorRepository) List(ctx context.Context, companyID, collectionName string) ([]models.MirrorRecord, error) {
	query := fmt.Sprintf(`
		SELECT company_id, collection_name, document_id, data, synced_at
		FROM %s
		WHERE company_id = $1 AND collection_name = $2
		ORDER BY synced_at DESC
	`, r.tables.Mirror)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, companyID, collectionName)
	if err != nil {
		return nil, fmt.Errorf("list mirror records: %w", err)
	}
	defer rows.Close()

	var records []models.MirrorRecord
	for rows.Next() {
		var rec models.MirrorRecord
		var data []byte
		if err := rows.Scan(&rec.CompanyID, &rec.CollectionName, &rec.DocumentID, &data, &rec.SyncedAt); err != nil {
			return nil, fmt.Errorf("scan mirror record: %w", err)
		}
		rec.Data = data
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mirror records: %w", err)
	}

	if records == nil {
		records = []models.MirrorRecord{}
	}

	return records, nil
}
