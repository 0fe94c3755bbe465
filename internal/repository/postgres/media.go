package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"staffhub/internal/domain"
	"staffhub/internal/domain/models"
	"staffhub/internal/domain/repositories"
)

// PostgresMediaRepository implements the MediaRepository interface
type PostgresMediaRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(config *RepositoryConfig) repositories.MediaRepository {
	return &PostgresMediaRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const mediaColumns = `id, company_id, employee_id, kind, title, submitter_name, category,
		tags, notes, text_data, asset_url, asset_key, asset_format, asset_resource_type,
		asset_bytes, thumbnail_url, file_name, file_type, file_size, uploaded_at, role,
		comments, document_id, document_group_id`

// Create inserts a new media record
func (r *PostgresMediaRepository) Create(ctx context.Context, rec *models.MediaRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24)
	`, r.tables.Media, mediaColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		rec.ID,
		rec.CompanyID,
		rec.EmployeeID,
		string(rec.Kind),
		rec.Title,
		rec.SubmitterName,
		rec.Category,
		rec.Tags,
		rec.Notes,
		rec.TextData,
		rec.AssetURL,
		rec.AssetKey,
		rec.AssetFormat,
		rec.AssetResourceType,
		rec.AssetBytes,
		rec.ThumbnailURL,
		rec.FileName,
		rec.FileType,
		rec.FileSize,
		rec.UploadedAt,
		rec.Role,
		rec.Comments,
		rec.DocumentID,
		rec.DocumentGroupID,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("media record %s already exists", rec.ID),
				ResourceType: "media",
				ResourceID:   rec.ID,
			}
		}
		return fmt.Errorf("create media record: %w", err)
	}

	return nil
}

// GetByID retrieves one record within the employee scope
func (r *PostgresMediaRepository) GetByID(ctx context.Context, scope models.Scope, id string) (*models.MediaRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE company_id = $1 AND employee_id = $2 AND id = $3
	`, mediaColumns, r.tables.Media)

	executor := GetExecutor(ctx, r.pool)
	rec, err := scanMediaRecord(executor.QueryRow(ctx, query, scope.CompanyID, scope.EmployeeID, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("media record %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get media record: %w", err)
	}

	return rec, nil
}

// ListByKind lists records of one kind, newest first
func (r *PostgresMediaRepository) ListByKind(ctx context.Context, scope models.Scope, kind models.MediaKind) ([]models.MediaRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE company_id = $1 AND employee_id = $2 AND kind = $3
		ORDER BY uploaded_at DESC
	`, mediaColumns, r.tables.Media)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, scope.CompanyID, scope.EmployeeID, string(kind))
	if err != nil {
		return nil, fmt.Errorf("list media records: %w", err)
	}
	defer rows.Close()

	var records []models.MediaRecord
	for rows.Next() {
		rec, err := scanMediaRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan media record: %w", err)
		}
		records = append(records, *rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate media records: %w", err)
	}

	// Return empty slice instead of nil
	if records == nil {
		records = []models.MediaRecord{}
	}

	return records, nil
}

// Delete removes one record
func (r *PostgresMediaRepository) Delete(ctx context.Context, scope models.Scope, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE company_id = $1 AND employee_id = $2 AND id = $3
	`, r.tables.Media)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, scope.CompanyID, scope.EmployeeID, id)
	if err != nil {
		return fmt.Errorf("delete media record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("media record %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AppendComment appends a comment and returns the full updated list.
// Document-kind records have no comment thread (comments IS NULL) and
// report not found.
func (r *PostgresMediaRepository) AppendComment(ctx context.Context, scope models.Scope, id, comment string) ([]string, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET comments = array_append(comments, $4)
		WHERE company_id = $1 AND employee_id = $2 AND id = $3 AND comments IS NOT NULL
		RETURNING comments
	`, r.tables.Media)

	var comments []string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, scope.CompanyID, scope.EmployeeID, id, comment).Scan(&comments)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("comment thread for %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("append comment: %w", err)
	}

	return comments, nil
}

// CountByKind returns record counts per media kind for one employee
func (r *PostgresMediaRepository) CountByKind(ctx context.Context, scope models.Scope) (map[models.MediaKind]int, error) {
	query := fmt.Sprintf(`
		SELECT kind, COUNT(*)
		FROM %s
		WHERE company_id = $1 AND employee_id = $2
		GROUP BY kind
	`, r.tables.Media)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, scope.CompanyID, scope.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("count media records: %w", err)
	}
	defer rows.Close()

	counts := make(map[models.MediaKind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, fmt.Errorf("scan media count: %w", err)
		}
		counts[models.MediaKind(kind)] = n
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate media counts: %w", err)
	}

	return counts, nil
}

// rowScanner covers both pgx.Row and pgx.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanMediaRecord(row rowScanner) (*models.MediaRecord, error) {
	var rec models.MediaRecord
	var kind string

	err := row.Scan(
		&rec.ID,
		&rec.CompanyID,
		&rec.EmployeeID,
		&kind,
		&rec.Title,
		&rec.SubmitterName,
		&rec.Category,
		&rec.Tags,
		&rec.Notes,
		&rec.TextData,
		&rec.AssetURL,
		&rec.AssetKey,
		&rec.AssetFormat,
		&rec.AssetResourceType,
		&rec.AssetBytes,
		&rec.ThumbnailURL,
		&rec.FileName,
		&rec.FileType,
		&rec.FileSize,
		&rec.UploadedAt,
		&rec.Role,
		&rec.Comments,
		&rec.DocumentID,
		&rec.DocumentGroupID,
	)
	if err != nil {
		return nil, err
	}

	rec.Kind = models.MediaKind(kind)
	return &rec, nil
}
