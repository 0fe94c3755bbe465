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

// PostgresFavoriteRepository implements the FavoriteRepository interface.
// A unique index on (company_id, employee_id, original_id) enforces the
// one-favourite-per-original invariant at the store, so there is no
// read-then-write race between concurrent favourite requests.
type PostgresFavoriteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewFavoriteRepository creates a new favourite repository
func NewFavoriteRepository(config *RepositoryConfig) repositories.FavoriteRepository {
	return &PostgresFavoriteRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const favoriteColumns = `id, company_id, employee_id, title, submitter_name, category,
		asset_url, file_name, file_type, file_size, uploaded_at, original_id,
		original_type, original_collection, favorite_date, favorited_by, role`

// Create inserts a favourite; duplicates map to a conflict error
func (r *PostgresFavoriteRepository) Create(ctx context.Context, rec *models.FavoriteRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	`, r.tables.Favorites, favoriteColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		rec.ID,
		rec.CompanyID,
		rec.EmployeeID,
		rec.Title,
		rec.SubmitterName,
		rec.Category,
		rec.AssetURL,
		rec.FileName,
		rec.FileType,
		rec.FileSize,
		rec.UploadedAt,
		rec.OriginalID,
		rec.OriginalType,
		rec.OriginalCollection,
		rec.FavoriteDate,
		rec.FavoritedBy,
		rec.Role,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "item is already in favourites",
				ResourceType: "favourite",
				ResourceID:   rec.OriginalID,
			}
		}
		return fmt.Errorf("create favourite: %w", err)
	}

	return nil
}

// List lists favourites, newest favourited first
func (r *PostgresFavoriteRepository) List(ctx context.Context, scope models.Scope) ([]models.FavoriteRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE company_id = $1 AND employee_id = $2
		ORDER BY favorite_date DESC
	`, favoriteColumns, r.tables.Favorites)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, scope.CompanyID, scope.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("list favourites: %w", err)
	}
	defer rows.Close()

	var records []models.FavoriteRecord
	for rows.Next() {
		var rec models.FavoriteRecord
		err := rows.Scan(
			&rec.ID,
			&rec.CompanyID,
			&rec.EmployeeID,
			&rec.Title,
			&rec.SubmitterName,
			&rec.Category,
			&rec.AssetURL,
			&rec.FileName,
			&rec.FileType,
			&rec.FileSize,
			&rec.UploadedAt,
			&rec.OriginalID,
			&rec.OriginalType,
			&rec.OriginalCollection,
			&rec.FavoriteDate,
			&rec.FavoritedBy,
			&rec.Role,
		)
		if err != nil {
			return nil, fmt.Errorf("scan favourite: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favourites: %w", err)
	}

	if records == nil {
		records = []models.FavoriteRecord{}
	}

	return records, nil
}

// Delete removes a favourite by its own id
func (r *PostgresFavoriteRepository) Delete(ctx context.Context, scope models.Scope, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE company_id = $1 AND employee_id = $2 AND id = $3
	`, r.tables.Favorites)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, scope.CompanyID, scope.EmployeeID, id)
	if err != nil {
		return fmt.Errorf("delete favourite: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("favourite %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByOriginalID removes every favourite referencing an original record
func (r *PostgresFavoriteRepository) DeleteByOriginalID(ctx context.Context, scope models.Scope, originalID string) ([]string, error) {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE company_id = $1 AND employee_id = $2 AND original_id = $3
		RETURNING id
	`, r.tables.Favorites)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, scope.CompanyID, scope.EmployeeID, originalID)
	if err != nil {
		return nil, fmt.Errorf("delete favourites by original: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan deleted favourite id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate deleted favourites: %w", err)
	}

	return ids, nil
}
