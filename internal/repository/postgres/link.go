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

// PostgresLinkRepository implements the LinkRepository interface
type PostgresLinkRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewLinkRepository creates a new link repository
func NewLinkRepository(config *RepositoryConfig) repositories.LinkRepository {
	return &PostgresLinkRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const linkColumns = `id, company_id, employee_id, url, title, submitter_name, category,
		tags, notes, created_at, uploaded_at, role, comments`

// Create inserts a new link record
func (r *PostgresLinkRepository) Create(ctx context.Context, rec *models.LinkRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`, r.tables.Links, linkColumns)

	executor := GetExecutor(ctx, r.pool)
	_, err := executor.Exec(ctx, query,
		rec.ID,
		rec.CompanyID,
		rec.EmployeeID,
		rec.URL,
		rec.Title,
		rec.SubmitterName,
		rec.Category,
		rec.Tags,
		rec.Notes,
		rec.CreatedAt,
		rec.UploadedAt,
		rec.Role,
		rec.Comments,
	)

	if err != nil {
		if IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      fmt.Sprintf("link record %s already exists", rec.ID),
				ResourceType: "link",
				ResourceID:   rec.ID,
			}
		}
		return fmt.Errorf("create link record: %w", err)
	}

	return nil
}

// GetByID retrieves one link within the employee scope
func (r *PostgresLinkRepository) GetByID(ctx context.Context, scope models.Scope, id string) (*models.LinkRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE company_id = $1 AND employee_id = $2 AND id = $3
	`, linkColumns, r.tables.Links)

	var rec models.LinkRecord
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, scope.CompanyID, scope.EmployeeID, id).Scan(
		&rec.ID,
		&rec.CompanyID,
		&rec.EmployeeID,
		&rec.URL,
		&rec.Title,
		&rec.SubmitterName,
		&rec.Category,
		&rec.Tags,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UploadedAt,
		&rec.Role,
		&rec.Comments,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("link record %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get link record: %w", err)
	}

	return &rec, nil
}

// List lists link records, newest first
func (r *PostgresLinkRepository) List(ctx context.Context, scope models.Scope) ([]models.LinkRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE company_id = $1 AND employee_id = $2
		ORDER BY created_at DESC
	`, linkColumns, r.tables.Links)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, scope.CompanyID, scope.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("list link records: %w", err)
	}
	defer rows.Close()

	var records []models.LinkRecord
	for rows.Next() {
		var rec models.LinkRecord
		err := rows.Scan(
			&rec.ID,
			&rec.CompanyID,
			&rec.EmployeeID,
			&rec.URL,
			&rec.Title,
			&rec.SubmitterName,
			&rec.Category,
			&rec.Tags,
			&rec.Notes,
			&rec.CreatedAt,
			&rec.UploadedAt,
			&rec.Role,
			&rec.Comments,
		)
		if err != nil {
			return nil, fmt.Errorf("scan link record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate link records: %w", err)
	}

	if records == nil {
		records = []models.LinkRecord{}
	}

	return records, nil
}

// Delete removes one link record
func (r *PostgresLinkRepository) Delete(ctx context.Context, scope models.Scope, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE company_id = $1 AND employee_id = $2 AND id = $3
	`, r.tables.Links)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, scope.CompanyID, scope.EmployeeID, id)
	if err != nil {
		return fmt.Errorf("delete link record: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("link record %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// AppendComment appends a comment and returns the full updated list
func (r *PostgresLinkRepository) AppendComment(ctx context.Context, scope models.Scope, id, comment string) ([]string, error) {
	query := fmt.Sprintf(`
		UPDATE %s
		SET comments = array_append(comments, $4)
		WHERE company_id = $1 AND employee_id = $2 AND id = $3
		RETURNING comments
	`, r.tables.Links)

	var comments []string
	executor := GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query, scope.CompanyID, scope.EmployeeID, id, comment).Scan(&comments)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("link record %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("append comment: %w", err)
	}

	return comments, nil
}

// Count returns the number of link records for one employee
func (r *PostgresLinkRepository) Count(ctx context.Context, scope models.Scope) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE company_id = $1 AND employee_id = $2
	`, r.tables.Links)

	var n int
	executor := GetExecutor(ctx, r.pool)
	if err := executor.QueryRow(ctx, query, scope.CompanyID, scope.EmployeeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count link records: %w", err)
	}

	return n, nil
}
