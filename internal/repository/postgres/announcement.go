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

// PostgresAnnouncementRepository implements the AnnouncementRepository interface
type PostgresAnnouncementRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewAnnouncementRepository creates a new announcement repository
func NewAnnouncementRepository(config *RepositoryConfig) repositories.AnnouncementRepository {
	return &PostgresAnnouncementRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create inserts an announcement
func (r *PostgresAnnouncementRepository) Create(ctx context.Context, a *models.Announcement) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, company_id, title, body, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Announcements)

	executor := GetExecutor(ctx, r.pool)
	if _, err := executor.Exec(ctx, query, a.ID, a.CompanyID, a.Title, a.Body, a.CreatedBy, a.CreatedAt); err != nil {
		return fmt.Errorf("create announcement: %w", err)
	}

	return nil
}

// List returns announcements for one tenant, newest first
func (r *PostgresAnnouncementRepository) List(ctx context.Context, companyID string) ([]models.Announcement, error) {
	query := fmt.Sprintf(`
		SELECT id, company_id, title, body, created_by, created_at
		FROM %s
		WHERE company_id = $1
		ORDER BY created_at DESC
	`, r.tables.Announcements)

	executor := GetExecutor(ctx, r.pool)
	rows, err := executor.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.CompanyID, &a.Title, &a.Body, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		announcements = append(announcements, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate announcements: %w", err)
	}

	if announcements == nil {
		announcements = []models.Announcement{}
	}

	return announcements, nil
}

// Delete removes one announcement
func (r *PostgresAnnouncementRepository) Delete(ctx context.Context, companyID, id string) error {
	query := fmt.Sprintf(`
		DELETE FROM %s
		WHERE company_id = $1 AND id = $2
	`, r.tables.Announcements)

	executor := GetExecutor(ctx, r.pool)
	result, err := executor.Exec(ctx, query, companyID, id)
	if err != nil {
		return fmt.Errorf("delete announcement: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("announcement %s: %w", id, domain.ErrNotFound)
	}

	return nil
}
