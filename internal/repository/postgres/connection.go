package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"staffhub/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Media         string
	Links         string
	Favorites     string
	Outbox        string
	Mirror        string
	Announcements string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Media:         prefix + "media_records",
		Links:         prefix + "link_records",
		Favorites:     prefix + "favorites",
		Outbox:        prefix + "sync_outbox",
		Mirror:        prefix + "admin_mirror",
		Announcements: prefix + "announcements",
	}
}

// CreateConnectionPool creates a new pgx connection pool.
//
// When the connection goes through a transaction-pooling proxy (PgBouncer on
// port 6543), prepared statements break with "prepared statement already
// exists" errors. QueryExecModeCacheDescribe keeps the extended protocol
// (needed for proper JSONB and text[] encoding) without creating server-side
// prepared statements. An explicit default_query_exec_mode in the connection
// string takes precedence.
//
// Dynamic table prefixes (dev_, test_, prod_) are interpolated into SQL
// before statements are sent, so each environment gets its own statements.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5

	if config.ConnConfig.Port == 6543 && config.ConnConfig.DefaultQueryExecMode == pgx.QueryExecModeCacheStatement {
		config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeCacheDescribe
		slog.Debug("auto-configured cache_describe mode for transaction pooler", "port", 6543)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// If a transaction is present in the context, it returns the transaction.
// Otherwise, it returns the provided pool.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
