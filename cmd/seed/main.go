package main

import (
	"context"
	"flag"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"staffhub/internal/config"
	"staffhub/internal/repository/postgres"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before creating schema (fresh start)")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	cfg := config.Load()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot run --drop-tables in production environment")
	}

	log.Printf("Setting up schema (environment: %s, prefix: %s)", cfg.Environment, cfg.TablePrefix)

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping all tables...")
		if err := dropAllTables(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
		log.Println("Tables dropped")
	}

	log.Println("Ensuring database schema is up to date...")
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")
}

// runSchema creates tables if they don't exist
func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, tablePrefix string) error {
	// Media and document records. comments is NULL for document-kind rows:
	// the append guard relies on that to reject comments on documents.
	createMedia := `
		CREATE TABLE IF NOT EXISTS ` + tables.Media + ` (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			employee_id TEXT NOT NULL,
			kind TEXT NOT NULL,
			title TEXT NOT NULL,
			submitter_name TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			tags TEXT[] NOT NULL DEFAULT '{}',
			notes TEXT NOT NULL DEFAULT '',
			text_data TEXT NOT NULL DEFAULT '',
			asset_url TEXT NOT NULL DEFAULT '',
			asset_key TEXT NOT NULL DEFAULT '',
			asset_format TEXT NOT NULL DEFAULT '',
			asset_resource_type TEXT NOT NULL DEFAULT '',
			asset_bytes BIGINT NOT NULL DEFAULT 0,
			thumbnail_url TEXT NOT NULL DEFAULT '',
			file_name TEXT NOT NULL DEFAULT '',
			file_type TEXT NOT NULL DEFAULT '',
			file_size BIGINT NOT NULL DEFAULT 0,
			uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			role TEXT NOT NULL DEFAULT '',
			comments TEXT[],
			document_id TEXT,
			document_group_id TEXT
		)
	`
	if _, err := pool.Exec(ctx, createMedia); err != nil {
		return err
	}

	createLinks := `
		CREATE TABLE IF NOT EXISTS ` + tables.Links + ` (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			employee_id TEXT NOT NULL,
			url TEXT NOT NULL,
			title TEXT NOT NULL,
			submitter_name TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			tags TEXT[] NOT NULL DEFAULT '{}',
			notes TEXT NOT NULL DEFAULT '',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			role TEXT NOT NULL DEFAULT '',
			comments TEXT[] NOT NULL DEFAULT '{}'
		)
	`
	if _, err := pool.Exec(ctx, createLinks); err != nil {
		return err
	}

	// The unique constraint is what makes duplicate favourites a 409:
	// no read-before-write, concurrent inserts included.
	createFavorites := `
		CREATE TABLE IF NOT EXISTS ` + tables.Favorites + ` (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			employee_id TEXT NOT NULL,
			title TEXT NOT NULL DEFAULT '',
			submitter_name TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			asset_url TEXT NOT NULL DEFAULT '',
			file_name TEXT NOT NULL DEFAULT '',
			file_type TEXT NOT NULL DEFAULT '',
			file_size BIGINT NOT NULL DEFAULT 0,
			uploaded_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			original_id TEXT NOT NULL,
			original_type TEXT NOT NULL,
			original_collection TEXT NOT NULL,
			favorite_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			favorited_by TEXT NOT NULL DEFAULT '',
			role TEXT NOT NULL DEFAULT '',
			UNIQUE (company_id, employee_id, original_id)
		)
	`
	if _, err := pool.Exec(ctx, createFavorites); err != nil {
		return err
	}

	createOutbox := `
		CREATE TABLE IF NOT EXISTS ` + tables.Outbox + ` (
			id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
			company_id TEXT NOT NULL,
			collection_name TEXT NOT NULL,
			document_id TEXT NOT NULL,
			operation TEXT NOT NULL,
			payload JSONB,
			state TEXT NOT NULL DEFAULT 'pending',
			attempts INTEGER NOT NULL DEFAULT 0,
			last_error TEXT,
			next_attempt_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createOutbox); err != nil {
		return err
	}

	createMirror := `
		CREATE TABLE IF NOT EXISTS ` + tables.Mirror + ` (
			company_id TEXT NOT NULL,
			collection_name TEXT NOT NULL,
			document_id TEXT NOT NULL,
			data JSONB NOT NULL,
			synced_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (company_id, collection_name, document_id)
		)
	`
	if _, err := pool.Exec(ctx, createMirror); err != nil {
		return err
	}

	createAnnouncements := `
		CREATE TABLE IF NOT EXISTS ` + tables.Announcements + ` (
			id TEXT PRIMARY KEY,
			company_id TEXT NOT NULL,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			created_by TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	if _, err := pool.Exec(ctx, createAnnouncements); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `media_scope_kind ON ` + tables.Media + `(company_id, employee_id, kind, uploaded_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `links_scope ON ` + tables.Links + `(company_id, employee_id, uploaded_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `favorites_original ON ` + tables.Favorites + `(company_id, employee_id, original_id)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `outbox_due ON ` + tables.Outbox + `(state, next_attempt_at)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `outbox_company ON ` + tables.Outbox + `(company_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_` + tablePrefix + `announcements_company ON ` + tables.Announcements + `(company_id, created_at DESC)`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}

// dropAllTables drops all tables
func dropAllTables(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	tableNames := []string{
		tables.Favorites,
		tables.Media,
		tables.Links,
		tables.Outbox,
		tables.Mirror,
		tables.Announcements,
	}

	for _, table := range tableNames {
		dropSQL := "DROP TABLE IF EXISTS " + table + " CASCADE"
		if _, err := pool.Exec(ctx, dropSQL); err != nil {
			return err
		}
		log.Printf("  dropped %s", table)
	}

	return nil
}
