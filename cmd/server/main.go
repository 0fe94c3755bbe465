package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"

	"staffhub/internal/auth"
	"staffhub/internal/classify"
	"staffhub/internal/config"
	"staffhub/internal/handler"
	"staffhub/internal/handler/sse"
	"staffhub/internal/middleware"
	"staffhub/internal/mirror"
	"staffhub/internal/repository/postgres"
	"staffhub/internal/service"
	"staffhub/internal/storage"
)

func main() {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	cfg := config.Load()

	// Setup structured logging
	logLevel := slog.LevelInfo
	if cfg.Debug {
		logLevel = slog.LevelDebug
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("server starting",
		"environment", cfg.Environment,
		"port", cfg.Port,
		"table_prefix", cfg.TablePrefix,
	)

	// JWT verifier backed by the identity provider's JWKS endpoint
	jwtVerifier, err := auth.NewJWTVerifier(cfg.JWKSURL, logger)
	if err != nil {
		log.Fatalf("Failed to create JWT verifier: %v", err)
	}
	defer jwtVerifier.Close()

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to create connection pool: %v", err)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Repositories share one config: pool, environment table prefix, logger
	tables := postgres.NewTableNames(cfg.TablePrefix)
	repoConfig := &postgres.RepositoryConfig{
		Pool:   pool,
		Tables: tables,
		Logger: logger,
	}
	mediaRepo := postgres.NewMediaRepository(repoConfig)
	linkRepo := postgres.NewLinkRepository(repoConfig)
	favRepo := postgres.NewFavoriteRepository(repoConfig)
	outboxRepo := postgres.NewOutboxRepository(repoConfig)
	mirrorRepo := postgres.NewMirrorRepository(repoConfig)
	annRepo := postgres.NewAnnouncementRepository(repoConfig)
	txManager := postgres.NewTransactionManager(pool)

	// Asset store
	assetStore, err := storage.NewS3Store(ctx, cfg.S3Region, cfg.S3Bucket, cfg.S3Endpoint, cfg.S3PublicRead)
	if err != nil {
		log.Fatalf("Failed to create asset store: %v", err)
	}

	// File classification registry (embedded extension allow-lists)
	classifier, err := classify.NewClassifier()
	if err != nil {
		log.Fatalf("Failed to load classifier registry: %v", err)
	}

	// Mirror delivery: outbox drained on a schedule, delivered over HTTP
	mirrorClient := mirror.NewClient(cfg.MirrorBaseURL, cfg.MirrorServiceKey)
	syncWorker := mirror.NewWorker(outboxRepo, mirrorClient, mirror.WorkerConfig{
		Interval:    cfg.SyncInterval,
		BatchSize:   cfg.SyncBatchSize,
		MaxAttempts: cfg.SyncMaxAttempts,
	}, logger)
	if err := syncWorker.Start(); err != nil {
		log.Fatalf("Failed to start sync worker: %v", err)
	}
	defer syncWorker.Stop()

	// Services
	broker := service.NewCommentBroker()
	mediaService := service.NewMediaService(mediaRepo, linkRepo, favRepo, outboxRepo, txManager, assetStore, classifier, broker, logger)
	linkService := service.NewLinkService(linkRepo, favRepo, outboxRepo, txManager, logger)
	favService := service.NewFavoriteService(favRepo, mediaRepo, linkRepo, outboxRepo, txManager, logger)
	syncService := service.NewSyncService(outboxRepo, mirrorClient, logger)
	mirrorService := service.NewMirrorService(mirrorRepo, logger)
	annService := service.NewAnnouncementService(annRepo, outboxRepo, txManager, logger)

	// Handlers
	mediaHandler := handler.NewMediaHandler(mediaService, logger)
	commentStream := handler.NewCommentStreamHandler(mediaService, broker, sse.DefaultConfig(), logger)
	linkHandler := handler.NewLinkHandler(linkService, logger)
	favHandler := handler.NewFavoriteHandler(favService, logger)
	annHandler := handler.NewAnnouncementHandler(annService, logger)
	syncHandler := handler.NewSyncHandler(syncService, logger)
	mirrorHandler := handler.NewMirrorHandler(mirrorService, logger)

	logger.Info("services initialized")

	// Employee-facing routes, all behind bearer auth
	api := http.NewServeMux()
	api.HandleFunc("POST /api/media", mediaHandler.Upload)
	api.HandleFunc("GET /api/media", mediaHandler.List)
	api.HandleFunc("GET /api/media/counts", mediaHandler.Counts) // must come before {id} routes
	api.HandleFunc("DELETE /api/media/{id}", mediaHandler.Delete)
	api.HandleFunc("POST /api/media/{id}/comments", mediaHandler.AddComment)
	api.HandleFunc("GET /api/media/{id}/comments/stream", commentStream.Stream)

	api.HandleFunc("POST /api/links", linkHandler.Add)
	api.HandleFunc("GET /api/links", linkHandler.List)
	api.HandleFunc("DELETE /api/links/{id}", linkHandler.Delete)

	api.HandleFunc("POST /api/favourites", favHandler.Add)
	api.HandleFunc("GET /api/favourites", favHandler.List)
	api.HandleFunc("DELETE /api/favourites/{id}", favHandler.Delete)

	api.HandleFunc("POST /api/announcements", annHandler.Create)
	api.HandleFunc("GET /api/announcements", annHandler.List)
	api.HandleFunc("DELETE /api/announcements/{id}", annHandler.Delete)

	api.HandleFunc("GET /api/sync/status", syncHandler.Status)
	api.HandleFunc("POST /api/sync/retries", syncHandler.RetryFailed)

	// Top-level router: health is open, the mirror apply endpoint takes the
	// internal service key, everything else requires an employee token.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})
	mux.Handle("POST /api/admin/mirror",
		middleware.RequireServiceKey(cfg.MirrorServiceKey, logger)(http.HandlerFunc(mirrorHandler.Apply)))
	mux.Handle("GET /api/admin/mirror",
		middleware.RequireServiceKey(cfg.MirrorServiceKey, logger)(http.HandlerFunc(mirrorHandler.List)))
	mux.Handle("/api/", middleware.Auth(jwtVerifier, logger)(api))

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → Recovery → Routes
	var root http.Handler = mux
	root = middleware.Recovery(logger)(root)

	// CORS must be outermost to handle OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "Authorization", "Last-Event-ID"},
		AllowCredentials: true,
	})
	root = corsHandler.Handler(root)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      root,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // Disabled to allow long-lived SSE streams
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("listening", "port", cfg.Port)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Failed to start server: %v", err)
	}
}
