package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	Environment string
	DatabaseURL string
	JWKSURL     string
	CORSOrigins string
	TablePrefix string

	// Asset store (S3-compatible)
	S3Region     string
	S3Bucket     string
	S3Endpoint   string // empty for AWS, set for MinIO-style stores
	S3PublicRead bool

	// Admin mirror replication
	MirrorBaseURL    string // where the outbox worker delivers tasks
	MirrorServiceKey string // elevated credential for the apply endpoint
	SyncInterval     time.Duration
	SyncBatchSize    int
	SyncMaxAttempts  int

	Debug bool
}

func Load() *Config {
	env := getEnv("ENVIRONMENT", "dev")

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: env,
		DatabaseURL: getEnv("DATABASE_URL", ""),
		JWKSURL:     getEnv("JWKS_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", "http://localhost:3000"),
		TablePrefix: getTablePrefix(env),

		S3Region:     getEnv("S3_REGION", "us-east-1"),
		S3Bucket:     getEnv("S3_BUCKET", ""),
		S3Endpoint:   getEnv("S3_ENDPOINT", ""),
		S3PublicRead: getEnv("S3_PUBLIC_READ", "true") == "true",

		MirrorBaseURL:    getEnv("MIRROR_BASE_URL", "http://localhost:"+getEnv("PORT", "8080")),
		MirrorServiceKey: getEnv("MIRROR_SERVICE_KEY", ""),
		SyncInterval:     getDuration("SYNC_INTERVAL", 5*time.Second),
		SyncBatchSize:    getInt("SYNC_BATCH_SIZE", 50),
		SyncMaxAttempts:  getInt("SYNC_MAX_ATTEMPTS", 5),

		Debug: getEnv("DEBUG", getDefaultDebug(env)) == "true",
	}
}

// getDefaultDebug returns the default debug setting based on environment
func getDefaultDebug(env string) string {
	if env == "prod" {
		return "false"
	}
	return "true"
}

// getTablePrefix returns the table prefix based on environment
func getTablePrefix(env string) string {
	// Allow manual override via TABLE_PREFIX env var
	if prefix := os.Getenv("TABLE_PREFIX"); prefix != "" {
		return prefix
	}

	switch env {
	case "prod":
		return "prod_"
	case "test":
		return "test_"
	default:
		return "dev_"
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
