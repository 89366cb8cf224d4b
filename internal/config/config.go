package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the app reads from the environment
type Config struct {
	DatabaseURL      string
	BackendURL       string
	SnapshotFallback bool
	SnapshotDebounce time.Duration
	SyncCron         string
	LogLevel         string
}

// Load reads configuration from the environment, with a .env file applied
// first if present
func Load() Config {
	_ = godotenv.Load()

	return Config{
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		BackendURL:       getEnv("BACKEND_URL", "http://localhost:8000"),
		SnapshotFallback: getEnvBool("SNAPSHOT_FALLBACK", true),
		SnapshotDebounce: getEnvDuration("SNAPSHOT_DEBOUNCE", time.Second),
		SyncCron:         os.Getenv("SYNC_CRON"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultValue
}
