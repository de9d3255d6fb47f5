package app

import (
	"os"
	"strconv"
	"time"

	"github.com/deskboardhq/deskboard/pkg/jwtx"
)

type Config struct {
	JWTSecret string // Required: HMAC secret for signing access tokens
	Issuer    string // Optional: issuer claim for tokens (default: deskboard)

	TokenTTL            time.Duration // Optional: access token lifetime (default: 24h)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./deskboard.db)
	UploadDir           string        // Optional: directory for task attachments (default: ./uploads)
	MaxUploadBytes      int64         // Optional: attachment size cap in bytes (default: 10 MiB)
	ExpandWindow        time.Duration // Optional: calendar expansion window (default: 30 days)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		JWTSecret:           os.Getenv("DESKBOARD_JWT_SECRET"),
		Issuer:              getEnvOrDefault("DESKBOARD_ISSUER", "deskboard"),
		TokenTTL:            getEnvDurationOrDefault("DESKBOARD_TOKEN_TTL", jwtx.DefaultTokenTTL),
		DatabaseFile:        getEnvOrDefault("DESKBOARD_DATABASE_FILE", "deskboard.db"),
		UploadDir:           getEnvOrDefault("DESKBOARD_UPLOAD_DIR", "uploads"),
		ExpandWindow:        getEnvDurationOrDefault("DESKBOARD_EXPAND_WINDOW", 30*24*time.Hour),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	cfg.MaxUploadBytes = 10 << 20
	if maxStr := os.Getenv("DESKBOARD_MAX_UPLOAD_BYTES"); maxStr != "" {
		if maxBytes, err := strconv.ParseInt(maxStr, 10, 64); err == nil && maxBytes > 0 {
			cfg.MaxUploadBytes = maxBytes
		}
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	return defaultValue
}
