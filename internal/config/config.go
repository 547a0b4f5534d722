// Package config loads the console service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"storeops/internal/domain/quantity"
)

// Config holds all settings of the console service.
type Config struct {
	// General
	Port        string
	Environment string
	LogLevel    string

	// Inventory backend
	BackendBaseURL string
	BackendTimeout time.Duration

	// Console sessions
	SessionSecret        string
	SessionTokenTTL      time.Duration
	SessionIdleTimeout   time.Duration
	SessionMaxWorkspaces int

	// Cache (Redis); empty address selects the in-process cache
	RedisAddr      string
	StoreCacheTTL  time.Duration
	IdempotencyTTL time.Duration

	// Attachment ceilings, decoded bytes
	ImageMaxBytes        int64
	DocumentMaxBytes     int64
	BillDocumentMaxBytes int64
}

// Development reports whether the service runs in development mode.
func (c *Config) Development() bool {
	return c.Environment == "development"
}

// Limits returns the attachment ceilings.
func (c *Config) Limits() quantity.Limits {
	return quantity.Limits{
		ImageMaxBytes:        c.ImageMaxBytes,
		DocumentMaxBytes:     c.DocumentMaxBytes,
		BillDocumentMaxBytes: c.BillDocumentMaxBytes,
	}
}

// LoadDotEnv reads files (".env" when none are given) into the environment.
// Variables already set in the environment win. A missing file is not an error.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	existing := make([]string, 0, len(files))
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	var errs []error

	cfg := &Config{
		Port:        getEnv("APP_PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),

		BackendBaseURL: strings.TrimRight(os.Getenv("BACKEND_BASE_URL"), "/"),
		BackendTimeout: getEnvDuration("BACKEND_TIMEOUT", 15*time.Second),

		SessionSecret:        os.Getenv("SESSION_SECRET"),
		SessionTokenTTL:      getEnvDuration("SESSION_TOKEN_TTL", 12*time.Hour),
		SessionIdleTimeout:   getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		SessionMaxWorkspaces: getEnvInt("SESSION_MAX_WORKSPACES", 5000),

		RedisAddr:      os.Getenv("REDIS_ADDR"),
		StoreCacheTTL:  getEnvDuration("STORE_CACHE_TTL", 5*time.Minute),
		IdempotencyTTL: getEnvDuration("IDEMPOTENCY_TTL", 10*time.Minute),

		ImageMaxBytes:        getEnvInt64("IMAGE_MAX_BYTES", quantity.DefaultImageMaxBytes),
		DocumentMaxBytes:     getEnvInt64("DOCUMENT_MAX_BYTES", quantity.DefaultDocumentMaxBytes),
		BillDocumentMaxBytes: getEnvInt64("BILL_DOCUMENT_MAX_BYTES", quantity.DefaultBillDocumentMaxBytes),
	}

	if cfg.BackendBaseURL == "" {
		errs = append(errs, missing("BACKEND_BASE_URL"))
	} else if !strings.HasPrefix(cfg.BackendBaseURL, "http://") && !strings.HasPrefix(cfg.BackendBaseURL, "https://") {
		errs = append(errs, fmt.Errorf("BACKEND_BASE_URL must be an http(s) URL, got %q", cfg.BackendBaseURL))
	}
	if cfg.SessionSecret == "" {
		errs = append(errs, missing("SESSION_SECRET"))
	} else if len(cfg.SessionSecret) < 32 && !cfg.Development() {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 32 bytes outside development"))
	}
	if cfg.ImageMaxBytes <= 0 || cfg.DocumentMaxBytes <= 0 || cfg.BillDocumentMaxBytes <= 0 {
		errs = append(errs, errors.New("attachment ceilings must be positive"))
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

func missing(key string) error {
	return fmt.Errorf("required environment variable %s not set", key)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.ParseInt(value, 10, 64); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
