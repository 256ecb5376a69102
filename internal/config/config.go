package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
	_ "time/tzdata" // zoneinfo for DISPLAY_TIMEZONE on minimal images

	"github.com/joho/godotenv"
)

const (
	RepositorySourceRemote = "remote"
	RepositorySourceMongo  = "mongo"
)

// Config holds all configuration for the application.
type Config struct {
	// Environment
	RunMode string // Set via flag, not env

	// Server
	WebPort        string
	ServiceApiPort string

	// Finder repository
	RepositorySource  string
	FinderApiBaseURL  string
	FinderApiTimeout  time.Duration
	PageRenderTimeout time.Duration // 0 waits until the fetch settles

	// MongoDB
	MongoURI    string
	MongoDbName string

	// Display
	DisplayTimezone string
	DisplayLocale   string

	// Logging
	LogLevel string
	LogFile  string

	// Rate Limiting
	RateLimitBucketSize int
	RateLimitRefillRate int // tokens per second
}

// Load configuration from environment variables.
// RunMode needs to be passed in as it comes from command-line flags.
func Load(runMode string) (*Config, error) {
	// Load .env file, ignoring errors if it doesn't exist
	_ = godotenv.Load()

	cfg := &Config{
		RunMode: runMode,
	}

	var err error

	getEnv := func(key, defaultValue string) string {
		if value, exists := os.LookupEnv(key); exists {
			return value
		}
		return defaultValue
	}

	getRequiredEnv := func(key string) (string, error) {
		value, exists := os.LookupEnv(key)
		if !exists || value == "" {
			return "", fmt.Errorf("missing required environment variable: %s", key)
		}
		return value, nil
	}

	cfg.WebPort = getEnv("WEB_PORT", "8080")
	cfg.ServiceApiPort = getEnv("SERVICE_API_PORT", "12345")
	cfg.DisplayTimezone = getEnv("DISPLAY_TIMEZONE", "Asia/Seoul")
	cfg.DisplayLocale = getEnv("DISPLAY_LOCALE", "ko-KR")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFile = getEnv("LOG_FILE", "")
	cfg.MongoDbName = getEnv("MONGO_DB_NAME", "abang")

	cfg.RepositorySource = getEnv("REPOSITORY_SOURCE", RepositorySourceRemote)
	switch cfg.RepositorySource {
	case RepositorySourceRemote:
		cfg.FinderApiBaseURL, err = getRequiredEnv("FINDER_API_BASE_URL")
		if err != nil {
			return nil, err
		}
	case RepositorySourceMongo:
		cfg.MongoURI, err = getRequiredEnv("MONGO_URI")
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("invalid REPOSITORY_SOURCE: %q (expected %q or %q)", cfg.RepositorySource, RepositorySourceRemote, RepositorySourceMongo)
	}

	apiTimeoutSeconds, err := strconv.ParseInt(getEnv("FINDER_API_TIMEOUT_SECONDS", "10"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid FINDER_API_TIMEOUT_SECONDS: %w", err)
	}
	cfg.FinderApiTimeout = time.Duration(apiTimeoutSeconds) * time.Second

	renderTimeoutMs, err := strconv.ParseInt(getEnv("PAGE_RENDER_TIMEOUT_MS", "0"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid PAGE_RENDER_TIMEOUT_MS: %w", err)
	}
	if renderTimeoutMs < 0 {
		return nil, fmt.Errorf("invalid PAGE_RENDER_TIMEOUT_MS: must not be negative")
	}
	cfg.PageRenderTimeout = time.Duration(renderTimeoutMs) * time.Millisecond

	if _, err := time.LoadLocation(cfg.DisplayTimezone); err != nil {
		return nil, fmt.Errorf("invalid DISPLAY_TIMEZONE: %w", err)
	}

	cfg.RateLimitBucketSize, err = strconv.Atoi(getEnv("RATE_LIMIT_BUCKET_SIZE", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_BUCKET_SIZE: %w", err)
	}
	cfg.RateLimitRefillRate, err = strconv.Atoi(getEnv("RATE_LIMIT_REFILL_RATE", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid RATE_LIMIT_REFILL_RATE: %w", err)
	}

	return cfg, nil
}
