// Package config provides configuration management functionality.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/aristath/folio/internal/clientdata"
	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	DataDir              string // Base directory for the database (always absolute)
	LogLevel             string
	DemoUserID           string // Identity used when a request names no user
	ReportingCurrency    string // ISO code used to format amounts for display
	CoinGeckoBaseURL     string
	QuoteRefreshSchedule string // cron spec for the quote warm-up job
	CacheCleanupSchedule string // cron spec for the quote cache cleanup job
	QuoteFreshness       time.Duration
	QuoteTimeout         time.Duration
	Port                 int
	DevMode              bool
	LivePricing          bool // Prefer live quotes over stored prices during valuation
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	absDataDir, err := filepath.Abs(getEnv("FOLIO_DATA_DIR", "./data"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve data directory path: %w", err)
	}

	if err := os.MkdirAll(absDataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	cfg := &Config{
		DataDir:              absDataDir,
		Port:                 getEnvAsInt("GO_PORT", 8080),
		DevMode:              getEnvAsBool("DEV_MODE", false),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		DemoUserID:           getEnv("DEMO_USER_ID", "demo-user"),
		ReportingCurrency:    getEnv("REPORTING_CURRENCY", money.TRY),
		CoinGeckoBaseURL:     getEnv("COINGECKO_BASE_URL", "https://api.coingecko.com/api/v3"),
		QuoteFreshness:       getEnvAsDuration("QUOTE_FRESHNESS", clientdata.TTLQuote),
		QuoteTimeout:         getEnvAsDuration("QUOTE_TIMEOUT", 8*time.Second),
		LivePricing:          getEnvAsBool("LIVE_PRICING", true),
		QuoteRefreshSchedule: getEnv("QUOTE_REFRESH_SCHEDULE", "@every 5m"),
		CacheCleanupSchedule: getEnv("CACHE_CLEANUP_SCHEDULE", "@every 30m"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// DatabasePath returns the location of the portfolio database file
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "portfolio.db")
}

// Validate checks if required configuration is present
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.QuoteFreshness <= 0 {
		return fmt.Errorf("quote freshness window must be positive, got %s", c.QuoteFreshness)
	}
	if c.QuoteTimeout <= 0 {
		return fmt.Errorf("quote timeout must be positive, got %s", c.QuoteTimeout)
	}
	if money.GetCurrency(c.ReportingCurrency) == nil {
		return fmt.Errorf("unknown reporting currency %q", c.ReportingCurrency)
	}
	if c.DemoUserID == "" {
		return fmt.Errorf("demo user id cannot be empty")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
