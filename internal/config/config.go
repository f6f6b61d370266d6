package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// HTTP Server
	Port               string
	RateLimitPerMinute int

	// External transactions API (the ledger feed source)
	LedgerAPIURL     string
	LedgerAPITimeout time.Duration
	LedgerPageSize   int

	// Ledger page cache
	LedgerCacheSize int
	LedgerCacheTTL  time.Duration

	// Settings store
	SettingsBackend string
	SQLiteDBPath    string

	// AMQP (optional: upstream transaction change events)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google Sheets export (optional)
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Calculator input bounds. These mirror the slider ranges of the
	// calculator screens; anything outside is rejected before the math
	// runs.
	MaxPrincipal    float64
	MaxRatePercent  float64
	MaxTermMonths   int
	MaxHorizonYears int
	MaxContribution float64
}

func Load() *Config {
	cfg := &Config{
		Port:               getEnv("PORT", "8082"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 60),

		LedgerAPIURL:     getEnv("LEDGER_API_URL", ""),
		LedgerAPITimeout: getEnvDuration("LEDGER_API_TIMEOUT", 10*time.Second),
		LedgerPageSize:   getEnvInt("LEDGER_PAGE_SIZE", 20),

		LedgerCacheSize: getEnvInt("LEDGER_CACHE_SIZE", 100),
		LedgerCacheTTL:  getEnvDuration("LEDGER_CACHE_TTL", 5*time.Minute),

		SettingsBackend: getEnv("SETTINGS_BACKEND", "memory"),
		SQLiteDBPath:    getEnv("SQLITE_DB_PATH", "./data/akfinance.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "akfinance"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "ledger_events"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "BalanceSheet"),

		MaxPrincipal:    getEnvFloat("CALC_MAX_PRINCIPAL", 50_000_000),
		MaxRatePercent:  getEnvFloat("CALC_MAX_RATE_PERCENT", 100),
		MaxTermMonths:   getEnvInt("CALC_MAX_TERM_MONTHS", 480),
		MaxHorizonYears: getEnvInt("CALC_MAX_HORIZON_YEARS", 40),
		MaxContribution: getEnvFloat("CALC_MAX_CONTRIBUTION", 500_000),
	}

	return cfg
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.RateLimitPerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid rate limit %d: must be at least 1 request per minute", c.RateLimitPerMinute))
	}

	// Validate settings backend
	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.SettingsBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid settings backend '%s': must be one of %v", c.SettingsBackend, validBackends))
	}

	// Validate SQLite configuration if backend is sqlite
	if c.SettingsBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	// Validate ledger API URL if provided (the feed is optional)
	if c.LedgerAPIURL != "" {
		if parsedURL, err := url.Parse(c.LedgerAPIURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid ledger API URL '%s': %v", c.LedgerAPIURL, err))
		} else if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			errors = append(errors, fmt.Sprintf("invalid ledger API URL scheme '%s': must be 'http' or 'https'", parsedURL.Scheme))
		}
	}
	if c.LedgerPageSize < 1 || c.LedgerPageSize > 200 {
		errors = append(errors, fmt.Sprintf("invalid ledger page size %d: must be between 1 and 200", c.LedgerPageSize))
	}
	if c.LedgerAPITimeout < time.Second {
		errors = append(errors, fmt.Sprintf("invalid ledger API timeout %v: must be at least 1 second", c.LedgerAPITimeout))
	}
	if c.LedgerCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid ledger cache size %d: must be at least 1", c.LedgerCacheSize))
	}
	if c.LedgerCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid ledger cache TTL %v: must be at least 1 second", c.LedgerCacheTTL))
	}

	// Validate AMQP URL if provided
	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// Validate calculator bounds
	if c.MaxPrincipal <= 0 {
		errors = append(errors, fmt.Sprintf("invalid max principal %v: must be positive", c.MaxPrincipal))
	}
	if c.MaxRatePercent <= 0 {
		errors = append(errors, fmt.Sprintf("invalid max rate %v: must be positive", c.MaxRatePercent))
	}
	if c.MaxTermMonths < 1 {
		errors = append(errors, fmt.Sprintf("invalid max term %d months: must be at least 1", c.MaxTermMonths))
	}
	if c.MaxHorizonYears < 1 {
		errors = append(errors, fmt.Sprintf("invalid max horizon %d years: must be at least 1", c.MaxHorizonYears))
	}
	if c.MaxContribution <= 0 {
		errors = append(errors, fmt.Sprintf("invalid max contribution %v: must be positive", c.MaxContribution))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
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
