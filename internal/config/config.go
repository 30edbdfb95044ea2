// Package config provides configuration management for Rostrum.
// It loads settings from environment variables with the ROSTRUM_ prefix
// and provides sensible defaults for all configuration options.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration settings for the Rostrum pipeline.
type Config struct {
	Storage StorageConfig
	Extract ExtractConfig
	Report  ReportConfig
}

// StorageConfig contains corpus store configuration.
type StorageConfig struct {
	Engine      string // Storage engine: sqlite, postgres (default: sqlite)
	SQLitePath  string // Path to the sqlite corpus database (default: ./data/speeches.db)
	PostgresDSN string // PostgreSQL connection string when Engine is postgres
}

// ExtractConfig contains extraction and grouping tuning knobs.
type ExtractConfig struct {
	MinQuoteLength          int           // Minimum normalized quote length in characters (default: 20)
	SimilarityThreshold     float64       // Fuzzy grouping threshold (default: 0.85)
	ContextWindow           int           // Characters captured either side of a targeted mention (default: 500)
	AttributionWindowBefore int           // Characters before a match scanned for a speaker (default: 300)
	AttributionWindowAfter  int           // Characters after a match scanned for a speaker (default: 50)
	Workers                 int           // Concurrent speech-matching workers (default: 4)
	QueryRateLimit          float64       // Targeted chunk queries per second, 0 = unlimited (default: 0)
	GroupTimeout            time.Duration // Deadline for the clustering phase, 0 = none (default: 0)
	FigureTablePath         string        // Optional YAML override for the curated alias table
	KnownQuoteTablePath     string        // Optional YAML override for the curated famous-quote table
}

// ReportConfig contains report output configuration.
type ReportConfig struct {
	TopN       int    // Number of ranked quotations in the report (default: 50)
	OutputPath string // Markdown report path (default: quotation_analysis_report.md)
	Color      bool   // Colorize the console summary (default: true)
}

// LoadConfig loads configuration from environment variables with sensible
// defaults. All environment variables use the ROSTRUM_ prefix.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			Engine:      getEnv("ROSTRUM_STORAGE_ENGINE", "sqlite"),
			SQLitePath:  getEnv("ROSTRUM_SQLITE_PATH", "./data/speeches.db"),
			PostgresDSN: getEnv("ROSTRUM_POSTGRES_DSN", ""),
		},
		Extract: ExtractConfig{
			MinQuoteLength:          getEnvInt("ROSTRUM_MIN_QUOTE_LENGTH", 20),
			SimilarityThreshold:     getEnvFloat("ROSTRUM_SIMILARITY_THRESHOLD", 0.85),
			ContextWindow:           getEnvInt("ROSTRUM_CONTEXT_WINDOW", 500),
			AttributionWindowBefore: getEnvInt("ROSTRUM_ATTRIBUTION_WINDOW_BEFORE", 300),
			AttributionWindowAfter:  getEnvInt("ROSTRUM_ATTRIBUTION_WINDOW_AFTER", 50),
			Workers:                 getEnvInt("ROSTRUM_WORKERS", 4),
			QueryRateLimit:          getEnvFloat("ROSTRUM_QUERY_RATE_LIMIT", 0),
			GroupTimeout:            getEnvDuration("ROSTRUM_GROUP_TIMEOUT", 0),
			FigureTablePath:         getEnv("ROSTRUM_FIGURE_TABLE", ""),
			KnownQuoteTablePath:     getEnv("ROSTRUM_KNOWN_QUOTE_TABLE", ""),
		},
		Report: ReportConfig{
			TopN:       getEnvInt("ROSTRUM_REPORT_TOP_N", 50),
			OutputPath: getEnv("ROSTRUM_REPORT_PATH", "quotation_analysis_report.md"),
			Color:      getEnvBool("ROSTRUM_REPORT_COLOR", true),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects configurations the pipeline cannot run with.
func (c *Config) validate() error {
	switch c.Storage.Engine {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unknown storage engine %q", c.Storage.Engine)
	}

	if c.Storage.Engine == "postgres" && c.Storage.PostgresDSN == "" {
		return fmt.Errorf("config: ROSTRUM_POSTGRES_DSN is required for the postgres engine")
	}

	if c.Extract.SimilarityThreshold <= 0 || c.Extract.SimilarityThreshold > 1 {
		return fmt.Errorf("config: similarity threshold %v outside (0,1]", c.Extract.SimilarityThreshold)
	}

	if c.Extract.MinQuoteLength < 1 {
		return fmt.Errorf("config: minimum quote length must be positive, got %d", c.Extract.MinQuoteLength)
	}

	if c.Extract.Workers < 1 {
		return fmt.Errorf("config: worker count must be positive, got %d", c.Extract.Workers)
	}

	return nil
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default value.
// If the environment variable exists but cannot be parsed as an integer,
// it returns the default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns a default value.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns a default value.
// It recognizes "true", "1", "yes" as true and "false", "0", "no" as false (case-insensitive).
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		switch value {
		case "true", "1", "yes", "True", "TRUE", "Yes", "YES":
			return true
		case "false", "0", "no", "False", "FALSE", "No", "NO":
			return false
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable (e.g. "30s") or
// returns a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
