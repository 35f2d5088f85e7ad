// Package common provides shared utilities for patrimo
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for patrimo
type Config struct {
	Environment string        `toml:"environment"`
	Storage     StorageConfig `toml:"storage"`
	Ledger      LedgerConfig  `toml:"ledger"`
	Charts      ChartsConfig  `toml:"charts"`
	Gemini      GeminiConfig  `toml:"gemini"`
	Logging     LoggingConfig `toml:"logging"`
}

// StorageConfig holds the embedded database path.
type StorageConfig struct {
	Path string `toml:"path"`
}

// LedgerConfig holds realized-trade ledger defaults.
type LedgerConfig struct {
	TaxRatePct float64 `toml:"tax_rate_pct"` // flat capital-gains estimate, default 28
	ShowTax    bool    `toml:"show_tax"`
}

// ChartsConfig holds chart export configuration.
type ChartsConfig struct {
	OutputDir string `toml:"output_dir"`
}

// GeminiConfig holds Gemini API configuration for the AI summary.
type GeminiConfig struct {
	APIKey    string `toml:"api_key"`
	Model     string `toml:"model"`
	RateLimit int    `toml:"rate_limit"` // requests per minute
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Storage: StorageConfig{
			Path: "data/patrimo",
		},
		Ledger: LedgerConfig{
			TaxRatePct: 28,
			ShowTax:    true,
		},
		Charts: ChartsConfig{
			OutputDir: "data/charts",
		},
		Gemini: GeminiConfig{
			Model:     "gemini-2.0-flash",
			RateLimit: 5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("PATRIMO_ENV"); env != "" {
		config.Environment = env
	}

	if path := os.Getenv("PATRIMO_DATA_PATH"); path != "" {
		config.Storage.Path = path
	}

	if level := os.Getenv("PATRIMO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if rate := os.Getenv("PATRIMO_TAX_RATE"); rate != "" {
		if r, err := strconv.ParseFloat(rate, 64); err == nil && r >= 0 {
			config.Ledger.TaxRatePct = r
		}
	}

	if dir := os.Getenv("PATRIMO_CHARTS_DIR"); dir != "" {
		config.Charts.OutputDir = dir
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if key := os.Getenv("PATRIMO_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}
	if model := os.Getenv("PATRIMO_GEMINI_MODEL"); model != "" {
		config.Gemini.Model = model
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
