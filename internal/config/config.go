// Package config provides configuration loading and validation for the CLI.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Environment variable names read by FromEnv.
const (
	EnvAPIKey         = "GEMINI_API_KEY"
	EnvModel          = "ENRICHER_MODEL"
	EnvBatchSize      = "ENRICHER_BATCH_SIZE"
	EnvMaxAttempts    = "ENRICHER_MAX_ATTEMPTS"
	EnvRequestTimeout = "ENRICHER_REQUEST_TIMEOUT"
	EnvProductsPath   = "ENRICHER_PRODUCTS_PATH"
	EnvHighlightsPath = "ENRICHER_HIGHLIGHTS_PATH"
	EnvResultsPath    = "ENRICHER_RESULTS_PATH"
	EnvExcelPath      = "ENRICHER_EXCEL_PATH"
)

// Config holds the explicit runtime configuration for a run. It is built
// once at startup and passed into constructors; nothing reads process
// globals after that.
type Config struct {
	APIKey         string        `validate:"required"`
	Model          string        `validate:"required"`
	BatchSize      int           `validate:"gt=0"`
	MaxAttempts    int           `validate:"gt=0"`
	BackoffBase    float64       `validate:"gte=1"`
	RequestTimeout time.Duration `validate:"gt=0"`
	ProductsPath   string        `validate:"required"`
	HighlightsPath string        `validate:"required"`
	ResultsPath    string        `validate:"required"`
	ExcelPath      string        `validate:"required"`
}

// Default returns the configuration used when no overrides are present.
// The API key has no default; it must come from the environment.
func Default() Config {
	return Config{
		Model:          "gemini-3-flash-preview",
		BatchSize:      30,
		MaxAttempts:    3,
		BackoffBase:    2,
		RequestTimeout: 3 * time.Minute,
		ProductsPath:   "source/products-list.csv",
		HighlightsPath: "source/prod_highl.csv",
		ResultsPath:    "results.json",
		ExcelPath:      "results.xlsx",
	}
}

// FromEnv builds a Config from defaults overridden by environment
// variables, then validates it.
func FromEnv() (Config, error) {
	cfg := Default()

	cfg.APIKey = os.Getenv(EnvAPIKey)
	if v := os.Getenv(EnvModel); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv(EnvProductsPath); v != "" {
		cfg.ProductsPath = v
	}
	if v := os.Getenv(EnvHighlightsPath); v != "" {
		cfg.HighlightsPath = v
	}
	if v := os.Getenv(EnvResultsPath); v != "" {
		cfg.ResultsPath = v
	}
	if v := os.Getenv(EnvExcelPath); v != "" {
		cfg.ExcelPath = v
	}
	if v := os.Getenv(EnvBatchSize); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvBatchSize, v, err)
		}
		cfg.BatchSize = n
	}
	if v := os.Getenv(EnvMaxAttempts); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvMaxAttempts, v, err)
		}
		cfg.MaxAttempts = n
	}
	if v := os.Getenv(EnvRequestTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvRequestTimeout, v, err)
		}
		cfg.RequestTimeout = d
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration has usable values.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}
