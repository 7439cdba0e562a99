package config

import (
	"os"
	"strconv"
	"strings"

	"edakit/internal/errors"

	"github.com/joho/godotenv"
)

// Denominator selects the basis of the outlier percentage
type Denominator string

const (
	DenominatorTotalRows  Denominator = "total_rows"
	DenominatorNonMissing Denominator = "non_missing"
)

// Config represents the complete toolkit configuration
type Config struct {
	Outlier      OutlierConfig
	Correlation  CorrelationConfig
	Significance SignificanceConfig
	Report       ReportConfig
}

// OutlierConfig holds the classifier constants
type OutlierConfig struct {
	SkewThreshold   float64     // |rounded skew| <= threshold is "normal"
	BoundMultiplier float64     // k in mean ± k·std and Q ± k·IQR
	MinSampleSize   int         // fewer non-missing values fail with ErrInsufficientSample
	Denominator     Denominator // basis of OutlierPercentage
	Parallelism     int         // 1 = sequential
}

// CorrelationConfig holds correlation method selection settings
type CorrelationConfig struct {
	SkewCutoff float64 // |skew| < cutoff selects Pearson, otherwise Spearman
}

// SignificanceConfig holds hypothesis test settings
type SignificanceConfig struct {
	Alpha float64
}

// ReportConfig holds rendering settings
type ReportConfig struct {
	Format string
	Title  string
}

// Default returns the reference constants
func Default() *Config {
	return &Config{
		Outlier: OutlierConfig{
			SkewThreshold:   0.5,
			BoundMultiplier: 3,
			MinSampleSize:   3,
			Denominator:     DenominatorTotalRows,
			Parallelism:     1,
		},
		Correlation: CorrelationConfig{
			SkewCutoff: 0.5,
		},
		Significance: SignificanceConfig{
			Alpha: 0.05,
		},
		Report: ReportConfig{
			Format: "markdown",
			Title:  "Exploratory Data Analysis",
		},
	}
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	def := Default()
	config := &Config{
		Outlier: OutlierConfig{
			SkewThreshold:   getEnvFloatOrDefault("EDA_SKEW_THRESHOLD", def.Outlier.SkewThreshold),
			BoundMultiplier: getEnvFloatOrDefault("EDA_BOUND_MULTIPLIER", def.Outlier.BoundMultiplier),
			MinSampleSize:   getEnvIntOrDefault("EDA_MIN_SAMPLE_SIZE", def.Outlier.MinSampleSize),
			Denominator:     Denominator(getEnvOrDefault("EDA_OUTLIER_DENOMINATOR", string(def.Outlier.Denominator))),
			Parallelism:     getEnvIntOrDefault("EDA_PARALLELISM", def.Outlier.Parallelism),
		},
		Correlation: CorrelationConfig{
			SkewCutoff: getEnvFloatOrDefault("EDA_CORRELATION_SKEW_CUTOFF", def.Correlation.SkewCutoff),
		},
		Significance: SignificanceConfig{
			Alpha: getEnvFloatOrDefault("EDA_ALPHA", def.Significance.Alpha),
		},
		Report: ReportConfig{
			Format: strings.ToLower(getEnvOrDefault("EDA_REPORT_FORMAT", def.Report.Format)),
			Title:  getEnvOrDefault("EDA_REPORT_TITLE", def.Report.Title),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

// LoadFile loads a .env file into the process environment, then calls Load.
// Variables already set in the environment win over the file.
func LoadFile(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil {
			return nil, errors.WithCode(errors.CodeConfigInvalid, errors.Wrapf(err, "failed to read env file %s", path))
		}
	}
	return Load()
}

// Validate checks ranges and enumerations
func (c *Config) Validate() error {
	if c.Outlier.SkewThreshold < 0 {
		return errors.ConfigInvalid("skew threshold must be non-negative")
	}
	if c.Outlier.BoundMultiplier <= 0 {
		return errors.ConfigInvalid("bound multiplier must be positive")
	}
	if c.Outlier.MinSampleSize < 1 {
		return errors.ConfigInvalid("minimum sample size must be at least 1")
	}
	switch c.Outlier.Denominator {
	case DenominatorTotalRows, DenominatorNonMissing:
	default:
		return errors.ConfigInvalid("outlier denominator must be total_rows or non_missing")
	}
	if c.Outlier.Parallelism < 1 {
		return errors.ConfigInvalid("parallelism must be at least 1")
	}
	if c.Correlation.SkewCutoff < 0 {
		return errors.ConfigInvalid("correlation skew cutoff must be non-negative")
	}
	if c.Significance.Alpha <= 0 || c.Significance.Alpha >= 1 {
		return errors.ConfigInvalid("alpha must be in (0, 1)")
	}
	switch c.Report.Format {
	case "markdown", "html", "json", "xlsx":
	default:
		return errors.ConfigInvalid("report format must be markdown, html, json or xlsx")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
