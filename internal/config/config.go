// Package config provides configuration management for the dataset cleaner.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingSource        = errors.New("source.file or source.url is required")
	ErrMissingOutputPath    = errors.New("output.path is required")
	ErrInvalidOutputFormat  = errors.New("output.format must be 'csv' or 'json'")
	ErrInvalidMaxAttempts   = errors.New("retry.max_attempts must be at least 1")
	ErrInvalidInitialDelay  = errors.New("retry.initial_delay_ms must be non-negative")
	ErrInvalidBackoff       = errors.New("retry.backoff_multiplier must be >= 1.0")
	ErrInvalidTimeout       = errors.New("retry.timeout_sec must be at least 1")
	ErrNoSpecies            = errors.New("cleaning.species must list at least one canonical species")
	ErrNoRequiredFields     = errors.New("cleaning.required_fields must list at least one field")
	ErrInvalidMinFrequency  = errors.New("cleaning.min_frequency must be at least 1")
	ErrMissingDefault       = errors.New("cleaning.defaults values must be non-empty")
	ErrNoDropColumns        = errors.New("cleaning.drop_columns must list at least one column")
	ErrInvalidLogLevel      = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidTimeDefault   = errors.New("cleaning.defaults.time must be a valid HH:MM")
	ErrDuplicateRenameValue = errors.New("cleaning.rename maps two columns to the same name")
)

var timeDefaultPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

// Config represents the complete cleaner configuration.
type Config struct {
	Source     SourceConfig     `yaml:"source"`
	Output     OutputConfig     `yaml:"output"`
	Cleaning   CleaningConfig   `yaml:"cleaning"`
	Validation ValidationConfig `yaml:"validation"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// SourceConfig describes where the raw dataset comes from.
type SourceConfig struct {
	File  string      `yaml:"file"`
	URL   string      `yaml:"url"`
	Retry RetryPolicy `yaml:"retry"`
}

// IsLocalFile returns true if this source uses a local file.
func (s *SourceConfig) IsLocalFile() bool {
	return s.File != ""
}

// Location returns the file path if local, or URL if remote.
func (s *SourceConfig) Location() string {
	if s.IsLocalFile() {
		return s.File
	}

	return s.URL
}

// RetryPolicy defines retry behavior for remote sources.
type RetryPolicy struct {
	MaxAttempts       int     `yaml:"max_attempts"`
	InitialDelayMs    int     `yaml:"initial_delay_ms"`
	MaxDelayMs        int     `yaml:"max_delay_ms"`
	BackoffMultiplier float64 `yaml:"backoff_multiplier"`
	TimeoutSec        int     `yaml:"timeout_sec"`
}

// GetRetryDelay calculates exponential backoff delay for attempt number.
func (rp *RetryPolicy) GetRetryDelay(attempt int) time.Duration {
	if attempt <= 1 {
		return 0
	}

	delayMs := float64(rp.InitialDelayMs)
	for i := 1; i < attempt; i++ {
		delayMs *= rp.BackoffMultiplier
	}

	// Cap at max delay
	if int(delayMs) > rp.MaxDelayMs {
		delayMs = float64(rp.MaxDelayMs)
	}

	return time.Duration(int(delayMs)) * time.Millisecond
}

// GetTimeout returns the timeout duration.
func (rp *RetryPolicy) GetTimeout() time.Duration {
	return time.Duration(rp.TimeoutSec) * time.Second
}

// OutputConfig defines where and how the cleaned table is written.
type OutputConfig struct {
	Path        string `yaml:"path"`
	Format      string `yaml:"format"`
	PrettyPrint bool   `yaml:"pretty_print"`
}

// CleaningConfig carries the fixed policies of the cleaning steps.
type CleaningConfig struct {
	Rename         map[string]string `yaml:"rename"`
	RequiredFields []string          `yaml:"required_fields"`
	MinFrequency   int               `yaml:"min_frequency"`
	Punctuation    string            `yaml:"punctuation"`
	Species        []string          `yaml:"species"`
	DropColumns    []string          `yaml:"drop_columns"`
	Categorical    []string          `yaml:"categorical"`
	Defaults       FieldDefaults     `yaml:"defaults"`
}

// FieldDefaults is the explicit per-field default-value policy. The
// sentinels used when a value is missing or unparseable live here rather
// than inline in the steps, so tests can assert on the policy directly.
type FieldDefaults struct {
	Fatal       string `yaml:"fatal"`
	Time        string `yaml:"time"`
	Species     string `yaml:"species"`
	FileRef     string `yaml:"file_ref"`
	NumericFill int    `yaml:"numeric_fill"`
}

// ValidationConfig defines output validation rules.
type ValidationConfig struct {
	Strict         bool   `yaml:"strict"`
	TimePattern    string `yaml:"time_pattern"`
	FileRefPattern string `yaml:"file_ref_pattern"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level        string `yaml:"level"`
	ShowProgress bool   `yaml:"show_progress"`
}

// DefaultRename is the rename map for the known irregular column headers in
// the source dataset: the unlabeled twelfth column holds the fatality code,
// and the species header carries a trailing space.
func DefaultRename() map[string]string {
	return map[string]string{
		"Unnamed: 11": "fatal",
		"Species ":    "species",
	}
}

// DefaultFieldDefaults returns the sentinel policy the cleaner ships with.
func DefaultFieldDefaults() FieldDefaults {
	return FieldDefaults{
		Fatal:       "Unknown",
		Time:        "12:00",
		Species:     "Unknown",
		FileRef:     "Unknown",
		NumericFill: 0,
	}
}

// DefaultCleaning returns the fixed cleaning policy with the supplied
// species vocabulary. The vocabulary has no default of its own.
func DefaultCleaning(species []string) CleaningConfig {
	return CleaningConfig{
		Rename:         DefaultRename(),
		RequiredFields: []string{"country", "name", "sex", "age", "fatal"},
		MinFrequency:   30,
		Punctuation:    "¡¿.,!?;",
		Species:        species,
		DropColumns:    []string{"original_order", "unnamed:_21", "unnamed:_22"},
		Defaults:       DefaultFieldDefaults(),
	}
}

// LoadConfig loads configuration from a YAML file, fills defaults for
// omitted cleaning policies, and validates the result.
func LoadConfig(filepath string) (*Config, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// SaveConfig saves configuration to a YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func (c *Config) fillDefaults() {
	def := DefaultCleaning(nil)

	if c.Cleaning.Rename == nil {
		c.Cleaning.Rename = def.Rename
	}

	if len(c.Cleaning.RequiredFields) == 0 {
		c.Cleaning.RequiredFields = def.RequiredFields
	}

	if c.Cleaning.MinFrequency == 0 {
		c.Cleaning.MinFrequency = def.MinFrequency
	}

	if c.Cleaning.Punctuation == "" {
		c.Cleaning.Punctuation = def.Punctuation
	}

	if len(c.Cleaning.DropColumns) == 0 {
		c.Cleaning.DropColumns = def.DropColumns
	}

	if c.Cleaning.Defaults == (FieldDefaults{}) {
		c.Cleaning.Defaults = def.Defaults
	}

	if c.Validation.TimePattern == "" {
		c.Validation.TimePattern = `^([01]\d|2[0-3]):[0-5]\d$`
	}

	if c.Validation.FileRefPattern == "" {
		c.Validation.FileRefPattern = `^[A-Za-z0-9._-]+$`
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	if c.Source.Retry == (RetryPolicy{}) {
		c.Source.Retry = RetryPolicy{
			MaxAttempts:       3,
			InitialDelayMs:    500,
			MaxDelayMs:        30000,
			BackoffMultiplier: 2.0,
			TimeoutSec:        30,
		}
	}

	if c.Output.Format == "" {
		c.Output.Format = "csv"
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Source.File == "" && c.Source.URL == "" {
		return ErrMissingSource
	}

	if c.Output.Path == "" {
		return ErrMissingOutputPath
	}

	if c.Output.Format != "csv" && c.Output.Format != "json" {
		return ErrInvalidOutputFormat
	}

	if err := c.Source.Retry.validate(); err != nil {
		return err
	}

	// The species vocabulary is caller-supplied; there is no persisted default.
	if len(c.Cleaning.Species) == 0 {
		return ErrNoSpecies
	}

	if len(c.Cleaning.RequiredFields) == 0 {
		return ErrNoRequiredFields
	}

	if c.Cleaning.MinFrequency < 1 {
		return ErrInvalidMinFrequency
	}

	if len(c.Cleaning.DropColumns) == 0 {
		return ErrNoDropColumns
	}

	if err := c.Cleaning.Defaults.validate(); err != nil {
		return err
	}

	seen := make(map[string]bool, len(c.Cleaning.Rename))

	for _, target := range c.Cleaning.Rename {
		if seen[target] {
			return fmt.Errorf("%w: %s", ErrDuplicateRenameValue, target)
		}

		seen[target] = true
	}

	// Validate regex patterns
	patterns := map[string]string{
		"time_pattern":     c.Validation.TimePattern,
		"file_ref_pattern": c.Validation.FileRefPattern,
	}

	for name, pattern := range patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("validation.%s is invalid regex: %w", name, err)
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		return ErrInvalidLogLevel
	}

	return nil
}

func (rp *RetryPolicy) validate() error {
	if rp.MaxAttempts < 1 {
		return ErrInvalidMaxAttempts
	}

	if rp.InitialDelayMs < 0 {
		return ErrInvalidInitialDelay
	}

	if rp.BackoffMultiplier < 1.0 {
		return ErrInvalidBackoff
	}

	if rp.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}

	return nil
}

func (fd *FieldDefaults) validate() error {
	if fd.Fatal == "" || fd.Time == "" || fd.Species == "" || fd.FileRef == "" {
		return ErrMissingDefault
	}

	if !timeDefaultPattern.MatchString(fd.Time) {
		return ErrInvalidTimeDefault
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Source: %s, Species: %d, MinFrequency: %d, Output: %s}",
		c.Source.Location(),
		len(c.Cleaning.Species),
		c.Cleaning.MinFrequency,
		c.Output.Path,
	)
}
