// =============================================================================
// Product ETL - Configuration Module
// =============================================================================
//
// This module loads the pipeline configuration from a YAML file, applies
// default values, and validates the result.
//
// CONFIGURATION FILE (config.yaml):
//   input_file:  data/products.csv
//   output_file: data/transformed_products.csv
//   delimiter:   ","
//   log_level:   info
//   xlsx_report: ""
//   summary_dir: ""
//
// Command-line flags override any value read from the file (see cmd/root.go
// and cmd/process.go).
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// DEFAULTS
// =============================================================================

const (
	DefaultInputFile  = "data/products.csv"
	DefaultOutputFile = "data/transformed_products.csv"
	DefaultDelimiter  = ","
	DefaultLogLevel   = "info"
)

// validLogLevels lists the accepted values for LogLevel.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the settings for one pipeline run.
type Config struct {
	// =========================================================================
	// FILE SETTINGS
	// =========================================================================

	// InputFile is the delimited product file to read.
	// Default: "data/products.csv"
	InputFile string `yaml:"input_file"`

	// OutputFile is where transformed records are written. Its directory is
	// created if missing.
	// Default: "data/transformed_products.csv"
	OutputFile string `yaml:"output_file"`

	// Delimiter separates fields on both input and output.
	// Aliases: "tab", "\t", "pipe", "semicolon".
	// Default: ","
	Delimiter string `yaml:"delimiter"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// REPORT SETTINGS
	// =========================================================================

	// XLSXReport is an optional path for a spreadsheet copy of the output.
	// Empty disables the report.
	XLSXReport string `yaml:"xlsx_report"`

	// SummaryDir is an optional directory for run summary logs.
	// Empty disables the summary log.
	SummaryDir string `yaml:"summary_dir"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads the configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the configuration file. An empty path returns
//     the defaults.
//
// RETURNS:
//   - The loaded, defaulted and validated configuration.
//   - An error if the file cannot be read, parsed, or fails validation.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// ApplyDefaults sets default values for any unset option and resolves
// delimiter aliases.
func ApplyDefaults(cfg *Config) {
	if cfg.InputFile == "" {
		cfg.InputFile = DefaultInputFile
	}
	if cfg.OutputFile == "" {
		cfg.OutputFile = DefaultOutputFile
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	cfg.Delimiter = NormalizeDelimiter(cfg.Delimiter)
}

// NormalizeDelimiter resolves the named delimiter aliases.
func NormalizeDelimiter(delimiter string) string {
	switch delimiter {
	case "":
		return DefaultDelimiter
	case "\\t", "tab", "TAB":
		return "\t"
	case "pipe", "PIPE":
		return "|"
	case "semicolon", "SEMICOLON":
		return ";"
	case "comma", "COMMA":
		return ","
	default:
		return delimiter
	}
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.InputFile == "" {
		return errors.New("input_file is required")
	}
	if c.OutputFile == "" {
		return errors.New("output_file is required")
	}
	if filepath.Clean(c.InputFile) == filepath.Clean(c.OutputFile) {
		return fmt.Errorf("output_file must differ from input_file (%s)", c.InputFile)
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("delimiter must be a single character, got %q", c.Delimiter)
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return nil
}
