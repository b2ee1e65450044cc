// Package config loads multisearch settings from a YAML file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/trevor-leach/multisearch/api"
	"github.com/trevor-leach/multisearch/api/exact"
)

// Config holds all configuration for multisearch
type Config struct {
	// Search terms
	Terms     []string `yaml:"terms"`
	TermFiles []string `yaml:"term_files"`

	// Search behavior
	Mode               string `yaml:"mode" env:"MULTISEARCH_MODE"`
	Offset             int    `yaml:"offset" env:"MULTISEARCH_OFFSET"`
	Sort               bool   `yaml:"sort" env:"MULTISEARCH_SORT"`
	PrefilterThreshold int    `yaml:"prefilter_threshold" env:"MULTISEARCH_PREFILTER"`

	// Input
	Recursive bool   `yaml:"recursive" env:"MULTISEARCH_RECURSIVE"`
	Encoding  string `yaml:"encoding" env:"MULTISEARCH_ENCODING"`
	Workers   int    `yaml:"workers" env:"MULTISEARCH_WORKERS"`
	Progress  bool   `yaml:"progress" env:"MULTISEARCH_PROGRESS"`

	// Output
	Format string `yaml:"format" env:"MULTISEARCH_FORMAT"`
	Color  string `yaml:"color" env:"MULTISEARCH_COLOR"`

	// Logging
	LogLevel string `yaml:"log_level" env:"MULTISEARCH_LOG_LEVEL"`
	LogFile  string `yaml:"log_file" env:"MULTISEARCH_LOG_FILE"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Mode:               api.ModeAll.String(),
		PrefilterThreshold: exact.DefaultPrefilterThreshold,
		Encoding:           "utf-8",
		Workers:            4,
		Format:             "tsv",
		Color:              "auto",
		LogLevel:           "warn",
	}
}

// Load loads configuration from the file at path, or from the default
// location when path is empty, and then from the environment.
// A missing default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = getConfigPath()
	}
	if path != "" {
		if err := loadFromFile(cfg, path); err != nil && (explicit || !os.IsNotExist(err)) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// getConfigPath returns the config file path
func getConfigPath() string {
	if path := os.Getenv("MULTISEARCH_CONFIG"); path != "" {
		return path
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "multisearch", "config.yaml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "multisearch", "config.yaml")
	}

	return ""
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, path string) error {
	// #nosec G304 - the path is chosen by the user running the tool
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// loadFromEnv loads configuration from environment variables
func loadFromEnv(cfg *Config) error {
	strs := map[string]*string{
		"MULTISEARCH_MODE":      &cfg.Mode,
		"MULTISEARCH_ENCODING":  &cfg.Encoding,
		"MULTISEARCH_FORMAT":    &cfg.Format,
		"MULTISEARCH_COLOR":     &cfg.Color,
		"MULTISEARCH_LOG_LEVEL": &cfg.LogLevel,
		"MULTISEARCH_LOG_FILE":  &cfg.LogFile,
	}
	for name, dst := range strs {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	ints := map[string]*int{
		"MULTISEARCH_OFFSET":    &cfg.Offset,
		"MULTISEARCH_WORKERS":   &cfg.Workers,
		"MULTISEARCH_PREFILTER": &cfg.PrefilterThreshold,
	}
	for name, dst := range ints {
		if v := os.Getenv(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid %s: %w", name, err)
			}
			*dst = n
		}
	}

	bools := map[string]*bool{
		"MULTISEARCH_SORT":      &cfg.Sort,
		"MULTISEARCH_RECURSIVE": &cfg.Recursive,
		"MULTISEARCH_PROGRESS":  &cfg.Progress,
	}
	for name, dst := range bools {
		if v := os.Getenv(name); v != "" {
			switch strings.ToLower(v) {
			case "true", "1", "yes":
				*dst = true
			case "false", "0", "no":
				*dst = false
			default:
				return fmt.Errorf("invalid %s value: %q (use true/false)", name, v)
			}
		}
	}

	if terms := os.Getenv("MULTISEARCH_TERMS"); terms != "" {
		cfg.Terms = append(cfg.Terms, strings.Fields(terms)...)
	}

	return nil
}

// Validate checks the configuration for values the search cannot use.
func (cfg *Config) Validate() error {
	if _, err := api.ParseMode(cfg.Mode); err != nil {
		return err
	}

	if cfg.Offset < 0 {
		return fmt.Errorf("offset must be non-negative")
	}

	if cfg.PrefilterThreshold < 0 {
		return fmt.Errorf("prefilter_threshold must be non-negative")
	}

	if cfg.Workers < 1 {
		return fmt.Errorf("workers must be at least 1")
	}

	switch cfg.Format {
	case "tsv", "json":
	default:
		return fmt.Errorf("format must be tsv or json, got %q", cfg.Format)
	}

	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("color must be auto, always or never, got %q", cfg.Color)
	}

	switch strings.ToLower(cfg.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}

	return nil
}
