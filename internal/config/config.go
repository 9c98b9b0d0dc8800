package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/runnerr0/searchwrapped/internal/history"
)

// Default config file path.
const DefaultConfigPath = "~/.config/searchwrapped/config.yaml"

// Config holds all searchwrapped configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type AnalysisConfig struct {
	Language    string `yaml:"language"`
	FromDate    string `yaml:"from_date"`
	UntilDate   string `yaml:"until_date"`
	AssumeZone  string `yaml:"assume_zone"` // zone for timestamps without an offset
	TopTerms    int    `yaml:"top_terms"`
	FillHeatmap bool   `yaml:"fill_heatmap"`
}

type StorageConfig struct {
	Path              string `yaml:"path"`
	SQLiteFile        string `yaml:"sqlite_file"`
	SQLiteJournalMode string `yaml:"sqlite_journal_mode"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // console | json
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read, contains invalid YAML or
// fails validation.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config file: %w", err)
	}

	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	if _, err := history.ParseLanguage(c.Analysis.Language); err != nil {
		return err
	}
	if _, err := c.Analysis.Location(); err != nil {
		return err
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

// Location resolves AssumeZone. Empty means UTC.
func (a AnalysisConfig) Location() (*time.Location, error) {
	if a.AssumeZone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(a.AssumeZone)
	if err != nil {
		return nil, fmt.Errorf("assume_zone %q: %w", a.AssumeZone, err)
	}
	return loc, nil
}

// DatabasePath returns the archive file path with ~ expanded.
func (c *Config) DatabasePath() (string, error) {
	dir, err := expandPath(c.Storage.Path)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, c.Storage.SQLiteFile), nil
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// DefaultPath returns DefaultConfigPath with ~ expanded.
func DefaultPath() (string, error) {
	return expandPath(DefaultConfigPath)
}

// LoadOrDefault loads the config at path if it exists and returns defaults
// otherwise. Nothing is written to disk.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
