package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/runnerr0/wqlab/internal/dataset"
)

// Default config file path.
const DefaultConfigPath = "~/.config/wqlab/config.yaml"

// Config holds all wqlab configuration.
type Config struct {
	Columns dataset.Columns `yaml:"columns"`
	Parsing ParsingConfig   `yaml:"parsing"`
	Chart   ChartConfig     `yaml:"chart"`
	Map     MapConfig       `yaml:"map"`
	Export  ExportConfig    `yaml:"export"`
	Logging LoggingConfig   `yaml:"logging"`
}

type ParsingConfig struct {
	DateLayouts []string `yaml:"date_layouts"`
}

type ChartConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Format string `yaml:"format"`
}

type MapConfig struct {
	Output      string `yaml:"output"`
	Zoom        int    `yaml:"zoom"`
	OpenBrowser bool   `yaml:"open_browser"`
}

type ExportConfig struct {
	Database string `yaml:"database"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	Color bool   `yaml:"color"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read, contains invalid YAML, or
// holds out-of-range values.
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
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks values a YAML file can set to something unusable.
func (c *Config) Validate() error {
	var errs []error
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		errs = append(errs, fmt.Errorf("chart size must be positive, got %dx%d", c.Chart.Width, c.Chart.Height))
	}
	switch c.Chart.Format {
	case "png", "svg":
	default:
		errs = append(errs, fmt.Errorf("chart format must be png or svg, got %q", c.Chart.Format))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown logging level %q", c.Logging.Level))
	}
	if c.Columns.Site == "" || c.Columns.Characteristic == "" || c.Columns.Date == "" || c.Columns.Value == "" {
		errs = append(errs, errors.New("site, characteristic, date and value column names are required"))
	}
	return errors.Join(errs...)
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

// Resolve loads path when given. Otherwise it loads the default config file
// if one exists, and falls back to built-in defaults.
func Resolve(path string) (*Config, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return nil, err
		}
		return Load(expanded)
	}

	def, err := expandPath(DefaultConfigPath)
	if err != nil {
		return DefaultConfig(), nil
	}
	if _, err := os.Stat(def); err != nil {
		return DefaultConfig(), nil
	}
	return Load(def)
}

// DefaultPath returns DefaultConfigPath with the home directory expanded.
func DefaultPath() (string, error) {
	return expandPath(DefaultConfigPath)
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
