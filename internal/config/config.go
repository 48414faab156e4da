// Package config provides configuration management for md2docx.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/open-cli-collective/md2docx/internal/logging"
	"github.com/open-cli-collective/md2docx/internal/view"
)

// Engine names accepted in the engine field.
const (
	EngineNative     = "native"
	EngineCommonMark = "commonmark"
)

// MaxWorkers bounds the number of documents converted at once.
const MaxWorkers = 64

// Config holds the md2docx configuration.
type Config struct {
	OutputDir            string `yaml:"output_dir,omitempty"`
	Engine               string `yaml:"engine,omitempty"`
	Workers              int    `yaml:"workers,omitempty"`
	TitleFromFrontMatter bool   `yaml:"title_from_frontmatter,omitempty"`
	LogLevel             string `yaml:"log_level,omitempty"`
	LogFormat            string `yaml:"log_format,omitempty"`
	OutputFormat         string `yaml:"output_format,omitempty"`
}

// Validate checks that every set field holds an accepted value.
func (c *Config) Validate() error {
	switch c.Engine {
	case "", EngineNative, EngineCommonMark:
	default:
		return fmt.Errorf("engine must be %s or %s, got %q", EngineNative, EngineCommonMark, c.Engine)
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("workers must be between 0 and %d, got %d", MaxWorkers, c.Workers)
	}

	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return err
	}

	return view.ValidateFormat(c.OutputFormat)
}

// LoadFromEnv loads configuration from environment variables.
// Environment variables override existing values only if set and non-empty.
// Precedence: MD2DOCX_* → generic fallback (LOG_LEVEL) → existing config value
func (c *Config) LoadFromEnv() {
	if dir := os.Getenv("MD2DOCX_OUTPUT_DIR"); dir != "" {
		c.OutputDir = dir
	}
	if engine := os.Getenv("MD2DOCX_ENGINE"); engine != "" {
		c.Engine = engine
	}
	// Unparseable numbers and booleans are ignored.
	if workers, err := strconv.Atoi(os.Getenv("MD2DOCX_WORKERS")); err == nil {
		c.Workers = workers
	}
	if title, err := strconv.ParseBool(os.Getenv("MD2DOCX_TITLE_FROM_FRONTMATTER")); err == nil {
		c.TitleFromFrontMatter = title
	}
	if level := getEnvWithFallback("MD2DOCX_LOG_LEVEL", "LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}
	if format := os.Getenv("MD2DOCX_LOG_FORMAT"); format != "" {
		c.LogFormat = format
	}
	if output := os.Getenv("MD2DOCX_OUTPUT_FORMAT"); output != "" {
		c.OutputFormat = output
	}
}

// getEnvWithFallback returns the value of the primary env var, or the fallback if primary is empty.
func getEnvWithFallback(primary, fallback string) string {
	if v := os.Getenv(primary); v != "" {
		return v
	}
	return os.Getenv(fallback)
}

// DefaultConfigPath returns the default configuration file path.
func DefaultConfigPath() string {
	// Try XDG config directory first
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "md2docx", "config.yml")
	}

	// Fall back to ~/.config/md2docx/config.yml
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".md2docx", "config.yml")
	}

	return filepath.Join(home, ".config", "md2docx", "config.yml")
}

// ResolvePath returns the --config flag value when set, otherwise the
// default path.
func ResolvePath(flagValue string) string {
	if flagValue != "" {
		return flagValue
	}
	return DefaultConfigPath()
}

// Save writes the configuration to the specified path.
func (c *Config) Save(path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Load reads the configuration from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return &cfg, nil
}

// LoadWithEnv loads configuration from file and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		// A missing file means an empty config; a broken one is an error
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
		cfg = &Config{}
	}

	cfg.LoadFromEnv()
	return cfg, nil
}
