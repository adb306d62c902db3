package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/danielpatrickdp/mandeval/internal/benefit"
	"github.com/danielpatrickdp/mandeval/internal/draws"
	"github.com/danielpatrickdp/mandeval/internal/rng"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config holds all mandeval configuration.
type Config struct {
	// Panel identity
	Seed  uint32 `yaml:"seed"`
	Draws int    `yaml:"draws"`

	// Storage
	DBPath string `yaml:"db_path"`

	// gRPC listen address for `mandeval serve`
	ListenAddr string `yaml:"listen_addr"`

	LogLevel string `yaml:"log_level"`

	// Optional YAML coefficient table replacing the built-in one
	CoefficientsPath string `yaml:"coefficients_path"`

	// Valuation defaults used until the user saves settings
	Settings benefit.Settings `yaml:"settings"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Seed:       rng.DefaultSeed,
		Draws:      draws.DefaultDrawCount,
		DBPath:     filepath.Join("data", "mandeval.db"),
		ListenAddr: "localhost:50061",
		LogLevel:   "info",
		Settings:   benefit.DefaultSettings(),
	}
}

// Load loads configuration from a YAML file. A missing file yields defaults.
// Environment variables override both.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies MANDEVAL_* environment variable overrides.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("MANDEVAL_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			return fmt.Errorf("MANDEVAL_SEED: %w", err)
		}
		c.Seed = uint32(seed)
	}
	if v := os.Getenv("MANDEVAL_DRAWS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("MANDEVAL_DRAWS: %w", err)
		}
		c.Draws = n
	}
	if v := os.Getenv("MANDEVAL_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("MANDEVAL_ADDR"); v != "" {
		c.ListenAddr = v
	}
	if v := os.Getenv("MANDEVAL_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("MANDEVAL_COEFFICIENTS"); v != "" {
		c.CoefficientsPath = v
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Draws < 1 {
		return fmt.Errorf("draws must be at least 1, got %d", c.Draws)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.DBPath == "" {
		return fmt.Errorf("db_path must be set")
	}
	switch c.Settings.VSLScheme {
	case "", "vsl", "vsly":
	default:
		return fmt.Errorf("invalid vsl_scheme %q (valid: vsl, vsly)", c.Settings.VSLScheme)
	}
	if c.Settings.ValuePerLife < 0 {
		return fmt.Errorf("value_per_life must not be negative, got %v", c.Settings.ValuePerLife)
	}
	return nil
}
