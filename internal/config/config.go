package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// Config represents the entire application configuration
type Config struct {
	Source  SourceConfig  `mapstructure:"source"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Ledger  LedgerConfig  `mapstructure:"ledger"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// SourceConfig identifies the remote repository subtree to fetch
type SourceConfig struct {
	Owner   string `mapstructure:"owner"`
	Repo    string `mapstructure:"repo"`
	Ref     string `mapstructure:"ref"`
	Dir     string `mapstructure:"dir"`
	Token   string `mapstructure:"token"`
	APIBase string `mapstructure:"api_base"`
	RawBase string `mapstructure:"raw_base"`
}

// FetchConfig contains fetch pipeline tuning
type FetchConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	TryLimits   int    `mapstructure:"try_limits"`
	Timeout     string `mapstructure:"timeout"`
	Force       bool   `mapstructure:"force"`
}

// LedgerConfig contains materialization ledger settings
type LedgerConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from the given file path
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Token may come from the environment instead of the file
	if config.Source.Token == "" {
		config.Source.Token = os.Getenv("GITHUB_TOKEN")
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("source.ref", "main")
	v.SetDefault("source.dir", "")
	v.SetDefault("fetch.concurrency", 3)
	v.SetDefault("fetch.try_limits", 3)
	v.SetDefault("fetch.timeout", "0s")
	v.SetDefault("fetch.force", false)
	v.SetDefault("ledger.enabled", true)
	v.SetDefault("ledger.path", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Source.Owner == "" {
		return fmt.Errorf("source.owner is required")
	}
	if c.Source.Repo == "" {
		return fmt.Errorf("source.repo is required")
	}
	if c.Source.Ref == "" {
		return fmt.Errorf("source.ref is required")
	}

	if c.Fetch.Concurrency < 1 || c.Fetch.Concurrency > 20 {
		return fmt.Errorf("fetch.concurrency must be between 1 and 20")
	}
	if c.Fetch.TryLimits < 1 {
		return fmt.Errorf("fetch.try_limits must be at least 1")
	}
	if _, err := time.ParseDuration(c.Fetch.Timeout); err != nil {
		return fmt.Errorf("invalid fetch.timeout: %w", err)
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		// Valid levels
	default:
		return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "json", "text":
		// Valid formats
	default:
		return fmt.Errorf("invalid logging.format: %s", c.Logging.Format)
	}

	return nil
}

// GetTimeout returns the per-fetch deadline as time.Duration. Zero means
// no deadline.
func (c *FetchConfig) GetTimeout() time.Duration {
	d, _ := time.ParseDuration(c.Timeout)
	return d
}
