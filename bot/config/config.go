// Package config assembles the application configuration on top of the
// reusable core config.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"assistbot/bot/currency"
	"assistbot/bot/hotels"
	"assistbot/bot/weather"
	coreconfig "assistbot/core/config"
	coredatabase "assistbot/core/database"
)

// ProvidersConfig groups the external lookup services.
type ProvidersConfig struct {
	Weather  weather.Config  `yaml:"weather"`
	Hotels   hotels.Config   `yaml:"hotels"`
	Currency currency.Config `yaml:"currency"`
	// TimeoutSeconds bounds each outbound lookup; 0 -> 10s.
	TimeoutSeconds int `yaml:"timeout_seconds" envconfig:"PROVIDERS_TIMEOUT_SECONDS"`
}

// HistoryConfig points at the audit file for weather/hotel lookups.
type HistoryConfig struct {
	Path string `yaml:"path" envconfig:"HISTORY_PATH"`
}

// Config is the full application configuration.
type Config struct {
	Core      coreconfig.Config   `yaml:",inline"`
	Database  coredatabase.Config `yaml:"database"`
	Providers ProvidersConfig     `yaml:"providers"`
	History   HistoryConfig       `yaml:"history"`
	// WelcomePhoto is an optional image sent with /start; empty skips it.
	WelcomePhoto string `yaml:"welcome_photo" envconfig:"WELCOME_PHOTO"`
}

// CoreConfig satisfies cmd.ConfigCarrier.
func (c *Config) CoreConfig() *coreconfig.Config {
	return &c.Core
}

// ProviderTimeout returns the per-lookup deadline.
func (c *Config) ProviderTimeout() time.Duration {
	if c.Providers.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.Providers.TimeoutSeconds) * time.Second
}

// Load reads the YAML file at path, overlays environment variables,
// and validates the result. A .env file next to the process is loaded
// first when present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and fills defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return err
	}
	if cfg.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if cfg.Providers.Weather.APIKey == "" {
		return fmt.Errorf("providers.weather.api_key is required")
	}
	if cfg.Providers.Hotels.APIKey == "" {
		return fmt.Errorf("providers.hotels.api_key is required")
	}
	if cfg.Providers.TimeoutSeconds < 0 {
		return fmt.Errorf("providers.timeout_seconds must be >= 0")
	}
	if cfg.History.Path == "" {
		cfg.History.Path = "history.txt"
	}
	return nil
}
