// Package config provides configuration management for the back-office client.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	apperrors "mt5-backoffice/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	API         APIConfig   `mapstructure:"api"`
	UI          UIConfig    `mapstructure:"ui"`
	Cache       CacheConfig `mapstructure:"cache"`
	Credentials Credentials `mapstructure:"-"` // Loaded separately
}

// APIConfig holds backend connection configuration.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// UIConfig holds terminal output configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
	Currency     string `mapstructure:"currency"`
}

// CacheConfig holds local snapshot cache configuration.
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Credentials holds login and MT5 bridge credentials.
type Credentials struct {
	Backoffice BackofficeCredentials `mapstructure:"backoffice"`
	MT5        MT5Credentials        `mapstructure:"mt5"`
}

// BackofficeCredentials holds the stored login for non-interactive use.
type BackofficeCredentials struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// MT5Credentials holds the operator-level bridge credentials used for the
// best-effort terminal connect after login. Per-user credentials do not
// exist yet; these defaults match the backend's demo bridge.
type MT5Credentials struct {
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/mt5-backoffice"
	}
	return filepath.Join(home, ".config", "mt5-backoffice")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	if err := loadCredentials(configDir, &cfg.Credentials); err != nil {
		return nil, fmt.Errorf("loading credentials.toml: %w", err)
	}

	applyEnvOverrides(cfg)
	applyDefaults(cfg, configDir)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir string, target *Config) error {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", "30s")
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02 Jan 2006")
	v.SetDefault("ui.currency", "USD")
	v.SetDefault("cache.enabled", true)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if werr := createTemplateConfig(configDir); werr != nil {
				return werr
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func loadCredentials(configDir string, creds *Credentials) error {
	v := viper.New()
	v.SetConfigName("credentials")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("mt5.user", "backofficeApi")
	v.SetDefault("mt5.password", "Trade@2022")
	v.SetDefault("mt5.host", "173.208.156.141")
	v.SetDefault("mt5.port", 443)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if werr := createTemplateCredentials(configDir); werr != nil {
				return werr
			}
			return v.Unmarshal(creds)
		}
		return err
	}

	return v.Unmarshal(creds)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BACKOFFICE_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("BACKOFFICE_EMAIL"); v != "" {
		cfg.Credentials.Backoffice.Email = v
	}
	if v := os.Getenv("BACKOFFICE_PASSWORD"); v != "" {
		cfg.Credentials.Backoffice.Password = v
	}
	if v := os.Getenv("BACKOFFICE_MT5_HOST"); v != "" {
		cfg.Credentials.MT5.Host = v
	}
}

func applyDefaults(cfg *Config, configDir string) {
	if cfg.API.Timeout <= 0 {
		cfg.API.Timeout = 30 * time.Second
	}
	if cfg.Cache.Path == "" {
		cfg.Cache.Path = filepath.Join(configDir, "backoffice.db")
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "api.base_url must not be empty")
	}
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return apperrors.Wrapf(apperrors.ErrConfigInvalid, "api.base_url is not a valid URL: %s", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "api.timeout must be non-negative")
	}
	if c.Credentials.MT5.Port < 0 || c.Credentials.MT5.Port > 65535 {
		return apperrors.Wrap(apperrors.ErrConfigInvalid, "mt5.port must be a valid port number")
	}
	return nil
}

// SessionPath returns the path of the persisted session token file.
func (c *Config) SessionPath(configDir string) string {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}
	return filepath.Join(configDir, "session.json")
}
