// Package config provides configuration management for the desk application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	derrors "signaldesk/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Storage StorageConfig `mapstructure:"storage"`
	Refresh RefreshConfig `mapstructure:"refresh"`
	Desk    DeskConfig    `mapstructure:"desk"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ServerConfig holds the HTTP API configuration.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// StorageConfig holds the idea store configuration.
type StorageConfig struct {
	Path string `mapstructure:"path"`
}

// RefreshConfig holds the snapshot refresh configuration.
type RefreshConfig struct {
	CronSpec     string        `mapstructure:"cron_spec"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// DeskConfig holds desk view configuration.
type DeskConfig struct {
	InitialVisible int           `mapstructure:"initial_visible"`
	PageStep       int           `mapstructure:"page_step"`
	EarningsWindow time.Duration `mapstructure:"earnings_window"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
	File    bool   `mapstructure:"file"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/signaldesk"
	}
	return filepath.Join(home, ".config", "signaldesk")
}

// Load loads configuration from the specified directory. If configDir is
// empty, the default config directory is used. A missing config file is not
// an error; defaults apply.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("SIGNALDESK")
	v.AutomaticEnv()

	setDefaults(v, configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config.yaml: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, configDir string) {
	v.SetDefault("server.addr", ":8085")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("storage.path", filepath.Join(configDir, "ideas.db"))
	v.SetDefault("refresh.cron_spec", "@every 1m")
	v.SetDefault("refresh.fetch_timeout", 30*time.Second)
	v.SetDefault("desk.initial_visible", 10)
	v.SetDefault("desk.page_step", 10)
	v.SetDefault("desk.earnings_window", 72*time.Hour)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", true)
	v.SetDefault("logging.file", true)
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: server.addr must not be empty", derrors.ErrConfigInvalid)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("%w: storage.path must not be empty", derrors.ErrConfigInvalid)
	}
	if c.Desk.InitialVisible <= 0 {
		return fmt.Errorf("%w: desk.initial_visible must be positive, got %d", derrors.ErrConfigInvalid, c.Desk.InitialVisible)
	}
	if c.Desk.PageStep <= 0 {
		return fmt.Errorf("%w: desk.page_step must be positive, got %d", derrors.ErrConfigInvalid, c.Desk.PageStep)
	}
	return nil
}
