// Package config provides YAML-based configuration loading for Garage.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the top-level Garage configuration, loaded from garage.yaml.
type Config struct {
	Shop   ShopConfig   `yaml:"shop"`
	DB     DBConfig     `yaml:"db"`
	Server ServerConfig `yaml:"server"`
	Notify NotifyConfig `yaml:"notify"`
	Digest DigestConfig `yaml:"digest"`
}

// ShopConfig holds shop identity used on invoices.
type ShopConfig struct {
	Name  string `yaml:"name"`
	Phone string `yaml:"phone"`
}

// DBConfig selects and configures the storage backend.
// Driver "sqlite" uses Path; driver "mysql" uses Host/Port/Database.
type DBConfig struct {
	Driver   string `yaml:"driver"`
	Path     string `yaml:"path"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// NotifyConfig selects the notification platform. Platform "none" disables
// notifications entirely.
type NotifyConfig struct {
	Platform        string `yaml:"platform"` // none, slack, discord
	SlackWebhookURL string `yaml:"slack_webhook_url"`
	DiscordToken    string `yaml:"discord_token"`
	DiscordChannel  string `yaml:"discord_channel"`
}

// DigestConfig controls the scheduled shop digest.
type DigestConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"` // 5-field cron expression
}

// Load reads a YAML config file from path and returns a validated Config.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse unmarshals YAML bytes into a validated Config.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a config usable without any file on disk: a local sqlite
// database and no notifications.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills in derived and default values.
func (c *Config) applyDefaults() {
	if c.Shop.Name == "" {
		c.Shop.Name = "Auto Repair Shop"
	}
	if c.DB.Driver == "" {
		c.DB.Driver = "sqlite"
	}
	if c.DB.Path == "" {
		c.DB.Path = "garage.db"
	}
	if c.DB.Host == "" {
		c.DB.Host = "127.0.0.1"
	}
	if c.DB.Port == 0 {
		c.DB.Port = 3306
	}
	if c.DB.User == "" {
		c.DB.User = "root"
	}
	if c.DB.Database == "" {
		c.DB.Database = "garage"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Notify.Platform == "" {
		c.Notify.Platform = "none"
	}
	if c.Digest.Schedule == "" {
		c.Digest.Schedule = "0 8 * * *"
	}
}

// validate checks that all required fields are present and consistent.
func (c *Config) validate() error {
	var errs []string
	switch c.DB.Driver {
	case "sqlite", "mysql":
	default:
		errs = append(errs, fmt.Sprintf("db.driver %q is not supported (sqlite, mysql)", c.DB.Driver))
	}
	switch c.Notify.Platform {
	case "none":
	case "slack":
		if c.Notify.SlackWebhookURL == "" {
			errs = append(errs, "notify.slack_webhook_url is required for platform slack")
		}
	case "discord":
		if c.Notify.DiscordToken == "" {
			errs = append(errs, "notify.discord_token is required for platform discord")
		}
		if c.Notify.DiscordChannel == "" {
			errs = append(errs, "notify.discord_channel is required for platform discord")
		}
	default:
		errs = append(errs, fmt.Sprintf("notify.platform %q is not supported (none, slack, discord)", c.Notify.Platform))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
