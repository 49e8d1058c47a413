// Package config provides configuration management for the racehub client.
package config

import (
	"net/url"
	"time"
)

// Config represents the complete application configuration
type Config struct {
	App     AppConfig     `mapstructure:"app" validate:"required"`
	API     APIConfig     `mapstructure:"api" validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	Display DisplayConfig `mapstructure:"display" validate:"required"`
	Refresh RefreshConfig `mapstructure:"refresh" validate:"required"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// APIConfig represents the race backend connection
type APIConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"required,url"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts  int     `mapstructure:"retry_attempts" validate:"gte=0,lte=10"`
	RetryWaitMinMs int     `mapstructure:"retry_wait_min_ms" validate:"gte=0"`
	RetryWaitMaxMs int     `mapstructure:"retry_wait_max_ms" validate:"gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"gt=0"`
}

// SessionConfig represents local persistence of the backend session cookie
type SessionConfig struct {
	Persist   bool   `mapstructure:"persist"`
	StorePath string `mapstructure:"store_path" validate:"required_if=Persist true"`
}

// DisplayConfig represents presentation defaults
type DisplayConfig struct {
	DefaultView string `mapstructure:"default_view" validate:"required,viewmode"`
	Locale      string `mapstructure:"locale" validate:"required,locale"`
	Timezone    string `mapstructure:"timezone"`
}

// RefreshConfig represents the periodic reload used by the watch and shell commands
type RefreshConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Schedule string `mapstructure:"schedule" validate:"required_if=Enabled true,cronspec"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address" validate:"required_if=Enabled true"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// RequestTimeout returns the per-request timeout of the API client
func (c *APIConfig) RequestTimeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// RetryWaitMin returns the minimum backoff between retries
func (c *APIConfig) RetryWaitMin() time.Duration {
	return time.Duration(c.RetryWaitMinMs) * time.Millisecond
}

// RetryWaitMax returns the maximum backoff between retries
func (c *APIConfig) RetryWaitMax() time.Duration {
	return time.Duration(c.RetryWaitMaxMs) * time.Millisecond
}

// Origin returns scheme://host of the base URL, used to build absolute share links
func (c *APIConfig) Origin() string {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return c.BaseURL
	}
	return u.Scheme + "://" + u.Host
}

// Location returns the configured display timezone, falling back to local time
func (c *DisplayConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
