// Package config provides configuration management for the racehub client.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment overrides (RACEHUB_API_BASE_URL, ...)
const EnvPrefix = "RACEHUB"

// DefaultConfigPath returns ~/.racehub/config.yaml
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".racehub", "config.yaml")
}

// DefaultStorePath returns ~/.racehub/session.db
func DefaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "racehub-session.db"
	}
	return filepath.Join(home, ".racehub", "session.db")
}

// Load reads and parses the configuration from file and environment variables.
// It expands environment variable placeholders in the YAML file (${VAR_NAME}).
// The file is required.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath()
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := readExpanded(v, data); err != nil {
		return nil, err
	}

	return unmarshal(v)
}

// LoadWithDefaults loads configuration with default values for every field.
// A missing file is not an error; a .env file in the working directory is
// loaded into the environment first when present.
func LoadWithDefaults(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := newViper()
	setDefaults(v)

	if configPath == "" {
		configPath = DefaultConfigPath()
	}

	if data, err := os.ReadFile(configPath); err == nil {
		if err := readExpanded(v, data); err != nil {
			return nil, err
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "racehub")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "warn")

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout_seconds", 60)
	v.SetDefault("api.retry_attempts", 2)
	v.SetDefault("api.retry_wait_min_ms", 200)
	v.SetDefault("api.retry_wait_max_ms", 2000)
	v.SetDefault("api.rate_limit", 5.0)

	v.SetDefault("session.persist", true)
	v.SetDefault("session.store_path", DefaultStorePath())

	v.SetDefault("display.default_view", "table")
	v.SetDefault("display.locale", "en_US")
	v.SetDefault("display.timezone", "")

	v.SetDefault("refresh.enabled", true)
	v.SetDefault("refresh.schedule", "@midnight")

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.address", "127.0.0.1:9464")
	v.SetDefault("metrics.path", "/metrics")
}

// readExpanded expands ${VAR} placeholders before handing the YAML to viper
func readExpanded(v *viper.Viper, data []byte) error {
	expanded := os.ExpandEnv(string(data))
	if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	return cfg, nil
}
