// Package config provides application configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds application configuration values loaded from file or environment variables.
type Config struct {
	Port              string        `mapstructure:"PORT" validate:"required,numeric"`
	Env               string        `mapstructure:"APP_ENV" validate:"required"`
	LogLevel          string        `mapstructure:"LOG_LEVEL"`
	DBDriver          string        `mapstructure:"DB_DRIVER" validate:"required,oneof=sqlite3 postgres"`
	DBDSN             string        `mapstructure:"DB_DSN" validate:"required"`
	SessionPath       string        `mapstructure:"SESSION_PATH"`
	SessionTTL        time.Duration `mapstructure:"SESSION_TTL" validate:"gt=0"`
	SessionCookie     string        `mapstructure:"SESSION_COOKIE" validate:"required"`
	AdminUsername     string        `mapstructure:"ADMIN_USERNAME" validate:"required"`
	AdminPasswordHash string        `mapstructure:"ADMIN_PASSWORD_HASH"`
}

var defaults = map[string]any{
	"PORT":                "8080",
	"APP_ENV":             "development",
	"LOG_LEVEL":           "",
	"DB_DRIVER":           "sqlite3",
	"DB_DSN":              "data/blog.db",
	"SESSION_PATH":        "data/sessions",
	"SESSION_TTL":         "24h",
	"SESSION_COOKIE":      "simpleblog_session",
	"ADMIN_USERNAME":      "admin",
	"ADMIN_PASSWORD_HASH": "",
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from the optional file at path, then the
// environment, then defaults. An empty path looks for config.yml in the
// working directory and tolerates its absence.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &config, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	return validate.Struct(c)
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

// IsDevelopment reports whether the development profile is active.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
