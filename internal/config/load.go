package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "MANDO"

// DefaultAllowedDomains are the registered production domains.
var DefaultAllowedDomains = []string{
	"mando.cx",
	"mando.news",
	"mando.bot",
	"mando.chat",
	"mando.help",
}

// DefaultAllowedHeaders are the request headers accepted in CORS preflights.
var DefaultAllowedHeaders = []string{
	"Content-Type",
	"Authorization",
	"Cookie",
	"X-CSRF-Token",
	"User-Agent",
	"Origin",
	"Host",
	"X-Request-Id",
}

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The provider key keeps its conventional name as a fallback.
	if err := v.BindEnv("notification.secret_key", EnvPrefix+"_NOTIFICATION_SECRET_KEY", "NOVU_SECRET_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind environment variable: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the struct tags of a loaded configuration.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 4000)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.base_path", "/api")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("cors.allowed_domains", DefaultAllowedDomains)
	v.SetDefault("cors.allowed_headers", DefaultAllowedHeaders)
	v.SetDefault("cors.exposed_headers", []string{"X-Request-Id", "Server-Timing"})
	v.SetDefault("cors.max_age_seconds", 300)

	// Registered so AutomaticEnv can see the key during Unmarshal.
	v.SetDefault("notification.secret_key", "")
	v.SetDefault("notification.server_url", "https://eu.api.novu.co")
	v.SetDefault("notification.timeout_seconds", 30)

	v.SetDefault("docs.enabled", true)
	v.SetDefault("docs.title", "Mando.cx API Reference")
	v.SetDefault("docs.version", "1.0.0")

	v.SetDefault("outbound.log_bodies", true)
	v.SetDefault("outbound.body_preview_bytes", 200)
}
