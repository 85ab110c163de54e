package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server       ServerConfig       `mapstructure:"server" validate:"required"`
	CORS         CORSConfig         `mapstructure:"cors" validate:"required"`
	Notification NotificationConfig `mapstructure:"notification" validate:"required"`
	Docs         DocsConfig         `mapstructure:"docs"`
	Outbound     OutboundConfig     `mapstructure:"outbound"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// BasePath prefixes every API route, e.g. "/api".
	BasePath               string `mapstructure:"base_path" validate:"required,startswith=/"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=1"`
}

// CORSConfig contains cross-origin settings.
type CORSConfig struct {
	// AllowedDomains lists registered production hostnames (no scheme, no port).
	AllowedDomains []string `mapstructure:"allowed_domains" validate:"dive,hostname"`
	AllowedHeaders []string `mapstructure:"allowed_headers"`
	ExposedHeaders []string `mapstructure:"exposed_headers"`
	MaxAgeSeconds  int      `mapstructure:"max_age_seconds" validate:"gte=0"`
}

// NotificationConfig contains the notification provider settings.
type NotificationConfig struct {
	SecretKey      string `mapstructure:"secret_key" validate:"required"`
	ServerURL      string `mapstructure:"server_url" validate:"required,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1"`
}

// DocsConfig controls the OpenAPI document and the Swagger UI.
type DocsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Title   string `mapstructure:"title"`
	Version string `mapstructure:"version"`
}

// OutboundConfig controls logging of outgoing HTTP calls.
type OutboundConfig struct {
	LogBodies        bool `mapstructure:"log_bodies"`
	BodyPreviewBytes int  `mapstructure:"body_preview_bytes" validate:"gte=0"`
}
