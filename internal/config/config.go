package config

import "time"

// Store backends.
const (
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Store    StoreConfig    `mapstructure:"store" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port      int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel  string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log_format" validate:"required,oneof=json text"`
	// BasePath is stripped from request paths when the API is mounted
	// under a prefix, e.g. "/api".
	BasePath string `mapstructure:"base_path" validate:"omitempty,startswith=/"`
	// Label is reported as "server" by the health endpoint.
	Label string `mapstructure:"label"`

	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// StoreConfig selects where the task collection lives.
type StoreConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=file postgres memory"`
	// Path is the tasks file used by the file backend.
	Path string `mapstructure:"path" validate:"required_if=Backend file"`
}

// DatabaseConfig contains the PostgreSQL settings used by the postgres backend
// and the migrate command.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
	// Collection names the row holding the serialized tasks.
	Collection string `mapstructure:"collection"`
}
