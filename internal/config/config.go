package config

import "time"

// Storage backends selectable through database.backend.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
}

// ServerConfig contains the HTTP server and logging settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat       string        `mapstructure:"log_format" validate:"required,oneof=json console"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" validate:"required,min=1,dive,required"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout" validate:"required"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"required"`
}

// DatabaseConfig selects the storage backend and its connection settings.
// URL is only consulted by the postgres backend and Path only by sqlite.
type DatabaseConfig struct {
	Backend         string        `mapstructure:"backend" validate:"required,oneof=memory postgres sqlite"`
	URL             string        `mapstructure:"url" validate:"required_if=Backend postgres,omitempty,url"`
	Path            string        `mapstructure:"path" validate:"required_if=Backend sqlite"`
	MaxConns        int32         `mapstructure:"max_conns" validate:"required,gt=0"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time" validate:"required"`
	AcquireTimeout  time.Duration `mapstructure:"acquire_timeout" validate:"required"`
	AutoSchema      bool          `mapstructure:"auto_schema"`
}
