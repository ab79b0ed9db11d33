package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server configuration
	Server ServerConfig

	// Relational database (users, routes, buses, feedback)
	SQL SQLConfig

	// Document database (transcripts, feedback documents)
	Documents DocumentsConfig

	// Bus lookup cache
	Cache CacheConfig

	// Logging
	Log LogConfig

	// EnvFile is the .env file that was loaded, if any
	EnvFile string
}

type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     int // seconds
	WriteTimeout    int // seconds
	ShutdownTimeout int // seconds
}

// Supported relational drivers
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

type SQLConfig struct {
	Driver string // mysql or sqlite
	DSN    string
}

// Supported document backends
const (
	BackendMongo = "mongo"
	BackendFile  = "file"
)

type DocumentsConfig struct {
	Backend  string // mongo or file
	URI      string // mongo connection string
	Database string // mongo database name
	DataDir  string // directory for the file backend
}

type CacheConfig struct {
	TTL          int // seconds, 0 disables the lookup cache
	CleanUpIntvl int // seconds
}

type LogConfig struct {
	Level  string
	Format string // json or console
}

// LoadConfig loads a .env file if one exists, then reads configuration from
// environment variables
func LoadConfig() (*Config, error) {
	envFile, err := LoadDefaultEnvFile()
	if err != nil {
		return nil, err
	}

	cfg := FromEnv()
	cfg.EnvFile = envFile
	return cfg, nil
}

// FromEnv reads configuration from the current environment only
func FromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getEnvAsInt("SERVER_PORT", 3000),
			ReadTimeout:     getEnvAsInt("SERVER_READ_TIMEOUT", 30),
			WriteTimeout:    getEnvAsInt("SERVER_WRITE_TIMEOUT", 30),
			ShutdownTimeout: getEnvAsInt("SERVER_SHUTDOWN_TIMEOUT", 30),
		},
		SQL: SQLConfig{
			Driver: strings.ToLower(getEnv("SQL_DRIVER", DriverMySQL)),
			DSN:    getEnv("SQL_DSN", ""),
		},
		Documents: DocumentsConfig{
			Backend:  strings.ToLower(getEnv("DOCUMENTS_BACKEND", BackendMongo)),
			URI:      getEnv("MONGO_URI", ""),
			Database: getEnv("MONGO_DATABASE", "voiceDataDB"),
			DataDir:  getEnv("DATA_DIR", "./data"),
		},
		Cache: CacheConfig{
			TTL:          getEnvAsInt("CACHE_TTL", 300),    // 5 minutes
			CleanUpIntvl: getEnvAsInt("CACHE_CLEANUP", 60), // 1 minute
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
	}
}

// Duration helpers

func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Second
}

func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Second
}

func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Second
}

func (c CacheConfig) TTLDuration() time.Duration {
	return time.Duration(c.TTL) * time.Second
}

func (c CacheConfig) CleanUpDuration() time.Duration {
	return time.Duration(c.CleanUpIntvl) * time.Second
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt gets an environment variable as an integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// IsValid checks if the configuration is valid
func (c *Config) IsValid() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return &ConfigError{Field: "server", Message: "SERVER_PORT must be between 1 and 65535"}
	}
	switch c.SQL.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return &ConfigError{Field: "sql", Message: "SQL_DRIVER must be mysql or sqlite"}
	}
	if c.SQL.DSN == "" {
		return &ConfigError{Field: "sql", Message: "SQL_DSN is required"}
	}
	switch c.Documents.Backend {
	case BackendMongo:
		if c.Documents.URI == "" {
			return &ConfigError{Field: "documents", Message: "MONGO_URI is required for the mongo backend"}
		}
		if c.Documents.Database == "" {
			return &ConfigError{Field: "documents", Message: "MONGO_DATABASE is required for the mongo backend"}
		}
	case BackendFile:
		if c.Documents.DataDir == "" {
			return &ConfigError{Field: "documents", Message: "DATA_DIR is required for the file backend"}
		}
	default:
		return &ConfigError{Field: "documents", Message: "DOCUMENTS_BACKEND must be mongo or file"}
	}
	if c.Cache.TTL < 0 {
		return &ConfigError{Field: "cache", Message: "CACHE_TTL cannot be negative"}
	}
	return nil
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
