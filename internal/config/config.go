package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
	Catalog  CatalogConfig
	S3       S3Config
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Host string
	Port int
}

// DatabaseConfig holds MongoDB-related configuration.
// An empty URL means the service runs without a database.
type DatabaseConfig struct {
	URL               string
	Name              string
	ProductCollection string
	ConnectTimeout    int // seconds
	MaxPoolSize       int
	MinPoolSize       int
}

// LoggerConfig holds logger-related configuration.
type LoggerConfig struct {
	Level  string
	Format string // "json" or "console"
}

// CatalogConfig holds the optional catalogue source used for seeding.
type CatalogConfig struct {
	File string
}

// S3Config holds AWS S3 configuration for catalogue files.
type S3Config struct {
	Enabled bool
	Bucket  string
	Region  string
	Prefix  string // Path prefix within bucket (e.g., "catalog/")
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Host: getEnv("HOST", "0.0.0.0"),
			Port: getEnvAsInt("PORT", 8000),
		},
		Database: DatabaseConfig{
			URL:               getEnv("DATABASE_URL", ""),
			Name:              getEnv("DATABASE_NAME", ""),
			ProductCollection: getEnv("PRODUCT_COLLECTION", "product"),
			ConnectTimeout:    getEnvAsInt("DB_CONNECT_TIMEOUT", 10),
			MaxPoolSize:       getEnvAsInt("DB_MAX_POOL_SIZE", 100),
			MinPoolSize:       getEnvAsInt("DB_MIN_POOL_SIZE", 0),
		},
		Logger: LoggerConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Catalog: CatalogConfig{
			File: getEnv("CATALOG_FILE", ""),
		},
		S3: S3Config{
			Enabled: getEnvAsBool("S3_ENABLED", false),
			Bucket:  getEnv("S3_BUCKET", ""),
			Region:  getEnv("S3_REGION", "us-east-1"),
			Prefix:  getEnv("S3_PREFIX", "catalog/"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Database.Enabled() {
		if c.Database.Name == "" {
			return fmt.Errorf("database name is required when a database URL is set")
		}

		if c.Database.ProductCollection == "" {
			return fmt.Errorf("product collection name is required")
		}

		if c.Database.ConnectTimeout < 1 {
			return fmt.Errorf("database connect timeout must be at least 1 second")
		}

		if c.Database.MaxPoolSize < 1 {
			return fmt.Errorf("database max pool size must be at least 1")
		}

		if c.Database.MinPoolSize < 0 {
			return fmt.Errorf("database min pool size cannot be negative")
		}

		if c.Database.MinPoolSize > c.Database.MaxPoolSize {
			return fmt.Errorf("database min pool size cannot exceed max pool size")
		}
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[c.Logger.Level] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Logger.Format != "json" && c.Logger.Format != "console" {
		return fmt.Errorf("invalid log format: %s (must be json or console)", c.Logger.Format)
	}

	if c.S3.Enabled {
		if c.S3.Bucket == "" {
			return fmt.Errorf("S3 bucket is required when S3 is enabled")
		}
		if c.S3.Region == "" {
			return fmt.Errorf("S3 region is required when S3 is enabled")
		}
	}

	return nil
}

// Enabled reports whether a database URL is configured.
func (c *DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// Timeout returns the connect timeout as a duration.
func (c *DatabaseConfig) Timeout() time.Duration {
	return time.Duration(c.ConnectTimeout) * time.Second
}

// Address returns the server address.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value.
func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value.
func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
