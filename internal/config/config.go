package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	NodeEnv   string
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Upstream  UpstreamConfig
	Session   SessionConfig
	PortalURL string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	Database string
	Alter    bool
}

// UpstreamConfig points at the intranet commerce API
type UpstreamConfig struct {
	BaseURL   string
	AssetBase string
}

// SessionConfig controls editing-session lifetime
type SessionConfig struct {
	TTLMinutes int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	upstreamBase := os.Getenv("UPSTREAM_API_BASE")
	if upstreamBase == "" {
		return nil, fmt.Errorf("UPSTREAM_API_BASE is required")
	}

	return &Config{
		NodeEnv:   getEnv("NODE_ENV", "development"),
		Port:      getEnv("PORT", "3001"),
		JWTSecret: jwtSecret,
		Database: DatabaseConfig{
			Host:     getEnv("PG_HOST", "localhost"),
			Port:     getEnv("PG_PORT", "5432"),
			Username: getEnv("PG_USERNAME", "postgres"),
			Password: os.Getenv("PG_PASSWORD"),
			Database: getEnv("PG_DATABASE", "vendorgo"),
			Alter:    getEnv("DB_ALTER", "false") == "true",
		},
		Upstream: UpstreamConfig{
			BaseURL:   upstreamBase,
			AssetBase: getEnv("UPSTREAM_ASSET_BASE", strings.TrimSuffix(upstreamBase, "/api")+"/"),
		},
		Session: SessionConfig{
			TTLMinutes: getEnvInt("SESSION_TTL_MINUTES", 60),
		},
		PortalURL: getEnv("PORTAL_URL", "http://localhost:3001"),
	}, nil
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable with default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
