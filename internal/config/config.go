package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	CORS     CORSConfig
	Market   MarketConfig
	Security SecurityConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// MarketConfig holds market data gateway configuration.
// RefreshCooldown gates the manual refresh endpoints; RefreshSchedule is the
// cron expression for the background random-coin price refresh.
type MarketConfig struct {
	RefreshCooldown time.Duration
	RefreshSchedule string
}

// SecurityConfig holds keys for protected endpoints and encrypted settings.
type SecurityConfig struct {
	FernetKey string
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cooldownSeconds, err := strconv.Atoi(getEnv("REFRESH_COOLDOWN_SECONDS", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid REFRESH_COOLDOWN_SECONDS: %w", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_tracker.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Market: MarketConfig{
			RefreshCooldown: time.Duration(cooldownSeconds) * time.Second,
			RefreshSchedule: getEnv("PRICE_REFRESH_SCHEDULE", "@every 1h"),
		},
		Security: SecurityConfig{
			FernetKey: getEnv("FERNET_KEY", ""),
		},
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
