package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration.
type Config struct {
	ServerPort       int
	DatabasePath     string
	SessionTTLHours  int    // 0 means sessions never expire
	SessionSweepCron string // standard cron expression for the session sweeper
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	ttl, err := strconv.Atoi(getEnv("SESSION_TTL_HOURS", "0"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:       port,
		DatabasePath:     getEnv("DATABASE_PATH", "./timekit.db"),
		SessionTTLHours:  ttl,
		SessionSweepCron: getEnv("SESSION_SWEEP_CRON", "0 * * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
