// Package config handles application configuration from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds all application configuration. The WMATA API key lives here
// and is handed to constructors at startup; nothing reads the environment
// after Load returns.
type Config struct {
	Port          string
	Env           string
	WMATAAPIKey   string `validate:"required"`
	WMATABaseURL  string `validate:"required,url"`
	AlertsFeedURL string `validate:"required,url"`
	AlertsTTL     time.Duration
	HTTPTimeout   time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "3000"),
		Env:           getEnv("ENV", "development"),
		WMATAAPIKey:   getEnv("WMATA_API_KEY", ""),
		WMATABaseURL:  getEnv("WMATA_BASE_URL", "https://api.wmata.com"),
		AlertsFeedURL: getEnv("ALERTS_FEED_URL", "https://api.wmata.com/gtfs/rail-gtfsrt-alerts.pb"),
		AlertsTTL:     getDurationEnv("ALERTS_TTL_SECONDS", 120) * time.Second,
		HTTPTimeout:   getDurationEnv("HTTP_TIMEOUT_SECONDS", 10) * time.Second,
	}
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultSeconds int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds)
		}
	}
	return time.Duration(defaultSeconds)
}
