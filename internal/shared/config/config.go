package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the gateway
type Config struct {
	// Server
	Port string
	Env  string

	// OpenRouter
	OpenRouterAPIKey string
	DefaultModel     string
	SiteURL          string
	SiteName         string
	UpstreamTimeout  time.Duration

	// Storage (both optional; the service falls back to in-memory state)
	DatabaseURL string
	RedisURL    string

	// Rate limiting: requests per window for each policy
	GeneralLimit  int
	GeneralWindow time.Duration
	APILimit      int
	APIWindow     time.Duration
	ContentLimit  int
	ContentWindow time.Duration
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		Port: getEnv("PORT", "3001"),
		Env:  getEnv("ENV", "development"),

		OpenRouterAPIKey: getEnv("OPENROUTER_API_KEY", ""),
		DefaultModel:     getEnv("OPENROUTER_DEFAULT_MODEL", ""),
		SiteURL:          getEnv("OPENROUTER_SITE_URL", "https://auto-marketing.ai"),
		SiteName:         getEnv("OPENROUTER_SITE_NAME", "Auto Marketing Workflow"),
		UpstreamTimeout:  time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 60)) * time.Second,

		DatabaseURL: getEnv("DATABASE_URL", ""),
		RedisURL:    getEnv("REDIS_URL", ""),

		GeneralLimit:  getEnvInt("RATE_LIMIT_GENERAL_MAX", 100),
		GeneralWindow: time.Duration(getEnvInt("RATE_LIMIT_GENERAL_WINDOW_SECONDS", 900)) * time.Second,
		APILimit:      getEnvInt("RATE_LIMIT_API_MAX", 30),
		APIWindow:     time.Duration(getEnvInt("RATE_LIMIT_API_WINDOW_SECONDS", 60)) * time.Second,
		ContentLimit:  getEnvInt("RATE_LIMIT_CONTENT_MAX", 10),
		ContentWindow: time.Duration(getEnvInt("RATE_LIMIT_CONTENT_WINDOW_SECONDS", 60)) * time.Second,
	}

	return cfg, nil
}

// IsDevelopment reports whether the gateway runs in development mode.
// Development mode enables CORS and verbose error detail in responses.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
