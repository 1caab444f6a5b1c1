package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration. It is built once at startup and
// handed to the components that need it rather than read ambiently.
type Config struct {
	// Server
	Port string
	Env  string

	// Logging
	LogLevel string

	// Auth: the bearer credential every /v1 request must present.
	APIKey string

	// Rate limiting: allowed requests per minute per identity.
	RateLimitPerMinute int
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	// Load .env file if present; environment variables win either way.
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		APIKey:   getEnv("API_KEY", ""),
	}

	rateStr := getEnv("RATE_LIMIT_PER_MINUTE", "60")
	rate, err := strconv.Atoi(rateStr)
	if err != nil || rate < 1 {
		log.Printf("Warning: invalid RATE_LIMIT_PER_MINUTE value '%s', falling back to 60\n", rateStr)
		rate = 60
	}
	cfg.RateLimitPerMinute = rate

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
