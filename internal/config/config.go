package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the stock order service
type Config struct {
	// Server
	Port        string
	Environment string

	// Catalog API
	APIToken       string
	DomainPrefix   string
	CatalogBaseURL string
	OutletID       string

	// Pipeline
	DryRun          bool
	OrderNamePrefix string

	// HTTP client
	RequestTimeout time.Duration
	MaxRetries     int
	RateLimit      int // requests per second

	// Run history (optional; empty URL disables history)
	DatabaseURL string
}

// Load loads configuration from environment variables. A .env file in the
// working directory is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	config := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		APIToken:     getEnv("LS_API_KEY", ""),
		DomainPrefix: getEnv("LS_DOMAIN_PREFIX", ""),
		OutletID:     getEnv("OUTLET_ID", ""),

		DryRun:          getEnvAsBool("DRY_RUN", false),
		OrderNamePrefix: getEnv("ORDER_NAME_PREFIX", "Faire Stock Order"),

		RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 30*time.Second),
		MaxRetries:     getEnvAsInt("MAX_RETRIES", 3),
		RateLimit:      getEnvAsInt("RATE_LIMIT", 5),

		DatabaseURL: getEnv("DATABASE_URL", ""),
	}

	// An explicit base URL wins; otherwise it is derived from the tenant
	// prefix
	config.CatalogBaseURL = getEnv("CATALOG_BASE_URL", "")
	if config.CatalogBaseURL == "" && config.DomainPrefix != "" {
		config.CatalogBaseURL = fmt.Sprintf("https://%s.retail.lightspeed.app/api/2.0", config.DomainPrefix)
	}

	// Validate required fields
	if config.APIToken == "" {
		log.Fatal("LS_API_KEY is required")
	}
	if config.CatalogBaseURL == "" {
		log.Fatal("LS_DOMAIN_PREFIX or CATALOG_BASE_URL is required")
	}
	if config.OutletID == "" {
		log.Fatal("OUTLET_ID is required")
	}

	if config.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, run history will be disabled")
	}

	return config
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvAsInt gets an environment variable as an integer with a default value
func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvAsBool gets an environment variable as a boolean with a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return boolValue
}

// getEnvAsDuration gets an environment variable as a duration with a default value
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
