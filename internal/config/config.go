package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Env      string
	Port     string
	LogLevel string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Price feed
	PipelineAPIKey string

	// Aggregation
	TaxonomyPath     string
	OtherSectorLabel string

	// Snapshot retention
	SnapshotRetention time.Duration
	PruneSchedule     string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		// Server
		Env:      getEnv("ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", ""),

		// Database
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "folio"),
		DBPassword: getEnv("DB_PASSWORD", "folio"),
		DBName:     getEnv("DB_NAME", "folio"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		// Price feed; an empty key disables the pipeline endpoints.
		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),

		// Aggregation
		TaxonomyPath:     getEnv("TAXONOMY_PATH", "config/taxonomy.yaml"),
		OtherSectorLabel: getEnv("OTHER_SECTOR_LABEL", ""),

		// Snapshot retention
		PruneSchedule: getEnv("PRUNE_SCHEDULE", "@daily"),
	}

	retStr := getEnv("SNAPSHOT_RETENTION", "2160h")
	retention, err := time.ParseDuration(retStr)
	if err != nil || retention < 0 {
		log.Printf("Warning: invalid SNAPSHOT_RETENTION value '%s', falling back to 2160h\n", retStr)
		retention = 90 * 24 * time.Hour
	}
	config.SnapshotRetention = retention

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
