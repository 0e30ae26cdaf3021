package database

import (
	"fmt"

	"folio/internal/config"
)

// DefaultMigrationsSource is where golang-migrate looks for SQL files.
const DefaultMigrationsSource = "file://migrations"

// Config holds database configuration
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string

	MigrationsSource string
}

// NewConfig derives the database configuration from the application config.
func NewConfig(cfg *config.Config) *Config {
	return &Config{
		Host:             cfg.DBHost,
		Port:             cfg.DBPort,
		User:             cfg.DBUser,
		Password:         cfg.DBPassword,
		DBName:           cfg.DBName,
		SSLMode:          cfg.DBSSLMode,
		MigrationsSource: DefaultMigrationsSource,
	}
}

// DSN returns the PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL returns the postgres URL form expected by golang-migrate.
func (c *Config) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}
