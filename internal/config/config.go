// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string

	// Telegram
	BotToken       string
	WebhookSecret  string
	WebhookBaseURL string // optional; when set the bot self-registers its webhook on boot

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Classifier (OpenAI-compatible chat completions API)
	LLMAPIURL  string
	LLMAPIKey  string
	LLMModel   string
	LLMTimeout time.Duration

	// Admin API
	AdminAPIKey string

	// Local time offset used for report windows and month names.
	// The reference deployment serves Brazilian users (UTC-3).
	UTCOffsetHours int
}

// Load loads configuration from environment variables. BOT_TOKEN and
// WEBHOOK_SECRET are required; everything else has a sensible default.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port: getEnv("PORT", "8080"),

		BotToken:       os.Getenv("BOT_TOKEN"),
		WebhookSecret:  os.Getenv("WEBHOOK_SECRET"),
		WebhookBaseURL: os.Getenv("WEBHOOK_BASE_URL"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "finbot"),
		DBPassword: getEnv("DB_PASSWORD", "finbot"),
		DBName:     getEnv("DB_NAME", "finbot"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		LLMAPIURL: getEnv("LLM_API_URL", "https://api.openai.com/v1"),
		LLMAPIKey: os.Getenv("LLM_API_KEY"),
		LLMModel:  getEnv("LLM_MODEL", "gpt-4o-mini"),

		AdminAPIKey: os.Getenv("ADMIN_API_KEY"),
	}

	if config.BotToken == "" {
		return nil, fmt.Errorf("BOT_TOKEN is required")
	}
	if config.WebhookSecret == "" {
		return nil, fmt.Errorf("WEBHOOK_SECRET is required")
	}

	timeout, err := parseTimeout(os.Getenv("LLM_TIMEOUT"))
	if err != nil {
		return nil, err
	}
	config.LLMTimeout = timeout

	offset, err := parseOffset(os.Getenv("UTC_OFFSET_HOURS"))
	if err != nil {
		return nil, err
	}
	config.UTCOffsetHours = offset

	return config, nil
}

// DSN returns the PostgreSQL connection string for GORM.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// MigrateURL returns the postgres:// URL used by golang-migrate.
func (c *Config) MigrateURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// Location returns the fixed local zone report windows are computed in.
func (c *Config) Location() *time.Location {
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.UTCOffsetHours), c.UTCOffsetHours*3600)
}

func parseTimeout(s string) (time.Duration, error) {
	if s == "" {
		return 10 * time.Second, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid LLM_TIMEOUT %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("LLM_TIMEOUT must be positive, got %v", d)
	}
	return d, nil
}

func parseOffset(s string) (int, error) {
	if s == "" {
		return -3, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid UTC_OFFSET_HOURS %q: %w", s, err)
	}
	if n < -12 || n > 14 {
		return 0, fmt.Errorf("UTC_OFFSET_HOURS out of range: %d", n)
	}
	return n, nil
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
