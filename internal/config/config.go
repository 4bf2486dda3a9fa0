// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
)

// DefaultJWTSecret is only acceptable for local development.
const DefaultJWTSecret = "dev-secret-change-me"

type Config struct {
	// HTTP Server
	Port           string
	StaticPath     string
	AllowedOrigins []string

	// Database
	DBPath string

	// Auth
	JWTSecret     string
	TokenDuration time.Duration
	BcryptCost    int

	// AMQP; events are only logged when AMQPURL is empty
	AMQPURL      string
	AMQPExchange string

	// Worker
	OverdueSchedule string

	// Timezone used for Jalali dates and the cron schedule
	Timezone string
}

// Load reads an optional .env file, then the environment.
func Load() *Config {
	// .env is for local development; a missing file is fine
	_ = godotenv.Load()

	return &Config{
		Port:           getEnv("PORT", "8080"),
		StaticPath:     getEnv("STATIC_PATH", "../frontend/static"),
		AllowedOrigins: getEnvList("CORS_ORIGINS", []string{"*"}),

		DBPath: getEnv("DB_PATH", "./data/saakhtemaan.db"),

		JWTSecret:     getEnv("JWT_SECRET", DefaultJWTSecret),
		TokenDuration: getEnvDuration("TOKEN_DURATION", 7*24*time.Hour),
		BcryptCost:    getEnvInt("BCRYPT_COST", 0),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "saakhtemaan"),

		OverdueSchedule: getEnv("OVERDUE_SCHEDULE", "@daily"),
		Timezone:        getEnv("TZ_NAME", "Asia/Tehran"),
	}
}

// Location returns the configured timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		errors = append(errors, "database path cannot be empty")
	}

	if len(c.JWTSecret) < 16 {
		errors = append(errors, "JWT secret must be at least 16 characters")
	}
	if c.TokenDuration < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid token duration %v: must be at least 1 minute", c.TokenDuration))
	}
	if c.BcryptCost != 0 && (c.BcryptCost < 4 || c.BcryptCost > 31) {
		errors = append(errors, fmt.Sprintf("invalid bcrypt cost %d: must be between 4 and 31", c.BcryptCost))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := cron.ParseStandard(c.OverdueSchedule); err != nil {
		errors = append(errors, fmt.Sprintf("invalid overdue schedule '%s': %v", c.OverdueSchedule, err))
	}

	if _, err := time.LoadLocation(c.Timezone); err != nil {
		errors = append(errors, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping empty entries.
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
