package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

const minSessionSecretLength = 32

type Config struct {
	// HTTP Server
	Port string

	// Backend selection
	DataBackend  string
	SQLiteDBPath string
	DataDir      string

	// AMQP, optional
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	// Demo user. Only a bcrypt hash of the password is ever configured.
	DemoUserEmail        string
	DemoUserPasswordHash string

	// Filter memoization
	FilterCacheSize int
	FilterCacheTTL  time.Duration

	LogLevel string
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8081"),

		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/dashboard.db"),
		DataDir:      getEnv("DATA_DIR", "data"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "dashboard"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "quick_actions"),

		SessionSecret: getEnv("SESSION_SECRET", ""),
		SessionTTL:    getEnvDuration("SESSION_TTL", 12*time.Hour),

		DemoUserEmail:        getEnv("DEMO_USER_EMAIL", ""),
		DemoUserPasswordHash: getEnv("DEMO_USER_PASSWORD_HASH", ""),

		FilterCacheSize: getEnvInt("FILTER_CACHE_SIZE", 128),
		FilterCacheTTL:  getEnvDuration("FILTER_CACHE_TTL", 5*time.Minute),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

// Validate validates the configuration and returns an error listing every problem
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else if dir := filepath.Dir(c.SQLiteDBPath); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if len(c.SessionSecret) < minSessionSecretLength {
		errors = append(errors, fmt.Sprintf("SESSION_SECRET must be at least %d characters", minSessionSecretLength))
	}
	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session TTL %v: must be at least 1 minute", c.SessionTTL))
	}

	if !strings.Contains(c.DemoUserEmail, "@") {
		errors = append(errors, "DEMO_USER_EMAIL must be an email address")
	}
	if _, err := bcrypt.Cost([]byte(c.DemoUserPasswordHash)); err != nil {
		errors = append(errors, fmt.Sprintf("DEMO_USER_PASSWORD_HASH must be a bcrypt hash: %v", err))
	}

	if c.FilterCacheSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid filter cache size %d: must be at least 1", c.FilterCacheSize))
	}
	if c.FilterCacheTTL < time.Second {
		errors = append(errors, fmt.Sprintf("invalid filter cache TTL %v: must be at least 1 second", c.FilterCacheTTL))
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
