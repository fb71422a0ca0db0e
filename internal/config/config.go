package config

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Storage
	DataBackend  string // "json" or "sqlite"
	DataDir      string // base directory for the JSON backend
	SQLiteDBPath string

	// AMQP (optional; report-export pipeline)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Report export worker
	ExportDir string

	// AI category suggestion / chat
	AIBaseURL string
	AIAPIKey  string
	AIModel   string

	// Field-level encryption key, base64-encoded 16/24/32 bytes.
	FieldKeyBase64 string

	// Optional keyword-rules override file.
	RulesFile string

	// Rate limiting
	RateLimitPerMinute int
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8084"),

		DataBackend:  getEnv("DATA_BACKEND", "json"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/finanger.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finanger"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "report_exports"),

		ExportDir: getEnv("EXPORT_DIR", "./exports"),

		AIBaseURL: getEnv("AI_BASE_URL", ""),
		AIAPIKey:  getEnv("AI_API_KEY", ""),
		AIModel:   getEnv("AI_MODEL", "gpt-4o-mini"),

		FieldKeyBase64: getEnv("FIELD_KEY", ""),

		RulesFile: getEnv("RULES_FILE", ""),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
	}
}

// FieldKey decodes the configured AES key. Empty config means field
// encryption is disabled and (nil, nil) is returned.
func (c *Config) FieldKey() ([]byte, error) {
	if c.FieldKeyBase64 == "" {
		return nil, nil
	}
	key, err := base64.StdEncoding.DecodeString(c.FieldKeyBase64)
	if err != nil {
		return nil, fmt.Errorf("decode FIELD_KEY: %w", err)
	}
	switch len(key) {
	case 16, 24, 32:
		return key, nil
	}
	return nil, fmt.Errorf("FIELD_KEY must decode to 16, 24 or 32 bytes, got %d", len(key))
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "json":
		if c.DataDir == "" {
			errs = append(errs, "data directory cannot be empty when using json backend")
		}
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errs = append(errs, "SQLite database path cannot be empty when using sqlite backend")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be one of [json sqlite]", c.DataBackend))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			errs = append(errs, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			errs = append(errs, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errs = append(errs, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
		if c.ExportDir == "" {
			errs = append(errs, "export directory cannot be empty when AMQP URL is provided")
		}
	}

	if c.AIBaseURL != "" {
		if parsed, err := url.Parse(c.AIBaseURL); err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") {
			errs = append(errs, fmt.Sprintf("invalid AI base URL '%s': must be an http(s) URL", c.AIBaseURL))
		}
		if c.AIModel == "" {
			errs = append(errs, "AI model cannot be empty when AI base URL is provided")
		}
	}

	if _, err := c.FieldKey(); err != nil {
		errs = append(errs, err.Error())
	}

	if c.RulesFile != "" {
		if _, err := os.Stat(c.RulesFile); os.IsNotExist(err) {
			errs = append(errs, fmt.Sprintf("rules file does not exist: %s", c.RulesFile))
		}
	}

	if c.RateLimitPerMinute < 1 {
		errs = append(errs, fmt.Sprintf("invalid rate limit %d: must be at least 1", c.RateLimitPerMinute))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
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
