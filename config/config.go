package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
)

// AppConfig holds the application configuration
type AppConfig struct {
	Env            string
	Port           string
	StorageBackend string
	DBURL          string
	RedisAddress   string
	SymmetricKey   string
	AllowedOrigins []string
	TimeZone       string

	LogLevel  string
	LogFormat string

	ReminderPollInterval time.Duration
	NotesAutosaveDelay   time.Duration
	NotificationFeedSize int

	RateLimitRPS   float64
	RateLimitBurst int

	SMTP SMTPConfig
}

// SMTPConfig configures the optional email reminder sink. Host empty means disabled.
type SMTPConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	From      string
	Recipient string
}

func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.Recipient != ""
}

// GetSymmetricKey returns the PASETO key as bytes
func (c *AppConfig) GetSymmetricKey() []byte {
	return []byte(c.SymmetricKey)
}

// Location resolves the configured time zone, falling back to UTC.
func (c *AppConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		log.Printf("Warning: unknown time zone %q, using UTC", c.TimeZone)
		return time.UTC
	}
	return loc
}

// Load reads configuration from the environment. A .env file is loaded first when present.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Warning: failed to load .env file: %v", err)
	}

	cfg := &AppConfig{
		Env:                  getEnv("ENV", "production"),
		Port:                 getEnv("PORT", "8930"),
		StorageBackend:       getEnv("STORAGE_BACKEND", StorageRedis),
		DBURL:                os.Getenv("DB_URL"),
		RedisAddress:         os.Getenv("REDIS_URL"),
		SymmetricKey:         os.Getenv("SYMMETRIC_KEY"),
		AllowedOrigins:       splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		TimeZone:             getEnv("TIMEZONE", "America/Sao_Paulo"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		LogFormat:            getEnv("LOG_FORMAT", "json"),
		ReminderPollInterval: getEnvAsDuration("REMINDER_POLL_INTERVAL", 30*time.Second),
		NotesAutosaveDelay:   getEnvAsDuration("NOTES_AUTOSAVE_DELAY", time.Second),
		NotificationFeedSize: getEnvAsInt("NOTIFICATION_FEED_SIZE", 50),
		RateLimitRPS:         getEnvAsFloat("RATE_LIMIT_RPS", 15),
		RateLimitBurst:       getEnvAsInt("RATE_LIMIT_BURST", 30),
		SMTP: SMTPConfig{
			Host:      os.Getenv("SMTP_HOST"),
			Port:      getEnvAsInt("SMTP_PORT", 587),
			User:      os.Getenv("SMTP_USER"),
			Password:  os.Getenv("SMTP_PASS"),
			From:      getEnv("SMTP_FROM", os.Getenv("SMTP_USER")),
			Recipient: os.Getenv("REMINDER_EMAIL"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks required values and their combinations.
func (c *AppConfig) Validate() error {
	if c.RedisAddress == "" {
		return errors.New("missing REDIS_URL environment variable")
	}
	if len(c.SymmetricKey) != 32 {
		return errors.New("SYMMETRIC_KEY must be 32 bytes long")
	}
	switch c.StorageBackend {
	case StorageRedis:
	case StoragePostgres:
		if c.DBURL == "" {
			return errors.New("missing DB_URL environment variable")
		}
	default:
		return errors.New("STORAGE_BACKEND must be redis or postgres")
	}
	if c.ReminderPollInterval <= 0 {
		return errors.New("REMINDER_POLL_INTERVAL must be positive")
	}
	return nil
}

func getEnv(name, defaultValue string) string {
	if value, exists := os.LookupEnv(name); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultValue int) int {
	if value, exists := os.LookupEnv(name); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
		log.Printf("Warning: Invalid integer value for %s, using default: %d", name, defaultValue)
	}
	return defaultValue
}

func getEnvAsFloat(name string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(name); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		log.Printf("Warning: Invalid float value for %s, using default: %v", name, defaultValue)
	}
	return defaultValue
}

func getEnvAsDuration(name string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(name); exists {
		if durationValue, err := time.ParseDuration(value); err == nil {
			return durationValue
		}
		log.Printf("Warning: Invalid duration value for %s, using default: %s", name, defaultValue.String())
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
