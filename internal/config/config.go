package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Session store backends.
const (
	SessionStoreMemory = "memory"
	SessionStoreRedis  = "redis"
)

// Registration sinks.
const (
	RegistrationSinkNone     = "none"
	RegistrationSinkPostgres = "postgres"
	RegistrationSinkQueue    = "queue"
)

// Config holds all application configuration.
type Config struct {
	ServerPort  string
	GinMode     string
	LogLevel    string
	LogFormat   string
	DatabaseURL string
	MaxDBConns  int32
	RedisURL    string
	// SessionStore selects where form sessions live: "memory" or "redis".
	SessionStore string
	SessionTTL   time.Duration
	// RegistrationSink selects where submitted registrations go: "none",
	// "postgres" (direct insert) or "queue" (Redis list drained by a worker).
	RegistrationSink string
	PaymentDelay     time.Duration
	ContractPath     string
	SubmitRateLimit  int
	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "pretty"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		MaxDBConns:       int32(getEnvInt("MAX_DB_CONNS", 4)),
		RedisURL:         getEnv("REDIS_URL", "redis://localhost:6379/0"),
		SessionStore:     strings.ToLower(getEnv("SESSION_STORE", SessionStoreMemory)),
		SessionTTL:       time.Duration(getEnvPositiveInt("SESSION_TTL_MINUTES", 60)) * time.Minute,
		RegistrationSink: strings.ToLower(getEnv("REGISTRATION_SINK", RegistrationSinkNone)),
		PaymentDelay:     time.Duration(getEnvInt("PAYMENT_SIMULATED_DELAY_MS", 1500)) * time.Millisecond,
		ContractPath:     getEnv("CONTRACT_PATH", "./static/contract.pdf"),
		SubmitRateLimit:  getEnvPositiveInt("SUBMIT_RATE_LIMIT", 10),
		AllowedOrigins:   parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

// UsesRedis reports whether any configured component needs a Redis client.
func (c *Config) UsesRedis() bool {
	return c.SessionStore == SessionStoreRedis || c.RegistrationSink == RegistrationSinkQueue
}

// UsesPostgres reports whether registrations are written to Postgres.
func (c *Config) UsesPostgres() bool {
	return c.RegistrationSink == RegistrationSinkPostgres || c.RegistrationSink == RegistrationSinkQueue
}

// Validate rejects settings that name an unknown backend.
func (c *Config) Validate() error {
	switch c.SessionStore {
	case SessionStoreMemory, SessionStoreRedis:
	default:
		return fmt.Errorf("unknown SESSION_STORE %q (want %s or %s)", c.SessionStore, SessionStoreMemory, SessionStoreRedis)
	}

	switch c.RegistrationSink {
	case RegistrationSinkNone, RegistrationSinkPostgres, RegistrationSinkQueue:
	default:
		return fmt.Errorf("unknown REGISTRATION_SINK %q (want %s, %s or %s)",
			c.RegistrationSink, RegistrationSinkNone, RegistrationSinkPostgres, RegistrationSinkQueue)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// getEnvPositiveInt is getEnvInt for settings where zero or less is meaningless.
func getEnvPositiveInt(key string, fallback int) int {
	if n := getEnvInt(key, fallback); n > 0 {
		return n
	}
	return fallback
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
