package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	defaultJWTSecret  = "your_jwt_secret_minimum_32_chars_here_change_this"
	defaultSessionKey = "change_me_session_key"
)

type Config struct {
	// Application
	AppEnv   string
	Port     string
	LogLevel string

	// Storage
	StoreDriver     string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSSLMode       string
	VerbosePostgres bool
	MigratePostgres bool

	// Redis, empty disables presence, typing and the shared rate limiter
	RedisURL string

	// Security
	JWTSecret   string
	SessionKey  string
	TokenTTL    time.Duration
	CORSOrigins []string

	// Rate limiting
	RateLimitPerMinute int

	// Realtime
	EnableRealtime bool
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:   getEnv("APP_ENV", "development"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		StoreDriver:     getEnv("STORE_DRIVER", StoreDriverPostgres),
		DBHost:          getEnv("POSTGRES_HOST", "localhost"),
		DBPort:          getEnv("POSTGRES_PORT", "5432"),
		DBUser:          getEnv("POSTGRES_USER", "roomio"),
		DBPassword:      getEnv("POSTGRES_PASSWORD", ""),
		DBName:          getEnv("POSTGRES_DATABASE", "roomio"),
		DBSSLMode:       getEnv("POSTGRES_SSLMODE", "disable"),
		VerbosePostgres: getEnvBool("VERBOSE_POSTGRES", false),
		MigratePostgres: getEnvBool("MIGRATE_POSTGRES", false),

		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret:   getEnv("JWT_SECRET_KEY", ""),
		SessionKey:  getEnv("SESSION_KEY", ""),
		TokenTTL:    time.Duration(getEnvInt("TOKEN_TTL_HOURS", 24*7)) * time.Hour,
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),

		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 120),

		EnableRealtime: getEnvBool("ENABLE_REALTIME", true),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateProductionSecurity(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.StoreDriver != StoreDriverPostgres && c.StoreDriver != StoreDriverMemory {
		return fmt.Errorf("STORE_DRIVER must be %q or %q", StoreDriverPostgres, StoreDriverMemory)
	}
	if c.StoreDriver == StoreDriverPostgres && c.DBPassword == "" {
		return fmt.Errorf("POSTGRES_PASSWORD is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if len(c.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET_KEY must be at least 32 characters")
	}
	if c.SessionKey == "" {
		return fmt.Errorf("SESSION_KEY is required")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL_HOURS must be positive")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

func (c *Config) ValidateProductionSecurity() error {
	if !c.IsProduction() {
		return nil
	}

	if c.StoreDriver != StoreDriverPostgres {
		return fmt.Errorf("STORE_DRIVER must be %q in production", StoreDriverPostgres)
	}
	if c.DBSSLMode != "require" {
		return fmt.Errorf("POSTGRES_SSLMODE must be 'require' in production")
	}
	if c.JWTSecret == defaultJWTSecret {
		return fmt.Errorf("JWT_SECRET_KEY must be changed from default in production")
	}
	if c.SessionKey == defaultSessionKey {
		return fmt.Errorf("SESSION_KEY must be changed from default in production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DSN returns the postgres connection URL for lib/pq.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgresql",
		User:     url.UserPassword(c.DBUser, c.DBPassword),
		Host:     c.DBHost + ":" + c.DBPort,
		Path:     "/" + c.DBName,
		RawQuery: "sslmode=" + url.QueryEscape(c.DBSSLMode),
	}
	return u.String()
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
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
