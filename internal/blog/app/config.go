package app

import (
	"errors"
	"os"
	"strconv"
	"time"
)

type Config struct {
	JWTSecret string        // Required: HMAC secret for signing access tokens
	Issuer    string        // Optional: issuer claim for tokens (default: miniblog)
	Audience  string        // Optional: audience claim for tokens (default: miniblog-api)
	AccessTTL time.Duration // Optional: access token lifetime (default: 1h)

	DatabaseDriver string // Optional: sqlite or postgres (default: sqlite)
	DatabaseDSN    string // Optional: DSN for the chosen driver (default: ./blog.db)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// ErrMissingJWTSecret means BLOG_JWT_SECRET was not set. There is no
// usable default for a signing secret, so startup refuses to continue.
var ErrMissingJWTSecret = errors.New("BLOG_JWT_SECRET is required")

func LoadConfig() Config {
	return Config{
		JWTSecret: os.Getenv("BLOG_JWT_SECRET"),
		Issuer:    getEnvOrDefault("BLOG_ISSUER", "miniblog"),
		Audience:  getEnvOrDefault("BLOG_AUDIENCE", "miniblog-api"),
		AccessTTL: getEnvDurationOrDefault("BLOG_ACCESS_TTL", time.Hour),

		DatabaseDriver: getEnvOrDefault("BLOG_DATABASE_DRIVER", "sqlite"),
		DatabaseDSN:    getEnvOrDefault("BLOG_DATABASE_DSN", "blog.db"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate checks the hard requirements before the app is built.
func (c Config) Validate() error {
	if c.JWTSecret == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Duration strings first (e.g. "1h", "30m", "90s").
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are taken as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
