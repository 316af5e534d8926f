package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/ailab/authd/pkg/jwtx"
)

type Config struct {
	SecretKey string // Required: HMAC signing key, at least 32 bytes
	FieldKey  string // Optional: base64 AES key for PII field encryption
	Issuer    string // Optional: issuer claim for tokens (default: authd)

	AccessTokenTTL  time.Duration // Optional: access token lifetime (default: 30m)
	RefreshTokenTTL time.Duration // Optional: refresh token lifetime (default: 7 days)

	TokenHeader  string // Optional: header carrying the access token (default: Authorization)
	CookieName   string // Optional: refresh cookie name (default: refresh_token)
	CookiePath   string // Optional: refresh cookie path (default: /api/auth)
	CookieDomain string // Optional: refresh cookie domain
	CookieSecure bool   // Optional: mark the refresh cookie Secure (default: false)

	SessionBackend string // Optional: session store backend (redis, memory) (default: redis)
	RedisAddr      string // Optional: redis address (default: localhost:6379)
	RedisPassword  string // Optional: redis password
	RedisDB        int    // Optional: redis database number (default: 0)

	DatabaseFile string        // Optional: path to SQLite database file (default: ./authd.db)
	StoreTimeout time.Duration // Optional: per-call session store deadline (default: 3s)

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	return Config{
		SecretKey: os.Getenv("AUTH_SECRET_KEY"),
		FieldKey:  os.Getenv("AUTH_FIELD_KEY"),
		Issuer:    getEnvOrDefault("AUTH_ISSUER", "authd"),

		AccessTokenTTL:  getEnvDurationOrDefault("AUTH_ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		RefreshTokenTTL: getEnvDurationOrDefault("AUTH_REFRESH_TOKEN_TTL", jwtx.DefaultRefreshTokenTTL),

		TokenHeader:  getEnvOrDefault("AUTH_TOKEN_HEADER", "Authorization"),
		CookieName:   getEnvOrDefault("AUTH_COOKIE_NAME", "refresh_token"),
		CookiePath:   getEnvOrDefault("AUTH_COOKIE_PATH", "/api/auth"),
		CookieDomain: os.Getenv("AUTH_COOKIE_DOMAIN"),
		CookieSecure: getEnvBoolOrDefault("AUTH_COOKIE_SECURE", false),

		SessionBackend: getEnvOrDefault("SESSION_BACKEND", "redis"),
		RedisAddr:      getEnvOrDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		RedisDB:        getEnvIntOrDefault("REDIS_DB", 0),

		DatabaseFile: getEnvOrDefault("DATABASE_FILE", "authd.db"),
		StoreTimeout: getEnvDurationOrDefault("STORE_TIMEOUT", 3*time.Second),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

// Validate rejects configurations the service cannot run with. Most
// settings have workable defaults; the signing key does not.
func (cfg Config) Validate() error {
	if cfg.SecretKey == "" {
		return errors.New("AUTH_SECRET_KEY is required")
	}
	if len(cfg.SecretKey) < jwtx.MinKeyBytes {
		return fmt.Errorf("AUTH_SECRET_KEY must be at least %d bytes", jwtx.MinKeyBytes)
	}
	switch cfg.SessionBackend {
	case "redis", "memory":
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", cfg.SessionBackend)
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

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
