package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultAPIURL is used when no backend base URL is configured.
const DefaultAPIURL = "http://localhost:5000"

// Flash store backends.
const (
	FlashStoreMemory = "memory"
	FlashStoreRedis  = "redis"
)

// Config aggregates runtime configuration for the front end.
type Config struct {
	App    AppConfig
	API    APIConfig
	Auth   AuthConfig
	Flash  FlashConfig
	Redis  RedisConfig
	Logger LoggerConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// APIConfig locates the backend every screen reads from.
type APIConfig struct {
	BaseURL string
}

// AuthConfig defines session cookie parameters.
type AuthConfig struct {
	TokenTTLDays int
	CookieSecure bool
}

// FlashConfig selects where one-shot notices are kept between redirects.
type FlashConfig struct {
	Store      string
	TTLSeconds int
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	flashStore := strings.ToLower(getEnv("FLASH_STORE", FlashStoreMemory))
	if flashStore != FlashStoreMemory && flashStore != FlashStoreRedis {
		return nil, fmt.Errorf("invalid FLASH_STORE %q", flashStore)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "message-admin"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "3000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("API_URL", getEnv("NEXT_PUBLIC_API_URL", DefaultAPIURL)), "/"),
		},
		Auth: AuthConfig{
			TokenTTLDays: getEnvAsInt("AUTH_TOKEN_TTL_DAYS", 7),
			CookieSecure: getEnvAsBool("AUTH_COOKIE_SECURE", false),
		},
		Flash: FlashConfig{
			Store:      flashStore,
			TTLSeconds: getEnvAsInt("FLASH_TTL_SECONDS", 300),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// TTL returns how long an unread flash survives.
func (f FlashConfig) TTL() time.Duration {
	if f.TTLSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(f.TTLSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
