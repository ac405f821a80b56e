// Package config loads runtime configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/pitchguess/lineup-trivia/internal/platform/logging"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

// Config stores runtime configuration for the trivia service.
type Config struct {
	AppEnv         string `validate:"required,oneof=dev prod"`
	ServiceName    string `validate:"required"`
	ServiceVersion string

	APIBaseURL    string        `validate:"required,url"`
	APIHost       string        `validate:"required,hostname"`
	APIKey        string        `validate:"required"`
	APITimeout    time.Duration `validate:"gt=0"`
	APIMaxRetries int           `validate:"gte=0"`

	RequestsPerMinute int `validate:"gt=0"`

	CircuitEnabled        bool
	CircuitFailureCount   int           `validate:"gt=0"`
	CircuitOpenTimeout    time.Duration `validate:"gt=0"`
	CircuitHalfOpenMaxReq int           `validate:"gt=0"`

	CacheEnabled    bool
	CacheMaxEntries int `validate:"gte=0"`

	LogLevel logging.Level
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads configuration from the environment, applying defaults for
// everything except the API key.
func Load() (Config, error) {
	appEnv, err := parseAppEnv(getEnv("APP_ENV", EnvDev))
	if err != nil {
		return Config{}, err
	}

	apiTimeout, err := time.ParseDuration(getEnv("API_FOOTBALL_TIMEOUT", "10s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_TIMEOUT: %w", err)
	}
	apiMaxRetries, err := getEnvAsInt("API_FOOTBALL_MAX_RETRIES", 3)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_MAX_RETRIES: %w", err)
	}

	requestsPerMinute, err := getEnvAsInt("API_FOOTBALL_REQUESTS_PER_MINUTE", 30)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_REQUESTS_PER_MINUTE: %w", err)
	}

	circuitEnabled, err := strconv.ParseBool(getEnv("API_FOOTBALL_CIRCUIT_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_CIRCUIT_ENABLED: %w", err)
	}
	circuitFailureCount, err := getEnvAsInt("API_FOOTBALL_CIRCUIT_FAILURE_COUNT", 5)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_CIRCUIT_FAILURE_COUNT: %w", err)
	}
	circuitOpenTimeout, err := time.ParseDuration(getEnv("API_FOOTBALL_CIRCUIT_OPEN_TIMEOUT", "15s"))
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_CIRCUIT_OPEN_TIMEOUT: %w", err)
	}
	circuitHalfOpenMaxReq, err := getEnvAsInt("API_FOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ", 2)
	if err != nil {
		return Config{}, fmt.Errorf("parse API_FOOTBALL_CIRCUIT_HALF_OPEN_MAX_REQ: %w", err)
	}

	cacheEnabled, err := strconv.ParseBool(getEnv("CACHE_ENABLED", "true"))
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_ENABLED: %w", err)
	}
	cacheMaxEntries, err := getEnvAsInt("CACHE_MAX_ENTRIES", 0)
	if err != nil {
		return Config{}, fmt.Errorf("parse CACHE_MAX_ENTRIES: %w", err)
	}

	cfg := Config{
		AppEnv:                appEnv,
		ServiceName:           getEnv("APP_SERVICE_NAME", "lineup-trivia"),
		ServiceVersion:        getEnv("APP_SERVICE_VERSION", "dev"),
		APIBaseURL:            strings.TrimSpace(getEnv("API_FOOTBALL_BASE_URL", "https://v3.football.api-sports.io")),
		APIHost:               strings.TrimSpace(getEnv("API_FOOTBALL_HOST", "v3.football.api-sports.io")),
		APIKey:                strings.TrimSpace(getEnv("API_FOOTBALL_KEY", "")),
		APITimeout:            apiTimeout,
		APIMaxRetries:         apiMaxRetries,
		RequestsPerMinute:     requestsPerMinute,
		CircuitEnabled:        circuitEnabled,
		CircuitFailureCount:   circuitFailureCount,
		CircuitOpenTimeout:    circuitOpenTimeout,
		CircuitHalfOpenMaxReq: circuitHalfOpenMaxReq,
		CacheEnabled:          cacheEnabled,
		CacheMaxEntries:       cacheMaxEntries,
		LogLevel:              parseLogLevel(getEnv("APP_LOG_LEVEL", "info")),
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

func parseAppEnv(v string) (string, error) {
	value := strings.ToLower(strings.TrimSpace(v))
	switch value {
	case EnvDev, EnvProd:
		return value, nil
	default:
		return "", fmt.Errorf("invalid APP_ENV %q: valid values are %s, %s", v, EnvDev, EnvProd)
	}
}

func parseLogLevel(v string) logging.Level {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "debug":
		return logging.LevelDebug
	case "warn", "warning":
		return logging.LevelWarn
	case "error":
		return logging.LevelError
	default:
		return logging.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	value := os.Getenv(key)
	if strings.TrimSpace(value) == "" {
		return fallback
	}

	return value
}

func getEnvAsInt(key string, fallback int) (int, error) {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback, nil
	}

	out, err := strconv.Atoi(value)
	if err != nil {
		return 0, err
	}

	return out, nil
}
