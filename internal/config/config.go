package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	LogLevel          string
	StorageDriver     string
	DBDSN             string
	DBMaxConns        int
	SeedRooms         bool
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	RequestTimeout    time.Duration
	BusinessHoursOpen string
	BusinessHoursEnd  string
	RedisAddr         string
	LockTTL           time.Duration
	AMQPURL           string
	EventsExchange    string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Storage driver (default: memory)
	cfg.StorageDriver = strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory))
	switch cfg.StorageDriver {
	case StorageMemory:
	case StoragePostgres:
		// Database DSN is required for durable storage
		cfg.DBDSN = os.Getenv("DB_DSN")
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
		// Pool size, 0 keeps the pgxpool default
		if cfg.DBMaxConns, err = getEnvAsInt("DB_MAX_CONNS", 0); err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_CONNS: %w", err)
		}
	default:
		return nil, fmt.Errorf("invalid STORAGE_DRIVER %q: want %s or %s", cfg.StorageDriver, StorageMemory, StoragePostgres)
	}

	// Seed the default room catalog into an empty store (default: true)
	cfg.SeedRooms, err = getEnvAsBool("SEED_ROOMS", true)
	if err != nil {
		return nil, fmt.Errorf("invalid SEED_ROOMS: %w", err)
	}

	// JWT secret is required for verifying tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	if cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}

	// Per-request deadline applied to every handler (default: 5s)
	if cfg.RequestTimeout, err = getEnvAsDuration("REQUEST_TIMEOUT", 5*time.Second); err != nil {
		return nil, fmt.Errorf("invalid REQUEST_TIMEOUT: %w", err)
	}

	// Business hours for free-slot queries, HH:MM
	cfg.BusinessHoursOpen = getEnv("BUSINESS_HOURS_START", "09:00")
	cfg.BusinessHoursEnd = getEnv("BUSINESS_HOURS_END", "17:00")
	open, err := time.Parse("15:04", cfg.BusinessHoursOpen)
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_HOURS_START: %w", err)
	}
	end, err := time.Parse("15:04", cfg.BusinessHoursEnd)
	if err != nil {
		return nil, fmt.Errorf("invalid BUSINESS_HOURS_END: %w", err)
	}
	if !open.Before(end) {
		return nil, fmt.Errorf("BUSINESS_HOURS_START must be before BUSINESS_HOURS_END")
	}

	// Optional Redis for room locks shared across processes
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	if cfg.LockTTL, err = getEnvAsDuration("LOCK_TTL", 10*time.Second); err != nil {
		return nil, fmt.Errorf("invalid LOCK_TTL: %w", err)
	}

	// Optional broker for reservation events
	cfg.AMQPURL = getEnv("AMQP_URL", "")
	cfg.EventsExchange = getEnv("EVENTS_EXCHANGE", "room-booking.events")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		// Return 0 and a wrapped error to provide context
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

func getEnvAsBool(key string, defaultValue bool) (bool, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false, fmt.Errorf("env %s value %q is not a valid boolean: %w", key, valStr, err)
	}
	return val, nil
}

func getEnvAsDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}
	return val, nil
}
