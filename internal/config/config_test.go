package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("BUSINESS_HOURS_START", "")
	t.Setenv("BUSINESS_HOURS_END", "")
	t.Setenv("SEED_ROOMS", "")
	t.Setenv("DB_MAX_CONNS", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("JWT_ACCESS_TOKEN_TTL", "")
	t.Setenv("EVENTS_EXCHANGE", "")
}

func TestLoadDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.IsProduction)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.True(t, cfg.SeedRooms)
	assert.Equal(t, 15*time.Minute, cfg.JWTAccessTokenTTL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "09:00", cfg.BusinessHoursOpen)
	assert.Equal(t, "17:00", cfg.BusinessHoursEnd)
	assert.Equal(t, "room-booking.events", cfg.EventsExchange)
}

func TestLoadPostgres(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("STORAGE_DRIVER", "postgres")

	_, err := Load()
	assert.ErrorContains(t, err, "DB_DSN is required")

	t.Setenv("DB_DSN", "postgres://localhost/rooms")
	t.Setenv("DB_MAX_CONNS", "8")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, 8, cfg.DBMaxConns)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "unknown driver", key: "STORAGE_DRIVER", value: "sqlite"},
		{name: "bad timeout", key: "REQUEST_TIMEOUT", value: "soon"},
		{name: "bad seed flag", key: "SEED_ROOMS", value: "maybe"},
		{name: "bad opening time", key: "BUSINESS_HOURS_START", value: "9am"},
		{name: "closing before opening", key: "BUSINESS_HOURS_END", value: "08:00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET is required")
}
