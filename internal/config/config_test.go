package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "test")
	t.Setenv("APP_PORT", "8080")
	t.Setenv("DB_USER", "app")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "3306")
	t.Setenv("DB_NAME", "campus")
	t.Setenv("JWT_SECRET", "secret")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg := Load()
	assert.Equal(t, "test", cfg.Env)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 7, cfg.AccessTTLDays)
	assert.Equal(t, 30, cfg.RefreshTTLDays)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(5*1024*1024), cfg.UploadMaxBytes)
	assert.Empty(t, cfg.DBPass)
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("ACCESS_TOKEN_TTL_DAYS", "1")
	t.Setenv("REFRESH_TOKEN_TTL_DAYS", "90")
	t.Setenv("BCRYPT_COST", "12")
	t.Setenv("UPLOAD_DIR", "/var/uploads")
	t.Setenv("UPLOAD_MAX_BYTES", "1048576")
	t.Setenv("PUBLIC_BASE_URL", "https://events.example.edu")

	cfg := Load()
	assert.Equal(t, 1, cfg.AccessTTLDays)
	assert.Equal(t, 90, cfg.RefreshTTLDays)
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.Equal(t, "/var/uploads", cfg.UploadDir)
	assert.Equal(t, int64(1048576), cfg.UploadMaxBytes)
	assert.Equal(t, "https://events.example.edu", cfg.PublicBaseURL)
}

func TestLoadRateLimitConfigDefaults(t *testing.T) {
	cfg := LoadRateLimitConfig()
	assert.True(t, cfg.Enabled)
	assert.Greater(t, cfg.Capacity, 0)
	assert.Greater(t, cfg.RefillTokens, 0)
	assert.Greater(t, cfg.RefillInterval, time.Duration(0))
}

func TestLoadRateLimitConfigDisabled(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	cfg := LoadRateLimitConfig()
	assert.False(t, cfg.Enabled)
}
