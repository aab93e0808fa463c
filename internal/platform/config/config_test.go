package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"REGISTRATION_ADDR",
		"DATABASE_URL",
		"REDIS_URL",
		"REGISTRATION_LIST_CACHE_TTL",
		"REGISTRATION_ALLOW_DOB_UPDATE",
	} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Contains(t, cfg.DatabaseURL, "postgres://")
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, 30*time.Second, cfg.ListCacheTTL)
	assert.False(t, cfg.AllowDOBUpdate)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("REGISTRATION_ADDR", ":9090")
	t.Setenv("DATABASE_URL", "postgres://app@db:5432/app")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("REGISTRATION_LIST_CACHE_TTL", "5m")
	t.Setenv("REGISTRATION_ALLOW_DOB_UPDATE", "true")

	cfg := FromEnv()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "postgres://app@db:5432/app", cfg.DatabaseURL)
	assert.Equal(t, "redis://cache:6379/0", cfg.RedisURL)
	assert.Equal(t, 5*time.Minute, cfg.ListCacheTTL)
	assert.True(t, cfg.AllowDOBUpdate)
}

func TestFromEnvIgnoresBadTTL(t *testing.T) {
	t.Setenv("REGISTRATION_LIST_CACHE_TTL", "soon")

	assert.Equal(t, 30*time.Second, FromEnv().ListCacheTTL)
}
