package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://localhost/aam")
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("REDIS_ADDR", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 10*time.Minute, cfg.Sync.LockTTL)
	assert.Equal(t, 30, cfg.Sync.DefaultDueDays)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_EXPIRY_DURATION", "30m")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("SYNC_LOCK_TTL", "2m")
	t.Setenv("SYNC_DEFAULT_DUE_DAYS", "14")
	t.Setenv("UPSTREAM_BASE_URL", "http://upstream.local/api/")
	t.Setenv("UPSTREAM_TIMEOUT", "not-a-duration")
	t.Setenv("DB_MAX_CONNS", "20")
	t.Setenv("DB_MAX_CONN_LIFETIME", "45m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.JWTExpiryDuration)
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, 2*time.Minute, cfg.Sync.LockTTL)
	assert.Equal(t, 14, cfg.Sync.DefaultDueDays)
	assert.Equal(t, "http://upstream.local/api", cfg.Upstream.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.Upstream.Timeout)
	assert.Equal(t, 20, cfg.DB.MaxConns)
	assert.Equal(t, 45*time.Minute, cfg.DB.MaxConnLifetime)
}

func TestLoadConfig_InvalidStorageDriverFallsBack(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "sqlite")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageDriver)
}
