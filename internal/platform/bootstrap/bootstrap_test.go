package bootstrap_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marmotkit/asset-mgmt-accounting/internal/adapters/memory"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/domain"
	"github.com/marmotkit/asset-mgmt-accounting/internal/core/services"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/bootstrap"
	"github.com/marmotkit/asset-mgmt-accounting/internal/platform/config"
)

func testConfig() *config.Config {
	return &config.Config{
		StorageDriver:     config.StorageMemory,
		JWTSecret:         "test-secret-key-that-is-long-enough",
		JWTExpiryDuration: time.Hour,
		JWTIssuer:         "aam-test",
		Sync:              config.SyncConfig{LockTTL: time.Minute, DefaultDueDays: 30},
	}
}

func TestNew_MemoryDriverWithoutRedis(t *testing.T) {
	app, err := bootstrap.New(context.Background(), testConfig(), nil)
	require.NoError(t, err)
	defer app.Close()

	assert.Nil(t, app.Redis)
	assert.Empty(t, app.Probes())
	require.NotNil(t, app.Services)
	assert.NotNil(t, app.Services.Sync)
	assert.NotNil(t, app.Metrics)

	accounts, err := app.Services.Lookup.ListAccounts(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, accounts)

	result, err := app.Services.Sync.SyncAllAccountingData(context.Background(), domain.SystemActor)
	require.NoError(t, err)
	assert.Empty(t, result.FeeReceivables)
}

func TestNew_SyncLockLivesInRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig()
	cfg.Redis = config.RedisConfig{Addr: mr.Addr()}

	sources := memory.NewSources()
	sources.SetFees(domain.PendingFee{
		FeeID:      "fee-1",
		MemberID:   "m-1",
		MemberNo:   "A001",
		MemberName: "Chen",
		Amount:     decimal.NewFromInt(1000),
	})
	app, err := bootstrap.New(context.Background(), cfg, nil,
		bootstrap.WithMemoryStore(memory.NewStore()),
		bootstrap.WithSources(sources))
	require.NoError(t, err)
	defer app.Close()
	require.NotNil(t, app.Redis)
	require.Contains(t, app.Probes(), "redis")
	assert.NoError(t, app.Probes()["redis"](context.Background()))

	// Another process holds the lock.
	require.NoError(t, mr.Set("aam:lock:"+services.SyncLockKey, "other-process"))
	_, err = app.Services.Sync.SyncFeeReceivables(context.Background(), "user-1")
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	mr.Del("aam:lock:" + services.SyncLockKey)
	result, err := app.Services.Sync.SyncFeeReceivables(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, result.Created, 1)
	assert.False(t, mr.Exists("aam:lock:"+services.SyncLockKey), "lock must be released after the run")
}

func TestNew_UnreachableRedisFails(t *testing.T) {
	cfg := testConfig()
	cfg.Redis = config.RedisConfig{Addr: "127.0.0.1:1"}

	_, err := bootstrap.New(context.Background(), cfg, nil)
	assert.Error(t, err)
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := testConfig()
	cfg.StorageDriver = "sqlite"

	_, err := bootstrap.New(context.Background(), cfg, nil)
	assert.ErrorContains(t, err, "unknown storage driver")
}
