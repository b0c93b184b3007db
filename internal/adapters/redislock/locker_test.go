package redislock_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/marmotkit/asset-mgmt-accounting/internal/adapters/redislock"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLocker(t *testing.T) (*redislock.Locker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return redislock.New(client, ""), mr
}

func TestLocker_SecondAcquireConflicts(t *testing.T) {
	ctx := context.Background()
	locker, mr := newLocker(t)

	release, err := locker.Acquire(ctx, "accounting:sync", time.Minute)
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:accounting:sync"))

	_, err = locker.Acquire(ctx, "accounting:sync", time.Minute)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, release(ctx))
	assert.False(t, mr.Exists("lock:accounting:sync"))

	again, err := locker.Acquire(ctx, "accounting:sync", time.Minute)
	require.NoError(t, err)
	require.NoError(t, again(ctx))
}

func TestLocker_ExpiredLockIsNotReleasedByOldHolder(t *testing.T) {
	ctx := context.Background()
	locker, mr := newLocker(t)

	staleRelease, err := locker.Acquire(ctx, "accounting:sync", time.Second)
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)

	_, err = locker.Acquire(ctx, "accounting:sync", time.Minute)
	require.NoError(t, err)

	require.NoError(t, staleRelease(ctx))
	assert.True(t, mr.Exists("lock:accounting:sync"), "the new holder keeps its lock")
}
