// Package redislock serializes sync runs across API and worker processes with a Redis key.
package redislock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "lock:"

// releaseScript deletes the key only while it still holds our token, so a run that
// outlived its TTL cannot drop a lock taken over by another process.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Locker implements services.SyncLocker on top of SET NX PX.
type Locker struct {
	client    redis.UniversalClient
	keyPrefix string
}

// New creates a Locker. An empty keyPrefix uses "lock:".
func New(client redis.UniversalClient, keyPrefix string) *Locker {
	if keyPrefix == "" {
		keyPrefix = defaultPrefix
	}
	return &Locker{client: client, keyPrefix: keyPrefix}
}

// Acquire takes key for ttl. It returns apperrors.ErrConflict when another holder has it.
func (l *Locker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	fullKey := l.keyPrefix + key
	token := uuid.NewString()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: lock %s is held", apperrors.ErrConflict, key)
	}

	return func(ctx context.Context) error {
		if err := releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err(); err != nil {
			return fmt.Errorf("failed to release lock %s: %w", key, err)
		}
		return nil
	}, nil
}
