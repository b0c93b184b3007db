package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/marmotkit/asset-mgmt-accounting/internal/apperrors"
)

// SyncLockKey is the lock name shared by every sync entry point.
const SyncLockKey = "accounting:sync"

// ErrSyncInProgress is returned when another sync run holds the lock.
var ErrSyncInProgress = fmt.Errorf("%w: a sync run is already in progress", apperrors.ErrConflict)

// processLocker is the fallback used when no distributed locker is configured.
// It only serializes runs inside this process.
type processLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
}

func newProcessLocker() *processLocker {
	return &processLocker{held: make(map[string]time.Time)}
}

func (l *processLocker) Acquire(_ context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if expires, ok := l.held[key]; ok && time.Now().Before(expires) {
		return nil, ErrSyncInProgress
	}
	expires := time.Now().Add(ttl)
	l.held[key] = expires

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() {
			l.mu.Lock()
			defer l.mu.Unlock()
			if l.held[key].Equal(expires) {
				delete(l.held, key)
			}
		})
		return nil
	}, nil
}
