package services

import (
	"context"
	"time"
)

// SyncLocker serializes sync runs across processes.
type SyncLocker interface {
	// Acquire takes the named lock for at most ttl. It returns apperrors.ErrConflict when
	// the lock is held elsewhere. The returned release func is safe to call once.
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context) error, err error)
}

// SyncObserver receives sync outcomes, typically to export them as metrics.
type SyncObserver interface {
	ObserveSyncItem(domain, outcome string)
	ObserveSyncRun(domain string, failed bool)
}

type serviceOptions struct {
	now            func() time.Time
	locker         SyncLocker
	lockTTL        time.Duration
	observer       SyncObserver
	defaultDueDays int
}

// ServiceOption configures optional collaborators of the services.
type ServiceOption func(*serviceOptions)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) ServiceOption {
	return func(o *serviceOptions) {
		o.now = now
	}
}

// WithSyncLocker sets the lock used to serialize sync runs.
func WithSyncLocker(locker SyncLocker, ttl time.Duration) ServiceOption {
	return func(o *serviceOptions) {
		o.locker = locker
		if ttl > 0 {
			o.lockTTL = ttl
		}
	}
}

// WithSyncObserver sets the sink for sync outcomes.
func WithSyncObserver(observer SyncObserver) ServiceOption {
	return func(o *serviceOptions) {
		o.observer = observer
	}
}

// WithDefaultDueDays sets how many days after sync a record without upstream due date falls due.
func WithDefaultDueDays(days int) ServiceOption {
	return func(o *serviceOptions) {
		if days > 0 {
			o.defaultDueDays = days
		}
	}
}

func applyOptions(opts []ServiceOption) serviceOptions {
	o := serviceOptions{
		lockTTL:        10 * time.Minute,
		defaultDueDays: 30,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
