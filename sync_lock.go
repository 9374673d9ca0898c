// Package go_sync_lock provides SyncLock, a value guarded by a mutex that can only be
// reached through a Guard. Acquisitions wait for a bounded time and fail with a
// LockTimeoutError once the bound elapses.
package go_sync_lock

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"

	"github.com/datnguyenzzz/nogodb/lib/go-sync-lock/local_lock"
)

const nilLockMsg = "go_sync_lock: use of nil or uninitialised SyncLock"

// SyncLock owns a value of type T and grants exclusive access to it.
// The lock is not reentrant and waiters are not served in any guaranteed order.
// A SyncLock must not be copied; create it with New.
type SyncLock[T any] struct {
	inner  T
	locker iLocker

	timeout  time.Duration
	typeName string
	name     string
	logger   *zap.Logger
	metrics  *Metrics
	slowHold time.Duration
}

func New[T any](value T, opts ...Option) (*SyncLock[T], error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	if err := validateTimeout(cfg.timeout); err != nil {
		return nil, err
	}

	typeName := reflect.TypeOf((*T)(nil)).Elem().String()
	if cfg.name == "" {
		cfg.name = typeName
	}

	return &SyncLock[T]{
		inner:    value,
		locker:   local_lock.NewLock(),
		timeout:  cfg.timeout,
		typeName: typeName,
		name:     cfg.name,
		logger:   cfg.logger,
		metrics:  cfg.metrics,
		slowHold: cfg.slowHold,
	}, nil
}

// MustNew is like New but panics on invalid options.
func MustNew[T any](value T, opts ...Option) *SyncLock[T] {
	l, err := New(value, opts...)
	if err != nil {
		panic(err)
	}
	return l
}

func (l *SyncLock[T]) Timeout() time.Duration {
	return l.timeout
}

// Acquire waits up to the configured timeout for exclusive access.
func (l *SyncLock[T]) Acquire() (*Guard[T], error) {
	l.mustBeValid()
	return l.acquire(context.Background(), l.timeout)
}

// AcquireTimeout is like Acquire but waits up to timeout instead of the configured one.
func (l *SyncLock[T]) AcquireTimeout(timeout time.Duration) (*Guard[T], error) {
	if err := validateTimeout(timeout); err != nil {
		return nil, err
	}
	return l.acquire(context.Background(), timeout)
}

// TryAcquire takes the lock only if it is free, without waiting.
func (l *SyncLock[T]) TryAcquire() (*Guard[T], error) {
	l.mustBeValid()
	if !l.locker.TryAcquire() {
		return nil, l.timedOut(0, 0)
	}
	return l.acquired(0), nil
}

// AcquireContext is like Acquire but also gives up when ctx is done.
// The configured timeout still applies and is reported as a LockTimeoutError,
// whereas ctx expiry is reported with the context's error.
func (l *SyncLock[T]) AcquireContext(ctx context.Context) (*Guard[T], error) {
	l.mustBeValid()
	return l.acquire(ctx, l.timeout)
}

func (l *SyncLock[T]) acquire(ctx context.Context, timeout time.Duration) (*Guard[T], error) {
	l.mustBeValid()

	start := time.Now()
	err := l.locker.AcquireWithin(ctx, timeout)
	waited := time.Since(start)

	switch {
	case err == nil:
		return l.acquired(waited), nil
	case errors.Is(err, local_lock.ErrTimedOut):
		return nil, l.timedOut(timeout, waited)
	default:
		l.log().Debug("Lock wait aborted",
			zap.String("lock", l.name),
			zap.String("type", l.typeName),
			zap.Duration("waited", waited),
			zap.Error(err))
		return nil, fmt.Errorf("failed to acquire lock for %s: %w", l.typeName, err)
	}
}

func (l *SyncLock[T]) acquired(waited time.Duration) *Guard[T] {
	l.metrics.observeAcquired(l.name, waited)
	return &Guard[T]{parent: l, acquiredAt: time.Now()}
}

func (l *SyncLock[T]) timedOut(timeout, waited time.Duration) error {
	l.metrics.observeTimeout(l.name, waited)
	l.log().Debug("Failed to acquire lock",
		zap.String("lock", l.name),
		zap.String("type", l.typeName),
		zap.String("timeout", formatTimeout(timeout)),
		zap.Duration("waited", waited))
	return &LockTimeoutError{TypeName: l.typeName, Timeout: timeout}
}

func (l *SyncLock[T]) mustBeValid() {
	if l == nil || l.locker == nil {
		panic(nilLockMsg)
	}
}

// unlock is only called by a guard on its first release.
func (l *SyncLock[T]) unlock(held time.Duration) {
	l.metrics.observeReleased(l.name, held)
	if l.slowHold > 0 && held >= l.slowHold {
		l.log().Warn("Lock held longer than expected",
			zap.String("lock", l.name),
			zap.String("type", l.typeName),
			zap.Duration("held", held),
			zap.Duration("threshold", l.slowHold))
	}

	l.locker.Release()
}

func (l *SyncLock[T]) log() *zap.Logger {
	if l.logger != nil {
		return l.logger
	}
	return zap.L()
}
