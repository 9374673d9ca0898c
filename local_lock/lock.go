package local_lock

import (
	"context"
	"errors"
	"time"
)

var (
	ErrTimedOut       = errors.New("lock wait timed out")
	ErrNotInitialised = errors.New("failed to init lock")
)

// CtxLock uses a Go channel to provide atomic locking and unlocking with a bounded wait and
// context.Context cancellation support. This lock is resolved locally and does not require network calls.
// It is not reentrant, and waiters are woken in no guaranteed order.
type CtxLock struct {
	ch chan struct{}
}

func NewLock() *CtxLock {
	return &CtxLock{
		// buffered chanel with a size of 1,
		// so the sender will be blocked when the chanel is full
		ch: make(chan struct{}, 1),
	}
}

// TryAcquire takes the lock only if it is free at the time of the call.
func (l *CtxLock) TryAcquire() bool {
	if l.ch == nil {
		return false
	}

	select {
	case l.ch <- struct{}{}:
		return true
	default:
		return false
	}
}

// AcquireWithin waits at most timeout for the lock. A zero timeout probes the lock once,
// a negative timeout waits until the lock is taken or ctx is done.
func (l *CtxLock) AcquireWithin(ctx context.Context, timeout time.Duration) error {
	if l.ch == nil {
		return ErrNotInitialised
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	if l.TryAcquire() {
		return nil
	}

	if timeout == 0 {
		return ErrTimedOut
	}

	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case l.ch <- struct{}{}:
		return nil
	case <-expired:
		return ErrTimedOut
	case <-ctx.Done():
		// context is either timeout or cancelled
		return ctx.Err()
	}
}

func (l *CtxLock) Release() {
	if l.ch == nil {
		panic(ErrNotInitialised)
	}

	select {
	case <-l.ch:
	default:
		panic("release of unlocked lock")
	}
}
