package go_sync_lock

import "context"

// Compute runs fn with exclusive access to the value of l and returns its result.
// The lock is released on every exit path of fn, including a panic.
func Compute[T, R any](l *SyncLock[T], fn func(v *T) (R, error)) (R, error) {
	return ComputeContext(context.Background(), l, fn)
}

// ComputeContext is like Compute but also gives up waiting when ctx is done.
func ComputeContext[T, R any](ctx context.Context, l *SyncLock[T], fn func(v *T) (R, error)) (R, error) {
	g, err := l.AcquireContext(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	defer g.Release()

	return fn(g.Ptr())
}

// Do runs fn with exclusive access to the value and releases the lock afterwards.
func (l *SyncLock[T]) Do(fn func(v *T) error) error {
	return l.DoContext(context.Background(), fn)
}

func (l *SyncLock[T]) DoContext(ctx context.Context, fn func(v *T) error) error {
	_, err := ComputeContext(ctx, l, func(v *T) (struct{}, error) {
		return struct{}{}, fn(v)
	})
	return err
}
