package go_sync_lock

import (
	"context"
	"time"
)

// iLocker is the coordination primitive behind a SyncLock.
type iLocker interface {
	TryAcquire() bool
	AcquireWithin(ctx context.Context, timeout time.Duration) error
	Release()
}
