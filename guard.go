package go_sync_lock

import (
	"sync/atomic"
	"time"
)

const releasedGuardMsg = "go_sync_lock: use of released guard"

// Guard grants exclusive access to the value of the SyncLock it was acquired from.
// It is live until Release is called; any access afterwards panics.
type Guard[T any] struct {
	parent     *SyncLock[T]
	acquiredAt time.Time
	released   atomic.Bool
}

// Value returns a copy of the protected value.
func (g *Guard[T]) Value() T {
	g.mustBeLive()
	return g.parent.inner
}

// Ptr returns a pointer to the protected value. It must not be retained after Release.
func (g *Guard[T]) Ptr() *T {
	g.mustBeLive()
	return &g.parent.inner
}

func (g *Guard[T]) Set(value T) {
	g.mustBeLive()
	g.parent.inner = value
}

// Release unlocks the parent lock. Only the first call has an effect, so
// Release is safe to defer after an explicit call. Releasing a nil guard is a no-op.
func (g *Guard[T]) Release() {
	if g == nil || !g.released.CompareAndSwap(false, true) {
		return
	}

	g.parent.unlock(time.Since(g.acquiredAt))
}

func (g *Guard[T]) Released() bool {
	return g.released.Load()
}

func (g *Guard[T]) mustBeLive() {
	if g.released.Load() {
		panic(releasedGuardMsg)
	}
}
