package go_sync_lock

import (
	"fmt"
	"math"
	"time"
)

const (
	// Infinite makes an acquisition wait until the lock is free.
	Infinite time.Duration = -1

	// MaxTimeout is the longest finite wait, a 32-bit count of milliseconds.
	MaxTimeout = math.MaxInt32 * time.Millisecond
)

func validateTimeout(timeout time.Duration) error {
	if timeout == Infinite {
		return nil
	}

	if timeout < 0 || timeout > MaxTimeout {
		return fmt.Errorf("%w: %v", ErrInvalidTimeout, timeout)
	}

	return nil
}

func formatTimeout(timeout time.Duration) string {
	if timeout == Infinite {
		return "infinite"
	}

	return timeout.String()
}
