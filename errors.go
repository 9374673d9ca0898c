package go_sync_lock

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTimeout = errors.New("invalid timeout specified")
	ErrLockTimeout    = errors.New("lock timeout")
)

// LockTimeoutError is returned when the wait bound of an acquisition elapses
// before the lock becomes free.
type LockTimeoutError struct {
	// TypeName is the name of the protected type.
	TypeName string
	Timeout  time.Duration
}

func (e *LockTimeoutError) Error() string {
	return fmt.Sprintf("failed to acquire lock for %s within %s", e.TypeName, formatTimeout(e.Timeout))
}

func (e *LockTimeoutError) Is(target error) bool {
	return target == ErrLockTimeout
}

// IsLockTimeout reports whether err (or any error in its chain) is a lock timeout.
func IsLockTimeout(err error) bool {
	return errors.Is(err, ErrLockTimeout)
}
