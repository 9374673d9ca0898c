package go_sync_lock

import (
	"time"

	"go.uber.org/zap"
)

type config struct {
	timeout  time.Duration
	name     string
	logger   *zap.Logger
	metrics  *Metrics
	slowHold time.Duration
}

type Option func(c *config)

func defaultConfig() config {
	return config{
		timeout: Infinite,
	}
}

// WithTimeout sets the default wait bound of every acquisition on the lock.
// Use Infinite to wait forever and 0 to only probe the lock.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) {
		c.timeout = timeout
	}
}

// WithName sets the label used in logs and metrics. Defaults to the protected type's name.
func WithName(name string) Option {
	return func(c *config) {
		c.name = name
	}
}

// WithLogger replaces the global zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(c *config) {
		c.metrics = metrics
	}
}

// WithSlowHoldThreshold logs a warning whenever a guard is held for at least threshold.
// A non-positive threshold disables the check.
func WithSlowHoldThreshold(threshold time.Duration) Option {
	return func(c *config) {
		c.slowHold = threshold
	}
}
