package go_sync_lock

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsSubsystem = "sync_lock"

// Metrics records lock activity. A single Metrics can be shared by many locks,
// each of them reported under its own "lock" label.
type Metrics struct {
	acquired *prometheus.CounterVec
	timeouts *prometheus.CounterVec
	wait     *prometheus.HistogramVec
	hold     *prometheus.HistogramVec
	held     *prometheus.GaugeVec
}

// NewMetrics creates the lock collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	labels := []string{"lock"}
	m := &Metrics{
		acquired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystem,
			Name:      "acquired_total",
			Help:      "Total number of successful lock acquisitions",
		}, labels),
		timeouts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystem,
			Name:      "timeouts_total",
			Help:      "Total number of acquisitions that gave up after their wait bound",
		}, labels),
		wait: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystem,
			Name:      "wait_seconds",
			Help:      "Time spent waiting for the lock",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, labels),
		hold: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystem,
			Name:      "hold_seconds",
			Help:      "Time a guard was held before release",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
		}, labels),
		held: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: metricsSubsystem,
			Name:      "held",
			Help:      "Number of locks currently held, summed over the locks sharing a label",
		}, labels),
	}

	collectors := []prometheus.Collector{m.acquired, m.timeouts, m.wait, m.hold, m.held}
	for i, c := range collectors {
		if err := reg.Register(c); err != nil {
			// leave reg as it was so that a retry can succeed
			for _, registered := range collectors[:i] {
				reg.Unregister(registered)
			}
			return nil, err
		}
	}

	return m, nil
}

func (m *Metrics) observeAcquired(name string, waited time.Duration) {
	if m == nil {
		return
	}

	m.acquired.WithLabelValues(name).Inc()
	m.wait.WithLabelValues(name).Observe(waited.Seconds())
	m.held.WithLabelValues(name).Inc()
}

func (m *Metrics) observeTimeout(name string, waited time.Duration) {
	if m == nil {
		return
	}

	m.timeouts.WithLabelValues(name).Inc()
	m.wait.WithLabelValues(name).Observe(waited.Seconds())
}

func (m *Metrics) observeReleased(name string, held time.Duration) {
	if m == nil {
		return
	}

	m.hold.WithLabelValues(name).Observe(held.Seconds())
	m.held.WithLabelValues(name).Dec()
}
