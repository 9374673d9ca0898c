package bench

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
	"golang.org/x/sync/errgroup"

	go_sync_lock "github.com/datnguyenzzz/nogodb/lib/go-sync-lock"
)

// maxTrackedWaitUs caps the recorded wait at 10s, longer waits are clamped
const maxTrackedWaitUs = 10_000_000

type Report struct {
	Acquired int64
	Timeouts int64
	Waits    *hdrhistogram.Histogram
	Elapsed  time.Duration
}

func (r *Report) Print(w io.Writer, name string) {
	fmt.Fprintf(w, "%s: acquired=%d timeouts=%d elapsed=%s p50=%dus p99=%dus max=%dus\n",
		name, r.Acquired, r.Timeouts, r.Elapsed,
		r.Waits.ValueAtQuantile(50), r.Waits.ValueAtQuantile(99), r.Waits.Max())
}

type recorder struct {
	mu       sync.Mutex
	waits    *hdrhistogram.Histogram
	acquired int64
	timeouts int64
}

func newRecorder() *recorder {
	return &recorder{
		waits: hdrhistogram.New(1, maxTrackedWaitUs, 3),
	}
}

func (r *recorder) record(waited time.Duration, acquired bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	us := waited.Microseconds()
	if us < 1 {
		us = 1
	}
	if us > maxTrackedWaitUs {
		us = maxTrackedWaitUs
	}
	_ = r.waits.RecordValue(us)
	if acquired {
		r.acquired++
	} else {
		r.timeouts++
	}
}

// Run drives s against a fresh lock created with opts on top of the scenario's timeout.
func Run(s Scenario, opts ...go_sync_lock.Option) (*Report, error) {
	opts = append([]go_sync_lock.Option{go_sync_lock.WithTimeout(s.Timeout), go_sync_lock.WithName(s.Name)}, opts...)
	l, err := go_sync_lock.New(int64(0), opts...)
	if err != nil {
		return nil, err
	}

	rec := newRecorder()
	start := time.Now()

	eg := new(errgroup.Group)
	for i := 0; i < s.Workers; i++ {
		eg.Go(func() error {
			for j := 0; j < s.Ops; j++ {
				t0 := time.Now()
				g, err := l.Acquire()
				waited := time.Since(t0)
				if go_sync_lock.IsLockTimeout(err) {
					rec.record(waited, false)
					continue
				}
				if err != nil {
					return err
				}

				rec.record(waited, true)
				*g.Ptr()++
				if s.Hold > 0 {
					time.Sleep(s.Hold)
				}
				g.Release()
			}
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total, err := go_sync_lock.Compute(l, func(v *int64) (int64, error) {
		return *v, nil
	})
	if err != nil {
		return nil, err
	}
	if total != rec.acquired {
		return nil, fmt.Errorf("lost updates: counter=%d acquired=%d", total, rec.acquired)
	}

	return &Report{
		Acquired: rec.acquired,
		Timeouts: rec.timeouts,
		Waits:    rec.waits,
		Elapsed:  time.Since(start),
	}, nil
}
