package clock

import (
	"context"
	"sync"
	"time"
)

// maxCatchUp bounds how many missed periods a Ticker replays at once.
// Anything beyond that is dropped, as a late timer interrupt would be.
const maxCatchUp = 4096

// Handle cancels a scheduled callback.
type Handle interface {
	Cancel()
}

// Timer schedules a callback to run once per period.
//
// Implementations must never run two invocations of the callback at the
// same time.
type Timer interface {
	Schedule(period time.Duration, fn func()) (Handle, error)
}

// Ticker is a Timer driven by a time.Ticker. The operating system cannot
// wake a goroutine every few microseconds, so the ticker wakes at a
// coarser resolution and runs the callback once for every period that has
// elapsed since it started.
type Ticker struct {
	resolution time.Duration
}

// NewTicker creates a Ticker that wakes every resolution.
func NewTicker(resolution time.Duration) *Ticker {
	if resolution <= 0 {
		resolution = time.Millisecond
	}
	return &Ticker{resolution: resolution}
}

// Schedule starts calling fn from a new goroutine.
func (t *Ticker) Schedule(period time.Duration, fn func()) (Handle, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if fn == nil {
		return nil, ErrNoCallback
	}

	wake := max(t.resolution, period)
	ctx, cancel := context.WithCancel(context.Background())
	h := &tickerHandle{cancel: cancel, done: make(chan struct{})}

	go func() {
		defer close(h.done)

		tk := time.NewTicker(wake)
		defer tk.Stop()

		start := time.Now()
		var fired int64
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-tk.C:
				due := int64(now.Sub(start) / period)
				if due-fired > maxCatchUp {
					fired = due - maxCatchUp
				}
				for ; fired < due; fired++ {
					if ctx.Err() != nil {
						return
					}
					fn()
				}
			}
		}
	}()

	return h, nil
}

type tickerHandle struct {
	once   sync.Once
	cancel context.CancelFunc
	done   chan struct{}
}

// Cancel stops the callbacks and waits for a running one to return. It
// must not be called from the callback itself.
func (h *tickerHandle) Cancel() {
	h.once.Do(h.cancel)
	<-h.done
}

// Manual is a Timer that only fires when told to. It lets tests and the
// simulator step the acquisition clock deterministically.
type Manual struct {
	mu     sync.Mutex
	fn     func()
	period time.Duration
}

// NewManual creates an unscheduled manual timer.
func NewManual() *Manual {
	return &Manual{}
}

// Schedule registers fn. Only one callback can be registered at a time.
func (m *Manual) Schedule(period time.Duration, fn func()) (Handle, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	if fn == nil {
		return nil, ErrNoCallback
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fn != nil {
		return nil, ErrAlreadyRunning
	}
	m.fn = fn
	m.period = period
	return manualHandle{m}, nil
}

// Advance fires the callback n times. It returns the number of callbacks
// run, zero when nothing is scheduled.
func (m *Manual) Advance(n int) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fn == nil {
		return 0
	}
	for range n {
		m.fn()
	}
	return n
}

// AdvanceBy fires the callback once per period contained in d.
func (m *Manual) AdvanceBy(d time.Duration) int {
	m.mu.Lock()
	period := m.period
	m.mu.Unlock()
	if period <= 0 {
		return 0
	}
	return m.Advance(int(d / period))
}

// Scheduled reports whether a callback is registered.
func (m *Manual) Scheduled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fn != nil
}

type manualHandle struct {
	m *Manual
}

func (h manualHandle) Cancel() {
	h.m.mu.Lock()
	defer h.m.mu.Unlock()
	h.m.fn = nil
	h.m.period = 0
}
