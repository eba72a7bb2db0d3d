// Package clock drives the acquisition engine from a periodic timer.
package clock

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Desaware/bitscanner/pkg/source"
)

var (
	ErrInvalidPeriod  = errors.New("tick period must be at least 1us")
	ErrNoCallback     = errors.New("no tick callback")
	ErrAlreadyRunning = errors.New("already running")
)

// Sink consumes one sample per tick. now is the tick time in microseconds.
type Sink interface {
	Tick(now uint64, v uint16)
}

// Clock reads one sample per timer tick and hands it to the sink.
//
// Time is derived from the tick count, not from the wall clock: tick n
// happens at n*period. A Ticker that falls behind replays the missed
// ticks, so the engine always sees evenly spaced samples.
type Clock struct {
	timer    Timer
	src      source.Source
	sink     Sink
	period   time.Duration
	periodUs uint64

	ticks atomic.Uint64

	mu     sync.Mutex
	handle Handle
}

// New creates a stopped clock.
func New(timer Timer, src source.Source, sink Sink, period time.Duration) *Clock {
	return &Clock{
		timer:    timer,
		src:      src,
		sink:     sink,
		period:   period,
		periodUs: uint64(period / time.Microsecond),
	}
}

// Start arms the timer. Ticks continue from where a previous Stop left them.
func (c *Clock) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.handle != nil {
		return ErrAlreadyRunning
	}
	if c.periodUs == 0 {
		return ErrInvalidPeriod
	}

	h, err := c.timer.Schedule(c.period, c.tick)
	if err != nil {
		return fmt.Errorf("failed to start sampling timer: %w", err)
	}
	c.handle = h
	return nil
}

// Stop cancels the timer. A tick in progress finishes first.
func (c *Clock) Stop() {
	c.mu.Lock()
	h := c.handle
	c.handle = nil
	c.mu.Unlock()

	if h != nil {
		h.Cancel()
	}
}

// Running reports whether the timer is armed.
func (c *Clock) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.handle != nil
}

// Ticks returns the number of ticks processed.
func (c *Clock) Ticks() uint64 {
	return c.ticks.Load()
}

// Now returns the time of the last tick in microseconds.
func (c *Clock) Now() uint64 {
	return c.ticks.Load() * c.periodUs
}

// Period returns the tick period.
func (c *Clock) Period() time.Duration {
	return c.period
}

func (c *Clock) tick() {
	v := c.src.ReadRawSample()
	n := c.ticks.Load() + 1
	c.sink.Tick(n*c.periodUs, v)
	c.ticks.Store(n)
}
