// Package scope rotates two capture targets between the engine and the
// display and decides the time base of each capture.
package scope

import (
	"sync"
	"time"

	"github.com/Desaware/bitscanner/pkg/capture"
)

// Capturer is the part of the acquisition engine the scheduler drives.
type Capturer interface {
	Begin(t *capture.Target, divisor uint16) bool
	Capturing() bool
	Frequency() uint32
}

// Scheduler owns two capture targets. At most one is being filled and at
// most one is displayable, never the same one.
type Scheduler struct {
	engine Capturer
	warmup uint64

	mu      sync.Mutex
	targets [2]capture.Target
	filling int
	display int
	seq     uint64
}

// NewScheduler creates a scheduler that starts capturing warmup after the
// clock started, once the detector has had time to measure a frequency.
func NewScheduler(engine Capturer, warmup time.Duration) *Scheduler {
	return &Scheduler{
		engine:  engine,
		warmup:  uint64(warmup / time.Microsecond),
		filling: capture.NotFound,
		display: capture.NotFound,
	}
}

// Poll rotates the targets when the filling one has completed and starts
// the next capture. now is the clock time in microseconds. It reports
// whether a new frame became displayable.
func (s *Scheduler) Poll(now uint64) bool {
	if now < s.warmup {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine.Capturing() {
		return false
	}

	rotated := false
	switch {
	case s.filling == capture.NotFound:
		s.filling = 0
	case s.targets[s.filling].Complete():
		s.display = s.filling
		s.filling = other(s.filling)
		s.seq++
		rotated = true
	}

	// An incomplete filling target here was never started; Begin resets it.
	s.engine.Begin(&s.targets[s.filling], capture.Divisor(s.engine.Frequency()))
	return rotated
}

// Latest returns a copy of the displayable capture.
func (s *Scheduler) Latest() (Frame, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.display == capture.NotFound {
		return Frame{}, false
	}
	t := &s.targets[s.display]
	if !t.Complete() {
		return Frame{}, false
	}
	return newFrame(s.seq, t), true
}

// Roles returns the filling and displayable target indices, NotFound for
// an unassigned role.
func (s *Scheduler) Roles() (filling, display int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filling, s.display
}

func other(i int) int {
	if i == 0 {
		return 1
	}
	return 0
}
