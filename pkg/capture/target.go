package capture

import "sync/atomic"

// NotFound is the trigger index of a capture without a rising edge.
const NotFound = -1

// Target is one capture buffer with its trigger metadata.
//
// While a capture fills the target only the tick goroutine touches it.
// Readers must observe Complete before reading anything else.
type Target struct {
	divisor   uint16
	buffer    [BufferCapacity]uint16
	next      int
	trigger   int
	frequency uint32
	complete  atomic.Bool
}

func (t *Target) reset(divisor uint16) {
	t.complete.Store(false)
	t.divisor = divisor
	t.next = 0
	t.trigger = NotFound
	t.frequency = 0
}

func (t *Target) finish(frequency uint32) {
	t.frequency = frequency
	t.complete.Store(true)
}

// Complete reports whether a capture has finished filling the target.
func (t *Target) Complete() bool {
	return t.complete.Load()
}

// Divisor is the number of ticks per recorded sample.
func (t *Target) Divisor() uint16 {
	return t.divisor
}

// Samples returns the recorded samples. The slice aliases the buffer.
func (t *Target) Samples() []uint16 {
	return t.buffer[:t.next]
}

// Len is the number of recorded samples.
func (t *Target) Len() int {
	return t.next
}

// Trigger is the index of the first rising edge, or NotFound.
func (t *Target) Trigger() int {
	return t.trigger
}

// Triggered reports whether a rising edge was found.
func (t *Target) Triggered() bool {
	return t.trigger != NotFound
}

// EndFrequency is the detector frequency when the capture completed.
func (t *Target) EndFrequency() uint32 {
	return t.frequency
}
