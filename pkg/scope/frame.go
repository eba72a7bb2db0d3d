package scope

import (
	"time"

	"github.com/Desaware/bitscanner/pkg/capture"
)

// Rows is the vertical resolution the trace is quantised to. Samples that
// fall on one row are a flat line.
const Rows = 32

// Frame is a completed capture copied out of its target.
type Frame struct {
	Seq       uint64   // Increments with every new displayable capture
	Samples   []uint16 // Recorded samples, at most capture.BufferCapacity
	Trigger   int      // Index of the first rising edge or capture.NotFound
	Divisor   uint16   // Ticks per sample
	Frequency uint32   // Detector frequency when the capture completed
}

func newFrame(seq uint64, t *capture.Target) Frame {
	samples := make([]uint16, t.Len())
	copy(samples, t.Samples())
	return Frame{
		Seq:       seq,
		Samples:   samples,
		Trigger:   t.Trigger(),
		Divisor:   t.Divisor(),
		Frequency: t.EndFrequency(),
	}
}

// Row maps a sample to a trace row, 0 at the top.
func Row(v uint16) int {
	r := int(v+16) >> 5
	if r > Rows-1 {
		r = Rows - 1
	}
	return Rows - 1 - r
}

// View returns the index of the first displayed sample. A frame without a
// trigger starts at 0 unless all of its first capture.NumSamples samples
// land within one row of each other, in which case it is DC and View
// returns capture.NotFound.
func (f Frame) View() int {
	if f.Trigger != capture.NotFound {
		return f.Trigger
	}

	n := min(len(f.Samples), capture.NumSamples)
	if n == 0 {
		return capture.NotFound
	}
	lo, hi := f.Samples[0], f.Samples[0]
	for _, v := range f.Samples[:n] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	// Rows grow downwards.
	if Row(lo)-Row(hi) > 1 {
		return 0
	}
	return capture.NotFound
}

// DC reports whether the frame shows a flat level instead of a trace.
func (f Frame) DC() bool {
	return f.View() == capture.NotFound
}

// Window returns the capture.NumSamples samples to draw, or nil for DC.
func (f Frame) Window() []uint16 {
	start := f.View()
	if start == capture.NotFound || start >= len(f.Samples) {
		return nil
	}
	end := min(start+capture.NumSamples, len(f.Samples))
	return f.Samples[start:end]
}

// Level is the DC level of the frame, the first sample.
func (f Frame) Level() uint16 {
	if len(f.Samples) == 0 {
		return 0
	}
	return f.Samples[0]
}

// Peak is the largest sample from the trigger (or the start) to the end
// of the capture. Frames shorter than capture.NumSamples have no peak.
func (f Frame) Peak() uint16 {
	if len(f.Samples) < capture.NumSamples {
		return 0
	}
	start := max(f.Trigger, 0)
	var peak uint16
	for _, v := range f.Samples[start:] {
		peak = max(peak, v)
	}
	return peak
}

// TimeBase is the span covered by the displayed window.
func (f Frame) TimeBase() time.Duration {
	return capture.TimeBase(f.Divisor)
}
