package capture

import (
	"math"
	"sync/atomic"
)

const (
	// BaselineSlots is the number of 100ms minima the baseline is taken from.
	BaselineSlots = 10

	// Durations below are in microseconds of tick time.
	BaselinePeriod  uint64 = 100_000
	ShortWindow     uint64 = 100_000
	WindowExtension uint64 = 900_000

	// MinFastCycles is the cycle count a 100ms window needs to be reported
	// without extending it to a full second.
	MinFastCycles = 1000

	// troughCeiling caps the per-period minimum (about 2.5V).
	troughCeiling uint16 = 512
)

// Detector tracks the signal baseline and counts cycles crossing it.
//
// Update must be called from a single goroutine. Frequency, Peak,
// ConsumePeak and Baseline may be called from any goroutine.
type Detector struct {
	params Params

	// Baseline tracking.
	baselines [BaselineSlots]uint16
	trough    uint16
	periodEnd uint64
	baseline  atomic.Uint32

	// Zero crossing state. When true we wait for the signal to fall back
	// below the baseline, otherwise for it to rise above the hysteresis.
	searchingForReturn bool

	// Frequency window.
	cycles     uint32
	windowEnd  uint64
	fullSecond bool

	frequency atomic.Uint32
	peak      atomic.Uint32
}

// NewDetector creates a detector whose windows start at time zero.
func NewDetector(p Params) *Detector {
	d := &Detector{params: p}
	d.Reset(0)
	return d
}

// Reset restores the startup state with both windows starting at now.
func (d *Detector) Reset(now uint64) {
	for i := range d.baselines {
		d.baselines[i] = d.params.DefaultBaseline
	}
	d.baseline.Store(uint32(d.params.DefaultBaseline))
	d.trough = troughCeiling
	d.periodEnd = now + BaselinePeriod

	d.searchingForReturn = false

	d.cycles = 0
	d.windowEnd = now + ShortWindow
	d.fullSecond = false

	d.frequency.Store(0)
	d.peak.Store(0)
}

// Update feeds one raw sample taken at now (microseconds). It returns true
// when the sample completed a rising edge.
func (d *Detector) Update(now uint64, v uint16) (rising bool) {
	if uint32(v) > d.peak.Load() {
		d.peak.Store(uint32(v))
	}
	if v < d.trough {
		d.trough = v
	}

	// Thresholds are compared in 32 bits so large margins cannot wrap.
	baseline := d.baseline.Load()
	if d.searchingForReturn {
		if uint32(v) < baseline {
			d.searchingForReturn = false
		}
	} else if uint32(v) > baseline+uint32(d.params.HysteresisMargin) {
		d.cycles++
		d.searchingForReturn = true
		rising = true
	}

	if now > d.periodEnd {
		d.shiftBaseline()
		d.periodEnd = now + BaselinePeriod
	}

	if now > d.windowEnd {
		d.closeWindow(now)
	}

	return rising
}

// shiftBaseline drops the oldest minimum, appends the one for the period
// that just ended and recomputes the baseline. A falling signal lowers the
// baseline at once, a rising one takes a full window to lift it.
func (d *Detector) shiftBaseline() {
	copy(d.baselines[:], d.baselines[1:])
	d.baselines[BaselineSlots-1] = d.trough

	low := troughCeiling
	for _, b := range d.baselines {
		if b < low {
			low = b
		}
	}
	d.baseline.Store(uint32(low) + uint32(d.params.BaselineMargin))
	d.trough = troughCeiling
}

func (d *Detector) closeWindow(now uint64) {
	switch {
	case d.cycles == 0 && d.fullSecond:
		d.frequency.Store(0)
		d.fullSecond = false
		d.windowEnd = now + ShortWindow
	case d.cycles < MinFastCycles && !d.fullSecond:
		// Too few cycles for a good reading, keep counting for a second.
		d.windowEnd += WindowExtension
		d.fullSecond = true
	default:
		if d.fullSecond {
			d.frequency.Store(d.cycles)
		} else {
			d.frequency.Store(d.cycles * 10)
		}
		d.windowEnd = now + ShortWindow
		d.fullSecond = false
		d.cycles = 0
	}
}

// Frequency returns the value published by the last closed window: ten
// times the cycle count of a 100ms window or the cycle count of a full
// second window. At TickPeriod this is in whole hertz.
func (d *Detector) Frequency() uint32 {
	return d.frequency.Load()
}

// Peak returns the highest sample seen since the last ConsumePeak.
func (d *Detector) Peak() uint16 {
	return uint16(d.peak.Load())
}

// ConsumePeak returns the highest sample since the previous call and
// starts tracking again from zero.
func (d *Detector) ConsumePeak() uint16 {
	return uint16(d.peak.Swap(0))
}

// Baseline returns the current crossing reference in raw counts,
// saturated at math.MaxUint16.
func (d *Detector) Baseline() uint16 {
	return uint16(min(d.baseline.Load(), math.MaxUint16))
}
