package capture

import "time"

const (
	// TickPeriod is the sampling interval of the acquisition clock.
	TickPeriod = 25 * time.Microsecond

	// NumSamples is the number of samples shown per capture.
	NumSamples = 100
	// BufferCapacity leaves room for a trigger found late in the capture.
	BufferCapacity = NumSamples * 2
	// PostTriggerSamples is how far past the trigger the write index must
	// get before a triggered capture completes.
	PostTriggerSamples = NumSamples + 1

	// MaxRaw is the largest value a 10-bit sample can take.
	MaxRaw = 1023
)

// Raw ADC offsets. 20 counts is roughly 0.1V at the input.
const (
	DefaultBaseline       = 20
	DefaultBaselineMargin = 20
	DefaultHysteresis     = 30
)

// Params holds the detector tuning, all in raw ADC counts.
type Params struct {
	BaselineMargin   uint16 // Added to the lowest recent minimum to form the baseline
	HysteresisMargin uint16 // A rising edge must exceed baseline by this much
	DefaultBaseline  uint16 // Baseline window contents at startup
}

// DefaultParams returns the tuning used by the instrument.
func DefaultParams() Params {
	return Params{
		BaselineMargin:   DefaultBaselineMargin,
		HysteresisMargin: DefaultHysteresis,
		DefaultBaseline:  DefaultBaseline,
	}
}

// Divisor picks the down-sampling divisor for a measured frequency.
// Boundary values belong to the slower time base.
func Divisor(frequency uint32) uint16 {
	switch {
	case frequency <= 10:
		return 400
	case frequency <= 100:
		return 40
	case frequency <= 1000:
		return 4
	default:
		return 1
	}
}

// TimeBase is the span covered by NumSamples samples taken at divisor.
func TimeBase(divisor uint16) time.Duration {
	if divisor == 0 {
		divisor = 1
	}
	return time.Duration(divisor) * NumSamples * TickPeriod
}
