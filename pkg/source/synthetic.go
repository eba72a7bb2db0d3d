package source

import (
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/chewxy/math32"

	"github.com/Desaware/bitscanner/pkg/config"
)

// Synthetic simulates the analog front end for development and testing.
// The waveform is computed from the tick count, so a run is reproducible
// for a given configuration and seed.
//
// ReadRawSample must be called from a single goroutine. SetSignal may be
// called from any goroutine.
type Synthetic struct {
	period time.Duration
	signal atomic.Pointer[config.SignalConfig]

	tick uint64
	rng  *rand.Rand
}

// NewSynthetic creates a signal generator sampled every period.
func NewSynthetic(cfg config.SignalConfig, period time.Duration) *Synthetic {
	s := &Synthetic{
		period: period,
		rng:    rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15)),
	}
	s.SetSignal(cfg)
	return s
}

// SetSignal replaces the simulated signal. The phase carries on.
func (s *Synthetic) SetSignal(cfg config.SignalConfig) {
	s.signal.Store(&cfg)
}

// Signal returns the current signal configuration.
func (s *Synthetic) Signal() config.SignalConfig {
	return *s.signal.Load()
}

// ReadRawSample returns the next simulated reading.
func (s *Synthetic) ReadRawSample() uint16 {
	cfg := s.signal.Load()
	elapsed := s.tick * uint64(s.period)
	s.tick++

	v := level(cfg, phase(elapsed, cfg.Frequency))
	if cfg.Noise > 0 {
		n := int(cfg.Noise)
		v += s.rng.IntN(2*n+1) - n
	}
	return clamp(v)
}

// phase returns the position within the current cycle in [0, 1) after
// elapsed nanoseconds.
func phase(elapsed uint64, frequency float64) float32 {
	if frequency <= 0 {
		return 0
	}
	_, frac := math.Modf(float64(elapsed) * frequency / float64(time.Second))
	return float32(frac)
}

// level maps a cycle position to raw counts between Low and High.
func level(cfg *config.SignalConfig, p float32) int {
	low := float32(cfg.Low)
	span := float32(cfg.High) - low

	var shape float32
	switch cfg.Waveform {
	case config.WaveformSine:
		shape = (1 - math32.Cos(2*math32.Pi*p)) / 2
	case config.WaveformTriangle:
		shape = 1 - math32.Abs(2*p-1)
	case config.WaveformDC:
		shape = 0
	default:
		// Square, starting low.
		if p >= 0.5 {
			shape = 1
		}
	}

	return int(math32.Round(low + span*shape))
}
