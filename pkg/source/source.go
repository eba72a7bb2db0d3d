// Package source provides raw ADC sample sources for the sampling clock.
package source

import "github.com/Desaware/bitscanner/pkg/capture"

// Source returns one 10-bit ADC reading. It is called once per tick and
// must not block.
type Source interface {
	ReadRawSample() uint16
}

// Func adapts a function to a Source.
type Func func() uint16

// ReadRawSample calls f.
func (f Func) ReadRawSample() uint16 {
	return f()
}

// Constant is a source that always returns the same reading.
type Constant uint16

// ReadRawSample returns c.
func (c Constant) ReadRawSample() uint16 {
	return clamp(int(c))
}

// Sequence replays a fixed list of readings in a loop.
type Sequence struct {
	values []uint16
	pos    int
}

// NewSequence creates a sequence source. An empty sequence reads as zero.
func NewSequence(values ...uint16) *Sequence {
	return &Sequence{values: values}
}

// ReadRawSample returns the next reading.
func (s *Sequence) ReadRawSample() uint16 {
	if len(s.values) == 0 {
		return 0
	}
	v := s.values[s.pos]
	s.pos++
	if s.pos == len(s.values) {
		s.pos = 0
	}
	return clamp(int(v))
}

func clamp(v int) uint16 {
	if v < 0 {
		return 0
	}
	if v > capture.MaxRaw {
		return capture.MaxRaw
	}
	return uint16(v)
}
