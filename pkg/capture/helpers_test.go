package capture

const tickUs = uint64(TickPeriod / 1000)

// ticker drives a tick function with tick-derived timestamps, the way the
// sampling clock does: tick n happens at n*TickPeriod.
type ticker struct {
	fn   func(now uint64, v uint16)
	tick uint64
}

func newTicker(fn func(now uint64, v uint16)) *ticker {
	return &ticker{fn: fn}
}

// run feeds n ticks, asking gen for the sample of each tick number.
func (t *ticker) run(n uint64, gen func(tick uint64) uint16) {
	for i := uint64(0); i < n; i++ {
		t.tick++
		t.fn(t.tick*tickUs, gen(t.tick))
	}
}

// runTo feeds ticks until tick number last has been processed.
func (t *ticker) runTo(last uint64, gen func(tick uint64) uint16) {
	if last > t.tick {
		t.run(last-t.tick, gen)
	}
}

func constant(v uint16) func(uint64) uint16 {
	return func(uint64) uint16 { return v }
}

// square alternates low and high, holding each level for half ticks.
// The first half period is low.
func square(low, high uint16, half uint64) func(uint64) uint16 {
	return func(tick uint64) uint16 {
		if ((tick-1)/half)%2 == 0 {
			return low
		}
		return high
	}
}
