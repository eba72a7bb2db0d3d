package capture

import "sync/atomic"

// Capture fills one Target at a time from the tick stream.
//
// Begin is called from the polling side, Trigger and Update from the
// tick goroutine. The active flag is the only state both sides share:
// Begin publishes the target before setting it and the tick side is done
// with the target once it clears it.
type Capture struct {
	active    atomic.Bool
	target    *Target
	countdown uint16
}

// Begin arms a capture into t using every divisor-th tick. It returns false
// and leaves t untouched if a capture is already running.
func (c *Capture) Begin(t *Target, divisor uint16) bool {
	if t == nil || c.active.Load() {
		return false
	}
	if divisor == 0 {
		divisor = 1
	}

	t.reset(divisor)
	c.target = t
	c.countdown = divisor
	c.active.Store(true)
	return true
}

// Active reports whether a capture is in progress.
func (c *Capture) Active() bool {
	return c.active.Load()
}

// Trigger marks the next write position as the trigger point, unless the
// current capture already has one.
func (c *Capture) Trigger() {
	if !c.active.Load() {
		return
	}
	if c.target.trigger == NotFound {
		c.target.trigger = c.target.next
	}
}

// Update records v on eligible ticks and completes the capture once enough
// samples follow the trigger. frequency is stored in the target on
// completion.
func (c *Capture) Update(v uint16, frequency uint32) {
	if !c.active.Load() {
		return
	}

	c.countdown--
	if c.countdown > 0 {
		return
	}
	t := c.target
	c.countdown = t.divisor

	if t.next < len(t.buffer) {
		t.buffer[t.next] = v
		t.next++
	}

	done := false
	switch {
	case t.trigger != NotFound:
		done = t.next-t.trigger > PostTriggerSamples
	default:
		// No edge: a DC or flat signal.
		done = t.next >= NumSamples
	}

	// A trigger found late can run out of buffer before it has enough
	// samples after it. Stop there rather than write past the end.
	if done || t.next >= len(t.buffer) {
		c.complete(frequency)
	}
}

func (c *Capture) complete(frequency uint32) {
	c.target.finish(frequency)
	c.active.Store(false)
}
