// Package capture implements the acquisition core: an adaptive zero
// crossing frequency detector and a trigger aligned, down-sampled capture
// driven one sample per clock tick.
package capture

// Engine owns the frequency detector and the trigger capture fed by one
// sampling clock.
//
// Tick must only be called from the clock's goroutine. The remaining
// methods are safe to call from the polling loop.
type Engine struct {
	detector *Detector
	capture  Capture
}

// New creates an engine with the given detector tuning.
func New(p Params) *Engine {
	return &Engine{
		detector: NewDetector(p),
	}
}

// Tick processes one raw sample taken at now (microseconds). The detector
// runs first so that a rising edge in this sample becomes the trigger of
// the running capture before the sample is recorded.
func (e *Engine) Tick(now uint64, v uint16) {
	if e.detector.Update(now, v) {
		e.capture.Trigger()
	}
	e.capture.Update(v, e.detector.Frequency())
}

// Begin starts a capture into t. It returns false if one is running.
func (e *Engine) Begin(t *Target, divisor uint16) bool {
	return e.capture.Begin(t, divisor)
}

// Capturing reports whether a capture is in progress.
func (e *Engine) Capturing() bool {
	return e.capture.Active()
}

// Frequency returns the last measured frequency.
func (e *Engine) Frequency() uint32 {
	return e.detector.Frequency()
}

// ConsumePeak returns the peak sample since the previous call.
func (e *Engine) ConsumePeak() uint16 {
	return e.detector.ConsumePeak()
}

// Baseline returns the detector's current crossing reference.
func (e *Engine) Baseline() uint16 {
	return e.detector.Baseline()
}
