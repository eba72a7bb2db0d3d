package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Desaware/bitscanner/pkg/capture"
	"github.com/Desaware/bitscanner/pkg/clock"
	"github.com/Desaware/bitscanner/pkg/config"
	"github.com/Desaware/bitscanner/pkg/readout"
	"github.com/Desaware/bitscanner/pkg/scope"
	"github.com/Desaware/bitscanner/pkg/source"
)

// update is one refresh of the front panel.
type update struct {
	frame     scope.Frame
	hasFrame  bool // frame is new since the previous update
	volts     float32
	frequency uint32
}

// instrument wires the simulated input through the acquisition engine to
// the capture scheduler.
type instrument struct {
	src    *source.Synthetic
	engine *capture.Engine
	clock  *clock.Clock
	sched  *scope.Scheduler

	refresh uint64 // µs of tick time between updates

	mu      sync.Mutex
	divider config.VoltageDividerConfig

	lastUpdate uint64
	lastSeq    uint64
}

func newInstrument(cfg *config.Config, timer clock.Timer) *instrument {
	src := source.NewSynthetic(cfg.Signal, capture.TickPeriod)
	engine := capture.New(cfg.Detector.Params())
	return &instrument{
		src:     src,
		engine:  engine,
		clock:   clock.New(timer, src, engine, capture.TickPeriod),
		sched:   scope.NewScheduler(engine, cfg.Display.Warmup),
		refresh: uint64(cfg.Display.Refresh / time.Microsecond),
		divider: cfg.VoltageDivider,
	}
}

// Start starts sampling.
func (in *instrument) Start() error {
	if err := in.clock.Start(); err != nil {
		return fmt.Errorf("failed to start instrument: %w", err)
	}
	return nil
}

// Stop stops sampling.
func (in *instrument) Stop() {
	in.clock.Stop()
}

// SetSignal changes the simulated input.
func (in *instrument) SetSignal(cfg config.SignalConfig) {
	in.src.SetSignal(cfg)
}

// Signal returns the simulated input.
func (in *instrument) Signal() config.SignalConfig {
	return in.src.Signal()
}

// SetDivider changes the voltage divider used for the voltage readout.
func (in *instrument) SetDivider(d config.VoltageDividerConfig) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.divider = d
}

// step runs one pass of the main loop at clock time now. It returns an
// update once per refresh interval.
func (in *instrument) step(now uint64) (update, bool) {
	in.sched.Poll(now)

	if now-in.lastUpdate <= in.refresh {
		return update{}, false
	}
	in.lastUpdate = now

	in.mu.Lock()
	divider := in.divider
	in.mu.Unlock()

	u := update{
		volts:     readout.Voltage(in.engine.ConsumePeak(), divider),
		frequency: in.engine.Frequency(),
	}
	if f, ok := in.sched.Latest(); ok && f.Seq != in.lastSeq {
		in.lastSeq = f.Seq
		u.frame = f
		u.hasFrame = true
	}
	return u, true
}

// Run polls the instrument every interval until ctx is done, passing
// updates to fn.
func (in *instrument) Run(ctx context.Context, interval time.Duration, fn func(update)) {
	tk := time.NewTicker(interval)
	defer tk.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-tk.C:
			if u, ok := in.step(in.clock.Now()); ok {
				fn(u)
			}
		}
	}
}
