//go:build rp2040

//go:generate tinygo flash -target=pico

package main

import (
	"machine"
	"runtime"
	"time"

	"github.com/Desaware/bitscanner/pkg/capture"
	"github.com/Desaware/bitscanner/pkg/clock"
	"github.com/Desaware/bitscanner/pkg/config"
	"github.com/Desaware/bitscanner/pkg/readout"
	"github.com/Desaware/bitscanner/pkg/scope"
	"github.com/Desaware/bitscanner/pkg/source"
)

// spinTimer runs the tick callback from a goroutine that watches the
// microsecond clock. Missed ticks are replayed so tick time stays exact.
type spinTimer struct{}

type stopHandle chan struct{}

func (h stopHandle) Cancel() { close(h) }

func (spinTimer) Schedule(period time.Duration, fn func()) (clock.Handle, error) {
	if period <= 0 {
		return nil, clock.ErrInvalidPeriod
	}
	stop := make(stopHandle)
	go func() {
		next := time.Now().Add(period)
		for {
			select {
			case <-stop:
				return
			default:
			}
			if time.Now().Before(next) {
				runtime.Gosched()
				continue
			}
			fn()
			next = next.Add(period)
		}
	}()
	return stop, nil
}

func main() {
	PIN_LED.Configure(machine.PinConfig{Mode: machine.PinOutput})

	machine.InitADC()
	adc := machine.ADC{Pin: PIN_SIGNAL}
	adc.Configure(machine.ADCConfig{})

	cfg := config.Default()
	engine := capture.New(cfg.Detector.Params())
	src := source.Func(func() uint16 {
		return adc.Get() >> ADC_SHIFT
	})
	clk := clock.New(spinTimer{}, src, engine, capture.TickPeriod)
	sched := scope.NewScheduler(engine, cfg.Display.Warmup)

	if err := clk.Start(); err != nil {
		for {
			println("failed to start sampling:", err.Error())
			time.Sleep(time.Second)
		}
	}

	report := uint64(REPORT_INTERVAL / time.Microsecond)
	var lastReport, lastSeq uint64
	for {
		now := clk.Now()
		sched.Poll(now)

		if now-lastReport > report {
			lastReport = now

			volts := readout.Voltage(engine.ConsumePeak(), cfg.VoltageDivider)
			print(readout.FormatVoltage(volts), ", ", readout.FormatFrequency(engine.Frequency()))
			if f, ok := sched.Latest(); ok && f.Seq != lastSeq {
				lastSeq = f.Seq
				print(", ", readout.FormatTimeBase(f.Divisor))
				if f.DC() {
					print(" DC")
				}
				PIN_LED.Set(!PIN_LED.Get())
			}
			print("\n")
		}

		time.Sleep(cfg.Display.PollInterval)
	}
}
