package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/Desaware/bitscanner/pkg/clock"
	"github.com/Desaware/bitscanner/pkg/config"
	"github.com/Desaware/bitscanner/pkg/display"
	"github.com/Desaware/bitscanner/pkg/scope"
)

func main() {
	var (
		configFlag    = flag.String("config", "config.yaml", "Configuration file path")
		waveformFlag  = flag.String("waveform", "", "Simulated waveform override (square, sine, triangle or dc)")
		frequencyFlag = flag.Float64("frequency", -1, "Simulated signal frequency in Hz (overrides config)")
	)
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if *waveformFlag != "" {
		cfg.Signal.Waveform = *waveformFlag
	}
	if *frequencyFlag >= 0 {
		cfg.Signal.Frequency = *frequencyFlag
	}

	mode, err := scope.ParseMode(cfg.Display.Mode)
	if err != nil {
		log.Printf("Invalid display mode, using %s: %v", mode, err)
	}

	// The host cannot wake every 25us; the ticker replays elapsed ticks
	// once per millisecond.
	inst := newInstrument(cfg, clock.NewTicker(time.Millisecond))

	// Create Fyne application
	application := app.NewWithID("com.desaware.bitscanner")

	window := application.NewWindow("Bitscanner")
	window.Resize(fyne.NewSize(800, 400))
	window.CenterOnScreen()

	state := &appState{
		cfg:        cfg,
		configPath: *configFlag,
		inst:       inst,
		window:     window,
	}
	state.scopeWidget = display.New(mode)

	content := container.NewBorder(
		createToolbar(state),
		nil,
		nil,
		nil,
		state.scopeWidget,
	)
	window.SetContent(content)

	if err := inst.Start(); err != nil {
		log.Fatalf("Failed to start: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		inst.Run(ctx, cfg.Display.PollInterval, func(u update) {
			fyne.Do(func() {
				state.apply(u)
			})
		})
	}()

	window.SetOnClosed(func() {
		cancel()
		<-done
		inst.Stop()
	})
	window.ShowAndRun()
}

// appState holds the application state.
type appState struct {
	cfg         *config.Config
	configPath  string
	inst        *instrument
	scopeWidget *display.ScopeWidget
	window      fyne.Window
	modeBtn     *widget.Button
}

// apply shows an instrument update. It runs on the Fyne thread.
func (state *appState) apply(u update) {
	if u.hasFrame {
		state.scopeWidget.UpdateFrame(u.frame)
	}
	state.scopeWidget.SetReadout(u.volts, u.frequency)
}

// createToolbar creates the toolbar with the mode toggle, the simulated
// signal controls and the settings button.
func createToolbar(state *appState) fyne.CanvasObject {
	modeBtn := widget.NewButtonWithIcon(state.scopeWidget.Mode().String(), theme.ViewRefreshIcon(), func() {
		handleModeToggle(state)
	})
	state.modeBtn = modeBtn

	waveformSelect := widget.NewSelect(
		[]string{config.WaveformSquare, config.WaveformSine, config.WaveformTriangle, config.WaveformDC},
		func(selected string) {
			sig := state.inst.Signal()
			sig.Waveform = selected
			state.inst.SetSignal(sig)
			state.cfg.Signal = sig
		},
	)
	waveformSelect.SetSelected(state.cfg.Signal.Waveform)

	frequencySelect := widget.NewSelect(frequencyPresets, func(selected string) {
		hz, err := parseFrequency(selected)
		if err != nil {
			dialog.ShowError(err, state.window)
			return
		}
		sig := state.inst.Signal()
		sig.Frequency = hz
		state.inst.SetSignal(sig)
		state.cfg.Signal = sig
	})
	frequencySelect.PlaceHolder = formatFrequencyPreset(state.cfg.Signal.Frequency)

	settingsBtn := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		showSettingsDialog(state)
	})

	return container.NewBorder(
		nil, // top
		nil, // bottom
		container.NewHBox(modeBtn, waveformSelect, frequencySelect), // left
		container.NewHBox(settingsBtn),                              // right
		nil, // center (spacer)
	)
}

// handleModeToggle cycles scope, voltage and frequency display.
func handleModeToggle(state *appState) {
	m := state.scopeWidget.Mode().Next()
	state.scopeWidget.SetMode(m)
	state.modeBtn.SetText(m.String())
	state.cfg.Display.Mode = m.String()
}

// saveConfig writes the configuration back to the file it was loaded from.
func saveConfig(state *appState) {
	if err := state.cfg.Save(state.configPath); err != nil {
		log.Printf("Failed to save config: %v", err)
		dialog.ShowError(fmt.Errorf("failed to save config: %w", err), state.window)
	}
}
