// Package display draws captures and readouts in a Fyne widget.
package display

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/Desaware/bitscanner/pkg/readout"
	"github.com/Desaware/bitscanner/pkg/scope"
)

// ScopeWidget shows the latest capture as a trace, or a voltage or
// frequency readout, depending on its mode.
type ScopeWidget struct {
	widget.BaseWidget

	// Data (protected by mu)
	mu        sync.RWMutex
	mode      scope.Mode
	frame     scope.Frame
	hasFrame  bool
	voltage   float32
	frequency uint32
}

// New creates a new ScopeWidget instance.
func New(mode scope.Mode) *ScopeWidget {
	s := &ScopeWidget{mode: mode}
	s.ExtendBaseWidget(s)
	// Trigger initial refresh to display empty scope
	s.Refresh()
	return s
}

// UpdateFrame shows a new capture. Call it on the Fyne thread, e.g.
// through fyne.Do.
func (s *ScopeWidget) UpdateFrame(f scope.Frame) {
	s.mu.Lock()
	s.frame = f
	s.hasFrame = true
	s.mu.Unlock()

	s.Refresh()
}

// SetReadout updates the voltage and frequency readouts.
func (s *ScopeWidget) SetReadout(volts float32, hz uint32) {
	s.mu.Lock()
	s.voltage = volts
	s.frequency = hz
	s.mu.Unlock()

	s.Refresh()
}

// SetMode switches what the widget shows.
func (s *ScopeWidget) SetMode(m scope.Mode) {
	s.mu.Lock()
	s.mode = m
	s.mu.Unlock()

	s.Refresh()
}

// Mode returns the current display mode.
func (s *ScopeWidget) Mode() scope.Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// snapshot is what the renderer draws from.
type snapshot struct {
	mode      scope.Mode
	frame     scope.Frame
	hasFrame  bool
	voltage   float32
	frequency uint32
}

func (s *ScopeWidget) snapshot() snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshot{
		mode:      s.mode,
		frame:     s.frame,
		hasFrame:  s.hasFrame,
		voltage:   s.voltage,
		frequency: s.frequency,
	}
}

// readoutText is the large text shown in the voltage and frequency modes.
func (sn snapshot) readoutText() string {
	switch sn.mode {
	case scope.ModeVoltage:
		return readout.FormatVoltage(sn.voltage)
	case scope.ModeFrequency:
		return readout.FormatFrequency(sn.frequency)
	}
	return ""
}

// CreateRenderer creates the widget renderer.
func (s *ScopeWidget) CreateRenderer() fyne.WidgetRenderer {
	grid := canvas.NewRectangle(color.RGBA{R: 20, G: 20, B: 20, A: 255}) // Dark background
	return &scopeRenderer{
		scope:   s,
		grid:    grid,
		objects: []fyne.CanvasObject{grid},
	}
}
