package config

import (
	"fmt"
	"os"
	"time"

	"github.com/Desaware/bitscanner/pkg/capture"
	"gopkg.in/yaml.v3"
)

// Waveform names understood by the signal generator.
const (
	WaveformSquare   = "square"
	WaveformSine     = "sine"
	WaveformTriangle = "triangle"
	WaveformDC       = "dc"
)

// Config represents the application configuration.
type Config struct {
	Detector       DetectorConfig       `yaml:"detector"`
	VoltageDivider VoltageDividerConfig `yaml:"voltage_divider"`
	Signal         SignalConfig         `yaml:"signal"`
	Display        DisplayConfig        `yaml:"display"`
}

// DetectorConfig contains the zero crossing detector tuning in raw ADC counts.
// A zero field is treated as missing and gets the default, so a margin of
// zero cannot be configured. Values above capture.MaxRaw are clamped to it.
type DetectorConfig struct {
	BaselineMargin   uint16 `yaml:"baseline_margin"`
	HysteresisMargin uint16 `yaml:"hysteresis_margin"`
	DefaultBaseline  uint16 `yaml:"default_baseline"`
}

// VoltageDividerConfig contains the input voltage divider configuration.
type VoltageDividerConfig struct {
	R1   float64 `yaml:"r1"`
	R2   float64 `yaml:"r2"`
	VRef float64 `yaml:"vref"`
}

// SignalConfig describes the simulated input signal.
type SignalConfig struct {
	Waveform  string  `yaml:"waveform"`  // square, sine, triangle or dc
	Frequency float64 `yaml:"frequency"` // Hz
	Low       uint16  `yaml:"low"`       // Raw counts at the bottom of the wave
	High      uint16  `yaml:"high"`      // Raw counts at the top of the wave
	Noise     uint16  `yaml:"noise"`     // Peak noise in raw counts
	Seed      uint64  `yaml:"seed"`
}

// DisplayConfig contains front end timing.
type DisplayConfig struct {
	Mode         string        `yaml:"mode"`          // scope, voltage or frequency
	Refresh      time.Duration `yaml:"refresh"`       // Minimum time between screen updates
	Warmup       time.Duration `yaml:"warmup"`        // No captures until the first frequency reading is in
	PollInterval time.Duration `yaml:"poll_interval"` // Main loop period
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Detector: DetectorConfig{
			BaselineMargin:   capture.DefaultBaselineMargin,
			HysteresisMargin: capture.DefaultHysteresis,
			DefaultBaseline:  capture.DefaultBaseline,
		},
		VoltageDivider: VoltageDividerConfig{
			R1:   15,
			R2:   27,
			VRef: 3.3,
		},
		Signal: SignalConfig{
			Waveform:  WaveformSquare,
			Frequency: 440,
			Low:       10,
			High:      600,
			Noise:     3,
			Seed:      1,
		},
		Display: DisplayConfig{
			Mode:         "scope",
			Refresh:      500 * time.Millisecond,
			Warmup:       1500 * time.Millisecond,
			PollInterval: 10 * time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Params returns the detector tuning for the capture engine.
func (c DetectorConfig) Params() capture.Params {
	return capture.Params{
		BaselineMargin:   c.BaselineMargin,
		HysteresisMargin: c.HysteresisMargin,
		DefaultBaseline:  c.DefaultBaseline,
	}
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Detector.BaselineMargin == 0 {
		c.Detector.BaselineMargin = def.Detector.BaselineMargin
	}
	if c.Detector.HysteresisMargin == 0 {
		c.Detector.HysteresisMargin = def.Detector.HysteresisMargin
	}
	if c.Detector.DefaultBaseline == 0 {
		c.Detector.DefaultBaseline = def.Detector.DefaultBaseline
	}
	c.Detector.BaselineMargin = min(c.Detector.BaselineMargin, capture.MaxRaw)
	c.Detector.HysteresisMargin = min(c.Detector.HysteresisMargin, capture.MaxRaw)
	c.Detector.DefaultBaseline = min(c.Detector.DefaultBaseline, capture.MaxRaw)

	if c.VoltageDivider.R1 == 0 {
		c.VoltageDivider.R1 = def.VoltageDivider.R1
	}
	if c.VoltageDivider.R2 == 0 {
		c.VoltageDivider.R2 = def.VoltageDivider.R2
	}
	if c.VoltageDivider.VRef == 0 {
		c.VoltageDivider.VRef = def.VoltageDivider.VRef
	}

	if c.Signal.Waveform == "" {
		c.Signal.Waveform = def.Signal.Waveform
	}
	if c.Signal.Frequency < 0 {
		c.Signal.Frequency = def.Signal.Frequency
	}
	if c.Signal.Low > c.Signal.High {
		c.Signal.Low, c.Signal.High = c.Signal.High, c.Signal.Low
	}
	if c.Signal.High > capture.MaxRaw {
		c.Signal.High = capture.MaxRaw
	}

	if c.Display.Mode == "" {
		c.Display.Mode = def.Display.Mode
	}
	if c.Display.Refresh == 0 {
		c.Display.Refresh = def.Display.Refresh
	}
	if c.Display.Warmup == 0 {
		c.Display.Warmup = def.Display.Warmup
	}
	if c.Display.PollInterval == 0 {
		c.Display.PollInterval = def.Display.PollInterval
	}
}
