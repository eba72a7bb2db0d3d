package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Desaware/bitscanner/pkg/capture"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.NotNil(t, cfg)
	assert.Equal(t, uint16(20), cfg.Detector.BaselineMargin)
	assert.Equal(t, uint16(30), cfg.Detector.HysteresisMargin)
	assert.Equal(t, uint16(20), cfg.Detector.DefaultBaseline)
	assert.Equal(t, float64(15), cfg.VoltageDivider.R1)
	assert.Equal(t, float64(27), cfg.VoltageDivider.R2)
	assert.Equal(t, float64(3.3), cfg.VoltageDivider.VRef)
	assert.Equal(t, WaveformSquare, cfg.Signal.Waveform)
	assert.Equal(t, "scope", cfg.Display.Mode)
	assert.Equal(t, 500*time.Millisecond, cfg.Display.Refresh)
	assert.Equal(t, 1500*time.Millisecond, cfg.Display.Warmup)
	assert.Equal(t, 10*time.Millisecond, cfg.Display.PollInterval)
}

func TestDetectorConfig_Params(t *testing.T) {
	assert.Equal(t, capture.DefaultParams(), Default().Detector.Params())
}

func TestLoad_FileNotExists(t *testing.T) {
	cfg, err := Load("nonexistent.yaml")
	require.NoError(t, err)
	assert.NotNil(t, cfg)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_ValidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
detector:
  baseline_margin: 10
  hysteresis_margin: 40
  default_baseline: 25

voltage_divider:
  r1: 10
  r2: 10
  vref: 3.0

signal:
  waveform: sine
  frequency: 50
  low: 20
  high: 800
  noise: 0
  seed: 9

display:
  mode: frequency
  refresh: 250ms
  warmup: 2s
  poll_interval: 5ms
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	assert.Equal(t, capture.Params{BaselineMargin: 10, HysteresisMargin: 40, DefaultBaseline: 25}, cfg.Detector.Params())
	assert.Equal(t, float64(10), cfg.VoltageDivider.R1)
	assert.Equal(t, float64(10), cfg.VoltageDivider.R2)
	assert.Equal(t, float64(3.0), cfg.VoltageDivider.VRef)
	assert.Equal(t, WaveformSine, cfg.Signal.Waveform)
	assert.Equal(t, float64(50), cfg.Signal.Frequency)
	assert.Equal(t, uint16(20), cfg.Signal.Low)
	assert.Equal(t, uint16(800), cfg.Signal.High)
	assert.Equal(t, uint16(0), cfg.Signal.Noise)
	assert.Equal(t, uint64(9), cfg.Signal.Seed)
	assert.Equal(t, "frequency", cfg.Display.Mode)
	assert.Equal(t, 250*time.Millisecond, cfg.Display.Refresh)
	assert.Equal(t, 2*time.Second, cfg.Display.Warmup)
	assert.Equal(t, 5*time.Millisecond, cfg.Display.PollInterval)
}

func TestLoad_InvalidYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.WriteString("invalid: yaml: content: [")
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_PartialYAML(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
signal:
  frequency: 5
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	// Should use defaults for missing fields
	assert.Equal(t, float64(5), cfg.Signal.Frequency)
	assert.Equal(t, WaveformSquare, cfg.Signal.Waveform)       // default
	assert.Equal(t, uint16(30), cfg.Detector.HysteresisMargin) // default
	assert.Equal(t, float64(27), cfg.VoltageDivider.R2)        // default
}

func TestLoad_FixesSignalRange(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
signal:
  low: 2000
  high: 100
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, uint16(100), cfg.Signal.Low)
	assert.Equal(t, uint16(capture.MaxRaw), cfg.Signal.High)
}

func TestLoad_ClampsDetectorValues(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "test_config_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	yamlContent := `
detector:
  baseline_margin: 5000
  hysteresis_margin: 65530
  default_baseline: 40000
`

	_, err = tmpfile.WriteString(yamlContent)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())

	cfg, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, uint16(capture.MaxRaw), cfg.Detector.BaselineMargin)
	assert.Equal(t, uint16(capture.MaxRaw), cfg.Detector.HysteresisMargin)
	assert.Equal(t, uint16(capture.MaxRaw), cfg.Detector.DefaultBaseline)
}

func TestSave(t *testing.T) {
	cfg := Default()
	cfg.Signal.Waveform = WaveformTriangle
	cfg.Display.Refresh = time.Second

	tmpfile, err := os.CreateTemp("", "test_save_*.yaml")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	err = cfg.Save(tmpfile.Name())
	require.NoError(t, err)

	// Load it back and verify
	loaded, err := Load(tmpfile.Name())
	require.NoError(t, err)
	assert.Equal(t, WaveformTriangle, loaded.Signal.Waveform)
	assert.Equal(t, time.Second, loaded.Display.Refresh)
}
