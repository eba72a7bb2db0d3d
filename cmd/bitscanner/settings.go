package main

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/Desaware/bitscanner/pkg/capture"
)

// frequencyPresets cover every time base tier.
var frequencyPresets = []string{"5 Hz", "50 Hz", "440 Hz", "2500 Hz", "15000 Hz"}

func parseFrequency(s string) (float64, error) {
	hz, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "Hz")), 64)
	if err != nil || hz < 0 {
		return 0, fmt.Errorf("invalid frequency %q", s)
	}
	return hz, nil
}

func formatFrequencyPreset(hz float64) string {
	return strconv.FormatFloat(hz, 'f', -1, 64) + " Hz"
}

// showSettingsDialog displays a settings dialog with tabs for all configuration options.
func showSettingsDialog(state *appState) {
	tabs := container.NewAppTabs(
		createSignalTab(state),
		createVoltageDividerTab(state),
		createDetectorTab(state),
	)

	content := container.NewBorder(nil, nil, nil, nil, tabs)
	content.Resize(fyne.NewSize(500, 350))

	d := dialog.NewCustom("Settings", "Close", content, state.window)
	d.Resize(fyne.NewSize(500, 350))
	d.Show()
}

// parseCounts parses a raw ADC value in [0, 1023].
func parseCounts(s string) (uint16, bool) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil || v > capture.MaxRaw {
		return 0, false
	}
	return uint16(v), true
}

// createSignalTab creates the simulated signal tab.
func createSignalTab(state *appState) *container.TabItem {
	sig := state.inst.Signal()

	lowEntry := widget.NewEntry()
	lowEntry.SetText(strconv.Itoa(int(sig.Low)))

	highEntry := widget.NewEntry()
	highEntry.SetText(strconv.Itoa(int(sig.High)))

	noiseEntry := widget.NewEntry()
	noiseEntry.SetText(strconv.Itoa(int(sig.Noise)))

	frequencyEntry := widget.NewEntry()
	frequencyEntry.SetText(strconv.FormatFloat(sig.Frequency, 'f', -1, 64))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Low (counts)", Widget: lowEntry},
			{Text: "High (counts)", Widget: highEntry},
			{Text: "Noise (counts)", Widget: noiseEntry},
			{Text: "Frequency (Hz)", Widget: frequencyEntry},
		},
		OnSubmit: func() {
			sig := state.inst.Signal()
			if v, ok := parseCounts(lowEntry.Text); ok {
				sig.Low = v
			}
			if v, ok := parseCounts(highEntry.Text); ok {
				sig.High = v
			}
			if v, ok := parseCounts(noiseEntry.Text); ok {
				sig.Noise = v
			}
			if hz, err := parseFrequency(frequencyEntry.Text); err == nil {
				sig.Frequency = hz
			}
			if sig.Low > sig.High {
				sig.Low, sig.High = sig.High, sig.Low
			}
			state.inst.SetSignal(sig)
			state.cfg.Signal = sig
			saveConfig(state)
		},
	}

	return container.NewTabItem("Signal", form)
}

// createVoltageDividerTab creates the Voltage Divider configuration tab.
func createVoltageDividerTab(state *appState) *container.TabItem {
	r1Entry := widget.NewEntry()
	r1Entry.SetText(fmt.Sprintf("%.0f", state.cfg.VoltageDivider.R1))

	r2Entry := widget.NewEntry()
	r2Entry.SetText(fmt.Sprintf("%.0f", state.cfg.VoltageDivider.R2))

	vrefEntry := widget.NewEntry()
	vrefEntry.SetText(fmt.Sprintf("%.2f", state.cfg.VoltageDivider.VRef))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "R1 (kΩ)", Widget: r1Entry},
			{Text: "R2 (kΩ)", Widget: r2Entry},
			{Text: "VRef (V)", Widget: vrefEntry},
		},
		OnSubmit: func() {
			if r1, err := strconv.ParseFloat(r1Entry.Text, 64); err == nil && r1 >= 0 {
				state.cfg.VoltageDivider.R1 = r1
			}
			if r2, err := strconv.ParseFloat(r2Entry.Text, 64); err == nil && r2 > 0 {
				state.cfg.VoltageDivider.R2 = r2
			}
			if vref, err := strconv.ParseFloat(vrefEntry.Text, 64); err == nil && vref > 0 {
				state.cfg.VoltageDivider.VRef = vref
			}
			state.inst.SetDivider(state.cfg.VoltageDivider)
			saveConfig(state)
		},
	}

	return container.NewTabItem("Voltage Divider", form)
}

// createDetectorTab creates the detector tuning tab. The engine picks the
// tuning up on the next start.
func createDetectorTab(state *appState) *container.TabItem {
	baselineEntry := widget.NewEntry()
	baselineEntry.SetText(strconv.Itoa(int(state.cfg.Detector.BaselineMargin)))

	hysteresisEntry := widget.NewEntry()
	hysteresisEntry.SetText(strconv.Itoa(int(state.cfg.Detector.HysteresisMargin)))

	defaultEntry := widget.NewEntry()
	defaultEntry.SetText(strconv.Itoa(int(state.cfg.Detector.DefaultBaseline)))

	form := &widget.Form{
		Items: []*widget.FormItem{
			{Text: "Baseline margin (counts)", Widget: baselineEntry},
			{Text: "Hysteresis margin (counts)", Widget: hysteresisEntry},
			{Text: "Startup baseline (counts)", Widget: defaultEntry},
			{Text: "", Widget: widget.NewLabel("Applied after restart")},
		},
		OnSubmit: func() {
			if v, ok := parseCounts(baselineEntry.Text); ok {
				state.cfg.Detector.BaselineMargin = v
			}
			if v, ok := parseCounts(hysteresisEntry.Text); ok {
				state.cfg.Detector.HysteresisMargin = v
			}
			if v, ok := parseCounts(defaultEntry.Text); ok {
				state.cfg.Detector.DefaultBaseline = v
			}
			saveConfig(state)
		},
	}

	return container.NewTabItem("Detector", form)
}
