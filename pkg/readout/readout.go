// Package readout turns raw engine values into the numbers and labels the
// instrument shows.
package readout

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/dustin/go-humanize"

	"github.com/Desaware/bitscanner/pkg/capture"
	"github.com/Desaware/bitscanner/pkg/config"
)

const (
	// zeroOffset is the reading at 0V input.
	zeroOffset = 10
	// fullScale is the number of counts between 0V and the top of range.
	fullScale = capture.MaxRaw - 2*zeroOffset
)

// TopOfRange is the input voltage that drives the ADC to full scale.
func TopOfRange(d config.VoltageDividerConfig) float32 {
	if d.R2 == 0 {
		return float32(d.VRef)
	}
	return float32(d.VRef * (d.R1 + d.R2) / d.R2)
}

// Voltage converts a raw reading to volts at the divider input, clamped to
// the measurable range and rounded to 0.1V.
func Voltage(adc uint16, d config.VoltageDividerConfig) float32 {
	top := TopOfRange(d)
	v := (float32(adc) - zeroOffset) * top / fullScale
	v = math32.Max(0, math32.Min(v, top))
	return math32.Round(v*10) / 10
}

// FormatVoltage renders a voltage readout.
func FormatVoltage(v float32) string {
	return fmt.Sprintf("%.1f volts", v)
}

// FormatFrequency renders whole hertz below 1kHz and SI units above.
func FormatFrequency(hz uint32) string {
	if hz < 1000 {
		return fmt.Sprintf("%d Hz", hz)
	}
	v, suffix := humanize.ComputeSI(float64(hz))
	return fmt.Sprintf("%s %sHz", humanize.FtoaWithDigits(v, 2), suffix)
}

// FormatTimeBase labels the span of one capture, e.g. "2.5ms" or "1s".
func FormatTimeBase(divisor uint16) string {
	return capture.TimeBase(divisor).String()
}
