package display

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"

	"github.com/Desaware/bitscanner/pkg/scope"
)

func TestTraceSegments(t *testing.T) {
	// One unit per column and per row.
	p := plot{width: 99, height: scope.Rows - 1}

	segs := traceSegments(p, []uint16{0, 0, 1023, 1023})
	assert.Equal(t, []segment{
		{fyne.NewPos(0, 31), fyne.NewPos(0, 31)},
		{fyne.NewPos(0, 31), fyne.NewPos(1, 31)},
		{fyne.NewPos(2, 31), fyne.NewPos(2, 0)},
		{fyne.NewPos(2, 0), fyne.NewPos(3, 0)},
	}, segs)

	assert.Empty(t, traceSegments(p, nil))
}

func TestNewPlot(t *testing.T) {
	p := newPlot(fyne.NewSize(400, 200))
	assert.Equal(t, marginLeft, p.column(0))
	assert.Equal(t, 400-marginRight, p.column(99))
	assert.Equal(t, marginTop, p.row(0))
	assert.Equal(t, 200-marginBottom, p.row(scope.Rows-1))
}

func TestSnapshot_ReadoutText(t *testing.T) {
	sn := snapshot{voltage: 2.6, frequency: 1250}

	sn.mode = scope.ModeVoltage
	assert.Equal(t, "2.6 volts", sn.readoutText())

	sn.mode = scope.ModeFrequency
	assert.Equal(t, "1.25 kHz", sn.readoutText())

	sn.mode = scope.ModeScope
	assert.Empty(t, sn.readoutText())
}
