package display

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/Desaware/bitscanner/pkg/capture"
	"github.com/Desaware/bitscanner/pkg/readout"
	"github.com/Desaware/bitscanner/pkg/scope"
)

var (
	gridColor  = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	labelColor = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	traceColor = color.RGBA{R: 255, G: 165, B: 0, A: 255} // Orange
	textColor  = color.RGBA{R: 200, G: 200, B: 200, A: 255}
)

// Margins around the plot. The right one holds the time base labels.
const (
	marginLeft   = float32(20)
	marginRight  = float32(90)
	marginTop    = float32(20)
	marginBottom = float32(20)
)

// plot is the area the trace is drawn in.
type plot struct {
	x, y, width, height float32
}

func newPlot(size fyne.Size) plot {
	return plot{
		x:      marginLeft,
		y:      marginTop,
		width:  size.Width - marginLeft - marginRight,
		height: size.Height - marginTop - marginBottom,
	}
}

func (p plot) column(i int) float32 {
	return p.x + float32(i)*p.width/float32(capture.NumSamples-1)
}

func (p plot) row(r int) float32 {
	return p.y + float32(r)*p.height/float32(scope.Rows-1)
}

// segment is one stroke of the trace in plot coordinates.
type segment struct {
	from, to fyne.Position
}

// traceSegments turns the displayed samples into strokes. Each column
// joins the previous sample's row to its own, so steep edges become
// vertical lines.
func traceSegments(p plot, window []uint16) []segment {
	segs := make([]segment, 0, len(window))
	prev := -1
	for i, v := range window {
		r := scope.Row(v)
		x := p.column(i)
		switch {
		case prev == -1 || prev == r:
			// A flat step: carry the line on from the previous column.
			from := x
			if i > 0 {
				from = p.column(i - 1)
			}
			segs = append(segs, segment{fyne.NewPos(from, p.row(r)), fyne.NewPos(x, p.row(r))})
		default:
			segs = append(segs, segment{fyne.NewPos(x, p.row(prev)), fyne.NewPos(x, p.row(r))})
		}
		prev = r
	}
	return segs
}

// scopeRenderer renders the scope widget.
type scopeRenderer struct {
	scope *ScopeWidget

	// Background
	grid *canvas.Rectangle

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// MinSize returns the minimum size of the widget.
func (r *scopeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 200)
}

// Layout arranges the widget components.
func (r *scopeRenderer) Layout(size fyne.Size) {
	r.grid.Resize(size)

	if r.lastSize != size {
		r.lastSize = size
		r.scope.BaseWidget.Refresh()
	}
}

// Refresh rebuilds the drawing from the widget state.
func (r *scopeRenderer) Refresh() {
	sn := r.scope.snapshot()

	size := r.scope.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	r.objects = []fyne.CanvasObject{r.grid}

	if sn.mode != scope.ModeScope {
		r.drawReadout(size, sn.readoutText())
		return
	}

	p := newPlot(size)
	r.drawGrid(p)
	if !sn.hasFrame {
		return
	}

	if sn.frame.DC() {
		r.drawDC(p, sn.frame.Level())
	} else {
		for _, s := range traceSegments(p, sn.frame.Window()) {
			r.addLine(s.from, s.to, traceColor, 1.5)
		}
	}
	r.drawLabels(p, sn.frame)
}

// drawGrid draws the oscilloscope-style grid.
func (r *scopeRenderer) drawGrid(p plot) {
	const numHLines = 8
	for i := range numHLines + 1 {
		y := p.y + float32(i)*p.height/numHLines
		r.addLine(fyne.NewPos(p.x, y), fyne.NewPos(p.x+p.width, y), gridColor, 1)
	}

	const numVLines = 10
	for i := range numVLines + 1 {
		x := p.x + float32(i)*p.width/numVLines
		r.addLine(fyne.NewPos(x, p.y), fyne.NewPos(x, p.y+p.height), gridColor, 1)
	}
}

func (r *scopeRenderer) drawDC(p plot, level uint16) {
	y := p.row(scope.Row(level))
	r.addLine(fyne.NewPos(p.x, y), fyne.NewPos(p.x+p.width, y), traceColor, 1.5)
	r.addText("DC", fyne.NewPos(p.x+p.width+10, p.y+p.height/2-8), 14)
}

// drawLabels writes the time base and the capture frequency to the right
// of the plot.
func (r *scopeRenderer) drawLabels(p plot, f scope.Frame) {
	x := p.x + p.width + 10
	if !f.DC() {
		r.addText(readout.FormatTimeBase(f.Divisor), fyne.NewPos(x, p.y+p.height/2-20), 14)
	}
	r.addText(readout.FormatFrequency(f.Frequency), fyne.NewPos(x, p.y+p.height/2+4), 11)
}

func (r *scopeRenderer) drawReadout(size fyne.Size, s string) {
	text := canvas.NewText(s, textColor)
	text.TextSize = 36
	text.TextStyle = fyne.TextStyle{Bold: true}
	text.Alignment = fyne.TextAlignCenter
	text.Resize(fyne.NewSize(size.Width, 48))
	text.Move(fyne.NewPos(0, (size.Height-48)/2))
	r.objects = append(r.objects, text)
}

func (r *scopeRenderer) addLine(from, to fyne.Position, c color.Color, width float32) {
	line := canvas.NewLine(c)
	line.Position1 = from
	line.Position2 = to
	line.StrokeWidth = width
	r.objects = append(r.objects, line)
}

func (r *scopeRenderer) addText(s string, pos fyne.Position, size float32) {
	text := canvas.NewText(s, labelColor)
	text.TextSize = size
	text.Alignment = fyne.TextAlignLeading
	text.Move(pos)
	r.objects = append(r.objects, text)
}

// Objects returns all canvas objects for rendering.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *scopeRenderer) Destroy() {
	// Cleanup handled by Fyne
}
