// Package figure provides an accumulating plot canvas. Curves and text
// annotations are recorded as they are added and only turned into a
// gonum/plot figure when the caller renders or saves it.
package figure

import (
	"errors"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Curve is one recorded line.
type Curve struct {
	Name  string
	X     []float64
	Y     []float64
	Style draw.LineStyle
}

// Annotation is a text label anchored at a data coordinate.
type Annotation struct {
	X, Y float64
	Text string
}

// Figure accumulates curves, annotations and axis settings.
// The zero value is not usable; call New.
type Figure struct {
	curves      []Curve
	annotations []Annotation

	xLabel, yLabel string
	xLog           bool

	xLimSet    bool
	xMin, xMax float64
}

// New returns an empty figure with linear axes.
func New() *Figure {
	return &Figure{}
}

// AddLine records a line through the points (xs[i], ys[i]).
// The slices are copied.
func (f *Figure) AddLine(name string, xs, ys []float64, style draw.LineStyle) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("curve %q: %d x values but %d y values", name, len(xs), len(ys))
	}
	f.curves = append(f.curves, Curve{
		Name:  name,
		X:     append([]float64(nil), xs...),
		Y:     append([]float64(nil), ys...),
		Style: style,
	})
	return nil
}

// Annotate places text at (x, y) in data coordinates.
func (f *Figure) Annotate(x, y float64, text string) {
	f.annotations = append(f.annotations, Annotation{X: x, Y: y, Text: text})
}

func (f *Figure) SetXLabel(s string) { f.xLabel = s }
func (f *Figure) SetYLabel(s string) { f.yLabel = s }

// SetXLog switches the x axis to a base-10 logarithmic scale.
func (f *Figure) SetXLog() { f.xLog = true }

// SetXLim fixes the visible x range.
func (f *Figure) SetXLim(min, max float64) error {
	if min >= max {
		return fmt.Errorf("invalid x limits [%v, %v]", min, max)
	}
	if f.xLog && min <= 0 {
		return fmt.Errorf("x limits [%v, %v] must be positive on a log axis", min, max)
	}
	f.xLimSet = true
	f.xMin, f.xMax = min, max
	return nil
}

// Curves returns the recorded curves in drawing order.
func (f *Figure) Curves() []Curve { return f.curves }

// Annotations returns the recorded annotations in drawing order.
func (f *Figure) Annotations() []Annotation { return f.annotations }

func (f *Figure) XLabel() string { return f.xLabel }
func (f *Figure) YLabel() string { return f.yLabel }
func (f *Figure) XLog() bool     { return f.xLog }

// XLim returns the fixed x range and whether one was set.
func (f *Figure) XLim() (min, max float64, ok bool) {
	return f.xMin, f.xMax, f.xLimSet
}

// Plot builds a gonum plot from everything recorded so far.
//
// On a log x axis, points with x <= 0 cannot be placed and are skipped.
// Annotations outside a fixed x range are not drawn.
func (f *Figure) Plot() (*plot.Plot, error) {
	if f.xLog && f.xLimSet && f.xMin <= 0 {
		return nil, errors.New("log x axis requires positive limits")
	}

	p := plot.New()
	p.X.Label.Text = f.xLabel
	p.Y.Label.Text = f.yLabel
	if f.xLog {
		p.X.Scale = plot.LogScale{}
		p.X.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	for _, c := range f.curves {
		pts := f.points(c.X, c.Y)
		if len(pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("curve %q: %w", c.Name, err)
		}
		line.LineStyle = c.Style
		p.Add(line)
	}

	var labels plotter.XYLabels
	for _, a := range f.annotations {
		if f.xLimSet && (a.X < f.xMin || a.X > f.xMax) {
			continue
		}
		if f.xLog && a.X <= 0 {
			continue
		}
		labels.XYs = append(labels.XYs, plotter.XY{X: a.X, Y: a.Y})
		labels.Labels = append(labels.Labels, a.Text)
	}
	if len(labels.Labels) > 0 {
		l, err := plotter.NewLabels(labels)
		if err != nil {
			return nil, fmt.Errorf("annotations: %w", err)
		}
		p.Add(l)
	}

	// Limits go last: Add widens the axes to fit the data.
	if f.xLimSet {
		p.X.Min, p.X.Max = f.xMin, f.xMax
	}
	return p, nil
}

func (f *Figure) points(xs, ys []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(xs))
	for i := range xs {
		if f.xLog && xs[i] <= 0 {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return pts
}

// Save renders the figure to path. The image format follows the file
// extension (png, svg, pdf, jpg, eps, tif).
func (f *Figure) Save(width, height vg.Length, path string) error {
	p, err := f.Plot()
	if err != nil {
		return err
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save figure %s: %w", path, err)
	}
	return nil
}
