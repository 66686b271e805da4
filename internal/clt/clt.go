// Package clt draws the Poisson versus Gaussian comparison: for each
// target count it overlays the Poisson pmf with the normal curve of the
// same mean and standard deviation, and labels the Poisson peak with the
// time needed to observe that many events.
package clt

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/cyclopcam/logs"
	"github.com/mwiater/poissongauss/internal/dist"
	"github.com/mwiater/poissongauss/internal/figure"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Default inputs: 8 events per hour, target counts that are powers of 6.
const (
	DefaultRate = 8.0
	DefaultXMin = 1.0
	DefaultXMax = 100.0

	XLabel = "count value"
	YLabel = "probability"
)

// DefaultCounts returns the target counts 6, 36, 216 and 1296.
func DefaultCounts() []int {
	return []int{6, 36, 216, 1296}
}

var (
	// PoissonStyle is thick and red.
	PoissonStyle = draw.LineStyle{Color: color.RGBA{R: 255, A: 255}, Width: vg.Points(3)}
	// GaussStyle is thin and blue.
	GaussStyle = draw.LineStyle{Color: color.RGBA{B: 255, A: 255}, Width: vg.Points(1)}
)

// Params are the inputs of one run.
type Params struct {
	// Rate is the underlying number of events per hour.
	Rate float64
	// Counts are the target total counts; each one is used as a Poisson mean.
	Counts []int
	// XMin and XMax bound the visible, logarithmic x axis.
	XMin, XMax float64
}

// DefaultParams returns the stock demo inputs.
func DefaultParams() Params {
	return Params{
		Rate:   DefaultRate,
		Counts: DefaultCounts(),
		XMin:   DefaultXMin,
		XMax:   DefaultXMax,
	}
}

// Validate rejects inputs that cannot produce a plot.
func (p Params) Validate() error {
	if !(p.Rate > 0) || math.IsInf(p.Rate, 0) {
		return fmt.Errorf("rate must be a positive number, got %v", p.Rate)
	}
	if len(p.Counts) == 0 {
		return errors.New("at least one target count is required")
	}
	for _, n := range p.Counts {
		if n < 1 {
			return fmt.Errorf("target counts must be at least 1, got %d", n)
		}
	}
	if !(p.XMin > 0) || !(p.XMax > p.XMin) {
		return fmt.Errorf("x limits must satisfy 0 < min < max, got [%v, %v]", p.XMin, p.XMax)
	}
	return nil
}

// Series holds everything computed for one target count.
type Series struct {
	Count int
	Hours float64
	Mean  float64
	Sigma float64

	Counts  []float64
	Poisson []float64
	Gauss   []float64

	Mode  dist.Mode
	Label string

	PoissonMean, PoissonStd float64
	GaussMean, GaussStd     float64
}

// Compute evaluates both curves for a single target count.
func Compute(count int, rate float64) (Series, error) {
	mean := float64(count)
	s := Series{
		Count: count,
		Hours: mean / rate,
		Mean:  mean,
		Sigma: math.Sqrt(mean),
	}
	s.Label = Label(s.Hours)

	s.Counts = dist.Counts(2 * count)
	s.Poisson = dist.Poisson(s.Counts, s.Mean)

	mode, err := dist.FindMode(s.Counts, s.Poisson)
	if err != nil {
		return Series{}, fmt.Errorf("count %d: %w", count, err)
	}
	s.Mode = mode

	s.Gauss = dist.Gaussian(s.Counts, s.Mean, s.Sigma)

	s.PoissonMean, s.PoissonStd = dist.Moments(s.Counts, s.Poisson)
	s.GaussMean, s.GaussStd = dist.Moments(s.Counts, s.Gauss)
	return s, nil
}

// ComputeAll validates p and evaluates every target count in order.
func ComputeAll(p Params) ([]Series, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	all := make([]Series, 0, len(p.Counts))
	for _, count := range p.Counts {
		s, err := Compute(count, p.Rate)
		if err != nil {
			return nil, err
		}
		all = append(all, s)
	}
	return all, nil
}

// Run computes every series in p and draws it onto fig: a Poisson curve,
// a label at its mode and the matching Gaussian curve. It then sets the
// axis labels, the log x scale and the x limits. Nothing is drawn when the
// inputs are invalid.
func Run(log logs.Log, fig *figure.Figure, p Params) ([]Series, error) {
	all, err := ComputeAll(p)
	if err != nil {
		return nil, err
	}

	for _, s := range all {
		if err := fig.AddLine(fmt.Sprintf("Poisson %d", s.Count), s.Counts, s.Poisson, PoissonStyle); err != nil {
			return nil, err
		}
		fig.Annotate(s.Mode.X, s.Mode.Y, s.Label)
		if err := fig.AddLine(fmt.Sprintf("Gauss %d", s.Count), s.Counts, s.Gauss, GaussStyle); err != nil {
			return nil, err
		}

		log.Infof("count %d: %v hr, mode at %v (p=%.4g), sigma %.4g", s.Count, FormatHours(s.Hours), s.Mode.X, s.Mode.Y, s.Sigma)
		if s.Mode.Tied() {
			log.Debugf("count %d: mode ties at indices %v", s.Count, s.Mode.Indices)
		}
	}

	fig.SetXLabel(XLabel)
	fig.SetYLabel(YLabel)
	fig.SetXLog()
	if err := fig.SetXLim(p.XMin, p.XMax); err != nil {
		return nil, err
	}
	return all, nil
}

// Label is the annotation placed at a Poisson peak.
func Label(hours float64) string {
	return "count for " + FormatHours(hours) + " hr"
}

// FormatHours prints the shortest representation of h that round-trips,
// always keeping a fractional part: 0.75, 4.5, 27.0, 162.0.
func FormatHours(h float64) string {
	s := strconv.FormatFloat(h, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
