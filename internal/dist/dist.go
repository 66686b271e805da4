// Package dist evaluates the two probability models compared by the demo:
// the discrete Poisson pmf and its continuous Gaussian approximation, plus
// the helpers needed to locate and describe a curve's peak.
package dist

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Tolerances used to decide whether a probability ties with the maximum.
// A value p ties when |p - max| <= AbsTol + RelTol*|max|.
const (
	RelTol = 1e-5
	AbsTol = 1e-8
)

// Gaussian returns the normal probability density with the given mean and
// standard deviation evaluated at every x. sigma is expected to be positive;
// a zero sigma yields NaN or Inf entries.
func Gaussian(xs []float64, mean, sigma float64) []float64 {
	n := distuv.Normal{Mu: mean, Sigma: sigma}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = n.Prob(x)
	}
	return out
}

// Poisson returns the Poisson probability mass with rate mean evaluated at
// every x. Non-integer or negative x have zero mass.
func Poisson(xs []float64, mean float64) []float64 {
	out := make([]float64, len(xs))
	if mean == 0 {
		// Degenerate distribution: all mass at zero.
		for i, x := range xs {
			if x == 0 {
				out[i] = 1
			}
		}
		return out
	}
	p := distuv.Poisson{Lambda: mean}
	for i, x := range xs {
		out[i] = p.Prob(x)
	}
	return out
}

// Counts returns the integer count values 0, 1, ..., n-1 as float64.
func Counts(n int) []float64 {
	switch {
	case n <= 0:
		return []float64{}
	case n == 1:
		return []float64{0}
	}
	return floats.Span(make([]float64, n), 0, float64(n-1))
}

// Mode marks where a curve peaks.
type Mode struct {
	// X is the mean of the x values whose probability ties with the maximum.
	X float64
	// Y is the probability at the first tied index.
	Y float64
	// Indices lists every tied index in ascending order.
	Indices []int
}

// Tied reports whether more than one value shares the maximum.
func (m Mode) Tied() bool { return len(m.Indices) > 1 }

// FindMode locates the maximum of ps and every index whose probability is
// close to it (see RelTol and AbsTol).
func FindMode(xs, ps []float64) (Mode, error) {
	if len(ps) == 0 {
		return Mode{}, errors.New("cannot find the mode of an empty curve")
	}
	if len(xs) != len(ps) {
		return Mode{}, fmt.Errorf("length mismatch: %d x values, %d probabilities", len(xs), len(ps))
	}

	peak := floats.Max(ps)
	var (
		idx  []int
		tied []float64
	)
	for i, p := range ps {
		if isClose(p, peak) {
			idx = append(idx, i)
			tied = append(tied, xs[i])
		}
	}
	if len(idx) == 0 {
		// Only reachable when the curve holds NaNs.
		return Mode{}, fmt.Errorf("no finite maximum in curve (max=%v)", peak)
	}

	return Mode{
		X:       stat.Mean(tied, nil),
		Y:       ps[idx[0]],
		Indices: idx,
	}, nil
}

func isClose(p, peak float64) bool {
	return math.Abs(p-peak) <= AbsTol+RelTol*math.Abs(peak)
}

// Moments returns the probability-weighted mean and standard deviation of
// a discrete curve. The weights need not be normalised.
func Moments(xs, ps []float64) (mean, std float64) {
	if len(xs) == 0 || len(xs) != len(ps) || floats.Sum(ps) == 0 {
		return 0, 0
	}
	return stat.PopMeanStdDev(xs, ps)
}

// Sum returns the total probability held by a curve.
func Sum(ps []float64) float64 {
	return floats.Sum(ps)
}
