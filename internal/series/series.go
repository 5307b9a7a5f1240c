// Package series samples time functions over a sliding window for plotting.
package series

import (
	"fmt"
	"math"

	"github.com/san-kum/lcsim/internal/dynamo"
)

// Sample is one (t, value) pair.
type Sample struct {
	T, V float64
}

// Hint carries presentation details a renderer may use. The sampler ignores it.
type Hint struct {
	Color string
	Min   float64
	Max   float64
}

// Series samples Signal over the Window seconds that end at a given time.
// Density is the number of intervals per window.
type Series struct {
	Signal  dynamo.Signal
	Density int
	Window  float64
	Label   string
	Hint    Hint
}

// New validates the sampling configuration.
func New(s dynamo.Signal, density int, window float64) (Series, error) {
	if s == nil {
		return Series{}, fmt.Errorf("%w: series needs a signal", dynamo.ErrInvalidParameter)
	}
	if density <= 0 {
		return Series{}, fmt.Errorf("%w: sample density must be positive, got %d", dynamo.ErrInvalidParameter, density)
	}
	if math.IsNaN(window) || math.IsInf(window, 0) {
		return Series{}, fmt.Errorf("%w: window must be finite, got %g", dynamo.ErrInvalidParameter, window)
	}
	return Series{Signal: s, Density: density, Window: window}, nil
}

// WithLabel returns a copy of s carrying a label and render hint.
func (s Series) WithLabel(label string, hint Hint) Series {
	s.Label = label
	s.Hint = hint
	return s
}

// Step is the time between neighbouring samples.
func (s Series) Step() float64 {
	if s.Density <= 0 {
		return 0
	}
	return s.Window / float64(s.Density)
}

// Sample evaluates the signal on [max(0, tEnd-Window), tEnd]. Samples sit on
// a grid anchored at tEnd-Window so that consecutive windows scroll
// smoothly; the last sample is exactly tEnd.
func (s Series) Sample(tEnd float64) []Sample {
	if s.Signal == nil || s.Density <= 0 || !(s.Window > 0) || tEnd < 0 || math.IsNaN(tEnd) {
		return nil
	}

	start := tEnd - s.Window
	step := s.Step()

	first := 0
	if start < 0 {
		first = int(math.Ceil(-start / step))
	}

	out := make([]Sample, 0, s.Density-first+2)
	if start < 0 {
		out = append(out, Sample{T: 0, V: s.Signal.At(0)})
	}
	for k := first; k < s.Density; k++ {
		t := start + float64(k)*step
		if t <= 0 && len(out) > 0 {
			continue
		}
		out = append(out, Sample{T: t, V: s.Signal.At(t)})
	}
	if n := len(out); n == 0 || out[n-1].T < tEnd {
		out = append(out, Sample{T: tEnd, V: s.Signal.At(tEnd)})
	}
	return out
}

// Values drops the time axis.
func Values(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.V
	}
	return out
}

// Bounds returns the smallest and largest value. Both are zero for no samples.
func Bounds(samples []Sample) (lo, hi float64) {
	if len(samples) == 0 {
		return 0, 0
	}
	lo, hi = samples[0].V, samples[0].V
	for _, s := range samples[1:] {
		lo = math.Min(lo, s.V)
		hi = math.Max(hi, s.V)
	}
	return lo, hi
}

// QuarterTicks returns every multiple of period/4 inside [tStart, tEnd], the
// positions of the time axis marks.
func QuarterTicks(tStart, tEnd, period float64) []float64 {
	if !(period > 0) || tEnd < tStart {
		return nil
	}
	q := period / 4
	var ticks []float64
	for n := math.Ceil(tStart / q); n <= math.Floor(tEnd/q); n++ {
		ticks = append(ticks, n*q)
	}
	return ticks
}
