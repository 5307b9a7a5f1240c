package metrics

import (
	"math"

	"github.com/san-kum/lcsim/internal/dynamo"
)

// Stability is the fraction of frames whose voltage and current stay within
// their analytic peaks, widened by a relative tolerance.
type Stability struct {
	name        string
	peakVoltage float64
	peakCurrent float64
	tolerance   float64
	violations  int
	samples     int
}

func NewStability(peakVoltage, peakCurrent, tolerance float64) *Stability {
	return &Stability{
		name:        "stability",
		peakVoltage: peakVoltage,
		peakCurrent: peakCurrent,
		tolerance:   tolerance,
	}
}

func (s *Stability) Name() string {
	return s.name
}

func (s *Stability) Observe(f dynamo.Frame) {
	s.samples++
	if math.Abs(f.Voltage) > s.peakVoltage*(1+s.tolerance) ||
		math.Abs(f.Current) > s.peakCurrent*(1+s.tolerance) {
		s.violations++
	}
}

func (s *Stability) Value() float64 {
	if s.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(s.violations)/float64(s.samples)
}

func (s *Stability) Reset() {
	s.violations = 0
	s.samples = 0
}
