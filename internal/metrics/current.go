package metrics

import (
	"math"

	"github.com/san-kum/lcsim/internal/dynamo"
)

// PeakCurrent is the largest observed |I|.
type PeakCurrent struct {
	name string
	max  float64
}

func NewPeakCurrent() *PeakCurrent {
	return &PeakCurrent{name: "peak_current"}
}

func (p *PeakCurrent) Name() string { return p.name }

func (p *PeakCurrent) Observe(f dynamo.Frame) {
	p.max = math.Max(p.max, math.Abs(f.Current))
}

func (p *PeakCurrent) Value() float64 { return p.max }
func (p *PeakCurrent) Reset()         { p.max = 0 }

// RMSCurrent is the root mean square of the observed current.
type RMSCurrent struct {
	name    string
	sumSq   float64
	samples int
}

func NewRMSCurrent() *RMSCurrent {
	return &RMSCurrent{name: "rms_current"}
}

func (r *RMSCurrent) Name() string {
	return r.name
}

func (r *RMSCurrent) Observe(f dynamo.Frame) {
	r.sumSq += f.Current * f.Current
	r.samples++
}

func (r *RMSCurrent) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *RMSCurrent) Reset() {
	r.sumSq = 0
	r.samples = 0
}
