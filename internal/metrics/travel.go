package metrics

import (
	"github.com/san-kum/lcsim/internal/dynamo"
)

// MarkerTravel unwraps the lattice shift and reports the net signed distance
// the markers moved along the wire. Between two frames the markers must move
// less than half a loop for the unwrap to be exact.
type MarkerTravel struct {
	name       string
	loopLength float64
	prev       float64
	travel     float64
	samples    int
}

func NewMarkerTravel(loopLength float64) *MarkerTravel {
	return &MarkerTravel{name: "marker_travel", loopLength: loopLength}
}

func (m *MarkerTravel) Name() string { return m.name }

func (m *MarkerTravel) Observe(f dynamo.Frame) {
	if m.samples > 0 {
		d := f.Shift - m.prev
		half := m.loopLength / 2
		switch {
		case d > half:
			d -= m.loopLength
		case d < -half:
			d += m.loopLength
		}
		m.travel += d
	}
	m.prev = f.Shift
	m.samples++
}

func (m *MarkerTravel) Value() float64 { return m.travel }

func (m *MarkerTravel) Reset() {
	m.prev = 0
	m.travel = 0
	m.samples = 0
}
