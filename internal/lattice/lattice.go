// Package lattice models a fixed set of charge markers evenly spaced along a
// closed loop and drifting together with the current.
package lattice

import (
	"fmt"
	"math"

	"github.com/san-kum/lcsim/internal/dynamo"
	"github.com/san-kum/lcsim/internal/geom"
)

// Lattice holds count markers, spacing apart, offset by a common shift.
// Shift is the only field that changes after construction.
type Lattice struct {
	count       int
	chargeValue float64
	loopLength  float64
	spacing     float64
	shift       float64
}

// New creates a lattice with zero shift.
func New(count int, chargeValue, loopLength float64) (*Lattice, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: charge count must be positive, got %d", dynamo.ErrInvalidParameter, count)
	}
	if !positive(chargeValue) {
		return nil, fmt.Errorf("%w: charge value must be positive and finite, got %g", dynamo.ErrInvalidParameter, chargeValue)
	}
	if !positive(loopLength) {
		return nil, fmt.Errorf("%w: loop length must be positive and finite, got %g", dynamo.ErrInvalidParameter, loopLength)
	}
	return &Lattice{
		count:       count,
		chargeValue: chargeValue,
		loopLength:  loopLength,
		spacing:     loopLength / float64(count),
	}, nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func (l *Lattice) Count() int           { return l.count }
func (l *Lattice) ChargeValue() float64 { return l.chargeValue }
func (l *Lattice) LoopLength() float64  { return l.loopLength }
func (l *Lattice) Spacing() float64     { return l.spacing }
func (l *Lattice) Shift() float64       { return l.shift }

// Speed is the marker speed along the loop for the given current.
func (l *Lattice) Speed(current float64) float64 {
	return current * l.spacing / l.chargeValue
}

// Advance moves every marker by Speed(current)*dt. Negative current moves
// them backwards; the shift always stays in [0, LoopLength()).
func (l *Lattice) Advance(current, dt float64) {
	l.shift = geom.Mod(l.shift+l.Speed(current)*dt, l.loopLength)
}

// Reset puts the markers back at their starting offsets.
func (l *Lattice) Reset() {
	l.shift = 0
}

// Positions returns the loop distance of every marker, in marker order.
func (l *Lattice) Positions() []float64 {
	out := make([]float64, l.count)
	for i := range out {
		out[i] = geom.Mod(float64(i)*l.spacing+l.shift, l.loopLength)
	}
	return out
}
