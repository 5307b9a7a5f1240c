// Package circuit is the closed-form model of an ideal LC oscillator.
//
// The circuit starts with the capacitor fully charged and no current:
//
//	U(t) = V0 cos(wt)      I(t) = I0 sin(wt)      q(t) = -Q0 cos(wt)
//	Wc(t) = E cos^2(wt)    Wl(t) = E sin^2(wt)
//
// with w = 1/sqrt(LC), I0 = V0 sqrt(C/L), Q0 = I0/w and E = C V0^2 / 2.
// All of these are pure functions of t. The only mutable state is the
// lattice of drawn charge markers, advanced by Step.
package circuit

import (
	"fmt"
	"math"

	"github.com/san-kum/lcsim/internal/dynamo"
	"github.com/san-kum/lcsim/internal/geom"
	"github.com/san-kum/lcsim/internal/lattice"
)

type Circuit struct {
	capacitance float64
	inductance  float64
	peakVoltage float64

	omega       float64
	peakCurrent float64
	peakCharge  float64
	energy      float64

	params  Params
	path    geom.ClosedPath
	charges *lattice.Lattice
}

// New validates p and builds the circuit, its wire loop and its markers.
func New(p Params) (*Circuit, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	path, err := geom.Rect(p.LoopOrigin, p.LoopSize)
	if err != nil {
		return nil, fmt.Errorf("circuit: wire loop: %w", err)
	}

	charges, err := lattice.New(p.ChargeCount, p.ChargeValue, path.Len())
	if err != nil {
		return nil, fmt.Errorf("circuit: charges: %w", err)
	}

	sqrtL, sqrtC := math.Sqrt(p.Inductance), math.Sqrt(p.Capacitance)
	omega := 1 / (sqrtL * sqrtC)
	peakCurrent := p.PeakVoltage * sqrtC / sqrtL
	peakCharge := peakCurrent / omega
	scaled := p.PeakVoltage * sqrtC
	energy := scaled * scaled / 2

	derived := []struct {
		name  string
		value float64
	}{
		{"angular frequency", omega},
		{"peak current", peakCurrent},
		{"peak charge", peakCharge},
		{"energy", energy},
	}
	for _, d := range derived {
		if !(d.value > 0) || math.IsInf(d.value, 0) {
			return nil, &ParamError{Name: d.name, Value: d.value}
		}
	}

	return &Circuit{
		capacitance: p.Capacitance,
		inductance:  p.Inductance,
		peakVoltage: p.PeakVoltage,
		omega:       omega,
		peakCurrent: peakCurrent,
		peakCharge:  peakCharge,
		energy:      energy,
		params:      p,
		path:        path,
		charges:     charges,
	}, nil
}

func (c *Circuit) Capacitance() float64      { return c.capacitance }
func (c *Circuit) Inductance() float64       { return c.inductance }
func (c *Circuit) PeakVoltage() float64      { return c.peakVoltage }
func (c *Circuit) PeakCurrent() float64      { return c.peakCurrent }
func (c *Circuit) PeakCharge() float64       { return c.peakCharge }
func (c *Circuit) TotalEnergy() float64      { return c.energy }
func (c *Circuit) AngularFrequency() float64 { return c.omega }
func (c *Circuit) Params() Params            { return c.params }

// Period is 2*pi/omega in seconds.
func (c *Circuit) Period() float64 {
	return 2 * math.Pi / c.omega
}

// Frequency is the resonance in hertz.
func (c *Circuit) Frequency() float64 {
	return c.omega / (2 * math.Pi)
}

func (c *Circuit) Voltage(t float64) float64 {
	return c.peakVoltage * math.Cos(c.omega*t)
}

func (c *Circuit) Current(t float64) float64 {
	return c.peakCurrent * math.Sin(c.omega*t)
}

func (c *Circuit) Charge(t float64) float64 {
	return -c.peakCharge * math.Cos(c.omega*t)
}

func (c *Circuit) InductorEnergy(t float64) float64 {
	s := math.Sin(c.omega * t)
	return c.energy * s * s
}

func (c *Circuit) CapacitorEnergy(t float64) float64 {
	k := math.Cos(c.omega * t)
	return c.energy * k * k
}

// Step advances the markers by the current at t over dt.
func (c *Circuit) Step(t, dt float64) {
	c.charges.Advance(c.Current(t), dt)
}

// Reset returns the markers to their initial offsets.
func (c *Circuit) Reset() {
	c.charges.Reset()
}

// Path returns the wire loop.
func (c *Circuit) Path() geom.ClosedPath { return c.path }

// Shift is how far the markers have travelled along the loop, modulo its length.
func (c *Circuit) Shift() float64 { return c.charges.Shift() }

// Spacing is the loop distance between neighbouring markers.
func (c *Circuit) Spacing() float64 { return c.charges.Spacing() }

// Lattice returns a copy of the marker lattice. Advancing the copy does not
// move the circuit's markers.
func (c *Circuit) Lattice() lattice.Lattice { return *c.charges }

// MarkerPositions returns the drawing position of every marker.
func (c *Circuit) MarkerPositions() []geom.Vec2 {
	dist := c.charges.Positions()
	out := make([]geom.Vec2, len(dist))
	for i, d := range dist {
		out[i] = c.path.Locate(d)
	}
	return out
}

// Frame collects every query at t into one snapshot.
func (c *Circuit) Frame(step int, t float64) dynamo.Frame {
	return dynamo.Frame{
		Step:            step,
		Time:            t,
		Voltage:         c.Voltage(t),
		Current:         c.Current(t),
		Charge:          c.Charge(t),
		InductorEnergy:  c.InductorEnergy(t),
		CapacitorEnergy: c.CapacitorEnergy(t),
		Shift:           c.charges.Shift(),
		Markers:         c.MarkerPositions(),
	}
}
