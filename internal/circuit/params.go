package circuit

import (
	"fmt"
	"math"

	"github.com/san-kum/lcsim/internal/dynamo"
	"github.com/san-kum/lcsim/internal/geom"
)

const (
	DefaultChargeCount = 20
	DefaultChargeValue = 50.0
	DefaultLoopSide    = 300.0
	DefaultLoopOffset  = 100.0
)

// Params is everything needed to build a Circuit.
type Params struct {
	Capacitance float64   // farads
	Inductance  float64   // henries
	PeakVoltage float64   // volts
	ChargeCount int       // drawn markers
	ChargeValue float64   // charge carried by one marker
	LoopSize    geom.Vec2 // wire rectangle width and height
	LoopOrigin  geom.Vec2 // top-left corner of the wire rectangle
}

// DefaultParams returns a slow, easy to watch circuit (omega = 1 rad/s).
func DefaultParams() Params {
	return Params{
		Capacitance: 1.0,
		Inductance:  1.0,
		PeakVoltage: 10.0,
		ChargeCount: DefaultChargeCount,
		ChargeValue: DefaultChargeValue,
		LoopSize:    geom.V(DefaultLoopSide, DefaultLoopSide),
		LoopOrigin:  geom.V(DefaultLoopOffset, DefaultLoopOffset),
	}
}

// ParamError reports the first parameter that failed validation.
type ParamError struct {
	Name  string
	Value float64
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("circuit: %s must be positive and finite, got %g", e.Name, e.Value)
}

func (e *ParamError) Unwrap() error {
	return dynamo.ErrInvalidParameter
}

// Validate rejects non-positive or non-finite values.
func (p Params) Validate() error {
	checks := []struct {
		name  string
		value float64
	}{
		{"capacitance", p.Capacitance},
		{"inductance", p.Inductance},
		{"peak voltage", p.PeakVoltage},
		{"charge count", float64(p.ChargeCount)},
		{"charge value", p.ChargeValue},
		{"loop width", p.LoopSize.X},
		{"loop height", p.LoopSize.Y},
	}
	for _, c := range checks {
		if !(c.value > 0) || math.IsInf(c.value, 0) {
			return &ParamError{Name: c.name, Value: c.value}
		}
	}
	if math.IsNaN(p.LoopOrigin.X) || math.IsNaN(p.LoopOrigin.Y) ||
		math.IsInf(p.LoopOrigin.X, 0) || math.IsInf(p.LoopOrigin.Y, 0) {
		return &ParamError{Name: "loop origin", Value: math.NaN()}
	}
	return nil
}
