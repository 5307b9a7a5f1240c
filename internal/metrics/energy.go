package metrics

import (
	"math"

	"github.com/san-kum/lcsim/internal/dynamo"
)

// Energy is the mean of inductor plus capacitor energy over observed frames.
type Energy struct {
	name    string
	sum     float64
	samples int
}

func NewEnergy() *Energy {
	return &Energy{name: "energy"}
}

func (e *Energy) Name() string { return e.name }

func (e *Energy) Observe(f dynamo.Frame) {
	e.sum += f.InductorEnergy + f.CapacitorEnergy
	e.samples++
}

func (e *Energy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.sum / float64(e.samples)
}

func (e *Energy) Reset() {
	e.sum = 0
	e.samples = 0
}

// EnergyDrift is the largest relative deviation of the energy sum from a
// reference. With a zero reference the first observed sum is used.
type EnergyDrift struct {
	name      string
	reference float64
	initial   float64
	maxDrift  float64
	samples   int
}

func NewEnergyDrift(reference float64) *EnergyDrift {
	return &EnergyDrift{
		name:      "energy_drift",
		reference: reference,
	}
}

func (e *EnergyDrift) Name() string { return e.name }

func (e *EnergyDrift) Observe(f dynamo.Frame) {
	energy := f.InductorEnergy + f.CapacitorEnergy

	if e.samples == 0 {
		e.initial = e.reference
		if e.initial == 0 {
			e.initial = energy
		}
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
