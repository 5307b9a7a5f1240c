package circuit

import (
	"fmt"
	"sort"

	"github.com/san-kum/lcsim/internal/dynamo"
)

// Names of the time functions exposed for plotting.
const (
	SignalVoltage         = "voltage"
	SignalCurrent         = "current"
	SignalCharge          = "charge"
	SignalInductorEnergy  = "inductor_energy"
	SignalCapacitorEnergy = "capacitor_energy"
)

// Signal returns the named time function of c.
func (c *Circuit) Signal(name string) (dynamo.Signal, error) {
	var f dynamo.SignalFunc
	switch name {
	case SignalVoltage:
		f = c.Voltage
	case SignalCurrent:
		f = c.Current
	case SignalCharge:
		f = c.Charge
	case SignalInductorEnergy:
		f = c.InductorEnergy
	case SignalCapacitorEnergy:
		f = c.CapacitorEnergy
	default:
		return nil, fmt.Errorf("circuit: unknown signal %q (available: %v)", name, SignalNames())
	}
	return f, nil
}

// Peak is the largest magnitude the named signal reaches.
func (c *Circuit) Peak(name string) float64 {
	switch name {
	case SignalVoltage:
		return c.peakVoltage
	case SignalCurrent:
		return c.peakCurrent
	case SignalCharge:
		return c.peakCharge
	case SignalInductorEnergy, SignalCapacitorEnergy:
		return c.energy
	}
	return 0
}

// Unit is the SI unit symbol of the named signal.
func Unit(name string) string {
	switch name {
	case SignalVoltage:
		return "V"
	case SignalCurrent:
		return "A"
	case SignalCharge:
		return "C"
	case SignalInductorEnergy, SignalCapacitorEnergy:
		return "J"
	}
	return ""
}

func SignalNames() []string {
	names := []string{SignalVoltage, SignalCurrent, SignalCharge, SignalInductorEnergy, SignalCapacitorEnergy}
	sort.Strings(names)
	return names
}
