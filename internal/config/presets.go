package config

import "sort"

// Presets are complete configurations selected with --preset.
var Presets = map[string]*Config{
	"demo": DefaultConfig(),
	"radio": withCircuit(func(c *Config) {
		c.Circuit.Capacitance = 1e-6
		c.Circuit.Inductance = 1e-3
		c.Circuit.ChargeValue = 1e-3
		c.Run.Dt = 1e-6
		c.Run.Duration = 1e-3
	}),
	"slow": withCircuit(func(c *Config) {
		c.Circuit.Capacitance = 4
		c.Circuit.Inductance = 4
		c.Run.Duration = 60
	}),
	"fast": withCircuit(func(c *Config) {
		c.Circuit.Capacitance = 0.1
		c.Circuit.Inductance = 0.1
		c.Run.Dt = 0.005
		c.Run.TickMs = 10
	}),
	"dense": withCircuit(func(c *Config) {
		c.Circuit.Charges = 60
		c.Circuit.ChargeValue = 150
		c.Run.RecordMarkers = true
	}),
}

func withCircuit(mutate func(*Config)) *Config {
	c := DefaultConfig()
	mutate(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
