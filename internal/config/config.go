package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/lcsim/internal/circuit"
	"github.com/san-kum/lcsim/internal/dynamo"
	"github.com/san-kum/lcsim/internal/geom"
	"github.com/san-kum/lcsim/internal/viz"
)

var ErrUnknownTheme = errors.New("config: unknown theme")

const (
	DefaultCapacitance = 1.0
	DefaultInductance  = 1.0
	DefaultVoltage     = 10.0
	DefaultDt          = 0.02
	DefaultDuration    = 10.0
	DefaultTickMs      = 20
	DefaultDensity     = 200
	DefaultPeriods     = 2.0
	DefaultPlotWidth   = 60
	DefaultPlotHeight  = 10
)

type Config struct {
	Circuit CircuitConfig `yaml:"circuit"`
	Run     RunConfig     `yaml:"run"`
	Plot    PlotConfig    `yaml:"plot"`
	Log     LogConfig     `yaml:"log"`
}

type CircuitConfig struct {
	Capacitance float64 `yaml:"capacitance"`
	Inductance  float64 `yaml:"inductance"`
	Voltage     float64 `yaml:"voltage"`
	Charges     int     `yaml:"charges"`
	ChargeValue float64 `yaml:"charge_value"`
	LoopX       float64 `yaml:"loop_x"`
	LoopY       float64 `yaml:"loop_y"`
	LoopWidth   float64 `yaml:"loop_width"`
	LoopHeight  float64 `yaml:"loop_height"`
}

type RunConfig struct {
	Dt             float64 `yaml:"dt"`
	Duration       float64 `yaml:"duration"`
	TickMs         int     `yaml:"tick_ms"`
	ValidateFrames bool    `yaml:"validate_frames"`
	RecordMarkers  bool    `yaml:"record_markers"`
}

type PlotConfig struct {
	Density int     `yaml:"density"`
	Periods float64 `yaml:"periods"`
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Theme   string  `yaml:"theme"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func DefaultConfig() *Config {
	return &Config{
		Circuit: CircuitConfig{
			Capacitance: DefaultCapacitance,
			Inductance:  DefaultInductance,
			Voltage:     DefaultVoltage,
			Charges:     circuit.DefaultChargeCount,
			ChargeValue: circuit.DefaultChargeValue,
			LoopX:       circuit.DefaultLoopOffset,
			LoopY:       circuit.DefaultLoopOffset,
			LoopWidth:   circuit.DefaultLoopSide,
			LoopHeight:  circuit.DefaultLoopSide,
		},
		Run: RunConfig{
			Dt:             DefaultDt,
			Duration:       DefaultDuration,
			TickMs:         DefaultTickMs,
			ValidateFrames: true,
		},
		Plot: PlotConfig{
			Density: DefaultDensity,
			Periods: DefaultPeriods,
			Width:   DefaultPlotWidth,
			Height:  DefaultPlotHeight,
			Theme:   "classic",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads a YAML file over the defaults, so a file only needs the keys it
// changes.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Params() circuit.Params {
	return circuit.Params{
		Capacitance: c.Circuit.Capacitance,
		Inductance:  c.Circuit.Inductance,
		PeakVoltage: c.Circuit.Voltage,
		ChargeCount: c.Circuit.Charges,
		ChargeValue: c.Circuit.ChargeValue,
		LoopOrigin:  geom.V(c.Circuit.LoopX, c.Circuit.LoopY),
		LoopSize:    geom.V(c.Circuit.LoopWidth, c.Circuit.LoopHeight),
	}
}

func (c *Config) SimConfig() dynamo.Config {
	return dynamo.Config{
		Dt:             c.Run.Dt,
		Duration:       c.Run.Duration,
		ValidateFrames: c.Run.ValidateFrames,
		RecordMarkers:  c.Run.RecordMarkers,
	}
}

// TickInterval is the wall-clock time between live ticks.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Run.TickMs) * time.Millisecond
}

// Validate checks every section that a run depends on.
func (c *Config) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return err
	}
	if err := c.SimConfig().Validate(); err != nil {
		return err
	}
	if c.Run.TickMs <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive, got %d", dynamo.ErrInvalidConfig, c.Run.TickMs)
	}
	if c.Plot.Density <= 0 {
		return fmt.Errorf("%w: plot density must be positive, got %d", dynamo.ErrInvalidConfig, c.Plot.Density)
	}
	if !(c.Plot.Periods > 0) || math.IsInf(c.Plot.Periods, 0) {
		return fmt.Errorf("%w: plot periods must be positive and finite, got %g", dynamo.ErrInvalidConfig, c.Plot.Periods)
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		return fmt.Errorf("%w: plot size must be positive, got %dx%d", dynamo.ErrInvalidConfig, c.Plot.Width, c.Plot.Height)
	}
	if c.Plot.Theme != "" && !slices.Contains(viz.ThemeNames(), c.Plot.Theme) {
		return fmt.Errorf("%w: %q (available: %v)", ErrUnknownTheme, c.Plot.Theme, viz.ThemeNames())
	}
	return nil
}
