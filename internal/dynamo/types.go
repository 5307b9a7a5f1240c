package dynamo

import (
	"fmt"
	"math"

	"github.com/san-kum/lcsim/internal/geom"
)

// Signal is a pure function of simulated time.
type Signal interface {
	At(t float64) float64
}

// SignalFunc adapts a plain function to Signal.
type SignalFunc func(t float64) float64

func (f SignalFunc) At(t float64) float64 { return f(t) }

// Frame is a read-only snapshot of one tick.
type Frame struct {
	Step            int
	Time            float64
	Voltage         float64
	Current         float64
	Charge          float64
	InductorEnergy  float64
	CapacitorEnergy float64
	Shift           float64
	Markers         []geom.Vec2
}

// IsValid reports whether every scalar in the frame is finite.
func (f Frame) IsValid() bool {
	for _, v := range []float64{f.Time, f.Voltage, f.Current, f.Charge, f.InductorEnergy, f.CapacitorEnergy, f.Shift} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Config struct {
	Dt             float64
	Duration       float64
	ValidateFrames bool
	RecordMarkers  bool
}

func DefaultConfig() Config {
	return Config{
		Dt:             0.02,
		Duration:       10.0,
		ValidateFrames: true,
	}
}

// Validate checks that the configuration describes at least one step.
func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive, got %g", ErrInvalidConfig, c.Dt)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidConfig, c.Duration)
	}
	return nil
}

// Steps returns the number of whole ticks that fit in Duration.
func (c Config) Steps() int {
	return int(math.Round(c.Duration / c.Dt))
}

// Result holds the traces recorded by a fixed-step run.
type Result struct {
	Times           []float64
	Voltage         []float64
	Current         []float64
	Charge          []float64
	InductorEnergy  []float64
	CapacitorEnergy []float64
	Shift           []float64
	Markers         [][]geom.Vec2
	Metrics         map[string]float64
	StepsTaken      int
}

// Append records one frame.
func (r *Result) Append(f Frame, withMarkers bool) {
	r.Times = append(r.Times, f.Time)
	r.Voltage = append(r.Voltage, f.Voltage)
	r.Current = append(r.Current, f.Current)
	r.Charge = append(r.Charge, f.Charge)
	r.InductorEnergy = append(r.InductorEnergy, f.InductorEnergy)
	r.CapacitorEnergy = append(r.CapacitorEnergy, f.CapacitorEnergy)
	r.Shift = append(r.Shift, f.Shift)
	if withMarkers {
		r.Markers = append(r.Markers, f.Markers)
	}
}

// Len returns the number of recorded samples.
func (r *Result) Len() int { return len(r.Times) }

// Metric accumulates a scalar over the frames of a run.
type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

// Observer is notified after every tick.
type Observer interface {
	OnTick(f Frame)
}
