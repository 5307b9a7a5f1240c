// Package sim drives a circuit through simulated time.
package sim

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/san-kum/lcsim/internal/circuit"
	"github.com/san-kum/lcsim/internal/dynamo"
)

// Driver owns the simulated clock of one circuit. It is not safe for
// concurrent use; wrap it in a Controller for that.
type Driver struct {
	c         *circuit.Circuit
	metrics   []dynamo.Metric
	observers []dynamo.Observer
	log       *zap.Logger

	t    float64
	step int
}

func New(c *circuit.Circuit, log *zap.Logger) *Driver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Driver{
		c:         c,
		metrics:   make([]dynamo.Metric, 0),
		observers: make([]dynamo.Observer, 0),
		log:       log,
	}
}

func (d *Driver) AddMetric(m dynamo.Metric)     { d.metrics = append(d.metrics, m) }
func (d *Driver) AddObserver(o dynamo.Observer) { d.observers = append(d.observers, o) }

func (d *Driver) Circuit() *circuit.Circuit { return d.c }
func (d *Driver) Time() float64             { return d.t }
func (d *Driver) Steps() int                { return d.step }

// Frame reports the circuit at the current simulated time.
func (d *Driver) Frame() dynamo.Frame {
	return d.c.Frame(d.step, d.t)
}

// Tick advances the clock by dt, moves the markers and notifies observers.
func (d *Driver) Tick(dt float64) dynamo.Frame {
	d.t += dt
	d.step++
	d.c.Step(d.t, dt)

	f := d.Frame()
	for _, obs := range d.observers {
		obs.OnTick(f)
	}
	return f
}

// Reset rewinds the clock to zero and puts the markers back.
func (d *Driver) Reset() {
	d.t = 0
	d.step = 0
	d.c.Reset()
	for _, m := range d.metrics {
		m.Reset()
	}
}

// Run performs cfg.Steps() ticks from the current time and records every
// frame, the starting one included.
func (d *Driver) Run(ctx context.Context, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &dynamo.Result{
		Times:           make([]float64, 0, steps+1),
		Voltage:         make([]float64, 0, steps+1),
		Current:         make([]float64, 0, steps+1),
		Charge:          make([]float64, 0, steps+1),
		InductorEnergy:  make([]float64, 0, steps+1),
		CapacitorEnergy: make([]float64, 0, steps+1),
		Shift:           make([]float64, 0, steps+1),
		Metrics:         make(map[string]float64),
	}

	for _, m := range d.metrics {
		m.Reset()
	}

	d.log.Debug("run started",
		zap.Float64("dt", cfg.Dt),
		zap.Float64("duration", cfg.Duration),
		zap.Int("steps", steps),
		zap.Float64("omega", d.c.AngularFrequency()),
	)

	f := d.Frame()
	d.observe(f)
	result.Append(f, cfg.RecordMarkers)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			d.finish(result)
			return result, ctx.Err()
		default:
		}

		f = d.Tick(cfg.Dt)
		if cfg.ValidateFrames && !f.IsValid() {
			d.finish(result)
			return result, &dynamo.SimError{Step: f.Step, Time: f.Time, Wrapped: dynamo.ErrInvalidFrame}
		}

		d.observe(f)
		result.Append(f, cfg.RecordMarkers)
		result.StepsTaken++
	}

	d.finish(result)
	d.log.Debug("run finished", zap.Int("steps", result.StepsTaken), zap.Float64("t", d.t))
	return result, nil
}

func (d *Driver) observe(f dynamo.Frame) {
	for _, m := range d.metrics {
		m.Observe(f)
	}
}

func (d *Driver) finish(result *dynamo.Result) {
	for _, m := range d.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

// RunWithCallback ticks until Duration has elapsed or callback returns false.
func (d *Driver) RunWithCallback(ctx context.Context, cfg dynamo.Config, callback func(dynamo.Frame) bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if !callback(d.Frame()) {
		return nil
	}
	for i := 0; i < cfg.Steps(); i++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		f := d.Tick(cfg.Dt)
		if cfg.ValidateFrames && !f.IsValid() {
			return fmt.Errorf("invalid frame at t=%.4f: %w", f.Time, dynamo.ErrInvalidFrame)
		}
		if !callback(f) {
			return nil
		}
	}
	return nil
}
