package sim

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/lcsim/internal/dynamo"
)

var ErrAlreadyRunning = errors.New("sim: controller already running")

// FrameHandler receives every frame produced by a running Controller. It is
// called outside the controller lock, in tick order.
type FrameHandler func(dynamo.Frame)

// Controller runs a Driver from a wall-clock ticker. Every tick and every
// snapshot is taken under one mutex, so readers never observe a half-applied
// step. Stopping freezes simulated time; starting again resumes it.
type Controller struct {
	mu       sync.Mutex
	drv      *Driver
	dt       float64
	interval time.Duration
	handler  FrameHandler
	log      *zap.Logger

	cancel context.CancelFunc
	done   chan struct{}
}

// NewController ticks drv by dt simulated seconds every interval of wall
// clock time.
func NewController(drv *Driver, dt float64, interval time.Duration, handler FrameHandler) (*Controller, error) {
	if dt <= 0 || interval <= 0 {
		return nil, dynamo.ErrInvalidConfig
	}
	return &Controller{
		drv:      drv,
		dt:       dt,
		interval: interval,
		handler:  handler,
		log:      drv.log,
	}, nil
}

// Start launches the tick goroutine. It stops on its own when ctx is done.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	c.cancel = cancel
	c.done = done

	c.log.Info("controller started", zap.Float64("t", c.drv.Time()), zap.Duration("interval", c.interval))
	go c.loop(ctx, done)
	return nil
}

func (c *Controller) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.release(done)
			return
		case <-ticker.C:
			f := c.Advance()
			if c.handler != nil {
				c.handler(f)
			}
		}
	}
}

// release forgets a run that ended because its parent context was done.
// A run already cleared by Stop, or replaced by a newer Start, is left alone.
func (c *Controller) release(done chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.done != done {
		return
	}
	c.cancel()
	c.cancel, c.done = nil, nil
	c.log.Info("controller stopped with its context", zap.Float64("t", c.drv.Time()))
}

// Stop halts the ticker and waits for the goroutine to exit. Stopping an
// idle controller is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done

	c.log.Info("controller stopped", zap.Float64("t", c.Time()))
}

// Toggle starts an idle controller or stops a running one and reports
// whether it is running afterwards.
func (c *Controller) Toggle(ctx context.Context) (bool, error) {
	if c.Running() {
		c.Stop()
		return false, nil
	}
	if err := c.Start(ctx); err != nil {
		return false, err
	}
	return true, nil
}

func (c *Controller) Running() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancel != nil
}

// Advance performs one tick synchronously.
func (c *Controller) Advance() dynamo.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drv.Tick(c.dt)
}

// Snapshot returns the current frame without advancing time.
func (c *Controller) Snapshot() dynamo.Frame {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drv.Frame()
}

func (c *Controller) Time() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.drv.Time()
}

// Reset rewinds the driver. The controller keeps its running state.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.drv.Reset()
}

func (c *Controller) Dt() float64 { return c.dt }
