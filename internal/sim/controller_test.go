package sim

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/lcsim/internal/dynamo"
)

func TestNewControllerValidates(t *testing.T) {
	d := New(newCircuit(t), nil)
	_, err := NewController(d, 0, time.Millisecond, nil)
	assert.ErrorIs(t, err, dynamo.ErrInvalidConfig)
	_, err = NewController(d, 0.02, 0, nil)
	assert.ErrorIs(t, err, dynamo.ErrInvalidConfig)
}

func TestControllerAdvanceAndSnapshot(t *testing.T) {
	d := New(newCircuit(t), nil)
	ctrl, err := NewController(d, 0.02, time.Hour, nil)
	require.NoError(t, err)

	f := ctrl.Advance()
	assert.Equal(t, 1, f.Step)

	snap := ctrl.Snapshot()
	assert.Equal(t, f.Time, snap.Time)
	assert.Equal(t, f.Shift, snap.Shift)
	assert.Equal(t, 0.02, ctrl.Dt())

	ctrl.Reset()
	assert.Zero(t, ctrl.Time())
}

func TestControllerStartStop(t *testing.T) {
	d := New(newCircuit(t), nil)

	var mu sync.Mutex
	var frames []dynamo.Frame
	ticked := make(chan struct{}, 100)

	ctrl, err := NewController(d, 0.02, time.Millisecond, func(f dynamo.Frame) {
		mu.Lock()
		frames = append(frames, f)
		mu.Unlock()
		select {
		case ticked <- struct{}{}:
		default:
		}
	})
	require.NoError(t, err)

	require.NoError(t, ctrl.Start(context.Background()))
	assert.True(t, ctrl.Running())
	assert.ErrorIs(t, ctrl.Start(context.Background()), ErrAlreadyRunning)

	for i := 0; i < 3; i++ {
		select {
		case <-ticked:
		case <-time.After(5 * time.Second):
			t.Fatal("controller did not tick")
		}
	}

	ctrl.Stop()
	assert.False(t, ctrl.Running())

	frozen := ctrl.Time()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, frozen, ctrl.Time())

	mu.Lock()
	defer mu.Unlock()
	require.GreaterOrEqual(t, len(frames), 3)
	for i := 1; i < len(frames); i++ {
		assert.Equal(t, frames[i-1].Step+1, frames[i].Step)
	}
	assert.Equal(t, frames[len(frames)-1].Time, frozen)
}

func TestControllerToggleResumes(t *testing.T) {
	d := New(newCircuit(t), nil)
	ctrl, err := NewController(d, 0.02, time.Hour, nil)
	require.NoError(t, err)

	ctrl.Advance()
	running, err := ctrl.Toggle(context.Background())
	require.NoError(t, err)
	assert.True(t, running)

	running, err = ctrl.Toggle(context.Background())
	require.NoError(t, err)
	assert.False(t, running)

	assert.InDelta(t, 0.02, ctrl.Time(), 1e-15)
	ctrl.Advance()
	assert.InDelta(t, 0.04, ctrl.Time(), 1e-15)
}

func TestControllerStopsWithContext(t *testing.T) {
	d := New(newCircuit(t), nil)
	ctrl, err := NewController(d, 0.02, time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, ctrl.Start(ctx))
	cancel()

	ctrl.Stop()
	assert.False(t, ctrl.Running())
}

func TestControllerContextCancelClearsRun(t *testing.T) {
	d := New(newCircuit(t), nil)
	ctrl, err := NewController(d, 0.02, time.Millisecond, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, ctrl.Start(ctx))
	cancel()

	require.Eventually(t, func() bool { return !ctrl.Running() }, time.Second, time.Millisecond)
	frozen := ctrl.Time()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, frozen, ctrl.Time())

	require.NoError(t, ctrl.Start(context.Background()))
	assert.True(t, ctrl.Running())
	require.Eventually(t, func() bool { return ctrl.Time() > frozen }, time.Second, time.Millisecond)
	ctrl.Stop()
	assert.False(t, ctrl.Running())
}

func TestControllerStopIdle(t *testing.T) {
	d := New(newCircuit(t), nil)
	ctrl, err := NewController(d, 0.02, time.Millisecond, nil)
	require.NoError(t, err)
	ctrl.Stop()
	assert.False(t, ctrl.Running())
}
