package series

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/lcsim/internal/dynamo"
)

var identity = dynamo.SignalFunc(func(t float64) float64 { return t })

func TestSample_FullWindow(t *testing.T) {
	s, err := New(identity, 10, 1.0)
	require.NoError(t, err)

	samples := s.Sample(5.0)
	require.Len(t, samples, 11)

	assert.InDelta(t, 4.0, samples[0].T, 1e-12)
	assert.Equal(t, 5.0, samples[len(samples)-1].T)
	for i, smp := range samples {
		assert.InDelta(t, 4.0+float64(i)*0.1, smp.T, 1e-12)
		assert.Equal(t, smp.T, smp.V)
	}
}

func TestSample_ClipsAtZero(t *testing.T) {
	s, err := New(identity, 10, 1.0)
	require.NoError(t, err)

	samples := s.Sample(0.35)
	require.NotEmpty(t, samples)

	assert.Equal(t, 0.0, samples[0].T)
	assert.Equal(t, 0.35, samples[len(samples)-1].T)
	for i := 1; i < len(samples); i++ {
		assert.Greater(t, samples[i].T, samples[i-1].T, "samples must be strictly increasing")
		assert.GreaterOrEqual(t, samples[i].T, 0.0)
	}
	// grid points 0.05, 0.15, 0.25 plus both ends
	assert.Len(t, samples, 5)
	assert.InDelta(t, 0.05, samples[1].T, 1e-12)
}

func TestSample_AtZero(t *testing.T) {
	s, err := New(identity, 20, 2.0)
	require.NoError(t, err)

	samples := s.Sample(0)
	require.Len(t, samples, 1)
	assert.Equal(t, Sample{T: 0, V: 0}, samples[0])
}

func TestSample_Empty(t *testing.T) {
	tests := []struct {
		name   string
		window float64
		tEnd   float64
	}{
		{"zero window", 0, 1},
		{"negative window", -1, 1},
		{"negative end", 1, -0.5},
		{"NaN end", 1, math.NaN()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Series{Signal: identity, Density: 10, Window: tt.window}
			assert.Empty(t, s.Sample(tt.tEnd))
		})
	}
}

func TestSample_Restartable(t *testing.T) {
	calls := 0
	counting := dynamo.SignalFunc(func(t float64) float64 {
		calls++
		return math.Sin(t)
	})
	s, err := New(counting, 50, 3.0)
	require.NoError(t, err)

	first := s.Sample(10)
	n := calls
	second := s.Sample(10)

	assert.Equal(t, first, second)
	assert.Equal(t, 2*n, calls)
}

func TestSample_ScrollingGridIsStable(t *testing.T) {
	s, err := New(identity, 4, 1.0)
	require.NoError(t, err)

	a := s.Sample(2.0)
	b := s.Sample(2.25)
	// shifting the end by one step shifts every sample by one step
	require.Len(t, a, len(b))
	for i := range a {
		assert.InDelta(t, a[i].T+0.25, b[i].T, 1e-12)
	}
}

func TestNew_Invalid(t *testing.T) {
	_, err := New(nil, 10, 1)
	assert.ErrorIs(t, err, dynamo.ErrInvalidParameter)

	_, err = New(identity, 0, 1)
	assert.ErrorIs(t, err, dynamo.ErrInvalidParameter)

	_, err = New(identity, 10, math.Inf(1))
	assert.ErrorIs(t, err, dynamo.ErrInvalidParameter)
}

func TestWithLabel(t *testing.T) {
	s, err := New(identity, 10, 1)
	require.NoError(t, err)

	l := s.WithLabel("U, V", Hint{Color: "aqua", Min: -1, Max: 1})
	assert.Equal(t, "U, V", l.Label)
	assert.Equal(t, "aqua", l.Hint.Color)
	assert.Empty(t, s.Label)
}

func TestBoundsAndValues(t *testing.T) {
	samples := []Sample{{0, 3}, {1, -2}, {2, 5}}
	lo, hi := Bounds(samples)
	assert.Equal(t, -2.0, lo)
	assert.Equal(t, 5.0, hi)
	assert.Equal(t, []float64{3, -2, 5}, Values(samples))

	lo, hi = Bounds(nil)
	assert.Zero(t, lo)
	assert.Zero(t, hi)
}

func TestQuarterTicks(t *testing.T) {
	ticks := QuarterTicks(0.1, 1.1, 1.0)
	require.Len(t, ticks, 4)
	assert.InDeltaSlice(t, []float64{0.25, 0.5, 0.75, 1.0}, ticks, 1e-12)

	assert.Equal(t, []float64{0}, QuarterTicks(0, 0.1, 1.0))
	assert.Nil(t, QuarterTicks(1, 0, 1.0))
	assert.Nil(t, QuarterTicks(0, 1, 0))
}
