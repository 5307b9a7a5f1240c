package viz

import (
	"fmt"
	"math"

	"github.com/san-kum/lcsim/internal/circuit"
	"github.com/san-kum/lcsim/internal/series"
)

// Graph is one plot panel: series sharing a window, a value range and the
// period used for the time axis marks.
type Graph struct {
	Title      string
	Series     []series.Series
	Min, Max   float64
	Window     float64
	TickPeriod float64
}

type graphSpec struct {
	title   string
	signals []string
	labels  []string
	colors  []string
	half    bool
}

var graphSpecs = []graphSpec{
	{title: "voltage", signals: []string{circuit.SignalVoltage}, labels: []string{"U, V"}, colors: []string{"aqua"}},
	{title: "current", signals: []string{circuit.SignalCurrent}, labels: []string{"I, A"}, colors: []string{"magenta"}},
	{title: "energy", signals: []string{circuit.SignalInductorEnergy, circuit.SignalCapacitorEnergy}, labels: []string{"Wl, J", "Wc, J"}, colors: []string{"red", "green"}, half: true},
	{title: "charge", signals: []string{circuit.SignalCharge}, labels: []string{"q, C"}, colors: []string{"blue"}},
}

// CircuitGraphs builds the four panels of the circuit: voltage, current and
// charge over periods periods, and both energies over half that, since they
// oscillate twice as fast.
func CircuitGraphs(c *circuit.Circuit, density int, periods float64) ([]Graph, error) {
	if !(periods > 0) || math.IsInf(periods, 0) {
		return nil, fmt.Errorf("viz: periods must be positive, got %g", periods)
	}

	period := c.Period()
	graphs := make([]Graph, 0, len(graphSpecs))
	for _, spec := range graphSpecs {
		window := periods * period
		tick := period
		if spec.half {
			window /= 2
			tick /= 2
		}

		g := Graph{Title: spec.title, Window: window, TickPeriod: tick}
		for i, name := range spec.signals {
			sig, err := c.Signal(name)
			if err != nil {
				return nil, err
			}
			s, err := series.New(sig, density, window)
			if err != nil {
				return nil, err
			}

			peak := c.Peak(name)
			lo := -peak
			if spec.half {
				lo = 0
			}
			g.Series = append(g.Series, s.WithLabel(spec.labels[i], series.Hint{Color: spec.colors[i], Min: lo, Max: peak}))
			g.Min, g.Max = lo, peak
		}
		graphs = append(graphs, g)
	}
	return graphs, nil
}

// Ticks returns the quarter-period axis marks visible in the window ending
// at tEnd.
func (g Graph) Ticks(tEnd float64) []float64 {
	return series.QuarterTicks(math.Max(0, tEnd-g.Window), tEnd, g.TickPeriod)
}

// Sample evaluates every series of the panel at tEnd.
func (g Graph) Sample(tEnd float64) [][]series.Sample {
	out := make([][]series.Sample, len(g.Series))
	for i, s := range g.Series {
		out[i] = s.Sample(tEnd)
	}
	return out
}
