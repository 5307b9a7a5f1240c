package viz

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/lcsim/internal/circuit"
)

func defaultCircuit(t *testing.T) *circuit.Circuit {
	t.Helper()
	c, err := circuit.New(circuit.DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c
}

func TestCircuitGraphs(t *testing.T) {
	c := defaultCircuit(t)
	graphs, err := CircuitGraphs(c, 100, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(graphs) != 4 {
		t.Fatalf("expected 4 graphs, got %d", len(graphs))
	}

	period := c.Period()
	byTitle := make(map[string]Graph)
	for _, g := range graphs {
		byTitle[g.Title] = g
	}

	v := byTitle["voltage"]
	if math.Abs(v.Window-period) > 1e-12 || v.Min != -10 || v.Max != 10 {
		t.Errorf("unexpected voltage panel %+v", v)
	}

	e := byTitle["energy"]
	if len(e.Series) != 2 {
		t.Fatalf("expected two energy series, got %d", len(e.Series))
	}
	if math.Abs(e.Window-period/2) > 1e-12 || math.Abs(e.TickPeriod-period/2) > 1e-12 {
		t.Errorf("expected energy panel over half a period, got window %v", e.Window)
	}
	if e.Min != 0 || e.Max != c.TotalEnergy() {
		t.Errorf("expected energy range [0, %v], got [%v, %v]", c.TotalEnergy(), e.Min, e.Max)
	}

	if byTitle["charge"].Max != c.PeakCharge() {
		t.Errorf("expected charge range from peak charge")
	}
}

func TestCircuitGraphsRejectsBadInput(t *testing.T) {
	c := defaultCircuit(t)
	if _, err := CircuitGraphs(c, 100, 0); err == nil {
		t.Error("expected error for zero periods")
	}
	if _, err := CircuitGraphs(c, 0, 1); err == nil {
		t.Error("expected error for zero density")
	}
}

func TestGraphTicks(t *testing.T) {
	c := defaultCircuit(t)
	graphs, err := CircuitGraphs(c, 100, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v := graphs[0]
	ticks := v.Ticks(c.Period())
	if len(ticks) != 5 {
		t.Fatalf("expected 5 quarter ticks over one full period, got %v", ticks)
	}
	if ticks[0] != 0 {
		t.Errorf("expected first tick at 0, got %v", ticks[0])
	}
}

func TestPlotGraph(t *testing.T) {
	c := defaultCircuit(t)
	graphs, err := CircuitGraphs(c, 60, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out := PlotGraph(graphs[0], 0, 40, 5); out != "" {
		t.Errorf("expected nothing to plot at t=0, got %q", out)
	}

	out := PlotGraph(graphs[2], 3, 40, 5)
	if !strings.Contains(out, "Wl, J") || !strings.Contains(out, "Wc, J") {
		t.Errorf("expected both energy labels in caption:\n%s", out)
	}
	if !strings.Contains(out, "t, s:") {
		t.Errorf("expected tick marks in caption:\n%s", out)
	}
}

func TestCaption(t *testing.T) {
	if got := Caption("U, V", nil); got != "U, V" {
		t.Errorf("unexpected caption %q", got)
	}
	got := Caption("U, V", []float64{0, 1.5708, 1e-5})
	want := "U, V  | t, s: 0 1.57 1.00e-05"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline(nil, 3); got != "───" {
		t.Errorf("expected flat line, got %q", got)
	}
	if out := Sparkline([]float64{0, 1, 2, 3}, 4); !strings.Contains(out, "█") || !strings.Contains(out, "▁") {
		t.Errorf("expected lowest and highest blocks in %q", out)
	}
}
