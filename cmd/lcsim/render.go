package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/lcsim/internal/analysis"
	"github.com/san-kum/lcsim/internal/circuit"
	"github.com/san-kum/lcsim/internal/config"
	"github.com/san-kum/lcsim/internal/dynamo"
	"github.com/san-kum/lcsim/internal/export"
	"github.com/san-kum/lcsim/internal/logging"
	"github.com/san-kum/lcsim/internal/sim"
	"github.com/san-kum/lcsim/internal/viz"
)

// windowEnd defaults to the end of the first full window.
func windowEnd(cfg *config.Config, c *circuit.Circuit) float64 {
	if at > 0 {
		return at
	}
	return cfg.Plot.Periods * c.Period()
}

func plotWindow(cmd *cobra.Command, args []string) error {
	cfg, c, err := setup(cmd)
	if err != nil {
		return err
	}

	graphs, err := viz.CircuitGraphs(c, cfg.Plot.Density, cfg.Plot.Periods)
	if err != nil {
		return err
	}

	tEnd := windowEnd(cfg, c)
	for _, g := range graphs {
		out := viz.PlotGraph(g, tEnd, cfg.Plot.Width, cfg.Plot.Height)
		if out == "" {
			continue
		}
		fmt.Println(g.Title)
		fmt.Println(out)
		fmt.Println()
	}
	return nil
}

func exportPlots(cmd *cobra.Command, args []string) error {
	cfg, c, err := setup(cmd)
	if err != nil {
		return err
	}

	graphs, err := viz.CircuitGraphs(c, cfg.Plot.Density, cfg.Plot.Periods)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outPath, 0755); err != nil {
		return err
	}

	tEnd := windowEnd(cfg, c)
	for _, g := range graphs {
		path := filepath.Join(outPath, fmt.Sprintf("%s.%s", g.Title, format))
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = export.WriteGraph(f, g, tEnd, format, 8*vg.Inch, 3*vg.Inch)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}
	return nil
}

func exportSnapshot(cmd *cobra.Command, args []string) error {
	cfg, c, err := setup(cmd)
	if err != nil {
		return err
	}

	simCfg := cfg.SimConfig()
	drv := sim.New(c, log)
	result, err := drv.Run(cmd.Context(), simCfg)
	if err != nil {
		return err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	frame := drv.Frame()
	if err := export.FrameToSVG(f, viz.CircuitShape(c), frame.Markers); err != nil {
		return err
	}
	fmt.Printf("wrote %s at t=%.4gs (shift %.4g)\n", outPath, frame.Time, frame.Shift)

	portrait, err := analysis.NewPhasePortrait("q", result.Charge, "I", result.Current)
	if err != nil {
		return err
	}
	phasePath := outPath[:len(outPath)-len(filepath.Ext(outPath))] + "_phase.svg"
	pf, err := os.Create(phasePath)
	if err != nil {
		return err
	}
	defer pf.Close()
	if err := export.TrajectoryToSVG(pf, portrait.Points, 400, 400, string(viz.GetTheme(cfg.Plot.Theme).Primary)); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", phasePath)
	return nil
}

func exportWAV(cmd *cobra.Command, args []string) error {
	_, c, err := setup(cmd)
	if err != nil {
		return err
	}

	sig, err := c.Signal(circuit.SignalVoltage)
	if err != nil {
		return err
	}
	s, err := export.NewSignalStreamer(sig, c.Frequency(), c.PeakVoltage(), export.Tone{
		Duration: time.Duration(wavSeconds * float64(time.Second)),
		Pitch:    pitch,
	})
	if err != nil {
		return fmt.Errorf("%w (resonance %.4g Hz, set --pitch)", err, c.Frequency())
	}

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := export.WriteWAV(f, s); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d samples)\n", outPath, s.Len())
	return nil
}

// streamFrame is the JSON form of one tick.
type streamFrame struct {
	Step            int          `json:"step"`
	Time            float64      `json:"t"`
	Voltage         float64      `json:"voltage"`
	Current         float64      `json:"current"`
	Charge          float64      `json:"charge"`
	InductorEnergy  float64      `json:"inductor_energy"`
	CapacitorEnergy float64      `json:"capacitor_energy"`
	Shift           float64      `json:"shift"`
	Markers         [][2]float64 `json:"markers,omitempty"`
}

func toStreamFrame(f dynamo.Frame, markers bool) streamFrame {
	out := streamFrame{
		Step:            f.Step,
		Time:            f.Time,
		Voltage:         f.Voltage,
		Current:         f.Current,
		Charge:          f.Charge,
		InductorEnergy:  f.InductorEnergy,
		CapacitorEnergy: f.CapacitorEnergy,
		Shift:           f.Shift,
	}
	if markers {
		out.Markers = make([][2]float64, len(f.Markers))
		for i, p := range f.Markers {
			out.Markers[i] = [2]float64{p.X, p.Y}
		}
	}
	return out
}

func streamFrames(cmd *cobra.Command, args []string) error {
	cfg, c, err := setup(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	enc := json.NewEncoder(os.Stdout)
	var encErr error
	handler := func(f dynamo.Frame) {
		if encErr != nil {
			return
		}
		if encErr = enc.Encode(toStreamFrame(f, withMarkers)); encErr != nil || f.Time >= cfg.Run.Duration {
			cancel()
		}
	}

	drv := sim.New(c, log)
	ctrl, err := sim.NewController(drv, cfg.Run.Dt, cfg.TickInterval(), handler)
	if err != nil {
		return err
	}
	if err := enc.Encode(toStreamFrame(ctrl.Snapshot(), withMarkers)); err != nil {
		return err
	}
	if err := ctrl.Start(ctx); err != nil {
		return err
	}

	<-ctx.Done()
	ctrl.Stop()
	log.Debug("stream stopped", zap.Float64("t", ctrl.Time()))
	return encErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, c, err := setup(cmd)
	if err != nil {
		return err
	}

	// the alternate screen owns the terminal; nothing may log to it
	drv := sim.New(c, logging.Quiet())
	ctrl, err := sim.NewController(drv, cfg.Run.Dt, cfg.TickInterval(), nil)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(cmd.Context(), ctrl, c, viz.Options{
		Density: cfg.Plot.Density,
		Periods: cfg.Plot.Periods,
		Theme:   cfg.Plot.Theme,
	})
	if err != nil {
		return err
	}
	return viz.Run(m)
}
