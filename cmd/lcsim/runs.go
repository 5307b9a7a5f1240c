package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/lcsim/internal/analysis"
	"github.com/san-kum/lcsim/internal/circuit"
	"github.com/san-kum/lcsim/internal/dynamo"
	"github.com/san-kum/lcsim/internal/metrics"
	"github.com/san-kum/lcsim/internal/sim"
	"github.com/san-kum/lcsim/internal/storage"
)

const stabilityTolerance = 1e-9

// runMetrics is the metric set attached to every stored run.
func runMetrics(c *circuit.Circuit) []dynamo.Metric {
	return []dynamo.Metric{
		metrics.NewEnergy(),
		metrics.NewEnergyDrift(c.TotalEnergy()),
		metrics.NewStability(c.PeakVoltage(), c.PeakCurrent(), stabilityTolerance),
		metrics.NewPeakCurrent(),
		metrics.NewRMSCurrent(),
		metrics.NewMarkerTravel(c.Path().Len()),
	}
}

func showInfo(cmd *cobra.Command, args []string) error {
	_, c, err := setup(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "capacitance\t%g F\n", c.Capacitance())
	fmt.Fprintf(w, "inductance\t%g H\n", c.Inductance())
	fmt.Fprintf(w, "peak voltage\t%g V\n", c.PeakVoltage())
	fmt.Fprintf(w, "omega\t%g rad/s\n", c.AngularFrequency())
	fmt.Fprintf(w, "frequency\t%g Hz\n", c.Frequency())
	fmt.Fprintf(w, "period\t%g s\n", c.Period())
	fmt.Fprintf(w, "peak current\t%g A\n", c.PeakCurrent())
	fmt.Fprintf(w, "peak charge\t%g C\n", c.PeakCharge())
	fmt.Fprintf(w, "energy\t%g J\n", c.TotalEnergy())
	fmt.Fprintf(w, "loop length\t%g\n", c.Path().Len())
	fmt.Fprintf(w, "marker spacing\t%g\n", c.Spacing())
	fmt.Fprintf(w, "fingerprint\t%s\n", storage.Fingerprint(c.Params()))
	if err := w.Flush(); err != nil {
		return err
	}

	runs, err := storage.New(dataDir, log).FindByParams(c.Params())
	if err != nil {
		return err
	}
	if len(runs) > 0 {
		fmt.Printf("\nstored runs of this circuit:\n")
		for _, r := range runs {
			fmt.Printf("  %s  %s  %gs\n", r.ID, r.Timestamp.Format("2006-01-02 15:04:05"), r.Duration)
		}
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, c, err := setup(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir, log)
	if err := st.Init(); err != nil {
		return err
	}

	drv := sim.New(c, log)
	for _, m := range runMetrics(c) {
		drv.AddMetric(m)
	}

	simCfg := cfg.SimConfig()
	fmt.Printf("running LC circuit (omega=%.4g rad/s)...\n", c.AngularFrequency())
	start := time.Now()

	result, err := drv.Run(cmd.Context(), simCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.NewMetadata(c, simCfg, preset), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	fmt.Println("\nmetrics:")
	printMetrics(result.Metrics)
	return nil
}

func printMetrics(values map[string]float64) {
	for _, m := range []string{"energy", "energy_drift", "stability", "peak_current", "rms_current", "marker_travel"} {
		if v, ok := values[m]; ok {
			fmt.Printf("  %s: %.6g\n", m, v)
		}
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tC\tL\tU0\tDURATION\tDT\tPRESET")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%gs\t%gs\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Params.Capacitance,
			run.Params.Inductance,
			run.Params.PeakVoltage,
			run.Duration,
			run.Dt,
			run.Preset,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func deleteRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log)
	if err := st.Delete(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if result.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", result.Len())

	panels := []struct {
		caption string
		data    [][]float64
		colors  []asciigraph.AnsiColor
	}{
		{"U, V", [][]float64{result.Voltage}, []asciigraph.AnsiColor{asciigraph.Aqua}},
		{"I, A", [][]float64{result.Current}, []asciigraph.AnsiColor{asciigraph.Magenta}},
		{"q, C", [][]float64{result.Charge}, []asciigraph.AnsiColor{asciigraph.Blue}},
		{"Wl (red), Wc (green), J", [][]float64{result.InductorEnergy, result.CapacitorEnergy}, []asciigraph.AnsiColor{asciigraph.Red, asciigraph.Green}},
	}

	for _, p := range panels {
		graph := asciigraph.PlotMany(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(p.colors...),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	expected := meta.Omega / (2 * math.Pi)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "analytic frequency\t%.6g Hz\n", expected)

	freq, err := analysis.DominantFrequency(result.Voltage, meta.Dt)
	if err != nil {
		fmt.Fprintf(w, "fft frequency\tn/a (%v)\n", err)
	} else {
		fmt.Fprintf(w, "fft frequency\t%.6g Hz\t(%+.3g%%)\n", freq, 100*(freq-expected)/expected)
	}

	period, err := analysis.MeasuredPeriod(result.Times, result.Voltage)
	if err != nil {
		fmt.Fprintf(w, "measured period\tn/a (%v)\n", err)
	} else {
		fmt.Fprintf(w, "measured period\t%.6g s\t(analytic %.6g s)\n", period, meta.Period)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	portrait, err := analysis.NewPhasePortrait("q", result.Charge, "I", result.Current)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(portrait.ASCII(60, 20))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log)
	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	if result.Len() == 0 {
		return fmt.Errorf("no data to export")
	}
	return storage.WriteCSV(os.Stdout, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, log)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	result, err := st.LoadResult(args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, *meta, result)
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(capacitances) == 0 {
		return fmt.Errorf("%w: sweep needs at least one capacitance", dynamo.ErrInvalidParameter)
	}

	params := make([]circuit.Params, len(capacitances))
	for i, cv := range capacitances {
		p := cfg.Params()
		p.Capacitance = cv
		params[i] = p
	}

	sweep := sim.NewSweep(params, func() []dynamo.Metric {
		return []dynamo.Metric{metrics.NewPeakCurrent(), metrics.NewRMSCurrent(), metrics.NewEnergyDrift(0)}
	}, log)
	sweep.SetLimit(limit)

	start := time.Now()
	results, err := sweep.Run(cmd.Context(), cfg.SimConfig())
	if err != nil {
		return err
	}
	log.Debug("sweep finished", zap.Int("members", len(results)), zap.Duration("elapsed", time.Since(start)))

	rows, err := sweepRows(params, results)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "C\tOMEGA\tPERIOD\tPEAK_I\tRMS_I\tDRIFT")
	for _, r := range rows {
		fmt.Fprintf(w, "%g\t%.6g\t%.6g\t%.6g\t%.6g\t%.2e\n",
			r.capacitance, r.omega, r.period, r.peakCurrent, r.rmsCurrent, r.drift)
	}
	return w.Flush()
}

type sweepRow struct {
	capacitance float64
	omega       float64
	period      float64
	peakCurrent float64
	rmsCurrent  float64
	drift       float64
}

// sweepRows pairs each result with the constants of the circuit it ran.
func sweepRows(params []circuit.Params, results []*dynamo.Result) ([]sweepRow, error) {
	rows := make([]sweepRow, len(results))
	for i, r := range results {
		c, err := circuit.New(params[i])
		if err != nil {
			return nil, err
		}
		rows[i] = sweepRow{
			capacitance: params[i].Capacitance,
			omega:       c.AngularFrequency(),
			period:      c.Period(),
			peakCurrent: r.Metrics["peak_current"],
			rmsCurrent:  r.Metrics["rms_current"],
			drift:       r.Metrics["energy_drift"],
		}
	}
	return rows, nil
}
