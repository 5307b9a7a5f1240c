package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/lcsim/internal/circuit"
	"github.com/san-kum/lcsim/internal/config"
	"github.com/san-kum/lcsim/internal/logging"
)

var (
	dataDir     string
	configFile  string
	preset      string
	logLevel    string
	capacitance float64
	inductance  float64
	voltage     float64
	charges     int
	chargeValue float64
	dt          float64
	duration    float64
	// window / export-png
	at      float64
	periods float64
	format  string
	outPath string
	// export-wav
	pitch      float64
	wavSeconds float64
	// sweep
	capacitances []float64
	limit        int
	// stream
	withMarkers bool

	log = zap.NewNop()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "lcsim",
		Short:         "ideal LC oscillator simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			log, err = logging.New(cfg.Log.Level, cfg.Log.Format)
			return err
		},
		RunE: runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".lcsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.Float64Var(&capacitance, "capacitance", config.DefaultCapacitance, "capacitance C, F")
	pf.Float64Var(&inductance, "inductance", config.DefaultInductance, "inductance L, H")
	pf.Float64Var(&voltage, "voltage", config.DefaultVoltage, "peak voltage U0, V")
	pf.IntVar(&charges, "charges", circuit.DefaultChargeCount, "number of charge markers")
	pf.Float64Var(&chargeValue, "charge-value", circuit.DefaultChargeValue, "charge carried by one marker")
	pf.Float64Var(&dt, "dt", config.DefaultDt, "timestep, s")
	pf.Float64Var(&duration, "time", config.DefaultDuration, "simulated duration, s")

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "print derived circuit constants",
		RunE:  showInfo,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a fixed-step simulation and store it",
		RunE:  runSimulation,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored traces",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "plot the sampled graph windows ending at --at",
		RunE:  plotWindow,
	}
	windowCmd.Flags().Float64Var(&at, "at", 0, "window end time, s (0 means one window)")
	windowCmd.Flags().Float64Var(&periods, "periods", 0, "window length in periods (0 means config)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run traces to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportPNGCmd := &cobra.Command{
		Use:   "export-png",
		Short: "render the graph panels to image files",
		RunE:  exportPlots,
	}
	exportPNGCmd.Flags().Float64Var(&at, "at", 0, "window end time, s (0 means one window)")
	exportPNGCmd.Flags().Float64Var(&periods, "periods", 0, "window length in periods (0 means config)")
	exportPNGCmd.Flags().StringVar(&format, "format", "png", "image format (png, svg, pdf)")
	exportPNGCmd.Flags().StringVarP(&outPath, "out", "o", ".", "output directory")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "snapshot the loop and markers after --time",
		RunE:  exportSnapshot,
	}
	exportSVGCmd.Flags().StringVarP(&outPath, "out", "o", "lcsim.svg", "output file")

	exportWAVCmd := &cobra.Command{
		Use:   "export-wav",
		Short: "sonify the capacitor voltage",
		RunE:  exportWAV,
	}
	exportWAVCmd.Flags().Float64Var(&pitch, "pitch", 0, "playback frequency, Hz (0 means the true resonance)")
	exportWAVCmd.Flags().Float64Var(&wavSeconds, "seconds", 2, "audio length, s")
	exportWAVCmd.Flags().StringVarP(&outPath, "out", "o", "lcsim.wav", "output file")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run one circuit per capacitance in parallel",
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64SliceVar(&capacitances, "capacitances", []float64{0.25, 0.5, 1, 2, 4}, "capacitance values, F")
	sweepCmd.Flags().IntVar(&limit, "parallel", 0, "max circuits simulated at once (0 means no cap)")

	streamCmd := &cobra.Command{
		Use:   "stream",
		Short: "emit JSON frames at the configured tick rate",
		RunE:  streamFrames,
	}
	streamCmd.Flags().BoolVar(&withMarkers, "markers", false, "include marker positions")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the circuit with live visualization",
		RunE:  runLive,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				c := config.Presets[p].Circuit
				fmt.Printf("  %-8s C=%g L=%g U0=%g charges=%d\n", p, c.Capacitance, c.Inductance, c.Voltage, c.Charges)
			}
			return nil
		},
	}

	rootCmd.AddCommand(infoCmd, runCmd, listCmd, showCmd, deleteCmd, plotCmd, windowCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, exportPNGCmd, exportSVGCmd, exportWAVCmd,
		sweepCmd, streamCmd, liveCmd, presetsCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if log.Core().Enabled(zap.ErrorLevel) {
			log.Error("command failed", zap.Error(err))
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		_ = log.Sync()
		stop()
		os.Exit(1)
	}
	_ = log.Sync()
}

// loadConfig starts from the defaults or the preset. A config file replaces
// either, and flags override only when set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("capacitance") {
		cfg.Circuit.Capacitance = capacitance
	}
	if flags.Changed("inductance") {
		cfg.Circuit.Inductance = inductance
	}
	if flags.Changed("voltage") {
		cfg.Circuit.Voltage = voltage
	}
	if flags.Changed("charges") {
		cfg.Circuit.Charges = charges
	}
	if flags.Changed("charge-value") {
		cfg.Circuit.ChargeValue = chargeValue
	}
	if flags.Changed("dt") {
		cfg.Run.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Run.Duration = duration
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Lookup("periods") != nil && periods > 0 {
		cfg.Plot.Periods = periods
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setup returns the effective config and the circuit it describes.
func setup(cmd *cobra.Command) (*config.Config, *circuit.Circuit, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	c, err := circuit.New(cfg.Params())
	if err != nil {
		return nil, nil, err
	}
	return cfg, c, nil
}
