package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/evolve-sim/evolve/internal/analysis"
	"github.com/evolve-sim/evolve/internal/config"
	"github.com/evolve-sim/evolve/internal/dynamo"
	"github.com/evolve-sim/evolve/internal/experiment"
	"github.com/evolve-sim/evolve/internal/schemes"
	"github.com/evolve-sim/evolve/internal/store"
	"github.com/evolve-sim/evolve/internal/timeseries"
	"github.com/evolve-sim/evolve/internal/viz"
)

var (
	schemeName string
	dt         float64
	duration   float64
	rtol       float64
	atol       float64
	interval   float64
	align      string
	outPath    string
	format     string
	plotComp   int
	configFile string
	delta      float64
	steps      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "evolve",
		Short: "time-integration engine for ODE/PDE systems",
	}

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and export or plot the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrajectory,
	}
	runCmd.Flags().StringVar(&schemeName, "scheme", "rk4", "stepping scheme")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size (initial step for adaptive schemes)")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().Float64Var(&rtol, "rtol", config.DefaultRTol, "relative tolerance (adaptive)")
	runCmd.Flags().Float64Var(&atol, "atol", config.DefaultATol, "absolute tolerance (adaptive)")
	runCmd.Flags().Float64Var(&interval, "interval", 0, "fixed output interval (0 = every step)")
	runCmd.Flags().StringVar(&align, "align", "exact", "interval alignment: exact or nearest")
	runCmd.Flags().StringVar(&outPath, "out", "", "output file path")
	runCmd.Flags().StringVar(&format, "format", "json", "output format: json or csv")
	runCmd.Flags().IntVar(&plotComp, "plot", -1, "plot a state component instead of exporting")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	liveCmd := &cobra.Command{
		Use:   "live [model]",
		Short: "watch a trajectory evolve in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&schemeName, "scheme", "rk4", "stepping scheme")
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	lyapCmd := &cobra.Command{
		Use:   "lyapunov [model]",
		Short: "estimate the largest Lyapunov exponent",
		Args:  cobra.ExactArgs(1),
		RunE:  runLyapunov,
	}
	lyapCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size")
	lyapCmd.Flags().IntVar(&steps, "steps", 100000, "number of steps")
	lyapCmd.Flags().Float64Var(&delta, "delta", 1e-8, "initial separation")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list available models and schemes",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := experiment.NewRegistry()
			fmt.Println("models: ", strings.Join(r.ListModels(), ", "))
			fmt.Println("schemes:", strings.Join(r.ListSchemes(), ", "))
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, lyapCmd, listCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig merges the optional config file with command-line flags;
// a flag set explicitly on the command line wins.
func buildConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.Default()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.Model = model
	if configFile == "" || cmd.Flags().Changed("scheme") {
		cfg.Scheme = schemeName
	}
	if configFile == "" || cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if configFile == "" || cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Lookup("rtol") != nil {
		if configFile == "" || cmd.Flags().Changed("rtol") {
			cfg.Adaptive.RTol = rtol
		}
		if configFile == "" || cmd.Flags().Changed("atol") {
			cfg.Adaptive.ATol = atol
		}
	}
	if cmd.Flags().Lookup("interval") != nil {
		if configFile == "" || cmd.Flags().Changed("interval") {
			cfg.Sampling.Interval = interval
		}
		if configFile == "" || cmd.Flags().Changed("align") {
			cfg.Sampling.Align = align
		}
	}
	return cfg, nil
}

func buildProducer(cfg *config.Config) (*timeseries.Producer, error) {
	registry := experiment.NewRegistry()
	model, x0, err := registry.GetModel(cfg.Model, cfg.Params)
	if err != nil {
		return nil, err
	}
	if len(cfg.InitState) > 0 {
		x0 = dynamo.State(cfg.InitState).Clone()
	}
	scheme, err := registry.GetScheme(cfg.Scheme, model, x0, cfg)
	if err != nil {
		return nil, err
	}

	opts := &timeseries.Options{Interval: cfg.Sampling.Interval}
	switch cfg.Sampling.Align {
	case "", "exact":
		opts.Align = timeseries.AlignExact
	case "nearest":
		opts.Align = timeseries.AlignNearest
	default:
		return nil, fmt.Errorf("unknown alignment: %s", cfg.Sampling.Align)
	}
	return timeseries.New(scheme, 0, x0, opts)
}

func runTrajectory(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	ts, err := buildProducer(cfg)
	if err != nil {
		return err
	}

	t0, x0 := ts.Checkpoint()
	run := &store.Run{
		Model:    cfg.Model,
		Scheme:   cfg.Scheme,
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Times:    []float64{t0},
		States:   [][]float64{x0},
	}
	for t := t0; t < cfg.Duration; {
		var x dynamo.State
		t, x, err = ts.Next()
		if err != nil {
			return err
		}
		run.Times = append(run.Times, t)
		run.States = append(run.States, x)
	}

	if plotComp >= 0 {
		chart, err := viz.PlotComponent(run.States, plotComp, 80, 16)
		if err != nil {
			return err
		}
		fmt.Println(chart)
		return nil
	}

	switch {
	case outPath == "":
		return store.ExportJSONStdout(run)
	case format == "csv":
		return store.ExportCSV(outPath, run)
	default:
		return store.ExportJSON(outPath, run)
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	ts, err := buildProducer(cfg)
	if err != nil {
		return err
	}
	return viz.RunLive(cfg.Model, ts)
}

func runLyapunov(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()
	model, x0, err := registry.GetModel(args[0], nil)
	if err != nil {
		return err
	}
	scheme, err := schemes.NewRK4(model, x0, dt)
	if err != nil {
		return err
	}
	lambda, err := analysis.LargestExponent(scheme, x0, delta, steps)
	if err != nil {
		return err
	}
	fmt.Printf("largest lyapunov exponent: %.6f\n", lambda)
	return nil
}
