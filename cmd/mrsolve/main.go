package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/mrsolve/internal/config"
	"github.com/san-kum/mrsolve/internal/integrators"
	"github.com/san-kum/mrsolve/internal/metrics"
	"github.com/san-kum/mrsolve/internal/multirate"
	"github.com/san-kum/mrsolve/internal/store"
	"github.com/san-kum/mrsolve/internal/systems"
	"github.com/san-kum/mrsolve/internal/viz"
)

var (
	method         string
	macroStep      float64
	tStart         float64
	tEnd           float64
	rtol           float64
	atol           float64
	maxSteps       int
	timescaleRatio float64
	macroSteps     int
	microSteps     int
	fastMethod     string
	slowMethod     string
	baseRatio      int
	levels         int
	initState      []float64
	configFile     string
	preset         string
	exportJSON     string
	exportCSV      string
	plotIndex      int
	plotWidth      int
	plotHeight     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mrsolve",
		Short: "multirate ODE solver for slow/fast partitioned systems",
	}

	runCmd := &cobra.Command{
		Use:   "run [system]",
		Short: "solve a system and print a summary",
		Args:  cobra.ExactArgs(1),
		RunE:  runSolve,
	}
	addSolveFlags(runCmd)
	runCmd.Flags().StringVar(&exportJSON, "export-json", "", "write trajectory to a JSON file")
	runCmd.Flags().StringVar(&exportCSV, "export-csv", "", "write trajectory to a CSV file")

	plotCmd := &cobra.Command{
		Use:   "plot [system]",
		Short: "solve a system and plot state components",
		Args:  cobra.ExactArgs(1),
		RunE:  runPlot,
	}
	addSolveFlags(plotCmd)
	plotCmd.Flags().IntVar(&plotIndex, "component", -1, "state component to plot (-1 = slow/fast overview)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 72, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 14, "plot height")

	compareCmd := &cobra.Command{
		Use:   "compare [system]",
		Short: "run all three methods on one system and tabulate costs",
		Args:  cobra.ExactArgs(1),
		RunE:  runCompare,
	}
	addSolveFlags(compareCmd)

	watchCmd := &cobra.Command{
		Use:   "watch [system]",
		Short: "solve a system with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runWatch,
	}
	addSolveFlags(watchCmd)

	exportCmd := &cobra.Command{
		Use:   "export [system]",
		Short: "solve a system and write the trajectory to disk",
		Args:  cobra.ExactArgs(1),
		RunE:  runExport,
	}
	addSolveFlags(exportCmd)
	exportCmd.Flags().StringVar(&exportJSON, "json", "", "JSON output path")
	exportCmd.Flags().StringVar(&exportCSV, "csv", "", "CSV output path")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list systems and their presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, plotCmd, compareCmd, watchCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addSolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&method, "method", "explicit-mrk", "method: explicit-mrk, compound-fast-slow, extrapolated")
	cmd.Flags().Float64Var(&macroStep, "macro-step", config.DefaultMacroStep, "macro step size")
	cmd.Flags().Float64Var(&tStart, "t-start", 0.0, "start time")
	cmd.Flags().Float64Var(&tEnd, "t-end", 1.0, "end time")
	cmd.Flags().Float64Var(&rtol, "rtol", config.DefaultRTol, "relative tolerance")
	cmd.Flags().Float64Var(&atol, "atol", config.DefaultATol, "absolute tolerance")
	cmd.Flags().IntVar(&maxSteps, "max-steps", config.DefaultMaxSteps, "macro step budget")
	cmd.Flags().Float64Var(&timescaleRatio, "timescale-ratio", 0, "fast/slow separation hint (diagnostics only)")
	cmd.Flags().IntVar(&macroSteps, "macro-steps", 4, "macro sub-steps per interval (explicit-mrk)")
	cmd.Flags().IntVar(&microSteps, "micro-steps", 25, "micro steps per macro sub-step (explicit-mrk)")
	cmd.Flags().StringVar(&fastMethod, "fast-method", "rk4", "fast base method (compound-fast-slow)")
	cmd.Flags().StringVar(&slowMethod, "slow-method", "rk4", "slow base method (compound-fast-slow)")
	cmd.Flags().IntVar(&baseRatio, "base-ratio", 5, "base micro-step ratio (extrapolated)")
	cmd.Flags().IntVar(&levels, "levels", 2, "extrapolation levels (extrapolated)")
	cmd.Flags().Float64SliceVar(&initState, "init", nil, "initial state (slow then fast; default per system)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers defaults, then preset or config file, then any
// flag the user set explicitly.
func buildConfig(cmd *cobra.Command, system string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(system, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for system %q (have: %s)",
				preset, system, strings.Join(config.ListPresets(system), ", "))
		}
		c := *p
		cfg = &c
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.System = system
	if cmd.Flags().Changed("method") {
		cfg.Method = method
	}
	if cmd.Flags().Changed("macro-step") {
		cfg.MacroStep = macroStep
	}
	if cmd.Flags().Changed("t-start") {
		cfg.TStart = tStart
	}
	if cmd.Flags().Changed("t-end") {
		cfg.TEnd = tEnd
	}
	if cmd.Flags().Changed("rtol") {
		cfg.RTol = rtol
	}
	if cmd.Flags().Changed("atol") {
		cfg.ATol = atol
	}
	if cmd.Flags().Changed("max-steps") {
		cfg.MaxSteps = maxSteps
	}
	if cmd.Flags().Changed("timescale-ratio") {
		cfg.TimescaleRatio = timescaleRatio
	}
	if cmd.Flags().Changed("macro-steps") {
		cfg.MethodParams.MacroSteps = macroSteps
	}
	if cmd.Flags().Changed("micro-steps") {
		cfg.MethodParams.MicroSteps = microSteps
	}
	if cmd.Flags().Changed("fast-method") {
		cfg.MethodParams.FastMethod = fastMethod
	}
	if cmd.Flags().Changed("slow-method") {
		cfg.MethodParams.SlowMethod = slowMethod
	}
	if cmd.Flags().Changed("base-ratio") {
		cfg.MethodParams.BaseRatio = baseRatio
	}
	if cmd.Flags().Changed("levels") {
		cfg.MethodParams.Levels = levels
	}
	if cmd.Flags().Changed("init") {
		cfg.InitState = initState
	}
	return cfg, nil
}

func setup(cmd *cobra.Command, system string) (*config.Config, systems.Model, *multirate.Solver, multirate.State, error) {
	cfg, err := buildConfig(cmd, system)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	model, err := systems.New(cfg.System)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	opts, err := cfg.Options()
	if err != nil {
		return nil, nil, nil, nil, err
	}
	solver, err := multirate.NewSolver(opts)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	y0 := model.DefaultState()
	if len(cfg.InitState) > 0 {
		y0 = multirate.State(cfg.InitState).Clone()
	}

	if _, ok := model.(interface {
		TotalMass(multirate.State) float64
	}); ok {
		solver.AddMetric(metrics.NewMassDrift())
	}
	if ham, ok := multirate.System(model).(multirate.Hamiltonian); ok {
		solver.AddMetric(metrics.NewEnergyDrift(ham))
	}

	return cfg, model, solver, y0, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, model, solver, y0, err := setup(cmd, args[0])
	if err != nil {
		return err
	}

	result, err := solver.Solve(context.Background(), model, cfg.TStart, cfg.TEnd, y0)
	if err != nil {
		return err
	}

	printSummary(cfg, result)

	if exportJSON != "" {
		if err := store.ExportJSON(exportJSON, cfg.System, cfg.Method, cfg.MacroStep, result); err != nil {
			return err
		}
		fmt.Printf("trajectory written to %s\n", exportJSON)
	}
	if exportCSV != "" {
		if err := store.ExportCSV(exportCSV, result); err != nil {
			return err
		}
		fmt.Printf("trajectory written to %s\n", exportCSV)
	}
	return nil
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportJSON == "" && exportCSV == "" {
		return fmt.Errorf("export needs --json and/or --csv")
	}

	cfg, model, solver, y0, err := setup(cmd, args[0])
	if err != nil {
		return err
	}

	result, err := solver.Solve(context.Background(), model, cfg.TStart, cfg.TEnd, y0)
	if err != nil {
		return err
	}

	if exportJSON != "" {
		if err := store.ExportJSON(exportJSON, cfg.System, cfg.Method, cfg.MacroStep, result); err != nil {
			return err
		}
		fmt.Printf("trajectory written to %s\n", exportJSON)
	}
	if exportCSV != "" {
		if err := store.ExportCSV(exportCSV, result); err != nil {
			return err
		}
		fmt.Printf("trajectory written to %s\n", exportCSV)
	}
	return nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, model, solver, y0, err := setup(cmd, args[0])
	if err != nil {
		return err
	}

	result, err := solver.Solve(context.Background(), model, cfg.TStart, cfg.TEnd, y0)
	if err != nil {
		return err
	}

	var graph string
	if plotIndex < 0 {
		graph, err = viz.PlotPartitions(result, model.SlowDim(), plotWidth, plotHeight)
	} else {
		graph, err = viz.Plot(result, plotIndex, plotWidth, plotHeight,
			fmt.Sprintf("%s y%d", cfg.System, plotIndex))
	}
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, model, _, y0, err := setup(cmd, args[0])
	if err != nil {
		return err
	}

	methods := []multirate.Method{
		multirate.ExplicitMRK{MacroSteps: cfg.MethodParams.MacroSteps, MicroSteps: cfg.MethodParams.MicroSteps},
		multirate.CompoundFastSlow{Fast: integrators.NewRK4(), Slow: integrators.NewRK4()},
		multirate.Extrapolated{BaseRatio: cfg.MethodParams.BaseRatio, Levels: cfg.MethodParams.Levels},
	}

	opts, err := cfg.Options()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "method\tsteps\trhs evals\telapsed\tstatus")
	for _, m := range methods {
		opts.Method = m
		solver, err := multirate.NewSolver(opts)
		if err != nil {
			return err
		}
		result, err := solver.Solve(context.Background(), model, cfg.TStart, cfg.TEnd, y0)
		status := "ok"
		if err != nil {
			status = err.Error()
		}
		if result != nil {
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", m.Name(), result.Steps, result.Evals, result.Elapsed, status)
		} else {
			fmt.Fprintf(w, "%s\t-\t-\t-\t%s\n", m.Name(), status)
		}
	}
	return w.Flush()
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, model, solver, y0, err := setup(cmd, args[0])
	if err != nil {
		return err
	}

	obs := viz.NewStreamObserver()
	solver.AddObserver(obs)

	p := tea.NewProgram(viz.NewModel(cfg.System, model.SlowDim(), obs))

	go func() {
		_, solveErr := solver.Solve(context.Background(), model, cfg.TStart, cfg.TEnd, y0)
		obs.Close()
		p.Send(viz.DoneMsg{Err: solveErr})
	}()

	_, err = p.Run()
	return err
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "system\tpresets")
	for _, name := range systems.Names() {
		fmt.Fprintf(w, "%s\t%s\n", name, strings.Join(config.ListPresets(name), ", "))
	}
	return w.Flush()
}

func printSummary(cfg *config.Config, result *multirate.Result) {
	tLast, yLast := result.Last()

	fmt.Printf("%s / %s\n", cfg.System, cfg.Method)
	if cfg.TimescaleRatio > 0 {
		fmt.Printf("  timescale ratio hint: %.1f\n", cfg.TimescaleRatio)
	}
	fmt.Printf("  steps: %d  rhs evals: %d  elapsed: %s\n", result.Steps, result.Evals, result.Elapsed)
	fmt.Printf("  final t: %.6g\n", tLast)
	fmt.Printf("  final state: %v\n", []float64(yLast))
	for name, value := range result.Metrics {
		fmt.Printf("  %s: %.3e\n", name, value)
	}
}
