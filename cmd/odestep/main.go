package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/san-kum/odestep/internal/config"
	"github.com/san-kum/odestep/internal/convergence"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/experiment"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/logger"
	"github.com/san-kum/odestep/internal/metrics"
	"github.com/san-kum/odestep/internal/report"
	"github.com/san-kum/odestep/internal/sim"
	"github.com/san-kum/odestep/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dataDir  string
	logLevel string

	method     string
	dt         float64
	steps      int
	t0         float64
	initState  []float64
	params     map[string]string
	configFile string
	preset     string
	save       bool

	component int
	htmlOut   string

	methodNames []string
	span        float64
	ns          []int
	workers     int
	tolerance   float64
	tail        int

	log logger.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "odestep",
		Short:         "fixed-step explicit ODE integration lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logger.NewLogger(logLevel, "odestep")
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".odestep", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (DEBUG, INFO, WARNING, ERROR)")

	runCmd := &cobra.Command{
		Use:   "run [model]",
		Short: "integrate a model and store the trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&save, "save", true, "store the run under --data")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&component, "component", -1, "state component to plot (-1 for all)")
	plotCmd.Flags().StringVar(&htmlOut, "html", "", "also write an HTML chart to this path")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	convergeCmd := &cobra.Command{
		Use:   "converge [model]",
		Short: "measure the observed order of each method against the closed-form solution",
		Args:  cobra.ExactArgs(1),
		RunE:  runConvergence,
	}
	convergeCmd.Flags().StringSliceVar(&methodNames, "methods", []string{"euler", "euler2", "rk2", "rk4"}, "methods to analyze")
	convergeCmd.Flags().Float64Var(&span, "span", config.DefaultSpan, "integration span")
	convergeCmd.Flags().IntSliceVar(&ns, "ns", []int{64, 128, 256, 512, 1024}, "step counts, strictly increasing")
	convergeCmd.Flags().Float64SliceVar(&initState, "state", nil, "initial state (default depends on model)")
	convergeCmd.Flags().Float64Var(&t0, "t0", 0, "initial time")
	convergeCmd.Flags().StringToStringVar(&params, "param", nil, "model parameters (name=value)")
	convergeCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 = GOMAXPROCS)")
	convergeCmd.Flags().StringVar(&htmlOut, "html", "", "write a log-log HTML chart to this path")
	convergeCmd.Flags().Float64Var(&tolerance, "tol", 0.3, "accepted deviation from the nominal order")
	convergeCmd.Flags().IntVar(&tail, "tail", 2, "number of trailing observed orders to check")
	convergeCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	compareCmd := &cobra.Command{
		Use:   "compare [model] [method1] [method2] ...",
		Short: "compare methods on the same model",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareMethods,
	}
	addRunFlags(compareCmd)

	benchCmd := &cobra.Command{
		Use:   "bench [model]",
		Short: "time every method on a model",
		Args:  cobra.ExactArgs(1),
		RunE:  benchModel,
	}
	addRunFlags(benchCmd)

	methodsCmd := &cobra.Command{
		Use:   "methods",
		Short: "list integration methods",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(report.MethodsTable(integrators.Methods()))
		},
	}

	modelsCmd := &cobra.Command{
		Use:   "models",
		Short: "list models",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range experiment.NewRegistry().ListModels() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	initConfigCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.DefaultConfig()
			if preset != "" {
				p := config.GetPreset(cfg.Model, preset)
				if p == nil {
					return errors.Newf("unknown preset: %s (available: %v)", preset, config.ListPresets(cfg.Model))
				}
				cfg = p
			}
			return config.Save(args[0], cfg)
		},
	}
	initConfigCmd.Flags().StringVar(&preset, "preset", "", "start from a pendulum preset")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd, convergeCmd, compareCmd, benchCmd, methodsCmd, modelsCmd, presetsCmd, initConfigCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, report.Status(false, err.Error()))
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&method, "method", "rk4", "integration method")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "step size")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().Float64Var(&t0, "t0", 0, "initial time")
	cmd.Flags().Float64SliceVar(&initState, "state", nil, "initial state (default depends on model)")
	cmd.Flags().StringToStringVar(&params, "param", nil, "model parameters (name=value)")
}

// resolveConfig layers preset, config file and explicitly set flags, in that
// order, over the defaults for model.
func resolveConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Model = model

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, errors.Newf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load config")
		}
		if loaded.Model != "" && loaded.Model != model {
			log.Warningf("config file is for model %s, running %s", loaded.Model, model)
		}
		cfg = loaded
		cfg.Model = model
	}

	flags := cmd.Flags()
	if flags.Changed("method") {
		cfg.Method = method
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("t0") {
		cfg.T0 = t0
	}
	if flags.Changed("state") {
		cfg.InitState = initState
	}
	if flags.Changed("span") {
		cfg.Convergence.Span = span
	}
	if flags.Changed("ns") {
		cfg.Convergence.Ns = ns
	}
	if flags.Changed("methods") {
		cfg.Convergence.Methods = methodNames
	}
	if flags.Changed("workers") {
		cfg.Convergence.Workers = workers
	}
	if len(params) > 0 {
		if cfg.Params == nil {
			cfg.Params = make(map[string]float64)
		}
		for k, v := range params {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "param %s", k)
			}
			cfg.Params[k] = f
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	model := args[0]

	cfg, err := resolveConfig(cmd, model)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	exp, err := registry.Build(experiment.Config{
		Model:     model,
		Method:    cfg.Method,
		InitState: cfg.GetInitState(),
		T0:        cfg.T0,
		Dt:        cfg.Dt,
		Steps:     cfg.Steps,
		Params:    cfg.Params,
	})
	if err != nil {
		return err
	}
	exp.GetSimulator().SetLogger(logger.NewLogger(logLevel, "sim"))

	ctx, cancel := signalContext()
	defer cancel()

	log.Infof("running %s with %s: %d steps of dt=%g", model, cfg.Method, cfg.Steps, cfg.Dt)
	start := time.Now()
	result, runErr := exp.Run(ctx)
	elapsed := time.Since(start)
	if result == nil {
		return runErr
	}

	fields := []report.Field{
		{Label: "model", Value: model},
		{Label: "method", Value: cfg.Method},
		{Label: "samples", Value: strconv.Itoa(result.Trajectory.Len())},
		{Label: "evaluations", Value: strconv.Itoa(result.Evaluations)},
		{Label: "final t", Value: fmt.Sprintf("%.6g", result.Trajectory.Final().Time)},
		{Label: "final x", Value: fmt.Sprintf("%.6g", []float64(result.Trajectory.Final().State))},
		{Label: "elapsed", Value: elapsed.String()},
	}
	for _, m := range exp.Metrics() {
		if st, ok := m.(*metrics.Stability); ok {
			if at, escaped := st.FirstEscape(); escaped {
				fields = append(fields, report.Field{Label: "left bounds", Value: fmt.Sprintf("t=%.6g (max |x| %.3g)", at, st.Largest())})
			}
		}
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		meta := storage.RunMetadata{
			Model:       model,
			Method:      cfg.Method,
			T0:          cfg.T0,
			Dt:          cfg.Dt,
			Steps:       cfg.Steps,
			Evaluations: result.Evaluations,
			Params:      cfg.Params,
			Metrics:     result.Metrics,
		}
		if runErr != nil {
			meta.Error = runErr.Error()
		}
		runID, err := st.Save(meta, result.Trajectory)
		if err != nil {
			return err
		}
		fields = append([]report.Field{{Label: "run id", Value: runID}}, fields...)
	}

	fields = append(fields, report.MetricFields(result.Metrics)...)
	fmt.Println(report.Summary("simulation", fields))

	if runErr != nil {
		var simErr *dynamo.SimulationError
		if errors.As(runErr, &simErr) {
			log.Errorf("stopped at step %d stage %d (t=%g), last good state %v", simErr.Step, simErr.Stage, simErr.Time, []float64(simErr.State))
		}
		return runErr
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	fmt.Println(report.RunsTable(runs))
	return nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return errors.New("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s, method: %s\n", meta.Model, meta.Method)
	fmt.Printf("samples: %d\n\n", traj.Len())

	components := []int{component}
	if component < 0 {
		components = components[:0]
		maxPlots := 6
		for i := 0; i < traj.Dim() && i < maxPlots; i++ {
			components = append(components, i)
		}
	}

	for _, c := range components {
		graph, err := report.PlotComponent(traj, c, "")
		if err != nil {
			return err
		}
		fmt.Println(graph)
		fmt.Println()
	}

	if htmlOut != "" {
		return writeChart(htmlOut, report.NewTrajectoryChart(fmt.Sprintf("%s (%s)", meta.Model, meta.Method), traj))
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	traj, err := storage.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, traj)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, *meta, traj)
}

func runConvergence(cmd *cobra.Command, args []string) error {
	model := args[0]

	cfg, err := resolveConfig(cmd, model)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	analyzer := convergence.NewAnalyzer(cfg.Convergence.Workers, logger.NewLogger(logLevel, "convergence"))
	x0 := dynamo.State(cfg.GetInitState())

	ctx, cancel := signalContext()
	defer cancel()

	var reports []*convergence.Report
	failed := 0
	for _, name := range cfg.Convergence.Methods {
		m, err := integrators.ParseMethod(name)
		if err != nil {
			return err
		}
		study, err := registry.Study(model, cfg.Params, m, x0, cfg.T0, cfg.Convergence.Span, cfg.Convergence.Ns)
		if err != nil {
			return err
		}
		r, err := analyzer.Analyze(ctx, study)
		if err != nil {
			return err
		}
		reports = append(reports, r)

		fmt.Println(report.ConvergenceTable(r))
		if err := r.Check(float64(m.Order()), tolerance, tail); err != nil {
			failed++
			fmt.Println(report.Status(false, err.Error()))
		} else {
			fmt.Println(report.Status(true, fmt.Sprintf("%s converges at order %d", m, m.Order())))
		}
		fmt.Println()
	}

	fmt.Println(report.OrderSummaryTable(reports))

	if htmlOut != "" {
		if err := writeChart(htmlOut, report.NewConvergenceChart(reports)); err != nil {
			return err
		}
		log.Infof("wrote %s", htmlOut)
	}

	if failed > 0 {
		return errors.Newf("%d of %d methods missed their nominal order", failed, len(reports))
	}
	return nil
}

func compareMethods(cmd *cobra.Command, args []string) error {
	model := args[0]

	cfg, err := resolveConfig(cmd, model)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	sys, err := registry.GetModelWithParams(model, cfg.Params)
	if err != nil {
		return err
	}

	x0 := dynamo.State(cfg.GetInitState())
	jobs := make([]sim.Job, 0, len(args)-1)
	for _, name := range args[1:] {
		m, err := integrators.ParseMethod(name)
		if err != nil {
			return err
		}
		jobs = append(jobs, sim.Job{
			Method: m,
			X0:     x0,
			Config: sim.Config{T0: cfg.T0, Dt: cfg.Dt, Steps: cfg.Steps},
		})
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := sim.RunBatch(ctx, sys, jobs, 0)
	if err != nil {
		return err
	}

	ref, refErr := experiment.Reference(sys, x0, cfg.T0)

	header := table.Row{"method", "evaluations", "final x"}
	if refErr == nil {
		header = append(header, "max error")
	}
	rows := make([]table.Row, 0, len(results))
	trajs := make(map[string]*dynamo.Trajectory, len(results))
	for i, res := range results {
		row := table.Row{jobs[i].Method, res.Evaluations, fmt.Sprintf("%.6g", []float64(res.Trajectory.Final().State))}
		if refErr == nil {
			e, err := convergence.MaxError(res.Trajectory, ref)
			if err != nil {
				return err
			}
			row = append(row, fmt.Sprintf("%.3e", e))
		}
		rows = append(rows, row)
		trajs[jobs[i].Method.String()] = res.Trajectory
	}

	fmt.Println(report.Table(fmt.Sprintf("%s: %d steps of dt=%g", model, cfg.Steps, cfg.Dt), header, rows))

	graph, err := report.PlotCompare(trajs, 0)
	if err != nil {
		return err
	}
	fmt.Println(graph)
	return nil
}

func benchModel(cmd *cobra.Command, args []string) error {
	model := args[0]

	cfg, err := resolveConfig(cmd, model)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	sys, err := registry.GetModelWithParams(model, cfg.Params)
	if err != nil {
		return err
	}
	x0 := dynamo.State(cfg.GetInitState())

	rows := make([]table.Row, 0, len(integrators.Methods()))
	for _, m := range integrators.Methods() {
		start := time.Now()
		traj, err := sim.Integrate(context.Background(), m, sys, x0, cfg.T0, cfg.Dt, cfg.Steps)
		if err != nil {
			return err
		}
		elapsed := time.Since(start)

		stepsPerSec := float64(cfg.Steps) / elapsed.Seconds()
		rows = append(rows, table.Row{m, cfg.Steps, cfg.Steps * m.Stages(), elapsed, fmt.Sprintf("%.0f", stepsPerSec), traj.Final().Time})
	}

	fmt.Println(report.Table(fmt.Sprintf("benchmark %s", model),
		table.Row{"method", "steps", "evaluations", "time", "steps/sec", "final t"}, rows))
	return nil
}

func writeChart(path string, chart report.Renderer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return report.WriteHTML(f, chart)
}
