package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"text/tabwriter"
	"time"

	"github.com/san-kum/vibfd/internal/automation"
	"github.com/san-kum/vibfd/internal/config"
	"github.com/san-kum/vibfd/internal/decay"
	"github.com/san-kum/vibfd/internal/experiment"
	"github.com/san-kum/vibfd/internal/export"
	"github.com/san-kum/vibfd/internal/fdiff"
	"github.com/san-kum/vibfd/internal/storage"
	"github.com/san-kum/vibfd/internal/vib"
	"github.com/san-kum/vibfd/internal/viz"
	"github.com/spf13/cobra"
)

// resolveConfig layers defaults, then a config file or preset, then the
// positional scheme and any flags set on the command line.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	scheme := cfg.Scheme
	if len(args) > 0 {
		scheme = args[0]
	}

	switch {
	case configFile != "":
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
		log.Printf("loaded config from %s", configFile)
	case preset != "":
		p := config.GetPreset(scheme, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for scheme %s", preset, scheme)
		}
		cfg = p
		log.Printf("using preset %s/%s", scheme, preset)
	}

	if len(args) > 0 {
		cfg.Scheme = args[0]
	}

	flags := cmd.Flags()
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("time") {
		cfg.EndTime = endTime
	}
	if flags.Changed("freq") {
		cfg.Frequency = frequency
	}
	if flags.Changed("initial") {
		cfg.Initial = initial
	}
	if flags.Changed("trials") {
		cfg.Trials = trials
	}
	if flags.Changed("tol") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("parallel") {
		cfg.Parallel = parallel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log.Printf("config: %+v", *cfg)
	return cfg, nil
}

func setupExperiment(cmd *cobra.Command, args []string) (*config.Config, *experiment.Experiment, error) {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return nil, nil, err
	}
	exp := experiment.New(*cfg)
	if err := exp.Setup(experiment.NewRegistry()); err != nil {
		return nil, nil, err
	}
	return cfg, exp, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, exp, err := setupExperiment(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	sol, err := exp.Solve()
	if err != nil {
		return err
	}
	log.Printf("solved %s on %d steps in %v", cfg.Scheme, cfg.Steps, time.Since(start))

	out := cmd.OutOrStdout()
	s := exp.GetSolver()
	fmt.Fprintln(out, viz.RenderSolution(sol.Scheme, s.Nt(), s.Dt(), sol.L2Error))
	fmt.Fprintf(out, "energy drift %.3e\n", sol.EnergyDrift)
	if !noPlot {
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.PlotSolution(sol.Scheme, sol.U, sol.Exact))
	}

	if jsonPath != "" {
		if err := storage.ExportJSON(jsonPath, sol); err != nil {
			return err
		}
	}
	if exportPath != "" {
		if err := export.SolutionChart(exportPath, sol); err != nil {
			return err
		}
		log.Printf("wrote chart to %s", exportPath)
	}
	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.SaveSolution(*cfg, s.Order(), sol)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "saved run %s\n", runID)
	}
	return nil
}

func runRates(cmd *cobra.Command, args []string) error {
	cfg, exp, err := setupExperiment(cmd, args)
	if err != nil {
		return err
	}

	start := time.Now()
	report, err := exp.Rates(context.Background())
	if err != nil {
		return err
	}
	log.Printf("%d trials of %s from Nt=%d in %v (parallel=%v)",
		cfg.Trials, cfg.Scheme, cfg.Steps, time.Since(start), cfg.Parallel)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.RenderReport(report, cfg.Tolerance))
	if !noPlot {
		if plot := viz.PlotConvergence(report.Scheme, report.Errors); plot != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, plot)
		}
	}

	if jsonPath != "" {
		if err := storage.ExportJSON(jsonPath, report); err != nil {
			return err
		}
	}
	if exportPath != "" {
		if err := export.ConvergenceChart(exportPath, report); err != nil {
			return err
		}
		log.Printf("wrote chart to %s", exportPath)
	}
	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.SaveRates(*cfg, report)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "saved run %s\n", runID)
	}

	if strict {
		return exp.Verify(report)
	}
	return nil
}

func runExplore(cmd *cobra.Command, args []string) error {
	cfg, exp, err := setupExperiment(cmd, args)
	if err != nil {
		return err
	}
	if cfg.Steps > viz.MaxExplorerSteps {
		return fmt.Errorf("explorer supports at most %d steps: %w", viz.MaxExplorerSteps, vib.ErrInvalidArgument)
	}
	return viz.RunExplorer(exp.GetSolver(), cfg.Tolerance)
}

func runStudy(cmd *cobra.Command, args []string) error {
	study, err := automation.LoadStudy(args[0])
	if err != nil {
		return err
	}
	log.Printf("study %q: %d runs", study.Name, len(study.Runs))

	var st *storage.Store
	if save {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	results, err := automation.RunStudy(context.Background(), study, experiment.NewRegistry(),
		func(done, total int, label string) {
			log.Printf("run %d/%d: %s", done+1, total, label)
		})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN\tSCHEME\tSTEPS\tTRIALS\tORDERS\tRESULT")
	for _, res := range results {
		orders := "-"
		if res.Report != nil {
			orders = fmt.Sprintf("%.4f", res.Report.Orders)
		}
		result := "PASS"
		if !res.Passed() {
			result = "FAIL: " + res.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			res.Name, res.Config.Scheme, res.Config.Steps, res.Config.Trials, orders, result)

		if st != nil && res.Report != nil {
			runID, err := st.SaveRates(res.Config, res.Report)
			if err != nil {
				return err
			}
			log.Printf("saved %s as %s", res.Name, runID)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	passed, failed := automation.Summary(results)
	fmt.Fprintf(out, "\n%d passed, %d failed\n", passed, failed)
	if strict && failed > 0 {
		return fmt.Errorf("study %q: %d of %d runs failed", study.Name, failed, len(results))
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sweep := &automation.FrequencySweep{
		Scheme:  cfg.Scheme,
		Steps:   cfg.Steps,
		EndTime: cfg.EndTime,
		Initial: cfg.Initial,
		Trials:  cfg.Trials,
		FreqMin: freqMin,
		FreqMax: freqMax,
		Points:  sweepPoints,
		Workers: workers,
	}

	start := time.Now()
	results, err := automation.RunSweep(context.Background(), sweep, experiment.NewRegistry(), nil)
	if err != nil {
		return err
	}
	log.Printf("swept %d frequencies of %s in %v", len(results), cfg.Scheme, time.Since(start))

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "W\tFINEST DT\tERROR\tMEAN ORDER")
	errs := make([]float64, 0, len(results))
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(w, "%.4f\t-\t-\t%v\n", res.Frequency, res.Err)
			continue
		}
		fmt.Fprintf(w, "%.4f\t%.4e\t%.4e\t%.4f\n", res.Frequency, res.FinestStep, res.FinalError, res.MeanOrder())
		if res.FinalError > 0 {
			errs = append(errs, math.Log10(res.FinalError))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if !noPlot && len(errs) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.PlotSeries(fmt.Sprintf("%s: log10(error) by frequency", cfg.Scheme), errs))
	}
	if exportPath != "" {
		if err := export.SweepChart(exportPath, cfg.Scheme, results); err != nil {
			return err
		}
		log.Printf("wrote chart to %s", exportPath)
	}
	return nil
}

func listSchemes(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCHEME\tORDER\tPRESETS\tDESCRIPTION")
	for _, name := range registry.ListSchemes() {
		scheme, err := registry.GetScheme(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%v\t%s\n", name, scheme.Order(), config.ListPresets(name), registry.Describe(name))
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tKIND\tSCHEME\tTIME\tSTEPS\tT\tRESULT")
	for _, run := range runs {
		result := fmt.Sprintf("l2=%.3e", run.L2Error)
		if run.Kind == storage.KindRates {
			result = fmt.Sprintf("orders=%.4f", run.Orders)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%.4f\t%s\n",
			run.ID,
			run.Kind,
			run.Scheme,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Steps,
			run.Config.EndTime,
			result,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch meta.Kind {
	case storage.KindSolution:
		sol, err := st.LoadSolution(runID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "run %s (%s)\n\n", meta.ID, meta.Timestamp.Format(time.RFC3339))
		fmt.Fprintln(out, viz.PlotSolution(sol.Scheme, sol.U, sol.Exact))
		fmt.Fprintf(out, "\nL2 error %.6e\n", sol.L2Error)
	case storage.KindRates:
		report, err := st.LoadRates(runID)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, viz.RenderReport(report, meta.Config.Tolerance))
		if plot := viz.PlotConvergence(report.Scheme, report.Errors); plot != "" {
			fmt.Fprintln(out)
			fmt.Fprintln(out, plot)
		}
	default:
		return fmt.Errorf("run %s has unknown kind %q", runID, meta.Kind)
	}
	return nil
}

func runDecay(cmd *cobra.Command, args []string) error {
	res, err := decay.Solve(decayI, decayA, decayT, decayDt, decayTheta)
	if err != nil {
		return err
	}
	l2, err := res.Error(decayI, decayA)
	if err != nil {
		return err
	}
	ue := decay.Exact(res.T, decayI, decayA)

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tT\tU\tEXACT")
	for n := range res.U {
		fmt.Fprintf(w, "%d\t%.4f\t%.6e\t%.6e\n", n, res.T[n], res.U[n], ue[n])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	g := decay.AmplificationFactor(decayTheta, decayA, decayDt)
	fmt.Fprintf(out, "\ntheta=%g dt=%g amplification=%.6f exact=%.6f L2 error=%.6e\n",
		decayTheta, decayDt, g, math.Exp(-decayA*decayDt), l2)
	if !noPlot {
		fmt.Fprintln(out)
		fmt.Fprintln(out, viz.PlotSolution(fmt.Sprintf("theta=%g", decayTheta), res.U, ue))
	}
	return nil
}

func runDiff(cmd *cobra.Command, args []string) error {
	var (
		f         fdiff.Func
		df        func(float64) float64
		tEnd      = 1.0
		exactDiff = true
	)
	switch diffFunc {
	case "square":
		f = fdiff.Lift(func(t float64) float64 { return t * t })
		df = func(t float64) float64 { return 2 * t }
	case "cos":
		f = fdiff.Lift(math.Cos)
		df = func(t float64) float64 { return -math.Sin(t) }
	case "piecewise":
		f = fdiff.PiecewiseDecay
		tEnd = 4
		exactDiff = false
	default:
		return fmt.Errorf("unknown function %q: %w", diffFunc, vib.ErrInvalidArgument)
	}

	if diffPoints < 2 {
		return fmt.Errorf("need at least 2 points, got %d: %w", diffPoints, vib.ErrInvalidArgument)
	}
	m, err := vib.NewMesh(diffPoints-1, tEnd)
	if err != nil {
		return err
	}
	u, err := fdiff.SampleMesh(f, m)
	if err != nil {
		return err
	}
	d, err := fdiff.Differentiate(fdiff.Method(diffMethod), u, m.Dt())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "T\tU\tDU\tEXACT")
	for i := range u {
		exact := "-"
		if exactDiff {
			exact = fmt.Sprintf("%.6f", df(m.At(i)))
		}
		fmt.Fprintf(w, "%.4f\t%.6f\t%.6f\t%s\n", m.At(i), u[i], d[i], exact)
	}
	return w.Flush()
}
