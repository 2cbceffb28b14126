package main

import (
	"io"
	"log"
	"os"

	"github.com/san-kum/vibfd/internal/config"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool
	// study parameters, overriding the config file or preset
	steps      int
	endTime    float64
	frequency  float64
	initial    float64
	trials     int
	tolerance  float64
	parallel   bool
	configFile string
	preset     string
	// output
	save       bool
	jsonPath   string
	exportPath string
	noPlot     bool
	strict     bool
	// sweep
	freqMin     float64
	freqMax     float64
	sweepPoints int
	workers     int
	// decay
	decayA     float64
	decayI     float64
	decayT     float64
	decayDt    float64
	decayTheta float64
	// diff
	diffMethod string
	diffFunc   string
	diffPoints int
)

// main registers the vibfd commands and exits with status 1 if the selected
// command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "vibfd",
		Short:        "finite-difference lab for the vibration equation",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.SetFlags(0)
			log.SetPrefix("vibfd: ")
			if verbose {
				log.SetOutput(cmd.ErrOrStderr())
			} else {
				log.SetOutput(io.Discard)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".vibfd", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log diagnostics to stderr")

	solveCmd := &cobra.Command{
		Use:   "solve [scheme]",
		Short: "solve on one mesh and compare with the exact solution",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSolve,
	}
	addStudyFlags(solveCmd)
	solveCmd.Flags().BoolVar(&save, "save", false, "store the run in the data directory")
	solveCmd.Flags().StringVar(&jsonPath, "json", "", "write the solution as JSON to a file (- for stdout)")
	solveCmd.Flags().StringVar(&exportPath, "export", "", "write a chart to a .svg, .png or .pdf file")
	solveCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the terminal plot")

	ratesCmd := &cobra.Command{
		Use:   "rates [scheme]",
		Short: "estimate the convergence order by repeated mesh doubling",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runRates,
	}
	addStudyFlags(ratesCmd)
	ratesCmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "number of mesh doublings")
	ratesCmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "allowed deviation from the declared order")
	ratesCmd.Flags().BoolVar(&parallel, "parallel", false, "evaluate resolutions concurrently")
	ratesCmd.Flags().BoolVar(&save, "save", false, "store the report in the data directory")
	ratesCmd.Flags().StringVar(&jsonPath, "json", "", "write the report as JSON to a file (- for stdout)")
	ratesCmd.Flags().StringVar(&exportPath, "export", "", "write a log-log chart to a .svg, .png or .pdf file")
	ratesCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the terminal plot")
	ratesCmd.Flags().BoolVar(&strict, "strict", false, "fail when an order is outside the tolerance")

	exploreCmd := &cobra.Command{
		Use:   "explore [scheme]",
		Short: "refine and coarsen a mesh interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runExplore,
	}
	addStudyFlags(exploreCmd)
	exploreCmd.Flags().Float64Var(&tolerance, "tol", config.DefaultTolerance, "allowed deviation from the declared order")

	studyCmd := &cobra.Command{
		Use:   "study [file]",
		Short: "run a batch of convergence studies from a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  runStudy,
	}
	studyCmd.Flags().BoolVar(&save, "save", false, "store every report in the data directory")
	studyCmd.Flags().BoolVar(&strict, "strict", false, "fail when any run fails")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scheme]",
		Short: "estimate the convergence order over a range of frequencies",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addStudyFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&trials, "trials", config.DefaultTrials, "number of mesh doublings per frequency")
	sweepCmd.Flags().Float64Var(&freqMin, "wmin", 0.1, "lowest angular frequency")
	sweepCmd.Flags().Float64Var(&freqMax, "wmax", 2, "highest angular frequency")
	sweepCmd.Flags().IntVar(&sweepPoints, "points", 8, "number of frequencies")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent studies (0 uses GOMAXPROCS)")
	sweepCmd.Flags().StringVar(&exportPath, "export", "", "write a chart to a .svg, .png or .pdf file")
	sweepCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the terminal plot")

	schemesCmd := &cobra.Command{
		Use:   "schemes",
		Short: "list schemes and their presets",
		RunE:  listSchemes,
	}

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "replot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	decayCmd := &cobra.Command{
		Use:   "decay",
		Short: "solve u' = -a u with the theta scheme",
		RunE:  runDecay,
	}
	decayCmd.Flags().Float64Var(&decayA, "a", 2, "decay rate")
	decayCmd.Flags().Float64Var(&decayI, "I", 1, "initial value")
	decayCmd.Flags().Float64Var(&decayT, "T", 4, "end time")
	decayCmd.Flags().Float64Var(&decayDt, "dt", 0.1, "time step")
	decayCmd.Flags().Float64Var(&decayTheta, "theta", 0.5, "0 forward Euler, 0.5 Crank-Nicolson, 1 backward Euler")
	decayCmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the terminal plot")

	diffCmd := &cobra.Command{
		Use:   "diff",
		Short: "differentiate a sampled function with finite differences",
		RunE:  runDiff,
	}
	diffCmd.Flags().StringVar(&diffMethod, "method", "central", "central, forward or backward")
	diffCmd.Flags().StringVar(&diffFunc, "func", "square", "square, cos or piecewise")
	diffCmd.Flags().IntVar(&diffPoints, "points", 10, "number of sample points on [0, 1] (piecewise: [0, 4])")

	rootCmd.AddCommand(solveCmd, ratesCmd, exploreCmd, studyCmd, sweepCmd, schemesCmd, runsCmd, showCmd, decayCmd, diffCmd)
	return rootCmd
}

func addStudyFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of time steps (initial count for rates)")
	cmd.Flags().Float64Var(&endTime, "time", config.DefaultEndTime, "end time T")
	cmd.Flags().Float64Var(&frequency, "freq", config.DefaultFrequency, "angular frequency w")
	cmd.Flags().Float64Var(&initial, "initial", config.DefaultInitial, "initial displacement I")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}
