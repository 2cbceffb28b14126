package automation

import (
	"context"
	"fmt"
	"math"
	"os"
	"runtime"

	"github.com/san-kum/vibfd/internal/config"
	"github.com/san-kum/vibfd/internal/experiment"
	"github.com/san-kum/vibfd/internal/vib"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

// Study is a scripted batch of convergence runs.
type Study struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Runs        []StudyRun `yaml:"runs"`
}

// StudyRun selects a scheme and, optionally, a preset. Set fields override
// the preset or the defaults, so an explicit zero or false still applies.
type StudyRun struct {
	Name      string   `yaml:"name"`
	Scheme    string   `yaml:"scheme"`
	Preset    string   `yaml:"preset"`
	Steps     *int     `yaml:"steps"`
	EndTime   *float64 `yaml:"end_time"`
	Frequency *float64 `yaml:"frequency"`
	Initial   *float64 `yaml:"initial"`
	Trials    *int     `yaml:"trials"`
	Tolerance *float64 `yaml:"tolerance"`
	Parallel  *bool    `yaml:"parallel"`
}

// StudyResult is the outcome of one run. Err holds a failed verification
// as well as a failed solve; only configuration errors abort the study.
type StudyResult struct {
	Name   string
	Config config.Config
	Report *vib.Report
	Err    error
}

func (r StudyResult) Passed() bool { return r.Err == nil }

// LoadStudy loads a study from a YAML file
func LoadStudy(path string) (*Study, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var study Study
	if err := yaml.Unmarshal(data, &study); err != nil {
		return nil, err
	}
	if len(study.Runs) == 0 {
		return nil, fmt.Errorf("study %q has no runs: %w", study.Name, vib.ErrInvalidArgument)
	}

	return &study, nil
}

// Resolve builds the configuration for the run.
func (r StudyRun) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if r.Scheme != "" {
		cfg.Scheme = r.Scheme
	}
	if r.Preset != "" {
		p := config.GetPreset(cfg.Scheme, r.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q for scheme %s: %w", r.Preset, cfg.Scheme, vib.ErrInvalidArgument)
		}
		cfg = p
	}

	if r.Steps != nil {
		cfg.Steps = *r.Steps
	}
	if r.EndTime != nil {
		cfg.EndTime = *r.EndTime
	}
	if r.Frequency != nil {
		cfg.Frequency = *r.Frequency
	}
	if r.Initial != nil {
		cfg.Initial = *r.Initial
	}
	if r.Trials != nil {
		cfg.Trials = *r.Trials
	}
	if r.Tolerance != nil {
		cfg.Tolerance = *r.Tolerance
	}
	if r.Parallel != nil {
		cfg.Parallel = *r.Parallel
	}
	return cfg, cfg.Validate()
}

func (r StudyRun) label(i int) string {
	if r.Name != "" {
		return r.Name
	}
	if r.Preset != "" {
		scheme := r.Scheme
		if scheme == "" {
			scheme = config.DefaultScheme
		}
		return scheme + "/" + r.Preset
	}
	return fmt.Sprintf("run-%d", i+1)
}

// Progress is called before each run or sweep point starts. RunSweep may
// call it from several goroutines.
type Progress func(done, total int, label string)

// RunStudy executes all runs in order and verifies each report against the
// run's tolerance.
func RunStudy(ctx context.Context, study *Study, registry *experiment.Registry, progress Progress) ([]StudyResult, error) {
	results := make([]StudyResult, 0, len(study.Runs))

	for i, run := range study.Runs {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		label := run.label(i)
		if progress != nil {
			progress(i, len(study.Runs), label)
		}

		cfg, err := run.Resolve()
		if err != nil {
			return results, fmt.Errorf("run %s: %w", label, err)
		}

		exp := experiment.New(*cfg)
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("run %s setup: %w", label, err)
		}

		res := StudyResult{Name: label, Config: *cfg}
		report, err := exp.Rates(ctx)
		if err != nil {
			res.Err = err
		} else {
			res.Report = report
			res.Err = exp.Verify(report)
		}
		results = append(results, res)
	}

	return results, nil
}

// Summary counts passed and failed runs.
func Summary(results []StudyResult) (passed, failed int) {
	for _, r := range results {
		if r.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return
}

// FrequencySweep runs a convergence study for each of Points evenly spaced
// angular frequencies in [FreqMin, FreqMax].
type FrequencySweep struct {
	Scheme  string
	Steps   int
	EndTime float64
	Initial float64
	Trials  int
	FreqMin float64
	FreqMax float64
	Points  int
	// Workers bounds the concurrent studies; 0 means GOMAXPROCS.
	Workers int
}

// SweepResult holds the study at one frequency. Err is set when the scheme
// cannot solve at that frequency, e.g. at a discrete resonance.
type SweepResult struct {
	Frequency  float64
	FinestStep float64
	FinalError float64
	Orders     []float64
	Err        error
}

// MeanOrder averages the estimated orders, NaN when there are none.
func (r SweepResult) MeanOrder() float64 {
	if len(r.Orders) == 0 {
		return math.NaN()
	}
	var sum float64
	for _, o := range r.Orders {
		sum += o
	}
	return sum / float64(len(r.Orders))
}

func (s *FrequencySweep) frequencies() ([]float64, error) {
	if s.Points <= 0 {
		return nil, fmt.Errorf("sweep needs at least one point, got %d: %w", s.Points, vib.ErrInvalidArgument)
	}
	if s.FreqMax < s.FreqMin {
		return nil, fmt.Errorf("sweep range [%g, %g] is empty: %w", s.FreqMin, s.FreqMax, vib.ErrInvalidArgument)
	}

	ws := make([]float64, s.Points)
	if s.Points == 1 {
		ws[0] = s.FreqMin
		return ws, nil
	}
	step := (s.FreqMax - s.FreqMin) / float64(s.Points-1)
	for i := range ws {
		ws[i] = s.FreqMin + float64(i)*step
	}
	ws[len(ws)-1] = s.FreqMax
	return ws, nil
}

// RunSweep executes the sweep. Points are evaluated concurrently; each owns
// its solver. Results are in frequency order.
func RunSweep(ctx context.Context, sweep *FrequencySweep, registry *experiment.Registry, progress Progress) ([]SweepResult, error) {
	ws, err := sweep.frequencies()
	if err != nil {
		return nil, err
	}
	scheme, err := registry.GetScheme(sweep.Scheme)
	if err != nil {
		return nil, err
	}
	if sweep.Trials <= 0 || sweep.Steps <= 0 {
		return nil, fmt.Errorf("sweep trials %d and steps %d must be positive: %w", sweep.Trials, sweep.Steps, vib.ErrInvalidArgument)
	}

	workers := sweep.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]SweepResult, len(ws))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, w := range ws {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if progress != nil {
				progress(i, len(ws), fmt.Sprintf("w=%.4f", w))
			}

			p := vib.Params{T: sweep.EndTime, W: w, I: sweep.Initial}
			res := SweepResult{Frequency: w}
			solver, err := vib.New(scheme, sweep.Steps, p)
			if err != nil {
				res.Err = err
				results[i] = res
				return nil
			}
			report, err := solver.ConvergenceRates(sweep.Trials, sweep.Steps)
			if err != nil {
				res.Err = err
				results[i] = res
				return nil
			}

			last := len(report.Errors) - 1
			res.FinestStep = report.StepSizes[last]
			res.FinalError = report.Errors[last]
			res.Orders = report.Orders
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
