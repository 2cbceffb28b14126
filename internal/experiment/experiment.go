package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/vibfd/internal/config"
	"github.com/san-kum/vibfd/internal/metrics"
	"github.com/san-kum/vibfd/internal/vib"
)

// Solution is one evaluation of a scheme on a single mesh. EnergyDrift is
// the largest relative change of the discrete energy along the solution.
type Solution struct {
	Scheme      string    `json:"scheme"`
	Times       []float64 `json:"times"`
	U           []float64 `json:"u"`
	Exact       []float64 `json:"exact"`
	L2Error     float64   `json:"l2_error"`
	EnergyDrift float64   `json:"energy_drift"`
}

type Experiment struct {
	cfg    config.Config
	solver *vib.Solver
}

func New(cfg config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(r *Registry) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	s, err := r.NewSolver(e.cfg.Scheme, e.cfg.Steps, e.cfg.Params())
	if err != nil {
		return err
	}
	e.solver = s
	return nil
}

// Solve evaluates the scheme on the configured mesh.
func (e *Experiment) Solve() (*Solution, error) {
	if e.solver == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	u, err := e.solver.Solve()
	if err != nil {
		return nil, err
	}
	ue := e.solver.Exact()
	l2, err := vib.L2Error(u, ue, e.solver.Dt())
	if err != nil {
		return nil, err
	}
	drift, err := metrics.EnergyDrift(u, e.solver.Dt(), e.solver.Params().W)
	if err != nil {
		return nil, err
	}

	return &Solution{
		Scheme:      e.solver.Name(),
		Times:       e.solver.Times(),
		U:           u,
		Exact:       ue,
		L2Error:     l2,
		EnergyDrift: drift,
	}, nil
}

// Rates runs the convergence study starting from the configured step count.
func (e *Experiment) Rates(ctx context.Context) (*vib.Report, error) {
	if e.solver == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	if e.cfg.Parallel {
		return vib.ConvergenceRatesParallel(ctx, e.solver.Scheme(), e.solver.Params(), e.cfg.Trials, e.cfg.Steps)
	}
	return e.solver.ConvergenceRates(e.cfg.Trials, e.cfg.Steps)
}

// Verify reports whether the estimated orders match the declared order
// within the configured tolerance.
func (e *Experiment) Verify(report *vib.Report) error {
	if len(report.Orders) == 0 {
		return fmt.Errorf("%s: %d trials give no order estimate", report.Scheme, len(report.Errors))
	}
	if !report.Within(e.cfg.Tolerance) {
		return fmt.Errorf("%s: orders %v differ from declared order %d by more than %g",
			report.Scheme, report.Orders, report.DeclaredOrder, e.cfg.Tolerance)
	}
	return nil
}

// GetSolver returns the underlying solver.
func (e *Experiment) GetSolver() *vib.Solver {
	return e.solver
}
