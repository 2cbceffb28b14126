package vib

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
)

// ConvergenceRates sets the mesh to n0 steps, then doubles it trials times,
// recording the step size and L2 error at each resolution. The solver is left
// on the finest mesh. If any trial fails the solver keeps its original mesh.
func (s *Solver) ConvergenceRates(trials, n0 int) (*Report, error) {
	meshes, err := refinementMeshes(trials, n0, s.params.T)
	if err != nil {
		return nil, err
	}

	errs := make([]float64, len(meshes))
	for i, m := range meshes {
		e, err := errorOn(s.scheme, s.params, m)
		if err != nil {
			return nil, fmt.Errorf("trial %d (Nt=%d): %w", i+1, m.Nt(), err)
		}
		errs[i] = e
	}

	report, err := newReport(s.scheme, meshes, errs)
	if err != nil {
		return nil, err
	}
	s.mesh = meshes[len(meshes)-1]
	return report, nil
}

// ConvergenceRatesParallel computes the same report as Solver.ConvergenceRates
// with every resolution evaluated concurrently. Each trial reads only its
// own Mesh.
func ConvergenceRatesParallel(ctx context.Context, scheme Scheme, p Params, trials, n0 int) (*Report, error) {
	if scheme == nil {
		return nil, fmt.Errorf("nil scheme: %w", ErrInvalidArgument)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if v, ok := scheme.(Validator); ok {
		if err := v.Validate(p); err != nil {
			return nil, err
		}
	}
	meshes, err := refinementMeshes(trials, n0, p.T)
	if err != nil {
		return nil, err
	}

	errs := make([]float64, len(meshes))
	g, ctx := errgroup.WithContext(ctx)
	for i, m := range meshes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e, err := errorOn(scheme, p, m)
			if err != nil {
				return fmt.Errorf("trial %d (Nt=%d): %w", i+1, m.Nt(), err)
			}
			errs[i] = e
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return newReport(scheme, meshes, errs)
}

// refinementMeshes returns the meshes with n0·2, n0·4, ..., n0·2^trials steps,
// each the Refine of the one before.
func refinementMeshes(trials, n0 int, T float64) ([]Mesh, error) {
	if trials <= 0 {
		return nil, fmt.Errorf("trials %d must be positive: %w", trials, ErrInvalidArgument)
	}
	if n0 <= 0 {
		return nil, fmt.Errorf("initial step count %d must be positive: %w", n0, ErrInvalidArgument)
	}
	if trials >= 31 || n0 > math.MaxInt32>>trials {
		return nil, fmt.Errorf("step count overflows after %d doublings of %d: %w", trials, n0, ErrInvalidArgument)
	}

	m, err := NewMesh(n0, T)
	if err != nil {
		return nil, err
	}
	meshes := make([]Mesh, trials)
	for i := range meshes {
		if m, err = m.Refine(); err != nil {
			return nil, err
		}
		meshes[i] = m
	}
	return meshes, nil
}

func newReport(scheme Scheme, meshes []Mesh, errs []float64) (*Report, error) {
	r := &Report{
		Scheme:        scheme.Name(),
		DeclaredOrder: scheme.Order(),
		StepCounts:    make([]int, len(meshes)),
		StepSizes:     make([]float64, len(meshes)),
		Errors:        errs,
	}
	for i, m := range meshes {
		r.StepCounts[i] = m.Nt()
		r.StepSizes[i] = m.Dt()
	}

	orders, err := EstimateOrders(r.StepSizes, r.Errors)
	if err != nil {
		return nil, err
	}
	r.Orders = orders
	return r, nil
}
