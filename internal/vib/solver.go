package vib

import (
	"fmt"
)

// Solver binds a Scheme to fixed Params and a replaceable Mesh.
type Solver struct {
	scheme Scheme
	params Params
	mesh   Mesh
}

// New validates p against the scheme and builds the initial mesh with nt steps.
func New(scheme Scheme, nt int, p Params) (*Solver, error) {
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

	m, err := NewMesh(nt, p.T)
	if err != nil {
		return nil, err
	}
	return &Solver{scheme: scheme, params: p, mesh: m}, nil
}

func (s *Solver) Scheme() Scheme   { return s.scheme }
func (s *Solver) Params() Params   { return s.params }
func (s *Solver) Mesh() Mesh       { return s.mesh }
func (s *Solver) Order() int       { return s.scheme.Order() }
func (s *Solver) Name() string     { return s.scheme.Name() }
func (s *Solver) Nt() int          { return s.mesh.Nt() }
func (s *Solver) Dt() float64      { return s.mesh.Dt() }
func (s *Solver) Times() []float64 { return s.mesh.Times() }

// SetMesh replaces the mesh with a fresh one of nt steps. On error the
// current mesh is kept.
func (s *Solver) SetMesh(nt int) error {
	m, err := NewMesh(nt, s.params.T)
	if err != nil {
		return err
	}
	s.mesh = m
	return nil
}

// Solve runs the scheme on the current mesh. Nothing is cached; every call
// returns a new slice of length Nt+1.
func (s *Solver) Solve() ([]float64, error) {
	return solveOn(s.scheme, s.params, s.mesh)
}

// Exact returns the closed-form solution on the current mesh.
func (s *Solver) Exact() []float64 {
	return ExactSolution(s.params, s.mesh)
}

// L2Error solves on the current mesh and measures the discrete L2 distance
// to the exact solution.
func (s *Solver) L2Error() (float64, error) {
	return errorOn(s.scheme, s.params, s.mesh)
}

func solveOn(scheme Scheme, p Params, m Mesh) ([]float64, error) {
	u, err := scheme.Solve(p, m)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", scheme.Name(), err)
	}
	if len(u) != m.Len() {
		return nil, fmt.Errorf("%s returned %d values on a mesh of %d points: %w",
			scheme.Name(), len(u), m.Len(), ErrDimensionMismatch)
	}
	return u, nil
}

func errorOn(scheme Scheme, p Params, m Mesh) (float64, error) {
	u, err := solveOn(scheme, p, m)
	if err != nil {
		return 0, err
	}
	return L2Error(u, ExactSolution(p, m), m.Dt())
}
