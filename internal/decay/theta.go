// Package decay solves the exponential decay model u' = -a·u, u(0) = I with
// the theta family of schemes (Forward Euler θ=0, Crank-Nicolson θ=½,
// Backward Euler θ=1).
package decay

import (
	"fmt"
	"math"

	"github.com/san-kum/vibfd/internal/vib"
)

// Common theta values.
const (
	ForwardEuler  = 0.0
	CrankNicolson = 0.5
	BackwardEuler = 1.0
)

// Result holds the mesh and the computed values.
type Result struct {
	U []float64
	T []float64
}

// Solve integrates u' = -a·u over (0, T] in steps of dt. The number of steps
// is int(T/dt) and T is shortened to a whole number of steps.
func Solve(I, a, T, dt, theta float64) (*Result, error) {
	if !(dt > 0) || !(T > 0) {
		return nil, fmt.Errorf("T=%g and dt=%g must be positive: %w", T, dt, vib.ErrInvalidArgument)
	}
	if theta < 0 || theta > 1 {
		return nil, fmt.Errorf("theta %g outside [0, 1]: %w", theta, vib.ErrInvalidArgument)
	}
	nt := int(T / dt)
	if nt < 1 {
		return nil, fmt.Errorf("dt=%g exceeds T=%g: %w", dt, T, vib.ErrInvalidArgument)
	}

	m, err := vib.NewMesh(nt, float64(nt)*dt)
	if err != nil {
		return nil, err
	}

	g := AmplificationFactor(theta, a, dt)
	u := make([]float64, nt+1)
	u[0] = I
	for n := 0; n < nt; n++ {
		u[n+1] = g * u[n]
	}
	return &Result{U: u, T: m.Times()}, nil
}

// AmplificationFactor is the ratio u[n+1]/u[n] of the theta scheme.
func AmplificationFactor(theta, a, dt float64) float64 {
	return (1 - (1-theta)*a*dt) / (1 + theta*dt*a)
}

// Exact evaluates I·exp(-a·t) at each t.
func Exact(t []float64, I, a float64) []float64 {
	ue := make([]float64, len(t))
	for i, ti := range t {
		ue[i] = I * math.Exp(-a*ti)
	}
	return ue
}

// Error returns the discrete L2 error of r against the exact solution.
func (r *Result) Error(I, a float64) (float64, error) {
	if len(r.T) < 2 {
		return 0, fmt.Errorf("need at least two points: %w", vib.ErrInvalidArgument)
	}
	return vib.L2Error(r.U, Exact(r.T, I, a), r.T[1]-r.T[0])
}
