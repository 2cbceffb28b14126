package vib

import (
	"fmt"
	"math"
)

// Default model parameters.
const (
	DefaultFrequency = 0.35
	DefaultInitial   = 1.0
)

// Params are the fixed model parameters of one solver.
type Params struct {
	T float64 // end time
	W float64 // angular frequency
	I float64 // initial displacement
}

// DefaultParams returns the parameters used throughout the course material,
// with end time 2π.
func DefaultParams() Params {
	return Params{T: 2 * math.Pi, W: DefaultFrequency, I: DefaultInitial}
}

func (p Params) Validate() error {
	if !(p.T > 0) || math.IsInf(p.T, 0) {
		return fmt.Errorf("end time %g must be positive and finite: %w", p.T, ErrInvalidArgument)
	}
	if math.IsNaN(p.W) || math.IsInf(p.W, 0) || math.IsNaN(p.I) || math.IsInf(p.I, 0) {
		return fmt.Errorf("frequency %g and initial value %g must be finite: %w", p.W, p.I, ErrInvalidArgument)
	}
	return nil
}

// Scheme is one finite-difference discretization of the vibration equation.
// Solve must not retain or modify m and must return a fresh slice of
// length m.Nt+1.
type Scheme interface {
	Name() string
	Order() int
	Solve(p Params, m Mesh) ([]float64, error)
}

// Validator is implemented by schemes that restrict the admissible Params,
// e.g. boundary-value schemes that need T to be a multiple of π.
type Validator interface {
	Validate(p Params) error
}

// Report is the outcome of a convergence study. Orders[i] is estimated from
// the transition between resolution i and i+1.
type Report struct {
	Scheme        string    `json:"scheme"`
	DeclaredOrder int       `json:"declared_order"`
	StepCounts    []int     `json:"step_counts"`
	StepSizes     []float64 `json:"step_sizes"`
	Errors        []float64 `json:"errors"`
	Orders        []float64 `json:"orders"`
}

// Within reports whether every estimated order lies within tol of the
// declared order. A report without orders is never within tolerance.
func (r *Report) Within(tol float64) bool {
	if len(r.Orders) == 0 {
		return false
	}
	for _, o := range r.Orders {
		if math.IsNaN(o) || math.Abs(o-float64(r.DeclaredOrder)) > tol {
			return false
		}
	}
	return true
}
