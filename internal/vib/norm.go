package vib

import (
	"fmt"
	"math"
)

// ExactSolution samples I·cos(w·t) on every point of m.
func ExactSolution(p Params, m Mesh) []float64 {
	ue := make([]float64, m.Len())
	for i := range ue {
		ue[i] = p.I * math.Cos(p.W*m.At(i))
	}
	return ue
}

// L2Error returns the discrete L2 norm sqrt(dt·Σ(exact_i - computed_i)²).
func L2Error(computed, exact []float64, dt float64) (float64, error) {
	if len(computed) != len(exact) {
		return 0, fmt.Errorf("computed has %d values, exact has %d: %w",
			len(computed), len(exact), ErrDimensionMismatch)
	}
	if !(dt > 0) {
		return 0, fmt.Errorf("step size %g must be positive: %w", dt, ErrInvalidArgument)
	}

	sum := 0.0
	for i := range computed {
		d := exact[i] - computed[i]
		sum += d * d
	}
	return math.Sqrt(dt * sum), nil
}

// EstimateOrders fits r_i = ln(E[i-1]/E[i]) / ln(dt[i-1]/dt[i]) for each
// consecutive pair. Fewer than two samples yields no orders.
func EstimateOrders(stepSizes, errs []float64) ([]float64, error) {
	if len(stepSizes) != len(errs) {
		return nil, fmt.Errorf("%d step sizes, %d errors: %w",
			len(stepSizes), len(errs), ErrDimensionMismatch)
	}
	if len(errs) < 2 {
		return []float64{}, nil
	}

	orders := make([]float64, len(errs)-1)
	for i := 1; i < len(errs); i++ {
		orders[i-1] = math.Log(errs[i-1]/errs[i]) / math.Log(stepSizes[i-1]/stepSizes[i])
	}
	return orders, nil
}
