// Package metrics computes diagnostics of discrete vibration solutions.
package metrics

import (
	"fmt"
	"math"

	"github.com/san-kum/vibfd/internal/fdiff"
	"github.com/san-kum/vibfd/internal/vib"
)

// Energy returns ½u'² + ½w²u² at every mesh point. The velocity comes from
// central differences, one-sided at the ends.
func Energy(u []float64, dt, w float64) ([]float64, error) {
	v, err := fdiff.Central(u, dt)
	if err != nil {
		return nil, err
	}
	w2 := w * w
	e := make([]float64, len(u))
	for i := range u {
		e[i] = 0.5*v[i]*v[i] + 0.5*w2*u[i]*u[i]
	}
	return e, nil
}

// Drift returns max |E[n] - E[0]|, relative to E[0] unless E[0] is zero.
func Drift(energy []float64) (float64, error) {
	if len(energy) == 0 {
		return 0, fmt.Errorf("metrics: empty energy sequence: %w", vib.ErrInvalidArgument)
	}
	e0 := energy[0]
	var drift float64
	for _, e := range energy[1:] {
		drift = math.Max(drift, math.Abs(e-e0))
	}
	if e0 != 0 {
		drift /= math.Abs(e0)
	}
	return drift, nil
}

// EnergyDrift is Drift of Energy.
func EnergyDrift(u []float64, dt, w float64) (float64, error) {
	e, err := Energy(u, dt, w)
	if err != nil {
		return 0, err
	}
	return Drift(e)
}
