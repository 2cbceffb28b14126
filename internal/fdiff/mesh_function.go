package fdiff

import (
	"fmt"
	"math"

	"github.com/san-kum/vibfd/internal/vib"
)

// Func is a scalar function that may be undefined at some points.
type Func func(t float64) (float64, error)

// Sample evaluates f at every point of t. The first failure aborts sampling.
func Sample(f Func, t []float64) ([]float64, error) {
	out := make([]float64, len(t))
	for i, ti := range t {
		v, err := f(ti)
		if err != nil {
			return nil, fmt.Errorf("sample %d (t=%g): %w", i, ti, err)
		}
		out[i] = v
	}
	return out, nil
}

// SampleMesh evaluates f on the points of m.
func SampleMesh(f Func, m vib.Mesh) ([]float64, error) {
	return Sample(f, m.Times())
}

// PiecewiseDecay is e^{-t} on [0, 3] and e^{-3t} on (3, 4]; it is undefined
// elsewhere.
func PiecewiseDecay(t float64) (float64, error) {
	switch {
	case 0 <= t && t <= 3:
		return math.Exp(-t), nil
	case 3 < t && t <= 4:
		return math.Exp(-3 * t), nil
	default:
		return 0, fmt.Errorf("t=%g outside [0, 4]: %w", t, vib.ErrInvalidArgument)
	}
}

// Lift wraps a total function as a Func.
func Lift(f func(float64) float64) Func {
	return func(t float64) (float64, error) { return f(t), nil }
}
