// Package fdiff provides finite-difference approximations of derivatives of
// sampled functions and helpers to sample functions on a mesh.
package fdiff

import (
	"fmt"

	"github.com/san-kum/vibfd/internal/vib"
)

func checkSamples(u []float64, dt float64) error {
	if len(u) < 2 {
		return fmt.Errorf("need at least two samples, got %d: %w", len(u), vib.ErrInvalidArgument)
	}
	if !(dt > 0) {
		return fmt.Errorf("step size %g must be positive: %w", dt, vib.ErrInvalidArgument)
	}
	return nil
}

// Central approximates u' with (u[i+1]-u[i-1])/2dt in the interior and
// one-sided differences at both ends.
func Central(u []float64, dt float64) ([]float64, error) {
	if err := checkSamples(u, dt); err != nil {
		return nil, err
	}
	n := len(u)
	d := make([]float64, n)
	d[0] = (u[1] - u[0]) / dt
	for i := 1; i < n-1; i++ {
		d[i] = (u[i+1] - u[i-1]) / (2 * dt)
	}
	d[n-1] = (u[n-1] - u[n-2]) / dt
	return d, nil
}

// Forward approximates u' with (u[i+1]-u[i])/dt, falling back to a backward
// difference at the last point.
func Forward(u []float64, dt float64) ([]float64, error) {
	if err := checkSamples(u, dt); err != nil {
		return nil, err
	}
	n := len(u)
	d := make([]float64, n)
	for i := 0; i < n-1; i++ {
		d[i] = (u[i+1] - u[i]) / dt
	}
	d[n-1] = d[n-2]
	return d, nil
}

// Backward approximates u' with (u[i]-u[i-1])/dt, falling back to a forward
// difference at the first point.
func Backward(u []float64, dt float64) ([]float64, error) {
	if err := checkSamples(u, dt); err != nil {
		return nil, err
	}
	n := len(u)
	d := make([]float64, n)
	for i := 1; i < n; i++ {
		d[i] = (u[i] - u[i-1]) / dt
	}
	d[0] = d[1]
	return d, nil
}

// Method names a difference operator.
type Method string

const (
	MethodCentral  Method = "central"
	MethodForward  Method = "forward"
	MethodBackward Method = "backward"
)

// Differentiate dispatches on method.
func Differentiate(method Method, u []float64, dt float64) ([]float64, error) {
	switch method {
	case MethodCentral:
		return Central(u, dt)
	case MethodForward:
		return Forward(u, dt)
	case MethodBackward:
		return Backward(u, dt)
	default:
		return nil, fmt.Errorf("unknown difference method %q: %w", method, vib.ErrInvalidArgument)
	}
}
