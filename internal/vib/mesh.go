package vib

import "fmt"

// Mesh is a uniform discretization of [0, T] into Nt steps. A Mesh is never
// modified after construction; refining a solver replaces its Mesh.
type Mesh struct {
	nt    int
	dt    float64
	end   float64
	times []float64
}

// NewMesh builds the Nt+1 uniformly spaced points 0 = t0 < ... < tNt = T.
func NewMesh(nt int, T float64) (Mesh, error) {
	if nt <= 0 {
		return Mesh{}, fmt.Errorf("step count %d must be positive: %w", nt, ErrInvalidArgument)
	}
	if !(T > 0) {
		return Mesh{}, fmt.Errorf("end time %g must be positive: %w", T, ErrInvalidArgument)
	}

	times := make([]float64, nt+1)
	for i := range times {
		times[i] = T * float64(i) / float64(nt)
	}
	times[nt] = T

	return Mesh{nt: nt, dt: T / float64(nt), end: T, times: times}, nil
}

// Nt returns the number of steps.
func (m Mesh) Nt() int { return m.nt }

// Dt returns the step size T/Nt.
func (m Mesh) Dt() float64 { return m.dt }

// T returns the end time.
func (m Mesh) T() float64 { return m.end }

// Len returns the number of mesh points, Nt+1.
func (m Mesh) Len() int { return len(m.times) }

// At returns the i-th time point.
func (m Mesh) At(i int) float64 { return m.times[i] }

// Times returns a copy of the time points.
func (m Mesh) Times() []float64 {
	t := make([]float64, len(m.times))
	copy(t, m.times)
	return t
}

// Refine returns a mesh over the same interval with twice as many steps.
func (m Mesh) Refine() (Mesh, error) {
	return NewMesh(2*m.nt, m.end)
}
