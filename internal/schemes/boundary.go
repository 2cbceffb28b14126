package schemes

import (
	"fmt"
	"math"

	"github.com/san-kum/vibfd/internal/vib"
	"gonum.org/v1/gonum/mat"
)

// piTolerance bounds the relative distance of T/π from an integer.
const piTolerance = 1e-12

// validatePeriod accepts end times that are whole multiples of π.
func validatePeriod(p vib.Params) error {
	r := p.T / math.Pi
	k := math.Round(r)
	if k < 1 || math.Abs(r-k) > piTolerance*k {
		return fmt.Errorf("end time %g is not a multiple of π: %w", p.T, vib.ErrInvalidArgument)
	}
	return nil
}

// stencil holds the constant coefficients of one interior row,
// lower·u[n-1] + diag·u[n] + upper·u[n+1] = 0.
type stencil struct {
	lower, diag, upper float64
}

// solveDirichlet assembles the tridiagonal (nt+1)×(nt+1) system with the
// given interior stencil and the Dirichlet rows u[0] = left, u[nt] = right,
// and solves it.
func solveDirichlet(nt int, s stencil, left, right float64) ([]float64, error) {
	n := nt + 1
	dl := make([]float64, nt)
	d := make([]float64, n)
	du := make([]float64, nt)
	b := mat.NewVecDense(n, nil)

	d[0] = 1
	b.SetVec(0, left)
	for i := 1; i < nt; i++ {
		dl[i-1] = s.lower
		d[i] = s.diag
		du[i] = s.upper
	}
	d[nt] = 1
	b.SetVec(nt, right)

	a := mat.NewTridiag(n, dl, d, du)
	var x mat.VecDense
	if err := a.SolveVecTo(&x, false, b); err != nil {
		return nil, fmt.Errorf("%v: %w", err, vib.ErrSingularSystem)
	}

	u := make([]float64, n)
	for i := range u {
		u[i] = x.AtVec(i)
		if math.IsNaN(u[i]) || math.IsInf(u[i], 0) {
			return nil, fmt.Errorf("non-finite value at node %d: %w", i, vib.ErrSingularSystem)
		}
	}
	return u, nil
}

// boundaryValues returns the exact solution at both ends of the mesh.
func boundaryValues(p vib.Params, m vib.Mesh) (left, right float64) {
	return p.I, p.I * math.Cos(p.W*m.T())
}
