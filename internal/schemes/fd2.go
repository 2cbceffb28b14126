package schemes

import "github.com/san-kum/vibfd/internal/vib"

// FD2 solves the boundary-value problem with the three-point stencil
//
//	u[n-1] - (2 - w²dt²)u[n] + u[n+1] = 0
type FD2 struct{}

func (FD2) Name() string { return "fd2" }
func (FD2) Order() int   { return 2 }

func (FD2) Validate(p vib.Params) error { return validatePeriod(p) }

func (FD2) Solve(p vib.Params, m vib.Mesh) ([]float64, error) {
	dt := m.Dt()
	s := stencil{
		lower: 1,
		diag:  -(2 - p.W*p.W*dt*dt),
		upper: 1,
	}
	left, right := boundaryValues(p, m)
	return solveDirichlet(m.Nt(), s, left, right)
}

// NewFD2 returns a second order boundary-value solver on nt steps.
func NewFD2(nt int, p vib.Params) (*vib.Solver, error) {
	return vib.New(FD2{}, nt, p)
}
