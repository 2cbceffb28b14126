package schemes

import "github.com/san-kum/vibfd/internal/vib"

// FD4 solves the boundary-value problem with the compact Numerov stencil
//
//	(1 + w²dt²/12)(u[n-1] + u[n+1]) - (2 - 10w²dt²/12)u[n] = 0
//
// which is fourth order accurate while keeping the system tridiagonal.
type FD4 struct{}

func (FD4) Name() string { return "fd4" }
func (FD4) Order() int   { return 4 }

func (FD4) Validate(p vib.Params) error { return validatePeriod(p) }

func (FD4) Solve(p vib.Params, m vib.Mesh) ([]float64, error) {
	dt := m.Dt()
	k := p.W * p.W * dt * dt / 12
	s := stencil{
		lower: 1 + k,
		diag:  -(2 - 10*k),
		upper: 1 + k,
	}
	left, right := boundaryValues(p, m)
	return solveDirichlet(m.Nt(), s, left, right)
}

// NewFD4 returns a fourth order boundary-value solver on nt steps.
func NewFD4(nt int, p vib.Params) (*vib.Solver, error) {
	return vib.New(FD4{}, nt, p)
}
