package schemes

import "github.com/san-kum/vibfd/internal/vib"

// HPL is the explicit centered scheme
//
//	u[n+1] = 2u[n] - u[n-1] - dt²w²u[n]
//
// started with a Taylor step that uses u'(0) = 0.
type HPL struct{}

func (HPL) Name() string { return "hpl" }
func (HPL) Order() int   { return 2 }

func (HPL) Solve(p vib.Params, m vib.Mesh) ([]float64, error) {
	nt := m.Nt()
	dt := m.Dt()
	k := dt * dt * p.W * p.W

	u := make([]float64, nt+1)
	u[0] = p.I
	u[1] = u[0] - 0.5*k*u[0]
	for n := 1; n < nt; n++ {
		u[n+1] = 2*u[n] - u[n-1] - k*u[n]
	}
	return u, nil
}

// NewHPL returns a solver for the explicit scheme on nt steps.
func NewHPL(nt int, p vib.Params) (*vib.Solver, error) {
	return vib.New(HPL{}, nt, p)
}
