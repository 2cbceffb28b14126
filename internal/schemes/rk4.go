package schemes

import "github.com/san-kum/vibfd/internal/vib"

// RK4 integrates the first order system u' = v, v' = -w²u with the
// classical fourth order Runge-Kutta method, starting from u = I, v = 0.
type RK4 struct{}

func (RK4) Name() string { return "rk4" }
func (RK4) Order() int   { return 4 }

func (RK4) Solve(p vib.Params, m vib.Mesh) ([]float64, error) {
	nt := m.Nt()
	dt := m.Dt()
	w2 := p.W * p.W

	u := make([]float64, nt+1)
	x, v := p.I, 0.0
	u[0] = x

	dt2 := dt * 0.5
	dt6 := dt / 6.0
	for n := 0; n < nt; n++ {
		k1x, k1v := v, -w2*x
		k2x, k2v := v+dt2*k1v, -w2*(x+dt2*k1x)
		k3x, k3v := v+dt2*k2v, -w2*(x+dt2*k2x)
		k4x, k4v := v+dt*k3v, -w2*(x+dt*k3x)

		x += dt6 * (k1x + 2*k2x + 2*k3x + k4x)
		v += dt6 * (k1v + 2*k2v + 2*k3v + k4v)
		u[n+1] = x
	}
	return u, nil
}

// NewRK4 returns a solver for the Runge-Kutta scheme on nt steps.
func NewRK4(nt int, p vib.Params) (*vib.Solver, error) {
	return vib.New(RK4{}, nt, p)
}
