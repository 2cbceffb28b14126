package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/vibfd/internal/schemes"
	"github.com/san-kum/vibfd/internal/vib"
)

type Registry struct {
	schemes      map[string]func() vib.Scheme
	descriptions map[string]string
}

func NewRegistry() *Registry {
	r := &Registry{
		schemes:      make(map[string]func() vib.Scheme),
		descriptions: make(map[string]string),
	}

	r.Register("hpl", "explicit centered scheme from the initial condition", func() vib.Scheme { return schemes.HPL{} })
	r.Register("fd2", "second order Dirichlet boundary-value system", func() vib.Scheme { return schemes.FD2{} })
	r.Register("fd4", "fourth order compact (Numerov) boundary-value system", func() vib.Scheme { return schemes.FD4{} })
	r.Register("rk4", "classical Runge-Kutta on the first order system", func() vib.Scheme { return schemes.RK4{} })

	return r
}

// Register adds or replaces a scheme factory.
func (r *Registry) Register(name, description string, fn func() vib.Scheme) {
	r.schemes[name] = fn
	r.descriptions[name] = description
}

func (r *Registry) GetScheme(name string) (vib.Scheme, error) {
	fn, ok := r.schemes[name]
	if !ok {
		return nil, fmt.Errorf("unknown scheme: %s", name)
	}
	return fn(), nil
}

func (r *Registry) Describe(name string) string {
	return r.descriptions[name]
}

func (r *Registry) ListSchemes() []string {
	names := make([]string, 0, len(r.schemes))
	for name := range r.schemes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewSolver looks up name and constructs a solver on nt steps.
func (r *Registry) NewSolver(name string, nt int, p vib.Params) (*vib.Solver, error) {
	scheme, err := r.GetScheme(name)
	if err != nil {
		return nil, err
	}
	return vib.New(scheme, nt, p)
}
