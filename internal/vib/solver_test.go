package vib_test

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/vibfd/internal/schemes"
	"github.com/san-kum/vibfd/internal/vib"
)

// exactScheme returns the closed form, so its error is identically zero.
type exactScheme struct{}

func (exactScheme) Name() string { return "exact" }
func (exactScheme) Order() int   { return 0 }
func (exactScheme) Solve(p vib.Params, m vib.Mesh) ([]float64, error) {
	return vib.ExactSolution(p, m), nil
}

// failingScheme fails once the mesh is finer than limit.
type failingScheme struct{ limit int }

func (failingScheme) Name() string { return "failing" }
func (failingScheme) Order() int   { return 1 }
func (f failingScheme) Solve(p vib.Params, m vib.Mesh) ([]float64, error) {
	if m.Nt() > f.limit {
		return nil, vib.ErrSingularSystem
	}
	return make([]float64, m.Len()), nil
}

// shortScheme returns one value too few.
type shortScheme struct{}

func (shortScheme) Name() string { return "short" }
func (shortScheme) Order() int   { return 1 }
func (shortScheme) Solve(p vib.Params, m vib.Mesh) ([]float64, error) {
	return make([]float64, m.Nt()), nil
}

var _ = Describe("Solver", func() {
	var (
		params vib.Params
		solver *vib.Solver
	)

	BeforeEach(func() {
		params = vib.Params{T: 2 * math.Pi, W: 0.35, I: 1}
		var err error
		solver, err = schemes.NewHPL(32, params)
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("construction", func() {
		It("rejects non-positive step counts", func() {
			for _, nt := range []int{0, -3} {
				_, err := vib.New(schemes.HPL{}, nt, params)
				Expect(errors.Is(err, vib.ErrInvalidArgument)).To(BeTrue())
			}
		})

		It("rejects non-positive end times", func() {
			for _, T := range []float64{0, -1, math.NaN()} {
				_, err := vib.New(schemes.HPL{}, 8, vib.Params{T: T, W: 1, I: 1})
				Expect(errors.Is(err, vib.ErrInvalidArgument)).To(BeTrue())
			}
		})

		It("rejects a nil scheme", func() {
			_, err := vib.New(nil, 8, params)
			Expect(err).To(MatchError(vib.ErrInvalidArgument))
		})

		It("exposes the declared order of the scheme", func() {
			Expect(solver.Order()).To(Equal(2))
			Expect(solver.Name()).To(Equal("hpl"))
		})
	})

	Describe("mesh management", func() {
		It("builds Nt+1 strictly increasing points from 0 to T", func() {
			m := solver.Mesh()
			Expect(m.Len()).To(Equal(33))
			Expect(m.At(0)).To(Equal(0.0))
			Expect(m.At(32)).To(Equal(params.T))
			Expect(m.Dt() * float64(m.Nt())).To(BeNumerically("~", params.T, 1e-12))
			for i := 1; i < m.Len(); i++ {
				Expect(m.At(i)).To(BeNumerically(">", m.At(i-1)))
			}
		})

		It("returns sequences of the new length after SetMesh", func() {
			before, err := solver.Solve()
			Expect(err).NotTo(HaveOccurred())
			Expect(before).To(HaveLen(33))

			Expect(solver.SetMesh(50)).To(Succeed())
			after, err := solver.Solve()
			Expect(err).NotTo(HaveOccurred())
			Expect(after).To(HaveLen(51))
			Expect(solver.Exact()).To(HaveLen(51))
			Expect(solver.Dt()).To(BeNumerically("~", params.T/50, 1e-15))
		})

		It("keeps the old mesh when SetMesh fails", func() {
			err := solver.SetMesh(0)
			Expect(errors.Is(err, vib.ErrInvalidArgument)).To(BeTrue())
			Expect(solver.Nt()).To(Equal(32))
		})

		It("does not let callers alter the mesh through Times", func() {
			ts := solver.Times()
			ts[1] = 100
			Expect(solver.Mesh().At(1)).NotTo(Equal(100.0))
		})
	})

	Describe("error norm", func() {
		It("is zero when the computed solution is the exact one", func() {
			s, err := vib.New(exactScheme{}, 40, params)
			Expect(err).NotTo(HaveOccurred())
			e, err := s.L2Error()
			Expect(err).NotTo(HaveOccurred())
			Expect(e).To(Equal(0.0))
		})

		It("is non-negative", func() {
			e, err := solver.L2Error()
			Expect(err).NotTo(HaveOccurred())
			Expect(e).To(BeNumerically(">=", 0))
		})

		It("reports a scheme returning the wrong length", func() {
			s, err := vib.New(shortScheme{}, 8, params)
			Expect(err).NotTo(HaveOccurred())
			_, err = s.L2Error()
			Expect(errors.Is(err, vib.ErrDimensionMismatch)).To(BeTrue())
		})
	})

	Describe("convergence rates", func() {
		It("estimates order two for the explicit scheme", func() {
			report, err := solver.ConvergenceRates(4, 32)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.StepSizes).To(HaveLen(4))
			Expect(report.Errors).To(HaveLen(4))
			Expect(report.Orders).To(HaveLen(3))
			for _, r := range report.Orders {
				Expect(r).To(BeNumerically(">=", 1.98))
				Expect(r).To(BeNumerically("<=", 2.02))
			}
			Expect(report.Within(1e-2)).To(BeTrue())
			Expect(report.StepCounts).To(Equal([]int{64, 128, 256, 512}))
		})

		It("leaves the solver on the finest mesh", func() {
			_, err := solver.ConvergenceRates(3, 10)
			Expect(err).NotTo(HaveOccurred())
			Expect(solver.Nt()).To(Equal(80))
		})

		It("returns no orders for a single trial", func() {
			report, err := solver.ConvergenceRates(1, 32)
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Errors).To(HaveLen(1))
			Expect(report.Orders).To(BeEmpty())
			Expect(report.Within(1)).To(BeFalse())
		})

		It("rejects non-positive arguments without touching the mesh", func() {
			for _, args := range [][2]int{{0, 32}, {-1, 32}, {4, 0}, {4, -8}} {
				_, err := solver.ConvergenceRates(args[0], args[1])
				Expect(errors.Is(err, vib.ErrInvalidArgument)).To(BeTrue())
				Expect(solver.Nt()).To(Equal(32))
			}
		})

		It("keeps the original mesh when a trial fails", func() {
			s, err := vib.New(failingScheme{limit: 40}, 5, params)
			Expect(err).NotTo(HaveOccurred())
			_, err = s.ConvergenceRates(3, 10)
			Expect(errors.Is(err, vib.ErrSingularSystem)).To(BeTrue())
			Expect(s.Nt()).To(Equal(5))
		})

		It("matches the serial estimate when run in parallel", func() {
			serial, err := solver.ConvergenceRates(4, 32)
			Expect(err).NotTo(HaveOccurred())
			parallel, err := vib.ConvergenceRatesParallel(context.Background(), schemes.HPL{}, params, 4, 32)
			Expect(err).NotTo(HaveOccurred())
			Expect(parallel).To(Equal(serial))
		})

		It("validates boundary schemes before running in parallel", func() {
			_, err := vib.ConvergenceRatesParallel(context.Background(), schemes.FD2{}, vib.Params{T: 2.5, W: 1, I: 1}, 2, 8)
			Expect(errors.Is(err, vib.ErrInvalidArgument)).To(BeTrue())
		})

		It("stops when the context is canceled", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := vib.ConvergenceRatesParallel(ctx, schemes.HPL{}, params, 3, 8)
			Expect(err).To(MatchError(context.Canceled))
		})
	})
})
