package schemes

import (
	"testing"

	"github.com/san-kum/vibfd/internal/vib"
)

func benchmarkSolve(b *testing.B, sc vib.Scheme, nt int) {
	p := vib.DefaultParams()
	m, err := vib.NewMesh(nt, p.T)
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := sc.Solve(p, m); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkHPL_256(b *testing.B) { benchmarkSolve(b, HPL{}, 256) }
func BenchmarkFD2_256(b *testing.B) { benchmarkSolve(b, FD2{}, 256) }
func BenchmarkFD4_256(b *testing.B) { benchmarkSolve(b, FD4{}, 256) }
func BenchmarkRK4_256(b *testing.B) { benchmarkSolve(b, RK4{}, 256) }

func BenchmarkConvergenceRates_HPL(b *testing.B) {
	s, _ := NewHPL(32, vib.DefaultParams())
	for i := 0; i < b.N; i++ {
		if _, err := s.ConvergenceRates(4, 32); err != nil {
			b.Fatal(err)
		}
	}
}
