package export

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/vibfd/internal/automation"
	"github.com/san-kum/vibfd/internal/experiment"
	"github.com/san-kum/vibfd/internal/vib"
)

func testSolution() *experiment.Solution {
	n := 17
	sol := &experiment.Solution{Scheme: "hpl", L2Error: 1e-3}
	for i := 0; i < n; i++ {
		t := 2 * math.Pi * float64(i) / float64(n-1)
		sol.Times = append(sol.Times, t)
		sol.Exact = append(sol.Exact, math.Cos(0.35*t))
		sol.U = append(sol.U, math.Cos(0.35*t)+1e-3)
	}
	return sol
}

func readChart(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("chart not written: %v", err)
	}
	if len(data) == 0 {
		t.Fatalf("%s is empty", path)
	}
	return string(data)
}

func TestSolutionChart(t *testing.T) {
	dir := t.TempDir()

	svg := filepath.Join(dir, "solution.svg")
	if err := SolutionChart(svg, testSolution()); err != nil {
		t.Fatalf("SolutionChart failed: %v", err)
	}
	if out := readChart(t, svg); !strings.Contains(out, "<svg") {
		t.Errorf("expected SVG output")
	}

	png := filepath.Join(dir, "solution.png")
	if err := SolutionChart(png, testSolution()); err != nil {
		t.Fatalf("SolutionChart png failed: %v", err)
	}
	if out := readChart(t, png); !strings.HasPrefix(out, "\x89PNG") {
		t.Errorf("expected PNG signature")
	}
}

func TestSolutionChart_Invalid(t *testing.T) {
	dir := t.TempDir()

	if err := SolutionChart(filepath.Join(dir, "a.gif"), testSolution()); !errors.Is(err, vib.ErrInvalidArgument) {
		t.Errorf("gif: got %v, want ErrInvalidArgument", err)
	}

	sol := testSolution()
	sol.Exact = sol.Exact[:3]
	if err := SolutionChart(filepath.Join(dir, "a.svg"), sol); !errors.Is(err, vib.ErrDimensionMismatch) {
		t.Errorf("short exact: got %v, want ErrDimensionMismatch", err)
	}
}

func TestConvergenceChart(t *testing.T) {
	r := &vib.Report{
		Scheme:        "fd2",
		DeclaredOrder: 2,
		StepSizes:     []float64{0.1, 0.05, 0.025},
		Errors:        []float64{1e-2, 2.5e-3, 6.25e-4},
		Orders:        []float64{2, 2},
	}
	path := filepath.Join(t.TempDir(), "rates.svg")
	if err := ConvergenceChart(path, r); err != nil {
		t.Fatalf("ConvergenceChart failed: %v", err)
	}
	if out := readChart(t, path); !strings.Contains(out, "<svg") {
		t.Errorf("expected SVG output")
	}

	r.Errors = []float64{0, 0, 1e-3}
	if err := ConvergenceChart(path, r); !errors.Is(err, vib.ErrInvalidArgument) {
		t.Errorf("zero errors: got %v, want ErrInvalidArgument", err)
	}

	r.Errors = r.Errors[:2]
	if err := ConvergenceChart(path, r); !errors.Is(err, vib.ErrDimensionMismatch) {
		t.Errorf("mismatch: got %v, want ErrDimensionMismatch", err)
	}
}

func TestSweepChart(t *testing.T) {
	results := []automation.SweepResult{
		{Frequency: 0.3, FinalError: 1e-4},
		{Frequency: 0.4, Err: vib.ErrSingularSystem},
		{Frequency: 0.5, FinalError: 3e-4},
		{Frequency: 0.6, FinalError: 5e-4},
	}
	path := filepath.Join(t.TempDir(), "sweep.pdf")
	if err := SweepChart(path, "hpl", results); err != nil {
		t.Fatalf("SweepChart failed: %v", err)
	}
	if out := readChart(t, path); !strings.HasPrefix(out, "%PDF") {
		t.Errorf("expected PDF header")
	}

	if err := SweepChart(path, "hpl", results[:2]); !errors.Is(err, vib.ErrInvalidArgument) {
		t.Errorf("one point: got %v, want ErrInvalidArgument", err)
	}
}
