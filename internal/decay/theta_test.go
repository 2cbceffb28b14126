package decay

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/vibfd/internal/vib"
)

func TestSolve_ThreeSteps(t *testing.T) {
	theta, a, I, dt := 0.8, 2.0, 0.1, 0.8
	want := []float64{I, 0.0298245614035, 0.00889504462912, 0.00265290804728}

	res, err := Solve(I, a, 3*dt, dt, theta)
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}
	if len(res.U) != len(want) {
		t.Fatalf("got %d values, want %d", len(res.U), len(want))
	}
	for i := range want {
		if math.Abs(res.U[i]-want[i]) > 1e-12 {
			t.Errorf("u[%d] = %.13f, want %.13f", i, res.U[i], want[i])
		}
	}
}

func TestSolve_InvalidArguments(t *testing.T) {
	tests := []struct {
		name         string
		T, dt, theta float64
	}{
		{"zero dt", 1, 0, 0.5},
		{"negative T", -1, 0.1, 0.5},
		{"theta above one", 1, 0.1, 1.5},
		{"theta below zero", 1, 0.1, -0.1},
		{"dt beyond T", 1, 2, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Solve(1, 1, tt.T, tt.dt, tt.theta)
			if !errors.Is(err, vib.ErrInvalidArgument) {
				t.Errorf("got %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestSolve_CrankNicolsonMoreAccurate(t *testing.T) {
	I, a, T, dt := 1.0, 2.0, 4.0, 0.1

	errs := map[float64]float64{}
	for _, theta := range []float64{ForwardEuler, CrankNicolson, BackwardEuler} {
		res, err := Solve(I, a, T, dt, theta)
		if err != nil {
			t.Fatal(err)
		}
		e, err := res.Error(I, a)
		if err != nil {
			t.Fatal(err)
		}
		errs[theta] = e
	}

	if errs[CrankNicolson] >= errs[ForwardEuler] || errs[CrankNicolson] >= errs[BackwardEuler] {
		t.Errorf("Crank-Nicolson error %e not below FE %e and BE %e",
			errs[CrankNicolson], errs[ForwardEuler], errs[BackwardEuler])
	}
}

func TestAmplificationFactor(t *testing.T) {
	tests := []struct {
		theta, a, dt float64
		expected     float64
	}{
		{ForwardEuler, 1, 0.1, 0.9},
		{BackwardEuler, 1, 0.1, 1 / 1.1},
		{CrankNicolson, 2, 0.5, 0.5 / 1.5},
	}

	for _, tt := range tests {
		if got := AmplificationFactor(tt.theta, tt.a, tt.dt); math.Abs(got-tt.expected) > 1e-15 {
			t.Errorf("AmplificationFactor(%v, %v, %v) = %v, want %v", tt.theta, tt.a, tt.dt, got, tt.expected)
		}
	}
}
