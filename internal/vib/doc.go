// Package vib provides the shared machinery for solving the vibration equation
//
//	u'' + w²u = 0,  t in [0, T]
//
// on a uniform mesh:
//
//   - [Mesh]: uniform discretization of [0, T] into Nt steps
//   - [Scheme]: a finite-difference stepping rule with a declared order
//   - [Solver]: owns a Mesh and Params and drives a Scheme
//   - [ExactSolution]: the closed form I·cos(w·t) on a mesh
//   - [L2Error]: discrete L2 norm of the difference of two sequences
//   - [Report]: empirical convergence orders from successive mesh doublings
//
// # Example
//
//	s, _ := vib.New(schemes.HPL{}, 32, vib.Params{T: 2 * math.Pi, W: 0.35, I: 1})
//	report, _ := s.ConvergenceRates(4, 32)
//	fmt.Println(report.Orders)
//
// # Thread Safety
//
// Solver instances are NOT thread-safe. For concurrent refinement use
// [ConvergenceRatesParallel], which gives every trial its own Mesh.
package vib
