// Package schemes implements finite-difference discretizations of the
// vibration equation u″ + w²u = 0 behind the [vib.Scheme] interface.
//
//   - [HPL]: explicit centered scheme marching from the initial condition
//   - [FD2]: second order boundary-value system with Dirichlet ends
//   - [FD4]: fourth order compact (Numerov) boundary-value system
//   - [RK4]: classical Runge-Kutta on the equivalent first order system
//
// The boundary-value schemes need T to be a whole multiple of π and take
// their end values from the exact solution, u(0) = I and u(T) = I·cos(wT).
package schemes
