// Package viz renders solutions and convergence reports in the terminal.
//
//   - [PlotSolution]: numerical and exact solution on one asciigraph chart
//   - [PlotConvergence]: log10 of the error against refinement level
//   - [RenderReport]: convergence table styled with lipgloss
//   - [Explorer]: Bubble Tea program for refining a mesh interactively
//
// # Key Bindings
//
//	+/=   - Double the step count
//	-     - Halve the step count
//	r     - Run a convergence study from the current mesh
//	q     - Quit
package viz
