// Package automation runs batches of convergence studies: YAML study files
// listing scheme runs, and frequency sweeps of a single scheme.
package automation
