package vib

import "errors"

// Domain errors for solver operations.
var (
	// ErrInvalidArgument indicates a non-positive count or time, an end time
	// incompatible with a boundary-value scheme, or a point outside a
	// function's sampling domain.
	ErrInvalidArgument = errors.New("vib: invalid argument")

	// ErrDimensionMismatch indicates sequences of unequal length were compared.
	ErrDimensionMismatch = errors.New("vib: dimension mismatch between sequences")

	// ErrSingularSystem indicates a boundary-value system with no unique solution.
	ErrSingularSystem = errors.New("vib: singular boundary-value system")
)
