package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Lookup errors
	ErrColumnNotFound  = errors.New("column not found")
	ErrColumnType      = errors.New("column has wrong type")
	ErrLengthMismatch  = errors.New("column length does not match table")
	ErrDuplicateColumn = errors.New("duplicate column name")

	// Sample errors
	ErrEmptyColumn        = errors.New("column has no non-missing values")
	ErrInsufficientSample = errors.New("insufficient sample size")
	ErrInsufficientData   = errors.New("insufficient data for analysis")
	ErrNonFinite          = errors.New("non-finite value in column")

	// Test precondition errors
	ErrNotBinary        = errors.New("target is not binary")
	ErrTooFewGroups     = errors.New("too few groups")
	ErrDegenerateTable  = errors.New("contingency table smaller than 2x2")
	ErrLabelsMismatched = errors.New("label sequences differ in length")
)

// Error constructors with context
func NewColumnNotFoundError(name string) error {
	return fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

func NewColumnTypeError(name, want string) error {
	return fmt.Errorf("%w: %q is not %s", ErrColumnType, name, want)
}

func NewEmptyColumnError(name string) error {
	return fmt.Errorf("%w: %q", ErrEmptyColumn, name)
}

func NewInsufficientSampleError(name string, have, need int) error {
	return fmt.Errorf("%w: %q has %d non-missing values, need %d", ErrInsufficientSample, name, have, need)
}

func NewNonFiniteError(name string, count int) error {
	return fmt.Errorf("%w: %q has %d infinite values", ErrNonFinite, name, count)
}

func NewLengthMismatchError(name string, have, want int) error {
	return fmt.Errorf("%w: %q has %d rows, table has %d", ErrLengthMismatch, name, have, want)
}

// IsSampleError reports whether err is a recoverable per-column sample problem.
func IsSampleError(err error) bool {
	return errors.Is(err, ErrEmptyColumn) ||
		errors.Is(err, ErrInsufficientSample) ||
		errors.Is(err, ErrInsufficientData) ||
		errors.Is(err, ErrNonFinite)
}
