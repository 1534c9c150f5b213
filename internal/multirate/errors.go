package multirate

import (
	"errors"
	"fmt"
)

// Failure taxonomy for solver construction and solves.
var (
	// ErrInvalidConfiguration indicates malformed Options, detected at
	// construction.
	ErrInvalidConfiguration = errors.New("multirate: invalid configuration")

	// ErrDimensionMismatch indicates an initial state whose length does
	// not equal SlowDim + FastDim.
	ErrDimensionMismatch = errors.New("multirate: initial state does not match system dimensions")

	// ErrDivergence indicates a scheme produced a non-finite value. The
	// partial trajectory up to the last valid step is still returned.
	ErrDivergence = errors.New("multirate: non-finite state encountered")

	// ErrStepBudget indicates the step budget ran out before the end
	// time. The partial trajectory is returned; callers distinguish this
	// outcome with errors.Is.
	ErrStepBudget = errors.New("multirate: step budget exhausted before end time")
)

// SolveError carries the step index and last valid time alongside the
// underlying failure, so callers can resume or diagnose.
type SolveError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SolveError) Error() string {
	return fmt.Sprintf("step %d (t=%.6g): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SolveError) Unwrap() error {
	return e.Wrapped
}
