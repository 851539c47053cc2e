package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for integration runs.
var (
	// ErrDimensionMismatch indicates a state whose shape differs from the
	// prototype the scheme was constructed with.
	ErrDimensionMismatch = errors.New("dynamo: state dimension mismatch")

	// ErrStepSize indicates a non-positive step size.
	ErrStepSize = errors.New("dynamo: step size must be positive")

	// ErrTolerance indicates unusable adaptive tolerances or bounds.
	ErrTolerance = errors.New("dynamo: invalid tolerance configuration")

	// ErrNotSplit indicates a semi-implicit scheme constructed from a
	// model without a linear/nonlinear decomposition.
	ErrNotSplit = errors.New("dynamo: model does not expose a linear/nonlinear split")

	// ErrUnstable indicates the adaptive controller exceeded its
	// consecutive-rejection cap, a stiffness or instability signal.
	ErrUnstable = errors.New("dynamo: step rejected too many times (unstable or too stiff)")

	// ErrPropagator indicates linear propagator construction failed.
	ErrPropagator = errors.New("dynamo: linear propagator construction failed")

	// ErrInvalidState indicates NaN or Inf in a committed state.
	ErrInvalidState = errors.New("dynamo: invalid state (NaN or Inf detected)")
)

// StepError wraps an error with the time and rejection count at which a
// step failed.
type StepError struct {
	Time       float64
	Rejections int
	Wrapped    error
}

func (e *StepError) Error() string {
	if e.Rejections > 0 {
		return fmt.Sprintf("t=%.6g after %d rejections: %v", e.Time, e.Rejections, e.Wrapped)
	}
	return fmt.Sprintf("t=%.6g: %v", e.Time, e.Wrapped)
}

func (e *StepError) Unwrap() error {
	return e.Wrapped
}
