package dynamo

import (
	"errors"
	"fmt"
)

// Domain errors for simulation operations.
var (
	// ErrInvalidParameter indicates a non-positive or non-finite model parameter.
	ErrInvalidParameter = errors.New("dynamo: invalid parameter")

	// ErrInvalidConfig indicates a run configuration that cannot be stepped.
	ErrInvalidConfig = errors.New("dynamo: invalid run configuration")

	// ErrInvalidFrame indicates a frame containing NaN or Inf values.
	ErrInvalidFrame = errors.New("dynamo: invalid frame (NaN or Inf detected)")
)

// SimError wraps an error with the tick it happened on.
type SimError struct {
	Step    int
	Time    float64
	Wrapped error
}

func (e *SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %v", e.Step, e.Time, e.Wrapped)
}

func (e *SimError) Unwrap() error {
	return e.Wrapped
}
