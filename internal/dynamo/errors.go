package dynamo

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Domain errors for integration runs.
var (
	// ErrDimensionMismatch indicates two states, or a state and F(state), of different dimension.
	ErrDimensionMismatch = errors.New("dynamo: dimension mismatch")

	// ErrInvalidStepSize indicates a step size that is not strictly positive and finite.
	ErrInvalidStepSize = errors.New("dynamo: step size must be positive and finite")

	// ErrInvalidStepCount indicates a negative step count.
	ErrInvalidStepCount = errors.New("dynamo: step count must be non-negative")

	// ErrNonFinite indicates a NaN or Inf produced by F or a stepper update.
	ErrNonFinite = errors.New("dynamo: non-finite value (NaN or Inf detected)")

	// ErrEmptyState indicates a state of dimension 0.
	ErrEmptyState = errors.New("dynamo: state must have dimension >= 1")

	ErrTrajectorySealed  = errors.New("dynamo: trajectory is sealed")
	ErrTimeNotIncreasing = errors.New("dynamo: sample time must strictly increase")

	// ErrCanceled indicates the run was interrupted through its context.
	ErrCanceled = errors.New("dynamo: integration canceled by context")
)

// StageUpdate is the Stage reported for a fault in the final combination of
// a step, after all F evaluations succeeded.
const StageUpdate = 0

// StageError is returned by a stepper when one stage of a single step fails.
// Stage counts F evaluations from 1.
type StageError struct {
	Stage int
	Time  float64
	Err   error
}

func (e *StageError) Error() string {
	if e.Stage == StageUpdate {
		return fmt.Sprintf("update (t=%.6g): %v", e.Time, e.Err)
	}
	return fmt.Sprintf("stage %d (t=%.6g): %v", e.Stage, e.Time, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// SimulationError wraps a step fault with run context. Step is the 0-based
// index of the step that failed; State is the last good state.
type SimulationError struct {
	Step    int
	Stage   int
	Time    float64
	State   State
	Wrapped error
}

func (e *SimulationError) Error() string {
	return fmt.Sprintf("step %d stage %d (t=%.6g): %v", e.Step, e.Stage, e.Time, e.Wrapped)
}

func (e *SimulationError) Unwrap() error {
	return e.Wrapped
}
