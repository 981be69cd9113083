// Package dynamo provides the core primitives for integrating initial value
// problems dX/dt = F(X, t), X(t0) = X0.
//
//   - [State]: fixed-dimension real vector with checked arithmetic
//   - [System]: the right-hand side F
//   - [Solution]: reference solution used for error measurement
//   - [Trajectory]: append-only record of (time, state) samples
//
// Steppers live in the integrators package; the sim package drives them.
//
// # Example
//
//	sys := dynamo.Func(func(x dynamo.State, t float64) dynamo.State {
//	    return dynamo.State{x[1], -x[0]}
//	})
//	traj, err := sim.Integrate(ctx, integrators.RK4, sys, dynamo.Of(0, 0.01), 0, 0.1, 100)
//
// # Errors
//
// Structural faults ([ErrDimensionMismatch], [ErrInvalidStepSize],
// [ErrInvalidStepCount]) and numerical faults ([ErrNonFinite]) are never
// retried or masked. Step faults surface as [*SimulationError] carrying the
// step index and stage.
//
// # Thread Safety
//
// State values are plain slices and must not be shared while mutated.
// A Trajectory is owned by the run that produced it and is read-only once
// sealed.
package dynamo
