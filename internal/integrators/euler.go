package integrators

import (
	"github.com/san-kum/odestep/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// eulerStepper is the forward Euler method: X + dt*F(X, t).
type eulerStepper struct{}

func NewEuler() Stepper {
	return &eulerStepper{}
}

func (e *eulerStepper) Method() Method { return ForwardEuler }

func (e *eulerStepper) Step(sys dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}
	dx, err := derive(sys, x, t, 1)
	if err != nil {
		return nil, err
	}
	result := make(dynamo.State, len(x))
	floats.AddScaledTo(result, x, dt, dx)
	if err := checkUpdate(result, t+dt); err != nil {
		return nil, err
	}
	return result, nil
}

func (e *eulerStepper) sealed() {}
