package integrators

import (
	"github.com/san-kum/odestep/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// euler2Stepper takes a half Euler step to an estimated midpoint, evaluates F
// there, and applies half of that increment on top of the estimate:
//
//	X~ = X + dt/2*F(X, t)
//	k2 = dt*F(X~, t+dt/2)
//	X' = X~ + k2/2
type euler2Stepper struct{}

func NewEuler2() Stepper {
	return &euler2Stepper{}
}

func (e *euler2Stepper) Method() Method { return Euler2 }

func (e *euler2Stepper) Step(sys dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}
	n := len(x)
	halfDt := 0.5 * dt

	f1, err := derive(sys, x, t, 1)
	if err != nil {
		return nil, err
	}
	mid := make(dynamo.State, n)
	floats.AddScaledTo(mid, x, halfDt, f1)

	f2, err := derive(sys, mid, t+halfDt, 2)
	if err != nil {
		return nil, err
	}
	k2 := make(dynamo.State, n)
	floats.ScaleTo(k2, dt, f2)

	result := make(dynamo.State, n)
	floats.AddScaledTo(result, mid, 0.5, k2)
	if err := checkUpdate(result, t+dt); err != nil {
		return nil, err
	}
	return result, nil
}

func (e *euler2Stepper) sealed() {}
