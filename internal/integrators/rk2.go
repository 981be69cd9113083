package integrators

import (
	"github.com/san-kum/odestep/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// rk2Stepper is the classical midpoint method.
//
//	k1 = dt*F(X, t)
//	k2 = dt*F(X + k1/2, t+dt/2)
//	X' = X + k2
type rk2Stepper struct{}

func NewRK2() Stepper {
	return &rk2Stepper{}
}

func (r *rk2Stepper) Method() Method { return RK2 }

func (r *rk2Stepper) Step(sys dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}
	n := len(x)

	f1, err := derive(sys, x, t, 1)
	if err != nil {
		return nil, err
	}
	k1 := make(dynamo.State, n)
	floats.ScaleTo(k1, dt, f1)

	mid := make(dynamo.State, n)
	floats.AddScaledTo(mid, x, 0.5, k1)
	f2, err := derive(sys, mid, t+0.5*dt, 2)
	if err != nil {
		return nil, err
	}
	k2 := make(dynamo.State, n)
	floats.ScaleTo(k2, dt, f2)

	result := make(dynamo.State, n)
	floats.AddTo(result, x, k2)
	if err := checkUpdate(result, t+dt); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *rk2Stepper) sealed() {}
