package integrators

import (
	"github.com/san-kum/odestep/internal/dynamo"
	"gonum.org/v1/gonum/floats"
)

// Classical RK4 tableau. The weights solve the order conditions up to dt^4
// for the nodes (0, 1/2, 1/2, 1).
var (
	rk4Nodes   = [4]float64{0, 1.0 / 2.0, 1.0 / 2.0, 1}
	rk4Weights = [4]float64{1.0 / 6.0, 1.0 / 3.0, 1.0 / 3.0, 1.0 / 6.0}
)

type rk4Stepper struct{}

func NewRK4() Stepper {
	return &rk4Stepper{}
}

func (r *rk4Stepper) Method() Method { return RK4 }

func (r *rk4Stepper) Step(sys dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error) {
	if err := checkInput(x); err != nil {
		return nil, err
	}
	n := len(x)

	var k [4]dynamo.State
	scratch := make(dynamo.State, n)

	for stage := 0; stage < 4; stage++ {
		// stage input: X, X + k1/2, X + k2/2, X + k3
		switch stage {
		case 0:
			copy(scratch, x)
		case 3:
			floats.AddTo(scratch, x, k[2])
		default:
			floats.AddScaledTo(scratch, x, 0.5, k[stage-1])
		}

		f, err := derive(sys, scratch, t+rk4Nodes[stage]*dt, stage+1)
		if err != nil {
			return nil, err
		}
		k[stage] = make(dynamo.State, n)
		floats.ScaleTo(k[stage], dt, f)
	}

	result := x.Clone()
	for stage := 0; stage < 4; stage++ {
		floats.AddScaled(result, rk4Weights[stage], k[stage])
	}
	if err := checkUpdate(result, t+dt); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *rk4Stepper) sealed() {}
