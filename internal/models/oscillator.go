package models

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
)

// ErrInvalidParam is returned by SetParam for unknown names or bad values.
var ErrInvalidParam = errors.New("models: invalid parameter")

// Oscillator is the linear harmonic oscillator theta'' + omega^2 theta = 0
// written as the first-order system (theta, Omega).
type Oscillator struct {
	Omega float64
}

func NewOscillator() *Oscillator {
	return &Oscillator{Omega: 1.0}
}

func (o *Oscillator) StateDim() int { return 2 }

func (o *Oscillator) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -o.Omega * o.Omega * x[0]}
}

func (o *Oscillator) Energy(x dynamo.State) float64 {
	return 0.5 * (x[1]*x[1] + o.Omega*o.Omega*x[0]*x[0])
}

// Solution is the closed form starting from (theta0, Omega0) at t0.
func (o *Oscillator) Solution(x0 dynamo.State, t0 float64) dynamo.Solution {
	w := o.Omega
	theta0, v0 := x0[0], x0[1]
	return func(t float64) dynamo.State {
		s, c := math.Sincos(w * (t - t0))
		return dynamo.State{
			theta0*c + v0/w*s,
			-theta0*w*s + v0*c,
		}
	}
}

func (o *Oscillator) GetParams() map[string]float64 {
	return map[string]float64{"omega": o.Omega}
}

func (o *Oscillator) SetParam(name string, value float64) error {
	if name != "omega" {
		return errors.Wrapf(ErrInvalidParam, "unknown param: %s", name)
	}
	if value <= 0 {
		return errors.Wrapf(ErrInvalidParam, "omega must be positive, got %g", value)
	}
	o.Omega = value
	return nil
}
