package models

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
)

// Pendulum is the nonlinear pendulum with state (theta, omega):
//
//	theta' = omega
//	omega' = -(g/L) sin(theta) - c*omega
//
// The defaults (g = L = 1, c = 0) give the nondimensional form.
type Pendulum struct {
	Gravity float64
	Length  float64
	Damping float64
}

func NewPendulum() *Pendulum {
	return &Pendulum{
		Gravity: 1.0,
		Length:  1.0,
		Damping: 0.0,
	}
}

func (p *Pendulum) StateDim() int {
	return 2
}

func (p *Pendulum) Derive(x dynamo.State, t float64) dynamo.State {
	theta := x[0]
	omega := x[1]
	alpha := -p.Gravity/p.Length*math.Sin(theta) - p.Damping*omega
	return dynamo.State{omega, alpha}
}

// Energy per unit mass: kinetic plus potential relative to the lowest point.
func (p *Pendulum) Energy(x dynamo.State) float64 {
	v := p.Length * x[1]
	return 0.5*v*v + p.Gravity*p.Length*(1.0-math.Cos(x[0]))
}

func (p *Pendulum) GetParams() map[string]float64 {
	return map[string]float64{
		"gravity": p.Gravity,
		"length":  p.Length,
		"damping": p.Damping,
	}
}

func (p *Pendulum) SetParam(name string, value float64) error {
	switch name {
	case "gravity":
		p.Gravity = value
	case "length":
		if value <= 0 {
			return errors.Wrapf(ErrInvalidParam, "length must be positive, got %g", value)
		}
		p.Length = value
	case "damping":
		p.Damping = value
	default:
		return errors.Wrapf(ErrInvalidParam, "unknown param: %s", name)
	}
	return nil
}
