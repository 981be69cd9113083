package models

import (
	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
)

// Lorenz is the Lorenz system. It has no closed form, so it is only usable
// for runs and method comparisons, not convergence studies.
type Lorenz struct {
	Sigma, Rho, Beta float64
}

func NewLorenz() *Lorenz { return &Lorenz{Sigma: 10.0, Rho: 28.0, Beta: 8.0 / 3.0} }

func (l *Lorenz) StateDim() int { return 3 }

func (l *Lorenz) Derive(s dynamo.State, _ float64) dynamo.State {
	return dynamo.State{
		l.Sigma * (s[1] - s[0]),
		s[0]*(l.Rho-s[2]) - s[1],
		s[0]*s[1] - l.Beta*s[2],
	}
}

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.Sigma, "rho": l.Rho, "beta": l.Beta}
}

func (l *Lorenz) SetParam(name string, v float64) error {
	switch name {
	case "sigma":
		l.Sigma = v
	case "rho":
		l.Rho = v
	case "beta":
		l.Beta = v
	default:
		return errors.Wrapf(ErrInvalidParam, "unknown param: %s", name)
	}
	return nil
}
