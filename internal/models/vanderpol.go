package models

import (
	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
)

// VanDerPol implements the Van der Pol oscillator with state (x, y), y = x':
//
//	x' = y
//	y' = mu(1 - x²)y - x
type VanDerPol struct {
	Mu float64
}

func NewVanDerPol() *VanDerPol {
	return &VanDerPol{Mu: 1.0}
}

func (v *VanDerPol) StateDim() int { return 2 }

func (v *VanDerPol) Derive(state dynamo.State, _ float64) dynamo.State {
	x, y := state[0], state[1]
	return dynamo.State{y, v.Mu*(1-x*x)*y - x}
}

func (v *VanDerPol) GetParams() map[string]float64 {
	return map[string]float64{"mu": v.Mu}
}

func (v *VanDerPol) SetParam(name string, value float64) error {
	if name != "mu" {
		return errors.Wrapf(ErrInvalidParam, "unknown param: %s", name)
	}
	v.Mu = value
	return nil
}
