package models

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
)

// Growth is x' = rate*x applied to every component, so it works for any
// dimension. Rate 1 is exponential growth, rate -1 exponential decay.
type Growth struct {
	Rate float64
}

func NewGrowth(rate float64) *Growth {
	return &Growth{Rate: rate}
}

func (g *Growth) Derive(x dynamo.State, t float64) dynamo.State {
	return x.Scale(g.Rate)
}

func (g *Growth) Solution(x0 dynamo.State, t0 float64) dynamo.Solution {
	x0 = x0.Clone()
	return func(t float64) dynamo.State {
		return x0.Scale(math.Exp(g.Rate * (t - t0)))
	}
}

func (g *Growth) GetParams() map[string]float64 {
	return map[string]float64{"rate": g.Rate}
}

func (g *Growth) SetParam(name string, value float64) error {
	if name != "rate" {
		return errors.Wrapf(ErrInvalidParam, "unknown param: %s", name)
	}
	g.Rate = value
	return nil
}
