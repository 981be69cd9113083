package dynamo

import (
	"sync/atomic"

	"github.com/cockroachdb/errors"
)

// Func adapts a plain function to System.
type Func func(x State, t float64) State

func (f Func) Derive(x State, t float64) State { return f(x, t) }

// Solution maps a time to a reference state.
type Solution func(t float64) State

// Solvable is implemented by systems with a closed-form solution.
type Solvable interface {
	Solution(x0 State, t0 float64) Solution
}

// Dimensioned is implemented by systems defined only for one state dimension.
type Dimensioned interface {
	StateDim() int
}

// CheckDim rejects x when sys declares a different state dimension.
// Systems without a fixed dimension accept any x.
func CheckDim(sys System, x State) error {
	d, ok := sys.(Dimensioned)
	if !ok || d.StateDim() == len(x) {
		return nil
	}
	return errors.Wrapf(ErrDimensionMismatch, "system needs dimension %d, state has %d", d.StateDim(), len(x))
}

type Hamiltonian interface {
	Energy(x State) float64
}

type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Counted wraps a System and counts Derive calls. Safe for concurrent use.
type Counted struct {
	sys   System
	calls atomic.Int64
}

func NewCounted(sys System) *Counted {
	return &Counted{sys: sys}
}

func (c *Counted) Derive(x State, t float64) State {
	c.calls.Add(1)
	return c.sys.Derive(x, t)
}

func (c *Counted) Calls() int { return int(c.calls.Load()) }

func (c *Counted) Reset() { c.calls.Store(0) }
