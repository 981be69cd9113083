package dynamo

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/floats"
)

// State is a fixed-dimension real vector. A scalar ODE is the dimension-1
// case.
type State []float64

// NewState returns a zero State of the given dimension.
func NewState(dim int) State {
	if dim < 1 {
		return nil
	}
	return make(State, dim)
}

// Of builds a State from its components.
func Of(values ...float64) State {
	s := make(State, len(values))
	copy(s, values)
	return s
}

func (s State) Dim() int { return len(s) }

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Norm is the Euclidean norm.
func (s State) Norm() float64 {
	return floats.Norm(s, 2)
}

func (s State) MaxNorm() float64 {
	if len(s) == 0 {
		return 0
	}
	return floats.Norm(s, math.Inf(1))
}

func (s State) Add(other State) (State, error) {
	if err := checkDims(s, other); err != nil {
		return nil, err
	}
	return floats.AddTo(make(State, len(s)), s, other), nil
}

func (s State) Sub(other State) (State, error) {
	if err := checkDims(s, other); err != nil {
		return nil, err
	}
	return floats.SubTo(make(State, len(s)), s, other), nil
}

func (s State) Scale(factor float64) State {
	return floats.ScaleTo(make(State, len(s)), factor, s)
}

// AddScaled returns s + alpha*other.
func (s State) AddScaled(alpha float64, other State) (State, error) {
	if err := checkDims(s, other); err != nil {
		return nil, err
	}
	return floats.AddScaledTo(make(State, len(s)), s, alpha, other), nil
}

// Distance is the max-norm of s - other.
func (s State) Distance(other State) (float64, error) {
	if err := checkDims(s, other); err != nil {
		return 0, err
	}
	if len(s) == 0 {
		return 0, nil
	}
	return floats.Distance(s, other, math.Inf(1)), nil
}

func checkDims(a, b State) error {
	if len(a) != len(b) {
		return errors.Wrapf(ErrDimensionMismatch, "%d vs %d", len(a), len(b))
	}
	return nil
}

// Add is the package-level form of State.Add.
func Add(a, b State) (State, error) { return a.Add(b) }

// Scale is the package-level form of State.Scale.
func Scale(s State, factor float64) State { return s.Scale(factor) }
