package integrators

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
)

// ErrUnknownMethod is returned for a method name or tag outside the closed set.
var ErrUnknownMethod = errors.New("integrators: unknown method")

// Method tags one of the fixed-step explicit schemes.
type Method uint8

const (
	ForwardEuler Method = iota + 1
	Euler2
	RK2
	RK4
)

var methodNames = map[Method]string{
	ForwardEuler: "euler",
	Euler2:       "euler2",
	RK2:          "rk2",
	RK4:          "rk4",
}

// Methods returns every method in a fixed order.
func Methods() []Method {
	return []Method{ForwardEuler, Euler2, RK2, RK4}
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}
	return "unknown"
}

func (m Method) Valid() bool {
	_, ok := methodNames[m]
	return ok
}

// Stages is the number of F evaluations per step.
func (m Method) Stages() int {
	switch m {
	case ForwardEuler:
		return 1
	case Euler2, RK2:
		return 2
	case RK4:
		return 4
	}
	return 0
}

// Order is the global order of accuracy. Euler2 chains two half-weight
// Euler corrections and is consistent only to first order.
func (m Method) Order() int {
	switch m {
	case ForwardEuler, Euler2:
		return 1
	case RK2:
		return 2
	case RK4:
		return 4
	}
	return 0
}

// ParseMethod resolves a case-insensitive method name.
func ParseMethod(name string) (Method, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for m, n := range methodNames {
		if n == name {
			return m, nil
		}
	}
	switch name {
	case "forward_euler", "forward-euler":
		return ForwardEuler, nil
	case "midpoint":
		return RK2, nil
	}
	return 0, errors.Wrapf(ErrUnknownMethod, "%q", name)
}

// New returns the stepper for m.
func New(m Method) (Stepper, error) {
	switch m {
	case ForwardEuler:
		return NewEuler(), nil
	case Euler2:
		return NewEuler2(), nil
	case RK2:
		return NewRK2(), nil
	case RK4:
		return NewRK4(), nil
	}
	return nil, errors.Wrapf(ErrUnknownMethod, "tag %d", uint8(m))
}

// Stepper advances a state by one fixed step. The set of implementations is
// closed; steppers carry no mutable state and are safe for concurrent use.
type Stepper interface {
	Method() Method
	Step(sys dynamo.System, x dynamo.State, t, dt float64) (dynamo.State, error)
	sealed()
}

// derive evaluates one stage and checks its dimension and finiteness.
func derive(sys dynamo.System, x dynamo.State, t float64, stage int) (dynamo.State, error) {
	dx := sys.Derive(x, t)
	if len(dx) != len(x) {
		return nil, &dynamo.StageError{
			Stage: stage,
			Time:  t,
			Err:   errors.Wrapf(dynamo.ErrDimensionMismatch, "F returned dimension %d for state of dimension %d", len(dx), len(x)),
		}
	}
	if !dx.IsValid() {
		return nil, &dynamo.StageError{Stage: stage, Time: t, Err: dynamo.ErrNonFinite}
	}
	return dx, nil
}

func checkUpdate(x dynamo.State, t float64) error {
	if !x.IsValid() {
		return &dynamo.StageError{Stage: dynamo.StageUpdate, Time: t, Err: dynamo.ErrNonFinite}
	}
	return nil
}

func checkInput(x dynamo.State) error {
	if len(x) == 0 {
		return dynamo.ErrEmptyState
	}
	return nil
}
