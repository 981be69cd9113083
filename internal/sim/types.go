package sim

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
)

// Metric accumulates a scalar over every recorded sample of a run.
type Metric interface {
	Name() string
	Observe(x dynamo.State, t float64)
	Value() float64
	Reset()
}

// Observer is notified of every recorded sample, including the initial one.
type Observer interface {
	OnStep(step int, x dynamo.State, t float64)
}

// Config describes one fixed-step run: Steps advances of Dt starting at T0.
type Config struct {
	T0    float64
	Dt    float64
	Steps int
}

// SpanConfig splits [t0, t0+span] into n equal steps.
func SpanConfig(t0, span float64, n int) Config {
	cfg := Config{T0: t0, Steps: n}
	if n > 0 {
		cfg.Dt = span / float64(n)
	}
	return cfg
}

// End is the time of the last sample.
func (c Config) End() float64 {
	return c.T0 + float64(c.Steps)*c.Dt
}

func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return errors.Wrapf(dynamo.ErrInvalidStepSize, "dt=%g", c.Dt)
	}
	if c.Steps < 0 {
		return errors.Wrapf(dynamo.ErrInvalidStepCount, "steps=%d", c.Steps)
	}
	if math.IsNaN(c.T0) || math.IsInf(c.T0, 0) {
		return errors.Newf("sim: initial time must be finite, got %g", c.T0)
	}
	return nil
}

type Result struct {
	Trajectory  *dynamo.Trajectory
	Evaluations int
	Metrics     map[string]float64
}
