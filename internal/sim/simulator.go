package sim

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/logger"
)

var defaultLog = logger.NewLogger("WARNING", "sim")

type Simulator struct {
	sys       dynamo.System
	stepper   integrators.Stepper
	metrics   []Metric
	observers []Observer
	log       logger.Logger
}

func New(sys dynamo.System, stepper integrators.Stepper) *Simulator {
	return &Simulator{
		sys:       sys,
		stepper:   stepper,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       defaultLog,
	}
}

func (s *Simulator) AddMetric(m Metric)          { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)      { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(log logger.Logger) { s.log = log }

// Run advances x0 cfg.Steps times and records every sample. Invalid
// configuration is rejected before F is evaluated. On a step fault the
// returned result holds the samples recorded before the failing step and
// the error is a *dynamo.SimulationError.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(x0) == 0 {
		return nil, dynamo.ErrEmptyState
	}
	if err := dynamo.CheckDim(s.sys, x0); err != nil {
		return nil, errors.Wrap(err, "initial state")
	}
	if !x0.IsValid() {
		return nil, errors.Wrap(dynamo.ErrNonFinite, "initial state")
	}

	counted := dynamo.NewCounted(s.sys)
	traj := dynamo.NewTrajectory(cfg.Steps + 1)
	result := &Result{
		Trajectory: traj,
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := cfg.T0
	if err := traj.Record(t, x); err != nil {
		return nil, err
	}
	s.observe(0, x, t)

	s.log.Debugf("%s: %d steps of dt=%g from t=%g (dim %d)", s.stepper.Method(), cfg.Steps, cfg.Dt, cfg.T0, len(x0))

	var runErr error
	for i := 0; i < cfg.Steps; i++ {
		select {
		case <-ctx.Done():
			runErr = errors.Mark(ctx.Err(), dynamo.ErrCanceled)
		default:
		}
		if runErr != nil {
			break
		}

		next, err := s.stepper.Step(counted, x, t, cfg.Dt)
		if err != nil {
			runErr = s.fault(i, x, t, err)
			break
		}

		tNext := cfg.T0 + float64(i+1)*cfg.Dt
		if err := traj.Record(tNext, next); err != nil {
			runErr = &dynamo.SimulationError{Step: i, Stage: dynamo.StageUpdate, Time: t, State: x.Clone(), Wrapped: err}
			break
		}

		x, t = next, tNext
		s.observe(i+1, x, t)
	}

	traj.Seal()
	result.Evaluations = counted.Calls()
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	if runErr != nil {
		return result, runErr
	}
	s.log.Debugf("%s: finished at t=%g after %d evaluations", s.stepper.Method(), t, result.Evaluations)
	return result, nil
}

func (s *Simulator) observe(step int, x dynamo.State, t float64) {
	for _, m := range s.metrics {
		m.Observe(x, t)
	}
	for _, o := range s.observers {
		o.OnStep(step, x, t)
	}
}

func (s *Simulator) fault(step int, x dynamo.State, t float64, err error) error {
	simErr := &dynamo.SimulationError{Step: step, Time: t, State: x.Clone(), Wrapped: err}
	var se *dynamo.StageError
	if errors.As(err, &se) {
		simErr.Stage = se.Stage
		simErr.Time = se.Time
		simErr.Wrapped = se.Err
	}
	s.log.Warningf("%s: %v", s.stepper.Method(), simErr)
	return simErr
}

// Integrate runs method on sys for n steps of dt from (t0, x0) and returns
// the sealed trajectory of n+1 samples.
func Integrate(ctx context.Context, method integrators.Method, sys dynamo.System, x0 dynamo.State, t0, dt float64, n int) (*dynamo.Trajectory, error) {
	stepper, err := integrators.New(method)
	if err != nil {
		return nil, err
	}
	result, err := New(sys, stepper).Run(ctx, x0, Config{T0: t0, Dt: dt, Steps: n})
	if err != nil {
		return nil, err
	}
	return result.Trajectory, nil
}
