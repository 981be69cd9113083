package experiment

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/sim"
)

var ErrNotSetup = errors.New("experiment: not set up")

type Config struct {
	Model     string
	Method    string
	InitState []float64
	T0        float64
	Dt        float64
	Steps     int
	Params    map[string]float64
}

type Experiment struct {
	cfg       Config
	sys       dynamo.System
	simulator *sim.Simulator
	metrics   []sim.Metric
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Setup(sys dynamo.System, stepper integrators.Stepper, metrics []sim.Metric) error {
	if sys == nil || stepper == nil {
		return errors.New("experiment: setup needs a system and a stepper")
	}
	e.sys = sys
	e.simulator = sim.New(sys, stepper)
	for _, m := range metrics {
		e.simulator.AddMetric(m)
	}
	e.metrics = metrics
	return nil
}

// Build resolves the model and method of cfg through r and sets up an
// experiment with the default metrics.
func (r *Registry) Build(cfg Config) (*Experiment, error) {
	sys, err := r.GetModelWithParams(cfg.Model, cfg.Params)
	if err != nil {
		return nil, err
	}
	stepper, err := r.GetStepper(cfg.Method)
	if err != nil {
		return nil, err
	}
	if len(cfg.InitState) > 0 {
		if err := dynamo.CheckDim(sys, cfg.InitState); err != nil {
			return nil, errors.Wrapf(err, "model %q", cfg.Model)
		}
	}

	e := New(cfg)
	if err := e.Setup(sys, stepper, r.DefaultMetrics(sys)); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, ErrNotSetup
	}

	x0 := make(dynamo.State, len(e.cfg.InitState))
	copy(x0, e.cfg.InitState)

	simCfg := sim.Config{
		T0:    e.cfg.T0,
		Dt:    e.cfg.Dt,
		Steps: e.cfg.Steps,
	}

	return e.simulator.Run(ctx, x0, simCfg)
}

func (e *Experiment) Config() Config { return e.cfg }

func (e *Experiment) System() dynamo.System { return e.sys }

// Metrics returns the metrics attached at setup. They hold the state of the
// last run.
func (e *Experiment) Metrics() []sim.Metric { return e.metrics }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}
