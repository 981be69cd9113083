package experiment

import (
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/convergence"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/metrics"
	"github.com/san-kum/odestep/internal/models"
	"github.com/san-kum/odestep/internal/sim"
)

var (
	ErrUnknownModel = errors.New("experiment: unknown model")
	ErrNoSolution   = errors.New("experiment: model has no closed-form solution")
)

// DefaultStabilityThreshold bounds every component for the stability metric.
const DefaultStabilityThreshold = 10.0

type Registry struct {
	models map[string]func() dynamo.System
}

func NewRegistry() *Registry {
	r := &Registry{
		models: make(map[string]func() dynamo.System),
	}

	r.models["growth"] = func() dynamo.System { return models.NewGrowth(1) }
	r.models["decay"] = func() dynamo.System { return models.NewGrowth(-1) }
	r.models["oscillator"] = func() dynamo.System { return models.NewOscillator() }
	r.models["pendulum"] = func() dynamo.System { return models.NewPendulum() }
	r.models["lorenz"] = func() dynamo.System { return models.NewLorenz() }
	r.models["vanderpol"] = func() dynamo.System { return models.NewVanDerPol() }

	return r
}

// Register adds or replaces a model constructor.
func (r *Registry) Register(name string, fn func() dynamo.System) {
	r.models[name] = fn
}

func (r *Registry) GetModel(name string) (dynamo.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownModel, "%q", name)
	}
	return fn(), nil
}

// GetModelWithParams builds a model and applies params through SetParam.
func (r *Registry) GetModelWithParams(name string, params map[string]float64) (dynamo.System, error) {
	sys, err := r.GetModel(name)
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return sys, nil
	}

	cfg, ok := sys.(dynamo.Configurable)
	if !ok {
		return nil, errors.Newf("experiment: model %q takes no parameters", name)
	}
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := cfg.SetParam(k, params[k]); err != nil {
			return nil, errors.Wrapf(err, "model %q", name)
		}
	}
	return sys, nil
}

func (r *Registry) GetStepper(name string) (integrators.Stepper, error) {
	m, err := integrators.ParseMethod(name)
	if err != nil {
		return nil, err
	}
	return integrators.New(m)
}

// ListModels returns the registered model names in sorted order.
func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics picks the metrics that make sense for sys: energy drift for
// Hamiltonian systems, peaks of the first component, and stability.
func (r *Registry) DefaultMetrics(sys dynamo.System) []sim.Metric {
	var ms []sim.Metric
	if h, ok := sys.(dynamo.Hamiltonian); ok {
		ms = append(ms, metrics.NewEnergyDrift(h))
	}
	ms = append(ms,
		metrics.NewPeaks(0),
		metrics.NewStability(DefaultStabilityThreshold),
	)
	return ms
}

// Reference returns the closed-form solution of sys from (t0, x0).
func Reference(sys dynamo.System, x0 dynamo.State, t0 float64) (dynamo.Solution, error) {
	s, ok := sys.(dynamo.Solvable)
	if !ok {
		return nil, ErrNoSolution
	}
	if err := dynamo.CheckDim(sys, x0); err != nil {
		return nil, err
	}
	return s.Solution(x0, t0), nil
}

// Study builds a convergence study of method on the named model against its
// closed-form solution.
func (r *Registry) Study(model string, params map[string]float64, method integrators.Method, x0 dynamo.State, t0, span float64, ns []int) (convergence.Study, error) {
	sys, err := r.GetModelWithParams(model, params)
	if err != nil {
		return convergence.Study{}, err
	}
	ref, err := Reference(sys, x0, t0)
	if err != nil {
		return convergence.Study{}, errors.Wrapf(err, "model %q", model)
	}
	return convergence.Study{
		Method:    method,
		System:    sys,
		X0:        x0,
		T0:        t0,
		Span:      span,
		Reference: ref,
		Ns:        ns,
	}, nil
}
