// Package convergence measures the empirical order of accuracy of a method by
// running it over a fixed span at several step counts and comparing against a
// reference solution.
package convergence

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/logger"
	"github.com/san-kum/odestep/internal/sim"
)

var (
	ErrInvalidStudy  = errors.New("convergence: invalid study")
	ErrOrderMismatch = errors.New("convergence: observed order out of tolerance")
)

// Study describes one convergence experiment: Method is run on System from
// (T0, X0) over [T0, T0+Span] with N steps for every N in Ns.
type Study struct {
	Method    integrators.Method
	System    dynamo.System
	X0        dynamo.State
	T0        float64
	Span      float64
	Reference dynamo.Solution
	Ns        []int
}

func (s Study) Validate() error {
	if !s.Method.Valid() {
		return errors.Wrapf(integrators.ErrUnknownMethod, "method %d", uint8(s.Method))
	}
	if s.System == nil {
		return errors.Wrap(ErrInvalidStudy, "nil system")
	}
	if s.Reference == nil {
		return errors.Wrap(ErrInvalidStudy, "nil reference solution")
	}
	if len(s.X0) == 0 {
		return errors.Wrap(ErrInvalidStudy, "empty initial state")
	}
	if err := dynamo.CheckDim(s.System, s.X0); err != nil {
		return errors.Mark(err, ErrInvalidStudy)
	}
	if !(s.Span > 0) || math.IsInf(s.Span, 0) {
		return errors.Wrapf(ErrInvalidStudy, "span must be positive and finite, got %g", s.Span)
	}
	if len(s.Ns) == 0 {
		return errors.Wrap(ErrInvalidStudy, "no step counts")
	}
	for i, n := range s.Ns {
		if n <= 0 {
			return errors.Wrapf(ErrInvalidStudy, "step count %d must be positive", n)
		}
		if i > 0 && n <= s.Ns[i-1] {
			return errors.Wrapf(ErrInvalidStudy, "step counts must be strictly increasing: %d after %d", n, s.Ns[i-1])
		}
	}
	return nil
}

// Point is the maximum error of one run with N steps of size Dt.
type Point struct {
	N     int
	Dt    float64
	Error float64
}

var defaultLog = logger.NewLogger("WARNING", "convergence")

type Analyzer struct {
	workers int
	log     logger.Logger
}

// NewAnalyzer runs at most workers simulations at once; workers <= 0 means
// GOMAXPROCS.
func NewAnalyzer(workers int, log logger.Logger) *Analyzer {
	if log == nil {
		log = defaultLog
	}
	return &Analyzer{workers: workers, log: log}
}

// Analyze runs every N of the study concurrently and reports the error of
// each run, the observed order between successive runs, and the fitted order.
func (a *Analyzer) Analyze(ctx context.Context, s Study) (*Report, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	jobs := make([]sim.Job, len(s.Ns))
	for i, n := range s.Ns {
		jobs[i] = sim.Job{
			Method: s.Method,
			X0:     s.X0,
			Config: sim.SpanConfig(s.T0, s.Span, n),
		}
	}

	results, err := sim.RunBatch(ctx, s.System, jobs, a.workers)
	if err != nil {
		return nil, errors.Wrapf(err, "convergence study for %s", s.Method)
	}

	points := make([]Point, len(results))
	for i, res := range results {
		e, err := MaxError(res.Trajectory, s.Reference)
		if err != nil {
			return nil, errors.Wrapf(err, "N=%d", s.Ns[i])
		}
		points[i] = Point{N: s.Ns[i], Dt: jobs[i].Config.Dt, Error: e}
		a.log.Debugf("%s N=%d dt=%g error=%.3e", s.Method, points[i].N, points[i].Dt, e)
	}

	report := &Report{
		Method: s.Method,
		Points: points,
		Orders: ObservedOrders(points),
		Fitted: FitOrder(points),
	}
	a.log.Infof("%s: fitted order %.3f over %d runs", s.Method, report.Fitted, len(points))
	return report, nil
}

// MaxError is the maximum over all samples of the max-norm distance between
// the trajectory and the reference evaluated at the sample time.
func MaxError(traj *dynamo.Trajectory, ref dynamo.Solution) (float64, error) {
	maxErr := 0.0
	for _, sample := range traj.Samples() {
		d, err := sample.State.Distance(ref(sample.Time))
		if err != nil {
			return 0, errors.Wrapf(err, "reference at t=%g", sample.Time)
		}
		if d > maxErr || math.IsNaN(d) {
			maxErr = d
		}
	}
	return maxErr, nil
}

// PowersOfTwo returns every power of two in [lo, hi].
func PowersOfTwo(lo, hi int) []int {
	var ns []int
	for n := 1; n <= hi && n > 0; n *= 2 {
		if n >= lo {
			ns = append(ns, n)
		}
	}
	return ns
}
