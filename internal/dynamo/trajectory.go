package dynamo

import "github.com/cockroachdb/errors"

// Sample is one recorded point of a trajectory.
type Sample struct {
	Time  float64
	State State
}

// Trajectory is an append-only record of samples. Recorded states are
// copied in and copied out, so neither the producer nor readers can alias
// an entry. Once sealed it is immutable.
type Trajectory struct {
	samples []Sample
	sealed  bool
}

// NewTrajectory returns an empty trajectory with room for capacity samples.
func NewTrajectory(capacity int) *Trajectory {
	if capacity < 0 {
		capacity = 0
	}
	return &Trajectory{samples: make([]Sample, 0, capacity)}
}

// Record appends (t, x). The first sample fixes the dimension; later
// samples must match it and have a strictly larger time.
func (tr *Trajectory) Record(t float64, x State) error {
	if tr.sealed {
		return ErrTrajectorySealed
	}
	if len(x) == 0 {
		return ErrEmptyState
	}
	if n := len(tr.samples); n > 0 {
		last := tr.samples[n-1]
		if len(x) != len(last.State) {
			return errors.Wrapf(ErrDimensionMismatch, "sample %d has dimension %d, trajectory has %d", n, len(x), len(last.State))
		}
		if !(t > last.Time) {
			return errors.Wrapf(ErrTimeNotIncreasing, "t=%g after t=%g", t, last.Time)
		}
	}
	tr.samples = append(tr.samples, Sample{Time: t, State: x.Clone()})
	return nil
}

// Seal freezes the trajectory.
func (tr *Trajectory) Seal() { tr.sealed = true }

func (tr *Trajectory) Sealed() bool { return tr.sealed }

func (tr *Trajectory) Len() int { return len(tr.samples) }

// Dim is the state dimension, 0 while empty.
func (tr *Trajectory) Dim() int {
	if len(tr.samples) == 0 {
		return 0
	}
	return len(tr.samples[0].State)
}

// At returns a copy of sample i.
func (tr *Trajectory) At(i int) Sample {
	s := tr.samples[i]
	return Sample{Time: s.Time, State: s.State.Clone()}
}

func (tr *Trajectory) Initial() Sample { return tr.At(0) }

func (tr *Trajectory) Final() Sample { return tr.At(len(tr.samples) - 1) }

// Samples returns a copy of all samples in time order.
func (tr *Trajectory) Samples() []Sample {
	out := make([]Sample, len(tr.samples))
	for i := range tr.samples {
		out[i] = tr.At(i)
	}
	return out
}

func (tr *Trajectory) Times() []float64 {
	out := make([]float64, len(tr.samples))
	for i, s := range tr.samples {
		out[i] = s.Time
	}
	return out
}

func (tr *Trajectory) States() []State {
	out := make([]State, len(tr.samples))
	for i, s := range tr.samples {
		out[i] = s.State.Clone()
	}
	return out
}

// Component returns the time series of state component i.
func (tr *Trajectory) Component(i int) ([]float64, error) {
	if i < 0 || i >= tr.Dim() {
		return nil, errors.Newf("dynamo: component %d out of range for dimension %d", i, tr.Dim())
	}
	out := make([]float64, len(tr.samples))
	for k, s := range tr.samples {
		out[k] = s.State[i]
	}
	return out, nil
}
