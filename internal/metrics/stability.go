package metrics

import (
	"math"

	"github.com/san-kum/odestep/internal/dynamo"
)

// Stability tracks how long a trajectory stays inside the box |x_i| <= bound.
// Value is the fraction of samples inside it; a sample with a non-finite
// component is outside.
type Stability struct {
	bound   float64
	inside  int
	total   int
	escaped bool
	escapeT float64
	largest float64
}

func NewStability(bound float64) *Stability {
	return &Stability{bound: bound}
}

func (s *Stability) Name() string { return "stability" }

func (s *Stability) Observe(x dynamo.State, t float64) {
	s.total++
	if !x.IsValid() {
		s.escape(t)
		s.largest = math.Inf(1)
		return
	}
	norm := x.MaxNorm()
	s.largest = math.Max(s.largest, norm)
	if norm > s.bound {
		s.escape(t)
		return
	}
	s.inside++
}

func (s *Stability) escape(t float64) {
	if !s.escaped {
		s.escaped, s.escapeT = true, t
	}
}

func (s *Stability) Value() float64 {
	if s.total == 0 {
		return 1.0
	}
	return float64(s.inside) / float64(s.total)
}

// FirstEscape is the time of the first sample outside the box.
func (s *Stability) FirstEscape() (float64, bool) {
	return s.escapeT, s.escaped
}

// Largest is the biggest max-norm observed so far.
func (s *Stability) Largest() float64 { return s.largest }

func (s *Stability) Reset() {
	*s = Stability{bound: s.bound}
}
