package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/models"
)

func TestEnergyDrift(t *testing.T) {
	p := models.NewPendulum()
	m := NewEnergyDrift(p)

	theta := math.Pi / 4
	m.Observe(dynamo.State{theta, 0}, 0)
	if m.Value() != 0 {
		t.Errorf("expected zero drift after one sample, got %f", m.Value())
	}

	expected := 1 - math.Cos(theta)
	if math.Abs(m.Current()-expected) > 1e-12 {
		t.Errorf("expected energy %f, got %f", expected, m.Current())
	}

	// same energy, different state
	m.Observe(dynamo.State{0, math.Sqrt(2 * expected)}, 1)
	if m.Value() > 1e-12 {
		t.Errorf("expected no drift, got %g", m.Value())
	}

	m.Observe(dynamo.State{0, math.Sqrt(4 * expected)}, 2)
	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Errorf("expected drift 1, got %f", m.Value())
	}

	m.Observe(dynamo.State{theta, 0}, 3)
	if math.Abs(m.Value()-1.0) > 1e-12 {
		t.Error("drift should report the maximum seen")
	}
}

func TestEnergyDriftReset(t *testing.T) {
	m := NewEnergyDrift(models.NewOscillator())

	m.Observe(dynamo.State{1.0, 0}, 0)
	m.Observe(dynamo.State{2.0, 0}, 1)
	if m.Value() == 0 {
		t.Error("expected non-zero drift")
	}

	m.Reset()
	if m.Value() != 0 || m.Current() != 0 {
		t.Error("expected zero drift after reset")
	}

	// zero initial energy falls back to absolute drift
	m.Observe(dynamo.State{0, 0}, 0)
	m.Observe(dynamo.State{0, 1}, 1)
	if m.Value() != 0.5 {
		t.Errorf("expected absolute drift 0.5, got %f", m.Value())
	}
}

func TestStability(t *testing.T) {
	s := NewStability(1.0)
	if s.Value() != 1.0 {
		t.Error("no samples should be fully stable")
	}

	s.Observe(dynamo.State{0.5, -0.5}, 0)
	s.Observe(dynamo.State{0.5, -1.5}, 1)
	s.Observe(dynamo.State{math.NaN(), 0}, 2)
	s.Observe(dynamo.State{1.0, 0}, 3)

	if s.Value() != 0.5 {
		t.Errorf("expected stability 0.5, got %f", s.Value())
	}
	if at, ok := s.FirstEscape(); !ok || at != 1 {
		t.Errorf("expected first escape at t=1, got %v %v", at, ok)
	}
	if !math.IsInf(s.Largest(), 1) {
		t.Errorf("non-finite sample should make the largest norm infinite, got %v", s.Largest())
	}

	s.Reset()
	if s.Value() != 1.0 {
		t.Error("expected full stability after reset")
	}
	if _, ok := s.FirstEscape(); ok {
		t.Error("reset should clear the escape time")
	}

	s.Observe(dynamo.State{-0.25, 0.75}, 0)
	if s.Largest() != 0.75 {
		t.Errorf("expected largest 0.75, got %v", s.Largest())
	}
}

func TestPeaks(t *testing.T) {
	p := NewPeaks(0)
	for i, v := range []float64{0, 1, 0, 2, 2, 1, 3, 4} {
		p.Observe(dynamo.State{v, 0}, float64(i))
	}

	peaks := p.Peaks()
	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %v", peaks)
	}
	if peaks[0] != (Peak{Time: 1, Value: 1}) || peaks[1] != (Peak{Time: 3, Value: 2}) {
		t.Errorf("unexpected peaks %v", peaks)
	}
	if p.Value() != 2 {
		t.Errorf("expected ratio 2, got %f", p.Value())
	}
	if p.Name() != "peak_ratio_x0" {
		t.Errorf("unexpected name %s", p.Name())
	}

	p.Reset()
	if len(p.Peaks()) != 0 || p.Value() != 0 {
		t.Error("expected no peaks after reset")
	}

	// out of range component is ignored
	q := NewPeaks(5)
	q.Observe(dynamo.State{1}, 0)
	if len(q.Peaks()) != 0 {
		t.Error("expected no peaks")
	}
}
