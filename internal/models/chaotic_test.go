package models

import (
	"math"
	"testing"

	"github.com/san-kum/odestep/internal/dynamo"
)

func TestLorenzFixedPoint(t *testing.T) {
	l := NewLorenz()

	if dx := l.Derive(dynamo.State{0, 0, 0}, 0); dx[0] != 0 || dx[1] != 0 || dx[2] != 0 {
		t.Errorf("origin should be a fixed point, got %v", dx)
	}

	dx := l.Derive(dynamo.State{1, 1, 1}, 0)
	want := dynamo.State{0, 26, 1 - l.Beta}
	for i := range want {
		if math.Abs(dx[i]-want[i]) > 1e-15 {
			t.Errorf("component %d: got %v, want %v", i, dx[i], want[i])
		}
	}

	if err := l.SetParam("rho", 14); err != nil || l.Rho != 14 {
		t.Errorf("rho not set: %v", err)
	}
	if err := l.SetParam("gamma", 1); err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestVanDerPolReducesToOscillator(t *testing.T) {
	v := NewVanDerPol()
	o := NewOscillator()

	if err := v.SetParam("mu", 0); err != nil {
		t.Fatal(err)
	}
	x := dynamo.State{0.3, -0.2}
	got, want := v.Derive(x, 0), o.Derive(x, 0)
	if got[0] != want[0] || got[1] != want[1] {
		t.Errorf("mu=0 should match the harmonic oscillator: %v vs %v", got, want)
	}

	v.Mu = 1
	if dx := v.Derive(dynamo.State{2, 1}, 0); dx[1] != -5 {
		t.Errorf("expected y' = -5, got %v", dx[1])
	}
}
