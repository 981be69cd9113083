package models

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
)

func TestPendulumEquilibrium(t *testing.T) {
	p := NewPendulum()

	dx := p.Derive(dynamo.State{0, 0}, 0)

	if math.Abs(dx[0]) > 1e-10 {
		t.Errorf("expected zero velocity at equilibrium, got %f", dx[0])
	}
	if math.Abs(dx[1]) > 1e-10 {
		t.Errorf("expected zero acceleration at equilibrium, got %f", dx[1])
	}
}

func TestPendulumDimensions(t *testing.T) {
	p := NewPendulum()

	if p.StateDim() != 2 {
		t.Errorf("expected state dim 2, got %d", p.StateDim())
	}
	if dx := p.Derive(dynamo.State{0.3, 0.1}, 0); len(dx) != 2 {
		t.Errorf("expected derivative dim 2, got %d", len(dx))
	}
}

func TestPendulumGravity(t *testing.T) {
	p := NewPendulum()
	p.Gravity = 9.81
	p.Length = 2.0

	dx := p.Derive(dynamo.State{math.Pi / 2, 0}, 0)

	expectedAccel := -p.Gravity / p.Length
	if math.Abs(dx[1]-expectedAccel) > 1e-12 {
		t.Errorf("expected acceleration %f, got %f", expectedAccel, dx[1])
	}
}

func TestPendulumDamping(t *testing.T) {
	p := NewPendulum()
	p.Damping = 0.5

	dx := p.Derive(dynamo.State{0, 2}, 0)
	if dx[1] != -1.0 {
		t.Errorf("expected damping acceleration -1, got %f", dx[1])
	}
}

func TestPendulumEnergy(t *testing.T) {
	p := NewPendulum()

	if e := p.Energy(dynamo.State{0, 0}); e != 0 {
		t.Errorf("expected zero energy at rest, got %f", e)
	}
	if e := p.Energy(dynamo.State{math.Pi, 0}); math.Abs(e-2.0) > 1e-12 {
		t.Errorf("expected energy 2 inverted, got %f", e)
	}
	if e := p.Energy(dynamo.State{0, 1}); math.Abs(e-0.5) > 1e-12 {
		t.Errorf("expected energy 0.5, got %f", e)
	}
}

func TestPendulumParams(t *testing.T) {
	p := NewPendulum()

	if err := p.SetParam("length", 3); err != nil {
		t.Fatal(err)
	}
	if p.GetParams()["length"] != 3 {
		t.Errorf("length not updated: %v", p.GetParams())
	}
	if err := p.SetParam("length", 0); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam for zero length, got %v", err)
	}
	if err := p.SetParam("mass", 1); !errors.Is(err, ErrInvalidParam) {
		t.Errorf("expected ErrInvalidParam for unknown param, got %v", err)
	}
}
