package sim

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/dynamo"
)

func TestSpanConfig(t *testing.T) {
	tests := []struct {
		t0, span float64
		n        int
		dt       float64
	}{
		{0, 10, 64, 10.0 / 64},
		{1, 2, 4, 0.5},
		{0, 10, 1024, 10.0 / 1024},
	}

	for _, tt := range tests {
		cfg := SpanConfig(tt.t0, tt.span, tt.n)
		if cfg.Dt != tt.dt || cfg.Steps != tt.n || cfg.T0 != tt.t0 {
			t.Errorf("SpanConfig(%v, %v, %d) = %+v", tt.t0, tt.span, tt.n, cfg)
		}
		if math.Abs(cfg.End()-(tt.t0+tt.span)) > 1e-12 {
			t.Errorf("End() = %v, want %v", cfg.End(), tt.t0+tt.span)
		}
	}

	cfg := SpanConfig(0, 10, 0)
	if !errors.Is(cfg.Validate(), dynamo.ErrInvalidStepSize) {
		t.Error("a zero-step span config has no valid step size")
	}
}

func TestConfigValidate(t *testing.T) {
	if err := (Config{Dt: 0.01, Steps: 0}).Validate(); err != nil {
		t.Errorf("zero steps is valid: %v", err)
	}
	if err := (Config{T0: math.Inf(-1), Dt: 0.01, Steps: 1}).Validate(); err == nil {
		t.Error("infinite t0 should be rejected")
	}
}
