package metrics_test

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/metrics"
	"github.com/san-kum/odestep/internal/models"
	"github.com/san-kum/odestep/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pendulumPeaks(t *testing.T, method integrators.Method) (*metrics.Peaks, *metrics.EnergyDrift) {
	t.Helper()

	stepper, err := integrators.New(method)
	require.NoError(t, err)

	p := models.NewPendulum()
	peaks := metrics.NewPeaks(0)
	drift := metrics.NewEnergyDrift(p)

	s := sim.New(p, stepper)
	s.AddMetric(peaks)
	s.AddMetric(drift)

	res, err := s.Run(context.Background(), dynamo.State{0.5, 0}, sim.Config{Dt: 0.01, Steps: 6000})
	require.NoError(t, err)
	require.Equal(t, 6001, res.Trajectory.Len())
	require.Contains(t, res.Metrics, peaks.Name())

	return peaks, drift
}

func TestPendulumEulerGrows(t *testing.T) {
	peaks, drift := pendulumPeaks(t, integrators.ForwardEuler)

	list := peaks.Peaks()
	require.GreaterOrEqual(t, len(list), 8)
	for i := 1; i < len(list); i++ {
		assert.Greater(t, list[i].Value, list[i-1].Value, "peak %d", i)
	}
	assert.Greater(t, peaks.Value(), 1.1)
	assert.Greater(t, drift.Value(), 0.1)
}

func TestPendulumRK4Bounded(t *testing.T) {
	peaks, drift := pendulumPeaks(t, integrators.RK4)

	list := peaks.Peaks()
	require.GreaterOrEqual(t, len(list), 8)
	for _, pk := range list {
		assert.InDelta(t, 0.5, pk.Value, 1e-4)
	}
	assert.InDelta(t, 1.0, peaks.Value(), 1e-4)
	assert.Less(t, drift.Value(), 1e-6)
	assert.False(t, math.IsNaN(drift.Value()))
}
