package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/san-kum/odestep/internal/convergence"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sineTrajectory(t *testing.T, n int, phase float64) *dynamo.Trajectory {
	t.Helper()
	traj := dynamo.NewTrajectory(n)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n)
		require.NoError(t, traj.Record(x, dynamo.State{x * (1 - x) * phase, x}))
	}
	traj.Seal()
	return traj
}

func sampleReport() *convergence.Report {
	points := []convergence.Point{
		{N: 64, Dt: 10.0 / 64, Error: 1e-2},
		{N: 128, Dt: 10.0 / 128, Error: 2.5e-3},
		{N: 256, Dt: 10.0 / 256, Error: 6.25e-4},
	}
	return &convergence.Report{
		Method: integrators.RK2,
		Points: points,
		Orders: convergence.ObservedOrders(points),
		Fitted: convergence.FitOrder(points),
	}
}

func TestPlotComponent(t *testing.T) {
	traj := sineTrajectory(t, 50, 1)

	out, err := PlotComponent(traj, 0, "")
	require.NoError(t, err)
	assert.Contains(t, out, "x0 over t=[0, 0.98]")
	assert.GreaterOrEqual(t, strings.Count(out, "\n"), DefaultPlotHeight)

	_, err = PlotComponent(traj, 2, "")
	assert.Error(t, err)
}

func TestPlotCompare(t *testing.T) {
	out, err := PlotCompare(map[string]*dynamo.Trajectory{
		"rk4":   sineTrajectory(t, 40, 1),
		"euler": sineTrajectory(t, 40, 2),
	}, 0)
	require.NoError(t, err)
	assert.Contains(t, out, "[euler rk4]")

	_, err = PlotCompare(nil, 0)
	assert.Error(t, err)
}

func TestConvergenceTable(t *testing.T) {
	out := ConvergenceTable(sampleReport())

	assert.Contains(t, out, "rk2 (fitted order 2.000)")
	assert.Contains(t, out, "MAX ERROR")
	assert.Contains(t, out, "2.500e-03")
	assert.Contains(t, out, "6.250e-04")

	summary := OrderSummaryTable([]*convergence.Report{sampleReport()})
	assert.Contains(t, summary, "rk2")
}

func TestRunsTable(t *testing.T) {
	out := RunsTable([]storage.RunMetadata{
		{ID: "pendulum_rk4_1", Model: "pendulum", Method: "rk4", Dt: 0.01, Steps: 100, Timestamp: time.Unix(0, 0).UTC()},
		{ID: "decay_euler_2", Model: "decay", Method: "euler", Dt: 2.5, Steps: 20, Error: "step 3 stage 1"},
	})
	assert.Contains(t, out, "pendulum_rk4_1")
	assert.Contains(t, out, "decay_euler_2 (partial)")
}

func TestSummary(t *testing.T) {
	out := Summary("run", append([]Field{{Label: "method", Value: "rk4"}}, MetricFields(map[string]float64{
		"stability":    1,
		"energy_drift": 1e-9,
	})...))

	assert.Contains(t, out, "run")
	assert.Contains(t, out, "rk4")
	assert.Less(t, strings.Index(out, "energy_drift"), strings.Index(out, "stability"))
	assert.Contains(t, out, "1e-09")

	assert.Contains(t, Status(true, "ok"), "ok")
	assert.Contains(t, Status(false, "failed"), "failed")
}

func TestCharts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHTML(&buf, NewConvergenceChart([]*convergence.Report{sampleReport()})))
	assert.Contains(t, buf.String(), "Convergence")
	assert.Contains(t, buf.String(), "rk2 (p=2.00)")

	buf.Reset()
	require.NoError(t, WriteHTML(&buf, NewTrajectoryChart("pendulum rk4", sineTrajectory(t, 10, 1))))
	assert.Contains(t, buf.String(), "pendulum rk4")
	assert.Contains(t, buf.String(), "x1")
}

func TestMethodsTable(t *testing.T) {
	out := MethodsTable(integrators.Methods())
	for _, name := range []string{"euler", "euler2", "rk2", "rk4"} {
		assert.Contains(t, out, name)
	}

	out = Table("bench", table.Row{"a", "b"}, []table.Row{{1, "x"}, {2, "y"}})
	assert.Contains(t, out, "bench")
	assert.Contains(t, out, "y")
}
