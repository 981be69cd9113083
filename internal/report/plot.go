package report

import (
	"fmt"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/odestep/internal/dynamo"
)

const (
	DefaultPlotHeight = 12
	DefaultPlotWidth  = 80
)

var seriesColors = []asciigraph.AnsiColor{
	asciigraph.Cyan,
	asciigraph.Yellow,
	asciigraph.Green,
	asciigraph.Red,
}

// PlotComponent draws one state component of a trajectory against sample
// index.
func PlotComponent(traj *dynamo.Trajectory, component int, caption string) (string, error) {
	data, err := traj.Component(component)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", errors.New("report: empty trajectory")
	}
	if caption == "" {
		caption = fmt.Sprintf("x%d over t=[%g, %g]", component, traj.Initial().Time, traj.Final().Time)
	}

	return asciigraph.Plot(data,
		asciigraph.Height(DefaultPlotHeight),
		asciigraph.Width(DefaultPlotWidth),
		asciigraph.Caption(caption),
	), nil
}

// PlotCompare overlays one component of several named trajectories. Series
// are drawn in name order.
func PlotCompare(trajs map[string]*dynamo.Trajectory, component int) (string, error) {
	names := make([]string, 0, len(trajs))
	for name := range trajs {
		names = append(names, name)
	}
	sort.Strings(names)

	series := make([][]float64, 0, len(names))
	colors := make([]asciigraph.AnsiColor, 0, len(names))
	for i, name := range names {
		data, err := trajs[name].Component(component)
		if err != nil {
			return "", errors.Wrapf(err, "%s", name)
		}
		if len(data) == 0 {
			return "", errors.Newf("report: %s has no samples", name)
		}
		series = append(series, data)
		colors = append(colors, seriesColors[i%len(seriesColors)])
	}
	if len(series) == 0 {
		return "", errors.New("report: nothing to plot")
	}

	return asciigraph.PlotMany(series,
		asciigraph.Height(DefaultPlotHeight),
		asciigraph.Width(DefaultPlotWidth),
		asciigraph.SeriesColors(colors...),
		asciigraph.Caption(fmt.Sprintf("x%d: %v", component, names)),
	), nil
}
