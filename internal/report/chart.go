package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
	"github.com/san-kum/odestep/internal/convergence"
	"github.com/san-kum/odestep/internal/dynamo"
)

func globalOpts(title, subtitle string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Theme: types.ThemeChalk,
		}),
		charts.WithToolboxOpts(opts.Toolbox{
			Show: true,
			Feature: &opts.ToolBoxFeature{
				SaveAsImage: &opts.ToolBoxFeatureSaveAsImage{
					Show:  true,
					Title: "Save",
				},
				DataZoom: &opts.ToolBoxFeatureDataZoom{
					Show: true,
				},
			},
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true, Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: true}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: subtitle,
		}),
	}
}

func pairs(xs, ys []float64) []opts.LineData {
	items := make([]opts.LineData, 0, len(xs))
	for i := range xs {
		items = append(items, opts.LineData{Value: [2]float64{xs[i], ys[i]}})
	}
	return items
}

// NewConvergenceChart plots max error against N on log-log axes, one series
// per method.
func NewConvergenceChart(reports []*convergence.Report) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(append(globalOpts("Convergence", "max error vs N"),
		charts.WithXAxisOpts(opts.XAxis{Name: "N", Type: "log"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "error", Type: "log"}),
	)...)

	for _, r := range reports {
		ns := make([]float64, len(r.Points))
		for i, p := range r.Points {
			ns[i] = float64(p.N)
		}
		name := fmt.Sprintf("%s (p=%.2f)", r.Method, r.Fitted)
		chart.AddSeries(name, pairs(ns, r.Errors()))
	}
	return chart
}

// NewTrajectoryChart plots every state component against time.
func NewTrajectoryChart(title string, traj *dynamo.Trajectory) *charts.Line {
	chart := charts.NewLine()
	chart.SetGlobalOptions(append(globalOpts(title, fmt.Sprintf("%d samples", traj.Len())),
		charts.WithXAxisOpts(opts.XAxis{Name: "t", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Type: "value"}),
	)...)

	times := traj.Times()
	for i := 0; i < traj.Dim(); i++ {
		data, _ := traj.Component(i)
		chart.AddSeries(fmt.Sprintf("x%d", i), pairs(times, data))
	}
	return chart
}

// Renderer is satisfied by every go-echarts chart.
type Renderer interface {
	Render(w io.Writer) error
}

func WriteHTML(w io.Writer, chart Renderer) error {
	return chart.Render(w)
}
