package report

import (
	"fmt"
	"math"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/san-kum/odestep/internal/convergence"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/storage"
)

func newTable(title string) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	if title != "" {
		t.SetTitle("%s", title)
	}
	return t
}

func formatOrder(q float64) string {
	if math.IsNaN(q) {
		return "-"
	}
	return fmt.Sprintf("%.3f", q)
}

// ConvergenceTable lists the error of every run and the observed order
// against the previous row.
func ConvergenceTable(r *convergence.Report) string {
	t := newTable(fmt.Sprintf("%s (fitted order %s)", r.Method, formatOrder(r.Fitted)))
	t.AppendHeader(table.Row{"N", "dt", "max error", "order"})
	for i, p := range r.Points {
		order := ""
		if i > 0 && i-1 < len(r.Orders) {
			order = formatOrder(r.Orders[i-1])
		}
		t.AppendRow(table.Row{p.N, fmt.Sprintf("%.4g", p.Dt), fmt.Sprintf("%.3e", p.Error), order})
	}
	return t.Render()
}

// OrderSummaryTable compares expected and fitted orders across methods.
func OrderSummaryTable(reports []*convergence.Report) string {
	t := newTable("convergence summary")
	t.AppendHeader(table.Row{"method", "stages", "expected", "fitted", "last observed"})
	for _, r := range reports {
		last := math.NaN()
		if len(r.Orders) > 0 {
			last = r.Orders[len(r.Orders)-1]
		}
		t.AppendRow(table.Row{r.Method, r.Method.Stages(), r.Method.Order(), formatOrder(r.Fitted), formatOrder(last)})
	}
	return t.Render()
}

func RunsTable(runs []storage.RunMetadata) string {
	t := newTable("")
	t.AppendHeader(table.Row{"id", "model", "method", "dt", "steps", "evaluations", "time"})
	for _, run := range runs {
		id := run.ID
		if run.Error != "" {
			id += " (partial)"
		}
		t.AppendRow(table.Row{id, run.Model, run.Method, run.Dt, run.Steps, run.Evaluations, run.Timestamp.Format(time.DateTime)})
	}
	return t.Render()
}

func MethodsTable(methods []integrators.Method) string {
	t := newTable("")
	t.AppendHeader(table.Row{"method", "stages", "order"})
	for _, m := range methods {
		t.AppendRow(table.Row{m, m.Stages(), m.Order()})
	}
	return t.Render()
}

// Table renders arbitrary rows under header.
func Table(title string, header table.Row, rows []table.Row) string {
	t := newTable(title)
	t.AppendHeader(header)
	t.AppendRows(rows)
	return t.Render()
}
