package convergence

import (
	"math"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/integrators"
	"gonum.org/v1/gonum/stat"
)

type Report struct {
	Method integrators.Method
	Points []Point
	// Orders[i] is the observed order between Points[i] and Points[i+1].
	Orders []float64
	Fitted float64
}

// ObservedOrders computes log(e_i/e_{i+1}) / log(N_{i+1}/N_i) for each
// successive pair. A pair with a zero error yields NaN.
func ObservedOrders(points []Point) []float64 {
	if len(points) < 2 {
		return nil
	}
	orders := make([]float64, len(points)-1)
	for i := 0; i+1 < len(points); i++ {
		a, b := points[i], points[i+1]
		if a.Error <= 0 || b.Error <= 0 {
			orders[i] = math.NaN()
			continue
		}
		orders[i] = math.Log(a.Error/b.Error) / math.Log(float64(b.N)/float64(a.N))
	}
	return orders
}

// FitOrder is minus the slope of the least-squares line through
// (log N, log error). Points with a non-positive error are skipped; fewer
// than two usable points yields NaN.
func FitOrder(points []Point) float64 {
	xs := make([]float64, 0, len(points))
	ys := make([]float64, 0, len(points))
	for _, p := range points {
		if p.Error > 0 && !math.IsInf(p.Error, 0) {
			xs = append(xs, math.Log(float64(p.N)))
			ys = append(ys, math.Log(p.Error))
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	_, beta := stat.LinearRegression(xs, ys, nil, false)
	return -beta
}

// Check verifies that the last tail observed orders lie within tol of p.
// tail <= 0 checks them all.
func (r *Report) Check(p, tol float64, tail int) error {
	if len(r.Orders) == 0 {
		return errors.Wrap(ErrOrderMismatch, "fewer than two runs")
	}
	orders := r.Orders
	if tail > 0 && tail < len(orders) {
		orders = orders[len(orders)-tail:]
	}
	for i, q := range orders {
		if math.IsNaN(q) || math.Abs(q-p) > tol {
			idx := len(r.Orders) - len(orders) + i
			return errors.Wrapf(ErrOrderMismatch, "%s: order %.3f between N=%d and N=%d, want %.3f±%.3f",
				r.Method, q, r.Points[idx].N, r.Points[idx+1].N, p, tol)
		}
	}
	return nil
}

// Errors returns the error of each point in order.
func (r *Report) Errors() []float64 {
	errs := make([]float64, len(r.Points))
	for i, p := range r.Points {
		errs[i] = p.Error
	}
	return errs
}
