package convergence_test

import (
	"context"
	"math"

	"github.com/cockroachdb/errors"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/odestep/internal/convergence"
	"github.com/san-kum/odestep/internal/dynamo"
	"github.com/san-kum/odestep/internal/integrators"
	"github.com/san-kum/odestep/internal/models"
)

func oscillatorStudy(method integrators.Method) convergence.Study {
	osc := models.NewOscillator()
	x0 := dynamo.State{0, 0.01}
	return convergence.Study{
		Method:    method,
		System:    osc,
		X0:        x0,
		T0:        0,
		Span:      10,
		Reference: osc.Solution(x0, 0),
		Ns:        convergence.PowersOfTwo(64, 1024),
	}
}

var _ = Describe("Analyzer", func() {
	var analyzer *convergence.Analyzer

	BeforeEach(func() {
		analyzer = convergence.NewAnalyzer(4, nil)
	})

	DescribeTable("observed order on the harmonic oscillator",
		func(method integrators.Method, order, tol float64, tail int) {
			report, err := analyzer.Analyze(context.Background(), oscillatorStudy(method))
			Expect(err).NotTo(HaveOccurred())
			Expect(report.Points).To(HaveLen(5))
			Expect(report.Orders).To(HaveLen(4))

			for i := 1; i < len(report.Points); i++ {
				Expect(report.Points[i].Error).To(BeNumerically("<", report.Points[i-1].Error))
			}
			Expect(report.Check(order, tol, tail)).To(Succeed())
			Expect(report.Fitted).To(BeNumerically("~", order, 0.5))
		},
		Entry("forward euler is first order", integrators.ForwardEuler, 1.0, 0.25, 2),
		Entry("euler2 is first order", integrators.Euler2, 1.0, 0.25, 2),
		Entry("rk2 is second order", integrators.RK2, 2.0, 0.25, 3),
		Entry("rk4 is fourth order", integrators.RK4, 4.0, 0.25, 3),
	)

	It("reports step sizes of span/N", func() {
		report, err := analyzer.Analyze(context.Background(), oscillatorStudy(integrators.RK4))
		Expect(err).NotTo(HaveOccurred())
		for _, p := range report.Points {
			Expect(p.Dt).To(Equal(10.0 / float64(p.N)))
		}
	})

	It("is deterministic across concurrent runs", func() {
		a, err := analyzer.Analyze(context.Background(), oscillatorStudy(integrators.RK2))
		Expect(err).NotTo(HaveOccurred())
		b, err := convergence.NewAnalyzer(1, nil).Analyze(context.Background(), oscillatorStudy(integrators.RK2))
		Expect(err).NotTo(HaveOccurred())
		Expect(a.Errors()).To(Equal(b.Errors()))
	})

	Context("with an invalid study", func() {
		DescribeTable("rejects before running",
			func(mutate func(*convergence.Study)) {
				s := oscillatorStudy(integrators.RK4)
				mutate(&s)
				_, err := analyzer.Analyze(context.Background(), s)
				Expect(errors.Is(err, convergence.ErrInvalidStudy)).To(BeTrue(), "got %v", err)
			},
			Entry("no step counts", func(s *convergence.Study) { s.Ns = nil }),
			Entry("non-increasing step counts", func(s *convergence.Study) { s.Ns = []int{64, 64} }),
			Entry("zero step count", func(s *convergence.Study) { s.Ns = []int{0, 8} }),
			Entry("negative span", func(s *convergence.Study) { s.Span = -1 }),
			Entry("infinite span", func(s *convergence.Study) { s.Span = math.Inf(1) }),
			Entry("missing reference", func(s *convergence.Study) { s.Reference = nil }),
			Entry("empty initial state", func(s *convergence.Study) { s.X0 = nil }),
			Entry("wrong state dimension", func(s *convergence.Study) { s.X0 = dynamo.State{0.01} }),
		)

		It("rejects an unknown method", func() {
			s := oscillatorStudy(integrators.Method(42))
			_, err := analyzer.Analyze(context.Background(), s)
			Expect(errors.Is(err, integrators.ErrUnknownMethod)).To(BeTrue())
		})
	})

	It("propagates a failing run", func() {
		s := oscillatorStudy(integrators.RK4)
		s.System = dynamo.Func(func(x dynamo.State, t float64) dynamo.State {
			return dynamo.State{math.NaN(), 0}
		})
		_, err := analyzer.Analyze(context.Background(), s)
		Expect(errors.Is(err, dynamo.ErrNonFinite)).To(BeTrue())

		var simErr *dynamo.SimulationError
		Expect(errors.As(err, &simErr)).To(BeTrue())
		Expect(simErr.Step).To(Equal(0))
		Expect(simErr.Stage).To(Equal(1))
	})
})
