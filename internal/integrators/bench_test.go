package integrators

import (
	"testing"

	"github.com/san-kum/odestep/internal/dynamo"
)

type benchDynamics struct{}

func (b *benchDynamics) Derive(x dynamo.State, t float64) dynamo.State {
	return dynamo.State{x[1], -x[0]}
}

func benchmarkStepper(b *testing.B, s Stepper, sys dynamo.System, x dynamo.State, dt float64) {
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		next, err := s.Step(sys, x, 0, dt)
		if err != nil {
			b.Fatal(err)
		}
		x = next
	}
}

func BenchmarkEuler(b *testing.B) {
	benchmarkStepper(b, NewEuler(), &benchDynamics{}, dynamo.State{1.0, 0.0}, 0.01)
}

func BenchmarkEuler2(b *testing.B) {
	benchmarkStepper(b, NewEuler2(), &benchDynamics{}, dynamo.State{1.0, 0.0}, 0.01)
}

func BenchmarkRK2(b *testing.B) {
	benchmarkStepper(b, NewRK2(), &benchDynamics{}, dynamo.State{1.0, 0.0}, 0.01)
}

func BenchmarkRK4(b *testing.B) {
	benchmarkStepper(b, NewRK4(), &benchDynamics{}, dynamo.State{1.0, 0.0}, 0.01)
}

type benchChain struct{}

func (b *benchChain) Derive(x dynamo.State, t float64) dynamo.State {
	dx := make(dynamo.State, 20)
	for i := 0; i < 5; i++ {
		dx[i*4] = x[i*4+2]
		dx[i*4+1] = x[i*4+3]
		dx[i*4+2] = -x[i*4] * 0.1
		dx[i*4+3] = -x[i*4+1] * 0.1
	}
	return dx
}

func BenchmarkRK4_Dim20(b *testing.B) {
	x := make(dynamo.State, 20)
	for i := range x {
		x[i] = float64(i) * 0.1
	}
	benchmarkStepper(b, NewRK4(), &benchChain{}, x, 0.001)
}
