package config

import "sort"

var defaultConvergence = ConvergenceConfig{
	Methods: []string{"euler", "euler2", "rk2", "rk4"},
	Span:    DefaultSpan,
	Ns:      []int{64, 128, 256, 512, 1024},
}

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"small": {
			Model: "pendulum", Method: "rk4", Dt: 0.01, Steps: 2000,
			InitState: []float64{0.2, 0.0}, Convergence: defaultConvergence,
		},
		"large": {
			Model: "pendulum", Method: "rk4", Dt: 0.01, Steps: 2000,
			InitState: []float64{2.5, 0.0}, Convergence: defaultConvergence,
		},
		"euler-drift": {
			Model: "pendulum", Method: "euler", Dt: 0.01, Steps: 6000,
			InitState: []float64{0.5, 0.0}, Convergence: defaultConvergence,
		},
		"damped": {
			Model: "pendulum", Method: "rk4", Dt: 0.01, Steps: 3000,
			InitState:   []float64{1.0, 0.0},
			Params:      map[string]float64{"damping": 0.2},
			Convergence: defaultConvergence,
		},
	},
	"oscillator": {
		"convergence": {
			Model: "oscillator", Method: "rk4", Dt: 10.0 / 1024, Steps: 1024,
			InitState: []float64{0.0, 0.01}, Convergence: defaultConvergence,
		},
		"fast": {
			Model: "oscillator", Method: "rk4", Dt: 0.005, Steps: 2000,
			InitState:   []float64{1.0, 0.0},
			Params:      map[string]float64{"omega": 5.0},
			Convergence: defaultConvergence,
		},
	},
	"lorenz": {
		"classic": {
			Model: "lorenz", Method: "rk4", Dt: 0.01, Steps: 5000,
			InitState: []float64{1.0, 1.0, 1.0}, Convergence: defaultConvergence,
		},
	},
	"vanderpol": {
		"limit-cycle": {
			Model: "vanderpol", Method: "rk4", Dt: 0.01, Steps: 3000,
			InitState: []float64{2.0, 0.0}, Convergence: defaultConvergence,
		},
	},
	"growth": {
		"textbook": {
			Model: "growth", Method: "euler", Dt: 0.1, Steps: 20,
			InitState:   []float64{1.0},
			Convergence: ConvergenceConfig{Span: 2.0, Ns: []int{20, 40, 80, 160}},
		},
	},
	"decay": {
		"unstable": {
			Model: "decay", Method: "euler", Dt: 2.5, Steps: 20,
			InitState:   []float64{1.0},
			Convergence: ConvergenceConfig{Span: 5.0, Ns: []int{8, 16, 32, 64}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

// ListPresets returns the preset names of model in sorted order.
func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
