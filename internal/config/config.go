package config

import (
	"math"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/san-kum/odestep/internal/integrators"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt       = 0.01
	DefaultSteps    = 1000
	DefaultTheta    = 0.5
	DefaultSpan     = 10.0
	DefaultLogLevel = "WARNING"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	Model       string             `yaml:"model"`
	Method      string             `yaml:"method"`
	T0          float64            `yaml:"t0"`
	Dt          float64            `yaml:"dt"`
	Steps       int                `yaml:"steps"`
	InitState   []float64          `yaml:"init_state,flow,omitempty"`
	Params      map[string]float64 `yaml:"params,omitempty"`
	Convergence ConvergenceConfig  `yaml:"convergence"`
	LogLevel    string             `yaml:"log_level,omitempty"`
}

type ConvergenceConfig struct {
	Methods []string `yaml:"methods,flow,omitempty"`
	Span    float64  `yaml:"span"`
	Ns      []int    `yaml:"ns,flow"`
	Workers int      `yaml:"workers,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:  "pendulum",
		Method: "rk4",
		Dt:     DefaultDt,
		Steps:  DefaultSteps,
		Convergence: ConvergenceConfig{
			Methods: []string{"euler", "euler2", "rk2", "rk4"},
			Span:    DefaultSpan,
			Ns:      []int{64, 128, 256, 512, 1024},
		},
		LogLevel: DefaultLogLevel,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshal config")
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := integrators.ParseMethod(c.Method); err != nil {
		return err
	}
	if !(c.Dt > 0) || math.IsInf(c.Dt, 0) {
		return errors.Wrapf(ErrInvalidConfig, "dt must be positive and finite, got %g", c.Dt)
	}
	if c.Steps < 0 {
		return errors.Wrapf(ErrInvalidConfig, "steps must be non-negative, got %d", c.Steps)
	}
	for _, name := range c.Convergence.Methods {
		if _, err := integrators.ParseMethod(name); err != nil {
			return errors.Wrap(err, "convergence")
		}
	}
	if !(c.Convergence.Span > 0) || math.IsInf(c.Convergence.Span, 0) {
		return errors.Wrapf(ErrInvalidConfig, "convergence span must be positive and finite, got %g", c.Convergence.Span)
	}
	for i, n := range c.Convergence.Ns {
		if n <= 0 || (i > 0 && n <= c.Convergence.Ns[i-1]) {
			return errors.Wrapf(ErrInvalidConfig, "convergence ns must be positive and strictly increasing: %v", c.Convergence.Ns)
		}
	}
	return nil
}

// GetInitState returns the configured initial state, or the model default
// when none is set.
func (c *Config) GetInitState() []float64 {
	if len(c.InitState) > 0 {
		out := make([]float64, len(c.InitState))
		copy(out, c.InitState)
		return out
	}
	switch c.Model {
	case "growth", "decay":
		return []float64{1.0}
	case "oscillator":
		return []float64{0.0, 0.01}
	case "lorenz":
		return []float64{1.0, 1.0, 1.0}
	case "vanderpol":
		return []float64{2.0, 0.0}
	default:
		return []float64{DefaultTheta, 0.0}
	}
}

func (c *Config) Clone() *Config {
	out := *c
	if c.InitState != nil {
		out.InitState = append([]float64(nil), c.InitState...)
	}
	if c.Params != nil {
		out.Params = make(map[string]float64, len(c.Params))
		for k, v := range c.Params {
			out.Params[k] = v
		}
	}
	out.Convergence.Methods = append([]string(nil), c.Convergence.Methods...)
	out.Convergence.Ns = append([]int(nil), c.Convergence.Ns...)
	return &out
}
