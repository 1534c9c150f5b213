// Package config loads and saves run configurations and translates them
// into validated engine options.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/mrsolve/internal/integrators"
	"github.com/san-kum/mrsolve/internal/multirate"
)

const (
	DefaultMacroStep = 0.01
	DefaultRTol      = 1e-6
	DefaultATol      = 1e-9
	DefaultMaxSteps  = 10000
)

type Config struct {
	System         string    `yaml:"system"`
	Method         string    `yaml:"method"`
	MacroStep      float64   `yaml:"macro_step"`
	TStart         float64   `yaml:"t_start"`
	TEnd           float64   `yaml:"t_end"`
	RTol           float64   `yaml:"rtol"`
	ATol           float64   `yaml:"atol"`
	MaxSteps       int       `yaml:"max_steps"`
	TimescaleRatio float64   `yaml:"timescale_ratio"`
	InitState      []float64 `yaml:"init_state"`
	MethodParams   MethodConfig `yaml:"method_params"`
}

type MethodConfig struct {
	MacroSteps int    `yaml:"macro_steps"`
	MicroSteps int    `yaml:"micro_steps"`
	FastMethod string `yaml:"fast_method"`
	SlowMethod string `yaml:"slow_method"`
	BaseRatio  int    `yaml:"base_ratio"`
	Levels     int    `yaml:"levels"`
}

func DefaultConfig() *Config {
	return &Config{
		System:    "stiff_oscillator",
		Method:    "explicit-mrk",
		MacroStep: DefaultMacroStep,
		TStart:    0.0,
		TEnd:      1.0,
		RTol:      DefaultRTol,
		ATol:      DefaultATol,
		MaxSteps:  DefaultMaxSteps,
		MethodParams: MethodConfig{
			MacroSteps: 4,
			MicroSteps: 25,
			FastMethod: "rk4",
			SlowMethod: "rk4",
			BaseRatio:  5,
			Levels:     2,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Options translates the configuration into engine options, resolving
// the method name and any base-stepper names.
func (c *Config) Options() (multirate.Options, error) {
	method, err := c.method()
	if err != nil {
		return multirate.Options{}, err
	}
	return multirate.Options{
		Method:         method,
		MacroStep:      c.MacroStep,
		RTol:           c.RTol,
		ATol:           c.ATol,
		MaxSteps:       c.MaxSteps,
		TimescaleRatio: c.TimescaleRatio,
	}, nil
}

func (c *Config) method() (multirate.Method, error) {
	switch c.Method {
	case "explicit-mrk", "mrk":
		return multirate.ExplicitMRK{
			MacroSteps: c.MethodParams.MacroSteps,
			MicroSteps: c.MethodParams.MicroSteps,
		}, nil
	case "compound-fast-slow", "compound":
		fast, err := integrators.New(c.MethodParams.FastMethod)
		if err != nil {
			return nil, err
		}
		slow, err := integrators.New(c.MethodParams.SlowMethod)
		if err != nil {
			return nil, err
		}
		return multirate.CompoundFastSlow{Fast: fast, Slow: slow}, nil
	case "extrapolated":
		return multirate.Extrapolated{
			BaseRatio: c.MethodParams.BaseRatio,
			Levels:    c.MethodParams.Levels,
		}, nil
	default:
		return nil, fmt.Errorf("config: unknown method %q", c.Method)
	}
}
