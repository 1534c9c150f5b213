package systems

import (
	"fmt"
	"sort"

	"github.com/san-kum/mrsolve/internal/multirate"
)

// Model is a multirate system bundled with its canonical initial state
// and runtime-adjustable parameters.
type Model interface {
	multirate.System
	DefaultState() multirate.State
	GetParams() map[string]float64
	SetParam(name string, value float64)
}

var registry = map[string]func() Model{
	"stiff_oscillator": func() Model { return NewStiffOscillator() },
	"chemical_chain":   func() Model { return NewChemicalChain() },
	"vanderpol":        func() Model { return NewTwoScaleVanDerPol() },
	"climate_weather":  func() Model { return NewClimateWeather() },
}

// New constructs the model registered under name.
func New(name string) (Model, error) {
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("systems: unknown system %q", name)
	}
	return ctor(), nil
}

// Names lists the registered models, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
