package config

// Presets pair each built-in system with method settings suited to its
// time-scale separation.
var Presets = map[string]map[string]*Config{
	"stiff_oscillator": {
		"benchmark": {
			System: "stiff_oscillator", Method: "explicit-mrk",
			MacroStep: 0.01, TStart: 0, TEnd: 1.0,
			RTol: 1e-6, ATol: 1e-9, MaxSteps: 1000, TimescaleRatio: 100,
			InitState:    []float64{1.0, 0.0, 0.1, 0.0},
			MethodParams: MethodConfig{MacroSteps: 4, MicroSteps: 50},
		},
		"extrapolated": {
			System: "stiff_oscillator", Method: "extrapolated",
			MacroStep: 0.02, TStart: 0, TEnd: 1.0,
			RTol: 1e-6, ATol: 1e-9, MaxSteps: 250, TimescaleRatio: 50,
			InitState:    []float64{1.0, 0.0, 0.1, 0.0},
			MethodParams: MethodConfig{BaseRatio: 5, Levels: 2},
		},
	},
	"chemical_chain": {
		"equilibrium": {
			System: "chemical_chain", Method: "compound-fast-slow",
			MacroStep: 0.01, TStart: 0, TEnd: 2.0,
			RTol: 1e-7, ATol: 1e-10, MaxSteps: 500, TimescaleRatio: 200,
			InitState:    []float64{0.0, 1.0, 0.0},
			MethodParams: MethodConfig{FastMethod: "rk4", SlowMethod: "rk4"},
		},
		"fine": {
			System: "chemical_chain", Method: "explicit-mrk",
			MacroStep: 0.01, TStart: 0, TEnd: 0.5,
			RTol: 1e-8, ATol: 1e-11, MaxSteps: 200, TimescaleRatio: 50,
			InitState:    []float64{0.0, 1.0, 0.0},
			MethodParams: MethodConfig{MacroSteps: 4, MicroSteps: 20},
		},
	},
	"vanderpol": {
		"circuit": {
			System: "vanderpol", Method: "explicit-mrk",
			MacroStep: 0.02, TStart: 0, TEnd: 5.0,
			RTol: 1e-8, ATol: 1e-11, MaxSteps: 2000, TimescaleRatio: 50,
			InitState:    []float64{0.1, 0.0, 0.2, 0.1},
			MethodParams: MethodConfig{MacroSteps: 4, MicroSteps: 25},
		},
	},
	"climate_weather": {
		"century": {
			System: "climate_weather", Method: "extrapolated",
			MacroStep: 1.0, TStart: 0, TEnd: 100.0,
			RTol: 1e-6, ATol: 1e-9, MaxSteps: 365, TimescaleRatio: 521,
			InitState:    []float64{15.0, 380.0, 15.5, 1013.0},
			MethodParams: MethodConfig{BaseRatio: 10, Levels: 2},
		},
	},
}

func GetPreset(system, preset string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	cfg, ok := systemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	return names
}
