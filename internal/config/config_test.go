package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/mrsolve/internal/multirate"
)

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")

	cfg := DefaultConfig()
	cfg.System = "chemical_chain"
	cfg.Method = "compound-fast-slow"
	cfg.MacroStep = 0.005
	cfg.TEnd = 2.5
	cfg.InitState = []float64{0, 1, 0}
	cfg.MethodParams.FastMethod = "rk4"
	cfg.MethodParams.SlowMethod = "heun"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.System != cfg.System || loaded.Method != cfg.Method {
		t.Errorf("roundtrip changed identity: %+v", loaded)
	}
	if loaded.MacroStep != cfg.MacroStep || loaded.TEnd != cfg.TEnd {
		t.Errorf("roundtrip changed numbers: %+v", loaded)
	}
	if len(loaded.InitState) != 3 || loaded.InitState[1] != 1 {
		t.Errorf("roundtrip changed init state: %v", loaded.InitState)
	}
	if loaded.MethodParams.SlowMethod != "heun" {
		t.Errorf("roundtrip changed method params: %+v", loaded.MethodParams)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	partial := "system: vanderpol\nt_end: 5.0\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.System != "vanderpol" || cfg.TEnd != 5.0 {
		t.Errorf("explicit fields not applied: %+v", cfg)
	}
	if cfg.MacroStep != DefaultMacroStep || cfg.MaxSteps != DefaultMaxSteps {
		t.Errorf("defaults not preserved for omitted fields: %+v", cfg)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestOptionsMethodResolution(t *testing.T) {
	tests := []struct {
		method string
		want   string
	}{
		{"explicit-mrk", "explicit-mrk"},
		{"mrk", "explicit-mrk"},
		{"compound-fast-slow", "compound-fast-slow"},
		{"compound", "compound-fast-slow"},
		{"extrapolated", "extrapolated"},
	}
	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Method = tt.method
			opts, err := cfg.Options()
			if err != nil {
				t.Fatalf("Options(): %v", err)
			}
			if got := opts.Method.Name(); got != tt.want {
				t.Errorf("method name = %q, want %q", got, tt.want)
			}
			if opts.MacroStep != cfg.MacroStep || opts.MaxSteps != cfg.MaxSteps {
				t.Errorf("options dropped numeric fields: %+v", opts)
			}
		})
	}
}

func TestOptionsUnknownMethod(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = "implicit-sdc"
	if _, err := cfg.Options(); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestOptionsUnknownStepper(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Method = "compound"
	cfg.MethodParams.FastMethod = "rk99"
	if _, err := cfg.Options(); err == nil {
		t.Error("expected error for unknown fast stepper")
	}
}

func TestPresetsProduceValidOptions(t *testing.T) {
	for system, group := range Presets {
		for name := range group {
			cfg := GetPreset(system, name)
			if cfg == nil {
				t.Fatalf("GetPreset(%q, %q) returned nil", system, name)
			}
			if cfg.System != system {
				t.Errorf("preset %s/%s names system %q", system, name, cfg.System)
			}
			opts, err := cfg.Options()
			if err != nil {
				t.Fatalf("preset %s/%s: %v", system, name, err)
			}
			if _, err := multirate.NewSolver(opts); err != nil {
				t.Errorf("preset %s/%s rejected by solver: %v", system, name, err)
			}
		}
	}
}

func TestGetPresetUnknown(t *testing.T) {
	if GetPreset("stiff_oscillator", "nope") != nil {
		t.Error("expected nil for unknown preset")
	}
	if GetPreset("nope", "benchmark") != nil {
		t.Error("expected nil for unknown system")
	}
	if ListPresets("nope") != nil {
		t.Error("expected nil preset list for unknown system")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets("stiff_oscillator")
	if len(names) != 2 {
		t.Fatalf("got %d presets, want 2: %v", len(names), names)
	}
}
