package systems

import "github.com/san-kum/mrsolve/internal/multirate"

// StiffOscillator couples a slow and a fast harmonic oscillator through a
// weak linear term. State: slow [x, v], fast [x, v].
// A frequency ratio of 100:1 gives the canonical multirate benchmark.
type StiffOscillator struct {
	omegaFast float64
	omegaSlow float64
	coupling  float64
}

func NewStiffOscillator() *StiffOscillator {
	return &StiffOscillator{
		omegaFast: 100.0,
		omegaSlow: 1.0,
		coupling:  0.1,
	}
}

func (s *StiffOscillator) SlowDim() int { return 2 }
func (s *StiffOscillator) FastDim() int { return 2 }

func (s *StiffOscillator) SlowRHS(_ float64, ySlow, yFast multirate.State) multirate.State {
	x, v := ySlow[0], ySlow[1]
	xFast := yFast[0]

	return multirate.State{
		v,
		-s.omegaSlow*s.omegaSlow*x + s.coupling*xFast,
	}
}

func (s *StiffOscillator) FastRHS(_ float64, ySlow, yFast multirate.State) multirate.State {
	xSlow := ySlow[0]
	x, v := yFast[0], yFast[1]

	return multirate.State{
		v,
		-s.omegaFast*s.omegaFast*x + s.coupling*xSlow,
	}
}

// Energy is the total mechanical energy of both oscillators, ignoring
// the coupling term. Conserved up to the coupling strength.
func (s *StiffOscillator) Energy(y multirate.State) float64 {
	xs, vs, xf, vf := y[0], y[1], y[2], y[3]
	kinetic := 0.5 * (vs*vs + vf*vf)
	potential := 0.5 * (s.omegaSlow*s.omegaSlow*xs*xs + s.omegaFast*s.omegaFast*xf*xf)
	return kinetic + potential
}

func (s *StiffOscillator) DefaultState() multirate.State {
	return multirate.State{1.0, 0.0, 0.1, 0.0}
}

func (s *StiffOscillator) GetParams() map[string]float64 {
	return map[string]float64{
		"omega_fast": s.omegaFast,
		"omega_slow": s.omegaSlow,
		"coupling":   s.coupling,
	}
}

func (s *StiffOscillator) SetParam(name string, value float64) {
	switch name {
	case "omega_fast":
		s.omegaFast = value
	case "omega_slow":
		s.omegaSlow = value
	case "coupling":
		s.coupling = value
	}
}
