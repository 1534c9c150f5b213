package multirate

import "github.com/san-kum/mrsolve/internal/integrators"

// scheme advances one macro interval [t, t+h] and returns the new slow
// and fast partitions. Implementations manage their own micro-stepping.
type scheme interface {
	advance(sys System, t, h float64, ySlow, yFast State) (State, State, error)
}

// newScheme resolves the closed Method union into a scheme instance. The
// type switch is exhaustive over the three variants.
func newScheme(m Method) (scheme, error) {
	switch v := m.(type) {
	case ExplicitMRK:
		return &explicitMRK{
			macroSteps: v.MacroSteps,
			microSteps: v.MicroSteps,
			fastRK:     integrators.NewRK4(),
			slowRK:     integrators.NewRK4(),
		}, nil
	case CompoundFastSlow:
		return &compoundFastSlow{fast: v.Fast, slow: v.Slow}, nil
	case Extrapolated:
		return newExtrapolated(v.BaseRatio, v.Levels), nil
	default:
		return nil, ErrInvalidConfiguration
	}
}

// explicitMRK implements the explicit multirate Runge-Kutta scheme: the
// macro interval splits into macroSteps sub-intervals; in each, the fast
// partition takes microSteps RK4 steps against the slow state frozen at
// the sub-interval start, then the slow partition takes one RK4 step of
// the sub-interval size against the freshly advanced fast state.
type explicitMRK struct {
	macroSteps int
	microSteps int
	fastRK     *integrators.RK4
	slowRK     *integrators.RK4
}

func (s *explicitMRK) advance(sys System, t, h float64, ySlow, yFast State) (State, State, error) {
	hMacro := h / float64(s.macroSteps)
	hMicro := hMacro / float64(s.microSteps)

	ySlow = ySlow.Clone()
	yFast = yFast.Clone()

	for i := 0; i < s.macroSteps; i++ {
		ti := t + float64(i)*hMacro

		// Fast partition sees the slow state frozen at the sub-interval
		// start.
		frozen := ySlow.Clone()
		fastRHS := func(tt float64, y []float64) []float64 {
			return sys.FastRHS(tt, frozen, y)
		}

		tf := ti
		for j := 0; j < s.microSteps; j++ {
			yFast = s.fastRK.Step(fastRHS, tf, yFast, hMicro)
			tf += hMicro
		}

		// Slow partition sees the fast state sampled at the sub-interval
		// end.
		sampled := yFast.Clone()
		slowRHS := func(tt float64, y []float64) []float64 {
			return sys.SlowRHS(tt, y, sampled)
		}
		ySlow = s.slowRK.Step(slowRHS, ti, ySlow, hMacro)
	}

	return ySlow, yFast, nil
}
