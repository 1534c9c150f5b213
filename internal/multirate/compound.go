package multirate

import "github.com/san-kum/mrsolve/internal/integrators"

// compoundFastSlow advances each partition across the whole macro
// interval with its own base stepper, Gauss-Seidel style: first the fast
// partition against the slow state at t, then the slow partition against
// the newly advanced fast state. One base step per partition, so it only
// pays off when the time-scale separation makes the frozen-partition
// error acceptable.
type compoundFastSlow struct {
	fast integrators.Stepper
	slow integrators.Stepper
}

func (s *compoundFastSlow) advance(sys System, t, h float64, ySlow, yFast State) (State, State, error) {
	frozen := ySlow.Clone()
	fastRHS := func(tt float64, y []float64) []float64 {
		return sys.FastRHS(tt, frozen, y)
	}
	yFastNew := State(s.fast.Step(fastRHS, t, yFast, h))

	slowRHS := func(tt float64, y []float64) []float64 {
		return sys.SlowRHS(tt, y, yFastNew)
	}
	ySlowNew := State(s.slow.Step(slowRHS, t, ySlow, h))

	return ySlowNew, yFastNew, nil
}
