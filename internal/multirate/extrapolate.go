package multirate

import "github.com/san-kum/mrsolve/internal/integrators"

// extrapolated performs levels independent multirate advances of the
// macro interval with baseRatio, 2*baseRatio, 4*baseRatio, ... micro
// steps, then combines them by Richardson extrapolation to the
// zero-step-size limit. The Neville table is rebuilt from scratch every
// macro step; nothing carries over between steps.
type extrapolated struct {
	baseRatio int
	levels    int
	passes    []*explicitMRK
}

func newExtrapolated(baseRatio, levels int) *extrapolated {
	e := &extrapolated{
		baseRatio: baseRatio,
		levels:    levels,
		passes:    make([]*explicitMRK, levels),
	}
	for i := 0; i < levels; i++ {
		e.passes[i] = &explicitMRK{
			macroSteps: 1,
			microSteps: baseRatio << i,
			fastRK:     integrators.NewRK4(),
			slowRK:     integrators.NewRK4(),
		}
	}
	return e
}

func (e *extrapolated) advance(sys System, t, h float64, ySlow, yFast State) (State, State, error) {
	ns := len(ySlow)
	table := make([]State, e.levels)

	for i, pass := range e.passes {
		s, f, err := pass.advance(sys, t, h, ySlow, yFast)
		if err != nil {
			return nil, nil, err
		}
		row := make(State, ns+len(yFast))
		copy(row, s)
		copy(row[ns:], f)
		table[i] = row
	}

	extrapolate(table)

	final := table[e.levels-1]
	return final[:ns].Clone(), final[ns:].Clone(), nil
}

// extrapolate runs Neville's recurrence in place on rows computed with
// micro step sizes halving between consecutive rows, eliminating one
// power of the step size per column. table[len-1] ends up as the
// zero-step-size estimate.
func extrapolate(table []State) {
	levels := len(table)
	for j := 1; j < levels; j++ {
		// h_{i-j}/h_i = 2^j for geometrically refined rows.
		denom := float64(int(1)<<j) - 1
		for i := levels - 1; i >= j; i-- {
			for k := range table[i] {
				table[i][k] = table[i][k] + (table[i][k]-table[i-1][k])/denom
			}
		}
	}
}
