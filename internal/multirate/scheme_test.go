package multirate

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/mrsolve/internal/integrators"
)

// Uncoupled partitions have closed-form solutions: the slow oscillator
// follows cos(w_s t) and the fast one 0.1 cos(w_f t) for the canonical
// initial state.
func analyticState(o *testOscillator, t float64) State {
	return State{
		math.Cos(o.omegaSlow * t),
		-o.omegaSlow * math.Sin(o.omegaSlow*t),
		0.1 * math.Cos(o.omegaFast*t),
		-0.1 * o.omegaFast * math.Sin(o.omegaFast*t),
	}
}

func maxAbsError(got, want State) float64 {
	maxErr := 0.0
	for i := range got {
		maxErr = math.Max(maxErr, math.Abs(got[i]-want[i]))
	}
	return maxErr
}

func TestExplicitMRKAccuracy(t *testing.T) {
	sys := &testOscillator{omegaSlow: 1, omegaFast: 20}
	solver, _ := NewSolver(Options{
		Method:    ExplicitMRK{MacroSteps: 2, MicroSteps: 10},
		MacroStep: 0.01,
		RTol:      1e-6,
		ATol:      1e-9,
		MaxSteps:  1000,
	})

	res, err := solver.Solve(context.Background(), sys, 0, 1.0, State{1, 0, 0.1, 0})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	_, got := res.Last()
	if errMax := maxAbsError(got, analyticState(sys, 1.0)); errMax > 1e-5 {
		t.Errorf("max error %.3e exceeds 1e-5", errMax)
	}
}

func TestCompoundFastSlowAccuracy(t *testing.T) {
	sys := &testOscillator{omegaSlow: 1, omegaFast: 20}
	solver, _ := NewSolver(Options{
		Method:    CompoundFastSlow{Fast: integrators.NewRK4(), Slow: integrators.NewRK4()},
		MacroStep: 0.01,
		RTol:      1e-6,
		ATol:      1e-9,
		MaxSteps:  1000,
	})

	res, err := solver.Solve(context.Background(), sys, 0, 1.0, State{1, 0, 0.1, 0})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	// One RK4 step per macro interval for the fast partition: coarser
	// than MRK, so the bound is looser.
	_, got := res.Last()
	if errMax := maxAbsError(got, analyticState(sys, 1.0)); errMax > 2e-3 {
		t.Errorf("max error %.3e exceeds 2e-3", errMax)
	}
}

func TestExtrapolatedAccuracy(t *testing.T) {
	sys := &testOscillator{omegaSlow: 1, omegaFast: 20}
	solver, _ := NewSolver(Options{
		Method:    Extrapolated{BaseRatio: 5, Levels: 2},
		MacroStep: 0.01,
		RTol:      1e-6,
		ATol:      1e-9,
		MaxSteps:  1000,
	})

	res, err := solver.Solve(context.Background(), sys, 0, 1.0, State{1, 0, 0.1, 0})
	if err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	_, got := res.Last()
	if errMax := maxAbsError(got, analyticState(sys, 1.0)); errMax > 1e-4 {
		t.Errorf("max error %.3e exceeds 1e-4", errMax)
	}
}

// The extrapolated scheme must not do worse than a plain multirate pass
// at its coarsest refinement. A stiffer fast mode makes the micro-step
// truncation error dominate, which is exactly what the extrapolation
// table cancels.
func TestExtrapolatedBeatsCoarsePass(t *testing.T) {
	sys := &testOscillator{omegaSlow: 1, omegaFast: 40, coupling: 0.1}
	y0 := State{1, 0, 0.1, 0}
	tEnd := 1.0

	base := Options{
		MacroStep: 0.02,
		RTol:      1e-6,
		ATol:      1e-9,
		MaxSteps:  1000,
	}

	// Reference: heavily refined multirate solve, effectively exact
	// relative to the coarse configurations under test.
	ref := base
	ref.MacroStep = 0.002
	ref.Method = ExplicitMRK{MacroSteps: 4, MicroSteps: 64}
	ref.MaxSteps = 10000
	refSolver, _ := NewSolver(ref)
	refRes, err := refSolver.Solve(context.Background(), sys, 0, tEnd, y0)
	if err != nil {
		t.Fatalf("reference solve failed: %v", err)
	}
	_, refState := refRes.Last()

	coarse := base
	coarse.Method = ExplicitMRK{MacroSteps: 1, MicroSteps: 2}
	coarseSolver, _ := NewSolver(coarse)
	coarseRes, err := coarseSolver.Solve(context.Background(), sys, 0, tEnd, y0)
	if err != nil {
		t.Fatalf("coarse solve failed: %v", err)
	}

	extr := base
	extr.Method = Extrapolated{BaseRatio: 2, Levels: 3}
	extrSolver, _ := NewSolver(extr)
	extrRes, err := extrSolver.Solve(context.Background(), sys, 0, tEnd, y0)
	if err != nil {
		t.Fatalf("extrapolated solve failed: %v", err)
	}

	_, coarseState := coarseRes.Last()
	_, extrState := extrRes.Last()

	coarseErr := maxAbsError(coarseState, refState)
	extrErr := maxAbsError(extrState, refState)

	if extrErr > coarseErr {
		t.Errorf("extrapolated error %.3e exceeds coarse multirate error %.3e", extrErr, coarseErr)
	}
}

func TestExtrapolationTableReproducesConstants(t *testing.T) {
	// Rows that agree exactly must extrapolate to themselves: the
	// Neville weights sum to one.
	table := []State{
		{2.0, -1.0},
		{2.0, -1.0},
		{2.0, -1.0},
	}
	extrapolate(table)

	final := table[len(table)-1]
	if final[0] != 2.0 || final[1] != -1.0 {
		t.Errorf("constant rows changed under extrapolation: %v", final)
	}
}

func TestExtrapolationTableCancelsLinearError(t *testing.T) {
	// Synthetic rows y_i = exact + c*h_i with h halving per row. One
	// extrapolation column must recover the exact value.
	exact := 1.5
	c := 0.3
	h := 0.1
	table := []State{
		{exact + c*h},
		{exact + c*h/2},
	}
	extrapolate(table)

	if got := table[1][0]; math.Abs(got-exact) > 1e-12 {
		t.Errorf("extrapolated value %v, want %v", got, exact)
	}
}
