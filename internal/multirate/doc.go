// Package multirate integrates ODE systems whose state splits into slow
// and fast partitions evolving on well-separated time scales.
//
// The problem supplies its partition through the [System] interface; the
// engine advances it with one of three fixed-step schemes selected by the
// closed [Method] union:
//
//   - [ExplicitMRK]: nested macro/micro RK4 stepping with the slow state
//     frozen per macro-sub-interval
//   - [CompoundFastSlow]: one base-method step per partition across the
//     whole macro interval, fast first
//   - [Extrapolated]: Richardson extrapolation over geometrically
//     refined multirate passes
//
// # Example
//
//	solver, err := multirate.NewSolver(multirate.Options{
//	    Method:    multirate.ExplicitMRK{MacroSteps: 4, MicroSteps: 25},
//	    MacroStep: 0.01,
//	    RTol:      1e-6,
//	    ATol:      1e-9,
//	    MaxSteps:  1000,
//	})
//	result, err := solver.Solve(ctx, sys, 0, 1, y0)
//
// # Thread Safety
//
// A Solver accumulates trajectory state during Solve and must not be
// shared across goroutines. For concurrent parameter sweeps use [Sweep],
// which constructs one solver per run.
package multirate
