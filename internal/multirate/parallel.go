package multirate

import (
	"context"
	"sync"
)

// Sweep runs independent solves of the same system from several initial
// states, one solver per run. Drivers hold per-solve mutable trajectory
// state, so every run constructs its own from the shared immutable
// options; no synchronization beyond the final join is needed.
type Sweep struct {
	opts Options
	sys  System
}

func NewSweep(opts Options, sys System) *Sweep {
	return &Sweep{opts: opts, sys: sys}
}

// Run solves [t0, t1] for every initial state concurrently. The first
// error encountered is returned; results are positional and may be
// partial for failed runs.
func (sw *Sweep) Run(ctx context.Context, t0, t1 float64, inits []State) ([]*Result, error) {
	results := make([]*Result, len(inits))
	errs := make([]error, len(inits))

	var wg sync.WaitGroup
	for i := range inits {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			solver, err := NewSolver(sw.opts)
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = solver.Solve(ctx, sw.sys, t0, t1, inits[idx])
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
