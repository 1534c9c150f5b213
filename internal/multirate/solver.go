package multirate

import (
	"context"
	"fmt"
	"math"
	"time"
)

// spanEps bounds the relative slack used when deciding whether the end
// time has been reached, so float accumulation never produces a
// degenerate trailing step.
const spanEps = 1e-12

// Solver drives the macro-step loop for one configured method. A Solver
// holds only configuration plus registered metrics and observers; each
// Solve call builds its trajectory from scratch, so an instance may be
// reused for sequential solves but not shared across goroutines.
type Solver struct {
	opts      Options
	sch       scheme
	metrics   []Metric
	observers []Observer
}

// NewSolver validates opts and resolves the configured method.
func NewSolver(opts Options) (*Solver, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	sch, err := newScheme(opts.Method)
	if err != nil {
		return nil, err
	}
	return &Solver{opts: opts, sch: sch}, nil
}

func (s *Solver) Options() Options { return s.opts }

func (s *Solver) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Solver) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// countingSystem counts right-hand-side evaluations around a System.
type countingSystem struct {
	System
	evals *int
}

func (c countingSystem) SlowRHS(t float64, ySlow, yFast State) State {
	*c.evals++
	return c.System.SlowRHS(t, ySlow, yFast)
}

func (c countingSystem) FastRHS(t float64, ySlow, yFast State) State {
	*c.evals++
	return c.System.FastRHS(t, ySlow, yFast)
}

// Solve integrates sys from t0 to t1 starting at y0, the concatenation
// of the slow partition followed by the fast partition. The final macro
// step is shortened so the last sample lands exactly on t1.
//
// On divergence, cancellation or an exhausted step budget the partial
// trajectory accumulated so far is returned alongside the error, with
// Complete left false.
func (s *Solver) Solve(ctx context.Context, sys System, t0, t1 float64, y0 State) (*Result, error) {
	ns, nf := sys.SlowDim(), sys.FastDim()
	if ns <= 0 || nf <= 0 {
		return nil, fmt.Errorf("%w: system reports slow dim %d, fast dim %d", ErrDimensionMismatch, ns, nf)
	}
	if len(y0) != ns+nf {
		return nil, fmt.Errorf("%w: got %d values, system needs %d slow + %d fast", ErrDimensionMismatch, len(y0), ns, nf)
	}
	if t1 <= t0 {
		return nil, fmt.Errorf("%w: end time %g not after start time %g", ErrInvalidConfiguration, t1, t0)
	}

	start := time.Now()

	expected := int(math.Ceil((t1-t0)/s.opts.MacroStep)) + 1
	res := &Result{
		Times:   make([]float64, 0, expected),
		States:  make([]State, 0, expected),
		Metrics: make(map[string]float64),
	}
	csys := countingSystem{System: sys, evals: &res.Evals}

	for _, m := range s.metrics {
		m.Reset()
	}

	ySlow := y0[:ns].Clone()
	yFast := y0[ns:].Clone()
	t := t0
	s.record(res, t, ySlow, yFast)

	scale := math.Max(1, math.Max(math.Abs(t0), math.Abs(t1)))
	for t1-t > spanEps*scale {
		if res.Steps >= s.opts.MaxSteps {
			res.Elapsed = time.Since(start)
			return res, &SolveError{Step: res.Steps, Time: t, Wrapped: ErrStepBudget}
		}

		select {
		case <-ctx.Done():
			res.Elapsed = time.Since(start)
			return res, &SolveError{Step: res.Steps, Time: t, Wrapped: ctx.Err()}
		default:
		}

		h := s.opts.MacroStep
		last := false
		if rem := t1 - t; rem <= h*(1+spanEps) {
			h = rem
			last = true
		}

		newSlow, newFast, err := s.sch.advance(csys, t, h, ySlow, yFast)
		if err != nil {
			res.Elapsed = time.Since(start)
			return res, &SolveError{Step: res.Steps, Time: t, Wrapped: err}
		}
		if !newSlow.IsValid() || !newFast.IsValid() {
			res.Elapsed = time.Since(start)
			return res, &SolveError{Step: res.Steps, Time: t, Wrapped: ErrDivergence}
		}

		ySlow, yFast = newSlow, newFast
		if last {
			t = t1
		} else {
			t += h
		}
		res.Steps++
		s.record(res, t, ySlow, yFast)
	}

	for _, m := range s.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	res.Elapsed = time.Since(start)
	res.Complete = true
	return res, nil
}

func (s *Solver) record(res *Result, t float64, ySlow, yFast State) {
	y := make(State, 0, len(ySlow)+len(yFast))
	y = append(y, ySlow...)
	y = append(y, yFast...)

	res.Times = append(res.Times, t)
	res.States = append(res.States, y)

	for _, m := range s.metrics {
		m.Observe(t, y)
	}
	for _, o := range s.observers {
		o.OnStep(t, y)
	}
}
