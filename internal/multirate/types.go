package multirate

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/mrsolve/internal/integrators"
)

type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (s State) Norm() float64 {
	sum := 0.0
	for _, v := range s {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func (s State) Sub(other State) State {
	result := make(State, len(s))
	for i := range s {
		if i < len(other) {
			result[i] = s[i] - other[i]
		} else {
			result[i] = s[i]
		}
	}
	return result
}

// System is the caller-supplied problem definition. The state splits into
// a slow and a fast partition; both right hand sides see the full current
// state because cross-partition coupling is the point of a multirate
// problem. Implementations must be pure: no side effects, safe to
// evaluate many times per macro step.
type System interface {
	SlowRHS(t float64, ySlow, yFast State) State
	FastRHS(t float64, ySlow, yFast State) State
	SlowDim() int
	FastDim() int
}

// Hamiltonian is implemented by systems with a conserved mechanical
// energy, used by drift metrics.
type Hamiltonian interface {
	Energy(y State) float64
}

// Method selects the stepping scheme. The variant set is closed: exactly
// ExplicitMRK, CompoundFastSlow and Extrapolated implement it.
type Method interface {
	Name() string
	validate() error
}

// ExplicitMRK splits each macro interval into MacroSteps sub-intervals;
// within each, the fast partition takes MicroSteps classical RK4 steps
// against the slow state frozen at the sub-interval start, then the slow
// partition takes one RK4 step of the sub-interval size.
type ExplicitMRK struct {
	MacroSteps int
	MicroSteps int
}

func (m ExplicitMRK) Name() string { return "explicit-mrk" }

func (m ExplicitMRK) validate() error {
	if m.MacroSteps <= 0 {
		return fmt.Errorf("%w: explicit-mrk macro steps must be positive, got %d", ErrInvalidConfiguration, m.MacroSteps)
	}
	if m.MicroSteps <= 0 {
		return fmt.Errorf("%w: explicit-mrk micro steps must be positive, got %d", ErrInvalidConfiguration, m.MicroSteps)
	}
	return nil
}

// CompoundFastSlow advances the fast partition across the whole macro
// interval with Fast while the slow state stays at its interval-start
// value, then advances the slow partition with Slow against the newly
// advanced fast state. One-directional coupling; callers pick this when
// the time-scale separation is large enough to tolerate it.
type CompoundFastSlow struct {
	Fast integrators.Stepper
	Slow integrators.Stepper
}

func (m CompoundFastSlow) Name() string { return "compound-fast-slow" }

func (m CompoundFastSlow) validate() error {
	if m.Fast == nil || m.Slow == nil {
		return fmt.Errorf("%w: compound-fast-slow requires both base steppers", ErrInvalidConfiguration)
	}
	return nil
}

// Extrapolated runs Levels independent single-sub-interval MRK passes
// with BaseRatio, 2*BaseRatio, 4*BaseRatio, ... micro steps and combines
// them by Richardson extrapolation to the zero-step-size limit.
type Extrapolated struct {
	BaseRatio int
	Levels    int
}

func (m Extrapolated) Name() string { return "extrapolated" }

func (m Extrapolated) validate() error {
	if m.BaseRatio <= 0 {
		return fmt.Errorf("%w: extrapolated base ratio must be positive, got %d", ErrInvalidConfiguration, m.BaseRatio)
	}
	if m.Levels <= 0 {
		return fmt.Errorf("%w: extrapolated levels must be positive, got %d", ErrInvalidConfiguration, m.Levels)
	}
	return nil
}

// Options configures a Solver. The macro step is fixed for the whole
// solve; the tolerances are validated and surfaced in diagnostics but the
// fixed-step schemes do not adapt on them. TimescaleRatio is a hint used
// only for reporting, never for correctness.
type Options struct {
	Method         Method
	MacroStep      float64
	RTol           float64
	ATol           float64
	MaxSteps       int
	TimescaleRatio float64
}

func DefaultOptions() Options {
	return Options{
		Method:    ExplicitMRK{MacroSteps: 4, MicroSteps: 25},
		MacroStep: 0.01,
		RTol:      1e-6,
		ATol:      1e-9,
		MaxSteps:  10000,
	}
}

func (o Options) validate() error {
	if o.Method == nil {
		return fmt.Errorf("%w: no method selected", ErrInvalidConfiguration)
	}
	if o.MacroStep <= 0 {
		return fmt.Errorf("%w: macro step must be positive, got %g", ErrInvalidConfiguration, o.MacroStep)
	}
	if o.RTol <= 0 || o.ATol <= 0 {
		return fmt.Errorf("%w: tolerances must be positive, got rtol=%g atol=%g", ErrInvalidConfiguration, o.RTol, o.ATol)
	}
	if o.MaxSteps <= 0 {
		return fmt.Errorf("%w: max steps must be positive, got %d", ErrInvalidConfiguration, o.MaxSteps)
	}
	return o.Method.validate()
}

type Metric interface {
	Name() string
	Observe(t float64, y State)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(t float64, y State)
}

// Result is the trajectory produced by one Solve call. Times and States
// grow by one entry per successful macro step, in increasing time order,
// starting with the initial condition. Complete reports whether the end
// time was reached; on failure or budget exhaustion the partial
// trajectory up to the last successful step is retained.
type Result struct {
	Times    []float64
	States   []State
	Steps    int
	Evals    int
	Elapsed  time.Duration
	Metrics  map[string]float64
	Complete bool
}

// Last returns the final sample, or (0, nil) for an empty trajectory.
func (r *Result) Last() (float64, State) {
	if len(r.Times) == 0 {
		return 0, nil
	}
	return r.Times[len(r.Times)-1], r.States[len(r.States)-1]
}
