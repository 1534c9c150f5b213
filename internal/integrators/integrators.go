// Package integrators provides single-rate explicit steppers used as base
// methods by the multirate schemes. Each stepper advances y across one
// step of size h for an explicit ODE y' = f(t, y).
package integrators

import "fmt"

// Func is the right hand side f(t, y). It must return a slice of the
// same length as y and must not retain or mutate y.
type Func func(t float64, y []float64) []float64

// Info describes a stepper: display name, stage count and formal order.
type Info struct {
	Name   string
	Stages int
	Order  int
}

type Stepper interface {
	Step(f Func, t float64, y []float64, h float64) []float64
	Info() Info
}

// New returns the stepper registered under name.
func New(name string) (Stepper, error) {
	switch name {
	case "rk4":
		return NewRK4(), nil
	case "heun":
		return NewHeun(), nil
	case "euler":
		return NewEuler(), nil
	default:
		return nil, fmt.Errorf("integrators: unknown method %q", name)
	}
}
