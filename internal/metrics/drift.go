// Package metrics provides trajectory metrics collected by the solver
// once per macro step.
package metrics

import (
	"math"

	"github.com/san-kum/mrsolve/internal/multirate"
)

// MassDrift tracks the largest absolute deviation of the state-component
// sum from its initial value. For closed reaction networks the sum is
// the total mass.
type MassDrift struct {
	initial  float64
	maxDrift float64
	samples  int
}

func NewMassDrift() *MassDrift {
	return &MassDrift{}
}

func (m *MassDrift) Name() string { return "mass_drift" }

func (m *MassDrift) Observe(_ float64, y multirate.State) {
	total := 0.0
	for _, v := range y {
		total += v
	}

	if m.samples == 0 {
		m.initial = total
	}
	m.samples++

	m.maxDrift = math.Max(m.maxDrift, math.Abs(total-m.initial))
}

func (m *MassDrift) Value() float64 {
	return m.maxDrift
}

func (m *MassDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}

// EnergyDrift tracks the largest relative deviation of a Hamiltonian
// system's energy from its initial value.
type EnergyDrift struct {
	ham      multirate.Hamiltonian
	initial  float64
	maxDrift float64
	samples  int
}

func NewEnergyDrift(ham multirate.Hamiltonian) *EnergyDrift {
	return &EnergyDrift{ham: ham}
}

func (e *EnergyDrift) Name() string { return "energy_drift" }

func (e *EnergyDrift) Observe(_ float64, y multirate.State) {
	energy := e.ham.Energy(y)

	if e.samples == 0 {
		e.initial = energy
	}
	e.samples++

	if e.initial != 0 {
		drift := math.Abs(energy-e.initial) / math.Abs(e.initial)
		e.maxDrift = math.Max(e.maxDrift, drift)
	}
}

func (e *EnergyDrift) Value() float64 {
	return e.maxDrift
}

func (e *EnergyDrift) Reset() {
	e.initial = 0
	e.maxDrift = 0
	e.samples = 0
}
