package systems

import "github.com/san-kum/mrsolve/internal/multirate"

// ChemicalChain models the closed reaction network A <=> B -> C: a fast
// equilibrium between A and B feeding a slow conversion of B into C.
// State: slow [C], fast [A, B]. Total mass A+B+C is conserved.
type ChemicalChain struct {
	kForward  float64
	kBackward float64
	kSlow     float64
}

func NewChemicalChain() *ChemicalChain {
	return &ChemicalChain{
		kForward:  100.0,
		kBackward: 80.0,
		kSlow:     0.5,
	}
}

func (c *ChemicalChain) SlowDim() int { return 1 }
func (c *ChemicalChain) FastDim() int { return 2 }

func (c *ChemicalChain) SlowRHS(_ float64, _, yFast multirate.State) multirate.State {
	b := yFast[1]
	return multirate.State{c.kSlow * b}
}

func (c *ChemicalChain) FastRHS(_ float64, _, yFast multirate.State) multirate.State {
	a, b := yFast[0], yFast[1]
	return multirate.State{
		-c.kForward*a + c.kBackward*b,
		c.kForward*a - c.kBackward*b - c.kSlow*b,
	}
}

// TotalMass sums the three concentrations; the network is closed so the
// exact flow keeps it constant.
func (c *ChemicalChain) TotalMass(y multirate.State) float64 {
	return y[0] + y[1] + y[2]
}

// DefaultState starts with only A present.
func (c *ChemicalChain) DefaultState() multirate.State {
	return multirate.State{0.0, 1.0, 0.0}
}

func (c *ChemicalChain) GetParams() map[string]float64 {
	return map[string]float64{
		"k_forward":  c.kForward,
		"k_backward": c.kBackward,
		"k_slow":     c.kSlow,
	}
}

func (c *ChemicalChain) SetParam(name string, value float64) {
	switch name {
	case "k_forward":
		c.kForward = value
	case "k_backward":
		c.kBackward = value
	case "k_slow":
		c.kSlow = value
	}
}
