package systems

import "github.com/san-kum/mrsolve/internal/multirate"

// TwoScaleVanDerPol couples two Van der Pol oscillators relaxing on
// different time scales, the electronic-circuit picture of fast and slow
// RC branches. State: slow [x, y], fast [x, y].
type TwoScaleVanDerPol struct {
	epsilon float64
	muFast  float64
	muSlow  float64
}

func NewTwoScaleVanDerPol() *TwoScaleVanDerPol {
	return &TwoScaleVanDerPol{
		epsilon: 0.1,
		muFast:  5.0,
		muSlow:  1.0,
	}
}

func (v *TwoScaleVanDerPol) SlowDim() int { return 2 }
func (v *TwoScaleVanDerPol) FastDim() int { return 2 }

func (v *TwoScaleVanDerPol) SlowRHS(_ float64, ySlow, yFast multirate.State) multirate.State {
	x, y := ySlow[0], ySlow[1]
	xFast := yFast[0]

	return multirate.State{
		y,
		v.epsilon*(v.muSlow*(1-x*x)*y-x) + 0.1*xFast,
	}
}

func (v *TwoScaleVanDerPol) FastRHS(_ float64, ySlow, yFast multirate.State) multirate.State {
	xSlow := ySlow[0]
	x, y := yFast[0], yFast[1]

	return multirate.State{
		y,
		v.muFast*(1-x*x)*y - x + 0.05*xSlow,
	}
}

func (v *TwoScaleVanDerPol) DefaultState() multirate.State {
	return multirate.State{0.1, 0.0, 0.2, 0.1}
}

func (v *TwoScaleVanDerPol) GetParams() map[string]float64 {
	return map[string]float64{
		"epsilon": v.epsilon,
		"mu_fast": v.muFast,
		"mu_slow": v.muSlow,
	}
}

func (v *TwoScaleVanDerPol) SetParam(name string, value float64) {
	switch name {
	case "epsilon":
		v.epsilon = value
	case "mu_fast":
		v.muFast = value
	case "mu_slow":
		v.muSlow = value
	}
}
