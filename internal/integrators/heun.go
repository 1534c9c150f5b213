package integrators

// Heun is the explicit trapezoidal rule: a forward Euler predictor
// followed by a trapezoidal corrector.
type Heun struct{}

func NewHeun() *Heun {
	return &Heun{}
}

func (h *Heun) Info() Info {
	return Info{Name: "heun", Stages: 2, Order: 2}
}

func (h *Heun) Step(f Func, t float64, y []float64, dt float64) []float64 {
	n := len(y)
	k1 := f(t, y)

	predictor := make([]float64, n)
	for i := 0; i < n; i++ {
		predictor[i] = y[i] + dt*k1[i]
	}
	k2 := f(t+dt, predictor)

	result := make([]float64, n)
	for i := 0; i < n; i++ {
		result[i] = y[i] + dt*0.5*(k1[i]+k2[i])
	}
	return result
}
