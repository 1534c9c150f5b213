package integrators

// RK4 is the classical fourth-order Runge-Kutta method. Stage buffers are
// reused across steps, so an instance is not safe for concurrent use.
type RK4 struct {
	k1, k2, k3, k4 []float64
	scratch        []float64
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Info() Info {
	return Info{Name: "rk4", Stages: 4, Order: 4}
}

func (r *RK4) ensureScratch(n int) {
	if len(r.k1) != n {
		r.k1 = make([]float64, n)
		r.k2 = make([]float64, n)
		r.k3 = make([]float64, n)
		r.k4 = make([]float64, n)
		r.scratch = make([]float64, n)
	}
}

func (r *RK4) Step(f Func, t float64, y []float64, h float64) []float64 {
	n := len(y)
	r.ensureScratch(n)

	copy(r.k1, f(t, y))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*0.5*r.k1[i]
	}
	copy(r.k2, f(t+h*0.5, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*0.5*r.k2[i]
	}
	copy(r.k3, f(t+h*0.5, r.scratch))

	for i := 0; i < n; i++ {
		r.scratch[i] = y[i] + h*r.k3[i]
	}
	copy(r.k4, f(t+h, r.scratch))

	result := make([]float64, n)
	h6 := h / 6.0
	for i := 0; i < n; i++ {
		result[i] = y[i] + h6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}

	return result
}
