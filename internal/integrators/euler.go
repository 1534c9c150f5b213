package integrators

type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Info() Info {
	return Info{Name: "euler", Stages: 1, Order: 1}
}

func (e *Euler) Step(f Func, t float64, y []float64, h float64) []float64 {
	dy := f(t, y)
	result := make([]float64, len(y))
	for i := range y {
		result[i] = y[i] + h*dy[i]
	}
	return result
}
