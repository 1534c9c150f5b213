package systems_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/mrsolve/internal/integrators"
	"github.com/san-kum/mrsolve/internal/metrics"
	"github.com/san-kum/mrsolve/internal/multirate"
	"github.com/san-kum/mrsolve/internal/systems"
)

func solve(opts multirate.Options, sys multirate.System, tEnd float64, y0 multirate.State, ms ...multirate.Metric) *multirate.Result {
	solver, err := multirate.NewSolver(opts)
	Expect(err).NotTo(HaveOccurred())
	for _, m := range ms {
		solver.AddMetric(m)
	}
	result, err := solver.Solve(context.Background(), sys, 0, tEnd, y0)
	Expect(err).NotTo(HaveOccurred())
	Expect(result.Complete).To(BeTrue())
	return result
}

var _ = Describe("ChemicalChain", func() {
	var chem *systems.ChemicalChain

	BeforeEach(func() {
		chem = systems.NewChemicalChain()
		chem.SetParam("k_forward", 50.0)
		chem.SetParam("k_backward", 40.0)
		chem.SetParam("k_slow", 1.0)
	})

	// The network is closed, so every method has to keep A+B+C constant
	// up to the splitting error.
	DescribeTable("conserves total mass",
		func(method multirate.Method, macroStep float64) {
			opts := multirate.Options{
				Method:    method,
				MacroStep: macroStep,
				RTol:      1e-8,
				ATol:      1e-11,
				MaxSteps:  1000,
			}
			drift := metrics.NewMassDrift()
			result := solve(opts, chem, 0.5, chem.DefaultState(), drift)

			Expect(drift.Value()).To(BeNumerically("<", 1e-3))

			_, final := result.Last()
			Expect(chem.TotalMass(final)).To(BeNumerically("~", 1.0, 1e-3))
			// Some product C must have formed.
			Expect(final[0]).To(BeNumerically(">", 0.01))
		},
		Entry("explicit multirate RK",
			multirate.ExplicitMRK{MacroSteps: 4, MicroSteps: 20}, 0.01),
		Entry("compound fast-slow",
			multirate.CompoundFastSlow{Fast: integrators.NewRK4(), Slow: integrators.NewRK4()}, 0.0025),
		Entry("extrapolated",
			multirate.Extrapolated{BaseRatio: 4, Levels: 2}, 0.0025),
	)

	It("approaches the fast equilibrium ratio", func() {
		opts := multirate.Options{
			Method:    multirate.ExplicitMRK{MacroSteps: 4, MicroSteps: 20},
			MacroStep: 0.01,
			RTol:      1e-8,
			ATol:      1e-11,
			MaxSteps:  1000,
		}
		result := solve(opts, chem, 0.5, chem.DefaultState())

		// A/B -> k_backward/k_forward once the fast reaction settles.
		_, final := result.Last()
		Expect(final[1] / final[2]).To(BeNumerically("~", 40.0/50.0, 0.05))
	})
})

var _ = Describe("StiffOscillator", func() {
	It("nearly conserves energy over twenty fast periods", func() {
		osc := systems.NewStiffOscillator()
		osc.SetParam("omega_fast", 20.0)
		osc.SetParam("coupling", 0.02)

		opts := multirate.Options{
			Method:    multirate.ExplicitMRK{MacroSteps: 4, MicroSteps: 20},
			MacroStep: 0.005,
			RTol:      1e-10,
			ATol:      1e-13,
			MaxSteps:  2000,
		}
		drift := metrics.NewEnergyDrift(osc)

		fastPeriod := 2 * math.Pi / 20.0
		solve(opts, osc, 20*fastPeriod, osc.DefaultState(), drift)

		Expect(drift.Value()).To(BeNumerically("<", 0.1))
	})

	It("agrees across schemes within the extrapolated error bound", func() {
		osc := systems.NewStiffOscillator()
		osc.SetParam("omega_fast", 40.0)
		osc.SetParam("coupling", 0.1)
		y0 := osc.DefaultState()
		slowPeriod := 2 * math.Pi

		base := multirate.Options{
			MacroStep: 0.02,
			RTol:      1e-6,
			ATol:      1e-9,
			MaxSteps:  5000,
		}

		ref := base
		ref.MacroStep = 0.002
		ref.Method = multirate.ExplicitMRK{MacroSteps: 8, MicroSteps: 64}
		ref.MaxSteps = 10000
		refResult := solve(ref, osc, slowPeriod, y0)
		_, refState := refResult.Last()

		// The plain pass is the extrapolated scheme's coarsest refinement,
		// so the table must not do worse than it.
		mrk := base
		mrk.Method = multirate.ExplicitMRK{MacroSteps: 1, MicroSteps: 2}
		mrkResult := solve(mrk, osc, slowPeriod, y0)

		extr := base
		extr.Method = multirate.Extrapolated{BaseRatio: 2, Levels: 3}
		extrResult := solve(extr, osc, slowPeriod, y0)

		_, mrkState := mrkResult.Last()
		_, extrState := extrResult.Last()

		mrkErr := mrkState.Sub(refState).Norm()
		extrErr := extrState.Sub(refState).Norm()

		Expect(extrErr).To(BeNumerically("<=", mrkErr))
	})
})

var _ = Describe("registry", func() {
	It("constructs every registered model", func() {
		for _, name := range systems.Names() {
			model, err := systems.New(name)
			Expect(err).NotTo(HaveOccurred())
			Expect(model.SlowDim()).To(BeNumerically(">", 0))
			Expect(model.FastDim()).To(BeNumerically(">", 0))
			Expect(model.DefaultState()).To(HaveLen(model.SlowDim() + model.FastDim()))

			deriv := model.SlowRHS(0, model.DefaultState()[:model.SlowDim()], model.DefaultState()[model.SlowDim():])
			Expect(deriv).To(HaveLen(model.SlowDim()))
		}
	})

	It("rejects unknown names", func() {
		_, err := systems.New("lorenz")
		Expect(err).To(HaveOccurred())
	})
})
