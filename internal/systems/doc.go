// Package systems provides partitioned slow/fast problem definitions for
// the multirate engine.
//
// Each model implements [multirate.System], splitting its state into the
// slow partition followed by the fast partition:
//
//   - [StiffOscillator]: weakly coupled slow and fast harmonic oscillators
//   - [ChemicalChain]: fast equilibrium A<=>B feeding a slow conversion B->C
//   - [TwoScaleVanDerPol]: Van der Pol relaxation on two time scales
//   - [ClimateWeather]: slow climate trend driven by fast weather noise
//
// Models with a conserved mechanical energy also implement
// [multirate.Hamiltonian] so drift metrics can watch them.
package systems
