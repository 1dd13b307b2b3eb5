// Package regulate implements the soft-stall power-regulation PI loop
// from spec.md §4.4, grounded on original_source's calculateSoftStall.
package regulate

import "github.com/asithakal/vawt-control-guide/internal/numeric"

const (
	integratorGain = 0.001 // K_i
	proportional   = 0.01

	dutyMin  = 0.1
	dutyMax  = 0.9
	dutyBase = 0.5
)

// State holds the soft-stall regulator's single integrator accumulator.
// It is NOT reset on regime entry — re-entering PowerRegulation resumes
// from wherever the integrator last settled, by design (spec.md §4.4) —
// but IS reset on Fault entry and on explicit controller reset.
//
// Known limitation: the integrator has no anti-windup (no clamp, no
// back-calculation). During extended actuator saturation it can drift
// arbitrarily; the only safeguard is the output Clamp below. This is a
// deliberate choice carried over from the original firmware, not an
// oversight — see DESIGN.md Open Question 2.
type State struct {
	Integrator float64
}

// Update computes the next duty cycle to hold output at ratedPowerW,
// given the current electrical power and (unused by the formula, but
// accepted for symmetry with the MPPT regulator and future extension)
// rotor RPM.
func (s *State) Update(ratedPowerW, powerW, _rpm float64) float64 {
	perr := ratedPowerW - powerW
	s.Integrator += perr * integratorGain
	duty := dutyBase + proportional*perr + s.Integrator
	return numeric.Clamp(duty, dutyMin, dutyMax)
}

// Reset zeroes the integrator. Called on Fault entry and on explicit
// controller reset; never on ordinary PowerRegulation re-entry.
func (s *State) Reset() {
	s.Integrator = 0
}
