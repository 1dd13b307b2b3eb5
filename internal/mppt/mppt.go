// Package mppt implements the turbulence-adaptive hill-climb MPPT
// described in spec.md §4.3, grounded on original_source's
// lib/MPPT/MPPTController.{h,cpp}.
package mppt

import "github.com/asithakal/vawt-control-guide/internal/numeric"

const (
	// BaseStep is the hill-climb step used while the wind window has not
	// yet filled, and is the numerator of the adaptive step once it has.
	BaseStep = 0.02
	// MinStep floors the adaptive step in highly turbulent wind.
	MinStep = 0.005
	// turbulenceGain (k in spec.md §4.3) scales how strongly sigma
	// shrinks the step.
	turbulenceGain = 0.5

	dutyMin     = 0.1
	dutyMax     = 0.9
	dutyInitial = 0.3

	// turbulenceWindSpeedFloorMS is the mean-wind floor below which
	// turbulence intensity is undefined (would divide by ~0).
	turbulenceWindSpeedFloorMS = 0.5
)

// State is the turbulence-adaptive MPPT controller's mutable state.
type State struct {
	DutyCycle  float64
	LastPowerW float64
	Direction  int8 // -1 or +1
	Window     *WindWindow
}

// New constructs an MPPT State with a window of the given size (W),
// initialized per spec.md §3: duty 0.3, direction +1, empty window.
func New(windowSize int) *State {
	return &State{
		DutyCycle: dutyInitial,
		Direction: 1,
		Window:    NewWindWindow(windowSize),
	}
}

// Update appends windMS to the wind window, computes the adaptive step,
// applies the hill-climb decision, and returns the new duty cycle. The
// returned value is always within [0.1, 0.9].
func (s *State) Update(powerW, windMS float64) float64 {
	s.Window.Push(windMS)

	step := s.adaptiveStep()

	if powerW <= s.LastPowerW {
		s.Direction = -s.Direction
	}
	s.DutyCycle = numeric.Clamp(s.DutyCycle+float64(s.Direction)*step, dutyMin, dutyMax)

	s.LastPowerW = powerW
	return s.DutyCycle
}

// adaptiveStep implements spec.md §4.3 step 2: BaseStep until the window
// fills, then BaseStep/(1+k*sigma) floored at MinStep.
func (s *State) adaptiveStep() float64 {
	if !s.Window.Full() {
		return BaseStep
	}
	sigma := s.Window.StdDev()
	step := BaseStep / (1 + turbulenceGain*sigma)
	if step < MinStep {
		return MinStep
	}
	return step
}

// TurbulenceIntensity is the diagnostic sigma/mean ratio, zero until the
// window fills or when the mean wind speed is too small to normalize by.
func (s *State) TurbulenceIntensity() float64 {
	if !s.Window.Full() {
		return 0
	}
	mean := s.Window.Mean()
	if mean < turbulenceWindSpeedFloorMS {
		return 0
	}
	return s.Window.StdDev() / mean
}

// Reset restores the controller to its post-construction state: duty
// 0.3, last power 0, direction +1, window cleared. Called on entry to
// MPPT from any non-MPPT regime, and on Fault-clear.
func (s *State) Reset() {
	s.DutyCycle = dutyInitial
	s.LastPowerW = 0
	s.Direction = 1
	s.Window.Reset()
}
