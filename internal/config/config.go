// Package config holds the immutable TurbineConfig and its validating
// constructor, per spec.md §3 and §6.
package config

import "fmt"

// Defaults per spec.md §3.
const (
	DefaultAirDensityKgM3 = 1.15
	DefaultCutInWindMS    = 3.0
	DefaultStallWindMS    = 12.0
	DefaultTickPeriodMS   = 1000
	DefaultMPPTWindowSize = 100
)

// TurbineConfig is immutable once constructed; every field except
// LambdaOpt and CpMax is validated by New.
type TurbineConfig struct {
	RotorRadiusM   float64
	RotorHeightM   float64
	SweptAreaM2    float64
	LambdaOpt      float64
	CpMax          float64
	RatedPowerW    float64
	RatedRPM       float64
	OverspeedRPM   float64
	OvervoltageV   float64
	OvercurrentA   float64
	AirDensityKgM3 float64
	CutInWindMS    float64
	StallWindMS    float64

	// TickPeriodMS and MPPTWindowSize are independently configurable per
	// spec.md §9's open question about decoupling tick frequency from the
	// MPPT wind-speed window length.
	TickPeriodMS   uint32
	MPPTWindowSize int
}

// Params is the plain-data input to New; every field is required unless
// noted, letting callers supply only what they have and rely on New to
// reject what's missing or invalid. LambdaOpt and CpMax are informational
// and are copied as given, without any check.
type Params struct {
	RotorRadiusM   float64
	RotorHeightM   float64
	LambdaOpt      float64
	CpMax          float64
	RatedPowerW    float64
	RatedRPM       float64
	OverspeedRPM   float64
	OvervoltageV   float64
	OvercurrentA   float64
	AirDensityKgM3 float64 // 0 => DefaultAirDensityKgM3
	CutInWindMS    float64 // 0 => DefaultCutInWindMS
	StallWindMS    float64 // 0 => DefaultStallWindMS
	TickPeriodMS   uint32  // 0 => DefaultTickPeriodMS
	MPPTWindowSize int     // 0 => DefaultMPPTWindowSize
}

// New validates p and returns an immutable TurbineConfig, or a
// construction-time error naming the violated invariant (spec.md §3,
// §7: "Configuration invariant violation at construction. Fatal for the
// core; surfaced to the caller as a construction-time error.").
func New(p Params) (*TurbineConfig, error) {
	if p.RotorRadiusM <= 0 {
		return nil, fmt.Errorf("config: rotor_radius_m must be > 0, got %v", p.RotorRadiusM)
	}
	if p.RotorHeightM <= 0 {
		return nil, fmt.Errorf("config: rotor_height_m must be > 0, got %v", p.RotorHeightM)
	}
	if p.RatedPowerW <= 0 {
		return nil, fmt.Errorf("config: rated_power_w must be > 0, got %v", p.RatedPowerW)
	}
	if p.RatedRPM <= 0 {
		return nil, fmt.Errorf("config: rated_rpm must be > 0, got %v", p.RatedRPM)
	}
	if p.OverspeedRPM <= p.RatedRPM {
		return nil, fmt.Errorf("config: overspeed_rpm (%v) must be > rated_rpm (%v)", p.OverspeedRPM, p.RatedRPM)
	}
	if p.OvervoltageV <= 0 {
		return nil, fmt.Errorf("config: overvoltage_v must be > 0, got %v", p.OvervoltageV)
	}
	if p.OvercurrentA <= 0 {
		return nil, fmt.Errorf("config: overcurrent_a must be > 0, got %v", p.OvercurrentA)
	}

	airDensity := p.AirDensityKgM3
	if airDensity == 0 {
		airDensity = DefaultAirDensityKgM3
	}
	if airDensity <= 0 {
		return nil, fmt.Errorf("config: air_density_kg_m3 must be > 0, got %v", airDensity)
	}

	cutIn := p.CutInWindMS
	if cutIn == 0 {
		cutIn = DefaultCutInWindMS
	}
	stall := p.StallWindMS
	if stall == 0 {
		stall = DefaultStallWindMS
	}
	if stall <= cutIn {
		return nil, fmt.Errorf("config: stall_wind_ms (%v) must be > cut_in_wind_ms (%v)", stall, cutIn)
	}

	tickPeriod := p.TickPeriodMS
	if tickPeriod == 0 {
		tickPeriod = DefaultTickPeriodMS
	}
	windowSize := p.MPPTWindowSize
	if windowSize == 0 {
		windowSize = DefaultMPPTWindowSize
	}
	if windowSize <= 0 {
		return nil, fmt.Errorf("config: mppt_window_size must be > 0, got %v", windowSize)
	}

	return &TurbineConfig{
		RotorRadiusM:   p.RotorRadiusM,
		RotorHeightM:   p.RotorHeightM,
		SweptAreaM2:    2 * p.RotorRadiusM * p.RotorHeightM,
		LambdaOpt:      p.LambdaOpt,
		CpMax:          p.CpMax,
		RatedPowerW:    p.RatedPowerW,
		RatedRPM:       p.RatedRPM,
		OverspeedRPM:   p.OverspeedRPM,
		OvervoltageV:   p.OvervoltageV,
		OvercurrentA:   p.OvercurrentA,
		AirDensityKgM3: airDensity,
		CutInWindMS:    cutIn,
		StallWindMS:    stall,
		TickPeriodMS:   tickPeriod,
		MPPTWindowSize: windowSize,
	}, nil
}
