package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// File is the on-disk configuration surface from spec.md §6, decoded
// from YAML before being validated into a TurbineConfig.
type File struct {
	RotorRadiusM   float64 `yaml:"rotor_radius_m"`
	RotorHeightM   float64 `yaml:"rotor_height_m"`
	LambdaOpt      float64 `yaml:"lambda_opt"`
	CpMax          float64 `yaml:"cp_max"`
	RatedPowerW    float64 `yaml:"rated_power_w"`
	RatedRPM       float64 `yaml:"rated_rpm"`
	OverspeedRPM   float64 `yaml:"overspeed_rpm"`
	OvervoltageV   float64 `yaml:"overvoltage_v"`
	OvercurrentA   float64 `yaml:"overcurrent_a"`
	AirDensityKgM3 float64 `yaml:"air_density_kg_m3"`
	CutInWindMS    float64 `yaml:"cut_in_wind_ms"`
	StallWindMS    float64 `yaml:"stall_wind_ms"`
	TickPeriodMS   uint32  `yaml:"tick_period_ms"`
	MPPTWindowSize int     `yaml:"mppt_window_size"`
}

// LoadFile reads and validates a TurbineConfig from a YAML file at path.
func LoadFile(path string) (*TurbineConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	cfg, err := New(Params{
		RotorRadiusM:   f.RotorRadiusM,
		RotorHeightM:   f.RotorHeightM,
		LambdaOpt:      f.LambdaOpt,
		CpMax:          f.CpMax,
		RatedPowerW:    f.RatedPowerW,
		RatedRPM:       f.RatedRPM,
		OverspeedRPM:   f.OverspeedRPM,
		OvervoltageV:   f.OvervoltageV,
		OvercurrentA:   f.OvercurrentA,
		AirDensityKgM3: f.AirDensityKgM3,
		CutInWindMS:    f.CutInWindMS,
		StallWindMS:    f.StallWindMS,
		TickPeriodMS:   f.TickPeriodMS,
		MPPTWindowSize: f.MPPTWindowSize,
	})
	if err != nil {
		return nil, fmt.Errorf("config: validating %s: %w", path, err)
	}
	return cfg, nil
}
