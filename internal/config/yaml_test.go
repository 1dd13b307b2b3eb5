package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleYAML = `
rotor_radius_m: 0.6
rotor_height_m: 1.5
lambda_opt: 2.0
cp_max: 0.35
rated_power_w: 500.0
rated_rpm: 180.0
overspeed_rpm: 250.0
overvoltage_v: 60.0
overcurrent_a: 30.0
air_density_kg_m3: 1.15
cut_in_wind_ms: 3.0
stall_wind_ms: 12.0
tick_period_ms: 1000
mppt_window_size: 100
`

func TestLoadFile_ValidYAML_ProducesValidatedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vawt.yaml")
	require.NoError(t, os.WriteFile(path, []byte(exampleYAML), 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0.6, cfg.RotorRadiusM)
	assert.Equal(t, 500.0, cfg.RatedPowerW)
	assert.Equal(t, uint32(1000), cfg.TickPeriodMS)
	assert.Equal(t, 100, cfg.MPPTWindowSize)
	assert.InDelta(t, 1.8, cfg.SweptAreaM2, 1e-9)
}

func TestLoadFile_MissingFile_ReturnsError(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadFile_InvalidYAML_ReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vawt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rotor_radius_m: [this is not a float"), 0o644))
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_ValidYAMLButInvalidValues_ReturnsValidationError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vawt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rotor_radius_m: 0\n"), 0o644))
	_, err := LoadFile(path)
	assert.Error(t, err)
}
