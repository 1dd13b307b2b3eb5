package sim

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSensors_ReplaysScriptedFrames(t *testing.T) {
	frames := []Frame{
		{WindSpeedMS: 2.0, RotorRPM: 0},
		{WindSpeedMS: 5.0, RotorRPM: 60},
	}
	s := NewSensors(frames, 1000)
	ctx := context.Background()

	assert.Equal(t, 2.0, s.ReadWindSpeedMS(ctx))
	assert.Equal(t, uint64(0), s.MonotonicMS())

	s.Advance()
	assert.Equal(t, 5.0, s.ReadWindSpeedMS(ctx))
	assert.Equal(t, float64(60), s.ReadRotorRPM(ctx))
	assert.Equal(t, uint64(1000), s.MonotonicMS())
}

func TestSensors_RepeatsLastFrameOnceScriptExhausted(t *testing.T) {
	frames := []Frame{{WindSpeedMS: 2.0}, {WindSpeedMS: 5.0}}
	s := NewSensors(frames, 1000)
	s.Advance()
	s.Advance()
	s.Advance()
	assert.Equal(t, 5.0, s.ReadWindSpeedMS(context.Background()))
	assert.Equal(t, uint64(3000), s.MonotonicMS(), "the clock keeps advancing even after the script runs out")
}

func TestSensors_EmptyScriptReturnsZeroValues(t *testing.T) {
	s := NewSensors(nil, 1000)
	ctx := context.Background()
	assert.Equal(t, 0.0, s.ReadWindSpeedMS(ctx))
	assert.Equal(t, 0.0, s.ReadRotorRPM(ctx))
	assert.Equal(t, 0.0, s.ReadBusVoltageV(ctx))
	assert.Equal(t, 0.0, s.ReadBusCurrentA(ctx))
}
