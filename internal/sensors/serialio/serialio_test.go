package serialio

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHandleWindFrame_UpdatesAllThreeReadings(t *testing.T) {
	s := &Sensors{}
	s.handleWindFrame("WIND,6.25,48.5,3.2")
	ctx := context.Background()
	assert.InDelta(t, 6.25, s.ReadWindSpeedMS(ctx), 1e-9)
	assert.InDelta(t, 48.5, s.ReadBusVoltageV(ctx), 1e-9)
	assert.InDelta(t, 3.2, s.ReadBusCurrentA(ctx), 1e-9)
}

func TestHandleWindFrame_MalformedLineIgnored(t *testing.T) {
	s := &Sensors{}
	s.handleWindFrame("WIND,6.25,48.5,3.2")
	s.handleWindFrame("WIND,not-a-number,48.5,3.2")
	assert.InDelta(t, 6.25, s.ReadWindSpeedMS(context.Background()), 1e-9, "a malformed frame must not overwrite the last good reading")
}

func TestHandleWindFrame_WrongFieldCountIgnored(t *testing.T) {
	s := &Sensors{}
	s.handleWindFrame("WIND,6.25,48.5")
	assert.Equal(t, 0.0, s.ReadWindSpeedMS(context.Background()))
}

func TestReadRotorRPM_ZeroBeforeAnyPulse(t *testing.T) {
	s := &Sensors{}
	assert.Equal(t, 0.0, s.ReadRotorRPM(context.Background()))
}

func TestHandlePulseFrame_DerivesRPMFromPeriod(t *testing.T) {
	s := &Sensors{}
	s.handlePulseFrame("PULSE,20000") // 20ms period -> 60e6/20000 = 3000 RPM
	assert.InDelta(t, 3000.0, s.ReadRotorRPM(context.Background()), 1e-9)
}

func TestReadRotorRPM_ZeroWhenPulseIsStale(t *testing.T) {
	s := &Sensors{}
	s.pulsePeriodUS.Store(20000)
	s.lastPulseAtNS.Store(time.Now().Add(-3 * time.Second).UnixNano())
	assert.Equal(t, 0.0, s.ReadRotorRPM(context.Background()))
}

func TestFloatBitsRoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 3.14159, 1e300, -1e-300} {
		assert.Equal(t, v, floatFromBits(floatBits(v)))
	}
}
