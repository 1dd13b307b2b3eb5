package regulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdate_ZeroErrorHoldsBaseDuty(t *testing.T) {
	s := &State{}
	d := s.Update(500, 500, 180)
	assert.InDelta(t, dutyBase, d, 1e-9)
}

func TestUpdate_PositiveErrorIncreasesDuty(t *testing.T) {
	s := &State{}
	d := s.Update(500, 400, 180) // power below rated -> positive error -> raise duty
	assert.Greater(t, d, dutyBase)
}

func TestUpdate_NegativeErrorDecreasesDuty(t *testing.T) {
	s := &State{}
	d := s.Update(500, 600, 180) // power above rated -> negative error -> lower duty
	assert.Less(t, d, dutyBase)
}

func TestUpdate_IntegratorAccumulatesAcrossCalls(t *testing.T) {
	s := &State{}
	s.Update(500, 400, 180)
	firstIntegrator := s.Integrator
	s.Update(500, 400, 180)
	assert.Greater(t, s.Integrator, firstIntegrator)
}

func TestUpdate_OutputAlwaysClamped(t *testing.T) {
	s := &State{}
	var d float64
	for i := 0; i < 10000; i++ {
		d = s.Update(500, 0, 180) // pathological, sustained large positive error
	}
	assert.LessOrEqual(t, d, dutyMax)
	assert.GreaterOrEqual(t, d, dutyMin)
}

func TestUpdate_NoAntiWindup_IntegratorExceedsOutputRange(t *testing.T) {
	// Deliberate design choice (see pi.go doc comment): the integrator
	// itself is never clamped, only the final duty output is. Saturating
	// the output for a long time should leave the integrator far outside
	// [dutyMin, dutyMax] even though Update never returns such a value.
	s := &State{}
	for i := 0; i < 10000; i++ {
		s.Update(500, 0, 180)
	}
	assert.Greater(t, s.Integrator, dutyMax)
}

func TestReset_ZeroesIntegrator(t *testing.T) {
	s := &State{}
	s.Update(500, 0, 180)
	assert.NotEqual(t, 0.0, s.Integrator)
	s.Reset()
	assert.Equal(t, 0.0, s.Integrator)
}
