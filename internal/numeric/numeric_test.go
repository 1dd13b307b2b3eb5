package numeric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp_WithinRangeUnchanged(t *testing.T) {
	assert.Equal(t, 0.5, Clamp(0.5, 0.1, 0.9))
}

func TestClamp_BelowLowClampsToLow(t *testing.T) {
	assert.Equal(t, 0.1, Clamp(-3.0, 0.1, 0.9))
}

func TestClamp_AboveHighClampsToHigh(t *testing.T) {
	assert.Equal(t, 0.9, Clamp(5.0, 0.1, 0.9))
}

func TestMapRange_LinearRemap(t *testing.T) {
	assert.InDelta(t, 50.0, MapRange(0.5, 0.0, 1.0, 0.0, 100.0), 1e-9)
	assert.InDelta(t, 0.0, MapRange(0.0, 0.0, 1.0, 0.0, 100.0), 1e-9)
	assert.InDelta(t, 100.0, MapRange(1.0, 0.0, 1.0, 0.0, 100.0), 1e-9)
}

func TestMapRange_InvertedOutputRange(t *testing.T) {
	assert.InDelta(t, 50.0, MapRange(0.5, 0.0, 1.0, 100.0, 0.0), 1e-9)
}
