// Package sim provides an in-memory, scriptable capability.Sensors/Clock
// implementation for tests and for `vawtctl --simulate`, in the same
// hand-rolled-fake spirit as the teacher firmware's mockUART
// (firmware/tests/crsf_test.go).
package sim

import "context"

// Frame is one scripted tick's worth of sensor readings.
type Frame struct {
	WindSpeedMS float64
	RotorRPM    float64
	BusVoltageV float64
	BusCurrentA float64
}

// Sensors replays a scripted sequence of Frames, one per call to each
// Read* method pair belonging to the same tick; callers are expected to
// call Advance() once per tick between reads. If the script runs out,
// the last frame repeats.
type Sensors struct {
	frames []Frame
	index  int
	nowMS  uint64
	tickMS uint64
}

// NewSensors constructs a Sensors fixture starting at tick 0 advancing
// tickMS per Advance call.
func NewSensors(frames []Frame, tickMS uint64) *Sensors {
	return &Sensors{frames: frames, tickMS: tickMS}
}

// Advance moves the fixture to the next scripted frame and advances the
// simulated monotonic clock by tickMS.
func (s *Sensors) Advance() {
	if s.index < len(s.frames)-1 {
		s.index++
	}
	s.nowMS += s.tickMS
}

func (s *Sensors) current() Frame {
	if len(s.frames) == 0 {
		return Frame{}
	}
	return s.frames[s.index]
}

func (s *Sensors) ReadWindSpeedMS(context.Context) float64 { return s.current().WindSpeedMS }
func (s *Sensors) ReadBusVoltageV(context.Context) float64 { return s.current().BusVoltageV }
func (s *Sensors) ReadBusCurrentA(context.Context) float64 { return s.current().BusCurrentA }
func (s *Sensors) ReadRotorRPM(context.Context) float64    { return s.current().RotorRPM }

// MonotonicMS satisfies capability.Clock using the fixture's own
// simulated time, so scenario tests never touch the wall clock.
func (s *Sensors) MonotonicMS() uint64 { return s.nowMS }
