// Package capability declares the narrow, borrowed collaborators the
// control core reads from and writes to every tick. None of these
// interfaces is implemented in this package; concrete adapters live under
// internal/sensors and internal/actuators, and tests drive fakes that
// satisfy the same contracts.
package capability

import "context"

// Sensors is the read-only probe bank the scheduler samples once per
// tick. Every method returns a best-effort, finite value, non-negative
// except ReadBusCurrentA, which may be negative during regen (the
// scheduler uses its magnitude); "unavailable" is signalled by
// substituting zero rather than returning an error, per the core's
// sensor-unavailable error policy.
type Sensors interface {
	ReadWindSpeedMS(ctx context.Context) float64
	ReadBusVoltageV(ctx context.Context) float64
	ReadBusCurrentA(ctx context.Context) float64
	ReadRotorRPM(ctx context.Context) float64
}

// Actuators is the write-only command surface the scheduler drives once
// per tick. Standby, Startup, MPPT, PowerRegulation and Stall write all
// three in the order duty, dump load, brake; Fault writes brake, then
// duty, and leaves the dump load as it was; Idle writes nothing.
type Actuators interface {
	// SetConverterDuty commands the boost/rectifier duty cycle, d in [0,1].
	SetConverterDuty(ctx context.Context, d float64) error
	// SetDumpLoadActive engages or releases the resistive dump load. The
	// scheduler pairs a true call with SetConverterDuty(1.0) and
	// SetBrakeEngaged(false) in the same tick (spec.md §4.5's Stall
	// regime: "dump load 100%, brake released"); this method by itself
	// only toggles the dump load relay.
	SetDumpLoadActive(ctx context.Context, active bool) error
	// SetBrakeEngaged engages or releases the mechanical brake. The
	// scheduler pairs a true call with SetConverterDuty(0) in the same
	// tick (Fault regime); this method by itself only toggles the brake.
	SetBrakeEngaged(ctx context.Context, engaged bool) error
}

// Clock is the monotonic millisecond time source used to stamp samples
// and transitions.
type Clock interface {
	MonotonicMS() uint64
}

// Record is the canonical per-tick log row, matching the persisted CSV
// contract verbatim (field order and precision are part of the
// interface, see internal/scheduler.FormatRow).
type Record struct {
	TimestampMS uint64
	RegimeTag   string
	WindMS      float64
	RPM         float64
	VoltageV    float64
	CurrentA    float64
	PowerW      float64
	Lambda      float64
	Cp          float64
}

// LogSink accepts Records. A sink is free to batch, drop, or persist;
// the core never inspects the error it returns beyond deciding whether to
// log it — a sink failure never halts the control loop.
type LogSink interface {
	Write(ctx context.Context, rec Record) error
}
