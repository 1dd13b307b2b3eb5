// Package scheduler drives the 1 Hz control pipeline: sensors -> derived
// metrics -> safety -> state machine -> regime handler -> actuation ->
// log row, per spec.md §2 and §4.6.
package scheduler

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/asithakal/vawt-control-guide/internal/capability"
	"github.com/asithakal/vawt-control-guide/internal/config"
	"github.com/asithakal/vawt-control-guide/internal/mppt"
	"github.com/asithakal/vawt-control-guide/internal/regulate"
	"github.com/asithakal/vawt-control-guide/internal/safety"
	"github.com/asithakal/vawt-control-guide/internal/statemachine"
	"github.com/asithakal/vawt-control-guide/internal/telemetry"
)

// minOperationalRPM gates the reserved Startup->MPPT transition
// (spec.md §4.5 table). No component in this spec currently drives the
// machine into Startup; the threshold is retained so an implementation
// that does can rely on it immediately.
const minOperationalRPM = 5.0

// powerRegEnterFrac and powerRegExitFrac reproduce the 15% hysteresis
// band from spec.md §4.5/§9: >= 0.95 enters, < 0.80 exits.
const (
	powerRegEnterFrac = 0.95
	powerRegExitFrac  = 0.80
)

// Scheduler owns the one-of-each controller state the spec assigns to
// it: config, MPPT state, PI state, the state machine, and the safety
// monitor. Sensors, actuators, clock, and log sink are borrowed
// collaborators threaded in at construction.
type Scheduler struct {
	cfg *config.TurbineConfig

	sensors   capability.Sensors
	actuators capability.Actuators
	clock     capability.Clock
	sink      capability.LogSink
	log       *zap.Logger

	mppt    *mppt.State
	pi      *regulate.State
	safety  *safety.Monitor
	machine *statemachine.Machine

	lastTimestampMS uint64
	haveLastTS      bool
}

// New wires a Scheduler from its configuration and collaborators. log
// may be nil (all logging becomes a no-op).
func New(
	cfg *config.TurbineConfig,
	sensors capability.Sensors,
	actuators capability.Actuators,
	clock capability.Clock,
	sink capability.LogSink,
	log *zap.Logger,
) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scheduler{
		cfg:       cfg,
		sensors:   sensors,
		actuators: actuators,
		clock:     clock,
		sink:      sink,
		log:       log,
		mppt:      mppt.New(cfg.MPPTWindowSize),
		pi:        &regulate.State{},
		safety:    safety.New(cfg.OverspeedRPM, cfg.OvervoltageV, cfg.OvercurrentA, log),
		machine:   statemachine.New(),
	}
}

// Machine exposes the state machine for inspection by callers/tests.
func (s *Scheduler) Machine() *statemachine.Machine { return s.machine }

// Safety exposes the safety monitor for inspection by callers/tests.
func (s *Scheduler) Safety() *safety.Monitor { return s.safety }

// MPPT exposes the MPPT state for inspection by callers/tests.
func (s *Scheduler) MPPT() *mppt.State { return s.mppt }

// MarkInitialized transitions the machine from Idle to Standby,
// representing spec.md §4.5's "Idle -> Standby (on init success)" edge.
// Call this once, after external hardware/collaborator setup succeeds,
// before the first Tick.
func (s *Scheduler) MarkInitialized(nowMS uint64) {
	if s.machine.Current() == statemachine.Idle {
		s.machine.TransitionTo(nowMS, statemachine.Standby, "init_ok")
	}
}

// MarkInitFailed transitions the machine from Idle to Fault, per
// spec.md §4.5's "Idle -> Fault (on init failure)" edge.
func (s *Scheduler) MarkInitFailed(nowMS uint64, reason string) {
	if s.machine.Current() == statemachine.Idle {
		s.enterFault(nowMS, reason)
	}
}

// Reset clears the safety monitor, the MPPT state, and the PI
// integrator, and drives the machine back to Standby. This is the
// "explicit external reset" spec.md §4.5/§7 requires to leave Fault.
func (s *Scheduler) Reset(nowMS uint64) {
	s.safety.Reset()
	s.mppt.Reset()
	s.pi.Reset()
	if s.machine.Current() == statemachine.Fault {
		s.machine.ResetFromFault(nowMS, statemachine.Standby, "external_reset")
	} else {
		s.machine.TransitionTo(nowMS, statemachine.Standby, "external_reset")
	}
}

// Tick executes exactly one pass of the pipeline: acquire a Sample,
// evaluate safety, evaluate transitions (with Fault>Stall>PowerRegulation
// >MPPT>Standby priority), dispatch the active regime's handler, and
// emit a log record. It returns the Sample acquired, for callers that
// want to inspect or display it.
func (s *Scheduler) Tick(ctx context.Context) telemetry.Sample {
	now := s.clock.MonotonicMS()
	if s.haveLastTS && now < s.lastTimestampMS {
		now = s.lastTimestampMS // timestamps must be non-decreasing (spec.md §8 invariant 8)
	}
	s.lastTimestampMS = now
	s.haveLastTS = true

	sample := s.acquireSample(ctx, now)

	safe := s.safety.Check(now, sample.RotorRPM, sample.BusVoltageV, sample.BusCurrentA)
	if !safe {
		s.enterFault(now, s.safetyFailureReason())
	} else {
		before := s.machine.Current()
		s.evaluateTransitions(now, sample)
		if s.machine.Current() != before {
			tr, _ := s.machine.LastTransition()
			s.log.Info("regime transition",
				zap.String("from", tr.From.Name()),
				zap.String("to", tr.To.Name()),
				zap.String("reason", tr.Reason),
			)
		}
	}

	s.dispatch(ctx, now, sample)

	rec := capability.Record{
		TimestampMS: now,
		RegimeTag:   s.machine.Current().Name(),
		WindMS:      sample.WindSpeedMS,
		RPM:         sample.RotorRPM,
		VoltageV:    sample.BusVoltageV,
		CurrentA:    sample.BusCurrentA,
		PowerW:      sample.PowerW,
		Lambda:      sample.Lambda,
		Cp:          sample.Cp,
	}
	if err := s.sink.Write(ctx, rec); err != nil {
		// Logging is opportunistic (spec.md §4.6, §7): swallow, just note it.
		s.log.Debug("log sink write failed", zap.Error(err))
	}

	return sample
}

// Run drives Tick on the configured tick period until ctx is cancelled.
// The context is only checked between ticks, never inside a regime
// handler, matching spec.md §5's "no suspension points" inside handlers.
func (s *Scheduler) Run(ctx context.Context) {
	period := time.Duration(s.cfg.TickPeriodMS) * time.Millisecond
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

func (s *Scheduler) acquireSample(ctx context.Context, nowMS uint64) telemetry.Sample {
	wind := s.sensors.ReadWindSpeedMS(ctx)
	rpm := s.sensors.ReadRotorRPM(ctx)
	voltage := s.sensors.ReadBusVoltageV(ctx)
	// Bus current may read negative during regen; the core treats |I|
	// (spec.md §6), so both the safety check and the logged power are
	// always computed from the magnitude.
	current := math.Abs(s.sensors.ReadBusCurrentA(ctx))

	power := voltage * current
	sample := telemetry.Sample{
		TimestampMS: nowMS,
		WindSpeedMS: wind,
		RotorRPM:    rpm,
		BusVoltageV: voltage,
		BusCurrentA: current,
		PowerW:      power,
		Lambda:      telemetry.Lambda(rpm, wind, s.cfg.RotorRadiusM),
		Cp:          telemetry.Cp(power, wind, s.cfg.AirDensityKgM3, s.cfg.SweptAreaM2),
	}
	return sample
}

// evaluateTransitions applies spec.md §4.5's per-regime exit conditions.
// Safety has already been found OK by the caller; Fault is therefore not
// considered here except as the machine's current (unreachable without
// an external reset) regime.
func (s *Scheduler) evaluateTransitions(nowMS uint64, sample telemetry.Sample) {
	switch s.machine.Current() {
	case statemachine.Idle:
		// Stays in Idle until MarkInitialized/MarkInitFailed is called
		// externally; no per-tick exit condition of its own.
	case statemachine.Standby:
		if sample.WindSpeedMS > s.cfg.CutInWindMS {
			s.enterMPPT(nowMS, "wind>cut_in")
		}
	case statemachine.Startup:
		if sample.RotorRPM > minOperationalRPM {
			s.enterMPPT(nowMS, "rpm>min_operational")
		}
	case statemachine.MPPT:
		if sample.WindSpeedMS > s.cfg.StallWindMS {
			s.machine.TransitionTo(nowMS, statemachine.Stall, "wind>stall")
		} else if sample.PowerW >= powerRegEnterFrac*s.cfg.RatedPowerW {
			s.machine.TransitionTo(nowMS, statemachine.PowerRegulation, "power>=0.95*rated")
		} else if sample.WindSpeedMS < s.cfg.CutInWindMS {
			s.machine.TransitionTo(nowMS, statemachine.Standby, "wind<cut_in")
		}
	case statemachine.PowerRegulation:
		if sample.WindSpeedMS > s.cfg.StallWindMS {
			s.machine.TransitionTo(nowMS, statemachine.Stall, "wind>stall")
		} else if sample.PowerW < powerRegExitFrac*s.cfg.RatedPowerW {
			s.enterMPPT(nowMS, "power<0.80*rated")
		}
	case statemachine.Stall:
		if sample.RotorRPM < s.cfg.RatedRPM {
			s.machine.TransitionTo(nowMS, statemachine.Standby, "rpm<rated")
		}
	case statemachine.Fault:
		// Terminal: only ResetFromFault can leave.
	}
}

func (s *Scheduler) enterMPPT(nowMS uint64, reason string) {
	wasMPPT := s.machine.Current() == statemachine.MPPT
	s.machine.TransitionTo(nowMS, statemachine.MPPT, reason)
	if !wasMPPT {
		s.mppt.Reset()
	}
}

func (s *Scheduler) enterFault(nowMS uint64, reason string) {
	if s.machine.Current() == statemachine.Fault {
		return
	}
	s.machine.TransitionTo(nowMS, statemachine.Fault, reason)
	s.pi.Reset()
	s.log.Warn("entering fault", zap.String("reason", reason))
}

func (s *Scheduler) safetyFailureReason() string {
	f := s.safety.Flags()
	switch {
	case f.Overspeed:
		return "safety:overspeed"
	case f.Overvoltage:
		return "safety:overvoltage"
	case f.Overcurrent:
		return "safety:overcurrent"
	default:
		return "safety:unknown"
	}
}

// dispatch runs the active regime's per-tick action, per the table in
// spec.md §4.5. Duty-cycle output is exclusively owned by the
// scheduler; exactly one branch below writes it per tick.
func (s *Scheduler) dispatch(ctx context.Context, nowMS uint64, sample telemetry.Sample) {
	switch s.machine.Current() {
	case statemachine.Idle:
		// No actuation while awaiting init-complete.
	case statemachine.Standby:
		s.writeActuators(ctx, 0, false, false)
	case statemachine.Startup:
		s.writeActuators(ctx, 0, false, false)
	case statemachine.MPPT:
		duty := s.mppt.Update(sample.PowerW, sample.WindSpeedMS)
		s.writeActuators(ctx, duty, false, false)
	case statemachine.PowerRegulation:
		duty := s.pi.Update(s.cfg.RatedPowerW, sample.PowerW, sample.RotorRPM)
		s.writeActuators(ctx, duty, false, false)
	case statemachine.Stall:
		s.writeActuators(ctx, 1.0, true, false)
	case statemachine.Fault:
		s.setActuator(ctx, "brake", s.actuators.SetBrakeEngaged(ctx, true))
		s.setActuator(ctx, "duty", s.actuators.SetConverterDuty(ctx, 0))
	}
}

func (s *Scheduler) writeActuators(ctx context.Context, duty float64, dump, brake bool) {
	s.setActuator(ctx, "duty", s.actuators.SetConverterDuty(ctx, duty))
	s.setActuator(ctx, "dump_load", s.actuators.SetDumpLoadActive(ctx, dump))
	s.setActuator(ctx, "brake", s.actuators.SetBrakeEngaged(ctx, brake))
}

// setActuator reports an actuator write failure per spec.md §7: the
// machine is forced into (and remains in) Fault, tagged with reason
// "actuator_fail", and the failure is logged. Recovery requires external
// intervention.
func (s *Scheduler) setActuator(ctx context.Context, name string, err error) {
	if err == nil {
		return
	}
	s.log.Error("actuator write failed", zap.String("actuator", name), zap.Error(err))
	s.enterFault(s.lastTimestampMS, "actuator_fail")
}
