// Package sim provides an in-memory capability.Actuators recorder for
// tests and `vawtctl --simulate`, recording the most recent command of
// each kind so scenario tests can assert on actuation without any real
// hardware collaborator.
package sim

import "context"

// Actuators records the last commanded duty/dump/brake state.
type Actuators struct {
	Duty         float64
	DumpActive   bool
	BrakeEngaged bool

	// FailNext, if set, makes the next call to the named method return an
	// error once (then clears itself), for exercising spec.md §7's
	// actuator-write-failure path.
	FailNext string
}

func (a *Actuators) SetConverterDuty(_ context.Context, d float64) error {
	if a.consumeFail("duty") {
		return errActuatorFail{"duty"}
	}
	a.Duty = d
	return nil
}

func (a *Actuators) SetDumpLoadActive(_ context.Context, active bool) error {
	if a.consumeFail("dump_load") {
		return errActuatorFail{"dump_load"}
	}
	a.DumpActive = active
	return nil
}

func (a *Actuators) SetBrakeEngaged(_ context.Context, engaged bool) error {
	if a.consumeFail("brake") {
		return errActuatorFail{"brake"}
	}
	a.BrakeEngaged = engaged
	return nil
}

func (a *Actuators) consumeFail(name string) bool {
	if a.FailNext == name {
		a.FailNext = ""
		return true
	}
	return false
}

type errActuatorFail struct{ actuator string }

func (e errActuatorFail) Error() string { return "simulated failure: " + e.actuator }
