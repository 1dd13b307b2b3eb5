package statemachine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_StartsAtIdle(t *testing.T) {
	m := New()
	assert.Equal(t, Idle, m.Current())
	assert.Equal(t, Idle, m.Previous())
	_, have := m.LastTransition()
	assert.False(t, have)
}

func TestName_KnownAndUnknownRegimes(t *testing.T) {
	assert.Equal(t, "IDLE", Idle.Name())
	assert.Equal(t, "STANDBY", Standby.Name())
	assert.Equal(t, "STARTUP", Startup.Name())
	assert.Equal(t, "MPPT", MPPT.Name())
	assert.Equal(t, "POWER_REG", PowerRegulation.Name())
	assert.Equal(t, "STALL", Stall.Name())
	assert.Equal(t, "FAULT", Fault.Name())
	assert.Equal(t, "UNKNOWN", Regime(999).Name())
}

func TestTransitionTo_RecordsTransitionAndUpdatesCurrent(t *testing.T) {
	m := New()
	m.TransitionTo(1000, Standby, "initialized")
	assert.Equal(t, Standby, m.Current())
	assert.Equal(t, Idle, m.Previous())
	tr, have := m.LastTransition()
	assert.True(t, have)
	assert.Equal(t, Idle, tr.From)
	assert.Equal(t, Standby, tr.To)
	assert.Equal(t, "initialized", tr.Reason)
	assert.Equal(t, uint64(1000), tr.TimestampMS)
}

func TestTransitionTo_SameRegimeIsNoOp(t *testing.T) {
	m := New()
	m.TransitionTo(1000, Standby, "initialized")
	m.TransitionTo(2000, Standby, "re-entry attempt")
	tr, _ := m.LastTransition()
	assert.Equal(t, uint64(1000), tr.TimestampMS, "re-entering the current regime must not re-record a transition")
	assert.Equal(t, "initialized", tr.Reason)
}

func TestTransitionTo_TruncatesOverlongReason(t *testing.T) {
	m := New()
	long := ""
	for i := 0; i < 100; i++ {
		long += "x"
	}
	m.TransitionTo(1000, Standby, long)
	tr, _ := m.LastTransition()
	assert.Len(t, tr.Reason, maxReasonLen)
}

func TestTimeInStateMS_MeasuresSinceEntry(t *testing.T) {
	m := New()
	m.TransitionTo(1000, Standby, "x")
	assert.Equal(t, uint64(500), m.TimeInStateMS(1500))
}

func TestCanExitFault_AlwaysFalse(t *testing.T) {
	m := New()
	m.TransitionTo(1000, Fault, "safety:overspeed")
	assert.False(t, m.CanExitFault())
}

func TestTransitionTo_DoesNotItselfKeepMachineInFault(t *testing.T) {
	m := New()
	m.TransitionTo(1000, Fault, "safety:overspeed")
	m.TransitionTo(2000, MPPT, "attempted escape")
	assert.Equal(t, MPPT, m.Current(), "TransitionTo performs the mechanical move regardless; enforcing Fault's terminal nature is the scheduler's job, not the machine's")
}

func TestResetFromFault_OnlyActsWhenCurrentlyInFault(t *testing.T) {
	m := New()
	m.TransitionTo(1000, Standby, "init")
	m.ResetFromFault(2000, MPPT, "external reset")
	assert.Equal(t, Standby, m.Current(), "ResetFromFault must no-op outside Fault")
}

func TestResetFromFault_MovesOutOfFault(t *testing.T) {
	m := New()
	m.TransitionTo(1000, Fault, "safety:overcurrent")
	m.ResetFromFault(5000, Standby, "operator reset")
	assert.Equal(t, Standby, m.Current())
	tr, _ := m.LastTransition()
	assert.Equal(t, Fault, tr.From)
	assert.Equal(t, "operator reset", tr.Reason)
}
