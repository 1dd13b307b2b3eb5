// Package safety implements the latched threshold monitor described in
// spec.md §4.2, reimplemented from original_source's SafetyMonitor.
package safety

import "go.uber.org/zap"

// Flags holds the three latched protective flags and the timestamp of
// the last check. Flags are cleared only by Reset.
type Flags struct {
	Overspeed   bool
	Overvoltage bool
	Overcurrent bool
	LastCheckMS uint64
}

// Monitor evaluates rotor RPM, bus voltage, and bus current against
// configured thresholds every tick and latches the corresponding flag on
// a strict threshold crossing. The monitor never originates a state
// transition — it only reports; the scheduler decides what to do with a
// failed check.
type Monitor struct {
	overspeedRPM float64
	overvoltageV float64
	overcurrentA float64
	flags        Flags
	log          *zap.Logger
}

// New constructs a Monitor with the given thresholds. log may be nil, in
// which case latch events are not logged.
func New(overspeedRPM, overvoltageV, overcurrentA float64, log *zap.Logger) *Monitor {
	return &Monitor{
		overspeedRPM: overspeedRPM,
		overvoltageV: overvoltageV,
		overcurrentA: overcurrentA,
		log:          log,
	}
}

// Check evaluates the three thresholds, updates the timestamp, latches
// any newly-tripped flag, and returns ok = true only if no flag — old or
// new — is set.
func (m *Monitor) Check(timestampMS uint64, rpm, voltageV, currentA float64) bool {
	m.flags.LastCheckMS = timestampMS

	m.latch(&m.flags.Overspeed, rpm > m.overspeedRPM, "overspeed", rpm, m.overspeedRPM)
	m.latch(&m.flags.Overvoltage, voltageV > m.overvoltageV, "overvoltage", voltageV, m.overvoltageV)
	m.latch(&m.flags.Overcurrent, currentA > m.overcurrentA, "overcurrent", currentA, m.overcurrentA)

	return !(m.flags.Overspeed || m.flags.Overvoltage || m.flags.Overcurrent)
}

// latch sets *flag on a false->true edge only, logging once at that edge.
func (m *Monitor) latch(flag *bool, tripped bool, name string, value, threshold float64) {
	if tripped && !*flag {
		*flag = true
		if m.log != nil {
			m.log.Warn("safety flag latched",
				zap.String("flag", name),
				zap.Float64("value", value),
				zap.Float64("threshold", threshold),
			)
		}
	}
}

// Reset clears all three latched flags. It does not clear LastCheckMS.
func (m *Monitor) Reset() {
	m.flags.Overspeed = false
	m.flags.Overvoltage = false
	m.flags.Overcurrent = false
}

// Flags returns a copy of the current latched state.
func (m *Monitor) Flags() Flags {
	return m.flags
}

// Ok reports whether no flag is currently latched, without performing a
// new check.
func (m *Monitor) Ok() bool {
	return !(m.flags.Overspeed || m.flags.Overvoltage || m.flags.Overcurrent)
}
