// Package gpiorelay implements the reference "real" actuator adapter for
// a host Linux target: converter duty is written as an integer percent
// (0-100) to a sysfs-style file, dump load and brake are written as "0"/"1" to
// sysfs GPIO value files. The naming mirrors the capability vocabulary
// in jangala-dev-devicecode-go/types/gpiopwm.go (PWMSet/SwitchSet), but
// none of that repo's bus/HAL machinery is reused — a single-threaded
// core talks to these paths directly.
package gpiorelay

import (
	"context"
	"fmt"
	"os"
	"strconv"
)

// Actuators writes converter duty, dump load, and brake state to the
// given sysfs-style paths.
type Actuators struct {
	DutyPath  string // expects a value in [0,100] written as an integer percent
	DumpPath  string // expects "0" or "1"
	BrakePath string // expects "0" or "1"
}

func (a *Actuators) SetConverterDuty(_ context.Context, d float64) error {
	pct := int(d*100 + 0.5)
	if err := writeValue(a.DutyPath, strconv.Itoa(pct)); err != nil {
		return fmt.Errorf("gpiorelay: set converter duty: %w", err)
	}
	return nil
}

func (a *Actuators) SetDumpLoadActive(_ context.Context, active bool) error {
	if err := writeValue(a.DumpPath, boolDigit(active)); err != nil {
		return fmt.Errorf("gpiorelay: set dump load: %w", err)
	}
	return nil
}

func (a *Actuators) SetBrakeEngaged(_ context.Context, engaged bool) error {
	if err := writeValue(a.BrakePath, boolDigit(engaged)); err != nil {
		return fmt.Errorf("gpiorelay: set brake: %w", err)
	}
	return nil
}

func boolDigit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func writeValue(path, value string) error {
	if path == "" {
		return nil // unconfigured output is a no-op, not a failure
	}
	return os.WriteFile(path, []byte(value), 0o644)
}
