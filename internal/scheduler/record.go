package scheduler

import (
	"fmt"

	"github.com/asithakal/vawt-control-guide/internal/capability"
)

// CSVHeader is the persisted CSV header line, verbatim from spec.md §6.
const CSVHeader = "timestamp,state,wind_speed_ms,rotor_rpm,voltage_dc,current_dc,power_w,lambda,cp"

// FormatRow renders rec using the exact field widths/precisions the
// interface contract specifies (spec.md §6):
//
//	%lu,%s,%.1f,%.0f,%.2f,%.2f,%.1f,%.2f,%.3f\n
//
// This is intentionally NOT routed through encoding/csv: that package's
// quoting/escaping rules would not reproduce the bare comma-joined,
// fixed-precision row the interface contract fixes byte-for-byte.
func FormatRow(rec capability.Record) string {
	return fmt.Sprintf("%d,%s,%.1f,%.0f,%.2f,%.2f,%.1f,%.2f,%.3f\n",
		rec.TimestampMS,
		rec.RegimeTag,
		rec.WindMS,
		rec.RPM,
		rec.VoltageV,
		rec.CurrentA,
		rec.PowerW,
		rec.Lambda,
		rec.Cp,
	)
}
