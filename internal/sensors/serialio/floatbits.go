package serialio

import "math"

// floatBits/floatFromBits let a float64 telemetry value be stored in an
// atomic.Uint64 for lock-free publication from the serial read loop to
// whichever goroutine calls the Sensors methods.
func floatBits(v float64) uint64     { return math.Float64bits(v) }
func floatFromBits(b uint64) float64 { return math.Float64frombits(b) }
