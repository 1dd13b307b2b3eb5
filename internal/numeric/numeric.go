// Package numeric holds the small generic helpers shared by every
// control loop component, adapted from the teacher firmware's
// constrain/mapRange pair in firmware/src/helpers.go.
package numeric

import "golang.org/x/exp/constraints"

// Clamp constrains value to [lo, hi].
func Clamp[T constraints.Float](value, lo, hi T) T {
	if value < lo {
		return lo
	}
	if value > hi {
		return hi
	}
	return value
}

// MapRange linearly remaps value from [fromMin, fromMax] to [toMin, toMax].
func MapRange[T constraints.Float](value, fromMin, fromMax, toMin, toMax T) T {
	return (value-fromMin)/(fromMax-fromMin)*(toMax-toMin) + toMin
}
