package mppt

import "math"

// WindWindow is a fixed-size circular buffer of wind-speed samples with
// mean/population-variance queries, extracted as its own value type per
// spec.md §9 ("Circular buffer as value") instead of open-coded loops at
// every call site.
type WindWindow struct {
	buf         []float64
	writeIndex  int
	sampleCount int
}

// NewWindWindow constructs a window of the given capacity. size must be
// positive.
func NewWindWindow(size int) *WindWindow {
	if size <= 0 {
		size = 1
	}
	return &WindWindow{buf: make([]float64, size)}
}

// Push appends a sample, advancing the write index modulo the window
// size and saturating sample count at the window size.
func (w *WindWindow) Push(v float64) {
	w.buf[w.writeIndex] = v
	w.writeIndex = (w.writeIndex + 1) % len(w.buf)
	if w.sampleCount < len(w.buf) {
		w.sampleCount++
	}
}

// Len reports the capacity of the window (W).
func (w *WindWindow) Len() int { return len(w.buf) }

// Full reports whether the window has been filled at least once.
func (w *WindWindow) Full() bool { return w.sampleCount >= len(w.buf) }

// SampleCount reports the number of samples seen so far, saturating at Len().
func (w *WindWindow) SampleCount() int { return w.sampleCount }

// Mean returns the arithmetic mean of the full window (zeros included
// for unfilled slots, matching the original firmware's fixed-size
// array-of-zeros behavior before the window first fills).
func (w *WindWindow) Mean() float64 {
	var sum float64
	for _, v := range w.buf {
		sum += v
	}
	return sum / float64(len(w.buf))
}

// PopulationVariance returns the biased (divide-by-W) variance of the
// full window around Mean().
func (w *WindWindow) PopulationVariance() float64 {
	mean := w.Mean()
	var sumSq float64
	for _, v := range w.buf {
		d := v - mean
		sumSq += d * d
	}
	return sumSq / float64(len(w.buf))
}

// StdDev returns the population standard deviation.
func (w *WindWindow) StdDev() float64 {
	return math.Sqrt(w.PopulationVariance())
}

// Reset zeros the buffer and the sample count, matching MPPT.Reset.
func (w *WindWindow) Reset() {
	for i := range w.buf {
		w.buf[i] = 0
	}
	w.writeIndex = 0
	w.sampleCount = 0
}
