package buffer

import (
	"sync"
)

// Window is a fixed-capacity circular buffer that keeps the most recent
// samples of one channel. The audio side writes chunks of any size; the
// analysis tick copies out the latest Capacity samples in time order.
//
// Until Capacity samples have been written the missing history reads as
// silence, which is what an analyser node reports before it fills.
type Window struct {
	data     []float64
	capacity int
	writePos int
	mu       sync.Mutex
}

// NewWindow creates a window holding the last capacity samples.
func NewWindow(capacity int) *Window {
	if capacity < 1 {
		capacity = 1
	}

	return &Window{
		data:     make([]float64, capacity),
		capacity: capacity,
	}
}

// Write appends samples, overwriting the oldest ones once the window is full.
func (w *Window) Write(samples []float64) {
	w.mu.Lock()
	defer w.mu.Unlock()

	// Only the tail can survive a write longer than the window.
	if len(samples) > w.capacity {
		samples = samples[len(samples)-w.capacity:]
	}

	for _, sample := range samples {
		w.data[w.writePos] = sample
		w.writePos = (w.writePos + 1) % w.capacity
	}
}

// WriteFloat32 is like Write for float32 samples.
func (w *Window) WriteFloat32(samples []float32) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(samples) > w.capacity {
		samples = samples[len(samples)-w.capacity:]
	}

	for _, sample := range samples {
		w.data[w.writePos] = float64(sample)
		w.writePos = (w.writePos + 1) % w.capacity
	}
}

// Snapshot copies the window into dst, oldest sample first, and returns it.
// dst is grown when shorter than Capacity. The window is not modified.
func (w *Window) Snapshot(dst []float64) []float64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	if cap(dst) < w.capacity {
		dst = make([]float64, w.capacity)
	}
	dst = dst[:w.capacity]

	// writePos is the oldest slot once the window has wrapped; before that
	// the unwritten slots are still zero, so the same split works.
	n := copy(dst, w.data[w.writePos:])
	copy(dst[n:], w.data[:w.writePos])

	return dst
}

// Capacity returns the window length in samples.
func (w *Window) Capacity() int {
	return w.capacity
}

// Clear resets the window to silence.
func (w *Window) Clear() {
	w.mu.Lock()
	defer w.mu.Unlock()

	clear(w.data)
	w.writePos = 0
}
