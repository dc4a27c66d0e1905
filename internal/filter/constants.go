package filter

import "math"

// True-peak kernel constants
const (
	// TruePeakTaps is the length of the true-peak interpolation kernel.
	TruePeakTaps = 128

	// TruePeakOffset is the fractional delay, in samples, the kernel
	// interpolates at.
	TruePeakOffset = 0.375

	// sincGain is the passband gain of the unwindowed kernel.
	sincGain = 1.0
)

// Oversampling bank constants
const (
	// DefaultOversampling is the number of interpolated points per sample.
	// With 4 phases the offsets are 1/8, 3/8, 5/8 and 7/8, so the
	// TruePeakOffset kernel is one of them.
	DefaultOversampling = 4

	minOversampling = 1
	maxOversampling = 64

	minTaps = 2
	maxTaps = 8192

	// phaseCenter places each phase in the middle of its sub-interval.
	phaseCenter = 0.5
)

const (
	// Window normalization
	windowNormalizationFactor = 2.0

	// Sinc function constants
	sincCenterTap     = 1.0
	sincPiMultiplier  = math.Pi
	sincZeroThreshold = 1e-10

	// Filter normalization
	filterGainTarget = 1.0

	// Frequency response defaults
	defaultResponsePoints = 512
)
