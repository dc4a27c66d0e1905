// Package signal synthesizes deterministic test tones used to validate the
// level analyzers and the true-peak kernel against known ground truth.
package signal

import "math"

const (
	// DefaultLength is the number of samples produced by Sine.
	DefaultLength = 128

	// DefaultSampleRate is the sample rate assumed when none is given.
	DefaultSampleRate = 48000

	// DefaultPhase is the starting phase in radians.
	DefaultPhase = 0.0

	twoPi = 2.0 * math.Pi
)

// Sine returns DefaultLength samples of a unit-amplitude sine:
//
//	sample[i] = sin(((i*freqHz)/sampleRate)*2π + phase)
//
// A non-positive sampleRate falls back to DefaultSampleRate.
func Sine(freqHz, phase float64, sampleRate int) []float64 {
	return SineN(DefaultLength, freqHz, phase, sampleRate)
}

// SineN is like Sine with an explicit length. Negative lengths yield an
// empty slice.
func SineN(n int, freqHz, phase float64, sampleRate int) []float64 {
	if n < 0 {
		n = 0
	}
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}

	out := make([]float64, n)
	rate := float64(sampleRate)
	for i := range out {
		// Operation order is fixed so repeated runs are bit-identical to
		// reference tables generated the same way.
		out[i] = math.Sin(((float64(i)*freqHz)/rate)*twoPi + phase)
	}
	return out
}

// Scale multiplies a tone by a linear gain in place and returns it.
func Scale(samples []float64, gain float64) []float64 {
	for i := range samples {
		samples[i] *= gain
	}
	return samples
}
