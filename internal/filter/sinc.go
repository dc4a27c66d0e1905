// Package filter designs the fractional-delay sinc kernels used for
// inter-sample (true) peak estimation.
package filter

import (
	"math"
)

// truePeakKernel is computed once at init and only ever read afterwards.
var truePeakKernel = OffsetSinc(TruePeakOffset, TruePeakTaps)

// OffsetSinc returns a taps-long sinc kernel delayed by offset samples:
//
//	h[j] = sin(π(x-offset)) / (π(x-offset)),  x = j - taps/2
//
// so x runs from -taps/2 to taps/2-1. Convolving h with samples s[n-taps/2 :
// n+taps/2] estimates the band-limited waveform at time n+offset.
//
// A fractional offset never lands on x-offset == 0; integer offsets take the
// sinc limit of 1 at that tap.
func OffsetSinc(offset float64, taps int) []float64 {
	if taps < 1 {
		return []float64{}
	}

	kernel := make([]float64, taps)
	half := taps / 2
	for j := range kernel {
		d := float64(j-half) - offset
		if math.Abs(d) < sincZeroThreshold {
			kernel[j] = sincCenterTap
			continue
		}
		kernel[j] = sincGain * math.Sin(sincPiMultiplier*d) / (sincPiMultiplier * d)
	}
	return kernel
}

// TruePeakKernel returns a copy of the 128-tap kernel at TruePeakOffset.
func TruePeakKernel() []float64 {
	out := make([]float64, len(truePeakKernel))
	copy(out, truePeakKernel)
	return out
}

// TruePeakCenter is the index of the kernel tap nearest the interpolation
// point: tap TruePeakTaps/2 multiplies the sample just before it.
const TruePeakCenter = TruePeakTaps / 2

// SharedTruePeakKernel returns the package kernel itself without copying.
// Callers must treat it as read-only.
func SharedTruePeakKernel() []float64 {
	return truePeakKernel
}
