package filter

import (
	"math"

	"github.com/tphakala/simd/f64"

	"github.com/tphakala/go-audio-meter/internal/mathutil"
)

// KaiserWindow generates a Kaiser window of the specified length and β parameter.
//
// The Kaiser window provides excellent control over the trade-off between
// main lobe width and sidelobe level in frequency domain. β = 0 is the
// rectangular window.
//
// The window is symmetric: w[i] = w[length-1-i]
func KaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return []float64{}
	}

	window := make([]float64, length)

	// Special case for length 1
	if length == 1 {
		window[0] = sincCenterTap
		return window
	}

	// w[n] = I₀(β * sqrt(1 - ((n - α)/α)²)) / I₀(β), α = (N-1)/2
	alpha := float64(length-1) / windowNormalizationFactor
	i0Beta := mathutil.BesselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		arg := beta * math.Sqrt(math.Max(0, 1.0-x*x))
		window[n] = mathutil.BesselI0(arg) / i0Beta
	}

	return window
}

// ApplyWindow multiplies kernel by window element-wise, in place.
func ApplyWindow(kernel, window []float64) {
	n := min(len(kernel), len(window))
	for i := range n {
		kernel[i] *= window[i]
	}
}

// NormalizeGain scales kernel in place so its coefficients sum to gain.
// Kernels whose sum is effectively zero are left untouched.
func NormalizeGain(kernel []float64, gain float64) {
	sum := f64.Sum(kernel)

	if math.Abs(sum) > sincZeroThreshold {
		f64.Scale(kernel, kernel, gain/sum)
	}
}

// MagnitudeDB converts linear magnitude to decibels, flooring at -200 dB
// so plots of stopband nulls stay finite.
func MagnitudeDB(magnitude float64) float64 {
	const minMagnitude = 1e-10 // Avoid log(0)

	if magnitude < minMagnitude {
		magnitude = minMagnitude
	}
	return mathutil.AmplitudeToDecibels(magnitude)
}
