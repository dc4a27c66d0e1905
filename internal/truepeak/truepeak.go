// Package truepeak estimates the inter-sample (true) peak of a block by
// interpolating the band-limited waveform between samples with
// fractional-delay sinc kernels.
package truepeak

import (
	"math"

	"github.com/tphakala/go-audio-meter/internal/filter"
	"github.com/tphakala/go-audio-meter/internal/level"
	"github.com/tphakala/go-audio-meter/internal/simdops"
)

// fullScale is the amplitude above which an interpolated value counts as an over.
const fullScale = 1.0

// Result describes one block's peak analysis.
type Result struct {
	// SamplePeak is the largest absolute sample value.
	SamplePeak float64

	// TruePeak is the largest absolute value of the samples and every
	// interpolated point. It is never below SamplePeak.
	TruePeak float64

	// Overs counts interpolated points whose magnitude exceeds full scale.
	Overs int
}

// Estimator interpolates between samples with a fixed set of kernels.
// It holds no mutable state and is safe for concurrent use.
type Estimator struct {
	kernels [][]float64
	taps    int
}

// defaultEstimator uses the single 128-tap kernel at filter.TruePeakOffset.
var defaultEstimator = &Estimator{
	kernels: [][]float64{filter.SharedTruePeakKernel()},
	taps:    filter.TruePeakTaps,
}

// Default returns the estimator backing Estimate.
func Default() *Estimator {
	return defaultEstimator
}

// NewEstimator returns an estimator that evaluates every phase in bank.
func NewEstimator(bank *filter.Bank) *Estimator {
	kernels := make([][]float64, bank.Phases())
	for k := range kernels {
		kernels[k] = bank.Kernel(k)
	}
	return &Estimator{kernels: kernels, taps: bank.Taps()}
}

// Estimate returns the true peak of window using the default kernel.
func Estimate(window []float64) float64 {
	return defaultEstimator.Estimate(window)
}

// Estimate returns the true peak of window.
func (e *Estimator) Estimate(window []float64) float64 {
	return e.Analyze(window).TruePeak
}

// Analyze interpolates window at n+offset for every sample n and every
// kernel phase. The window is extended past both ends by mirroring it about
// its first and last samples, so the cut edges of a snapshot do not ring
// like a step would.
func (e *Estimator) Analyze(window []float64) Result {
	res := Result{SamplePeak: level.SamplePeak(window)}
	res.TruePeak = res.SamplePeak
	if len(window) == 0 {
		return res
	}

	padded := mirrorPad(window, e.taps/2)

	dot := simdops.Float64Ops().DotProductUnsafe
	for n := range window {
		// padded[n+j] is window[n+j-half], the sample kernel tap j weighs.
		segment := padded[n : n+e.taps]
		for _, kernel := range e.kernels {
			v := math.Abs(dot(segment, kernel))
			if v > res.TruePeak {
				res.TruePeak = v
			}
			if v > fullScale {
				res.Overs++
			}
		}
	}

	return res
}

// Phases returns how many interpolated points are evaluated per sample.
func (e *Estimator) Phases() int {
	return len(e.kernels)
}

// mirrorPad returns window with half samples added on each side, reflected
// about the edge samples: padded[half-k] = window[k]. Reflections that would
// run past the other end of a short window are left as silence.
func mirrorPad(window []float64, half int) []float64 {
	n := len(window)
	padded := make([]float64, n+2*half)
	copy(padded[half:], window)

	for k := 1; k <= half && k < n; k++ {
		padded[half-k] = window[k]
		padded[half+n-1+k] = window[n-1-k]
	}
	return padded
}
