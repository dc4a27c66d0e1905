// Package level computes the per-block linear level of a channel: the
// sample peak (largest absolute sample) or the RMS.
package level

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-audio-meter/internal/simdops"
)

// SamplePeak returns the largest absolute sample value. An empty block is 0.
func SamplePeak(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return math.Max(floats.Max(samples), -floats.Min(samples))
}

// RMS returns the root mean square of the block. An empty block is 0.
func RMS[F simdops.Float](samples []F) float64 {
	if len(samples) == 0 {
		return 0
	}
	sumSquares := simdops.For[F]().DotProductUnsafe(samples, samples)
	return math.Sqrt(float64(sumSquares) / float64(len(samples)))
}
