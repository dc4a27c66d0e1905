package meter

import (
	"github.com/tphakala/go-audio-meter/internal/buffer"
	"github.com/tphakala/go-audio-meter/internal/mathutil"
	"github.com/tphakala/go-audio-meter/internal/scale"
	"github.com/tphakala/go-audio-meter/internal/signal"
	"github.com/tphakala/go-audio-meter/internal/truepeak"
)

// Common sample rates.
const (
	// RateCD is the CD quality sample rate (Red Book standard).
	RateCD = 44100

	// RateDAT is the DAT/DVD sample rate.
	RateDAT = 48000

	// RateHiRes96 is the high-resolution 2x DAT sample rate.
	RateHiRes96 = 96000
)

// SelectBufferSize returns the supported analysis window (a power of two
// from 256 to 16384) nearest to requested. Ties resolve to the smaller size.
func SelectBufferSize(requested int) int {
	return buffer.SelectSize(requested)
}

// BufferSizes returns every supported analysis window size, ascending.
func BufferSizes() []int {
	return buffer.Sizes()
}

// LinearToDecibels converts a linear amplitude to dBFS. Zero and negative
// amplitudes return -Inf.
func LinearToDecibels(linear float64) float64 {
	return mathutil.AmplitudeToDecibels(linear)
}

// DecibelsToPercent maps db onto [rangeMin, rangeMax] as a bar height in
// [0, 100]. Values outside the range clamp; NaN reads as 0.
func DecibelsToPercent(db, rangeMin, rangeMax float64) int {
	return mathutil.DecibelsToPercent(db, rangeMin, rangeMax)
}

// GenerateTicks returns the multiples of tickSize in (floor(rangeMin), rangeMax],
// ascending.
func GenerateTicks(rangeMin, rangeMax float64, tickSize int) []int {
	return scale.Ticks(rangeMin, rangeMax, tickSize)
}

// GenerateDots returns the scale dot percentages for a track
// scaleHeightPx pixels tall. The first dot is always 100.
func GenerateDots(dotSize, scaleHeightPx int) []int {
	return scale.Dots(dotSize, scaleHeightPx)
}

// EstimateTruePeak returns the inter-sample peak of window in linear
// amplitude. It is never below the largest absolute sample.
func EstimateTruePeak(window []float64) float64 {
	return truepeak.Estimate(window)
}

// GenerateTestSignal returns 128 samples of a unit sine at freqHz starting
// at phase radians. A non-positive sampleRate uses DefaultSampleRate.
func GenerateTestSignal(freqHz, phase float64, sampleRate int) []float64 {
	if sampleRate <= 0 {
		sampleRate = DefaultSampleRate
	}
	return signal.Sine(freqHz, phase, sampleRate)
}

// NewStereo creates a stereo meter using the standard with defaults otherwise.
func NewStereo(standard Standard) (*Meter, error) {
	config := DefaultConfig()
	config.Channels = stereoChannels
	config.Standard = standard
	return New(&config)
}

// NewMultiChannel creates a meter for channels channels.
func NewMultiChannel(channels int, standard Standard) (*Meter, error) {
	config := DefaultConfig()
	config.Channels = channels
	config.Standard = standard
	return New(&config)
}

// Deinterleave splits interleaved frames into one slice per channel.
// Input format: [C0_0, C1_0, ..., C0_1, C1_1, ...]. A trailing partial
// frame is dropped.
func Deinterleave(interleaved []float64, channels int) [][]float64 {
	if channels < 1 {
		return nil
	}

	frames := len(interleaved) / channels
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = make([]float64, frames)
	}
	for i := range frames {
		for ch := range channels {
			out[ch][i] = interleaved[i*channels+ch]
		}
	}
	return out
}

// DeinterleaveFromStereo converts interleaved stereo to two mono channels.
// Input format: [L0, R0, L1, R1, L2, R2, ...]
func DeinterleaveFromStereo(interleaved []float64) (left, right []float64) {
	chans := Deinterleave(interleaved, stereoChannels)
	return chans[0], chans[1]
}

// InterleaveToStereo converts two mono channels to interleaved stereo.
// Output format: [L0, R0, L1, R1, L2, R2, ...]
func InterleaveToStereo(left, right []float64) []float64 {
	minLen := min(len(left), len(right))
	result := make([]float64, minLen*stereoChannels)
	for i := range minLen {
		result[i*stereoChannels] = left[i]
		result[i*stereoChannels+1] = right[i]
	}
	return result
}
