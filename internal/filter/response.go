package filter

import (
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// FilterResponse holds the frequency response of a filter.
type FilterResponse struct {
	// Frequencies at which response was calculated (normalized, 0 to 0.5)
	Frequencies []float64

	// Magnitude response at each frequency (linear scale)
	Magnitude []float64

	// Phase response at each frequency (radians)
	Phase []float64
}

// ComputeFrequencyResponse evaluates a FIR kernel at numPoints evenly spaced
// frequencies in [0, 0.5) using a zero-padded real FFT.
//
// numPoints is rounded up so the transform size is a power of two at least
// twice the kernel length; non-positive values use 512 points.
func ComputeFrequencyResponse(coeffs []float64, numPoints int) FilterResponse {
	if numPoints <= 0 {
		numPoints = defaultResponsePoints
	}

	fftSize := 1
	for fftSize < int(windowNormalizationFactor)*numPoints || fftSize < int(windowNormalizationFactor)*len(coeffs) {
		fftSize <<= 1
	}
	numPoints = fftSize / int(windowNormalizationFactor)

	padded := make([]float64, fftSize)
	copy(padded, coeffs)

	fft := fourier.NewFFT(fftSize)
	spectrum := fft.Coefficients(nil, padded)

	response := FilterResponse{
		Frequencies: make([]float64, numPoints),
		Magnitude:   make([]float64, numPoints),
		Phase:       make([]float64, numPoints),
	}

	for k := range numPoints {
		response.Frequencies[k] = fft.Freq(k)
		response.Magnitude[k] = cmplx.Abs(spectrum[k])
		response.Phase[k] = cmplx.Phase(spectrum[k])
	}

	return response
}

// PassbandDeviation returns the largest |magnitude - 1| over frequencies
// up to edge (normalized, 0 to 0.5).
func (r FilterResponse) PassbandDeviation(edge float64) float64 {
	var worst float64
	for i, f := range r.Frequencies {
		if f > edge {
			break
		}
		dev := r.Magnitude[i] - filterGainTarget
		if dev < 0 {
			dev = -dev
		}
		worst = max(worst, dev)
	}
	return worst
}
