package filter

import (
	"errors"
	"fmt"

	"github.com/tphakala/go-audio-meter/internal/mathutil"
)

// ErrInvalidBank indicates invalid oversampling bank parameters.
var ErrInvalidBank = errors.New("invalid kernel bank parameters")

// BankParams configures an oversampling kernel bank.
type BankParams struct {
	// Oversampling is the number of interpolated points per input sample.
	Oversampling int

	// Taps is the kernel length. Must be even so the fractional offsets
	// sit between the two center taps.
	Taps int

	// Attenuation, when positive, tapers every kernel with a Kaiser window
	// designed for this stopband attenuation in dB. Zero keeps the plain
	// truncated sinc.
	Attenuation float64

	// Normalize rescales every kernel to unity DC gain.
	Normalize bool
}

// DefaultBankParams returns a 4x bank of plain 128-tap kernels. Its second
// phase is bit-identical to TruePeakKernel.
func DefaultBankParams() BankParams {
	return BankParams{
		Oversampling: DefaultOversampling,
		Taps:         TruePeakTaps,
	}
}

// Validate checks if bank parameters are valid.
func (p *BankParams) Validate() error {
	if p.Oversampling < minOversampling || p.Oversampling > maxOversampling {
		return fmt.Errorf("%w: oversampling %d outside [%d, %d]", ErrInvalidBank, p.Oversampling, minOversampling, maxOversampling)
	}

	if p.Taps < minTaps || p.Taps > maxTaps {
		return fmt.Errorf("%w: %d taps outside [%d, %d]", ErrInvalidBank, p.Taps, minTaps, maxTaps)
	}

	if p.Taps%2 != 0 {
		return fmt.Errorf("%w: tap count %d must be even", ErrInvalidBank, p.Taps)
	}

	if p.Attenuation < 0 {
		return fmt.Errorf("%w: attenuation %f dB must not be negative", ErrInvalidBank, p.Attenuation)
	}

	return nil
}

// Bank is a set of fractional-delay kernels, one per oversampling phase.
// It is immutable after construction and safe for concurrent readers.
type Bank struct {
	offsets []float64
	kernels [][]float64
	taps    int
}

// NewBank designs one kernel per phase at offsets (k+0.5)/Oversampling.
func NewBank(params BankParams) (*Bank, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	var window []float64
	if params.Attenuation > 0 {
		if beta := mathutil.KaiserBeta(params.Attenuation); beta > 0 {
			window = KaiserWindow(params.Taps, beta)
		}
	}

	b := &Bank{
		offsets: make([]float64, params.Oversampling),
		kernels: make([][]float64, params.Oversampling),
		taps:    params.Taps,
	}

	for k := range params.Oversampling {
		offset := (float64(k) + phaseCenter) / float64(params.Oversampling)
		kernel := OffsetSinc(offset, params.Taps)
		if window != nil {
			ApplyWindow(kernel, window)
		}
		if params.Normalize {
			NormalizeGain(kernel, filterGainTarget)
		}
		b.offsets[k] = offset
		b.kernels[k] = kernel
	}

	return b, nil
}

// Phases returns the number of kernels in the bank.
func (b *Bank) Phases() int {
	return len(b.kernels)
}

// Taps returns the kernel length.
func (b *Bank) Taps() int {
	return b.taps
}

// Offset returns the fractional delay of phase k.
func (b *Bank) Offset(k int) float64 {
	return b.offsets[k]
}

// Kernel returns phase k's coefficients. The slice is shared; do not modify it.
func (b *Bank) Kernel(k int) []float64 {
	return b.kernels[k]
}
