package filter

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-meter/internal/testutil"
)

func TestBankParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  BankParams
		wantErr bool
	}{
		{"default", DefaultBankParams(), false},
		{"kaiser", BankParams{Oversampling: 8, Taps: 64, Attenuation: 80}, false},
		{"zero_oversampling", BankParams{Oversampling: 0, Taps: 128}, true},
		{"too_much_oversampling", BankParams{Oversampling: 65, Taps: 128}, true},
		{"odd_taps", BankParams{Oversampling: 4, Taps: 127}, true},
		{"too_few_taps", BankParams{Oversampling: 4, Taps: 0}, true},
		{"negative_attenuation", BankParams{Oversampling: 4, Taps: 128, Attenuation: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidBank))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNewBank_DefaultOffsets(t *testing.T) {
	bank, err := NewBank(DefaultBankParams())
	require.NoError(t, err)

	require.Equal(t, DefaultOversampling, bank.Phases())
	assert.Equal(t, TruePeakTaps, bank.Taps())
	assert.Equal(t, []float64{0.125, 0.375, 0.625, 0.875},
		[]float64{bank.Offset(0), bank.Offset(1), bank.Offset(2), bank.Offset(3)})
}

// TestNewBank_ContainsTruePeakKernel verifies the default bank reuses the canonical kernel exactly.
func TestNewBank_ContainsTruePeakKernel(t *testing.T) {
	bank, err := NewBank(DefaultBankParams())
	require.NoError(t, err)

	want := TruePeakKernel()
	got := bank.Kernel(1)
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, math.Float64bits(want[i]), math.Float64bits(got[i]), "tap %d", i)
	}
}

func TestNewBank_Normalized(t *testing.T) {
	bank, err := NewBank(BankParams{Oversampling: 4, Taps: 48, Attenuation: 60, Normalize: true})
	require.NoError(t, err)

	for k := range bank.Phases() {
		testutil.AssertDCGain(t, bank.Kernel(k), 1.0, 1e-9)
		testutil.AssertNoNaNOrInf(t, bank.Kernel(k))
	}
}

func TestNewBank_Invalid(t *testing.T) {
	_, err := NewBank(BankParams{Oversampling: 4, Taps: 3})
	require.ErrorIs(t, err, ErrInvalidBank)
}
