package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tphakala/go-audio-meter/internal/testutil"
)

const (
	// Test window parameters
	testWindowLength11 = 11
	testWindowLength21 = 21
	testWindowLength51 = 51
	testBeta5          = 5.0
	testBeta8          = 8.653728
	testBeta10         = 10.0
)

// TestKaiserWindow_Symmetry verifies that Kaiser window is symmetric.
func TestKaiserWindow_Symmetry(t *testing.T) {
	tests := []struct {
		name   string
		length int
		beta   float64
	}{
		{"length_11_beta_5", testWindowLength11, testBeta5},
		{"length_21_beta_8", testWindowLength21, testBeta8},
		{"length_51_beta_10", testWindowLength51, testBeta10},
		{"length_128_beta_5", TruePeakTaps, testBeta5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := KaiserWindow(tt.length, tt.beta)

			assert.Len(t, window, tt.length, "window length mismatch")
			testutil.AssertSymmetric(t, window, testutil.WindowTolerance)
			testutil.AssertAllInRange(t, window, 0, 1+testutil.WindowTolerance)
		})
	}
}

// TestKaiserWindow_CenterTap verifies that center tap is maximum.
func TestKaiserWindow_CenterTap(t *testing.T) {
	window := KaiserWindow(testWindowLength21, testBeta8)

	testutil.AssertCenterIsMax(t, window)

	// Center value should be close to 1.0 (I₀(β)/I₀(β) = 1)
	centerIdx := testWindowLength21 / 2
	assert.InDelta(t, 1.0, window[centerIdx], testutil.WindowTolerance,
		"center value should be ~1.0")
}

// TestKaiserWindow_BetaZeroIsRectangular verifies β = 0 leaves a kernel unchanged.
func TestKaiserWindow_BetaZeroIsRectangular(t *testing.T) {
	window := KaiserWindow(TruePeakTaps, 0)
	for i, w := range window {
		assert.Equal(t, 1.0, w, "w[%d]", i)
	}
}

// TestKaiserWindow_EdgeCases tests edge cases.
func TestKaiserWindow_EdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
	}{
		{"zero_length", 0, 0},
		{"negative_length", -1, 0},
		{"length_one", 1, 1},
		{"length_two", 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			window := KaiserWindow(tt.length, testBeta5)
			assert.Len(t, window, tt.want, "window length mismatch")
			testutil.AssertNoNaNOrInf(t, window)

			if tt.length == 1 {
				assert.InDelta(t, 1.0, window[0], testutil.WindowTolerance,
					"single tap value should be 1.0")
			}
		})
	}
}

func TestApplyWindow(t *testing.T) {
	kernel := []float64{1, 2, 3, 4}
	ApplyWindow(kernel, []float64{0.5, 1, 0})
	assert.Equal(t, []float64{0.5, 2, 0, 4}, kernel)
}

func TestNormalizeGain(t *testing.T) {
	kernel := OffsetSinc(TruePeakOffset, TruePeakTaps)
	NormalizeGain(kernel, 1.0)
	testutil.AssertDCGain(t, kernel, 1.0, testutil.DefaultTolerance)

	zero := []float64{1, -1}
	NormalizeGain(zero, 1.0)
	assert.Equal(t, []float64{1, -1}, zero, "zero-sum kernel must be left alone")
}

// TestMagnitudeDB tests linear to dB conversion.
func TestMagnitudeDB(t *testing.T) {
	tests := []struct {
		name string
		mag  float64
		want float64
	}{
		{"magnitude_1", 1.0, 0.0},
		{"magnitude_0_5", 0.5, -6.0206},
		{"magnitude_0_1", 0.1, -20.0},
		{"magnitude_0_01", 0.01, -40.0},
		{"magnitude_zero", 0.0, -200.0}, // Should clip to minimum
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MagnitudeDB(tt.mag)
			assert.InDelta(t, tt.want, got, testutil.DBTolerance,
				"MagnitudeDB(%f) = %f dB, want %f dB", tt.mag, got, tt.want)
		})
	}
}

// BenchmarkKaiserWindow benchmarks window generation.
func BenchmarkKaiserWindow(b *testing.B) {
	benchmarks := []struct {
		name   string
		length int
		beta   float64
	}{
		{"length_51", testWindowLength51, testBeta8},
		{"length_128", TruePeakTaps, testBeta8},
		{"length_201", 201, testBeta10},
	}

	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			for b.Loop() {
				_ = KaiserWindow(bm.length, bm.beta)
			}
		})
	}
}
