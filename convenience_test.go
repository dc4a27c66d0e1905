package meter

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBufferSize(t *testing.T) {
	tests := []struct {
		requested, want int
	}{
		{0, 256},
		{-100, 256},
		{256, 256},
		{300, 256},
		{384, 256}, // tie keeps the smaller size
		{385, 512},
		{1000, 1024},
		{3072, 2048},
		{12000, 8192},
		{12289, 16384},
		{1 << 20, 16384},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SelectBufferSize(tt.requested), "requested %d", tt.requested)
	}
	assert.Equal(t, []int{256, 512, 1024, 2048, 4096, 8192, 16384}, BufferSizes())
}

func TestLinearToDecibels(t *testing.T) {
	assert.InDelta(t, 0.0, LinearToDecibels(1), 1e-12)
	assert.InDelta(t, -6.0206, LinearToDecibels(0.5), 1e-4)
	assert.InDelta(t, -20.0, LinearToDecibels(0.1), 1e-12)
	assert.True(t, math.IsInf(LinearToDecibels(0), -1))
	assert.True(t, math.IsInf(LinearToDecibels(-0.5), -1))
}

func TestDecibelsToPercent(t *testing.T) {
	tests := []struct {
		db   float64
		want int
	}{
		{0, 100},
		{6, 100},
		{-48, 0},
		{-60, 0},
		{-24, 50},
		{-45, 7},
		{math.Inf(-1), 0},
		{math.Inf(1), 100},
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DecibelsToPercent(tt.db, -48, 0), "db %v", tt.db)
	}
}

func TestGenerateTicksAndDots(t *testing.T) {
	assert.Equal(t, []int{-42, -36, -30, -24, -18, -12, -6, 0}, GenerateTicks(-48, 0, 6))
	assert.Equal(t, []int{100, 77, 66, 55, 44, 33, 22, 11, 0}, GenerateDots(10, 100))
	assert.Empty(t, GenerateDots(10, 0))
}

func TestGenerateTicks_NonFiniteBoundsReturn(t *testing.T) {
	bounds := [][2]float64{
		{-48, math.Inf(1)},
		{math.Inf(-1), 0},
		{math.Inf(-1), math.Inf(1)},
		{-1e18, 0},
	}
	for _, b := range bounds {
		done := make(chan []int, 1)
		go func() { done <- GenerateTicks(b[0], b[1], 6) }()

		select {
		case ticks := <-done:
			assert.Empty(t, ticks, "range [%g, %g]", b[0], b[1])
		case <-time.After(2 * time.Second):
			t.Fatalf("GenerateTicks(%g, %g, 6) did not return", b[0], b[1])
		}
	}
}

func TestEstimateTruePeak(t *testing.T) {
	assert.Zero(t, EstimateTruePeak(nil))

	tone := GenerateTestSignal(12000, math.Pi/4, DefaultSampleRate)
	peak := EstimateTruePeak(tone)
	assert.GreaterOrEqual(t, peak, math.Sqrt2/2)
	assert.InDelta(t, 1.0, peak, 0.05)
}

func TestGenerateTestSignal(t *testing.T) {
	s := GenerateTestSignal(1000, DefaultTestPhase, DefaultSampleRate)
	require.Len(t, s, 128)
	assert.InDelta(t, 0.0, s[0], 1e-15)
	assert.InDelta(t, math.Sin(2*math.Pi*1000*12/48000), s[12], 1e-12)

	// Non-positive rates fall back to the default.
	assert.Equal(t, s, GenerateTestSignal(1000, DefaultTestPhase, 0))
}

func TestNewStereoAndMultiChannel(t *testing.T) {
	m, err := NewStereo(StandardRMS)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Channels())
	assert.Equal(t, StandardRMS, m.Config().Standard)

	m, err = NewMultiChannel(6, StandardTruePeak)
	require.NoError(t, err)
	assert.Equal(t, 6, m.Channels())

	_, err = NewMultiChannel(0, StandardTruePeak)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewStereo(Standard(12))
	assert.ErrorIs(t, err, ErrUnsupportedStandard)
}

func TestInterleaving(t *testing.T) {
	left := []float64{1, 2, 3}
	right := []float64{-1, -2, -3}

	interleaved := InterleaveToStereo(left, right)
	assert.Equal(t, []float64{1, -1, 2, -2, 3, -3}, interleaved)

	l, r := DeinterleaveFromStereo(interleaved)
	assert.Equal(t, left, l)
	assert.Equal(t, right, r)

	chans := Deinterleave([]float64{1, 2, 3, 4, 5, 6, 7}, 3)
	assert.Equal(t, [][]float64{{1, 4}, {2, 5}, {3, 6}}, chans)
	assert.Nil(t, Deinterleave([]float64{1}, 0))
}
