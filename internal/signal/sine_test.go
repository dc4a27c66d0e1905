package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-audio-meter/internal/testutil"
)

func TestSine_ZeroFrequencyIsSilent(t *testing.T) {
	s := Sine(0, DefaultPhase, DefaultSampleRate)
	require.Len(t, s, DefaultLength)
	for i, v := range s {
		assert.Zero(t, v, "sample %d", i)
	}
}

func TestSine_Length(t *testing.T) {
	assert.Len(t, Sine(1000, 0, 44100), DefaultLength)
	assert.Len(t, SineN(1024, 1000, 0, 44100), 1024)
	assert.Empty(t, SineN(-3, 1000, 0, 44100))
}

func TestSine_Range(t *testing.T) {
	for _, f := range []float64{100, 997, 12000, 23999} {
		testutil.AssertAllInRange(t, Sine(f, 0.3, DefaultSampleRate), -1, 1)
	}
}

func TestSine_KnownSamples(t *testing.T) {
	// Quarter-rate tone: one cycle every four samples.
	s := Sine(12000, 0, DefaultSampleRate)
	assert.InDelta(t, 0.0, s[0], testutil.DefaultTolerance)
	assert.InDelta(t, 1.0, s[1], testutil.DefaultTolerance)
	assert.InDelta(t, 0.0, s[2], testutil.DefaultTolerance)
	assert.InDelta(t, -1.0, s[3], testutil.DefaultTolerance)
}

func TestSine_Phase(t *testing.T) {
	s := Sine(1000, math.Pi/2, DefaultSampleRate)
	assert.InDelta(t, 1.0, s[0], testutil.DefaultTolerance)
}

func TestSine_DefaultSampleRate(t *testing.T) {
	assert.Equal(t, Sine(440, 0, DefaultSampleRate), Sine(440, 0, 0))
}

// TestSine_Deterministic verifies repeated calls are bit-identical.
func TestSine_Deterministic(t *testing.T) {
	a := Sine(1234.5, 0.7, 44100)
	b := Sine(1234.5, 0.7, 44100)
	for i := range a {
		assert.Equal(t, math.Float64bits(a[i]), math.Float64bits(b[i]), "sample %d", i)
	}
}

func TestScale(t *testing.T) {
	s := Scale(Sine(12000, 0, DefaultSampleRate), 0.5)
	assert.InDelta(t, 0.5, s[1], testutil.DefaultTolerance)
}
