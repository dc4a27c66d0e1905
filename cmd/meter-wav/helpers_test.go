package main

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	meter "github.com/tphakala/go-audio-meter"
)

func TestOpenWAVInput_FileNotFound(t *testing.T) {
	_, err := openWAVInput("/nonexistent/file.wav", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open input file")
}

func TestOpenWAVInput_InvalidWAV(t *testing.T) {
	// Create a temporary file that's not a WAV
	tmpDir := t.TempDir()
	invalidFile := filepath.Join(tmpDir, "invalid.wav")
	err := os.WriteFile(invalidFile, []byte("not a wav file"), 0o644)
	require.NoError(t, err)

	_, err = openWAVInput(invalidFile, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid WAV file")
}

func TestCreateWAVOutput_InvalidDirectory(t *testing.T) {
	_, err := createWAVOutput(
		"/nonexistent/dir/output.wav",
		48000, // sample rate
		16,    // bit depth
		2,     // channels
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create output file")
}

func TestCreateWAVOutput_Success(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "test_output.wav")

	writer, err := createWAVOutput(outputPath, 48000, 16, 2)
	require.NoError(t, err)
	require.NotNil(t, writer)

	assert.NotNil(t, writer.file)
	assert.NotNil(t, writer.writer)
	require.NoError(t, writer.Close())

	// Header only
	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Equal(t, int64(wavHeaderSize), info.Size())
}

func writeTestTone(t *testing.T, spec toneSpec) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tone.wav")
	frames, err := writeToneWAV(path, spec)
	require.NoError(t, err)
	require.Equal(t, int(spec.seconds*float64(spec.sampleRate)), frames)
	return path
}

func TestWriteToneWAV_RoundTrip(t *testing.T) {
	path := writeTestTone(t, toneSpec{
		freqHz:     997,
		gain:       0.5,
		seconds:    1,
		sampleRate: 48000,
		bitDepth:   16,
		channels:   1,
	})

	input, err := openWAVInput(path, false)
	require.NoError(t, err)
	assert.Equal(t, 48000, input.rate)
	assert.Equal(t, 1, input.channels)
	assert.Equal(t, 16, input.bitDepth)
	require.NoError(t, input.Close())

	var out bytes.Buffer
	config := meter.DefaultConfig()
	stats, err := meterWAVFloat64(path, config, reportOptions{every: 1, out: &out}, false)
	require.NoError(t, err)

	assert.Equal(t, int64(48000), stats.frames)
	assert.Equal(t, 24, stats.blocks, "23 full blocks and a partial one")
	assert.InDelta(t, 0.5, stats.maxLinear[0], 1e-3)
	assert.InDelta(t, -6.02, meter.LinearToDecibels(stats.maxLinear[0]), 0.02)
	assert.Equal(t, 24, strings.Count(out.String(), "ch0"))
}

func TestMeterWAV_StereoTruePeak(t *testing.T) {
	// Every sample of a 12 kHz tone at 45 degrees sits at +-0.707.
	path := writeTestTone(t, toneSpec{
		freqHz:     12000,
		phase:      math.Pi / 4,
		gain:       1.0,
		seconds:    0.1,
		sampleRate: 48000,
		bitDepth:   24,
		channels:   2,
	})

	config := meter.DefaultConfig()

	samplePeak, err := meterWAVFloat64(path, config, reportOptions{every: 1}, false)
	require.NoError(t, err)

	config.Standard = meter.StandardTruePeak
	truePeak, err := meterWAVFloat32(path, config, reportOptions{every: 1}, false)
	require.NoError(t, err)

	for ch := range 2 {
		assert.InDelta(t, math.Sqrt2/2, samplePeak.maxLinear[ch], 1e-5, "channel %d", ch)
		assert.Greater(t, truePeak.maxLinear[ch], 0.95, "channel %d", ch)
		assert.Less(t, truePeak.maxLinear[ch], 1.06, "channel %d", ch)
	}
	assert.Equal(t, int64(4800), truePeak.frames)
}

func TestMeterWAV_Bars(t *testing.T) {
	path := writeTestTone(t, toneSpec{
		freqHz:     440,
		gain:       0.25,
		seconds:    0.5,
		sampleRate: 44100,
		bitDepth:   16,
		channels:   1,
	})

	var out bytes.Buffer
	config := meter.DefaultConfig()
	config.PeakHoldDuration = time.Second
	_, err := meterWAVFloat64(path, config, reportOptions{bars: true, width: 24, every: 4, out: &out}, false)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.NotEmpty(t, lines)
	assert.Contains(t, lines[0], "-42", "scale header")
	assert.Contains(t, out.String(), "█")
}

func TestToneSpecValidate(t *testing.T) {
	valid := toneSpec{freqHz: 1000, gain: 1, seconds: 1, sampleRate: 48000, bitDepth: 16, channels: 1}
	require.NoError(t, valid.validate())

	tests := []struct {
		name   string
		mutate func(s *toneSpec)
	}{
		{"zero frequency", func(s *toneSpec) { s.freqHz = 0 }},
		{"above nyquist", func(s *toneSpec) { s.freqHz = 24000 }},
		{"zero rate", func(s *toneSpec) { s.sampleRate = 0 }},
		{"zero duration", func(s *toneSpec) { s.seconds = 0 }},
		{"no channels", func(s *toneSpec) { s.channels = 0 }},
		{"8-bit", func(s *toneSpec) { s.bitDepth = 8 }},
		{"negative gain", func(s *toneSpec) { s.gain = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.mutate(&s)
			assert.Error(t, s.validate())
		})
	}
}

func TestGainForLevel(t *testing.T) {
	gain, err := gainForLevel(0)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, gain, 1e-12)

	gain, err = gainForLevel(-6.0206)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, gain, 1e-4)

	gain, err = gainForLevel(math.Inf(-1))
	require.NoError(t, err)
	assert.Zero(t, gain)

	_, err = gainForLevel(3)
	require.Error(t, err)
	_, err = gainForLevel(math.NaN())
	require.Error(t, err)
}

func TestInterleaveInto(t *testing.T) {
	dst := make([]int, 6)
	n := interleaveInto([][]float64{{0.5, 2, -2}, {-0.5, 0, 1}}, dst, maxInt16)
	require.Equal(t, 6, n)
	assert.Equal(t, []int{16383, -16383, 32767, 0, -32767, 32767}, dst)

	assert.Zero(t, interleaveInto(nil, dst, maxInt16))
	assert.Zero(t, interleaveInto([][]float64{{1, 1, 1, 1}, {1, 1, 1, 1}}, dst, maxInt16), "dst too small")
}

func TestDeinterleaveInto(t *testing.T) {
	tests := []struct {
		name     string
		channels int
		data     []int
		want     [][]float64
	}{
		{"mono", 1, []int{2, -4}, [][]float64{{1, -2}}},
		{"stereo", 2, []int{2, -4, 6, 8}, [][]float64{{1, 3}, {-2, 4}}},
		{"three channels", 3, []int{2, 4, 6, 8, 10, 12}, [][]float64{{1, 4}, {2, 5}, {3, 6}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := len(tt.data) / tt.channels
			bufs := make([][]float64, tt.channels)
			for ch := range bufs {
				bufs[ch] = make([]float64, frames)
			}
			deinterleaveInto(tt.data, bufs, tt.channels, frames, 0.5)
			assert.Equal(t, tt.want, bufs)
		})
	}
}

func TestGetMaxValue(t *testing.T) {
	assert.InDelta(t, maxInt16, getMaxValue(16), 0)
	assert.InDelta(t, maxInt24, getMaxValue(24), 0)
	assert.InDelta(t, maxInt32, getMaxValue(32), 0)
	assert.InDelta(t, maxInt16, getMaxValue(12), 0)
}

func TestFormatReading(t *testing.T) {
	r := meter.Reading{Decibels: -6.0206, Percent: 87, HoldPercent: 95, Overs: 2}
	assert.Equal(t, "   -6.02 dBFS  87% hold  95% overs 2", formatReading(r, true))
	assert.Equal(t, "   -6.02 dBFS  87% overs 2", formatReading(r, false))

	silent := meter.Reading{Decibels: math.Inf(-1)}
	assert.Equal(t, "    -inf dBFS   0%", formatReading(silent, false))
}

func TestStreamTime(t *testing.T) {
	assert.Equal(t, time.Second, streamTime(48000, 48000).Sub(streamOrigin))
	assert.Equal(t, 500*time.Millisecond, streamTime(22050, 44100).Sub(streamOrigin))
}

func TestProgressTracker_VerboseMode(t *testing.T) {
	tracker := newProgressTracker(1000, true)
	require.NotNil(t, tracker)

	assert.Equal(t, int64(1000), tracker.totalFrames)
	assert.True(t, tracker.verbose)
	assert.Equal(t, 0, tracker.lastProgress)

	tracker.reportIfNeeded(100) // 10%
	assert.Equal(t, 10, tracker.lastProgress)

	tracker.reportIfNeeded(150) // 15%, below next threshold
	assert.Equal(t, 10, tracker.lastProgress)

	tracker.reportIfNeeded(500) // 50%
	assert.Equal(t, 50, tracker.lastProgress)
}

func TestProgressTracker_NonVerboseMode(t *testing.T) {
	tracker := newProgressTracker(1000, false)
	tracker.reportIfNeeded(500)
	assert.Equal(t, 0, tracker.lastProgress)
}

func TestProgressTracker_ZeroSamples(t *testing.T) {
	tracker := newProgressTracker(0, true)
	tracker.reportIfNeeded(500)
	assert.Equal(t, 0, tracker.lastProgress)
}
