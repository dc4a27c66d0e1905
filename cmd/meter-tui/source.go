package main

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/wav"

	"github.com/tphakala/go-audio-meter/internal/signal"
)

// source produces planar sample blocks at a fixed rate.
type source interface {
	// Read returns up to frames samples per channel. A nil result means the
	// source is exhausted.
	Read(frames int) [][]float64
	Channels() int
	SampleRate() int
	Name() string
}

// wavSource plays a fully decoded WAV file from memory.
type wavSource struct {
	name     string
	rate     int
	channels [][]float64
	pos      int
	loop     bool
}

// loadWAV decodes path and normalizes it to [-1, 1].
func loadWAV(path string, loop bool) (*wavSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to read audio data: %w", err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, fmt.Errorf("invalid WAV file: %s has no channels", path)
	}

	numChannels := buf.Format.NumChannels
	frames := len(buf.Data) / numChannels
	if frames == 0 {
		return nil, errors.New("WAV file has no audio")
	}

	scale := 1.0 / fullScale(int(decoder.BitDepth))
	channels := make([][]float64, numChannels)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}
	for i := range frames {
		for ch := range numChannels {
			channels[ch][i] = float64(buf.Data[i*numChannels+ch]) * scale
		}
	}

	return &wavSource{
		name:     path,
		rate:     buf.Format.SampleRate,
		channels: channels,
		loop:     loop,
	}, nil
}

// fullScale returns the largest positive sample value at bitDepth.
func fullScale(bitDepth int) float64 {
	if bitDepth < 2 || bitDepth > 32 {
		bitDepth = 16
	}
	return math.Exp2(float64(bitDepth-1)) - 1
}

func (s *wavSource) Read(frames int) [][]float64 {
	total := len(s.channels[0])
	if s.pos >= total {
		if !s.loop {
			return nil
		}
		s.pos = 0
	}

	end := min(s.pos+frames, total)
	out := make([][]float64, len(s.channels))
	for ch, data := range s.channels {
		out[ch] = data[s.pos:end]
	}
	s.pos = end
	return out
}

func (s *wavSource) Channels() int   { return len(s.channels) }
func (s *wavSource) SampleRate() int { return s.rate }
func (s *wavSource) Name() string    { return s.name }

// toneSource is an endless sine whose level swells slowly so the meter moves.
// Channel k lags channel 0 by k quarter periods of the swell.
type toneSource struct {
	freqHz   float64
	swellHz  float64
	rate     int
	channels int
	pos      int64
}

func newToneSource(freqHz, swellHz float64, rate, channels int) *toneSource {
	return &toneSource{
		freqHz:   freqHz,
		swellHz:  swellHz,
		rate:     rate,
		channels: max(channels, 1),
	}
}

func (s *toneSource) Read(frames int) [][]float64 {
	if frames <= 0 {
		return [][]float64{}
	}

	rate := float64(s.rate)
	start := float64(s.pos)
	phase := math.Mod(2*math.Pi*s.freqHz*start/rate, 2*math.Pi)
	tone := signal.SineN(frames, s.freqHz, phase, s.rate)

	out := make([][]float64, s.channels)
	for ch := range out {
		lag := float64(ch) * math.Pi / 2
		data := make([]float64, frames)
		for i, v := range tone {
			t := (start + float64(i)) / rate
			data[i] = v * swell(2*math.Pi*s.swellHz*t-lag)
		}
		out[ch] = data
	}

	s.pos += int64(frames)
	return out
}

// swell maps a phase to a gain between about -60 dB and 0 dB.
func swell(phase float64) float64 {
	return math.Pow(10, 3*(math.Sin(phase)-1)/2)
}

func (s *toneSource) Channels() int   { return s.channels }
func (s *toneSource) SampleRate() int { return s.rate }
func (s *toneSource) Name() string    { return fmt.Sprintf("%.0f Hz tone", s.freqHz) }
