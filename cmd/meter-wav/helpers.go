package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	meter "github.com/tphakala/go-audio-meter"
)

// Float constraint for generic sample conversion.
type Float interface {
	float32 | float64
}

// wavInputInfo holds validated input file information.
type wavInputInfo struct {
	file        *os.File
	decoder     *wav.Decoder
	rate        int
	channels    int
	bitDepth    int
	totalFrames int64
	format      *audio.Format
}

// openWAVInput opens and validates a WAV file, returning format information.
func openWAVInput(path string, verbose bool) (*wavInputInfo, error) {
	// Open input file
	inputFile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}

	// Create WAV decoder
	decoder := wav.NewDecoder(inputFile)
	if !decoder.IsValidFile() {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	// Read format info
	format := decoder.Format()
	inputRate := format.SampleRate
	channels := format.NumChannels
	bitDepth := int(decoder.BitDepth)

	if channels < 1 {
		_ = inputFile.Close()
		return nil, fmt.Errorf("invalid WAV file: %s has no channels", path)
	}

	if verbose {
		log.Printf("Input format: %d Hz, %d channels, %d-bit", inputRate, channels, bitDepth)
	}

	// Get total duration for progress reporting
	duration, err := decoder.Duration()
	if err != nil {
		duration = 0
	}
	totalFrames := int64(duration.Seconds() * float64(inputRate))

	return &wavInputInfo{
		file:        inputFile,
		decoder:     decoder,
		rate:        inputRate,
		channels:    channels,
		bitDepth:    bitDepth,
		totalFrames: totalFrames,
		format:      format,
	}, nil
}

// Close closes the input file.
func (w *wavInputInfo) Close() error {
	return w.file.Close()
}

// getMaxValue returns the maximum sample value for the given bit depth.
func getMaxValue(bitDepth int) float64 {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16
	case bitsPerSample24:
		return maxInt24
	case bitsPerSample32:
		return maxInt32
	default:
		return maxInt16
	}
}

// deinterleaveInto converts interleaved int samples into preallocated per-channel buffers.
// This avoids allocations in the hot loop.
func deinterleaveInto[F Float](data []int, channelBufs [][]F, numChannels, samplesPerChannel int, invMaxVal float64) {
	// Fast path for mono
	if numChannels == monoChannels {
		buf := channelBufs[0]
		for i := range samplesPerChannel {
			buf[i] = F(float64(data[i]) * invMaxVal)
		}
		return
	}

	// Fast path for stereo
	if numChannels == stereoChannels {
		buf0, buf1 := channelBufs[0], channelBufs[1]
		for i := range samplesPerChannel {
			idx := i * stereoChannels
			buf0[i] = F(float64(data[idx]) * invMaxVal)
			buf1[i] = F(float64(data[idx+1]) * invMaxVal)
		}
		return
	}

	// General case
	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			channelBufs[ch][i] = F(float64(data[base+ch]) * invMaxVal)
		}
	}
}

// writeChannels feeds one block of per-channel samples to the meter.
func writeChannels[F Float](m *meter.Meter, channelBufs [][]F, frames int) error {
	for ch, buf := range channelBufs {
		var err error
		switch b := any(buf[:frames]).(type) {
		case []float64:
			err = m.Write(ch, b)
		case []float32:
			err = m.WriteFloat32(ch, b)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// progressTracker handles progress reporting.
type progressTracker struct {
	totalFrames  int64
	lastProgress int
	verbose      bool
}

// newProgressTracker creates a new progress tracker.
func newProgressTracker(totalFrames int64, verbose bool) *progressTracker {
	return &progressTracker{
		totalFrames: totalFrames,
		verbose:     verbose,
	}
}

// reportIfNeeded reports progress if threshold crossed.
func (p *progressTracker) reportIfNeeded(currentFrames int64) {
	if !p.verbose || p.totalFrames == 0 {
		return
	}

	progress := int(float64(currentFrames) / float64(p.totalFrames) * percentScale)
	if progress >= p.lastProgress+progressInterval {
		log.Printf("Progress: %d%%", progress)
		p.lastProgress = progress
	}
}

// meterWAVFloat64 meters using float64 samples.
func meterWAVFloat64(path string, config meter.Config, opts reportOptions, verbose bool) (*meterStats, error) {
	return meterWAVGeneric[float64](path, config, opts, verbose)
}

// meterWAVFloat32 meters using float32 samples.
func meterWAVFloat32(path string, config meter.Config, opts reportOptions, verbose bool) (*meterStats, error) {
	return meterWAVGeneric[float32](path, config, opts, verbose)
}

func meterWAVGeneric[F Float](path string, config meter.Config, opts reportOptions, verbose bool) (*meterStats, error) {
	// 1. Open and validate input
	input, err := openWAVInput(path, verbose)
	if err != nil {
		return nil, err
	}
	defer func() { _ = input.Close() }()

	// 2. Create the meter for the file's layout
	config.Channels = input.channels
	config.SampleRate = input.rate
	m, err := meter.New(&config)
	if err != nil {
		return nil, err
	}
	blockFrames := m.BufferSize()

	if verbose {
		log.Printf("Block: %d samples (%.1f ms)", blockFrames,
			float64(blockFrames)/float64(input.rate)*float64(time.Second/time.Millisecond))
	}

	// 3. Preallocate buffers for reuse (reduces GC pressure)
	intBuffer := &audio.IntBuffer{
		Data:   make([]int, blockFrames*input.channels),
		Format: input.format,
	}
	channelBufs := make([][]F, input.channels)
	for ch := range channelBufs {
		channelBufs[ch] = make([]F, blockFrames)
	}
	invMaxVal := 1.0 / getMaxValue(input.bitDepth)

	// 4. Initialize tracking
	stats := newMeterStats(input.rate, input.channels, input.bitDepth, config.Standard)
	progress := newProgressTracker(input.totalFrames, verbose)
	report := newBlockReporter(config, opts)
	report.header()

	// 5. Main processing loop
	for {
		// Read chunk; n counts interleaved samples
		n, err := input.decoder.PCMBuffer(intBuffer)
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to read audio data: %w", err)
		}
		frames := n / input.channels
		if frames == 0 {
			break
		}

		deinterleaveInto(intBuffer.Data, channelBufs, input.channels, frames, invMaxVal)
		if err := writeChannels(m, channelBufs, frames); err != nil {
			return nil, err
		}
		stats.frames += int64(frames)

		// Stream time of the block's last sample
		at := streamTime(stats.frames, input.rate)
		snap, err := m.Analyze(at)
		if err != nil {
			return nil, fmt.Errorf("analysis failed at %v: %w", at.Sub(streamOrigin), err)
		}
		stats.add(snap)
		report.block(snap)

		progress.reportIfNeeded(stats.frames)
	}

	return stats, nil
}

// streamOrigin is the time of the first sample in a file.
var streamOrigin = time.Unix(0, 0).UTC()

// streamTime converts a frame position to a point on the stream clock.
func streamTime(frames int64, sampleRate int) time.Time {
	return streamOrigin.Add(time.Duration(frames) * time.Second / time.Duration(sampleRate))
}
