package main

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/tphakala/go-audio-meter/internal/mathutil"
	"github.com/tphakala/go-audio-meter/internal/signal"
)

// toneSpec describes a generated test tone file.
type toneSpec struct {
	freqHz     float64
	phase      float64
	gain       float64
	seconds    float64
	sampleRate int
	bitDepth   int
	channels   int
}

func (s toneSpec) validate() error {
	switch {
	case s.sampleRate <= 0:
		return errors.New("sample rate must be positive")
	case s.freqHz <= 0 || s.freqHz >= float64(s.sampleRate)/2:
		return fmt.Errorf("tone frequency %.1f Hz must be in (0, %d)", s.freqHz, s.sampleRate/2)
	case s.seconds <= 0:
		return errors.New("tone duration must be positive")
	case s.channels < 1:
		return errors.New("tone needs at least one channel")
	case s.bitDepth != bitsPerSample16 && s.bitDepth != bitsPerSample24 && s.bitDepth != bitsPerSample32:
		return fmt.Errorf("unsupported bit depth %d", s.bitDepth)
	case math.IsNaN(s.gain) || s.gain < 0:
		return errors.New("gain must not be negative")
	}
	return nil
}

// gainForLevel converts a tone level in dBFS to a linear gain.
func gainForLevel(levelDB float64) (float64, error) {
	if math.IsNaN(levelDB) || levelDB > 0 {
		return 0, fmt.Errorf("tone level %.2f dBFS must be at or below 0", levelDB)
	}
	return mathutil.DecibelsToAmplitude(levelDB), nil
}

// writeToneWAV writes the same sine to every channel and returns the frame count.
func writeToneWAV(path string, spec toneSpec) (frames int, err error) {
	if err := spec.validate(); err != nil {
		return 0, err
	}

	out, err := createWAVOutput(path, spec.sampleRate, spec.bitDepth, spec.channels)
	if err != nil {
		return 0, err
	}
	// Capture close errors on the success path (the header is finalized on close)
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	total := int(spec.seconds * float64(spec.sampleRate))
	maxVal := getMaxValue(spec.bitDepth)
	channelBufs := make([][]float64, spec.channels)
	dst := make([]int, toneChunkFrames*spec.channels)

	// Generate the whole tone at once so chunk boundaries keep the phase.
	tone := signal.Scale(signal.SineN(total, spec.freqHz, spec.phase, spec.sampleRate), spec.gain)

	for start := 0; start < total; start += toneChunkFrames {
		end := min(start+toneChunkFrames, total)
		for ch := range channelBufs {
			channelBufs[ch] = tone[start:end]
		}
		n := interleaveInto(channelBufs, dst, maxVal)
		if err := out.WriteSamples(dst[:n]); err != nil {
			return 0, fmt.Errorf("failed to write audio data: %w", err)
		}
	}

	return total, nil
}

// wavOutputWriter wraps output file and fast writer.
type wavOutputWriter struct {
	file   *os.File
	writer *fastWAVWriter
}

// createWAVOutput creates output file and writer.
func createWAVOutput(path string, sampleRate, bitDepth, channels int) (*wavOutputWriter, error) {
	// Create output file
	outputFile, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	// Create fast WAV writer
	fastWriter, err := newFastWAVWriter(outputFile, sampleRate, bitDepth, channels)
	if err != nil {
		_ = outputFile.Close()
		return nil, fmt.Errorf("failed to create WAV writer: %w", err)
	}

	return &wavOutputWriter{
		file:   outputFile,
		writer: fastWriter,
	}, nil
}

// WriteSamples writes samples to the output file.
func (w *wavOutputWriter) WriteSamples(samples []int) error {
	return w.writer.WriteSamples(samples)
}

// Close closes the output writer and file.
func (w *wavOutputWriter) Close() error {
	if err := w.writer.Close(); err != nil {
		_ = w.file.Close()
		return err
	}
	return w.file.Close()
}

// interleaveInto converts per-channel float slices into a preallocated int buffer,
// clamping to full scale. Returns the number of elements written.
func interleaveInto(channels [][]float64, dst []int, maxVal float64) int {
	if len(channels) == 0 || len(channels[0]) == 0 {
		return 0
	}

	numChannels := len(channels)
	samplesPerChannel := len(channels[0])
	totalLen := samplesPerChannel * numChannels

	if len(dst) < totalLen {
		return 0 // Caller should handle this
	}

	for i := range samplesPerChannel {
		base := i * numChannels
		for ch := range numChannels {
			sample := max(-1.0, min(1.0, channels[ch][i]))
			dst[base+ch] = int(sample * maxVal)
		}
	}

	return totalLen
}

// fastWAVWriter writes PCM data directly without per-sample allocations.
type fastWAVWriter struct {
	w          *bufio.Writer
	f          *os.File
	sampleRate int
	bitDepth   int
	channels   int
	dataSize   uint32
	byteBuf    []byte // Preallocated buffer for encoding
}

// newFastWAVWriter creates a new fast WAV writer.
func newFastWAVWriter(f *os.File, sampleRate, bitDepth, channels int) (*fastWAVWriter, error) {
	w := &fastWAVWriter{
		w:          bufio.NewWriterSize(f, wavWriterBufferSize),
		f:          f,
		sampleRate: sampleRate,
		bitDepth:   bitDepth,
		channels:   channels,
		byteBuf:    make([]byte, toneChunkFrames*channels*(bitDepth/bitsPerByte)),
	}

	// Write WAV header (44 bytes) with placeholder sizes
	if err := w.writeHeader(); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *fastWAVWriter) writeHeader() error {
	byteRate := w.sampleRate * w.channels * (w.bitDepth / bitsPerByte)
	blockAlign := w.channels * (w.bitDepth / bitsPerByte)

	header := make([]byte, wavHeaderSize)

	// RIFF header
	copy(header[0:4], "RIFF")
	binary.LittleEndian.PutUint32(header[4:8], 0) // Placeholder for file size - 8
	copy(header[8:12], "WAVE")

	// fmt subchunk
	copy(header[12:16], "fmt ")
	binary.LittleEndian.PutUint32(header[16:20], wavPCMSubchunkSize)   // Subchunk1Size (16 for PCM)
	binary.LittleEndian.PutUint16(header[20:22], 1)                    // AudioFormat (1 = PCM)
	binary.LittleEndian.PutUint16(header[22:24], uint16(w.channels))   // NumChannels
	binary.LittleEndian.PutUint32(header[24:28], uint32(w.sampleRate)) // SampleRate
	binary.LittleEndian.PutUint32(header[28:32], uint32(byteRate))     // ByteRate
	binary.LittleEndian.PutUint16(header[32:34], uint16(blockAlign))   // BlockAlign
	binary.LittleEndian.PutUint16(header[34:36], uint16(w.bitDepth))   // BitsPerSample

	// data subchunk
	copy(header[36:40], "data")
	binary.LittleEndian.PutUint32(header[40:44], 0) // Placeholder for data size

	_, err := w.w.Write(header)
	return err
}

// WriteSamples encodes samples at the writer's bit depth.
func (w *fastWAVWriter) WriteSamples(samples []int) error {
	width := bytesPerSample16
	switch w.bitDepth {
	case bitsPerSample24:
		width = bytesPerSample24
	case bitsPerSample32:
		width = bytesPerSample32
	}

	needed := len(samples) * width
	if len(w.byteBuf) < needed {
		w.byteBuf = make([]byte, needed)
	}

	buf := w.byteBuf[:needed]
	for i, s := range samples {
		switch width {
		case bytesPerSample24:
			buf[i*bytesPerSample24] = byte(s)
			buf[i*bytesPerSample24+1] = byte(s >> bitShift8)
			buf[i*bytesPerSample24+2] = byte(s >> bitShift16)
		case bytesPerSample32:
			binary.LittleEndian.PutUint32(buf[i*bytesPerSample32:], uint32(int32(s)))
		default:
			binary.LittleEndian.PutUint16(buf[i*bytesPerSample16:], uint16(int16(s)))
		}
	}

	written, err := w.w.Write(buf)
	w.dataSize += uint32(written)
	return err
}

// Close flushes the buffer and updates the WAV header with final sizes.
func (w *fastWAVWriter) Close() error {
	if err := w.w.Flush(); err != nil {
		return err
	}

	// File size at offset 4: total file size - 8
	// Data size at offset 40: actual data size
	fileSize := wavRiffHeaderSize + w.dataSize

	if _, err := w.f.Seek(wavFileSizeOffset, io.SeekStart); err != nil {
		return err
	}
	sizeBytes := make([]byte, uint32Size)
	binary.LittleEndian.PutUint32(sizeBytes, fileSize)
	if _, err := w.f.Write(sizeBytes); err != nil {
		return err
	}

	if _, err := w.f.Seek(wavDataSizeOffset, io.SeekStart); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(sizeBytes, w.dataSize)
	if _, err := w.f.Write(sizeBytes); err != nil {
		return err
	}

	return nil
}
