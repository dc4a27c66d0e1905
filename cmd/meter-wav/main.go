// Command meter-wav meters WAV audio files block by block.
//
// Usage:
//
//	meter-wav input.wav
//	meter-wav -standard true-peak -hold 1.5s input.wav
//	meter-wav -bars -every 10 input.wav                # Draw level bars
//	meter-wav -tone 997 -level -6 -seconds 3 tone.wav  # Write a test tone
//
// Each analysis block is one window of the negotiated buffer size. The
// summary reports the loudest reading per channel.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	meter "github.com/tphakala/go-audio-meter"
)

const (
	// Channel count constants for fast paths
	monoChannels   = 1
	stereoChannels = 2

	// Sample format constants
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	// Conversion constants
	maxInt16         = 32767.0
	maxInt24         = 8388607.0
	maxInt32         = 2147483647.0
	progressInterval = 10 // Print progress every N%
	percentScale     = 100

	// CLI defaults
	defaultBlockSize = 2048
	defaultBarWidth  = 48
	defaultToneSecs  = 2.0
	minRequiredArgs  = 1

	// WAV format constants
	wavHeaderSize      = 44 // Total WAV header size in bytes
	wavRiffHeaderSize  = 36 // RIFF header size (file size - 8 = riffHeaderSize + dataSize)
	wavPCMSubchunkSize = 16 // fmt subchunk size for PCM format
	wavFileSizeOffset  = 4  // Byte offset for file size field in header
	wavDataSizeOffset  = 40 // Byte offset for data size field in header

	// Byte sizes for PCM sample formats
	bytesPerSample16 = 2 // 16-bit PCM
	bytesPerSample24 = 3 // 24-bit PCM
	bytesPerSample32 = 4 // 32-bit PCM
	bitsPerByte      = 8 // Bits in a byte

	// Bit shift amounts for 24-bit sample encoding
	bitShift8  = 8
	bitShift16 = 16

	// I/O buffer sizes
	wavWriterBufferSize = 256 * 1024 // 256KB write buffer
	toneChunkFrames     = 4096       // Frames generated per write
	uint32Size          = 4          // Size of uint32 in bytes
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Metering flags
	standard := flag.String("standard", "peak-sample", "Metering standard: peak-sample, true-peak, rms")
	block := flag.Int("block", defaultBlockSize, "Analysis block in samples (snapped to a power of two, 256-16384)")
	dbMin := flag.Float64("min", -48, "Bottom of the scale in dBFS")
	dbMax := flag.Float64("max", 0, "Top of the scale in dBFS")
	tick := flag.Int("tick", 6, "Tick spacing in dB")
	hold := flag.Duration("hold", 0, "Peak hold duration (0 disables)")
	bars := flag.Bool("bars", false, "Draw level bars instead of numbers")
	width := flag.Int("width", defaultBarWidth, "Bar width in cells")
	every := flag.Int("every", 1, "Print every Nth block")
	fast := flag.Bool("fast", false, "Convert samples to float32 before metering")
	parallel := flag.Bool("parallel", true, "Analyze channels concurrently (faster for multichannel)")
	verbose := flag.Bool("v", false, "Verbose output")

	// Tone generation flags
	tone := flag.Float64("tone", 0, "Write a sine test tone of this frequency (Hz) to the path instead of metering")
	seconds := flag.Float64("seconds", defaultToneSecs, "Tone duration in seconds")
	level := flag.Float64("level", 0, "Tone level in dBFS (0 = full scale)")
	phase := flag.Float64("phase", meter.DefaultTestPhase, "Tone starting phase in radians")
	rate := flag.Int("rate", meter.DefaultSampleRate, "Tone sample rate in Hz")
	depth := flag.Int("depth", bitsPerSample16, "Tone bit depth: 16, 24, 32")
	channels := flag.Int("channels", monoChannels, "Tone channel count")
	flag.Parse()

	args := flag.Args()
	if len(args) < minRequiredArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] file.wav\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s music.wav                          # Sample peak per block\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -standard true-peak master.wav     # Inter-sample peaks\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -tone 997 -level -6 tone.wav       # Write a -6 dBFS test tone\n", os.Args[0])
		return errors.New("insufficient arguments")
	}
	path := args[0]

	if *tone > 0 {
		gain, err := gainForLevel(*level)
		if err != nil {
			return err
		}
		spec := toneSpec{
			freqHz:     *tone,
			phase:      *phase,
			gain:       gain,
			seconds:    *seconds,
			sampleRate: *rate,
			bitDepth:   *depth,
			channels:   *channels,
		}
		if *verbose {
			log.Printf("Tone: %.1f Hz, gain %.3f, %.2fs, %d Hz, %d-bit, %d channels",
				spec.freqHz, spec.gain, spec.seconds, spec.sampleRate, spec.bitDepth, spec.channels)
		}
		frames, err := writeToneWAV(path, spec)
		if err != nil {
			return err
		}
		fmt.Printf("Wrote %s: %d frames at %d Hz\n", filepath.Base(path), frames, spec.sampleRate)
		return nil
	}

	std, err := meter.ParseStandard(*standard)
	if err != nil {
		return err
	}

	config := meter.DefaultConfig()
	config.Standard = std
	config.BufferSize = *block
	config.DBRangeMin = *dbMin
	config.DBRangeMax = *dbMax
	config.DBTickSize = *tick
	config.PeakHoldDuration = *hold
	config.EnableParallel = *parallel

	opts := reportOptions{
		bars:  *bars,
		width: *width,
		every: max(*every, 1),
		out:   os.Stdout,
	}

	if *verbose {
		log.Printf("Input: %s", path)
		log.Printf("Standard: %s", std)
		log.Printf("Scale: %.1f to %.1f dB, ticks every %d dB", config.DBRangeMin, config.DBRangeMax, config.DBTickSize)
		if *fast {
			log.Printf("Precision: float32 (fast mode)")
		} else {
			log.Printf("Precision: float64")
		}
		if *parallel {
			log.Printf("Parallel: enabled (concurrent channel analysis)")
		} else {
			log.Printf("Parallel: disabled (sequential analysis)")
		}
	}

	start := time.Now()
	var stats *meterStats
	if *fast {
		stats, err = meterWAVFloat32(path, config, opts, *verbose)
	} else {
		stats, err = meterWAVFloat64(path, config, opts, *verbose)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	stats.print(os.Stdout, filepath.Base(path))
	if *verbose {
		log.Printf("Duration: %.2fs, Speed: %.1fx realtime",
			elapsed.Seconds(),
			float64(stats.frames)/float64(stats.sampleRate)/elapsed.Seconds())
	}

	return nil
}
