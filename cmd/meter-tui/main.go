// Command meter-tui draws live level meters in the terminal.
//
// Usage:
//
//	meter-tui                                  # Swelling 997 Hz stereo tone
//	meter-tui -standard true-peak music.wav    # Meter a file at real-time pace
//	meter-tui -loop -hold 3s music.wav
//
// Nothing is played back. The file is decoded into memory and read at the
// rate its samples would reach a sound card.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	meter "github.com/tphakala/go-audio-meter"
)

const (
	stereoChannels = 2

	// Layout
	defaultBarWidth = 48
	labelWidth      = 4
	readoutWidth    = 10

	// Animation
	defaultFPS      = 30
	maxFPS          = 120
	springFrequency = 8.0
	springDamping   = 0.8

	// Tone defaults
	defaultToneHz  = 997.0
	defaultSwellHz = 0.25
	defaultHold    = 1500 * time.Millisecond
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	standard := flag.String("standard", "peak-sample", "Metering standard: peak-sample, true-peak, rms")
	hold := flag.Duration("hold", defaultHold, "Peak hold duration (0 disables)")
	block := flag.Int("block", 0, "Analysis block in samples (0 picks the default)")
	dbMin := flag.Float64("min", -48, "Bottom of the scale in dBFS")
	dbMax := flag.Float64("max", 0, "Top of the scale in dBFS")
	tick := flag.Int("tick", 6, "Tick spacing in dB")
	fps := flag.Int("fps", defaultFPS, "Redraws per second")
	loop := flag.Bool("loop", false, "Restart the file when it ends")
	tone := flag.Float64("tone", defaultToneHz, "Tone frequency in Hz when no file is given")
	swellHz := flag.Float64("swell", defaultSwellHz, "Tone level sweep rate in Hz")
	channels := flag.Int("channels", stereoChannels, "Tone channel count")
	rate := flag.Int("rate", meter.DefaultSampleRate, "Tone sample rate in Hz")
	flag.Parse()

	if *fps < 1 || *fps > maxFPS {
		return fmt.Errorf("fps must be in 1..%d", maxFPS)
	}

	std, err := meter.ParseStandard(*standard)
	if err != nil {
		return err
	}

	var src source
	if args := flag.Args(); len(args) > 0 {
		src, err = loadWAV(args[0], *loop)
		if err != nil {
			return err
		}
	} else {
		if *rate <= 0 || *tone <= 0 || *tone >= float64(*rate)/2 {
			return fmt.Errorf("tone frequency %.1f Hz must be in (0, %d)", *tone, *rate/2)
		}
		src = newToneSource(*tone, *swellHz, *rate, *channels)
	}

	config := meter.DefaultConfig()
	config.Standard = std
	config.PeakHoldDuration = *hold
	config.BufferSize = *block
	config.DBRangeMin = *dbMin
	config.DBRangeMax = *dbMax
	config.DBTickSize = *tick
	config.Channels = src.Channels()
	config.SampleRate = src.SampleRate()
	config.EnableParallel = src.Channels() > stereoChannels

	m, err := meter.New(&config)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(newModel(m, src, *fps), tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
