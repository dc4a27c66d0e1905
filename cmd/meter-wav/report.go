package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	meter "github.com/tphakala/go-audio-meter"
	"github.com/tphakala/go-audio-meter/internal/render"
)

// reportOptions controls per-block output.
type reportOptions struct {
	bars  bool
	width int
	every int
	out   io.Writer
}

// blockReporter prints one line per analysed block, or a bar per channel.
type blockReporter struct {
	opts   reportOptions
	bars   *render.Bars
	blocks int
}

func newBlockReporter(config meter.Config, opts reportOptions) *blockReporter {
	r := &blockReporter{opts: opts}
	if opts.bars {
		r.bars = render.NewBars(opts.width, config.DBRangeMin, config.DBRangeMax, config.DBTickSize)
	}
	return r
}

// header prints the scale once when drawing bars.
func (r *blockReporter) header() {
	if r.opts.out == nil || r.bars == nil {
		return
	}
	fmt.Fprintf(r.opts.out, "%-12s %s\n", "", r.bars.Scale())
}

func (r *blockReporter) block(snap meter.Snapshot) {
	r.blocks++
	if r.opts.out == nil || (r.blocks-1)%r.opts.every != 0 {
		return
	}

	at := snap.Time.Sub(streamOrigin).Seconds()
	for ch, reading := range snap.Channels {
		if r.bars != nil {
			hold := -1
			if snap.Hold {
				hold = reading.HoldPercent
			}
			fmt.Fprintf(r.opts.out, "%8.3fs ch%-2d %s\n", at, ch, r.bars.Bar(float64(reading.Percent), hold))
			continue
		}
		fmt.Fprintf(r.opts.out, "%8.3fs ch%-2d %s\n", at, ch, formatReading(reading, snap.Hold))
	}
}

// formatReading renders a reading as fixed-width text.
func formatReading(r meter.Reading, hold bool) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%8s dBFS %3d%%", formatDB(r.Decibels), r.Percent)
	if hold {
		fmt.Fprintf(&sb, " hold %3d%%", r.HoldPercent)
	}
	if r.Overs > 0 {
		fmt.Fprintf(&sb, " overs %d", r.Overs)
	}
	return sb.String()
}

// formatDB prints silence as -inf instead of Go's -Inf.
func formatDB(db float64) string {
	if math.IsInf(db, -1) {
		return "-inf"
	}
	return fmt.Sprintf("%.2f", db)
}

// meterStats accumulates the file summary.
type meterStats struct {
	sampleRate int
	channels   int
	bitDepth   int
	standard   meter.Standard
	frames     int64
	blocks     int
	maxLinear  []float64
	overs      []int
}

func newMeterStats(sampleRate, channels, bitDepth int, standard meter.Standard) *meterStats {
	return &meterStats{
		sampleRate: sampleRate,
		channels:   channels,
		bitDepth:   bitDepth,
		standard:   standard,
		maxLinear:  make([]float64, channels),
		overs:      make([]int, channels),
	}
}

func (s *meterStats) add(snap meter.Snapshot) {
	s.blocks++
	for ch, r := range snap.Channels {
		if ch >= len(s.maxLinear) {
			break
		}
		s.maxLinear[ch] = math.Max(s.maxLinear[ch], r.Linear)
		s.overs[ch] += r.Overs
	}
}

func (s *meterStats) print(w io.Writer, name string) {
	fmt.Fprintf(w, "Metered %s (%s)\n", name, s.standard)
	fmt.Fprintf(w, "  %d Hz, %d channels, %d-bit\n", s.sampleRate, s.channels, s.bitDepth)
	fmt.Fprintf(w, "  %d frames in %d blocks\n", s.frames, s.blocks)
	for ch, lin := range s.maxLinear {
		line := fmt.Sprintf("  ch%d max %s dBFS (%.5f)", ch, formatDB(meter.LinearToDecibels(lin)), lin)
		if s.overs[ch] > 0 {
			line += fmt.Sprintf(", %d overs", s.overs[ch])
		}
		fmt.Fprintln(w, line)
	}
}
