// Package scale lays out the static marks drawn beside a meter bar: labeled
// decibel ticks and evenly spaced pixel dots. Both are computed once per
// configuration or layout, never per analysis tick.
package scale

import (
	"math"

	"github.com/tphakala/go-audio-meter/internal/mathutil"
)

// Ticks returns every integer decibel value in (floor(dbMin), dbMax] that is
// a multiple of tickSize, in ascending order. tickSize below 1, non-finite
// bounds, bounds beyond ±maxTickBound and ranges that would need more than
// maxTicks ticks yield no ticks.
func Ticks(dbMin, dbMax float64, tickSize int) []int {
	ticks := []int{}
	if tickSize < 1 || !inTickBounds(dbMin) || !inTickBounds(dbMax) || dbMax < dbMin {
		return ticks
	}

	size := float64(tickSize)
	first := math.Ceil((math.Floor(dbMin)+1)/size) * size
	count := math.Floor((dbMax-first)/size) + 1
	if count <= 0 || count > maxTicks {
		return ticks
	}

	ticks = make([]int, int(count))
	for k := range ticks {
		ticks[k] = int(first) + k*tickSize
	}
	return ticks
}

// inTickBounds reports whether db is finite and small enough to index ticks
// as ints.
func inTickBounds(db float64) bool {
	return !math.IsNaN(db) && math.Abs(db) <= maxTickBound
}

// TickOffsets returns each tick's distance below dbMax as a percentage of
// the range, the position a renderer places its label at.
func TickOffsets(ticks []int, dbMin, dbMax float64) []float64 {
	offsets := make([]float64, len(ticks))
	for i, tick := range ticks {
		offsets[i] = mathutil.PercentBelowMax(float64(tick), dbMin, dbMax)
	}
	return offsets
}

// Dots returns one percentage per scale dot for a track heightPx pixels
// tall, with a dot every dotSize pixels from 0 up to heightPx-dotSize.
//
// Dots are numbered from the loud end: dot k of n maps to
// floor((n-1-k)/n*100), and the first dot is always exactly 100. An
// unmeasured layout (heightPx <= 0) or dotSize below 1 yields no dots; the
// caller retries after the next layout pass.
func Dots(dotSize, heightPx int) []int {
	dots := []int{}
	if dotSize < 1 || heightPx <= dotSize {
		return dots
	}

	// Multiples of dotSize in [0, heightPx-dotSize).
	n := (heightPx-dotSize-1)/dotSize + 1

	dots = make([]int, n)
	for k := range dots {
		idx := n - 1 - k
		dots[k] = int(math.Floor(float64(idx) / float64(n) * percentScale))
	}
	dots[0] = mathutil.PercentMax

	return dots
}

const (
	percentScale = 100

	// maxTicks caps the label count of a single scale.
	maxTicks = 1 << 16

	// maxTickBound is the largest usable bound magnitude in dB.
	maxTickBound = 1 << 31
)
