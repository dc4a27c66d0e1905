// Package render draws meter readings as terminal bars for the command
// line tools.
package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tphakala/go-audio-meter/internal/mathutil"
	"github.com/tphakala/go-audio-meter/internal/scale"
)

const (
	minWidth = 10

	// Zone boundaries in dBFS.
	warnDB = -18.0
	hotDB  = -6.0

	fullCell  = '█'
	holdCell  = '│'
	emptyCell = '─'
)

var (
	lowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#008800", Dark: "#3CE074"})

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#AA7700", Dark: "#F0C648"})

	hotStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#A00000", Dark: "#F26056"})

	holdStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFCD2"})

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#444444"})

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#AAAAAA"})
)

// Bars renders horizontal level bars over a fixed dB range.
type Bars struct {
	width   int
	dbMin   float64
	dbMax   float64
	tickDB  int
	warnPct float64
	hotPct  float64
}

// NewBars returns a renderer for bars width cells wide.
func NewBars(width int, dbMin, dbMax float64, tickSize int) *Bars {
	return &Bars{
		width:   max(width, minWidth),
		dbMin:   dbMin,
		dbMax:   dbMax,
		tickDB:  tickSize,
		warnPct: float64(mathutil.DecibelsToPercent(warnDB, dbMin, dbMax)),
		hotPct:  float64(mathutil.DecibelsToPercent(hotDB, dbMin, dbMax)),
	}
}

// Width returns the bar width in cells.
func (b *Bars) Width() int {
	return b.width
}

// Cells returns the raw bar runes for a fill percentage and a hold marker.
// A negative hold draws no marker.
func (b *Bars) Cells(percent float64, hold int) []rune {
	filled := cellsFor(percent, b.width)
	holdPos := -1
	if hold > 0 {
		holdPos = min(cellsFor(float64(hold), b.width)-1, b.width-1)
	}

	cells := make([]rune, b.width)
	for i := range cells {
		switch {
		case i < filled:
			cells[i] = fullCell
		case i == holdPos:
			cells[i] = holdCell
		default:
			cells[i] = emptyCell
		}
	}
	return cells
}

// Bar renders a colored bar. percent may be fractional so smoothed values
// move continuously.
func (b *Bars) Bar(percent float64, hold int) string {
	cells := b.Cells(percent, hold)

	var sb strings.Builder
	for i, c := range cells {
		sb.WriteString(b.styleFor(i, c).Render(string(c)))
	}
	return sb.String()
}

func (b *Bars) styleFor(i int, c rune) lipgloss.Style {
	switch c {
	case holdCell:
		return holdStyle
	case emptyCell:
		return emptyStyle
	}

	// Color by where the cell sits on the scale, not by the current level.
	pos := (float64(i) + 0.5) / float64(b.width) * mathutil.PercentMax
	switch {
	case pos >= b.hotPct:
		return hotStyle
	case pos >= b.warnPct:
		return warnStyle
	default:
		return lowStyle
	}
}

// Scale renders the tick labels under a bar, each ending at its tick's cell.
// Labels that would overlap the previous one are skipped.
func (b *Bars) Scale() string {
	return labelStyle.Render(string(b.scaleLine()))
}

func (b *Bars) scaleLine() []rune {
	ticks := scale.Ticks(b.dbMin, b.dbMax, b.tickDB)
	offsets := scale.TickOffsets(ticks, b.dbMin, b.dbMax)

	line := []rune(strings.Repeat(" ", b.width))
	next := 0
	for i, tick := range ticks {
		label := []rune(strconv.Itoa(tick))
		end := cellsFor(mathutil.PercentMax-offsets[i], b.width) - 1
		start := max(end-len(label)+1, 0)
		if start < next || start+len(label) > len(line) {
			continue
		}
		copy(line[start:], label)
		next = start + len(label) + 1
	}
	return line
}

// cellsFor converts a percentage to a cell count in [0, width].
func cellsFor(percent float64, width int) int {
	if math.IsNaN(percent) || percent <= 0 {
		return 0
	}
	n := int(math.Round(percent / mathutil.PercentMax * float64(width)))
	return min(n, width)
}
