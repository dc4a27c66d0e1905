package main

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	meter "github.com/tphakala/go-audio-meter"
	"github.com/tphakala/go-audio-meter/internal/render"
)

type tickMsg time.Time

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"})

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"})

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#999999", Dark: "#666666"})
)

func isQuit(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return true
	}
	return false
}

const helpText = "space pause  r reset  q quit"

// model feeds a source into a meter at real-time pace and draws one bar per channel.
type model struct {
	meter    *meter.Meter
	src      source
	bars     *render.Bars
	springs  springField
	interval time.Duration

	snap   meter.Snapshot
	last   time.Time
	frames int64
	paused bool
	done   bool
	err    error
}

func newModel(m *meter.Meter, src source, fps int) model {
	cfg := m.Config()
	springs := newSpringField(fps, springFrequencyFor(cfg.MaskTransition), springDamping)
	springs.resize(m.Channels())
	return model{
		meter:    m,
		src:      src,
		bars:     render.NewBars(defaultBarWidth, cfg.DBRangeMin, cfg.DBRangeMax, cfg.DBTickSize),
		springs:  springs,
		interval: time.Second / time.Duration(fps),
	}
}

// springFrequencyFor makes the bars settle in about one mask transition.
func springFrequencyFor(transition time.Duration) float64 {
	if transition <= 0 {
		return springFrequency
	}
	return 1 / transition.Seconds()
}

func (m model) Init() tea.Cmd {
	return tickCmd(m.interval)
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if isQuit(msg) {
			return m, tea.Quit
		}
		switch msg.String() {
		case " ":
			m.paused = !m.paused
			m.last = time.Time{}
		case "r":
			m.meter.Reset()
			m.springs.reset()
			m.snap = meter.Snapshot{}
		}
		return m, nil

	case tea.WindowSizeMsg:
		cfg := m.meter.Config()
		m.bars = render.NewBars(msg.Width-labelWidth-readoutWidth, cfg.DBRangeMin, cfg.DBRangeMax, cfg.DBTickSize)
		return m, nil

	case tickMsg:
		now := time.Time(msg)
		if !m.paused && !m.done {
			if err := m.advance(now); err != nil {
				m.err = err
				return m, tea.Quit
			}
		}
		for ch := range m.springs.pos {
			target := 0.0
			if ch < len(m.snap.Channels) {
				target = float64(m.snap.Channels[ch].Percent)
			}
			m.springs.step(ch, target)
		}
		return m, tickCmd(m.interval)
	}

	return m, nil
}

// advance reads the audio that played since the previous tick and analyses it.
func (m *model) advance(now time.Time) error {
	elapsed := m.interval
	if !m.last.IsZero() {
		elapsed = min(now.Sub(m.last), time.Second)
	}
	m.last = now

	rate := m.src.SampleRate()
	want := int(int64(elapsed) * int64(rate) / int64(time.Second))
	if want <= 0 {
		return nil
	}

	block := m.src.Read(want)
	if block == nil {
		m.done = true
		return nil
	}
	for ch, samples := range block {
		if err := m.meter.Write(ch, samples); err != nil {
			return err
		}
	}
	if len(block) > 0 {
		m.frames += int64(len(block[0]))
	}

	snap, err := m.meter.Analyze(streamTime(m.frames, rate))
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	m.snap = snap
	return nil
}

func (m model) View() string {
	var sb strings.Builder

	status := fmt.Sprintf("%s  %d Hz  %s", m.meter.Config().Standard, m.src.SampleRate(),
		formatClock(streamTime(m.frames, m.src.SampleRate()).Sub(streamOrigin)))
	switch {
	case m.done:
		status += "  ended"
	case m.paused:
		status += "  paused"
	}
	sb.WriteString("\n  " + titleStyle.Render(m.src.Name()) + "\n")
	sb.WriteString("  " + statusStyle.Render(status) + "\n\n")

	channels := m.meter.Channels()
	for ch := range channels {
		hold := -1
		readout := formatDB(0, false)
		if ch < len(m.snap.Channels) {
			r := m.snap.Channels[ch]
			if m.snap.Hold {
				hold = r.HoldPercent
			}
			readout = formatDB(r.Decibels, true)
		}
		level := max(0, min(100, m.springs.pos[ch]))
		fmt.Fprintf(&sb, "%-*s%s%*s\n", labelWidth, channelLabel(ch, channels), m.bars.Bar(level, hold), readoutWidth, readout)
	}
	fmt.Fprintf(&sb, "%*s%s\n\n", labelWidth, "", m.bars.Scale())
	sb.WriteString("  " + helpStyle.Render(helpText) + "\n")

	return sb.String()
}

// channelLabel names stereo channels L and R and numbers anything else.
func channelLabel(ch, channels int) string {
	if channels == stereoChannels {
		return [...]string{"  L", "  R"}[ch]
	}
	return fmt.Sprintf("  %d", ch+1)
}

func formatDB(db float64, valid bool) string {
	switch {
	case !valid:
		return "   -- dB"
	case db < -999:
		return " -inf dB"
	}
	return fmt.Sprintf("%5.1f dB", db)
}

func formatClock(d time.Duration) string {
	total := int(d.Seconds())
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// streamOrigin is the time of the first sample.
var streamOrigin = time.Unix(0, 0).UTC()

// streamTime converts a frame position to a point on the stream clock.
func streamTime(frames int64, sampleRate int) time.Time {
	return streamOrigin.Add(time.Duration(frames) * time.Second / time.Duration(sampleRate))
}
