package meter

import (
	"fmt"
	"sync"
	"time"

	"github.com/tphakala/go-audio-meter/internal/level"
	"github.com/tphakala/go-audio-meter/internal/mathutil"
)

// Analyze measures the current window of every channel and returns the
// snapshot for time now. Windows that have not filled yet are measured
// with their missing history as silence.
func (m *Meter) Analyze(now time.Time) (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for ch, w := range m.windows {
		m.scratch[ch] = w.Snapshot(m.scratch[ch])
	}

	return m.analyze(now, m.scratch)
}

// AnalyzeBuffers measures explicit per-channel buffers instead of the
// internal windows. Buffers may have any length, including zero.
func (m *Meter) AnalyzeBuffers(now time.Time, buffers [][]float64) (Snapshot, error) {
	if len(buffers) != len(m.windows) {
		return Snapshot{}, fmt.Errorf("%w: expected %d channels, got %d", ErrChannelOutOfRange, len(m.windows), len(buffers))
	}
	return m.analyze(now, buffers)
}

func (m *Meter) analyze(now time.Time, buffers [][]float64) (Snapshot, error) {
	if !m.config.Standard.Valid() {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrUnsupportedStandard, m.config.Standard)
	}

	readings := make([]Reading, len(buffers))

	// Sequential processing (default or when parallel disabled)
	if !m.config.EnableParallel || len(buffers) <= 1 {
		for ch := range buffers {
			readings[ch] = m.measure(buffers[ch])
		}
	} else {
		var wg sync.WaitGroup
		for ch := range buffers {
			wg.Add(1)
			go func(channel int) {
				defer wg.Done()
				readings[channel] = m.measure(buffers[channel])
			}(ch)
		}
		wg.Wait()
	}

	snap := Snapshot{
		Time:     now,
		Standard: m.config.Standard,
		Channels: readings,
		Hold:     m.hold != nil,
	}

	if m.hold != nil {
		for ch := range readings {
			readings[ch].HoldPercent = m.hold.Update(ch, readings[ch].Percent, now)
		}
	}

	return snap, nil
}

// measure reduces one channel buffer to a reading.
func (m *Meter) measure(samples []float64) Reading {
	var r Reading

	switch m.config.Standard {
	case StandardTruePeak:
		res := m.estimator.Analyze(samples)
		r.Linear = res.TruePeak
		r.Overs = res.Overs
	case StandardRMS:
		r.Linear = level.RMS(samples)
	default:
		r.Linear = level.SamplePeak(samples)
	}

	r.Decibels = mathutil.AmplitudeToDecibels(r.Linear)
	r.Percent = mathutil.DecibelsToPercent(r.Decibels, m.config.DBRangeMin, m.config.DBRangeMax)

	return r
}
