package meter

import (
	"sync"
	"time"
)

// PeakHold tracks the highest recent percentage of each channel.
// It is safe for concurrent use.
type PeakHold struct {
	mu       sync.Mutex
	held     []int
	since    []time.Time
	duration time.Duration
}

// NewPeakHold creates a hold tracker for channels channels. A held value is
// replaced by the current one once it is older than duration.
func NewPeakHold(channels int, duration time.Duration) *PeakHold {
	return &PeakHold{
		held:     make([]int, max(channels, 0)),
		since:    make([]time.Time, max(channels, 0)),
		duration: duration,
	}
}

// Update records percent for channel at time now and returns the held value.
// Channels outside the tracker return percent unchanged.
func (p *PeakHold) Update(channel, percent int, now time.Time) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	if channel < 0 || channel >= len(p.held) {
		return percent
	}

	// Each channel has independent hold timing.
	if p.since[channel].IsZero() || percent >= p.held[channel] || now.Sub(p.since[channel]) > p.duration {
		p.held[channel] = percent
		p.since[channel] = now
	}
	return p.held[channel]
}

// Reset clears every held value.
func (p *PeakHold) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()

	clear(p.held)
	clear(p.since)
}
