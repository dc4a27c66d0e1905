package meter

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/tphakala/go-audio-meter/internal/buffer"
	"github.com/tphakala/go-audio-meter/internal/scale"
	"github.com/tphakala/go-audio-meter/internal/truepeak"
)

// Standard selects how a block of samples is reduced to one linear level.
type Standard int

const (
	// StandardPeakSample reports the largest absolute sample value.
	StandardPeakSample Standard = iota

	// StandardTruePeak reports the largest absolute value of the band-limited
	// waveform, including the points between samples.
	StandardTruePeak

	// StandardRMS reports the root mean square of the block.
	StandardRMS
)

var standardNames = map[Standard]string{
	StandardPeakSample: "peak-sample",
	StandardTruePeak:   "true-peak",
	StandardRMS:        "rms",
}

// String returns the configuration name of the standard.
func (s Standard) String() string {
	if name, ok := standardNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Standard(%d)", int(s))
}

// Valid reports whether s is one of the defined standards.
func (s Standard) Valid() bool {
	_, ok := standardNames[s]
	return ok
}

// ParseStandard parses "peak-sample", "true-peak" or "rms" (case-insensitive).
func ParseStandard(name string) (Standard, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for s, n := range standardNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedStandard, name)
}

// Orientation is the direction the bar grows in. It only affects renderers.
type Orientation int

const (
	OrientationVertical Orientation = iota
	OrientationHorizontal
)

func (o Orientation) String() string {
	if o == OrientationHorizontal {
		return "horizontal"
	}
	return "vertical"
}

// Config holds meter configuration.
type Config struct {
	// DBRangeMin is the quietest level on the scale, in dB. Anything at or
	// below it reads as 0 percent.
	DBRangeMin float64

	// DBRangeMax is the loudest level on the scale, in dB. Must be greater
	// than DBRangeMin.
	DBRangeMax float64

	// DBTickSize is the spacing of labeled ticks in dB.
	DBTickSize int

	// DBDotSize is the spacing of scale dots in pixels.
	DBDotSize int

	// Standard selects the level measurement.
	Standard Standard

	// PeakHoldDuration keeps the highest recent reading for this long.
	// Zero disables peak hold.
	PeakHoldDuration time.Duration

	// Channels is the number of audio channels metered.
	Channels int

	// SampleRate is the input sample rate in Hz.
	SampleRate int

	// BufferSize is the requested analysis window in samples. It is snapped
	// to the nearest supported power of two (see SelectBufferSize).
	// Zero uses the default.
	BufferSize int

	// EnableParallel analyzes channels concurrently.
	// Has no effect on mono meters.
	EnableParallel bool

	// Presentation settings. The analysis never reads them; they travel
	// with the configuration so a renderer has a single source.
	Orientation     Orientation
	Height          int
	BorderSize      int
	FontSize        int
	BackgroundColor string
	TickColor       string
	LabelColor      string
	Gradient        []string
	MaskTransition  time.Duration
}

// DefaultConfig returns a mono peak-sample meter over [-48, 0] dB.
func DefaultConfig() Config {
	return Config{
		DBRangeMin:      defaultDBRangeMin,
		DBRangeMax:      defaultDBRangeMax,
		DBTickSize:      defaultDBTickSize,
		DBDotSize:       defaultDBDotSize,
		Standard:        StandardPeakSample,
		Channels:        1,
		SampleRate:      DefaultSampleRate,
		BufferSize:      defaultBufferSize,
		Orientation:     OrientationVertical,
		Height:          defaultHeight,
		BorderSize:      defaultBorderSize,
		FontSize:        defaultFontSize,
		BackgroundColor: defaultBackground,
		TickColor:       defaultTickColor,
		LabelColor:      defaultLabelColor,
		Gradient:        append([]string(nil), defaultGradient...),
		MaskTransition:  defaultMaskTransition,
	}
}

// Common errors returned by the meter.
var (
	// ErrInvalidConfig indicates invalid configuration parameters.
	ErrInvalidConfig = errors.New("invalid meter configuration")

	// ErrUnsupportedStandard indicates an unknown level standard.
	ErrUnsupportedStandard = errors.New("unsupported metering standard")

	// ErrChannelOutOfRange indicates a channel index or count that does not
	// match the meter.
	ErrChannelOutOfRange = errors.New("channel out of range")
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if math.IsNaN(c.DBRangeMin) || math.IsInf(c.DBRangeMin, 0) ||
		math.IsNaN(c.DBRangeMax) || math.IsInf(c.DBRangeMax, 0) {
		return fmt.Errorf("%w: dB range must be finite", ErrInvalidConfig)
	}

	if c.DBRangeMin >= c.DBRangeMax {
		return fmt.Errorf("%w: dB range min (%v) must be below max (%v)", ErrInvalidConfig, c.DBRangeMin, c.DBRangeMax)
	}

	if c.DBTickSize < 1 {
		return fmt.Errorf("%w: tick size must be at least 1 dB", ErrInvalidConfig)
	}

	if c.DBDotSize < 1 {
		return fmt.Errorf("%w: dot size must be at least 1 px", ErrInvalidConfig)
	}

	if !c.Standard.Valid() {
		return fmt.Errorf("%w: %v", ErrUnsupportedStandard, c.Standard)
	}

	if c.PeakHoldDuration < 0 {
		return fmt.Errorf("%w: peak hold duration must not be negative", ErrInvalidConfig)
	}

	if c.Channels < 1 {
		return fmt.Errorf("%w: channels must be at least 1", ErrInvalidConfig)
	}

	if c.Channels > maxChannels {
		return fmt.Errorf("%w: too many channels (max %d)", ErrInvalidConfig, maxChannels)
	}

	if c.SampleRate <= 0 || c.SampleRate > maxSampleRate {
		return fmt.Errorf("%w: sample rate must be in (0, %d]", ErrInvalidConfig, maxSampleRate)
	}

	if c.BufferSize < 0 {
		return fmt.Errorf("%w: buffer size must not be negative", ErrInvalidConfig)
	}

	return nil
}

// Reading is one channel's level at one analysis tick.
type Reading struct {
	// Linear is the measured level in linear amplitude.
	Linear float64

	// Decibels is Linear in dBFS; -Inf for silence.
	Decibels float64

	// Percent is the bar height in [0, 100].
	Percent int

	// HoldPercent is the held peak in [0, 100]. Only meaningful when the
	// snapshot has Hold set.
	HoldPercent int

	// Overs counts interpolated points above full scale (true-peak only).
	Overs int
}

// Snapshot is the render-ready result of one analysis tick.
type Snapshot struct {
	Time     time.Time
	Standard Standard

	// Hold is true when peak hold is enabled.
	Hold bool

	// Channels holds one reading per channel in channel order.
	Channels []Reading
}

// Meter turns live sample buffers into level snapshots.
//
// Write may be called from the audio side while Analyze runs on the
// rendering cadence; both are safe for concurrent use.
type Meter struct {
	config     Config
	bufferSize int
	windows    []*buffer.Window
	hold       *PeakHold
	estimator  *truepeak.Estimator
	ticks      []int

	// Analysis scratch, one window per channel.
	mu      sync.Mutex
	scratch [][]float64
}

// New creates a meter with the specified configuration.
func New(config *Config) (*Meter, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	requested := config.BufferSize
	if requested == 0 {
		requested = defaultBufferSize
	}
	size := SelectBufferSize(requested)

	m := &Meter{
		config:     *config,
		bufferSize: size,
		windows:    make([]*buffer.Window, config.Channels),
		scratch:    make([][]float64, config.Channels),
		estimator:  truepeak.Default(),
		ticks:      scale.Ticks(config.DBRangeMin, config.DBRangeMax, config.DBTickSize),
	}
	m.config.Gradient = append([]string(nil), config.Gradient...)

	for ch := range m.windows {
		m.windows[ch] = buffer.NewWindow(size)
		m.scratch[ch] = make([]float64, size)
	}

	if config.PeakHoldDuration > 0 {
		m.hold = NewPeakHold(config.Channels, config.PeakHoldDuration)
	}

	return m, nil
}

// Config returns a copy of the meter's configuration.
func (m *Meter) Config() Config {
	c := m.config
	c.Gradient = append([]string(nil), m.config.Gradient...)
	return c
}

// BufferSize returns the negotiated analysis window in samples.
func (m *Meter) BufferSize() int {
	return m.bufferSize
}

// Channels returns the number of metered channels.
func (m *Meter) Channels() int {
	return len(m.windows)
}

// Ticks returns the labeled dB ticks for the configured range.
func (m *Meter) Ticks() []int {
	return append([]int(nil), m.ticks...)
}

// TickOffsets returns where each tick's label sits, as a percentage of the
// scale measured down from the loud end.
func (m *Meter) TickOffsets() []float64 {
	return scale.TickOffsets(m.ticks, m.config.DBRangeMin, m.config.DBRangeMax)
}

// Dots returns the scale dots for a track heightPx pixels tall. It returns
// an empty slice until the renderer has measured a positive height.
func (m *Meter) Dots(heightPx int) []int {
	return scale.Dots(m.config.DBDotSize, heightPx)
}

// Write appends samples to one channel's analysis window.
func (m *Meter) Write(channel int, samples []float64) error {
	if channel < 0 || channel >= len(m.windows) {
		return fmt.Errorf("%w: channel %d of %d", ErrChannelOutOfRange, channel, len(m.windows))
	}
	m.windows[channel].Write(samples)
	return nil
}

// WriteFloat32 is like Write for float32 samples.
func (m *Meter) WriteFloat32(channel int, samples []float32) error {
	if channel < 0 || channel >= len(m.windows) {
		return fmt.Errorf("%w: channel %d of %d", ErrChannelOutOfRange, channel, len(m.windows))
	}
	m.windows[channel].WriteFloat32(samples)
	return nil
}

// WriteInterleaved splits interleaved frames across the channel windows.
// A trailing partial frame is dropped.
func (m *Meter) WriteInterleaved(samples []float64) {
	for ch, data := range Deinterleave(samples, len(m.windows)) {
		m.windows[ch].Write(data)
	}
}

// Reset clears every window and any held peaks.
func (m *Meter) Reset() {
	for _, w := range m.windows {
		w.Clear()
	}
	if m.hold != nil {
		m.hold.Reset()
	}
}
