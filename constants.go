package meter

import "time"

// Channel constants
const (
	stereoChannels = 2  // Stereo channel count (used by interleave functions)
	maxChannels    = 64 // Maximum supported channel count
)

// Scale defaults
const (
	defaultDBRangeMin = -48.0 // Quietest level shown, in dB
	defaultDBRangeMax = 0.0   // Loudest level shown, in dB
	defaultDBTickSize = 6     // Decibels between labeled ticks
	defaultDBDotSize  = 10    // Pixels between scale dots
)

// Visual defaults, carried for renderers; the analysis ignores them.
const (
	defaultHeight         = 80
	defaultBorderSize     = 2
	defaultFontSize       = 9
	defaultBackground     = "#000000"
	defaultTickColor      = "#dddddd"
	defaultLabelColor     = "#dddddd"
	defaultMaskTransition = 100 * time.Millisecond
)

// Default gradient stops, loud end first.
var defaultGradient = []string{"red 1%", "#ff0 16%", "lime 45%", "#080 100%"}

// Audio defaults
const (
	DefaultSampleRate = 48000 // Sample rate assumed for test signals and new meters
	defaultBufferSize = 2048  // Requested analysis window before snapping
	maxSampleRate     = 768000
)

// DefaultTestPhase is the starting phase of GenerateTestSignal in radians.
const DefaultTestPhase = 0.0
