// Package meter provides real-time audio level metering in pure Go.
//
// It turns live sample buffers into render-ready readings: a linear level,
// its dBFS value and a bar height percentage on a configurable decibel
// scale, plus the static scale marks (labeled ticks and pixel dots) a
// renderer draws beside the bar.
//
// # Features
//
//   - Sample-peak, RMS and true-peak (inter-sample) measurement
//   - True-peak estimation with a 128-tap fractional-delay sinc kernel
//     evaluated with SIMD dot products via github.com/tphakala/simd
//   - Configurable dB range, tick spacing and dot spacing
//   - Optional per-channel peak hold
//   - Buffer size negotiation against the power-of-two sizes an analyser
//     node accepts (256 to 16384)
//   - Deterministic test tones for validating the analyzers
//   - Pure Go implementation with no CGO dependencies
//
// # Quick Start
//
// For one-off calculations use the package functions:
//
//	db := meter.LinearToDecibels(0.5)                // about -6.02
//	pct := meter.DecibelsToPercent(db, -48, 0)       // 87
//	ticks := meter.GenerateTicks(-48, 0, 6)          // [-42 -36 ... -6 0]
//	peak := meter.EstimateTruePeak(window)           // >= max |sample|
//
// For streaming use, create a [Meter], write samples from the audio side
// and analyze on the rendering cadence:
//
//	config := meter.DefaultConfig()
//	config.Channels = 2
//	config.Standard = meter.StandardTruePeak
//	config.PeakHoldDuration = 1500 * time.Millisecond
//
//	m, err := meter.New(&config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// audio callback
//	m.WriteInterleaved(frames)
//
//	// render tick
//	snap, err := m.Analyze(time.Now())
//	for ch, r := range snap.Channels {
//	    drawBar(ch, r.Percent, r.HoldPercent)
//	}
//
// # Scale Mapping
//
// A level in dB maps to a percentage with
//
//	raw = floor(((max - db) * 100) / (max - min))
//	percent = 100 - clamp(raw, 0, 100)
//
// so anything at or above the range max reads 100 and anything at or below
// the range min, including silence (-Inf dB), reads 0.
//
// # Thread Safety
//
// The package functions are stateless. [Meter.Write] and [Meter.Analyze]
// may be called from different goroutines; concurrent Analyze calls are
// serialized. [PeakHold] is safe for concurrent use.
package meter
