// Package mathutil provides the numeric helpers behind the meter scale:
// decibel conversion, percent-in-range mapping, and the Bessel function used
// by the Kaiser-tapered oversampling kernels.
package mathutil

import (
	"math"
)

// LogBase returns the logarithm of y in base x, computed as ln(y)/ln(x).
//
// Non-positive y follows math.Log: 0 yields -Inf and negative values yield NaN.
func LogBase(x, y float64) float64 {
	return math.Log(y) / math.Log(x)
}

// AmplitudeToDecibels converts a linear amplitude to decibels: 20·log10(linear).
//
// Silence and negative input return -Inf. The value is not clamped here;
// DecibelsToPercent clamps it onto the display range.
func AmplitudeToDecibels(linear float64) float64 {
	if linear <= 0 {
		return math.Inf(-1)
	}
	return LogBase(logBase10, linear) * dbAmplitudeFactor
}

// DecibelsToAmplitude converts decibels back to a linear amplitude.
func DecibelsToAmplitude(db float64) float64 {
	return math.Pow(logBase10, db/dbAmplitudeFactor)
}

// DecibelsToPercent maps db onto [0,100] where dbMax is 100 and dbMin is 0.
//
// The distance from dbMax is floored before it is subtracted from 100, so
// readings truncate toward the quiet end:
//
//	raw = floor(((dbMax - db) * 100) / (dbMax - dbMin)), clamped to [0,100]
//	percent = 100 - raw
//
// NaN maps to 0.
func DecibelsToPercent(db, dbMin, dbMax float64) int {
	raw := math.Floor(PercentBelowMax(db, dbMin, dbMax))
	if math.IsNaN(raw) || raw > PercentMax {
		raw = PercentMax
	}
	if raw < PercentMin {
		raw = PercentMin
	}
	return PercentMax - int(raw)
}

// PercentBelowMax returns how far db sits below dbMax as an unclamped,
// unfloored percentage of the range. A tick at -18 dB in [-48, 0] is 37.5.
func PercentBelowMax(db, dbMin, dbMax float64) float64 {
	return ((dbMax - db) * percentScale) / (dbMax - dbMin)
}
