// Command analyze-kernel prints the properties of the true-peak
// interpolation kernels: tap values, DC gain, passband flatness, and how far
// a sample-peak reading under-reads test tones compared to the estimators.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"

	"github.com/tphakala/go-audio-meter/internal/filter"
	"github.com/tphakala/go-audio-meter/internal/level"
	"github.com/tphakala/go-audio-meter/internal/mathutil"
	"github.com/tphakala/go-audio-meter/internal/signal"
	"github.com/tphakala/go-audio-meter/internal/simdops"
	"github.com/tphakala/go-audio-meter/internal/truepeak"
)

const (
	defaultPoints      = 512   // Frequency response resolution
	defaultEdge        = 0.45  // Passband edge (normalized, 0 to 0.5)
	defaultAttenuation = 100.0 // Kaiser taper stopband attenuation in dB
	defaultTapsToShow  = 4     // Taps printed either side of the center
	sweepLength        = 4096  // Samples per test tone
)

// sweepFrequencies are the test tones, in Hz at the default sample rate.
var sweepFrequencies = []float64{997, 5000, 10000, 12000, 16000, 20000}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	factor := flag.Int("factor", filter.DefaultOversampling, "Oversampling factor of the kernel banks")
	taps := flag.Int("taps", filter.TruePeakTaps, "Kernel length of the banks")
	atten := flag.Float64("atten", defaultAttenuation, "Kaiser taper attenuation in dB for the tapered bank")
	points := flag.Int("points", defaultPoints, "Frequency response points")
	edge := flag.Float64("edge", defaultEdge, "Passband edge for the flatness check (0 to 0.5)")
	show := flag.Int("show", defaultTapsToShow, "Taps to print either side of the center")
	flag.Parse()

	fmt.Println("=== True-Peak Kernel ===")
	kernel := filter.TruePeakKernel()
	describeKernel(kernel, filter.TruePeakOffset, *points, *edge)
	printCenterTaps(kernel, *show)

	plain, err := filter.NewBank(filter.BankParams{Oversampling: *factor, Taps: *taps})
	if err != nil {
		return err
	}
	tapered, err := filter.NewBank(filter.BankParams{
		Oversampling: *factor,
		Taps:         *taps,
		Attenuation:  *atten,
		Normalize:    true,
	})
	if err != nil {
		return err
	}

	fmt.Printf("\n=== %dx Bank, plain sinc ===\n", *factor)
	describeBank(plain, *points, *edge)

	fmt.Printf("\n=== %dx Bank, Kaiser %.0f dB, normalized ===\n", *factor, *atten)
	describeBank(tapered, *points, *edge)

	fmt.Println("\n=== Sample-peak under-read (dB) ===")
	estimators := []struct {
		name string
		est  *truepeak.Estimator
	}{
		{"single", truepeak.Default()},
		{"plain", truepeak.NewEstimator(plain)},
		{"kaiser", truepeak.NewEstimator(tapered)},
	}

	fmt.Printf("  %8s %8s", "freq", "sample")
	for _, e := range estimators {
		fmt.Printf(" %8s", e.name)
	}
	fmt.Println()

	for _, freq := range sweepFrequencies {
		// 45 degrees keeps crests off the sample grid at fs/4.
		tone := signal.SineN(sweepLength, freq, math.Pi/4, signal.DefaultSampleRate)
		sample := level.SamplePeak(tone)
		fmt.Printf("  %8.0f %8.3f", freq, mathutil.AmplitudeToDecibels(sample))
		for _, e := range estimators {
			fmt.Printf(" %8.3f", mathutil.AmplitudeToDecibels(e.est.Estimate(tone)))
		}
		fmt.Println()
	}

	return nil
}

func describeKernel(kernel []float64, offset float64, points int, edge float64) {
	ops := simdops.Float64Ops()
	dc := ops.Sum(kernel)
	energy := ops.DotProductUnsafe(kernel, kernel)
	resp := filter.ComputeFrequencyResponse(kernel, points)

	peakIdx := 0
	for i, v := range kernel {
		if math.Abs(v) > math.Abs(kernel[peakIdx]) {
			peakIdx = i
		}
	}

	fmt.Printf("  Taps: %d, offset %.4f\n", len(kernel), offset)
	fmt.Printf("  Peak tap: %d (%.10f)\n", peakIdx, kernel[peakIdx])
	fmt.Printf("  DC gain: %.10f (%.4f dB)\n", dc, filter.MagnitudeDB(math.Abs(dc)))
	fmt.Printf("  Energy: %.10f\n", energy)
	fmt.Printf("  Passband deviation to %.3f: %.6f (%.4f dB)\n",
		edge, resp.PassbandDeviation(edge), filter.MagnitudeDB(1+resp.PassbandDeviation(edge)))
}

func printCenterTaps(kernel []float64, show int) {
	center := len(kernel) / 2
	lo := max(center-show, 0)
	hi := min(center+show, len(kernel))
	for i := lo; i < hi; i++ {
		fmt.Printf("    tap %3d: %+.10f\n", i, kernel[i])
	}
}

func describeBank(bank *filter.Bank, points int, edge float64) {
	ops := simdops.Float64Ops()
	fmt.Printf("  Phases: %d, taps per phase: %d\n", bank.Phases(), bank.Taps())
	for k := range bank.Phases() {
		kernel := bank.Kernel(k)
		resp := filter.ComputeFrequencyResponse(kernel, points)
		fmt.Printf("  Phase %d: offset %.4f, DC gain %.10f, passband deviation %.6f\n",
			k, bank.Offset(k), ops.Sum(kernel), resp.PassbandDeviation(edge))
	}
}
