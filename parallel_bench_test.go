package meter

import (
	"testing"
	"time"
)

// BenchmarkAnalyzeSequential benchmarks sequential multi-channel analysis.
func BenchmarkAnalyzeSequential(b *testing.B) {
	benchmarkAnalyze(b, false)
}

// BenchmarkAnalyzeParallel benchmarks parallel multi-channel analysis.
func BenchmarkAnalyzeParallel(b *testing.B) {
	benchmarkAnalyze(b, true)
}

func benchmarkAnalyze(b *testing.B, parallel bool) {
	b.Helper()

	const channels = 8 // 7.1

	config := DefaultConfig()
	config.Channels = channels
	config.Standard = StandardTruePeak
	config.EnableParallel = parallel

	m, err := New(&config)
	if err != nil {
		b.Fatalf("Failed to create meter: %v", err)
	}

	tone := GenerateTestSignal(1000, DefaultTestPhase, DefaultSampleRate)
	for range m.BufferSize() / len(tone) {
		for ch := range channels {
			if err := m.Write(ch, tone); err != nil {
				b.Fatalf("Write failed: %v", err)
			}
		}
	}

	now := time.Now()

	b.ResetTimer()
	b.ReportAllocs()

	for b.Loop() {
		if _, err := m.Analyze(now); err != nil {
			b.Fatalf("Analyze failed: %v", err)
		}
	}
}
