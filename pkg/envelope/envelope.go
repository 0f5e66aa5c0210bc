// Package envelope recovers the amplitude envelope of an OOK signal by
// full-wave rectification followed by a causal moving average.
package envelope

import (
	"fmt"
	"math"

	"github.com/8ff/ookwav/pkg/signal"
)

// Rectify returns a new signal holding |x| for every sample
func Rectify(sig signal.Signal) signal.Signal {
	out := make([]float64, len(sig.Samples))
	for i, v := range sig.Samples {
		out[i] = math.Abs(v)
	}
	return sig.WithSamples(out)
}

// LowPass averages each sample with the n-1 samples before it.
// Near the start the window shrinks instead of padding with zeros.
func LowPass(sig signal.Signal, n int) (signal.Signal, error) {
	if n < 1 {
		return signal.Signal{}, fmt.Errorf("filter window must be at least 1, got %d", n)
	}

	in := sig.Samples
	out := make([]float64, len(in))
	for i := range in {
		start := max(0, i-n+1)
		sum := 0.0
		for j := start; j <= i; j++ {
			sum += in[j]
		}
		out[i] = sum / float64(i+1-start)
	}
	return sig.WithSamples(out), nil
}

// Cutoff is a rough passband edge, fs/2n, for a moving average of n samples
func Cutoff(sampleRate, n int) float64 {
	if n < 1 {
		return 0
	}
	return float64(sampleRate) / (2 * float64(n))
}

// Detect rectifies and filters in one call
func Detect(sig signal.Signal, n int) (signal.Signal, error) {
	return LowPass(Rectify(sig), n)
}
