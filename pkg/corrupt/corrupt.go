package corrupt

import (
	"math/rand"

	"github.com/8ff/ookwav/pkg/bitManipulation"
	"github.com/8ff/ookwav/pkg/signal"
)

// Attenuate scales every sample by gain
func Attenuate(sig signal.Signal, gain float64) signal.Signal {
	out := make([]float64, len(sig.Samples))
	for i, v := range sig.Samples {
		out[i] = v * gain
	}
	return sig.WithSamples(out)
}

// AddNoise adds uniform noise in [-amplitude, amplitude] to every sample
func AddNoise(sig signal.Signal, amplitude float64, rng *rand.Rand) signal.Signal {
	out := make([]float64, len(sig.Samples))
	for i, v := range sig.Samples {
		out[i] = v + amplitude*(2*rng.Float64()-1)
	}
	return sig.WithSamples(out)
}

// PadSilence surrounds the signal with before and after zero samples
func PadSilence(sig signal.Signal, before, after int) signal.Signal {
	out := make([]float64, before+len(sig.Samples)+after)
	copy(out[before:], sig.Samples)
	return sig.WithSamples(out)
}

// Clip limits every sample to [-1, 1]
func Clip(sig signal.Signal) signal.Signal {
	out := make([]float64, len(sig.Samples))
	for i, v := range sig.Samples {
		out[i] = max(-1, min(1, v))
	}
	return sig.WithSamples(out)
}

// Function that takes in a BitSequence and num to flip randomly, it flips bits without repeating
func FlipBits(a bitManipulation.BitSequence, num int, rng *rand.Rand) bitManipulation.BitSequence {
	b := a.Clone()
	if num > len(a) {
		num = len(a)
	}
	for _, pos := range rng.Perm(len(a))[:num] {
		b[pos] ^= 1
	}
	return b
}

// Function that compares two BitSequences and returns the number of different bits.
// Extra bits in the longer one count as different.
func CompareBits(a, b bitManipulation.BitSequence) int {
	n := min(len(a), len(b))
	diff := max(len(a), len(b)) - n
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			diff++
		}
	}
	return diff
}
