// Package signal holds the sample buffer passed between pipeline stages.
package signal

import "time"

// Signal is a mono buffer of samples normalized to [-1, 1].
// BitDepth is not applied to the samples, it only scales thresholds.
type Signal struct {
	Samples    []float64
	SampleRate int
	BitDepth   int
}

func New(samples []float64, sampleRate, bitDepth int) Signal {
	return Signal{Samples: samples, SampleRate: sampleRate, BitDepth: bitDepth}
}

func (s Signal) Len() int {
	return len(s.Samples)
}

// Seconds returns the signal length in seconds, 0 if the sample rate is unset
func (s Signal) Seconds() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.SampleRate)
}

func (s Signal) Duration() time.Duration {
	return time.Duration(s.Seconds() * float64(time.Second))
}

// Clone returns a Signal with its own copy of the samples
func (s Signal) Clone() Signal {
	c := s
	c.Samples = make([]float64, len(s.Samples))
	copy(c.Samples, s.Samples)
	return c
}

// WithSamples returns a Signal with the same format carrying samples
func (s Signal) WithSamples(samples []float64) Signal {
	return Signal{Samples: samples, SampleRate: s.SampleRate, BitDepth: s.BitDepth}
}
