package spectrum

import (
	"fmt"
	"math/cmplx"

	"github.com/8ff/ookwav/pkg/signal"
	"github.com/mjibson/go-dsp/dsputils"
	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
)

// Bin is one magnitude point of a spectrum
type Bin struct {
	Freq      float64
	Magnitude float64
}

// Spectrum returns the magnitude of every bin between lo and hi Hz.
// The signal is Hamming windowed and zero padded to the next power of two.
func Spectrum(sig signal.Signal, lo, hi float64) ([]Bin, error) {
	if sig.SampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %d", sig.SampleRate)
	}
	if len(sig.Samples) < 2 {
		return nil, fmt.Errorf("signal too short for a spectrum: %d samples", len(sig.Samples))
	}

	fftSize := dsputils.NextPowerOf2(len(sig.Samples))
	w := make([]float64, fftSize)
	copy(w, sig.Samples)
	window.Apply(w[:len(sig.Samples)], window.Hamming)

	c := fft.FFTReal(w)
	bins := make([]Bin, 0)
	for i := 0; i < len(c)/2; i++ {
		freq := float64(i) * float64(sig.SampleRate) / float64(fftSize)
		if freq < lo || freq > hi { // We only care about the frequencies we are interested in
			continue
		}
		r := cmplx.Abs(c[i]) / float64(fftSize)
		bins = append(bins, Bin{Freq: freq, Magnitude: r})
	}
	return bins, nil
}

// Peak returns the strongest bin between lo and hi Hz
func Peak(sig signal.Signal, lo, hi float64) (Bin, error) {
	bins, err := Spectrum(sig, lo, hi)
	if err != nil {
		return Bin{}, err
	}
	if len(bins) == 0 {
		return Bin{}, fmt.Errorf("no bins between %.1f and %.1f Hz", lo, hi)
	}

	best := bins[0]
	for _, b := range bins[1:] {
		if b.Magnitude > best.Magnitude {
			best = b
		}
	}
	if dsputils.Float64Equal(best.Magnitude, 0) {
		return Bin{}, fmt.Errorf("no energy between %.1f and %.1f Hz", lo, hi)
	}
	return best, nil
}

// Resolution is the width in Hz of one bin for a signal of n samples
func Resolution(sampleRate, n int) float64 {
	return float64(sampleRate) / float64(dsputils.NextPowerOf2(n))
}
