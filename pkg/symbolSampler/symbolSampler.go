package symbolSampler

import (
	"fmt"
	"math"

	"github.com/8ff/ookwav/pkg/bitManipulation"
	"github.com/8ff/ookwav/pkg/signal"
)

// Averages splits sig into windows of period samples and returns the mean of
// each window scaled by 2^BitDepth. Samples after the last full window are dropped.
func Averages(sig signal.Signal, period int) ([]float64, error) {
	if period < 1 {
		return nil, fmt.Errorf("symbol period must be at least 1 sample, got %d", period)
	}
	if sig.BitDepth < 1 {
		return nil, fmt.Errorf("bit depth must be positive, got %d", sig.BitDepth)
	}

	maxAmplitude := math.Pow(2, float64(sig.BitDepth))
	numSymbols := len(sig.Samples) / period
	averages := make([]float64, numSymbols)
	for i := 0; i < numSymbols; i++ {
		sum := 0.0
		for _, v := range sig.Samples[i*period : (i+1)*period] {
			sum += v
		}
		averages[i] = maxAmplitude * (sum / float64(period))
	}
	return averages, nil
}

// SampleAndThreshold outputs 1 for every window whose scaled average is strictly above threshold
func SampleAndThreshold(sig signal.Signal, period int, threshold float64) (bitManipulation.BitSequence, error) {
	averages, err := Averages(sig, period)
	if err != nil {
		return nil, err
	}

	bits := make(bitManipulation.BitSequence, len(averages))
	for i, avg := range averages {
		if avg > threshold {
			bits[i] = 1
		}
	}
	return bits, nil
}
