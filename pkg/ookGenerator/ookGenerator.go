package ookGenerator

import (
	"fmt"
	"math"

	"github.com/8ff/ookwav/pkg/bitManipulation"
	"github.com/8ff/ookwav/pkg/signal"
)

// Params must match on both ends of the link
type Params struct {
	SampleRate  int     // samples per second
	CarrierFreq float64 // Hz
	BaudRate    int     // symbols per second
	BitDepth    int     // bits per PCM sample
}

func DefaultParams() Params {
	return Params{SampleRate: 44100, CarrierFreq: 1000, BaudRate: 100, BitDepth: 16}
}

// SamplesPerSymbol truncates when SampleRate is not a multiple of BaudRate
func (p Params) SamplesPerSymbol() int {
	if p.BaudRate <= 0 {
		return 0
	}
	return p.SampleRate / p.BaudRate
}

func (p Params) Validate() error {
	if p.SampleRate <= 0 {
		return fmt.Errorf("sample rate must be positive, got %d", p.SampleRate)
	}
	if p.BaudRate <= 0 {
		return fmt.Errorf("baud rate must be positive, got %d", p.BaudRate)
	}
	if p.SamplesPerSymbol() < 1 {
		return fmt.Errorf("baud rate %d is higher than sample rate %d", p.BaudRate, p.SampleRate)
	}
	if p.BitDepth <= 0 {
		return fmt.Errorf("bit depth must be positive, got %d", p.BitDepth)
	}
	if p.CarrierFreq <= 0 {
		return fmt.Errorf("carrier frequency must be positive, got %f", p.CarrierFreq)
	}
	return nil
}

// Modulate keys the carrier on for 1 and off for 0.
// The carrier phase restarts at every symbol.
func Modulate(bits bitManipulation.BitSequence, p Params) (signal.Signal, error) {
	if err := p.Validate(); err != nil {
		return signal.Signal{}, err
	}

	samplesPerSymbol := p.SamplesPerSymbol()
	omega := 2 * math.Pi * p.CarrierFreq / float64(p.SampleRate)

	// One symbol of carrier, reused for every 1
	carrier := make([]float64, samplesPerSymbol)
	for k := range carrier {
		carrier[k] = math.Sin(omega * float64(k))
	}

	samples := make([]float64, len(bits)*samplesPerSymbol)
	for i, bit := range bits {
		if bit == 1 {
			copy(samples[i*samplesPerSymbol:], carrier)
		}
	}

	return signal.New(samples, p.SampleRate, p.BitDepth), nil
}

// Duration is the transmit time in seconds of numChars characters plus the preamble
func Duration(numChars int, p Params) float64 {
	if p.BaudRate <= 0 {
		return 0
	}
	return float64(numChars+bitManipulation.PreambleLength/8) * 8.0 / float64(p.BaudRate)
}
