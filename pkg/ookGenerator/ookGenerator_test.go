package ookGenerator_test

import (
	"math"
	"testing"

	"github.com/8ff/ookwav/pkg/bitManipulation"
	"github.com/8ff/ookwav/pkg/ookGenerator"
)

func TestModulateLength(t *testing.T) {
	p := ookGenerator.DefaultParams()
	bits := bitManipulation.BitSequence{1, 0, 1, 1, 0}

	sig, err := ookGenerator.Modulate(bits, p)
	if err != nil {
		t.Fatalf("Modulate failed with error: %v", err)
	}
	if sig.Len() != len(bits)*441 {
		t.Fatalf("got %d samples, want %d", sig.Len(), len(bits)*441)
	}
	if sig.SampleRate != 44100 || sig.BitDepth != 16 {
		t.Fatalf("signal format not carried: %+v", sig)
	}
}

func TestModulateOnOff(t *testing.T) {
	p := ookGenerator.DefaultParams()
	sig, err := ookGenerator.Modulate(bitManipulation.BitSequence{1, 0}, p)
	if err != nil {
		t.Fatalf("Modulate failed with error: %v", err)
	}

	omega := 2 * math.Pi * p.CarrierFreq / float64(p.SampleRate)
	for k := 0; k < 441; k++ {
		if sig.Samples[k] != math.Sin(omega*float64(k)) {
			t.Fatalf("sample %d = %f, want carrier", k, sig.Samples[k])
		}
		if sig.Samples[441+k] != 0 {
			t.Fatalf("sample %d = %f, want silence", 441+k, sig.Samples[441+k])
		}
	}
}

func TestModulatePhaseRestarts(t *testing.T) {
	// 37 Hz at 300 samples/s does not complete a whole cycle in one symbol
	p := ookGenerator.Params{SampleRate: 300, CarrierFreq: 37, BaudRate: 100, BitDepth: 16}
	sig, err := ookGenerator.Modulate(bitManipulation.BitSequence{1, 1, 1}, p)
	if err != nil {
		t.Fatalf("Modulate failed with error: %v", err)
	}
	for i := 1; i < 3; i++ {
		for k := 0; k < 3; k++ {
			if sig.Samples[i*3+k] != sig.Samples[k] {
				t.Fatalf("symbol %d sample %d does not restart phase", i, k)
			}
		}
	}
}

func TestModulateTruncatesSamplesPerSymbol(t *testing.T) {
	p := ookGenerator.Params{SampleRate: 1000, CarrierFreq: 100, BaudRate: 300, BitDepth: 16}
	if p.SamplesPerSymbol() != 3 {
		t.Fatalf("SamplesPerSymbol = %d, want 3", p.SamplesPerSymbol())
	}
	sig, err := ookGenerator.Modulate(bitManipulation.BitSequence{1, 0, 1, 0}, p)
	if err != nil {
		t.Fatalf("Modulate failed with error: %v", err)
	}
	if sig.Len() != 12 {
		t.Fatalf("got %d samples, want 12", sig.Len())
	}
}

func TestValidate(t *testing.T) {
	bad := []ookGenerator.Params{
		{SampleRate: 0, CarrierFreq: 1000, BaudRate: 100, BitDepth: 16},
		{SampleRate: 44100, CarrierFreq: 1000, BaudRate: 0, BitDepth: 16},
		{SampleRate: 50, CarrierFreq: 1000, BaudRate: 100, BitDepth: 16},
		{SampleRate: 44100, CarrierFreq: 1000, BaudRate: 100, BitDepth: 0},
		{SampleRate: 44100, CarrierFreq: 0, BaudRate: 100, BitDepth: 16},
	}
	for _, p := range bad {
		if err := p.Validate(); err == nil {
			t.Fatalf("Validate(%+v) should fail", p)
		}
		if _, err := ookGenerator.Modulate(bitManipulation.Preamble, p); err == nil {
			t.Fatalf("Modulate(%+v) should fail", p)
		}
	}
	if err := ookGenerator.DefaultParams().Validate(); err != nil {
		t.Fatalf("default params invalid: %v", err)
	}
}

func TestDuration(t *testing.T) {
	p := ookGenerator.DefaultParams()
	// preamble plus 4 characters is 40 symbols at 100 baud
	if d := ookGenerator.Duration(4, p); math.Abs(d-0.4) > 1e-12 {
		t.Fatalf("Duration = %f, want 0.4", d)
	}
}
