package spectrum_test

import (
	"math"
	"testing"

	"github.com/8ff/ookwav/pkg/bitManipulation"
	"github.com/8ff/ookwav/pkg/ookGenerator"
	"github.com/8ff/ookwav/pkg/signal"
	"github.com/8ff/ookwav/pkg/spectrum"
)

func TestPeakFindsCarrier(t *testing.T) {
	for _, carrier := range []float64{700, 1000, 2500} {
		p := ookGenerator.DefaultParams()
		p.CarrierFreq = carrier

		sig, err := ookGenerator.Modulate(bitManipulation.BitSequence{1, 0, 1, 0, 1, 1, 1, 0, 0, 1}, p)
		if err != nil {
			t.Fatalf("Modulate failed with error: %v", err)
		}

		peak, err := spectrum.Peak(sig, 100, 5000)
		if err != nil {
			t.Fatalf("Peak failed with error: %v", err)
		}
		tolerance := 2 * spectrum.Resolution(sig.SampleRate, sig.Len())
		if math.Abs(peak.Freq-carrier) > tolerance {
			t.Fatalf("peak at %.1f Hz, want %.1f +- %.1f", peak.Freq, carrier, tolerance)
		}
	}
}

func TestPeakSilence(t *testing.T) {
	if _, err := spectrum.Peak(signal.New(make([]float64, 1024), 8000, 16), 100, 3000); err == nil {
		t.Fatalf("Peak on silence should fail")
	}
}

func TestSpectrumInvalid(t *testing.T) {
	if _, err := spectrum.Spectrum(signal.Signal{}, 0, 1000); err == nil {
		t.Fatalf("Spectrum without sample rate should fail")
	}
	if _, err := spectrum.Spectrum(signal.New(nil, 8000, 16), 0, 1000); err == nil {
		t.Fatalf("Spectrum on an empty signal should fail")
	}
}

func TestResolution(t *testing.T) {
	if r := spectrum.Resolution(8192, 5000); r != 1 {
		t.Fatalf("Resolution = %f, want 1", r)
	}
}
