// Package modem chains the transmit and receive stages.
//
// Transmit: text -> bitEncoder -> ookGenerator.
// Receive: envelope.Rectify -> envelope.LowPass -> symbolSampler -> frameSync -> byteDecoder.
package modem

import (
	"fmt"

	"github.com/8ff/ookwav/pkg/bitEncoder"
	"github.com/8ff/ookwav/pkg/bitManipulation"
	"github.com/8ff/ookwav/pkg/byteDecoder"
	"github.com/8ff/ookwav/pkg/envelope"
	"github.com/8ff/ookwav/pkg/frameSync"
	"github.com/8ff/ookwav/pkg/misc"
	"github.com/8ff/ookwav/pkg/ookGenerator"
	"github.com/8ff/ookwav/pkg/signal"
	"github.com/8ff/ookwav/pkg/symbolSampler"
)

type TxParams struct {
	Modulation ookGenerator.Params
	Charset    string
}

type RxParams struct {
	Modulation   ookGenerator.Params
	FilterWindow int     // moving average length in samples
	Threshold    float64 // compared against the window average scaled by 2^BitDepth
	Bound        frameSync.Bound
	Charset      string
}

func DefaultTxParams() TxParams {
	return TxParams{Modulation: ookGenerator.DefaultParams(), Charset: misc.DefaultCharset}
}

func DefaultRxParams() RxParams {
	return RxParams{
		Modulation:   ookGenerator.DefaultParams(),
		FilterWindow: 44,
		Threshold:    12000,
		Bound:        frameSync.Inclusive,
		Charset:      misc.DefaultCharset,
	}
}

type Transmission struct {
	Message  string
	Bits     bitManipulation.BitSequence
	Signal   signal.Signal
	Duration float64 // seconds
}

// Reception holds what the receiver recovered. Found is false when no
// preamble was seen, in which case Text is empty and PayloadStart is 0.
type Reception struct {
	Bits         bitManipulation.BitSequence
	Envelope     signal.Signal
	PayloadStart int
	Found        bool
	Text         string
}

// Characters is the number of characters carried by the transmission
func (t Transmission) Characters() int {
	return (len(t.Bits) - bitManipulation.PreambleLength) / 8
}

func Transmit(text string, p TxParams) (Transmission, error) {
	bits, err := bitEncoder.EncodeCharset(text, p.Charset)
	if err != nil {
		return Transmission{}, err
	}

	sig, err := ookGenerator.Modulate(bits, p.Modulation)
	if err != nil {
		return Transmission{}, fmt.Errorf("modulating: %w", err)
	}

	t := Transmission{Message: text, Bits: bits, Signal: sig}
	t.Duration = ookGenerator.Duration(t.Characters(), p.Modulation)
	return t, nil
}

// Receive runs the receive chain over sig. The sample rate and bit depth of
// sig take precedence over the ones in p.Modulation when they are set.
func Receive(sig signal.Signal, p RxParams) (Reception, error) {
	params := p.Modulation
	if sig.SampleRate > 0 {
		params.SampleRate = sig.SampleRate
	}
	if sig.BitDepth > 0 {
		params.BitDepth = sig.BitDepth
	}
	if err := params.Validate(); err != nil {
		return Reception{}, err
	}
	sig.SampleRate = params.SampleRate
	sig.BitDepth = params.BitDepth

	filtered, err := envelope.Detect(sig, p.FilterWindow)
	if err != nil {
		return Reception{}, err
	}

	bits, err := symbolSampler.SampleAndThreshold(filtered, params.SamplesPerSymbol(), p.Threshold)
	if err != nil {
		return Reception{}, err
	}

	r := Reception{Bits: bits, Envelope: filtered}
	start, found := frameSync.FindPreamble(bits, p.Bound)
	if !found {
		misc.Log("debug", fmt.Sprintf("no preamble in %d symbols", len(bits)))
		return r, nil
	}

	r.Text, err = byteDecoder.DecodeCharset(bits, start, p.Charset)
	if err != nil {
		return Reception{}, err
	}
	r.PayloadStart = start
	r.Found = true
	return r, nil
}
