package main

/*
Passes a WAV file through a simulated analog channel: gain, additive noise and silence padding.
*/

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/8ff/ookwav/pkg/corrupt"
	"github.com/8ff/ookwav/pkg/misc"
	"github.com/8ff/ookwav/pkg/wavFile"
	"github.com/spf13/pflag"
)

type channel struct {
	Gain      float64
	Noise     float64
	Seed      int64
	PadBefore time.Duration
	PadAfter  time.Duration
	Clip      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		misc.Log("error", err.Error())
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var ch channel
	flags := pflag.NewFlagSet("ookchannel", pflag.ContinueOnError)
	flags.Float64VarP(&ch.Gain, "gain", "g", 1, "Amplitude gain")
	flags.Float64VarP(&ch.Noise, "noise", "n", 0, "Peak amplitude of uniform noise")
	flags.Int64VarP(&ch.Seed, "seed", "s", 1, "Noise seed")
	flags.DurationVar(&ch.PadBefore, "pad-before", 0, "Silence added before the signal")
	flags.DurationVar(&ch.PadAfter, "pad-after", 0, "Silence added after the signal")
	flags.BoolVar(&ch.Clip, "clip", true, "Clip samples to [-1, 1]")
	verbose := flags.BoolP("verbose", "v", false, "Debug logging")
	help := flags.BoolP("help", "h", false, "Display help text")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ookchannel [options] <input.wav> <output.wav>\n\n")
		flags.PrintDefaults()
	}

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if *help {
		flags.Usage()
		return nil
	}
	if *verbose {
		if err := misc.SetLogLevel("debug"); err != nil {
			return err
		}
	}

	if flags.NArg() != 2 {
		flags.Usage()
		return fmt.Errorf("exactly two arguments required (input and output WAV files), got %d", flags.NArg())
	}
	in, out := flags.Arg(0), flags.Arg(1)

	_, sig, err := wavFile.Read(in)
	if err != nil {
		return err
	}

	before := int(float64(sig.SampleRate) * ch.PadBefore.Seconds())
	after := int(float64(sig.SampleRate) * ch.PadAfter.Seconds())
	misc.Log("debug", fmt.Sprintf("Gain %g, noise %g (seed %d), padding %d/%d samples", ch.Gain, ch.Noise, ch.Seed, before, after))

	sig = corrupt.Attenuate(sig, ch.Gain)
	if ch.Noise > 0 {
		sig = corrupt.AddNoise(sig, ch.Noise, rand.New(rand.NewSource(ch.Seed)))
	}
	sig = corrupt.PadSilence(sig, before, after)
	if ch.Clip {
		sig = corrupt.Clip(sig)
	}

	h, err := wavFile.Write(out, sig)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "Wrote %s: %d samples, %d bytes\n", out, sig.Len(), h.DataSize)
	return nil
}
