package main

/*
Decodes the OOK message stored in a WAV file, optionally recording it first.
*/

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	ossignal "os/signal"
	"strings"
	"time"

	"github.com/8ff/ookwav/pkg/audio"
	"github.com/8ff/ookwav/pkg/bitEncoder"
	"github.com/8ff/ookwav/pkg/chart"
	"github.com/8ff/ookwav/pkg/config"
	"github.com/8ff/ookwav/pkg/corrupt"
	"github.com/8ff/ookwav/pkg/misc"
	"github.com/8ff/ookwav/pkg/modem"
	"github.com/8ff/ookwav/pkg/spectrum"
	"github.com/8ff/ookwav/pkg/wavFile"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		misc.Log("error", err.Error())
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	flags := pflag.NewFlagSet("ookread", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "", "YAML config file")
	envPath := flags.StringP("env", "e", "", ".env file with OOK_* variables")
	record := flags.Duration("record", 0, "Record this long from the capture device into the WAV file before decoding")
	expect := flags.String("expect", "", "Count symbol errors against this message")
	plotAddr := flags.String("plot", "", "Serve a chart of the envelope on this address, e.g. 127.0.0.1:3000")
	listDevices := flags.BoolP("list-devices", "l", false, "List audio devices and exit")
	verbose := flags.BoolP("verbose", "v", false, "Debug logging")
	help := flags.BoolP("help", "h", false, "Display help text")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ookread [options] <input.wav>\n\n")
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

	if *listDevices {
		return audio.PrettyPrintDevices(stdout)
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return fmt.Errorf("exactly one argument required (input WAV file), got %d", flags.NArg())
	}
	path := flags.Arg(0)

	conf, err := config.Load(*configPath, *envPath)
	if err != nil {
		return err
	}
	if flags.Changed("plot") {
		conf.PlotAddr = *plotAddr
	}
	if *verbose {
		conf.LogLevel = "debug"
	}
	if err := misc.SetLogLevel(conf.LogLevel); err != nil {
		return err
	}
	conf.Print()

	if *record > 0 {
		if err := recordTo(path, conf, *record); err != nil {
			return err
		}
	}

	h, sig, err := wavFile.Read(path)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Audio file: %s\n", path)
	fmt.Fprintf(stdout, "\tSample Rate: %d Hz\n", h.SampleRate)
	fmt.Fprintf(stdout, "\tBits per Sample: %d bits\n", h.BitsPerSample)
	fmt.Fprintf(stdout, "\tData Size: %d bytes\n", h.DataSize)

	if peak, err := spectrum.Peak(sig, 0, float64(h.SampleRate)/2); err != nil {
		misc.Log("debug", fmt.Sprintf("No carrier estimate: %s", err))
	} else {
		fmt.Fprintf(stdout, "\tCarrier estimate: %.1f Hz\n", peak.Freq)
	}

	rec, err := modem.Receive(sig, conf.RxParams())
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "Symbols: %s\n", spaced(rec.Bits.String()))
	if flags.Changed("expect") {
		want, err := bitEncoder.EncodeCharset(*expect, conf.Charset)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Symbol errors: %d of %d\n", corrupt.CompareBits(want, rec.Bits), len(want))
	}
	if rec.Found {
		fmt.Fprintf(stdout, "Decoded message: %s\n", rec.Text)
	} else {
		fmt.Fprintln(stdout, "start sequence not found")
	}

	if flags.Changed("plot") {
		c, err := chart.Frame(rec.Envelope, 0, rec.Envelope.Len(), chart.Line, "Envelope: "+path)
		if err != nil {
			return err
		}
		ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return chart.ServeOne(ctx, conf.PlotAddr, c)
	}
	return nil
}

func recordTo(path string, conf config.Config, d time.Duration) error {
	device, err := audio.CaptureDevice(conf.CaptureDevice)
	if err != nil {
		return fmt.Errorf("error getting capture device: %w", err)
	}
	misc.Log("info", fmt.Sprintf("Recording %s from [%s]", d, device.Name()))

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sig, err := audio.Record(ctx, device, conf.SampleRate, d)
	if err != nil {
		return fmt.Errorf("recording failed: %w", err)
	}
	_, err = wavFile.Write(path, sig)
	return err
}

// spaced separates symbols with a single space
func spaced(bits string) string {
	return strings.Join(strings.Split(bits, ""), " ")
}
