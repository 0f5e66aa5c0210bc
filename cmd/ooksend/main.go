package main

/*
Reads one line from stdin and writes it as an OOK tone to a WAV file.
The tone can also be played on an audio device or charted in a browser.
*/

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	ossignal "os/signal"
	"strings"

	"github.com/8ff/ookwav/pkg/audio"
	"github.com/8ff/ookwav/pkg/chart"
	"github.com/8ff/ookwav/pkg/config"
	"github.com/8ff/ookwav/pkg/corrupt"
	"github.com/8ff/ookwav/pkg/misc"
	"github.com/8ff/ookwav/pkg/modem"
	"github.com/8ff/ookwav/pkg/ookGenerator"
	"github.com/8ff/ookwav/pkg/txControl"
	"github.com/8ff/ookwav/pkg/wavFile"
	"github.com/spf13/pflag"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		misc.Log("error", err.Error())
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	flags := pflag.NewFlagSet("ooksend", pflag.ContinueOnError)
	output := flags.StringP("output", "o", "", "WAV file to write (default ook_message.wav)")
	configPath := flags.StringP("config", "c", "", "YAML config file")
	envPath := flags.StringP("env", "e", "", ".env file with OOK_* variables")
	play := flags.BoolP("play", "p", false, "Play the tone on the playback device")
	pttAddr := flags.String("ptt", "", "Key the radio through rigctld at host:port while playing")
	flip := flags.Int("flip", 0, "Invert this many random symbols before modulating")
	seed := flags.Int64("seed", 1, "Seed for --flip")
	plotAddr := flags.String("plot", "", "Serve a chart of the tone on this address, e.g. 127.0.0.1:3000")
	listDevices := flags.BoolP("list-devices", "l", false, "List audio devices and exit")
	verbose := flags.BoolP("verbose", "v", false, "Debug logging")
	help := flags.BoolP("help", "h", false, "Display help text")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: ooksend [options] < message.txt\n\n")
		fmt.Fprintf(os.Stderr, "Encodes one line of stdin as an OOK tone.\n\n")
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

	conf, err := config.Load(*configPath, *envPath)
	if err != nil {
		return err
	}
	if *output != "" {
		conf.OutputPath = *output
	}
	if flags.Changed("plot") {
		conf.PlotAddr = *plotAddr
	}
	if *pttAddr != "" {
		conf.PTTAddr = *pttAddr
	}
	if *verbose {
		conf.LogLevel = "debug"
	}
	if err := misc.SetLogLevel(conf.LogLevel); err != nil {
		return err
	}
	conf.Print()

	message, err := readLine(stdin)
	if err != nil {
		return err
	}

	tx, err := modem.Transmit(message, conf.TxParams())
	if err != nil {
		return err
	}

	flipped := 0
	if *flip > 0 {
		if tx, flipped, err = flipSymbols(tx, *flip, *seed, conf.Modulation()); err != nil {
			return err
		}
	}

	h, err := wavFile.Write(conf.OutputPath, tx.Signal)
	if err != nil {
		return err
	}
	misc.Log("debug", fmt.Sprintf("Wrote %d data bytes to %s", h.DataSize, conf.OutputPath))
	if msg := checkDataSize(h, tx.Duration); msg != "" {
		misc.Log("debug", msg)
	}

	fmt.Fprintf(stdout, "Message: %s\n", tx.Message)
	fmt.Fprintf(stdout, "\tCharacters: %d\n", tx.Characters())
	fmt.Fprintf(stdout, "\tSymbols: %d\n", len(tx.Bits))
	fmt.Fprintf(stdout, "\tSamples: %d\n", tx.Signal.Len())
	fmt.Fprintf(stdout, "\tDuration: %g s\n", tx.Duration)
	if flipped > 0 {
		fmt.Fprintf(stdout, "\tFlipped symbols: %d\n", flipped)
	}

	if *play {
		device, err := audio.PlaybackDevice(conf.PlaybackDevice)
		if err != nil {
			return fmt.Errorf("error getting playback device: %w", err)
		}
		misc.Log("info", fmt.Sprintf("Playing on [%s]", device.Name()))
		if err := playSignal(conf.PTTAddr, func() error { return audio.PlaySignal(device, tx.Signal) }); err != nil {
			return fmt.Errorf("playback failed: %w", err)
		}
	}

	if flags.Changed("plot") {
		c, err := chart.Frame(tx.Signal, 0, tx.Signal.Len(), chart.Line, "OOK signal: "+tx.Message)
		if err != nil {
			return err
		}
		ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return chart.ServeOne(ctx, conf.PlotAddr, c)
	}
	return nil
}

// flipSymbols inverts num random symbols of tx and modulates the result again
func flipSymbols(tx modem.Transmission, num int, seed int64, p ookGenerator.Params) (modem.Transmission, int, error) {
	bits := corrupt.FlipBits(tx.Bits, num, rand.New(rand.NewSource(seed)))
	sig, err := ookGenerator.Modulate(bits, p)
	if err != nil {
		return tx, 0, err
	}
	flipped := corrupt.CompareBits(tx.Bits, bits)
	tx.Bits, tx.Signal = bits, sig
	return tx, flipped, nil
}

// checkDataSize compares the header with the nominal duration. They differ when rate/baud truncates.
func checkDataSize(h wavFile.Header, duration float64) string {
	want := wavFile.DataSize(h.SampleRate, duration, h.BitsPerSample, h.NumChannels)
	if want == h.DataSize {
		return ""
	}
	return fmt.Sprintf("Header holds %d data bytes, %g s at %d Hz is %d bytes", h.DataSize, duration, h.SampleRate, want)
}

// playSignal wraps playback in PTT keying when a rigctld address is set
func playSignal(pttAddr string, play func() error) error {
	if pttAddr == "" {
		return play()
	}
	return txControl.New(pttAddr).Transmit(play)
}

// readLine returns the first line of r without its line ending
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("error reading message: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
