package main

import (
	"bytes"
	"io/fs"
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/8ff/ookwav/pkg/corrupt"
	"github.com/8ff/ookwav/pkg/modem"
	"github.com/8ff/ookwav/pkg/ookGenerator"
	"github.com/8ff/ookwav/pkg/signal"
	"github.com/8ff/ookwav/pkg/wavFile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMessage(t *testing.T, text string) string {
	t.Helper()
	tx, err := modem.Transmit(text, modem.DefaultTxParams())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "msg.wav")
	_, err = wavFile.Write(path, tx.Signal)
	require.NoError(t, err)
	return path
}

func TestRunDecodes(t *testing.T) {
	path := writeMessage(t, "A")
	var stdout bytes.Buffer
	require.NoError(t, run([]string{path}, &stdout))

	report := stdout.String()
	assert.Contains(t, report, "Sample Rate: 44100 Hz\n")
	assert.Contains(t, report, "Bits per Sample: 16 bits\n")
	assert.Contains(t, report, "Data Size: 14112 bytes\n")
	assert.Regexp(t, `Carrier estimate: (99\d|100\d)\.\d Hz`, report)
	assert.Contains(t, report, "Symbols: 1 0 1 0 1 0 1 0 0 1 0 0 0 0 0 1\n")
	assert.Contains(t, report, "Decoded message: A\n")
	assert.NotContains(t, report, "start sequence not found")
}

func TestRunNoPreamble(t *testing.T) {
	path := filepath.Join(t.TempDir(), "silence.wav")
	_, err := wavFile.Write(path, signal.New(make([]float64, 441*20), 44100, 16))
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, run([]string{path}, &stdout), "a missing preamble is not an error")
	assert.Contains(t, stdout.String(), "start sequence not found\n")
	assert.NotContains(t, stdout.String(), "Carrier estimate")
}

func TestRunThroughChannel(t *testing.T) {
	tx, err := modem.Transmit("ok", modem.DefaultTxParams())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "channel.wav")
	_, err = wavFile.Write(path, corrupt.PadSilence(corrupt.Attenuate(tx.Signal, 0.5), 441*3, 441))
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, run([]string{path}, &stdout))
	assert.Contains(t, stdout.String(), "Decoded message: ok\n")
}

func TestRunErrors(t *testing.T) {
	var stdout bytes.Buffer
	assert.Error(t, run(nil, &stdout), "input file is required")
	assert.Error(t, run([]string{"a.wav", "b.wav"}, &stdout))

	err := run([]string{filepath.Join(t.TempDir(), "missing.wav")}, &stdout)
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestSpaced(t *testing.T) {
	assert.Equal(t, "1 0 1", spaced("101"))
	assert.Equal(t, "", spaced(""))
}

func TestRunExpect(t *testing.T) {
	tx, err := modem.Transmit("ok", modem.DefaultTxParams())
	require.NoError(t, err)
	bits := corrupt.FlipBits(tx.Bits, 2, rand.New(rand.NewSource(9)))
	sig, err := ookGenerator.Modulate(bits, ookGenerator.DefaultParams())
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "flipped.wav")
	_, err = wavFile.Write(path, sig)
	require.NoError(t, err)

	var stdout bytes.Buffer
	require.NoError(t, run([]string{"--expect", "ok", path}, &stdout))
	assert.Contains(t, stdout.String(), "Symbol errors: 2 of 24\n")
}

func TestRunExpectClean(t *testing.T) {
	path := writeMessage(t, "ok")
	var stdout bytes.Buffer
	require.NoError(t, run([]string{"--expect", "ok", path}, &stdout))
	assert.Contains(t, stdout.String(), "Symbol errors: 0 of 24\n")
	assert.Contains(t, stdout.String(), "Decoded message: ok\n")
}
