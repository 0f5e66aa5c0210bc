// Package wavFile reads and writes the canonical 44 byte header, mono,
// 16 bit PCM WAV files exchanged by the transmitter and receiver.
package wavFile

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/8ff/ookwav/pkg/misc"
	"github.com/8ff/ookwav/pkg/signal"
	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const (
	HeaderSize    = 44
	BitsPerSample = 16
	NumChannels   = 1
	formatPCM     = 1
)

var (
	ErrInvalidFile = errors.New("not a RIFF/WAVE file")
	ErrNotPCM      = errors.New("audio format is not PCM")
	ErrNotMono     = errors.New("only mono files are supported")
	ErrBitDepth    = errors.New("only 16 bit samples are supported")
)

// Header holds the fields read from, or written to, the WAV header
type Header struct {
	SampleRate    int
	BitsPerSample int
	NumChannels   int
	DataSize      int // bytes in the data chunk
}

// DataSize is the data chunk size in bytes for duration seconds of audio
func DataSize(sampleRate int, duration float64, bitDepth, channels int) int {
	samples := int(float64(sampleRate) * duration)
	return samples * channels * bitDepth / 8
}

// Write stores sig at path. A partially written file is left in place on error.
func Write(path string, sig signal.Signal) (Header, error) {
	f, err := os.Create(path)
	if err != nil {
		return Header{}, fmt.Errorf("failed to create %s: %w", path, err)
	}

	h, err := Encode(f, sig)
	if err != nil {
		f.Close()
		return Header{}, fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return Header{}, fmt.Errorf("failed to close %s: %w", path, err)
	}
	return h, nil
}

// Encode writes sig as 16 bit mono PCM. Samples are clamped to [-1, 1].
func Encode(w io.WriteSeeker, sig signal.Signal) (Header, error) {
	if sig.SampleRate <= 0 {
		return Header{}, fmt.Errorf("sample rate must be positive, got %d", sig.SampleRate)
	}

	data := make([]int, len(sig.Samples))
	for i, v := range sig.Samples {
		data[i] = int(misc.Float64ToPCM16(v))
	}

	enc := wav.NewEncoder(w, sig.SampleRate, BitsPerSample, NumChannels, formatPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: NumChannels, SampleRate: sig.SampleRate},
		Data:           data,
		SourceBitDepth: BitsPerSample,
	}
	if err := enc.Write(buf); err != nil {
		return Header{}, err
	}
	if err := enc.Close(); err != nil {
		return Header{}, err
	}

	return Header{
		SampleRate:    sig.SampleRate,
		BitsPerSample: BitsPerSample,
		NumChannels:   NumChannels,
		DataSize:      len(data) * BitsPerSample / 8,
	}, nil
}

// Read loads the file at path. Samples are normalized by dividing by 32768.
func Read(path string) (Header, signal.Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return Header{}, signal.Signal{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	h, sig, err := Decode(f)
	if err != nil {
		return Header{}, signal.Signal{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return h, sig, nil
}

func Decode(r io.ReadSeeker) (Header, signal.Signal, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return Header{}, signal.Signal{}, ErrInvalidFile
	}

	h := Header{
		SampleRate:    int(dec.SampleRate),
		BitsPerSample: int(dec.BitDepth),
		NumChannels:   int(dec.NumChans),
	}
	switch {
	case dec.WavAudioFormat != formatPCM:
		return h, signal.Signal{}, fmt.Errorf("%w: format %d", ErrNotPCM, dec.WavAudioFormat)
	case h.NumChannels != NumChannels:
		return h, signal.Signal{}, fmt.Errorf("%w: %d channels", ErrNotMono, h.NumChannels)
	case h.BitsPerSample != BitsPerSample:
		return h, signal.Signal{}, fmt.Errorf("%w: %d bits", ErrBitDepth, h.BitsPerSample)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return h, signal.Signal{}, err
	}
	h.DataSize = dec.PCMSize

	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = misc.PCM16ToFloat64(int16(v))
	}
	return h, signal.New(samples, h.SampleRate, h.BitsPerSample), nil
}
