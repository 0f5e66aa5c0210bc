package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/8ff/ookwav/pkg/misc"
	"github.com/8ff/ookwav/pkg/signal"
	"github.com/gen2brain/malgo"
)

func GetDefaultPlaybackDevice() (*malgo.DeviceInfo, error) {
	playbackDevices, _, err := GetAudioDevices()
	if err != nil {
		return nil, err
	}

	if len(playbackDevices) == 0 {
		return nil, fmt.Errorf("no playback devices found")
	}

	return &playbackDevices[0], nil
}

func GetDefaultCaptureDevice() (*malgo.DeviceInfo, error) {
	_, captureDevices, err := GetAudioDevices()
	if err != nil {
		return nil, err
	}

	if len(captureDevices) == 0 {
		return nil, fmt.Errorf("no capture devices found")
	}

	return &captureDevices[0], nil
}

// GetAudioDevices returns a list of all playback and capture devices.
func GetAudioDevices() ([]malgo.DeviceInfo, []malgo.DeviceInfo, error) {
	var playbackDevices []malgo.DeviceInfo
	var captureDevices []malgo.DeviceInfo

	context, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return playbackDevices, captureDevices, err
	}
	defer func() {
		_ = context.Uninit()
		context.Free()
	}()

	playbackDevices, err = context.Devices(malgo.Playback)
	if err != nil {
		return playbackDevices, captureDevices, err
	}

	captureDevices, err = context.Devices(malgo.Capture)
	if err != nil {
		return playbackDevices, captureDevices, err
	}

	return playbackDevices, captureDevices, nil
}

// DeviceFromHash looks up a device by the md5 of its ID, as printed by PrettyPrintDevices
func DeviceFromHash(deviceHash string) (*malgo.DeviceInfo, error) {
	if deviceHash == "" {
		return nil, fmt.Errorf("device hash is empty")
	}

	playbackDevices, captureDevices, err := GetAudioDevices()
	if err != nil {
		return nil, err
	}

	for _, device := range append(playbackDevices, captureDevices...) {
		if misc.Md5HashString(device.ID.String()) == deviceHash {
			return &device, nil
		}
	}

	return nil, fmt.Errorf("device with hash %s not found", deviceHash)
}

// PlaybackDevice resolves "default" or a device hash
func PlaybackDevice(hash string) (*malgo.DeviceInfo, error) {
	if hash == "" || hash == "default" {
		return GetDefaultPlaybackDevice()
	}
	return DeviceFromHash(hash)
}

// CaptureDevice resolves "default" or a device hash
func CaptureDevice(hash string) (*malgo.DeviceInfo, error) {
	if hash == "" || hash == "default" {
		return GetDefaultCaptureDevice()
	}
	return DeviceFromHash(hash)
}

func PrettyPrintDevices(w io.Writer) error {
	playbackDevices, captureDevices, err := GetAudioDevices()
	if err != nil {
		return fmt.Errorf("error getting audio devices: %w", err)
	}

	fmt.Fprintln(w, "\x1b[32m**** Playback devices ****\x1b[0m")
	for _, device := range playbackDevices {
		fmt.Fprintf(w, "ID: \x1b[32m%s\x1b[0m - Name: \x1b[32m%s\x1b[0m\n", misc.Md5HashString(device.ID.String()), device.Name())
	}

	fmt.Fprintln(w, "\n\x1b[31m**** Capture devices ****\x1b[0m")
	for _, device := range captureDevices {
		fmt.Fprintf(w, "ID: \x1b[31m%s\x1b[0m - Name: \x1b[31m%s\x1b[0m\n", misc.Md5HashString(device.ID.String()), device.Name())
	}
	return nil
}

// SignalToS16LE quantizes sig the same way the WAV writer does
func SignalToS16LE(sig signal.Signal) []byte {
	out := make([]byte, 2*len(sig.Samples))
	for i, s := range sig.Samples {
		binary.LittleEndian.PutUint16(out[2*i:], uint16(misc.Float64ToPCM16(s)))
	}
	return out
}

// S16LEToSignal drops a trailing odd byte
func S16LEToSignal(data []byte, sampleRate int) signal.Signal {
	samples := make([]float64, len(data)/2)
	for i := range samples {
		samples[i] = misc.PCM16ToFloat64(int16(binary.LittleEndian.Uint16(data[2*i:])))
	}
	return signal.New(samples, sampleRate, 16)
}

// PlaySignal blocks until sig has been handed to the device. A nil device plays on the system default.
func PlaySignal(device *malgo.DeviceInfo, sig signal.Signal) error {
	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	if device != nil {
		deviceConfig.Playback.DeviceID = device.ID.Pointer()
	}
	deviceConfig.Playback.Format = malgo.FormatS16
	deviceConfig.Playback.Channels = 1
	deviceConfig.SampleRate = uint32(sig.SampleRate)
	deviceConfig.Alsa.NoMMap = 1

	return PlayWave(deviceConfig, SignalToS16LE(sig))
}

func PlayWave(deviceConfig malgo.DeviceConfig, buffer []byte) error {
	toneBuffer := bytes.NewBuffer(buffer)
	total := int64(len(buffer))

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {})
	if err != nil {
		return err
	}
	defer func() {
		_ = ctx.Uninit()
		ctx.Free()
	}()

	samplesConsumed := int64(0)
	playbackDone := make(chan struct{})
	var once sync.Once

	// Called by the device whenever it wants more data
	onSamples := func(pOutputSample, pInputSamples []byte, framecount uint32) {
		n := copy(pOutputSample, toneBuffer.Next(len(pOutputSample)))
		clear(pOutputSample[n:])
		samplesConsumed += int64(len(pOutputSample))
		if samplesConsumed >= total {
			once.Do(func() { close(playbackDone) })
		}
	}

	device, err := malgo.InitDevice(ctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onSamples})
	if err != nil {
		return err
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return err
	}

	<-playbackDone
	misc.Log("debug", fmt.Sprintf("Playback done, %d bytes consumed", total))
	return nil
}

// Record captures duration of mono S16 audio. It returns what was captured so far when ctx is cancelled.
func Record(ctx context.Context, device *malgo.DeviceInfo, sampleRate int, duration time.Duration) (signal.Signal, error) {
	if sampleRate <= 0 {
		return signal.Signal{}, fmt.Errorf("sample rate must be positive, got %d", sampleRate)
	}
	want := 2 * int(float64(sampleRate)*duration.Seconds())
	if want <= 0 {
		return signal.Signal{}, fmt.Errorf("recording of %s holds no samples", duration)
	}

	mctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, func(message string) {})
	if err != nil {
		return signal.Signal{}, err
	}
	defer func() {
		_ = mctx.Uninit()
		mctx.Free()
	}()

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Capture)
	if device != nil {
		deviceConfig.Capture.DeviceID = device.ID.Pointer()
	}
	deviceConfig.Capture.Format = malgo.FormatS16
	deviceConfig.Capture.Channels = 1
	deviceConfig.SampleRate = uint32(sampleRate)
	deviceConfig.Alsa.NoMMap = 1

	var mu sync.Mutex
	var buffer bytes.Buffer
	buffer.Grow(want)
	full := make(chan struct{})
	var once sync.Once

	onRecvFrames := func(pOutputSample, pInputSamples []byte, framecount uint32) {
		mu.Lock()
		defer mu.Unlock()
		if room := want - buffer.Len(); room > 0 {
			buffer.Write(pInputSamples[:min(room, len(pInputSamples))])
		}
		if buffer.Len() >= want {
			once.Do(func() { close(full) })
		}
	}

	misc.Log("info", ">> [Recording...]")
	dev, err := malgo.InitDevice(mctx.Context, deviceConfig, malgo.DeviceCallbacks{Data: onRecvFrames})
	if err != nil {
		return signal.Signal{}, fmt.Errorf("failed to initialize capture device: %w", err)
	}
	defer dev.Uninit()

	if err := dev.Start(); err != nil {
		return signal.Signal{}, err
	}

	select {
	case <-full:
	case <-ctx.Done():
		misc.Log("warn", "Recording interrupted")
	}
	_ = dev.Stop()

	mu.Lock()
	defer mu.Unlock()
	return S16LEToSignal(buffer.Bytes(), sampleRate), nil
}
