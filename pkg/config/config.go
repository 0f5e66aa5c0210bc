package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/8ff/ookwav/pkg/envelope"
	"github.com/8ff/ookwav/pkg/frameSync"
	"github.com/8ff/ookwav/pkg/misc"
	"github.com/8ff/ookwav/pkg/modem"
	"github.com/8ff/ookwav/pkg/ookGenerator"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is shared by the transmit and receive commands.
// Precedence, lowest first: defaults, YAML file, .env file, OOK_* environment, flags.
type Config struct {
	SampleRate  int     `yaml:"sample_rate"`
	CarrierFreq float64 `yaml:"carrier_freq"`
	BaudRate    int     `yaml:"baud_rate"`
	BitDepth    int     `yaml:"bit_depth"`

	FilterWindow int     `yaml:"filter_window"`
	Threshold    float64 `yaml:"threshold"`
	SyncScan     string  `yaml:"sync_scan"`
	Charset      string  `yaml:"charset"`

	OutputPath     string `yaml:"output_path"`
	PlaybackDevice string `yaml:"playback_device"`
	CaptureDevice  string `yaml:"capture_device"`
	PlotAddr       string `yaml:"plot_addr"`
	PTTAddr        string `yaml:"ptt_addr"` // rigctld host:port, empty disables keying
	LogLevel       string `yaml:"log_level"`
}

func Default() Config {
	p := ookGenerator.DefaultParams()
	rx := modem.DefaultRxParams()
	return Config{
		SampleRate:     p.SampleRate,
		CarrierFreq:    p.CarrierFreq,
		BaudRate:       p.BaudRate,
		BitDepth:       p.BitDepth,
		FilterWindow:   rx.FilterWindow,
		Threshold:      rx.Threshold,
		SyncScan:       rx.Bound.String(),
		Charset:        misc.DefaultCharset,
		OutputPath:     "ook_message.wav",
		PlaybackDevice: "default",
		CaptureDevice:  "default",
		PlotAddr:       "127.0.0.1:3000",
		LogLevel:       "info",
	}
}

// Load builds a Config from the defaults, then yamlPath and envPath when they are not empty, then the environment
func Load(yamlPath, envPath string) (Config, error) {
	conf := Default()

	if yamlPath != "" {
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			return conf, fmt.Errorf("failed to read config %s: %w", yamlPath, err)
		}
		if err := yaml.Unmarshal(data, &conf); err != nil {
			return conf, fmt.Errorf("failed to parse config %s: %w", yamlPath, err)
		}
	}

	if envPath != "" {
		// Variables already set in the environment are not overridden
		if err := godotenv.Load(envPath); err != nil {
			return conf, fmt.Errorf("failed to load env file %s: %w", envPath, err)
		}
	}

	if err := conf.parseEnv(); err != nil {
		return conf, err
	}
	return conf, conf.Validate()
}

// parseEnv overrides fields with the OOK_* variables that are set
func (conf *Config) parseEnv() error {
	ints := map[string]*int{
		"OOK_SAMPLE_RATE":   &conf.SampleRate,
		"OOK_BAUD_RATE":     &conf.BaudRate,
		"OOK_BIT_DEPTH":     &conf.BitDepth,
		"OOK_FILTER_WINDOW": &conf.FilterWindow,
	}
	for key, dst := range ints {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", key, err)
		}
		*dst = n
	}

	floats := map[string]*float64{
		"OOK_CARRIER_FREQ": &conf.CarrierFreq,
		"OOK_THRESHOLD":    &conf.Threshold,
	}
	for key, dst := range floats {
		v := os.Getenv(key)
		if v == "" {
			continue
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("error parsing %s: %w", key, err)
		}
		*dst = f
	}

	strs := map[string]*string{
		"OOK_SYNC_SCAN":       &conf.SyncScan,
		"OOK_CHARSET":         &conf.Charset,
		"OOK_OUTPUT":          &conf.OutputPath,
		"OOK_PLAYBACK_DEVICE": &conf.PlaybackDevice,
		"OOK_CAPTURE_DEVICE":  &conf.CaptureDevice,
		"OOK_PLOT_ADDR":       &conf.PlotAddr,
		"OOK_PTT_ADDR":        &conf.PTTAddr,
		"OOK_LOG_LEVEL":       &conf.LogLevel,
	}
	for key, dst := range strs {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	return nil
}

func (conf Config) Validate() error {
	if err := conf.Modulation().Validate(); err != nil {
		return err
	}
	if conf.FilterWindow < 1 {
		return fmt.Errorf("filter window must be at least 1, got %d", conf.FilterWindow)
	}
	if _, err := frameSync.ParseBound(conf.SyncScan); err != nil {
		return err
	}
	if _, err := misc.Charset(conf.Charset); err != nil {
		return err
	}
	return nil
}

func (conf Config) Modulation() ookGenerator.Params {
	return ookGenerator.Params{
		SampleRate:  conf.SampleRate,
		CarrierFreq: conf.CarrierFreq,
		BaudRate:    conf.BaudRate,
		BitDepth:    conf.BitDepth,
	}
}

func (conf Config) TxParams() modem.TxParams {
	return modem.TxParams{Modulation: conf.Modulation(), Charset: conf.Charset}
}

// RxParams assumes Validate has passed
func (conf Config) RxParams() modem.RxParams {
	bound, _ := frameSync.ParseBound(conf.SyncScan)
	return modem.RxParams{
		Modulation:   conf.Modulation(),
		FilterWindow: conf.FilterWindow,
		Threshold:    conf.Threshold,
		Bound:        bound,
		Charset:      conf.Charset,
	}
}

// Print logs every setting at debug level
func (conf Config) Print() {
	misc.Log("debug", "********* Config **********")
	misc.Log("debug", fmt.Sprintf("Sample rate: %d", conf.SampleRate))
	misc.Log("debug", fmt.Sprintf("Carrier frequency: %.1f", conf.CarrierFreq))
	misc.Log("debug", fmt.Sprintf("Baud rate: %d", conf.BaudRate))
	misc.Log("debug", fmt.Sprintf("Bit depth: %d", conf.BitDepth))
	misc.Log("debug", fmt.Sprintf("Filter window: %d (~%.0f Hz)", conf.FilterWindow, envelope.Cutoff(conf.SampleRate, conf.FilterWindow)))
	misc.Log("debug", fmt.Sprintf("Threshold: %.1f", conf.Threshold))
	misc.Log("debug", fmt.Sprintf("Sync scan: %s", conf.SyncScan))
	misc.Log("debug", fmt.Sprintf("Charset: %s", conf.Charset))
	misc.Log("debug", fmt.Sprintf("Output path: %s", conf.OutputPath))
	misc.Log("debug", fmt.Sprintf("Playback device: %s", conf.PlaybackDevice))
	misc.Log("debug", fmt.Sprintf("Capture device: %s", conf.CaptureDevice))
	misc.Log("debug", fmt.Sprintf("Plot addr: %s", conf.PlotAddr))
	misc.Log("debug", fmt.Sprintf("PTT addr: %s", conf.PTTAddr))
}
