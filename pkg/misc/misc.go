package misc

import (
	"crypto/md5"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// DefaultCharset maps every byte 0x00-0xFF to the code point of the same value
const DefaultCharset = "latin1"

var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05",
	Level:           log.InfoLevel,
})

// SetLogLevel accepts debug, info, warn or error
func SetLogLevel(level string) error {
	l, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	logger.SetLevel(l)
	return nil
}

// Log writes msg to stderr, stdout is left for command output
func Log(level, msg string) {
	switch level {
	case "info":
		logger.Info(msg)
	case "error":
		logger.Error(msg)
	case "warning", "warn":
		logger.Warn(msg)
	case "debug":
		logger.Debug(msg)
	default:
		logger.Print(msg)
	}
}

// Float64ToPCM16 clamps f to [-1, 1] and scales it to a signed 16 bit sample, truncating toward zero
func Float64ToPCM16(f float64) int16 {
	if f > 1 {
		f = 1
	}
	if f < -1 {
		f = -1
	}
	return int16(f * 32767)
}

// PCM16ToFloat64 normalizes a signed 16 bit sample to [-1, 1)
func PCM16ToFloat64(v int16) float64 {
	return float64(v) / 32768.0
}

// Function which runs md5 hash on input string and returns the string
func Md5HashString(input string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(input)))
}

// Charset returns the single byte character mapping registered under name
func Charset(name string) (encoding.Encoding, error) {
	switch strings.ToLower(name) {
	case "", "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("unsupported charset %q", name)
}
