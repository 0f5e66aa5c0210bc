package chart

/*
Charts a window of a signal so it can be inspected in a browser.
Frames are pushed to every connected client over a websocket.
*/

import (
	"encoding/json"
	"fmt"

	"github.com/8ff/ookwav/pkg/signal"
)

// MaxPoints caps the number of points sent per chart
const MaxPoints = 2000

type Mode string

const (
	Line  Mode = "line"
	Point Mode = "point"
)

func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case Line, Point:
		return Mode(s), nil
	}
	return "", fmt.Errorf("unknown chart mode %q", s)
}

type Chart struct {
	Title  string       `json:"title"`
	Mode   Mode         `json:"mode"`
	Start  int          `json:"start"`
	Stop   int          `json:"stop"`
	Points [][2]float64 `json:"points"`
}

// Frame charts sig over sample indices [start, stop). The range is clamped to the signal.
func Frame(sig signal.Signal, start, stop int, mode Mode, title string) (Chart, error) {
	if _, err := ParseMode(string(mode)); err != nil {
		return Chart{}, err
	}

	start = max(start, 0)
	stop = min(stop, sig.Len())
	if start >= stop {
		return Chart{}, fmt.Errorf("empty chart range [%d, %d) for %d samples", start, stop, sig.Len())
	}

	step := (stop - start + MaxPoints - 1) / MaxPoints
	points := make([][2]float64, 0, (stop-start)/step+1)
	for i := start; i < stop; i += step {
		points = append(points, [2]float64{float64(i), sig.Samples[i]})
	}

	return Chart{Title: title, Mode: mode, Start: start, Stop: stop, Points: points}, nil
}

func (c Chart) JSON() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("error marshalling chart: %w", err)
	}
	return data, nil
}
