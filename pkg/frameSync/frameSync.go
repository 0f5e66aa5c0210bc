package frameSync

import (
	"fmt"
	"strings"

	"github.com/8ff/ookwav/pkg/bitManipulation"
)

// Bound selects how far the preamble scan goes
type Bound int

const (
	// Inclusive tries every window, including the one ending on the last symbol
	Inclusive Bound = iota
	// Exclusive never tries the window ending on the last symbol
	Exclusive
)

func (b Bound) String() string {
	switch b {
	case Inclusive:
		return "inclusive"
	case Exclusive:
		return "exclusive"
	}
	return fmt.Sprintf("Bound(%d)", int(b))
}

func ParseBound(s string) (Bound, error) {
	switch strings.ToLower(s) {
	case "", "inclusive":
		return Inclusive, nil
	case "exclusive":
		return Exclusive, nil
	}
	return Inclusive, fmt.Errorf("unknown sync scan bound %q", s)
}

// FindPreamble returns the index right after the first exact preamble match.
// found is false when no window matches.
func FindPreamble(bits bitManipulation.BitSequence, bound Bound) (payloadStart int, found bool) {
	last := len(bits) - bitManipulation.PreambleLength
	if bound == Exclusive {
		last--
	}
	for i := 0; i <= last; i++ {
		if bits.HasPrefixAt(i, bitManipulation.Preamble) {
			return i + bitManipulation.PreambleLength, true
		}
	}
	return 0, false
}
