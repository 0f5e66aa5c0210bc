package bitManipulation

import (
	"fmt"
	"strings"
)

// PreambleLength is the number of symbols in the sync sequence.
const PreambleLength = 8

// Preamble is sent before every payload so the receiver can find where it starts
var Preamble = BitSequence{1, 0, 1, 0, 1, 0, 1, 0}

// BitSequence holds binary symbols in transmission order
type BitSequence []int

// Function that converts string of 1/0s to a BitSequence
func Parse(s string) (BitSequence, error) {
	a := make(BitSequence, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
			a[i] = 0
		case '1':
			a[i] = 1
		default:
			return nil, fmt.Errorf("invalid symbol %q at position %d", s[i], i)
		}
	}
	return a, nil
}

// Function that converts a BitSequence to string of 1/0s
func (b BitSequence) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); i++ {
		if b[i] == 0 {
			sb.WriteByte('0')
		} else {
			sb.WriteByte('1')
		}
	}
	return sb.String()
}

// HasPrefixAt reports whether p occurs in b starting at index i
func (b BitSequence) HasPrefixAt(i int, p BitSequence) bool {
	if i < 0 || i+len(p) > len(b) {
		return false
	}
	for j := range p {
		if b[i+j] != p[j] {
			return false
		}
	}
	return true
}

func Equal(a, b BitSequence) bool {
	if len(a) != len(b) {
		return false
	}
	return a.HasPrefixAt(0, b)
}

// Clone returns a copy that does not share storage with b
func (b BitSequence) Clone() BitSequence {
	c := make(BitSequence, len(b))
	copy(c, b)
	return c
}
