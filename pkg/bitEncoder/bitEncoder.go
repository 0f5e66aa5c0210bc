package bitEncoder

import (
	"fmt"

	"github.com/8ff/ookwav/pkg/bitManipulation"
	"github.com/8ff/ookwav/pkg/misc"
	"golang.org/x/text/encoding"
)

// Encode maps text to the preamble followed by 8 symbols per character, MSB first
func Encode(text string) (bitManipulation.BitSequence, error) {
	return EncodeCharset(text, misc.DefaultCharset)
}

// EncodeCharset is Encode with a named single byte charset.
// Characters the charset cannot represent are sent as its substitution byte.
func EncodeCharset(text, charset string) (bitManipulation.BitSequence, error) {
	cs, err := misc.Charset(charset)
	if err != nil {
		return nil, err
	}
	data, err := encoding.ReplaceUnsupported(cs.NewEncoder()).Bytes([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("encoding text as %s: %w", charset, err)
	}
	return EncodeBytes(data), nil
}

func EncodeBytes(data []byte) bitManipulation.BitSequence {
	bits := make(bitManipulation.BitSequence, bitManipulation.PreambleLength+8*len(data))
	copy(bits, bitManipulation.Preamble)
	for i, b := range data {
		for j := 0; j < 8; j++ {
			bits[bitManipulation.PreambleLength+i*8+j] = int(b>>(7-j)) & 1
		}
	}
	return bits
}
