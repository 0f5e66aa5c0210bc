package byteDecoder

import (
	"fmt"

	"github.com/8ff/ookwav/pkg/bitManipulation"
	"github.com/8ff/ookwav/pkg/misc"
)

// DecodeBytes packs groups of 8 symbols from payloadStart into bytes, first symbol as MSB.
// A trailing group shorter than 8 symbols is dropped.
func DecodeBytes(bits bitManipulation.BitSequence, payloadStart int) []byte {
	if payloadStart < 0 || payloadStart > len(bits) {
		return []byte{}
	}

	numChars := (len(bits) - payloadStart) / 8
	out := make([]byte, numChars)
	for i := 0; i < numChars; i++ {
		var v byte
		for _, bit := range bits[payloadStart+i*8 : payloadStart+i*8+8] {
			v = v<<1 | byte(bit&1)
		}
		out[i] = v
	}
	return out
}

// Decode returns the characters carried from payloadStart on
func Decode(bits bitManipulation.BitSequence, payloadStart int) (string, error) {
	return DecodeCharset(bits, payloadStart, misc.DefaultCharset)
}

func DecodeCharset(bits bitManipulation.BitSequence, payloadStart int, charset string) (string, error) {
	cs, err := misc.Charset(charset)
	if err != nil {
		return "", err
	}
	text, err := cs.NewDecoder().Bytes(DecodeBytes(bits, payloadStart))
	if err != nil {
		return "", fmt.Errorf("decoding %s text: %w", charset, err)
	}
	return string(text), nil
}
