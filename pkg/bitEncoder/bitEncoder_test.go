package bitEncoder_test

import (
	"testing"

	"github.com/8ff/ookwav/pkg/bitEncoder"
	"github.com/8ff/ookwav/pkg/bitManipulation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeSingleChar(t *testing.T) {
	bits, err := bitEncoder.Encode("A")
	require.NoError(t, err)
	assert.Equal(t, "1010101001000001", bits.String())
}

func TestEncodeEmpty(t *testing.T) {
	bits, err := bitEncoder.Encode("")
	require.NoError(t, err)
	assert.True(t, bitManipulation.Equal(bitManipulation.Preamble, bits), "got %s", bits)
}

func TestEncodeLatin1(t *testing.T) {
	bits, err := bitEncoder.Encode("é")
	require.NoError(t, err)
	// U+00E9 is sent as the single byte 0xE9
	assert.Equal(t, "10101010"+"11101001", bits.String())
}

func TestEncodeUnsupportedRune(t *testing.T) {
	bits, err := bitEncoder.Encode("€")
	require.NoError(t, err)
	assert.Equal(t, "10101010"+"00011010", bits.String())

	bits, err = bitEncoder.EncodeCharset("€", "windows-1252")
	require.NoError(t, err)
	assert.Equal(t, "10101010"+"10000000", bits.String())
}

func TestEncodeUnknownCharset(t *testing.T) {
	_, err := bitEncoder.EncodeCharset("hi", "ebcdic")
	assert.Error(t, err)
}

func TestEncodeBytesLength(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOf(rapid.Byte()).Draw(t, "data")
		bits := bitEncoder.EncodeBytes(data)

		assert.Len(t, bits, 8+8*len(data))
		assert.True(t, bits.HasPrefixAt(0, bitManipulation.Preamble))
		for i, b := range data {
			var v byte
			for j := 0; j < 8; j++ {
				v = v<<1 | byte(bits[8+i*8+j])
			}
			assert.Equal(t, b, v)
		}
	})
}
