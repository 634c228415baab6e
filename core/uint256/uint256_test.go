package uint256_test

import (
	"strings"
	"testing"

	"github.com/NethermindEth/probe/core/felt"
	"github.com/NethermindEth/probe/core/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		description string
		input       string
		high, low   string
	}{
		{
			description: "zero",
			input:       "0x0",
			high:        "0x0",
			low:         "0x0",
		},
		{
			description: "fits in low half",
			input:       "0x123456789abcdef",
			high:        "0x0",
			low:         "0x123456789abcdef",
		},
		{
			description: "exactly 2^128",
			input:       "0x100000000000000000000000000000000",
			high:        "0x1",
			low:         "0x0",
		},
		{
			description: "full 256 bits",
			input:       "0x1a4b7e9c2d3f5a6ef0d3b8a289c7e5b30123456789abcdef0123456789abcdef",
			high:        "0x1a4b7e9c2d3f5a6ef0d3b8a289c7e5b3",
			low:         "0x123456789abcdef0123456789abcdef",
		},
		{
			description: "max value",
			input:       strings.Repeat("f", 64),
			high:        "0xffffffffffffffffffffffffffffffff",
			low:         "0xffffffffffffffffffffffffffffffff",
		},
		{
			description: "no prefix",
			input:       "beef",
			high:        "0x0",
			low:         "0xbeef",
		},
	}
	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			high, low, err := uint256.Split(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.high, high.String())
			assert.Equal(t, tt.low, low.String())
		})
	}
}

func TestSplitErrors(t *testing.T) {
	t.Run("65 hex digits", func(t *testing.T) {
		_, _, err := uint256.Split("0x" + strings.Repeat("f", 65))
		assert.ErrorIs(t, err, felt.ErrOutOfRange)
	})
	t.Run("non hex characters", func(t *testing.T) {
		_, _, err := uint256.Split("0xnothex")
		assert.ErrorIs(t, err, felt.ErrInvalidFormat)
	})
}

func TestJoin(t *testing.T) {
	high, err := felt.ParseHex("0x1a4b7e9c2d3f5a6ef0d3b8a289c7e5b3")
	require.NoError(t, err)
	low, err := felt.ParseHex("0x123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	joined, err := uint256.Join(low, high)
	require.NoError(t, err)
	assert.Equal(t, "0x1a4b7e9c2d3f5a6ef0d3b8a289c7e5b30123456789abcdef0123456789abcdef", joined)
}

func TestJoinRejectsWideHalves(t *testing.T) {
	wide, err := felt.ParseHex("0x100000000000000000000000000000000") // 2^128
	require.NoError(t, err)

	_, err = uint256.Join(wide, &felt.Zero)
	assert.ErrorIs(t, err, felt.ErrOutOfRange)

	_, err = uint256.Join(&felt.Zero, wide)
	assert.ErrorIs(t, err, felt.ErrOutOfRange)
}

func TestSplitJoinRoundTrip(t *testing.T) {
	values := []string{
		"0x0",
		"0x1",
		"0xffffffffffffffffffffffffffffffff",
		"0x100000000000000000000000000000000",
		"0x" + strings.Repeat("f", 64),
		"0xdeadbeef00000000000000000000000000000000000000000000000000001234",
	}
	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			high, low, err := uint256.Split(v)
			require.NoError(t, err)

			joined, err := uint256.Join(low, high)
			require.NoError(t, err)
			assert.Equal(t, v, joined)
		})
	}
}
