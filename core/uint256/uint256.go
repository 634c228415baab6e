// Package uint256 splits and rejoins 256-bit unsigned integers across a
// (high, low) pair of felts, the representation Starknet contracts use for
// Uint256 values.
package uint256

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"

	"github.com/NethermindEth/probe/core/felt"
)

const (
	hexDigits = 64 // 32 bytes
	halfBytes = 16 // 128 bits per felt
)

// Split decodes a hex string of at most 64 digits (optional 0x prefix) as a
// big-endian 256-bit integer and partitions it into its 128-bit halves,
// value = high*2^128 + low.
func Split(s string) (high, low *felt.Felt, err error) {
	digits := strings.TrimPrefix(s, "0x")
	if len(digits) > hexDigits {
		return nil, nil, fmt.Errorf("%w: %d hex digits exceed 256 bits", felt.ErrOutOfRange, len(digits))
	}

	padded := strings.Repeat("0", hexDigits-len(digits)) + digits
	raw, err := hex.DecodeString(padded)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %q is not a hex digit string", felt.ErrInvalidFormat, s)
	}

	high = new(felt.Felt).SetBytes(raw[:halfBytes])
	low = new(felt.Felt).SetBytes(raw[halfBytes:])
	return high, low, nil
}

// Join reconstructs high*2^128 + low as a canonical 0x hex string. Both
// halves must individually fit in 128 bits.
func Join(low, high *felt.Felt) (string, error) {
	lo := low.BigInt(new(big.Int))
	hi := high.BigInt(new(big.Int))
	if lo.BitLen() > 8*halfBytes {
		return "", fmt.Errorf("%w: low half exceeds 128 bits", felt.ErrOutOfRange)
	}
	if hi.BitLen() > 8*halfBytes {
		return "", fmt.Errorf("%w: high half exceeds 128 bits", felt.ErrOutOfRange)
	}

	v := hi.Lsh(hi, 8*halfBytes)
	v.Or(v, lo)
	return "0x" + v.Text(16), nil
}
