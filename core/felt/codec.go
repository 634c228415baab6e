package felt

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/stark-curve/fp"
)

var (
	// ErrInvalidFormat is returned when the input contains characters
	// outside the alphabet of the requested representation.
	ErrInvalidFormat = errors.New("invalid felt format")
	// ErrOutOfRange is returned when the decoded value is not smaller than
	// the field prime.
	ErrOutOfRange = errors.New("felt out of range")
)

// MaxSignedFelt and MinSignedFelt are the bounds of the signed
// interpretation of the field, (P-1)/2 and -(P-1)/2.
const (
	MaxSignedFelt = "1809251394333065606848661391547535052811553607665798349986546028067936010240"
	MinSignedFelt = "-1809251394333065606848661391547535052811553607665798349986546028067936010240"
)

// MaxFelt returns P-1, the largest representable field element.
func MaxFelt() *Felt {
	max := new(big.Int).Sub(fp.Modulus(), big.NewInt(1))
	return new(Felt).SetBigInt(max)
}

// ParseDecimal parses an unsigned base-10 digit string. Any non-digit
// character fails with ErrInvalidFormat, a value >= P with ErrOutOfRange.
func ParseDecimal(s string) (*Felt, error) {
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return nil, fmt.Errorf("%w: %q is not a decimal digit string", ErrInvalidFormat, s)
		}
	}
	return setChecked(s, 10)
}

// ParseHex parses a hex digit string with an optional case-insensitive 0x
// prefix. Any non-hex character fails with ErrInvalidFormat, a value >= P
// with ErrOutOfRange.
func ParseHex(s string) (*Felt, error) {
	digits := s
	if len(digits) >= 2 && (digits[:2] == "0x" || digits[:2] == "0X") {
		digits = digits[2:]
	}
	if digits == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidFormat)
	}
	for i := 0; i < len(digits); i++ {
		if !isHexDigit(digits[i]) {
			return nil, fmt.Errorf("%w: %q is not a hex digit string", ErrInvalidFormat, s)
		}
	}
	return setChecked(digits, 16)
}

// Parse parses a felt literal: hex when 0x-prefixed, otherwise decimal with
// a hex fallback for bare digit strings like "abc1".
func Parse(s string) (*Felt, error) {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return ParseHex(s)
	}
	f, err := ParseDecimal(s)
	if errors.Is(err, ErrInvalidFormat) {
		return ParseHex(s)
	}
	return f, err
}

// setChecked rejects values outside [0, P) before reduction. Element.SetBigInt
// reduces silently, so the range check has to happen on the big.Int.
func setChecked(digits string, base int) (*Felt, error) {
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, digits)
	}
	if v.Cmp(fp.Modulus()) >= 0 {
		return nil, fmt.Errorf("%w: %s is not smaller than the field prime", ErrOutOfRange, digits)
	}
	return new(Felt).SetBigInt(v), nil
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
