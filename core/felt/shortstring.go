package felt

import (
	"errors"
	"fmt"
)

// ErrInvalidASCII is returned when a short string violates the length or
// byte-range constraints of the Cairo short-string encoding.
var ErrInvalidASCII = errors.New("invalid ascii short string")

// MaxShortStringLength is the number of ASCII bytes that fit in one felt.
const MaxShortStringLength = 31

// EncodeShortString packs up to 31 ASCII bytes big-endian into a felt, byte
// zero most significant. NUL bytes and bytes above 0x7f are rejected.
func EncodeShortString(s string) (*Felt, error) {
	if len(s) > MaxShortStringLength {
		return nil, fmt.Errorf("%w: %d bytes exceed the %d byte limit", ErrInvalidASCII, len(s), MaxShortStringLength)
	}
	for i := 0; i < len(s); i++ {
		if s[i] == 0 || s[i] > 0x7f {
			return nil, fmt.Errorf("%w: byte %#x at index %d", ErrInvalidASCII, s[i], i)
		}
	}
	return new(Felt).SetBytes([]byte(s)), nil
}

// DecodeShortString is the inverse of EncodeShortString: the big-endian
// 32-byte form of f with leading zero bytes stripped, read as ASCII. Any
// remaining zero byte or byte above 0x7f fails with ErrInvalidASCII.
func DecodeShortString(f *Felt) (string, error) {
	full := f.Bytes()
	b := full[:]
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	if len(b) > MaxShortStringLength {
		return "", fmt.Errorf("%w: value needs %d bytes", ErrInvalidASCII, len(b))
	}
	for i, c := range b {
		if c == 0 || c > 0x7f {
			return "", fmt.Errorf("%w: byte %#x at index %d", ErrInvalidASCII, c, i)
		}
	}
	return string(b), nil
}
