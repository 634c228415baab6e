package crypto

import (
	"errors"
	"fmt"

	"github.com/NethermindEth/probe/core/felt"
)

var ErrInvalidSelectorName = errors.New("invalid selector name")

// Selector resolves an entry point name to its selector felt, the Starknet
// keccak of the ASCII function name.
func Selector(name string) (*felt.Felt, error) {
	for i := 0; i < len(name); i++ {
		if name[i] > 0x7f {
			return nil, fmt.Errorf("%w: %q is not an ASCII string", ErrInvalidSelectorName, name)
		}
	}
	return StarknetKeccak([]byte(name))
}
