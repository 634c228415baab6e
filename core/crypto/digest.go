package crypto

import "github.com/NethermindEth/probe/core/felt"

// Digest is an incremental array-hash accumulator.
type Digest interface {
	Update(...*felt.Felt) Digest
	Finish() *felt.Felt
}
