// Package core implements Starknet address derivations on top of the felt
// and crypto primitives.
package core

import (
	"math/big"

	"github.com/NethermindEth/probe/core/crypto"
	"github.com/NethermindEth/probe/core/felt"
)

// addressBound is 2^251 - 256: both contract addresses and storage
// addresses live below it.
var addressBound = new(big.Int).Sub(
	new(big.Int).Lsh(big.NewInt(1), 251),
	big.NewInt(256),
)

// ContractAddress computes the address of a Starknet contract.
func ContractAddress(callerAddress, classHash, salt *felt.Felt, constructorCallData []*felt.Felt) *felt.Felt {
	prefix := new(felt.Felt).SetBytes([]byte("STARKNET_CONTRACT_ADDRESS"))
	callDataHash := crypto.PedersenArray(constructorCallData...)

	// https://docs.starknet.io/documentation/architecture_and_concepts/Contracts/contract-address
	address := crypto.PedersenArray(
		prefix,
		callerAddress,
		salt,
		classHash,
		callDataHash,
	)
	return normalizeAddress(address)
}

// StorageVarAddress computes the storage address of a named contract
// variable: the selector of the name folded with the Pedersen hash over the
// keys, normalized into the address domain.
func StorageVarAddress(name string, keys ...*felt.Felt) (*felt.Felt, error) {
	address, err := crypto.Selector(name)
	if err != nil {
		return nil, err
	}
	for _, key := range keys {
		address = crypto.Pedersen(address, key)
	}
	return normalizeAddress(address), nil
}

func normalizeAddress(f *felt.Felt) *felt.Felt {
	v := f.BigInt(new(big.Int))
	return new(felt.Felt).SetBigInt(v.Mod(v, addressBound))
}
