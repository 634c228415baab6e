// Package probe implements the query layer behind the chain inspection
// commands, translating between CLI-friendly values and the JSON-RPC client.
package probe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/NethermindEth/probe/core/crypto"
	"github.com/NethermindEth/probe/core/felt"
	"github.com/NethermindEth/probe/core/uint256"
	"github.com/NethermindEth/probe/rpc"
	"github.com/NethermindEth/probe/utils"
)

// EthToken is the address of the chain-wide ETH ERC-20, the fee token on
// every public Starknet network. Balance queries go through it.
var EthToken, _ = felt.Parse("0x049d36570d4e46f48e99674bd3fcc84644ddd6b96f7c741b1562b82f9e004dc7")

type Probe struct {
	client *rpc.Client
	log    utils.SimpleLogger
}

func New(client *rpc.Client, log utils.SimpleLogger) *Probe {
	return &Probe{client: client, log: log}
}

func (p *Probe) BlockNumber(ctx context.Context) (uint64, error) {
	return p.client.BlockNumber(ctx)
}

// ChainID returns the chain identifier decoded to its short-string form,
// e.g. "SN_MAIN".
func (p *Probe) ChainID(ctx context.Context) (string, error) {
	id, err := p.client.ChainID(ctx)
	if err != nil {
		return "", err
	}
	return felt.DecodeShortString(id)
}

// Block fetches a block and renders it. A non-empty field projects a single
// top-level field; otherwise the whole block is rendered as a table or, with
// asJSON, as indented JSON. Unless full is set the transaction list is
// dropped from the output.
func (p *Probe) Block(ctx context.Context, blockID rpc.BlockID, full bool, field string, asJSON bool) (string, error) {
	raw, err := p.client.BlockWithTxs(ctx, blockID)
	if err != nil {
		return "", err
	}
	if field != "" {
		return projectField(raw, field)
	}
	if !full {
		if raw, err = dropField(raw, "transactions"); err != nil {
			return "", err
		}
	}
	if asJSON {
		return indentJSON(raw)
	}
	return renderTable(raw)
}

// BlockTime returns the timestamp of a block.
func (p *Probe) BlockTime(ctx context.Context, blockID rpc.BlockID) (time.Time, error) {
	raw, err := p.client.BlockWithTxs(ctx, blockID)
	if err != nil {
		return time.Time{}, err
	}
	var block struct {
		Timestamp uint64 `json:"timestamp"`
	}
	if err := json.Unmarshal(raw, &block); err != nil {
		return time.Time{}, err
	}
	return time.Unix(int64(block.Timestamp), 0).UTC(), nil
}

func (p *Probe) BlockTransactionCount(ctx context.Context, blockID rpc.BlockID) (uint64, error) {
	return p.client.BlockTransactionCount(ctx, blockID)
}

func (p *Probe) Transaction(ctx context.Context, hash *felt.Felt, field string) (string, error) {
	raw, err := p.client.TransactionByHash(ctx, hash)
	if err != nil {
		return "", err
	}
	if field != "" {
		return projectField(raw, field)
	}
	return indentJSON(raw)
}

func (p *Probe) Receipt(ctx context.Context, hash *felt.Felt, field string) (string, error) {
	raw, err := p.client.TransactionReceipt(ctx, hash)
	if err != nil {
		return "", err
	}
	if field != "" {
		return projectField(raw, field)
	}
	return indentJSON(raw)
}

// Nonce returns the contract nonce in canonical hex.
func (p *Probe) Nonce(ctx context.Context, blockID rpc.BlockID, contract *felt.Felt) (string, error) {
	nonce, err := p.client.Nonce(ctx, blockID, contract)
	if err != nil {
		return "", err
	}
	return nonce.String(), nil
}

// StorageAt returns the value of a storage slot in canonical hex.
func (p *Probe) StorageAt(ctx context.Context, contract, key *felt.Felt, blockID rpc.BlockID) (string, error) {
	value, err := p.client.StorageAt(ctx, contract, key, blockID)
	if err != nil {
		return "", err
	}
	return value.String(), nil
}

// CallFunc calls a read-only entry point and returns the result felts as
// space-joined hex. The entry point may be given as a name or a 0x selector.
func (p *Probe) CallFunc(ctx context.Context, contract *felt.Felt, entrypoint string, calldata []*felt.Felt, blockID rpc.BlockID) (string, error) {
	selector, err := resolveEntrypoint(entrypoint)
	if err != nil {
		return "", err
	}
	result, err := p.client.Call(ctx, rpc.FunctionCall{
		ContractAddress:    contract,
		EntryPointSelector: selector,
		Calldata:           calldata,
	}, blockID)
	if err != nil {
		return "", err
	}
	out := make([]string, len(result))
	for i, f := range result {
		out[i] = f.String()
	}
	return strings.Join(out, " "), nil
}

// Balance queries the ETH ERC-20 for an address and joins the (low, high)
// u256 result into a single hex amount.
func (p *Probe) Balance(ctx context.Context, address *felt.Felt, blockID rpc.BlockID) (string, error) {
	selector, err := crypto.Selector("balanceOf")
	if err != nil {
		return "", err
	}
	result, err := p.client.Call(ctx, rpc.FunctionCall{
		ContractAddress:    EthToken,
		EntryPointSelector: selector,
		Calldata:           []*felt.Felt{address},
	}, blockID)
	if err != nil {
		return "", err
	}
	if len(result) != 2 {
		return "", fmt.Errorf("balanceOf returned %d felts, expected a u256 pair", len(result))
	}
	return uint256.Join(result[0], result[1])
}

func (p *Probe) Events(ctx context.Context, filter rpc.EventFilter) (string, error) {
	raw, err := p.client.Events(ctx, filter)
	if err != nil {
		return "", err
	}
	return indentJSON(raw)
}

func (p *Probe) StateUpdate(ctx context.Context, blockID rpc.BlockID) (string, error) {
	raw, err := p.client.StateUpdate(ctx, blockID)
	if err != nil {
		return "", err
	}
	return indentJSON(raw)
}

// Class returns the class definition for a class hash.
func (p *Probe) Class(ctx context.Context, blockID rpc.BlockID, classHash *felt.Felt) (string, error) {
	raw, err := p.client.Class(ctx, blockID, classHash)
	if err != nil {
		return "", err
	}
	return indentJSON(raw)
}

// ContractClass returns the class definition deployed at a contract address.
func (p *Probe) ContractClass(ctx context.Context, blockID rpc.BlockID, contract *felt.Felt) (string, error) {
	raw, err := p.client.ClassAt(ctx, blockID, contract)
	if err != nil {
		return "", err
	}
	return indentJSON(raw)
}

// ClassHash returns the hash of the class deployed at a contract address.
func (p *Probe) ClassHash(ctx context.Context, blockID rpc.BlockID, contract *felt.Felt) (string, error) {
	hash, err := p.client.ClassHashAt(ctx, blockID, contract)
	if err != nil {
		return "", err
	}
	return hash.String(), nil
}

func resolveEntrypoint(entrypoint string) (*felt.Felt, error) {
	if strings.HasPrefix(entrypoint, "0x") || strings.HasPrefix(entrypoint, "0X") {
		return felt.ParseHex(entrypoint)
	}
	return crypto.Selector(entrypoint)
}
