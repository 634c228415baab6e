package rpc

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/NethermindEth/probe/core/felt"
)

// BlockID identifies a block by tag ("latest", "pending"), hash or number.
type BlockID struct {
	Latest  bool
	Pending bool
	Hash    *felt.Felt
	Number  *uint64
}

func LatestBlockID() BlockID {
	return BlockID{Latest: true}
}

func PendingBlockID() BlockID {
	return BlockID{Pending: true}
}

// ParseBlockID parses a block tag, 0x-prefixed block hash or decimal block
// number.
func ParseBlockID(s string) (BlockID, error) {
	switch {
	case s == "latest":
		return LatestBlockID(), nil
	case s == "pending":
		return PendingBlockID(), nil
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		hash, err := felt.ParseHex(s)
		if err != nil {
			return BlockID{}, err
		}
		return BlockID{Hash: hash}, nil
	default:
		number, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return BlockID{}, fmt.Errorf("%q is not a block tag, hash or number", s)
		}
		return BlockID{Number: &number}, nil
	}
}

func (b BlockID) MarshalJSON() ([]byte, error) {
	switch {
	case b.Latest:
		return json.Marshal("latest")
	case b.Pending:
		return json.Marshal("pending")
	case b.Hash != nil:
		return json.Marshal(map[string]*felt.Felt{"block_hash": b.Hash})
	case b.Number != nil:
		return json.Marshal(map[string]uint64{"block_number": *b.Number})
	default:
		return nil, fmt.Errorf("empty block id")
	}
}

func (b BlockID) String() string {
	switch {
	case b.Latest:
		return "latest"
	case b.Pending:
		return "pending"
	case b.Hash != nil:
		return b.Hash.String()
	case b.Number != nil:
		return strconv.FormatUint(*b.Number, 10)
	default:
		return ""
	}
}

// FunctionCall is the starknet_call request payload.
type FunctionCall struct {
	ContractAddress    *felt.Felt   `json:"contract_address"`
	EntryPointSelector *felt.Felt   `json:"entry_point_selector"`
	Calldata           []*felt.Felt `json:"calldata"`
}

// EventFilter is the starknet_getEvents request payload.
type EventFilter struct {
	FromBlock         *BlockID       `json:"from_block,omitempty"`
	ToBlock           *BlockID       `json:"to_block,omitempty"`
	Address           *felt.Felt     `json:"address,omitempty"`
	Keys              [][]*felt.Felt `json:"keys,omitempty"`
	ChunkSize         uint64         `json:"chunk_size"`
	ContinuationToken string         `json:"continuation_token,omitempty"`
}

// Error is a JSON-RPC error object returned by the node.
type Error struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *Error) Error() string {
	if len(e.Data) > 0 {
		return fmt.Sprintf("%d %s: %s", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("%d %s", e.Code, e.Message)
}
