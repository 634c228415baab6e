package rpc_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/NethermindEth/probe/core/felt"
	"github.com/NethermindEth/probe/rpc"
	"github.com/NethermindEth/probe/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestClient spins up a server that answers every request with the given
// result and returns a client pointed at it.
func newTestClient(t *testing.T, handler func(method string, params json.RawMessage) (any, *rpc.Error)) *rpc.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)

		var req struct {
			Version string          `json:"jsonrpc"`
			ID      uint64          `json:"id"`
			Method  string          `json:"method"`
			Params  json.RawMessage `json:"params"`
		}
		require.NoError(t, json.Unmarshal(body, &req))
		assert.Equal(t, "2.0", req.Version)

		result, rpcErr := handler(req.Method, req.Params)
		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if rpcErr != nil {
			resp["error"] = rpcErr
		} else {
			resp["result"] = result
		}
		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return rpc.NewClient(srv.URL, utils.NewNopZapLogger())
}

func TestChainID(t *testing.T) {
	client := newTestClient(t, func(method string, _ json.RawMessage) (any, *rpc.Error) {
		require.Equal(t, "starknet_chainId", method)
		return "0x534e5f4d41494e", nil
	})

	id, err := client.ChainID(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0x534e5f4d41494e", id.String())
}

func TestBlockNumber(t *testing.T) {
	client := newTestClient(t, func(method string, _ json.RawMessage) (any, *rpc.Error) {
		require.Equal(t, "starknet_blockNumber", method)
		return 426514, nil
	})

	number, err := client.BlockNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(426514), number)
}

func TestBlockWithTxs(t *testing.T) {
	client := newTestClient(t, func(method string, params json.RawMessage) (any, *rpc.Error) {
		require.Equal(t, "starknet_getBlockWithTxs", method)
		assert.JSONEq(t, `[{"block_number":100}]`, string(params))
		return map[string]any{"block_number": 100, "status": "ACCEPTED_ON_L1"}, nil
	})

	number := uint64(100)
	block, err := client.BlockWithTxs(context.Background(), rpc.BlockID{Number: &number})
	require.NoError(t, err)
	assert.JSONEq(t, `{"block_number":100,"status":"ACCEPTED_ON_L1"}`, string(block))
}

func TestBlockTransactionCount(t *testing.T) {
	client := newTestClient(t, func(method string, params json.RawMessage) (any, *rpc.Error) {
		require.Equal(t, "starknet_getBlockTransactionCount", method)
		assert.JSONEq(t, `["latest"]`, string(params))
		return 31, nil
	})

	count, err := client.BlockTransactionCount(context.Background(), rpc.LatestBlockID())
	require.NoError(t, err)
	assert.Equal(t, uint64(31), count)
}

func TestNonce(t *testing.T) {
	client := newTestClient(t, func(method string, params json.RawMessage) (any, *rpc.Error) {
		require.Equal(t, "starknet_getNonce", method)
		assert.JSONEq(t, `["pending","0xdeadbeef"]`, string(params))
		return "0x5", nil
	})

	contract, err := felt.Parse("0xdeadbeef")
	require.NoError(t, err)
	nonce, err := client.Nonce(context.Background(), rpc.PendingBlockID(), contract)
	require.NoError(t, err)
	assert.Equal(t, "0x5", nonce.String())
}

func TestStorageAt(t *testing.T) {
	client := newTestClient(t, func(method string, params json.RawMessage) (any, *rpc.Error) {
		require.Equal(t, "starknet_getStorageAt", method)
		assert.JSONEq(t, `["0x1","0x2","latest"]`, string(params))
		return "0x2137", nil
	})

	contract, _ := felt.Parse("0x1")
	key, _ := felt.Parse("0x2")
	value, err := client.StorageAt(context.Background(), contract, key, rpc.LatestBlockID())
	require.NoError(t, err)
	assert.Equal(t, "0x2137", value.String())
}

func TestCall(t *testing.T) {
	client := newTestClient(t, func(method string, params json.RawMessage) (any, *rpc.Error) {
		require.Equal(t, "starknet_call", method)
		var positional []json.RawMessage
		require.NoError(t, json.Unmarshal(params, &positional))
		require.Len(t, positional, 2)
		// nil calldata must be sent as an empty array, not null
		assert.JSONEq(t,
			`{"contract_address":"0x1","entry_point_selector":"0x2","calldata":[]}`,
			string(positional[0]))
		return []string{"0xa", "0xb"}, nil
	})

	contract, _ := felt.Parse("0x1")
	selector, _ := felt.Parse("0x2")
	result, err := client.Call(context.Background(), rpc.FunctionCall{
		ContractAddress:    contract,
		EntryPointSelector: selector,
	}, rpc.LatestBlockID())
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "0xa", result[0].String())
	assert.Equal(t, "0xb", result[1].String())
}

func TestClassHashAt(t *testing.T) {
	client := newTestClient(t, func(method string, params json.RawMessage) (any, *rpc.Error) {
		require.Equal(t, "starknet_getClassHashAt", method)
		return "0x7f3777c99f3700505ea966676aac4a0d692c2a9f5e667f4c606b51ca1dd3420", nil
	})

	contract, _ := felt.Parse("0x1")
	hash, err := client.ClassHashAt(context.Background(), rpc.LatestBlockID(), contract)
	require.NoError(t, err)
	assert.Equal(t, "0x7f3777c99f3700505ea966676aac4a0d692c2a9f5e667f4c606b51ca1dd3420", hash.String())
}

func TestEvents(t *testing.T) {
	client := newTestClient(t, func(method string, params json.RawMessage) (any, *rpc.Error) {
		require.Equal(t, "starknet_getEvents", method)
		assert.JSONEq(t, `[{"from_block":{"block_number":800},"address":"0x4718","chunk_size":10}]`,
			string(params))
		return map[string]any{"events": []any{}, "continuation_token": "10-0"}, nil
	})

	from := uint64(800)
	fromID := rpc.BlockID{Number: &from}
	address, _ := felt.Parse("0x4718")
	events, err := client.Events(context.Background(), rpc.EventFilter{
		FromBlock: &fromID,
		Address:   address,
		ChunkSize: 10,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"events":[],"continuation_token":"10-0"}`, string(events))
}

func TestRPCError(t *testing.T) {
	client := newTestClient(t, func(method string, _ json.RawMessage) (any, *rpc.Error) {
		return nil, &rpc.Error{Code: 24, Message: "Block not found"}
	})

	_, err := client.BlockWithTxs(context.Background(), rpc.LatestBlockID())
	require.Error(t, err)
	rpcErr := new(rpc.Error)
	require.ErrorAs(t, err, &rpcErr)
	assert.Equal(t, 24, rpcErr.Code)
	assert.Equal(t, "Block not found", rpcErr.Message)
}

func TestHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	client := rpc.NewClient(srv.URL, utils.NewNopZapLogger())

	_, err := client.BlockNumber(context.Background())
	require.ErrorContains(t, err, "503")
}

func TestParseBlockID(t *testing.T) {
	tests := []struct {
		input string
		want  string
		err   bool
	}{
		{input: "latest", want: "latest"},
		{input: "pending", want: "pending"},
		{input: "0x3ec215c6c9028ff671b46a2a9814970ea23ed3c4bcc3838c6d1dcbf395263c3", want: "0x3ec215c6c9028ff671b46a2a9814970ea23ed3c4bcc3838c6d1dcbf395263c3"},
		{input: "426514", want: "426514"},
		{input: "not-a-block", err: true},
		{input: "0xzz", err: true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			id, err := rpc.ParseBlockID(tt.input)
			if tt.err {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id.String())
		})
	}
}

func TestBlockIDMarshalJSON(t *testing.T) {
	number := uint64(7)
	hash, _ := felt.Parse("0xabc")
	tests := []struct {
		name string
		id   rpc.BlockID
		want string
	}{
		{name: "latest", id: rpc.LatestBlockID(), want: `"latest"`},
		{name: "pending", id: rpc.PendingBlockID(), want: `"pending"`},
		{name: "number", id: rpc.BlockID{Number: &number}, want: `{"block_number":7}`},
		{name: "hash", id: rpc.BlockID{Hash: hash}, want: `{"block_hash":"0xabc"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := json.Marshal(tt.id)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestBlockIDMarshalJSONEmpty(t *testing.T) {
	_, err := json.Marshal(rpc.BlockID{})
	require.Error(t, err)
}

func TestErrorString(t *testing.T) {
	err := &rpc.Error{Code: 40, Message: "Contract error", Data: json.RawMessage(`{"revert_error":"assert failed"}`)}
	assert.Equal(t, fmt.Sprintf("40 Contract error: %s", `{"revert_error":"assert failed"}`), err.Error())
}
