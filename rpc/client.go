package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/NethermindEth/probe/core/felt"
	"github.com/NethermindEth/probe/utils"
)

// Client talks JSON-RPC 2.0 to a Starknet node over HTTP.
type Client struct {
	url     string
	client  *http.Client
	timeout time.Duration
	log     utils.SimpleLogger
	reqID   atomic.Uint64
}

func NewClient(url string, log utils.SimpleLogger) *Client {
	return &Client{
		url:     url,
		client:  http.DefaultClient,
		timeout: time.Minute,
		log:     log,
	}
}

func (c *Client) WithTimeout(t time.Duration) *Client {
	c.timeout = t
	return c
}

type request struct {
	Version string `json:"jsonrpc"`
	ID      uint64 `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	Version string          `json:"jsonrpc"`
	ID      uint64          `json:"id"`
	Result  json.RawMessage `json:"result"`
	Error   *Error          `json:"error"`
}

// do performs one JSON-RPC call and unmarshals the result into res, which
// may be nil when the caller does not care about the payload.
func (c *Client) do(ctx context.Context, method string, params, res any) error {
	id := c.reqID.Add(1)
	body, err := json.Marshal(request{
		Version: "2.0",
		ID:      id,
		Method:  method,
		Params:  params,
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %s from %q", resp.Status, c.url)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	var rpcResp response
	if err := json.Unmarshal(raw, &rpcResp); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	if rpcResp.Error != nil {
		c.log.Debugw("JSON-RPC call failed", "method", method, "code", rpcResp.Error.Code)
		return rpcResp.Error
	}
	c.log.Debugw("JSON-RPC call succeeded", "method", method, "id", id)

	if res == nil {
		return nil
	}
	return json.Unmarshal(rpcResp.Result, res)
}

func (c *Client) ChainID(ctx context.Context) (*felt.Felt, error) {
	id := new(felt.Felt)
	if err := c.do(ctx, "starknet_chainId", nil, id); err != nil {
		return nil, err
	}
	return id, nil
}

func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var number uint64
	if err := c.do(ctx, "starknet_blockNumber", nil, &number); err != nil {
		return 0, err
	}
	return number, nil
}

func (c *Client) BlockWithTxs(ctx context.Context, blockID BlockID) (json.RawMessage, error) {
	var block json.RawMessage
	if err := c.do(ctx, "starknet_getBlockWithTxs", []any{blockID}, &block); err != nil {
		return nil, err
	}
	return block, nil
}

func (c *Client) BlockTransactionCount(ctx context.Context, blockID BlockID) (uint64, error) {
	var count uint64
	if err := c.do(ctx, "starknet_getBlockTransactionCount", []any{blockID}, &count); err != nil {
		return 0, err
	}
	return count, nil
}

func (c *Client) TransactionByHash(ctx context.Context, hash *felt.Felt) (json.RawMessage, error) {
	var tx json.RawMessage
	if err := c.do(ctx, "starknet_getTransactionByHash", []any{hash}, &tx); err != nil {
		return nil, err
	}
	return tx, nil
}

func (c *Client) TransactionReceipt(ctx context.Context, hash *felt.Felt) (json.RawMessage, error) {
	var receipt json.RawMessage
	if err := c.do(ctx, "starknet_getTransactionReceipt", []any{hash}, &receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

func (c *Client) Nonce(ctx context.Context, blockID BlockID, contract *felt.Felt) (*felt.Felt, error) {
	nonce := new(felt.Felt)
	if err := c.do(ctx, "starknet_getNonce", []any{blockID, contract}, nonce); err != nil {
		return nil, err
	}
	return nonce, nil
}

func (c *Client) StorageAt(ctx context.Context, contract, key *felt.Felt, blockID BlockID) (*felt.Felt, error) {
	value := new(felt.Felt)
	if err := c.do(ctx, "starknet_getStorageAt", []any{contract, key, blockID}, value); err != nil {
		return nil, err
	}
	return value, nil
}

func (c *Client) Call(ctx context.Context, call FunctionCall, blockID BlockID) ([]*felt.Felt, error) {
	if call.Calldata == nil {
		call.Calldata = []*felt.Felt{}
	}
	var result []*felt.Felt
	if err := c.do(ctx, "starknet_call", []any{call, blockID}, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) Class(ctx context.Context, blockID BlockID, classHash *felt.Felt) (json.RawMessage, error) {
	var class json.RawMessage
	if err := c.do(ctx, "starknet_getClass", []any{blockID, classHash}, &class); err != nil {
		return nil, err
	}
	return class, nil
}

func (c *Client) ClassAt(ctx context.Context, blockID BlockID, contract *felt.Felt) (json.RawMessage, error) {
	var class json.RawMessage
	if err := c.do(ctx, "starknet_getClassAt", []any{blockID, contract}, &class); err != nil {
		return nil, err
	}
	return class, nil
}

func (c *Client) ClassHashAt(ctx context.Context, blockID BlockID, contract *felt.Felt) (*felt.Felt, error) {
	hash := new(felt.Felt)
	if err := c.do(ctx, "starknet_getClassHashAt", []any{blockID, contract}, hash); err != nil {
		return nil, err
	}
	return hash, nil
}

func (c *Client) Events(ctx context.Context, filter EventFilter) (json.RawMessage, error) {
	var events json.RawMessage
	if err := c.do(ctx, "starknet_getEvents", []any{filter}, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (c *Client) StateUpdate(ctx context.Context, blockID BlockID) (json.RawMessage, error) {
	var update json.RawMessage
	if err := c.do(ctx, "starknet_getStateUpdate", []any{blockID}, &update); err != nil {
		return nil, err
	}
	return update, nil
}
