// Package account encodes batches of contract invocations into the flat
// calldata array consumed by a Starknet account's __execute__ entry point.
package account

import "github.com/NethermindEth/probe/core/felt"

// Call is a single contract invocation: target address, entry point
// selector and the ordered calldata felts.
type Call struct {
	To       felt.Felt
	Selector felt.Felt
	Calldata []*felt.Felt
}

// EncodeExecuteCalldata flattens calls into the __execute__ ABI layout: the
// call count, then per call (to, selector, data offset, data length), then
// the total calldata length followed by every call's calldata in order.
// The layout is fixed; reordering any element corrupts the account
// contract's dispatch.
func EncodeExecuteCalldata(calls []Call) []*felt.Felt {
	concatedCalldata := make([]*felt.Felt, 0)
	executeCalldata := make([]*felt.Felt, 0, 2+4*len(calls))
	executeCalldata = append(executeCalldata, new(felt.Felt).SetUint64(uint64(len(calls))))

	for idx := range calls {
		call := &calls[idx]
		executeCalldata = append(executeCalldata,
			&call.To,
			&call.Selector,
			new(felt.Felt).SetUint64(uint64(len(concatedCalldata))), // data offset
			new(felt.Felt).SetUint64(uint64(len(call.Calldata))),   // data length
		)
		concatedCalldata = append(concatedCalldata, call.Calldata...)
	}

	executeCalldata = append(executeCalldata, new(felt.Felt).SetUint64(uint64(len(concatedCalldata))))
	return append(executeCalldata, concatedCalldata...)
}
