package account

import (
	"strings"

	"github.com/NethermindEth/probe/core/felt"
)

// SelectorFn resolves an entry point name to its selector felt. Production
// callers pass crypto.Selector; tests may substitute a fixture.
type SelectorFn func(name string) (*felt.Felt, error)

// ParseCalls parses a textual multicall description into an ordered call
// batch. Calls are separated by a hyphen token; within a call the
// whitespace-separated tokens are the target address, the function name and
// zero or more calldata felts. A calldata token may itself be a
// comma-separated felt list, so both `0x1 0x2` and `0x1,0x2` forms are
// accepted.
func ParseCalls(description string, selector SelectorFn) ([]Call, error) {
	callDescriptions := strings.Split(description, "-")
	calls := make([]Call, 0, len(callDescriptions))

	for idx, callDescription := range callDescriptions {
		callIndex := idx + 1 // errors report 1-based call positions
		tokens := strings.Fields(callDescription)

		if len(tokens) < 1 {
			return nil, &MissingFieldError{Field: "to", Call: callIndex}
		}
		if len(tokens) < 2 {
			return nil, &MissingFieldError{Field: "selector", Call: callIndex}
		}

		to, err := felt.Parse(tokens[0])
		if err != nil {
			return nil, &CalldataError{Call: callIndex, Token: tokens[0], Err: err}
		}

		sel, err := selector(tokens[1])
		if err != nil {
			return nil, &SelectorError{Call: callIndex, Name: tokens[1], Err: err}
		}

		var calldata []*felt.Felt
		for _, token := range tokens[2:] {
			for _, item := range strings.Split(token, ",") {
				if item == "" {
					continue
				}
				data, err := felt.Parse(item)
				if err != nil {
					return nil, &CalldataError{Call: callIndex, Token: item, Err: err}
				}
				calldata = append(calldata, data)
			}
		}

		calls = append(calls, Call{To: *to, Selector: *sel, Calldata: calldata})
	}

	return calls, nil
}

// MulticallCalldata parses description and returns the flattened
// __execute__ calldata in one step.
func MulticallCalldata(description string, selector SelectorFn) ([]*felt.Felt, error) {
	calls, err := ParseCalls(description, selector)
	if err != nil {
		return nil, err
	}
	return EncodeExecuteCalldata(calls), nil
}
