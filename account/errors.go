package account

import "fmt"

// MissingFieldError indicates that a required token is absent from a call
// description. Call indices are 1-based.
type MissingFieldError struct {
	Field string
	Call  int
}

func (e *MissingFieldError) Error() string {
	switch e.Field {
	case "to":
		return fmt.Sprintf("missing contract address for call %d", e.Call)
	case "selector":
		return fmt.Sprintf("missing function name for call %d", e.Call)
	default:
		return fmt.Sprintf("missing %s for call %d", e.Field, e.Call)
	}
}

// CalldataError indicates that the target address or a calldata token of a
// call failed felt parsing.
type CalldataError struct {
	Call  int
	Token string
	Err   error
}

func (e *CalldataError) Error() string {
	return fmt.Sprintf("%v in calldata for call %d", e.Err, e.Call)
}

func (e *CalldataError) Unwrap() error {
	return e.Err
}

// SelectorError indicates that selector resolution failed for a call's
// function name.
type SelectorError struct {
	Call int
	Name string
	Err  error
}

func (e *SelectorError) Error() string {
	return fmt.Sprintf("%v for call %d selector", e.Err, e.Call)
}

func (e *SelectorError) Unwrap() error {
	return e.Err
}
