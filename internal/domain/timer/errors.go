package timer

import "errors"

var (
	// ErrInvalidState indicates a transition attempted from the wrong state.
	ErrInvalidState = errors.New("invalid timer state")
	// ErrInvalidInput indicates invalid timer input.
	ErrInvalidInput = errors.New("invalid timer input")
)
