package session

import "errors"

var (
	// ErrSessionNotFound indicates no session is open for the user.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidInput indicates invalid session input.
	ErrInvalidInput = errors.New("invalid session input")
)
