package entry

import "errors"

var (
	// ErrEntryNotFound indicates the time entry doesn't exist.
	ErrEntryNotFound = errors.New("time entry not found")
	// ErrInvalidInput indicates malformed time entry fields.
	ErrInvalidInput = errors.New("invalid time entry")
)
