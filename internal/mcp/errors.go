package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/timeledger/internal/domain/activity"
	"github.com/rpggio/timeledger/internal/domain/directory"
	"github.com/rpggio/timeledger/internal/domain/entry"
	"github.com/rpggio/timeledger/internal/domain/session"
	"github.com/rpggio/timeledger/internal/domain/timer"
)

var (
	// ErrUnknownMethod indicates a method name no tool serves.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrInvalidParams indicates tool arguments that could not be decoded.
	ErrInvalidParams = errors.New("invalid parameters")
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// ErrorCode returns the stable error code.
func (e *APIError) ErrorCode() string {
	return e.Code
}

// MapError maps domain errors to MCP error codes. Errors outside the
// taxonomy map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, entry.ErrInvalidInput),
		errors.Is(err, timer.ErrInvalidInput),
		errors.Is(err, directory.ErrInvalidInput),
		errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, activity.ErrInvalidInput),
		errors.Is(err, ErrInvalidParams):
		return &APIError{Code: "VALIDATION_ERROR", Message: err.Error(), RecoveryHint: "Fix the listed field and retry"}
	case errors.Is(err, entry.ErrEntryNotFound):
		return &APIError{Code: "ENTRY_NOT_FOUND", Message: "time entry not found", RecoveryHint: "Check ID spelling"}
	case errors.Is(err, timer.ErrInvalidState):
		return &APIError{Code: "INVALID_STATE", Message: err.Error(), RecoveryHint: "Call get_timer to see the current state"}
	case errors.Is(err, directory.ErrProjectNotFound):
		return &APIError{Code: "PROJECT_NOT_FOUND", Message: "project not found", RecoveryHint: "Create the project first"}
	case errors.Is(err, directory.ErrDuplicate):
		return &APIError{Code: "CONFLICT", Message: "already exists", RecoveryHint: "Use a different ID"}
	case errors.Is(err, session.ErrSessionNotFound):
		return &APIError{Code: "SESSION_NOT_FOUND", Message: "session not found", RecoveryHint: "Start a new session"}
	case errors.Is(err, ErrUnknownMethod):
		return &APIError{Code: "UNKNOWN_METHOD", Message: err.Error(), RecoveryHint: "Call tools/list"}
	default:
		return nil
	}
}

func mapError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
