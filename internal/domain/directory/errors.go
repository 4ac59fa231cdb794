package directory

import "errors"

var (
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrDuplicate indicates an entity with the same ID already exists.
	ErrDuplicate = errors.New("directory entry already exists")
	// ErrInvalidInput indicates invalid directory input.
	ErrInvalidInput = errors.New("invalid directory input")
)
