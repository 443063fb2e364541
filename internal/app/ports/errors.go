package ports

import "errors"

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
)

// ErrInvalidPath marks a client-supplied file path that escapes its root.
var ErrInvalidPath = errors.New("invalid path")
