package session

import (
	"errors"
	"fmt"
)

// ErrInsufficientInput classifies every *InsufficientInputError.
var ErrInsufficientInput = errors.New("session: insufficient input")

// ErrInvalidRegion is returned for malformed region definitions.
var ErrInvalidRegion = errors.New("session: invalid region")

// InsufficientInputError reports that the collaborator has not produced a
// required measurement or selection yet.
type InsufficientInputError struct {
	Op      string
	Missing string
}

func (e *InsufficientInputError) Error() string {
	return fmt.Sprintf("%s: insufficient input: %s", e.Op, e.Missing)
}

// Is reports whether target is ErrInsufficientInput.
func (e *InsufficientInputError) Is(target error) bool { return target == ErrInsufficientInput }

func missing(op, format string, args ...any) error {
	return &InsufficientInputError{Op: op, Missing: fmt.Sprintf(format, args...)}
}
