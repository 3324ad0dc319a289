package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"
	KindInvalidConfig ErrorKind = "invalid_config"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}

	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}

	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}

	return e.Err
}

// IsKind reports whether err is an *OpError of kind.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}

	return false
}

func invalidField(path, field string, err error) error {
	return &OpError{
		Op:   "config.map",
		Kind: KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %w", field, err),
	}
}

func invalidMsg(path, field, msg string) error {
	return invalidField(path, field, fmt.Errorf("%s: %w", msg, ErrInvalidConfig))
}
