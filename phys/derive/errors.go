package derive

import (
	"github.com/javerbukh/jwebbinar-prep/ifu/session"
	"github.com/javerbukh/jwebbinar-prep/phys/quantity"
)

// Error types surfaced by this package. They are the quantity and session
// types, re-exported so callers need a single import.
type (
	InvalidUnitError       = quantity.InvalidUnitError
	DomainError            = quantity.DomainError
	InsufficientInputError = session.InsufficientInputError
)

// Error classes for errors.Is.
var (
	ErrInvalidUnit       = quantity.ErrInvalidUnit
	ErrDomain            = quantity.ErrDomain
	ErrInsufficientInput = session.ErrInsufficientInput
)

func wantDim(op, param string, q quantity.Quantity, ref quantity.Unit, want string) error {
	if q.Has(ref) {
		return nil
	}

	return &InvalidUnitError{Op: op, Have: []quantity.Unit{q.Unit}, Want: want, Detail: param}
}

func domain(op, param string, q quantity.Quantity, rule string) error {
	return &DomainError{Op: op, Param: param, Value: q.Value, Rule: rule}
}

func absent(op, what string) error {
	return &InsufficientInputError{Op: op, Missing: what}
}
