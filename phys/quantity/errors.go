package quantity

import (
	"errors"
	"fmt"
)

// Error classes. Typed errors below match these with errors.Is.
var (
	ErrInvalidUnit = errors.New("quantity: invalid unit")
	ErrDomain      = errors.New("quantity: value outside domain")
)

// InvalidUnitError reports operands whose physical dimensions do not fit
// the requested arithmetic or conversion.
type InvalidUnitError struct {
	Op     string
	Have   []Unit
	Want   string
	Detail string
}

func (e *InvalidUnitError) Error() string {
	msg := "invalid unit"
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}

	if len(e.Have) > 0 {
		msg += " ("
		for i, u := range e.Have {
			if i > 0 {
				msg += ", "
			}

			msg += u.String()
		}

		msg += ")"
	}

	if e.Want != "" {
		msg += ", want " + e.Want
	}

	if e.Detail != "" {
		msg += ": " + e.Detail
	}

	return msg
}

// Is reports whether target is ErrInvalidUnit.
func (e *InvalidUnitError) Is(target error) bool { return target == ErrInvalidUnit }

// DomainError reports a value that violates a mathematical precondition,
// such as a non-positive radius or a zero denominator.
type DomainError struct {
	Op    string
	Param string
	Value float64
	Rule  string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s = %g violates %s", e.Op, e.Param, e.Value, e.Rule)
}

// Is reports whether target is ErrDomain.
func (e *DomainError) Is(target error) bool { return target == ErrDomain }

func unitMismatch(op string, a, b Unit) error {
	if !a.IsDefined() || !b.IsDefined() {
		return &InvalidUnitError{Op: op, Have: []Unit{a, b}, Detail: "plain scalar has no unit"}
	}

	return &InvalidUnitError{
		Op:     op,
		Have:   []Unit{a, b},
		Detail: fmt.Sprintf("%s is not commensurable with %s", a.dimString(), b.dimString()),
	}
}

func undefinedUnit(op string) error {
	return &InvalidUnitError{Op: op, Have: []Unit{{}}, Detail: "plain scalar has no unit"}
}
