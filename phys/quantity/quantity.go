package quantity

import (
	"math"
	"strconv"
)

const defaultEpsilon = 1e-12

// Quantity is a value paired with a unit. Quantities are values: every
// operation returns a new Quantity and leaves its operands untouched.
type Quantity struct {
	Value float64
	Unit  Unit
}

// New returns value expressed in unit.
func New(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

// Parse returns value expressed in the unit parsed from unit.
func Parse(value float64, unit string) (Quantity, error) {
	u, err := ParseUnit(unit)
	if err != nil {
		return Quantity{}, err
	}

	return New(value, u), nil
}

// MustParse is like Parse but panics on error.
func MustParse(value float64, unit string) Quantity {
	q, err := Parse(value, unit)
	if err != nil {
		panic(err)
	}

	return q
}

// Scalar returns a bare number without any unit. Operations that need a
// physical dimension reject it with *InvalidUnitError.
func Scalar(value float64) Quantity {
	return Quantity{Value: value}
}

// IsScalar reports whether q carries no unit.
func (q Quantity) IsScalar() bool { return !q.Unit.IsDefined() }

// SI returns the value in SI base units.
func (q Quantity) SI() float64 {
	if !q.Unit.IsDefined() {
		return q.Value
	}

	return q.Value * q.Unit.Scale()
}

// Has reports whether q's unit has exactly the dimension of ref.
func (q Quantity) Has(ref Unit) bool {
	return q.Unit.Commensurable(ref)
}

// To converts q into unit.
func (q Quantity) To(unit Unit) (Quantity, error) {
	f, err := q.Unit.ConversionFactor(unit)
	if err != nil {
		return Quantity{}, err
	}

	return New(q.Value*f, unit), nil
}

// In converts q into the unit parsed from unit.
func (q Quantity) In(unit string) (Quantity, error) {
	u, err := ParseUnit(unit)
	if err != nil {
		return Quantity{}, err
	}

	return q.To(u)
}

// Add returns q + o in q's unit.
func (q Quantity) Add(o Quantity) (Quantity, error) {
	f, err := o.Unit.ConversionFactor(q.Unit)
	if err != nil {
		return Quantity{}, unitMismatch("add", q.Unit, o.Unit)
	}

	return New(q.Value+o.Value*f, q.Unit), nil
}

// Sub returns q - o in q's unit.
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	f, err := o.Unit.ConversionFactor(q.Unit)
	if err != nil {
		return Quantity{}, unitMismatch("subtract", q.Unit, o.Unit)
	}

	return New(q.Value-o.Value*f, q.Unit), nil
}

// Mul returns q·o.
func (q Quantity) Mul(o Quantity) (Quantity, error) {
	if !q.Unit.IsDefined() || !o.Unit.IsDefined() {
		return Quantity{}, undefinedUnit("multiply")
	}

	u := q.Unit.Mul(o.Unit)
	if err := checkExponents("multiply", u); err != nil {
		return Quantity{}, err
	}

	return simplify(New(q.Value*o.Value, u)), nil
}

// Div returns q/o. Division by a zero quantity is a *DomainError.
func (q Quantity) Div(o Quantity) (Quantity, error) {
	if !q.Unit.IsDefined() || !o.Unit.IsDefined() {
		return Quantity{}, undefinedUnit("divide")
	}

	if o.Value == 0 {
		return Quantity{}, &DomainError{Op: "divide", Param: "divisor", Value: 0, Rule: "divisor != 0"}
	}

	u := q.Unit.Div(o.Unit)
	if err := checkExponents("divide", u); err != nil {
		return Quantity{}, err
	}

	return simplify(New(q.Value/o.Value, u)), nil
}

// Pow returns q raised to p. Dimensionful quantities accept only integer
// exponents that keep every dimension exponent within ±2^31-1; negative
// bases accept only integer exponents.
func (q Quantity) Pow(p float64) (Quantity, error) {
	if !q.Unit.IsDefined() {
		return Quantity{}, undefinedUnit("power")
	}

	integral := p == math.Trunc(p)

	dimensionless := q.Unit.IsDimensionless()

	if !integral && !dimensionless {
		return Quantity{}, &InvalidUnitError{
			Op:     "power",
			Have:   []Unit{q.Unit},
			Want:   "dimensionless",
			Detail: "non-integer exponent " + strconv.FormatFloat(p, 'g', -1, 64),
		}
	}

	if !integral && q.Value < 0 {
		return Quantity{}, &DomainError{Op: "power", Param: "base", Value: q.Value, Rule: "base >= 0 for non-integer exponent"}
	}

	if q.Value == 0 && p < 0 {
		return Quantity{}, &DomainError{Op: "power", Param: "base", Value: 0, Rule: "base != 0 for negative exponent"}
	}

	if dimensionless {
		return New(math.Pow(q.Value*q.Unit.Scale(), p), Dimensionless), nil
	}

	if err := checkPow("power", q.Unit, p); err != nil {
		return Quantity{}, err
	}

	return New(math.Pow(q.Value, p), q.Unit.Pow(int(p))), nil
}

// Scale returns q multiplied by the pure number f.
func (q Quantity) Scale(f float64) Quantity {
	return New(q.Value*f, q.Unit)
}

// Abs returns |q|.
func (q Quantity) Abs() Quantity {
	return New(math.Abs(q.Value), q.Unit)
}

// Neg returns -q.
func (q Quantity) Neg() Quantity {
	return New(-q.Value, q.Unit)
}

// Sign returns -1, 0 or +1.
func (q Quantity) Sign() int {
	switch {
	case q.Value > 0:
		return 1
	case q.Value < 0:
		return -1
	default:
		return 0
	}
}

// IsFinite reports whether the value is neither NaN nor infinite.
func (q Quantity) IsFinite() bool {
	return !math.IsNaN(q.Value) && !math.IsInf(q.Value, 0)
}

// Compare returns -1, 0 or +1 comparing q with o after conversion.
func (q Quantity) Compare(o Quantity) (int, error) {
	d, err := q.Sub(o)
	if err != nil {
		return 0, err
	}

	return d.Sign(), nil
}

// NearlyEqual reports whether q and o agree within relative tolerance eps
// after conversion. Uncommensurable quantities are never equal.
func (q Quantity) NearlyEqual(o Quantity, eps float64) bool {
	f, err := o.Unit.ConversionFactor(q.Unit)
	if err != nil {
		return false
	}

	return nearlyEqual(q.Value, o.Value*f, eps)
}

// String formats q as "<value> <unit>".
func (q Quantity) String() string {
	v := strconv.FormatFloat(q.Value, 'g', 6, 64)

	if !q.Unit.IsDefined() || q.Unit.symbol == "" {
		return v
	}

	return v + " " + q.Unit.symbol
}

// simplify folds the scale of a dimensionless product into its value.
func simplify(q Quantity) Quantity {
	if q.Unit.IsDimensionless() {
		return New(q.Value*q.Unit.Scale(), Dimensionless)
	}

	return q
}

func nearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}
