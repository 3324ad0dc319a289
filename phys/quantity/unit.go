package quantity

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/unit"
)

// maxExponent bounds the exponent of every base dimension.
const maxExponent = math.MaxInt32

// Unit is a physical unit: a display symbol over a gonum unit whose value
// is the scale factor to SI base units (metre, kilogram, second, radian)
// and whose dimensions hold the exponents. Angle is its own dimension, so
// an angle only turns into a length through an explicit equivalency.
//
// The zero Unit is undefined and represents a bare number. The wrapped
// gonum unit is never mutated after construction.
type Unit struct {
	symbol string
	si     *unit.Unit
}

// Dimensionless is the explicit unit of pure ratios.
var Dimensionless = Unit{si: unit.New(1, nil)}

func fromUniter(symbol string, u unit.Uniter) Unit {
	return Unit{symbol: symbol, si: u.Unit()}
}

func baseUnit(symbol string, scale float64, d unit.Dimension) Unit {
	return Unit{symbol: symbol, si: unit.New(scale, unit.Dimensions{d: 1})}
}

// Symbol returns the unit symbol. Dimensionless and undefined units return "".
func (u Unit) Symbol() string { return u.symbol }

// String returns the symbol, "dimensionless" or "<none>".
func (u Unit) String() string {
	switch {
	case u.si == nil:
		return "<none>"
	case u.symbol == "" && u.IsDimensionless():
		return "dimensionless"
	default:
		return u.symbol
	}
}

// IsDefined reports whether u carries a unit at all.
func (u Unit) IsDefined() bool { return u.si != nil }

// IsDimensionless reports whether u is a defined unit with no dimension.
func (u Unit) IsDimensionless() bool {
	return u.si != nil && len(u.si.Dimensions()) == 0
}

// Scale returns the factor converting a value in u to SI base units.
func (u Unit) Scale() float64 {
	if u.si == nil {
		return 0
	}

	return u.si.Value()
}

// Dimensions returns a copy of the dimension exponents of u.
func (u Unit) Dimensions() unit.Dimensions {
	if u.si == nil {
		return nil
	}

	return u.si.Dimensions()
}

// Exponent returns the exponent of dimension d in u.
func (u Unit) Exponent(d unit.Dimension) int {
	if u.si == nil {
		return 0
	}

	return u.si.Dimensions()[d]
}

// Commensurable reports whether values in u and o can be converted into
// each other by a pure scale factor.
func (u Unit) Commensurable(o Unit) bool {
	return u.si != nil && o.si != nil && unit.DimensionsMatch(u.si, o.si)
}

// ConversionFactor returns f such that x [u] == x*f [to].
func (u Unit) ConversionFactor(to Unit) (float64, error) {
	if !u.Commensurable(to) {
		return 0, unitMismatch("convert", u, to)
	}

	return u.si.Value() / to.si.Value(), nil
}

// Mul returns the product unit u·o.
func (u Unit) Mul(o Unit) Unit {
	out := Unit{symbol: joinSymbols(u.symbol, o.symbol, " ")}
	if u.si != nil && o.si != nil {
		out.si = u.clone().Mul(o.si)
	}

	return out
}

// Div returns the quotient unit u/o.
func (u Unit) Div(o Unit) Unit {
	sym := u.symbol
	switch {
	case o.symbol == "":
	case sym == "":
		sym = invertSymbol(o.symbol)
	default:
		den := o.symbol
		if strings.ContainsAny(den, " /") {
			den = "(" + den + ")"
		}

		sym = sym + " / " + den
	}

	out := Unit{symbol: sym}
	if u.si != nil && o.si != nil {
		out.si = u.clone().Div(o.si)
	}

	return out
}

// Pow returns u raised to the integer power n. Callers that take n from
// user input check it with checkPow first.
func (u Unit) Pow(n int) Unit {
	if n == 1 {
		return u
	}

	sym := ""
	if u.symbol != "" && n != 0 {
		if strings.ContainsAny(u.symbol, " /") {
			sym = "(" + u.symbol + ")" + strconv.Itoa(n)
		} else {
			sym = u.symbol + strconv.Itoa(n)
		}
	}

	out := Unit{symbol: sym}
	if u.si != nil {
		d := u.si.Dimensions()
		for k, e := range d {
			if n == 0 {
				delete(d, k)
			} else {
				d[k] = e * n
			}
		}

		out.si = unit.New(math.Pow(u.si.Value(), float64(n)), d)
	}

	return out
}

// WithSymbol returns u relabelled with sym. The scale and dimension are
// unchanged.
func (u Unit) WithSymbol(sym string) Unit {
	u.symbol = sym
	return u
}

func (u Unit) clone() *unit.Unit {
	return unit.New(u.si.Value(), u.si.Dimensions())
}

// dimString renders the exponents as "m s^-1", or "dimensionless".
func (u Unit) dimString() string {
	d := u.Dimensions()
	if len(d) == 0 {
		return "dimensionless"
	}

	parts := make([]string, 0, len(d))
	for _, k := range slices.Sorted(maps.Keys(d)) {
		if e := d[k]; e == 1 {
			parts = append(parts, k.String())
		} else {
			parts = append(parts, k.String()+"^"+strconv.Itoa(e))
		}
	}

	return strings.Join(parts, " ")
}

// checkPow reports an *InvalidUnitError when u^n would push an exponent
// past maxExponent.
func checkPow(op string, u Unit, n float64) error {
	if math.Abs(n) > maxExponent {
		return &InvalidUnitError{Op: op, Have: []Unit{u}, Detail: "exponent " + strconv.FormatFloat(n, 'g', -1, 64) + " out of range"}
	}

	for k, e := range u.Dimensions() {
		if p := float64(e) * n; math.Abs(p) > maxExponent {
			return &InvalidUnitError{Op: op, Have: []Unit{u}, Detail: fmt.Sprintf("%s exponent %g out of range", k, p)}
		}
	}

	return nil
}

// checkExponents reports an *InvalidUnitError when any exponent of u lies
// outside ±maxExponent.
func checkExponents(op string, u Unit) error {
	return checkPow(op, u, 1)
}

func joinSymbols(a, b, sep string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + sep + b
	}
}

func invertSymbol(sym string) string {
	if strings.ContainsAny(sym, " /") {
		return "1 / (" + sym + ")"
	}

	return sym + "-1"
}
