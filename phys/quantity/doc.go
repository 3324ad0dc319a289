// Package quantity provides unit-aware scalar values for astrophysical
// derivations.
//
// A [Quantity] pairs a float64 with a [Unit]. A Unit is a display symbol
// over a gonum [unit.Unit] holding the scale factor to SI base units and
// the exponents of length, mass, time and angle, so arithmetic can verify
// that operands are commensurable before combining them:
//
//   - Add, Sub: operands must share a dimension; the result keeps the
//     receiver's unit.
//   - Mul, Div: dimensions combine; a dimensionless result folds the
//     scale factors into the value.
//   - Pow: non-integer exponents are only defined for dimensionless values,
//     and no dimension exponent may leave ±(2^31-1).
//
// Conversions that change dimension (wavelength to velocity, angle to
// length) never happen implicitly. They go through a named [Equivalency]
// such as [DopplerRelativistic] or [SmallAngle].
//
// The zero Unit means "no unit at all". A Quantity built with [Scalar]
// is rejected by every operation that needs a physical dimension, which
// keeps bare numbers from being silently promoted. Use [Dimensionless]
// for genuine ratios.
//
// # Usage
//
//	rest := quantity.MustParse(4.861, "um")
//	eq, _ := quantity.DopplerRelativistic(rest)
//	v, _ := quantity.MustParse(4.862, "um").ToWith(quantity.MustParseUnit("km/s"), eq)
//	fmt.Printf("%.1f %s\n", v.Value, v.Unit) // 61.7 km/s
package quantity
