package derive

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/javerbukh/jwebbinar-prep/phys/quantity"
)

// ErrLengthMismatch is returned when rotation-curve columns differ in length.
var ErrLengthMismatch = errors.New("derive: radius and velocity must have same length")

// RotationCurve is a sampled rotation curve: projected radius and circular
// velocity pairs, each column in its own unit.
type RotationCurve struct {
	Radius       []float64
	RadiusUnit   quantity.Unit
	Velocity     []float64
	VelocityUnit quantity.Unit
}

// Profile is the enclosed mass at each radius of a rotation curve.
type Profile struct {
	Radius     []float64
	RadiusUnit quantity.Unit
	Mass       []float64 // solar masses
}

// EnclosedMassProfile evaluates EnclosedMass at every point of curve. The
// velocity sign is irrelevant (v² is used).
func EnclosedMassProfile(curve RotationCurve, g quantity.Quantity) (Profile, error) {
	const op = "enclosed mass profile"

	if !curve.RadiusUnit.Commensurable(quantity.Meter) {
		return Profile{}, &InvalidUnitError{Op: op, Have: []quantity.Unit{curve.RadiusUnit}, Want: "length", Detail: "radius"}
	}

	if !curve.VelocityUnit.Commensurable(quantity.KilometerPerSec) {
		return Profile{}, &InvalidUnitError{Op: op, Have: []quantity.Unit{curve.VelocityUnit}, Want: "velocity", Detail: "velocity"}
	}

	if err := wantDim(op, "G", g, quantity.GravitationUnit, "m3 kg-1 s-2"); err != nil {
		return Profile{}, err
	}

	if !(g.Value > 0) {
		return Profile{}, domain(op, "G", g, "G > 0")
	}

	n := len(curve.Radius)
	if len(curve.Velocity) != n {
		return Profile{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, n, len(curve.Velocity))
	}

	for i, r := range curve.Radius {
		if r < 0 {
			return Profile{}, &DomainError{Op: op, Param: fmt.Sprintf("radius[%d]", i), Value: r, Rule: "radius >= 0"}
		}
	}

	mass := make([]float64, n)
	if n > 0 {
		vecmath.MulBlock(mass, curve.Velocity, curve.Velocity)
		vecmath.MulBlockInPlace(mass, curve.Radius)
	}

	vs := curve.VelocityUnit.Scale()
	f := curve.RadiusUnit.Scale() * vs * vs / g.SI() / quantity.SolarMassSI

	for i := range mass {
		mass[i] *= f
	}

	radius := make([]float64, n)
	copy(radius, curve.Radius)

	return Profile{Radius: radius, RadiusUnit: curve.RadiusUnit, Mass: mass}, nil
}
