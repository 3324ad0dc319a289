package derive

import (
	"math"

	"github.com/javerbukh/jwebbinar-prep/ifu/session"
	"github.com/javerbukh/jwebbinar-prep/phys/quantity"
)

// DopplerVelocity converts the shift of shifted relative to reference into
// a line-of-sight velocity in km/s using the relativistic Doppler
// equivalence. Both inputs must be wavelengths and strictly positive.
func DopplerVelocity(reference, shifted quantity.Quantity) (quantity.Quantity, error) {
	const op = "doppler velocity"

	if err := wantDim(op, "reference", reference, quantity.Meter, "wavelength"); err != nil {
		return quantity.Quantity{}, err
	}

	if err := wantDim(op, "shifted", shifted, quantity.Meter, "wavelength"); err != nil {
		return quantity.Quantity{}, err
	}

	if !(reference.Value > 0) {
		return quantity.Quantity{}, domain(op, "reference", reference, "reference > 0")
	}

	if !(shifted.Value > 0) {
		return quantity.Quantity{}, domain(op, "shifted", shifted, "shifted > 0")
	}

	eq, err := quantity.DopplerRelativistic(reference)
	if err != nil {
		return quantity.Quantity{}, err
	}

	return shifted.ToWith(quantity.KilometerPerSec, eq)
}

// DispersionFromWidth returns the velocity dispersion implied by the
// Gaussian width of a line: the Doppler velocity of centroid+sigma
// relative to the centroid.
func DispersionFromWidth(m session.LineMeasurement) (quantity.Quantity, error) {
	const op = "velocity dispersion"

	if err := wantDim(op, "width", m.Width, quantity.Meter, "wavelength"); err != nil {
		return quantity.Quantity{}, err
	}

	if !(m.Width.Value >= 0) {
		return quantity.Quantity{}, domain(op, "width", m.Width, "width >= 0")
	}

	shifted, err := m.Centroid.Add(m.Width)
	if err != nil {
		return quantity.Quantity{}, err
	}

	return DopplerVelocity(m.Centroid, shifted)
}

// RotationVelocity returns the signed line-of-sight velocity of a relative
// to the mean centroid of a and b. For two regions on opposite sides of a
// rotating disk this is the projected rotation speed.
func RotationVelocity(a, b session.LineMeasurement) (quantity.Quantity, error) {
	sum, err := a.Centroid.Add(b.Centroid)
	if err != nil {
		return quantity.Quantity{}, err
	}

	return DopplerVelocity(sum.Scale(0.5), a.Centroid)
}

// BlackHoleMass evaluates the M–σ relation for the velocity dispersion
// sigma. The result is in the unit of rel.Coefficient.
//
// sigma must be strictly positive: a zero or negative dispersion has no
// physical mass, and a fractional exponent of a negative base is
// undefined.
func BlackHoleMass(sigma quantity.Quantity, rel MSigma) (quantity.Quantity, error) {
	const op = "black hole mass"

	if err := wantDim(op, "sigma", sigma, quantity.KilometerPerSec, "velocity"); err != nil {
		return quantity.Quantity{}, err
	}

	if err := wantDim(op, "coefficient", rel.Coefficient, quantity.SolarMass, "mass"); err != nil {
		return quantity.Quantity{}, err
	}

	if err := wantDim(op, "pivot", rel.Pivot, quantity.KilometerPerSec, "velocity"); err != nil {
		return quantity.Quantity{}, err
	}

	if !(sigma.Value > 0) {
		return quantity.Quantity{}, domain(op, "sigma", sigma, "sigma > 0")
	}

	if !(rel.Pivot.Value > 0) {
		return quantity.Quantity{}, domain(op, "pivot", rel.Pivot, "pivot > 0")
	}

	if !(rel.Coefficient.Value > 0) {
		return quantity.Quantity{}, domain(op, "coefficient", rel.Coefficient, "coefficient > 0")
	}

	if math.IsNaN(rel.Exponent) || math.IsInf(rel.Exponent, 0) {
		return quantity.Quantity{}, &DomainError{Op: op, Param: "exponent", Value: rel.Exponent, Rule: "finite exponent"}
	}

	ratio, err := sigma.Div(rel.Pivot)
	if err != nil {
		return quantity.Quantity{}, err
	}

	p, err := ratio.Pow(rel.Exponent)
	if err != nil {
		return quantity.Quantity{}, err
	}

	return rel.Coefficient.Scale(p.Value), nil
}

// LogMass returns log10(mass / M_sun) as a dimensionless quantity.
func LogMass(mass quantity.Quantity) (quantity.Quantity, error) {
	const op = "log mass"

	if err := wantDim(op, "mass", mass, quantity.SolarMass, "mass"); err != nil {
		return quantity.Quantity{}, err
	}

	if !(mass.Value > 0) {
		return quantity.Quantity{}, domain(op, "mass", mass, "mass > 0")
	}

	m, err := mass.To(quantity.SolarMass)
	if err != nil {
		return quantity.Quantity{}, err
	}

	return quantity.New(math.Log10(m.Value), quantity.Dimensionless), nil
}

// ProjectedDistance converts an angular separation into a projected
// length at distance, using the small-angle approximation with the angle
// in radians. The result is in the unit of distance.
//
// Large angles are not rejected; the approximation is a modelling
// assumption of the caller.
func ProjectedDistance(angle, distance quantity.Quantity) (quantity.Quantity, error) {
	const op = "projected distance"

	if err := wantDim(op, "angle", angle, quantity.Radian, "angle"); err != nil {
		return quantity.Quantity{}, err
	}

	if err := wantDim(op, "distance", distance, quantity.Meter, "length"); err != nil {
		return quantity.Quantity{}, err
	}

	if !(distance.Value > 0) {
		return quantity.Quantity{}, domain(op, "distance", distance, "distance > 0")
	}

	if !(angle.Value >= 0) {
		return quantity.Quantity{}, domain(op, "angle", angle, "angle >= 0")
	}

	eq, err := quantity.SmallAngle(distance)
	if err != nil {
		return quantity.Quantity{}, err
	}

	return angle.ToWith(distance.Unit, eq)
}

// EnclosedMass returns the mass inside radius needed to hold matter on a
// circular orbit at velocity: M = r·v²/G, in solar masses.
//
// velocity may be signed (a line-of-sight velocity); its magnitude is
// used since the mass is non-negative either way.
func EnclosedMass(radius, velocity, g quantity.Quantity) (quantity.Quantity, error) {
	const op = "enclosed mass"

	if err := wantDim(op, "radius", radius, quantity.Meter, "length"); err != nil {
		return quantity.Quantity{}, err
	}

	if err := wantDim(op, "velocity", velocity, quantity.KilometerPerSec, "velocity"); err != nil {
		return quantity.Quantity{}, err
	}

	if err := wantDim(op, "G", g, quantity.GravitationUnit, "m3 kg-1 s-2"); err != nil {
		return quantity.Quantity{}, err
	}

	if !(radius.Value >= 0) {
		return quantity.Quantity{}, domain(op, "radius", radius, "radius >= 0")
	}

	if math.IsNaN(velocity.Value) {
		return quantity.Quantity{}, domain(op, "velocity", velocity, "velocity is a number")
	}

	if !(g.Value > 0) {
		return quantity.Quantity{}, domain(op, "G", g, "G > 0")
	}

	v2, err := velocity.Abs().Pow(2)
	if err != nil {
		return quantity.Quantity{}, err
	}

	rv2, err := radius.Mul(v2)
	if err != nil {
		return quantity.Quantity{}, err
	}

	m, err := rv2.Div(g)
	if err != nil {
		return quantity.Quantity{}, err
	}

	return m.To(quantity.SolarMass)
}

// SphereDensity returns the mean density of mass spread uniformly over a
// sphere of radius: mass / (4/3 π r³). The unit is mass.Unit / radius.Unit³.
func SphereDensity(mass, radius quantity.Quantity) (quantity.Quantity, error) {
	const op = "sphere density"

	if err := wantDim(op, "mass", mass, quantity.SolarMass, "mass"); err != nil {
		return quantity.Quantity{}, err
	}

	if err := wantDim(op, "radius", radius, quantity.Meter, "length"); err != nil {
		return quantity.Quantity{}, err
	}

	if !(radius.Value > 0) {
		return quantity.Quantity{}, domain(op, "radius", radius, "radius > 0")
	}

	if !(mass.Value >= 0) {
		return quantity.Quantity{}, domain(op, "mass", mass, "mass >= 0")
	}

	r3, err := radius.Pow(3)
	if err != nil {
		return quantity.Quantity{}, err
	}

	return mass.Div(r3.Scale(4.0 / 3.0 * math.Pi))
}

// FractionalError returns (measured - reference) / measured as a
// dimensionless ratio. Both operands must carry commensurable units; a
// bare number has to be given the measured unit by the caller first.
func FractionalError(measured, reference quantity.Quantity) (quantity.Quantity, error) {
	const op = "fractional error"

	if measured.IsScalar() || reference.IsScalar() {
		return quantity.Quantity{}, &InvalidUnitError{
			Op:     op,
			Have:   []quantity.Unit{measured.Unit, reference.Unit},
			Detail: "plain scalar operand; express it in the measured unit first",
		}
	}

	ref, err := reference.To(measured.Unit)
	if err != nil {
		return quantity.Quantity{}, err
	}

	if measured.Value == 0 {
		return quantity.Quantity{}, domain(op, "measured", measured, "measured != 0")
	}

	return quantity.New((measured.Value-ref.Value)/measured.Value, quantity.Dimensionless), nil
}
