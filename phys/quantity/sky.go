package quantity

import "math"

// SkyCoord is a celestial position. Both angles are stored in radians.
type SkyCoord struct {
	ra, dec float64
}

// NewSkyCoord builds a position from right ascension and declination
// angles in any angular unit. |dec| must not exceed 90 degrees.
func NewSkyCoord(ra, dec Quantity) (SkyCoord, error) {
	const op = "sky coordinate"

	if !ra.Has(Radian) {
		return SkyCoord{}, &InvalidUnitError{Op: op, Have: []Unit{ra.Unit}, Want: "angle", Detail: "right ascension"}
	}

	if !dec.Has(Radian) {
		return SkyCoord{}, &InvalidUnitError{Op: op, Have: []Unit{dec.Unit}, Want: "angle", Detail: "declination"}
	}

	d := dec.SI()
	if math.Abs(d) > math.Pi/2 {
		return SkyCoord{}, &DomainError{Op: op, Param: "declination", Value: dec.Value, Rule: "|dec| <= 90 deg"}
	}

	return SkyCoord{ra: ra.SI(), dec: d}, nil
}

// RA returns the right ascension in degrees.
func (c SkyCoord) RA() Quantity {
	return New(c.ra*180/math.Pi, Degree)
}

// Dec returns the declination in degrees.
func (c SkyCoord) Dec() Quantity {
	return New(c.dec*180/math.Pi, Degree)
}

// Separation returns the great-circle angle between a and b in arcseconds.
// It uses the Vincenty formula, which stays accurate for both tiny and
// antipodal separations.
func Separation(a, b SkyCoord) Quantity {
	dra := b.ra - a.ra
	sdra, cdra := math.Sincos(dra)
	s1, c1 := math.Sincos(a.dec)
	s2, c2 := math.Sincos(b.dec)

	x := c2 * sdra
	y := c1*s2 - s1*c2*cdra
	num := math.Hypot(x, y)
	den := s1*s2 + c1*c2*cdra

	return New(math.Atan2(num, den)*648000/math.Pi, Arcsecond)
}
