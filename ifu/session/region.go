package session

import (
	"fmt"
	"math"

	"github.com/javerbukh/jwebbinar-prep/phys/quantity"
)

// Shape identifies the geometry of a spatial region.
type Shape int

const (
	ShapeCircle Shape = iota + 1
	ShapeRectangle
)

func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeRectangle:
		return "rectangle"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// SpatialRegion is a pixel-space region handed to the collaborator as an
// opaque handle.
type SpatialRegion struct {
	ID    string
	Shape Shape

	// Circle: centre and radius in pixels.
	X, Y, Radius float64

	// Rectangle: inclusive pixel bounds.
	XMin, YMin, XMax, YMax float64
}

// CircularRegion returns a circular region centred on (x, y).
func CircularRegion(id string, x, y, radius float64) (SpatialRegion, error) {
	if id == "" {
		return SpatialRegion{}, fmt.Errorf("%w: empty id", ErrInvalidRegion)
	}

	if !(radius > 0) || math.IsInf(radius, 0) {
		return SpatialRegion{}, fmt.Errorf("%w: %s: radius must be > 0: %g", ErrInvalidRegion, id, radius)
	}

	return SpatialRegion{ID: id, Shape: ShapeCircle, X: x, Y: y, Radius: radius}, nil
}

// RectangularRegion returns an axis-aligned rectangular region.
func RectangularRegion(id string, xmin, ymin, xmax, ymax float64) (SpatialRegion, error) {
	if id == "" {
		return SpatialRegion{}, fmt.Errorf("%w: empty id", ErrInvalidRegion)
	}

	if !(xmax > xmin) || !(ymax > ymin) {
		return SpatialRegion{}, fmt.Errorf("%w: %s: bounds must satisfy min < max", ErrInvalidRegion, id)
	}

	return SpatialRegion{ID: id, Shape: ShapeRectangle, XMin: xmin, YMin: ymin, XMax: xmax, YMax: ymax}, nil
}

// Center returns the pixel centre of the region.
func (r SpatialRegion) Center() (x, y float64) {
	if r.Shape == ShapeRectangle {
		return (r.XMin + r.XMax) / 2, (r.YMin + r.YMax) / 2
	}

	return r.X, r.Y
}

// SkyRegion is the sky projection of a spatial region.
type SkyRegion struct {
	Center quantity.SkyCoord
	Radius quantity.Quantity // angular
}

// NewSkyRegion validates the angular radius.
func NewSkyRegion(center quantity.SkyCoord, radius quantity.Quantity) (SkyRegion, error) {
	if !radius.Has(quantity.Radian) {
		return SkyRegion{}, &quantity.InvalidUnitError{Op: "sky region", Have: []quantity.Unit{radius.Unit}, Want: "angle"}
	}

	if !(radius.Value >= 0) {
		return SkyRegion{}, &quantity.DomainError{Op: "sky region", Param: "radius", Value: radius.Value, Rule: "radius >= 0"}
	}

	return SkyRegion{Center: center, Radius: radius}, nil
}

// SpectralRegion is a wavelength window selecting one emission line.
type SpectralRegion struct {
	ID    string
	Lower quantity.Quantity
	Upper quantity.Quantity
}

// NewSpectralRegion validates that both bounds are wavelengths and
// lower < upper.
func NewSpectralRegion(id string, lower, upper quantity.Quantity) (SpectralRegion, error) {
	if id == "" {
		return SpectralRegion{}, fmt.Errorf("%w: empty id", ErrInvalidRegion)
	}

	if !lower.Has(quantity.Meter) || !upper.Has(quantity.Meter) {
		return SpectralRegion{}, &quantity.InvalidUnitError{
			Op:   "spectral region " + id,
			Have: []quantity.Unit{lower.Unit, upper.Unit},
			Want: "wavelength",
		}
	}

	c, err := lower.Compare(upper)
	if err != nil {
		return SpectralRegion{}, err
	}

	if c >= 0 {
		return SpectralRegion{}, fmt.Errorf("%w: %s: lower bound %v must be below upper bound %v", ErrInvalidRegion, id, lower, upper)
	}

	return SpectralRegion{ID: id, Lower: lower, Upper: upper}, nil
}

// Contains reports whether w lies inside the window (inclusive).
func (r SpectralRegion) Contains(w quantity.Quantity) (bool, error) {
	lo, err := w.Compare(r.Lower)
	if err != nil {
		return false, err
	}

	hi, err := w.Compare(r.Upper)
	if err != nil {
		return false, err
	}

	return lo >= 0 && hi <= 0, nil
}
