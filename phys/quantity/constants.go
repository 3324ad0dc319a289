package quantity

import (
	"math"

	"gonum.org/v1/gonum/unit"
)

// SI values of the constants used by the unit table and the derivations.
const (
	SpeedOfLightSI          = 299792458.0           // m s-1
	GravitationalConstantSI = 6.67430e-11           // m3 kg-1 s-2 (CODATA 2018)
	SolarMassSI             = 1.988409870698051e30  // kg (IAU 2015 nominal GM / G)
	ParsecSI                = 3.0856775814913673e16 // m
	AstronomicalUnitSI      = 1.495978707e11        // m
	LightYearSI             = 9.4607304725808e15    // m (Julian year)
	JulianYearSI            = 365.25 * 86400.0      // s
)

// Base units.
var (
	Meter    = fromUniter("m", unit.Length(1))
	Kilogram = fromUniter("kg", unit.Mass(1))
	Second   = fromUniter("s", unit.Time(1))
	Radian   = fromUniter("rad", unit.Angle(1))
)

// Frequently used derived units.
var (
	Micrometer       = baseUnit("um", unit.Micro, unit.LengthDim)
	Angstrom         = baseUnit("Angstrom", 1e-10, unit.LengthDim)
	Parsec           = baseUnit("pc", ParsecSI, unit.LengthDim)
	Megaparsec       = baseUnit("Mpc", unit.Mega*ParsecSI, unit.LengthDim)
	SolarMass        = baseUnit("Msun", SolarMassSI, unit.MassDim)
	Degree           = baseUnit("deg", math.Pi/180, unit.AngleDim)
	Arcsecond        = baseUnit("arcsec", math.Pi/648000, unit.AngleDim)
	KilometerPerSec  = baseUnit("km", unit.Kilo, unit.LengthDim).Div(Second).WithSymbol("km/s")
	MeterPerSecond   = Meter.Div(Second).WithSymbol("m/s")
	GravitationUnit  = Meter.Pow(3).Mul(Kilogram.Pow(-1)).Mul(Second.Pow(-2)).WithSymbol("m3 kg-1 s-2")
	SolarMassDensity = SolarMass.Div(Parsec.Pow(3))
)

// Physical constants as quantities.
var (
	SpeedOfLight          = New(SpeedOfLightSI, MeterPerSecond)
	GravitationalConstant = New(GravitationalConstantSI, GravitationUnit)
)
