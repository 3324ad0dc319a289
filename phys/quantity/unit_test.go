package quantity

import (
	"errors"
	"maps"
	"math"
	"testing"

	"gonum.org/v1/gonum/unit"
)

var (
	dLength   = unit.Dimensions{unit.LengthDim: 1}
	dMass     = unit.Dimensions{unit.MassDim: 1}
	dVelocity = unit.Dimensions{unit.LengthDim: 1, unit.TimeDim: -1}
)

func TestParseUnitScales(t *testing.T) {
	tests := []struct {
		expr  string
		scale float64
		dim   unit.Dimensions
	}{
		{"m", 1, dLength},
		{"um", 1e-6, dLength},
		{"micron", 1e-6, dLength},
		{"Angstrom", 1e-10, dLength},
		{"km/s", 1e3, dVelocity},
		{"km s-1", 1e3, dVelocity},
		{"km / s", 1e3, dVelocity},
		{"Msun", SolarMassSI, dMass},
		{"Msun / pc3", SolarMassSI / (ParsecSI * ParsecSI * ParsecSI), unit.Dimensions{unit.LengthDim: -3, unit.MassDim: 1}},
		{"Msun / pc^3", SolarMassSI / (ParsecSI * ParsecSI * ParsecSI), unit.Dimensions{unit.LengthDim: -3, unit.MassDim: 1}},
		{"Msun pc**-3", SolarMassSI / (ParsecSI * ParsecSI * ParsecSI), unit.Dimensions{unit.LengthDim: -3, unit.MassDim: 1}},
		{"m3 kg-1 s-2", 1, unit.Dimensions{unit.LengthDim: 3, unit.MassDim: -1, unit.TimeDim: -2}},
		{"m^3 / (kg s^2)", 0, nil},
		{"arcsec", math.Pi / 648000, unit.Dimensions{unit.AngleDim: 1}},
		{"GHz", 1e9, unit.Dimensions{unit.TimeDim: -1}},
		{"kg*m", 1, unit.Dimensions{unit.LengthDim: 1, unit.MassDim: 1}},
		{"m200", 1, unit.Dimensions{unit.LengthDim: 200}},
	}

	for _, tt := range tests {
		u, err := ParseUnit(tt.expr)
		if tt.scale == 0 {
			if err == nil {
				t.Fatalf("ParseUnit(%q): expected error", tt.expr)
			}

			continue
		}

		if err != nil {
			t.Fatalf("ParseUnit(%q): %v", tt.expr, err)
		}

		if math.Abs(u.Scale()-tt.scale) > 1e-12*tt.scale {
			t.Fatalf("ParseUnit(%q) scale = %g, want %g", tt.expr, u.Scale(), tt.scale)
		}

		if !maps.Equal(u.Dimensions(), tt.dim) {
			t.Fatalf("ParseUnit(%q) dims = %v, want %v", tt.expr, u.Dimensions(), tt.dim)
		}

		if u.Symbol() == "" {
			t.Fatalf("ParseUnit(%q) lost its symbol", tt.expr)
		}
	}
}

func TestParseUnitDimensionless(t *testing.T) {
	for _, expr := range []string{"", "  ", "1", "dimensionless"} {
		u, err := ParseUnit(expr)
		if err != nil {
			t.Fatalf("ParseUnit(%q): %v", expr, err)
		}

		if !u.IsDimensionless() {
			t.Fatalf("ParseUnit(%q) = %v, want dimensionless", expr, u)
		}
	}
}

func TestParseUnitErrors(t *testing.T) {
	for _, expr := range []string{"furlong", "km/s/s", "m^x", "km/", "m3000000000", "m99999999999999999999", "m2147483647 m"} {
		_, err := ParseUnit(expr)
		if err == nil {
			t.Fatalf("ParseUnit(%q): expected error", expr)
		}

		if !errors.Is(err, ErrInvalidUnit) {
			t.Fatalf("ParseUnit(%q) error %v does not match ErrInvalidUnit", expr, err)
		}
	}
}

func TestUnitAlgebra(t *testing.T) {
	pc3 := Parsec.Pow(3)
	if pc3.Exponent(unit.LengthDim) != 3 {
		t.Fatalf("pc^3 length exponent = %d", pc3.Exponent(unit.LengthDim))
	}

	if got := SolarMassDensity.Symbol(); got != "Msun / pc3" {
		t.Fatalf("density symbol = %q", got)
	}

	g := MustParseUnit("pc Msun-1 km2 s-2")
	if !GravitationUnit.Commensurable(g) {
		t.Fatalf("%v should be commensurable with %v", g, GravitationUnit)
	}

	ratio := KilometerPerSec.Div(MeterPerSecond)
	if !ratio.IsDimensionless() || math.Abs(ratio.Scale()-1e3) > 1e-12 {
		t.Fatalf("km/s / m/s = %v scale %g", ratio.Dimensions(), ratio.Scale())
	}

	if Arcsecond.Commensurable(Dimensionless) || Radian.Exponent(unit.AngleDim) != 1 {
		t.Fatal("angle must be a dimension of its own")
	}

	if (Unit{}).Commensurable(Unit{}) {
		t.Fatal("undefined units must never be commensurable")
	}
}

func TestConversionFactor(t *testing.T) {
	f, err := Megaparsec.ConversionFactor(Parsec)
	if err != nil {
		t.Fatalf("ConversionFactor: %v", err)
	}

	if math.Abs(f-1e6) > 1e-6 {
		t.Fatalf("Mpc->pc = %g, want 1e6", f)
	}

	if _, err := SolarMass.ConversionFactor(Parsec); !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("Msun->pc error = %v, want ErrInvalidUnit", err)
	}
}

func TestUnitString(t *testing.T) {
	if got := (Unit{}).String(); got != "<none>" {
		t.Fatalf("zero unit String = %q", got)
	}

	if got := Dimensionless.String(); got != "dimensionless" {
		t.Fatalf("Dimensionless String = %q", got)
	}

	if got := MeterPerSecond.dimString(); got != "m s^-1" {
		t.Fatalf("m/s dimensions = %q", got)
	}
}

func TestUnitAlgebraLeavesOperandsUntouched(t *testing.T) {
	_ = Parsec.Mul(SolarMass).Div(Second).Pow(4)

	if !maps.Equal(Parsec.Dimensions(), dLength) || Parsec.Scale() != ParsecSI {
		t.Fatalf("Parsec changed to %v scale %g", Parsec.Dimensions(), Parsec.Scale())
	}

	d := Meter.Dimensions()
	d[unit.LengthDim] = 7

	if Meter.Exponent(unit.LengthDim) != 1 {
		t.Fatal("Dimensions must return a copy")
	}
}
