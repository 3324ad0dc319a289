package quantity

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gonum.org/v1/gonum/unit"
)

// registry maps accepted unit names (including aliases) to units.
var registry = map[string]Unit{
	// length
	"m":        Meter,
	"cm":       baseUnit("cm", unit.Centi, unit.LengthDim),
	"mm":       baseUnit("mm", unit.Milli, unit.LengthDim),
	"um":       Micrometer,
	"µm":       Micrometer,
	"μm":       Micrometer,
	"micron":   Micrometer,
	"nm":       baseUnit("nm", unit.Nano, unit.LengthDim),
	"Angstrom": Angstrom,
	"AA":       Angstrom,
	"Å":        Angstrom,
	"km":       baseUnit("km", unit.Kilo, unit.LengthDim),
	"au":       baseUnit("au", AstronomicalUnitSI, unit.LengthDim),
	"AU":       baseUnit("au", AstronomicalUnitSI, unit.LengthDim),
	"lyr":      baseUnit("lyr", LightYearSI, unit.LengthDim),
	"ly":       baseUnit("lyr", LightYearSI, unit.LengthDim),
	"pc":       Parsec,
	"kpc":      baseUnit("kpc", unit.Kilo*ParsecSI, unit.LengthDim),
	"Mpc":      Megaparsec,

	// mass
	"kg":      Kilogram,
	"g":       baseUnit("g", unit.Milli, unit.MassDim),
	"Msun":    SolarMass,
	"M_sun":   SolarMass,
	"solMass": SolarMass,

	// time
	"s":   Second,
	"min": baseUnit("min", 60, unit.TimeDim),
	"h":   baseUnit("h", 3600, unit.TimeDim),
	"d":   baseUnit("d", 86400, unit.TimeDim),
	"yr":  baseUnit("yr", JulianYearSI, unit.TimeDim),
	"Myr": baseUnit("Myr", unit.Mega*JulianYearSI, unit.TimeDim),
	"Gyr": baseUnit("Gyr", unit.Giga*JulianYearSI, unit.TimeDim),

	// angle
	"rad":    Radian,
	"deg":    Degree,
	"arcmin": baseUnit("arcmin", math.Pi/10800, unit.AngleDim),
	"arcsec": Arcsecond,
	"mas":    baseUnit("mas", math.Pi/648000000, unit.AngleDim),

	// frequency
	"Hz":  Second.Pow(-1).WithSymbol("Hz"),
	"kHz": baseUnit("s", unit.Milli, unit.TimeDim).Pow(-1).WithSymbol("kHz"),
	"MHz": baseUnit("s", unit.Micro, unit.TimeDim).Pow(-1).WithSymbol("MHz"),
	"GHz": baseUnit("s", unit.Nano, unit.TimeDim).Pow(-1).WithSymbol("GHz"),
}

var tokenPattern = regexp.MustCompile(`^([^\s\d^*+-]+)(?:(?:\*\*|\^)?([+-]?\d+))?$`)

var (
	parseCacheMu sync.RWMutex
	parseCache   = map[string]Unit{}
)

// ParseUnit parses a unit expression.
//
// Accepted forms are whitespace or '*' separated factors, each a unit name
// with an optional integer exponent ("pc3", "pc^3", "pc**3", "s-1"), and
// at most one '/' whose right-hand side is entirely in the denominator:
//
//	km/s
//	km s-1
//	Msun / pc3
//	m3 kg-1 s-2
//
// The empty string, "1" and "dimensionless" parse to [Dimensionless].
func ParseUnit(s string) (Unit, error) {
	expr := strings.Join(strings.Fields(s), " ")

	switch expr {
	case "", "1", "dimensionless":
		return Dimensionless, nil
	}

	parseCacheMu.RLock()
	u, ok := parseCache[expr]
	parseCacheMu.RUnlock()
	if ok {
		return u, nil
	}

	u, err := parseExpr(expr)
	if err != nil {
		return Unit{}, err
	}

	parseCacheMu.Lock()
	parseCache[expr] = u
	parseCacheMu.Unlock()

	return u, nil
}

// MustParseUnit is like ParseUnit but panics on error. Intended for
// package-level unit variables and tests.
func MustParseUnit(s string) Unit {
	u, err := ParseUnit(s)
	if err != nil {
		panic(err)
	}

	return u
}

// KnownUnits returns the sorted list of accepted unit names.
func KnownUnits() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func parseExpr(expr string) (Unit, error) {
	num, den, hasDen := strings.Cut(expr, "/")
	if hasDen && strings.Contains(den, "/") {
		return Unit{}, &InvalidUnitError{Op: "parse", Detail: "more than one '/' in " + strconv.Quote(expr)}
	}

	u := Dimensionless

	numUnit, err := parseFactors(num, 1, expr)
	if err != nil {
		return Unit{}, err
	}

	u = u.Mul(numUnit)

	if hasDen {
		denUnit, err := parseFactors(den, -1, expr)
		if err != nil {
			return Unit{}, err
		}

		if denUnit.IsDimensionless() && denUnit.Scale() == 1 {
			return Unit{}, &InvalidUnitError{Op: "parse", Detail: "empty denominator in " + strconv.Quote(expr)}
		}

		u = u.Mul(denUnit)
	}

	if err := checkExponents("parse", u); err != nil {
		return Unit{}, err
	}

	return u.WithSymbol(expr), nil
}

func parseFactors(part string, sign int, expr string) (Unit, error) {
	u := Dimensionless

	fields := strings.FieldsFunc(part, func(r rune) bool {
		return r == ' ' || r == '·'
	})

	for _, f := range fields {
		for _, tok := range splitStar(f) {
			if tok == "1" {
				continue
			}

			m := tokenPattern.FindStringSubmatch(tok)
			if m == nil {
				return Unit{}, &InvalidUnitError{Op: "parse", Detail: "malformed factor " + strconv.Quote(tok) + " in " + strconv.Quote(expr)}
			}

			base, ok := registry[m[1]]
			if !ok {
				return Unit{}, &InvalidUnitError{Op: "parse", Detail: "unknown unit " + strconv.Quote(m[1])}
			}

			exp := 1
			if m[2] != "" {
				n, err := strconv.Atoi(m[2])
				if err != nil {
					return Unit{}, &InvalidUnitError{Op: "parse", Detail: "bad exponent in " + strconv.Quote(tok)}
				}

				exp = n
			}

			if exp > maxExponent || exp < -maxExponent {
				return Unit{}, &InvalidUnitError{Op: "parse", Detail: "exponent out of range in " + strconv.Quote(tok)}
			}

			u = u.Mul(base.Pow(sign * exp))
		}
	}

	return u, nil
}

// splitStar splits a factor on single '*' while keeping "**" exponents.
func splitStar(f string) []string {
	if !strings.Contains(f, "*") {
		return []string{f}
	}

	var (
		out []string
		cur strings.Builder
	)

	for i := 0; i < len(f); i++ {
		if f[i] == '*' {
			if i+1 < len(f) && f[i+1] == '*' {
				cur.WriteString("**")
				i++

				continue
			}

			if cur.Len() > 0 {
				out = append(out, cur.String())
				cur.Reset()
			}

			continue
		}

		cur.WriteByte(f[i])
	}

	if cur.Len() > 0 {
		out = append(out, cur.String())
	}

	return out
}
