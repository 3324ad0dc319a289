package quantity

import (
	"math"
	"strings"
)

// Reference units fixing the dimensions an equivalency connects.
var (
	lengthRef   = Meter
	velocityRef = MeterPerSecond
	angleRef    = Radian
	freqRef     = Second.Pow(-1)
)

// Equivalency is a named, explicit conversion between two dimensions that
// are not related by a scale factor. Both directions operate on SI values.
type Equivalency struct {
	name     string
	from, to Unit
	forward  func(si float64) (float64, error)
	backward func(si float64) (float64, error)
}

// Name returns the equivalency name.
func (e Equivalency) Name() string { return e.name }

// ToWith converts q into target. Commensurable units convert directly;
// otherwise the first equivalency whose dimensions match q and target (in
// either direction) is applied. Without a matching equivalency the result
// is *InvalidUnitError.
func (q Quantity) ToWith(target Unit, eqs ...Equivalency) (Quantity, error) {
	if q.Unit.Commensurable(target) {
		return q.To(target)
	}

	if !q.Unit.IsDefined() || !target.IsDefined() {
		return Quantity{}, unitMismatch("convert", q.Unit, target)
	}

	si := q.SI()

	for _, eq := range eqs {
		var (
			out float64
			err error
		)

		switch {
		case q.Unit.Commensurable(eq.from) && target.Commensurable(eq.to):
			out, err = eq.forward(si)
		case q.Unit.Commensurable(eq.to) && target.Commensurable(eq.from):
			out, err = eq.backward(si)
		default:
			continue
		}

		if err != nil {
			return Quantity{}, err
		}

		return New(out/target.Scale(), target), nil
	}

	names := make([]string, 0, len(eqs))
	for _, eq := range eqs {
		names = append(names, eq.name)
	}

	e := unitMismatch("convert", q.Unit, target).(*InvalidUnitError)
	if len(names) > 0 {
		e.Detail += "; no matching equivalency among " + strings.Join(names, ", ")
	}

	return Quantity{}, e
}

func requirePositive(op, param string, q Quantity, ref Unit, want string) (float64, error) {
	if !q.Has(ref) {
		return 0, &InvalidUnitError{Op: op, Have: []Unit{q.Unit}, Want: want}
	}

	si := q.SI()
	if !(si > 0) || math.IsInf(si, 0) {
		return 0, &DomainError{Op: op, Param: param, Value: q.Value, Rule: param + " > 0"}
	}

	return si, nil
}

func positiveWavelength(op string) func(float64) error {
	return func(lambda float64) error {
		if !(lambda > 0) {
			return &DomainError{Op: op, Param: "wavelength", Value: lambda, Rule: "wavelength > 0"}
		}

		return nil
	}
}

func subluminal(op string, v float64) error {
	if math.Abs(v) >= SpeedOfLightSI || math.IsNaN(v) {
		return &DomainError{Op: op, Param: "velocity", Value: v, Rule: "|velocity| < c"}
	}

	return nil
}

// DopplerRelativistic returns the relativistic Doppler equivalency between
// wavelength and line-of-sight velocity anchored at rest:
//
//	v = c (λ² - λ0²) / (λ² + λ0²)
//	λ = λ0 sqrt((c + v) / (c - v))
func DopplerRelativistic(rest Quantity) (Equivalency, error) {
	const op = "doppler relativistic"

	l0, err := requirePositive(op, "rest wavelength", rest, Meter, "wavelength")
	if err != nil {
		return Equivalency{}, err
	}

	check := positiveWavelength(op)
	l02 := l0 * l0

	return Equivalency{
		name: op,
		from: lengthRef,
		to:   velocityRef,
		forward: func(lambda float64) (float64, error) {
			if err := check(lambda); err != nil {
				return 0, err
			}

			l2 := lambda * lambda
			return SpeedOfLightSI * (l2 - l02) / (l2 + l02), nil
		},
		backward: func(v float64) (float64, error) {
			if err := subluminal(op, v); err != nil {
				return 0, err
			}

			return l0 * math.Sqrt((SpeedOfLightSI+v)/(SpeedOfLightSI-v)), nil
		},
	}, nil
}

// DopplerOptical returns the optical-convention Doppler equivalency:
//
//	v = c (λ - λ0) / λ0
func DopplerOptical(rest Quantity) (Equivalency, error) {
	const op = "doppler optical"

	l0, err := requirePositive(op, "rest wavelength", rest, Meter, "wavelength")
	if err != nil {
		return Equivalency{}, err
	}

	check := positiveWavelength(op)

	return Equivalency{
		name: op,
		from: lengthRef,
		to:   velocityRef,
		forward: func(lambda float64) (float64, error) {
			if err := check(lambda); err != nil {
				return 0, err
			}

			return SpeedOfLightSI * (lambda - l0) / l0, nil
		},
		backward: func(v float64) (float64, error) {
			if v <= -SpeedOfLightSI {
				return 0, &DomainError{Op: op, Param: "velocity", Value: v, Rule: "velocity > -c"}
			}

			return l0 * (1 + v/SpeedOfLightSI), nil
		},
	}, nil
}

// DopplerRadio returns the radio-convention Doppler equivalency:
//
//	v = c (1 - λ0/λ)
func DopplerRadio(rest Quantity) (Equivalency, error) {
	const op = "doppler radio"

	l0, err := requirePositive(op, "rest wavelength", rest, Meter, "wavelength")
	if err != nil {
		return Equivalency{}, err
	}

	check := positiveWavelength(op)

	return Equivalency{
		name: op,
		from: lengthRef,
		to:   velocityRef,
		forward: func(lambda float64) (float64, error) {
			if err := check(lambda); err != nil {
				return 0, err
			}

			return SpeedOfLightSI * (1 - l0/lambda), nil
		},
		backward: func(v float64) (float64, error) {
			if v >= SpeedOfLightSI {
				return 0, &DomainError{Op: op, Param: "velocity", Value: v, Rule: "velocity < c"}
			}

			return l0 / (1 - v/SpeedOfLightSI), nil
		},
	}, nil
}

// Spectral returns the wavelength/frequency equivalency λ = c / ν.
func Spectral() Equivalency {
	const op = "spectral"

	invert := func(x float64) (float64, error) {
		if !(x > 0) {
			return 0, &DomainError{Op: op, Param: "spectral coordinate", Value: x, Rule: "> 0"}
		}

		return SpeedOfLightSI / x, nil
	}

	return Equivalency{name: op, from: lengthRef, to: freqRef, forward: invert, backward: invert}
}

// SmallAngle returns the small-angle equivalency between an angle and the
// projected length it subtends at distance: L = D·θ with θ in radians.
//
// The approximation degrades for large angles. That is a modelling
// assumption, so no upper bound is enforced.
func SmallAngle(distance Quantity) (Equivalency, error) {
	const op = "small angle"

	d, err := requirePositive(op, "distance", distance, Meter, "length")
	if err != nil {
		return Equivalency{}, err
	}

	return Equivalency{
		name: op,
		from: angleRef,
		to:   lengthRef,
		forward: func(theta float64) (float64, error) {
			return d * theta, nil
		},
		backward: func(l float64) (float64, error) {
			return l / d, nil
		},
	}, nil
}
