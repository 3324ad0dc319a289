package derive

import "github.com/javerbukh/jwebbinar-prep/phys/quantity"

// MSigma is a power-law M–σ relation: M = Coefficient · (σ/Pivot)^Exponent.
type MSigma struct {
	Coefficient quantity.Quantity // mass
	Pivot       quantity.Quantity // velocity
	Exponent    float64
}

// DefaultMSigma returns the relation with coefficient 1.349e8 M_sun,
// pivot 200 km/s and exponent 4.02.
func DefaultMSigma() MSigma {
	return MSigma{
		Coefficient: quantity.New(1.349e8, quantity.SolarMass),
		Pivot:       quantity.New(200, quantity.KilometerPerSec),
		Exponent:    4.02,
	}
}

// References holds literature values the derived quantities are compared
// against. A field left as the zero Quantity is not compared.
type References struct {
	BlackHoleMass    quantity.Quantity
	BlackHoleLogMass quantity.Quantity // dimensionless, log10(M/M_sun)
	EnclosedMass     quantity.Quantity
}

// Constants collects the physical and literature inputs of a derivation.
// Distance is target specific; the zero Quantity means "not supplied".
type Constants struct {
	G          quantity.Quantity
	MSigma     MSigma
	Distance   quantity.Quantity
	References References
}

// ConstantOption mutates a Constants value.
type ConstantOption func(*Constants)

// DefaultConstants returns CODATA G and the default M–σ relation.
func DefaultConstants() Constants {
	return Constants{
		G:      quantity.GravitationalConstant,
		MSigma: DefaultMSigma(),
	}
}

// WithGravitationalConstant overrides G. Quantities without the dimension
// of G are ignored.
func WithGravitationalConstant(g quantity.Quantity) ConstantOption {
	return func(c *Constants) {
		if g.Has(quantity.GravitationUnit) && g.Value > 0 {
			c.G = g
		}
	}
}

// WithMSigma replaces the M–σ relation.
func WithMSigma(rel MSigma) ConstantOption {
	return func(c *Constants) {
		c.MSigma = rel
	}
}

// WithDistance sets the distance to the target.
func WithDistance(d quantity.Quantity) ConstantOption {
	return func(c *Constants) {
		c.Distance = d
	}
}

// WithReferences sets the literature comparison values.
func WithReferences(r References) ConstantOption {
	return func(c *Constants) {
		c.References = r
	}
}

// ApplyConstantOptions applies zero or more options to the defaults.
func ApplyConstantOptions(opts ...ConstantOption) Constants {
	c := DefaultConstants()
	for _, opt := range opts {
		if opt != nil {
			opt(&c)
		}
	}

	return c
}
