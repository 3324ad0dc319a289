package derive

import (
	"fmt"
	"log/slog"

	"github.com/javerbukh/jwebbinar-prep/ifu/session"
	"github.com/javerbukh/jwebbinar-prep/phys/quantity"
)

// Caveats attached to results.
const (
	CaveatInclination = "velocities are line-of-sight and not corrected for inclination; masses are lower limits"
	CaveatSmallAngle  = "projected distance uses the small-angle approximation"
	CaveatSphere      = "density assumes the enclosed mass is spread uniformly over a sphere"
)

// RotationPlan names the two sides of a rotating disk. Angle is their
// angular separation; when it is the zero Quantity the separation of the
// two spatial regions' sky projections is used.
type RotationPlan struct {
	Approaching session.Selection
	Receding    session.Selection
	Angle       quantity.Quantity
}

// Plan lists which derivations to run. A nil branch is skipped. A
// Dispersion selection with empty IDs means the state's active selection.
type Plan struct {
	Target     string
	Dispersion *session.Selection
	Rotation   *RotationPlan
	Curve      *RotationCurve
}

// DispersionResult is the black-hole mass estimate from one line width.
type DispersionResult struct {
	Measurement   session.LineMeasurement
	Sigma         quantity.Quantity
	BlackHoleMass quantity.Quantity
	LogMass       quantity.Quantity
}

// RotationResult is the enclosed-mass estimate from two regions.
type RotationResult struct {
	Approaching  session.LineMeasurement
	Receding     session.LineMeasurement
	Velocity     quantity.Quantity
	Angle        quantity.Quantity
	Radius       quantity.Quantity
	EnclosedMass quantity.Quantity
	Density      quantity.Quantity
}

// Comparison is a derived value set against its literature reference.
type Comparison struct {
	Name            string
	Measured        quantity.Quantity
	Reference       quantity.Quantity
	FractionalError quantity.Quantity
}

// Result is everything one Run derived.
type Result struct {
	Target      string
	Dispersion  *DispersionResult
	Rotation    *RotationResult
	Profile     *Profile
	Comparisons []Comparison
	Caveats     []string
}

// Pipeline runs a Plan against a session state with fixed constants.
type Pipeline struct {
	c      Constants
	logger *slog.Logger
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets the logger used for per-step debug output.
func WithLogger(l *slog.Logger) PipelineOption {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewPipeline returns a pipeline using c.
func NewPipeline(c Constants, opts ...PipelineOption) *Pipeline {
	p := &Pipeline{c: c, logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	return p
}

// Constants returns the constants the pipeline was built with.
func (p *Pipeline) Constants() Constants { return p.c }

// Run executes every non-nil branch of plan. The first failure aborts the
// run; no partial Result is returned.
func (p *Pipeline) Run(state session.State, plan Plan) (Result, error) {
	if plan.Dispersion == nil && plan.Rotation == nil && plan.Curve == nil {
		return Result{}, absent("pipeline", "plan has no dispersion, rotation or curve step")
	}

	res := Result{Target: plan.Target}
	caveats := map[string]bool{}

	if plan.Dispersion != nil {
		d, err := p.dispersion(state, *plan.Dispersion)
		if err != nil {
			return Result{}, fmt.Errorf("dispersion: %w", err)
		}

		res.Dispersion = &d
		caveats[CaveatInclination] = true

		if cmp, ok, err := p.compare("black hole mass", d.BlackHoleMass, p.c.References.BlackHoleMass); err != nil {
			return Result{}, fmt.Errorf("dispersion: %w", err)
		} else if ok {
			res.Comparisons = append(res.Comparisons, cmp)
		}

		if cmp, ok, err := p.compare("log black hole mass", d.LogMass, p.c.References.BlackHoleLogMass); err != nil {
			return Result{}, fmt.Errorf("dispersion: %w", err)
		} else if ok {
			res.Comparisons = append(res.Comparisons, cmp)
		}
	}

	if plan.Rotation != nil {
		r, err := p.rotation(state, *plan.Rotation)
		if err != nil {
			return Result{}, fmt.Errorf("rotation: %w", err)
		}

		res.Rotation = &r
		caveats[CaveatInclination] = true
		caveats[CaveatSmallAngle] = true
		caveats[CaveatSphere] = true

		if cmp, ok, err := p.compare("enclosed mass", r.EnclosedMass, p.c.References.EnclosedMass); err != nil {
			return Result{}, fmt.Errorf("rotation: %w", err)
		} else if ok {
			res.Comparisons = append(res.Comparisons, cmp)
		}
	}

	if plan.Curve != nil {
		prof, err := EnclosedMassProfile(*plan.Curve, p.c.G)
		if err != nil {
			return Result{}, fmt.Errorf("curve: %w", err)
		}

		p.logger.Debug("enclosed mass profile", "points", len(prof.Mass))

		res.Profile = &prof
		caveats[CaveatInclination] = true
	}

	for _, c := range []string{CaveatInclination, CaveatSmallAngle, CaveatSphere} {
		if caveats[c] {
			res.Caveats = append(res.Caveats, c)
		}
	}

	return res, nil
}

func (p *Pipeline) dispersion(state session.State, sel session.Selection) (DispersionResult, error) {
	var (
		m   session.LineMeasurement
		err error
	)

	if sel.IsZero() {
		m, err = state.ActiveMeasurement()
	} else {
		m, err = state.Measurement(sel)
	}

	if err != nil {
		return DispersionResult{}, err
	}

	sigma, err := DispersionFromWidth(m)
	if err != nil {
		return DispersionResult{}, err
	}

	mass, err := BlackHoleMass(sigma, p.c.MSigma)
	if err != nil {
		return DispersionResult{}, err
	}

	logm, err := LogMass(mass)
	if err != nil {
		return DispersionResult{}, err
	}

	p.logger.Debug("velocity dispersion",
		"selection", m.Selection.String(),
		"sigma", sigma.String(),
		"mass", mass.String())

	return DispersionResult{Measurement: m, Sigma: sigma, BlackHoleMass: mass, LogMass: logm}, nil
}

func (p *Pipeline) rotation(state session.State, rp RotationPlan) (RotationResult, error) {
	a, err := state.Measurement(rp.Approaching)
	if err != nil {
		return RotationResult{}, err
	}

	b, err := state.Measurement(rp.Receding)
	if err != nil {
		return RotationResult{}, err
	}

	v, err := RotationVelocity(a, b)
	if err != nil {
		return RotationResult{}, err
	}

	angle := rp.Angle
	if !angle.Unit.IsDefined() {
		if angle, err = skySeparation(state, rp.Approaching.Spatial, rp.Receding.Spatial); err != nil {
			return RotationResult{}, err
		}
	}

	if !p.c.Distance.Unit.IsDefined() {
		return RotationResult{}, absent("projected distance", "distance to target")
	}

	radius, err := ProjectedDistance(angle, p.c.Distance)
	if err != nil {
		return RotationResult{}, err
	}

	if radius, err = radius.To(quantity.Parsec); err != nil {
		return RotationResult{}, err
	}

	mass, err := EnclosedMass(radius, v, p.c.G)
	if err != nil {
		return RotationResult{}, err
	}

	density, err := SphereDensity(mass, radius)
	if err != nil {
		return RotationResult{}, err
	}

	p.logger.Debug("rotation",
		"velocity", v.String(),
		"angle", angle.String(),
		"radius", radius.String(),
		"mass", mass.String())

	return RotationResult{
		Approaching:  a,
		Receding:     b,
		Velocity:     v,
		Angle:        angle,
		Radius:       radius,
		EnclosedMass: mass,
		Density:      density,
	}, nil
}

func skySeparation(state session.State, a, b string) (quantity.Quantity, error) {
	skyA, err := state.SkyRegion(a)
	if err != nil {
		return quantity.Quantity{}, err
	}

	skyB, err := state.SkyRegion(b)
	if err != nil {
		return quantity.Quantity{}, err
	}

	return quantity.Separation(skyA.Center, skyB.Center), nil
}

func (p *Pipeline) compare(name string, measured, reference quantity.Quantity) (Comparison, bool, error) {
	if !reference.Unit.IsDefined() {
		return Comparison{}, false, nil
	}

	fe, err := FractionalError(measured, reference)
	if err != nil {
		return Comparison{}, false, err
	}

	p.logger.Debug("comparison", "name", name, "fractional_error", fe.Value)

	return Comparison{Name: name, Measured: measured, Reference: reference, FractionalError: fe}, true, nil
}
