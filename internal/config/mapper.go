package config

import (
	"fmt"
	"strings"

	"github.com/javerbukh/jwebbinar-prep/ifu/session"
	"github.com/javerbukh/jwebbinar-prep/phys/derive"
	"github.com/javerbukh/jwebbinar-prep/phys/quantity"
)

// Target is a fully validated derivation job: the session state built
// from the recorded regions and measurements, the constants and the plan.
type Target struct {
	Name      string
	State     session.State
	Constants derive.Constants
	Plan      derive.Plan
}

// Map validates ft and builds a Target. path is used for error context.
func Map(path string, ft FileTarget) (Target, error) {
	name := strings.TrimSpace(ft.Target)
	if name == "" {
		return Target{}, invalidMsg(path, "target", "target name is required")
	}

	state, err := mapState(path, ft)
	if err != nil {
		return Target{}, err
	}

	c, err := mapConstants(path, ft)
	if err != nil {
		return Target{}, err
	}

	plan, err := mapPlan(path, ft.Derive)
	if err != nil {
		return Target{}, err
	}

	plan.Target = name

	return Target{Name: name, State: state, Constants: c, Plan: plan}, nil
}

func quantityOf(path, field string, fq FileQuantity) (quantity.Quantity, error) {
	if strings.TrimSpace(fq.Unit) == "" {
		return quantity.Quantity{}, invalidMsg(path, field+".unit", "unit is required")
	}

	q, err := quantity.Parse(fq.Value, fq.Unit)
	if err != nil {
		return quantity.Quantity{}, invalidField(path, field, err)
	}

	return q, nil
}

func mapState(path string, ft FileTarget) (session.State, error) {
	s := session.NewState()

	for i, r := range ft.Regions.Spatial {
		field := fmt.Sprintf("regions.spatial[%d]", i)

		var (
			reg session.SpatialRegion
			err error
		)

		switch strings.ToLower(strings.TrimSpace(r.Shape)) {
		case "circle", "":
			reg, err = session.CircularRegion(r.ID, r.X, r.Y, r.Radius)
		case "rectangle", "rect":
			reg, err = session.RectangularRegion(r.ID, r.XMin, r.YMin, r.XMax, r.YMax)
		default:
			return session.State{}, invalidMsg(path, field+".shape", fmt.Sprintf("unknown shape %q", r.Shape))
		}

		if err != nil {
			return session.State{}, invalidField(path, field, err)
		}

		s = s.WithSpatialRegion(reg)
	}

	for i, r := range ft.Regions.Spectral {
		field := fmt.Sprintf("regions.spectral[%d]", i)

		lo, err := quantityOf(path, field+".lower", r.Lower)
		if err != nil {
			return session.State{}, err
		}

		hi, err := quantityOf(path, field+".upper", r.Upper)
		if err != nil {
			return session.State{}, err
		}

		reg, err := session.NewSpectralRegion(r.ID, lo, hi)
		if err != nil {
			return session.State{}, invalidField(path, field, err)
		}

		s = s.WithSpectralRegion(reg)
	}

	tool := session.StaticCollaborator{}

	for i, sk := range ft.Sky {
		field := fmt.Sprintf("sky[%d]", i)

		if _, err := s.SpatialRegion(sk.Region); err != nil {
			return session.State{}, invalidField(path, field+".region", err)
		}

		ra, err := quantityOf(path, field+".ra", sk.RA)
		if err != nil {
			return session.State{}, err
		}

		dec, err := quantityOf(path, field+".dec", sk.Dec)
		if err != nil {
			return session.State{}, err
		}

		center, err := quantity.NewSkyCoord(ra, dec)
		if err != nil {
			return session.State{}, invalidField(path, field, err)
		}

		radius := quantity.New(0, quantity.Arcsecond)
		if sk.Radius != nil {
			if radius, err = quantityOf(path, field+".radius", *sk.Radius); err != nil {
				return session.State{}, err
			}
		}

		region, err := session.NewSkyRegion(center, radius)
		if err != nil {
			return session.State{}, invalidField(path, field, err)
		}

		tool = tool.WithSky(sk.Region, region)
	}

	// Measurements are captured in file order; the last one is the active
	// selection.
	for i, m := range ft.Measurements {
		field := fmt.Sprintf("measurements[%d]", i)
		sel := session.Selection{Spatial: m.Spatial, Spectral: m.Spectral}

		fields := make(session.Fields, len(m.Fields))
		for k, v := range m.Fields {
			fields[k] = session.Field{Value: v.Value, Unit: v.Unit}
		}

		var err error

		if s, err = session.Capture(s, tool.WithLine(sel, fields), tool, sel); err != nil {
			return session.State{}, invalidField(path, field, err)
		}
	}

	return s, nil
}

func mapConstants(path string, ft FileTarget) (derive.Constants, error) {
	var opts []derive.ConstantOption

	if ft.Distance != nil {
		d, err := quantityOf(path, "distance", *ft.Distance)
		if err != nil {
			return derive.Constants{}, err
		}

		if !d.Has(quantity.Parsec) || !(d.Value > 0) {
			return derive.Constants{}, invalidMsg(path, "distance", "distance must be a positive length")
		}

		opts = append(opts, derive.WithDistance(d))
	}

	if ft.Constants.G != nil {
		g, err := quantityOf(path, "constants.g", *ft.Constants.G)
		if err != nil {
			return derive.Constants{}, err
		}

		if !g.Has(quantity.GravitationUnit) || !(g.Value > 0) {
			return derive.Constants{}, invalidMsg(path, "constants.g", "G must be positive with dimension m3 kg-1 s-2")
		}

		opts = append(opts, derive.WithGravitationalConstant(g))
	}

	if ms := ft.Constants.MSigma; ms != nil {
		coeff, err := quantityOf(path, "constants.m_sigma.coefficient", ms.Coefficient)
		if err != nil {
			return derive.Constants{}, err
		}

		pivot, err := quantityOf(path, "constants.m_sigma.pivot", ms.Pivot)
		if err != nil {
			return derive.Constants{}, err
		}

		if ms.Exponent == 0 {
			return derive.Constants{}, invalidMsg(path, "constants.m_sigma.exponent", "exponent is required")
		}

		opts = append(opts, derive.WithMSigma(derive.MSigma{Coefficient: coeff, Pivot: pivot, Exponent: ms.Exponent}))
	}

	var refs derive.References

	if r := ft.References.BlackHoleMass; r != nil {
		q, err := quantityOf(path, "references.black_hole_mass", *r)
		if err != nil {
			return derive.Constants{}, err
		}

		refs.BlackHoleMass = q
	}

	if r := ft.References.BlackHoleLogMass; r != nil {
		refs.BlackHoleLogMass = quantity.New(*r, quantity.Dimensionless)
	}

	if r := ft.References.EnclosedMass; r != nil {
		q, err := quantityOf(path, "references.enclosed_mass", *r)
		if err != nil {
			return derive.Constants{}, err
		}

		refs.EnclosedMass = q
	}

	opts = append(opts, derive.WithReferences(refs))

	return derive.ApplyConstantOptions(opts...), nil
}

func mapPlan(path string, fd FileDerive) (derive.Plan, error) {
	var plan derive.Plan

	if fd.Dispersion != nil {
		sel := session.Selection(*fd.Dispersion)
		plan.Dispersion = &sel
	}

	if r := fd.Rotation; r != nil {
		rp := derive.RotationPlan{
			Approaching: session.Selection(r.Approaching),
			Receding:    session.Selection(r.Receding),
		}

		if rp.Approaching.IsZero() || rp.Receding.IsZero() {
			return derive.Plan{}, invalidMsg(path, "derive.rotation", "approaching and receding selections are required")
		}

		if r.Angle != nil {
			a, err := quantityOf(path, "derive.rotation.angle", *r.Angle)
			if err != nil {
				return derive.Plan{}, err
			}

			rp.Angle = a
		}

		plan.Rotation = &rp
	}

	if c := fd.Curve; c != nil {
		ru, err := quantity.ParseUnit(c.RadiusUnit)
		if err != nil {
			return derive.Plan{}, invalidField(path, "derive.curve.radius_unit", err)
		}

		vu, err := quantity.ParseUnit(c.VelocityUnit)
		if err != nil {
			return derive.Plan{}, invalidField(path, "derive.curve.velocity_unit", err)
		}

		plan.Curve = &derive.RotationCurve{
			Radius:       c.Radius,
			RadiusUnit:   ru,
			Velocity:     c.Velocity,
			VelocityUnit: vu,
		}
	}

	if plan.Dispersion == nil && plan.Rotation == nil && plan.Curve == nil {
		return derive.Plan{}, invalidMsg(path, "derive", "at least one of dispersion, rotation or curve is required")
	}

	return plan, nil
}
