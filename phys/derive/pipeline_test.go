package derive

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/javerbukh/jwebbinar-prep/ifu/session"
	"github.com/javerbukh/jwebbinar-prep/internal/testutil"
	"github.com/javerbukh/jwebbinar-prep/phys/quantity"
)

var (
	nucleus = session.Selection{Spatial: "nucleus", Spectral: "hbeta"}
	east    = session.Selection{Spatial: "east", Spectral: "hbeta"}
	west    = session.Selection{Spatial: "west", Spectral: "hbeta"}
)

func fields(centroid, sigma float64) session.Fields {
	return session.Fields{
		"centroid":    {Value: centroid, Unit: "um"},
		"sigma_width": {Value: sigma, Unit: "um"},
	}
}

func sky(t *testing.T, raDeg float64) session.SkyRegion {
	t.Helper()

	c, err := quantity.NewSkyCoord(quantity.New(raDeg, quantity.Degree), quantity.New(0, quantity.Degree))
	if err != nil {
		t.Fatalf("NewSkyCoord: %v", err)
	}

	r, err := session.NewSkyRegion(c, quantity.MustParse(0.1, "arcsec"))
	if err != nil {
		t.Fatalf("NewSkyRegion: %v", err)
	}

	return r
}

// ngcState records a nucleus measurement plus two disk regions 0.5 arcsec
// apart on the sky.
func ngcState(t *testing.T) session.State {
	t.Helper()

	s := session.NewState()

	for _, r := range []struct {
		id   string
		x, y float64
	}{{"nucleus", 22, 22}, {"east", 30, 22}, {"west", 14, 22}} {
		reg, err := session.CircularRegion(r.id, r.x, r.y, 2)
		if err != nil {
			t.Fatalf("CircularRegion(%s): %v", r.id, err)
		}

		s = s.WithSpatialRegion(reg)
	}

	hb, err := session.NewSpectralRegion("hbeta", um(4.84), um(4.88))
	if err != nil {
		t.Fatalf("NewSpectralRegion: %v", err)
	}

	s = s.WithSpectralRegion(hb)

	halfArcsecDeg := 0.5 / 3600

	tool := session.StaticCollaborator{}.
		WithLine(nucleus, fields(4.861, 0.0021)).
		WithLine(east, fields(4.859, 0.002)).
		WithLine(west, fields(4.863, 0.002)).
		WithSky("east", sky(t, 180)).
		WithSky("west", sky(t, 180+halfArcsecDeg))

	for _, sel := range []session.Selection{east, west, nucleus} {
		if s, err = session.Capture(s, tool, tool, sel); err != nil {
			t.Fatalf("Capture(%s): %v", sel, err)
		}
	}

	return s
}

func ngcConstants() Constants {
	return ApplyConstantOptions(
		WithDistance(quantity.MustParse(13.3, "Mpc")),
		WithReferences(References{
			BlackHoleMass:    msun(2.0e7),
			BlackHoleLogMass: quantity.New(7.3, quantity.Dimensionless),
		}),
	)
}

func TestPipelineDispersion(t *testing.T) {
	p := NewPipeline(ngcConstants())

	res, err := p.Run(ngcState(t), Plan{Target: "NGC 4151", Dispersion: &session.Selection{}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Dispersion == nil || res.Rotation != nil || res.Profile != nil {
		t.Fatalf("unexpected branches: %+v", res)
	}

	d := res.Dispersion
	if d.Measurement.Selection != nucleus {
		t.Fatalf("active selection = %v, want %v", d.Measurement.Selection, nucleus)
	}

	testutil.RequireClose(t, "sigma", d.Sigma.Value, 129.48532664998825, 1e-9)
	testutil.RequireClose(t, "mass", d.BlackHoleMass.Value, 23496220.278969426, 1e-9)
	testutil.RequireClose(t, "log mass", d.LogMass.Value, 7.370998005079796, 1e-9)

	if len(res.Comparisons) != 2 {
		t.Fatalf("comparisons = %d, want 2", len(res.Comparisons))
	}

	want := (23496220.278969426 - 2.0e7) / 23496220.278969426
	testutil.RequireClose(t, "mass fractional error", res.Comparisons[0].FractionalError.Value, want, 1e-9)

	if len(res.Caveats) != 1 || res.Caveats[0] != CaveatInclination {
		t.Fatalf("caveats = %q", res.Caveats)
	}
}

func TestPipelineRotation(t *testing.T) {
	p := NewPipeline(ngcConstants())
	state := ngcState(t)

	explicit, err := p.Run(state, Plan{Rotation: &RotationPlan{
		Approaching: east,
		Receding:    west,
		Angle:       quantity.MustParse(0.5, "arcsec"),
	}})
	if err != nil {
		t.Fatalf("Run(explicit angle): %v", err)
	}

	r := explicit.Rotation
	testutil.RequireClose(t, "velocity", r.Velocity.Value, -123.37137666971537, 1e-9)
	testutil.RequireClose(t, "radius", r.Radius.Value, 32.24010979378414, 1e-9)
	testutil.RequireClose(t, "enclosed mass", r.EnclosedMass.Value, 114094378.03380339, 1e-9)
	testutil.RequireClose(t, "density", r.Density.Value, 812.8045003074456, 1e-9)

	if len(explicit.Caveats) != 3 {
		t.Fatalf("caveats = %q, want 3", explicit.Caveats)
	}

	fromSky, err := p.Run(state, Plan{Rotation: &RotationPlan{Approaching: east, Receding: west}})
	if err != nil {
		t.Fatalf("Run(sky angle): %v", err)
	}

	testutil.RequireClose(t, "sky separation", fromSky.Rotation.Angle.Value, 0.5, 1e-6)
	testutil.RequireClose(t, "sky radius", fromSky.Rotation.Radius.Value, r.Radius.Value, 1e-6)
}

func TestPipelineMissingInputs(t *testing.T) {
	state := ngcState(t)

	cases := []struct {
		name string
		c    Constants
		plan Plan
	}{
		{"empty plan", ngcConstants(), Plan{}},
		{"no distance", DefaultConstants(), Plan{Rotation: &RotationPlan{Approaching: east, Receding: west}}},
		{"no sky for nucleus", ngcConstants(), Plan{Rotation: &RotationPlan{Approaching: nucleus, Receding: west}}},
		{"unmeasured selection", ngcConstants(), Plan{Dispersion: &session.Selection{Spatial: "west", Spectral: "oiii"}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewPipeline(tc.c).Run(state, tc.plan)
			if !errors.Is(err, ErrInsufficientInput) {
				t.Fatalf("err = %v, want insufficient input", err)
			}

			var ie *InsufficientInputError
			if !errors.As(err, &ie) {
				t.Fatalf("err %T is not *InsufficientInputError", err)
			}
		})
	}
}

func TestPipelineNoActiveSelection(t *testing.T) {
	_, err := NewPipeline(ngcConstants()).Run(session.NewState(), Plan{Dispersion: &session.Selection{}})
	if !errors.Is(err, ErrInsufficientInput) {
		t.Fatalf("err = %v, want insufficient input", err)
	}
}

func TestPipelineCurveAndLogging(t *testing.T) {
	var buf bytes.Buffer

	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	p := NewPipeline(DefaultConstants(), WithLogger(logger))

	res, err := p.Run(session.NewState(), Plan{Curve: &RotationCurve{
		Radius:       []float64{10, 50, 100},
		RadiusUnit:   quantity.Parsec,
		Velocity:     []float64{80, 150, 200},
		VelocityUnit: quantity.KilometerPerSec,
	}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Profile == nil || len(res.Profile.Mass) != 3 {
		t.Fatalf("profile = %+v", res.Profile)
	}

	testutil.RequireClose(t, "last point", res.Profile.Mass[2], 930034164.5414302, 1e-9)

	if !strings.Contains(buf.String(), "enclosed mass profile") {
		t.Fatalf("debug log missing profile step: %q", buf.String())
	}
}

func TestPipelineReferenceUnitMismatch(t *testing.T) {
	c := ngcConstants()
	c.References.BlackHoleMass = pc(2e7)

	_, err := NewPipeline(c).Run(ngcState(t), Plan{Dispersion: &nucleus})
	if !errors.Is(err, ErrInvalidUnit) {
		t.Fatalf("err = %v, want invalid unit", err)
	}
}
