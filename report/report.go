// Package report flattens a derivation result into a serialisable record
// and renders it as a terminal table, JSON or deterministic CBOR.
package report

import (
	"github.com/javerbukh/jwebbinar-prep/phys/derive"
	"github.com/javerbukh/jwebbinar-prep/phys/quantity"
)

// Section names.
const (
	SectionDispersion = "dispersion"
	SectionRotation   = "rotation"
)

// Value is a number and its unit symbol. Dimensionless values carry no
// unit.
type Value struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit,omitempty"`
}

func valueOf(q quantity.Quantity) Value {
	return Value{Value: q.Value, Unit: q.Unit.Symbol()}
}

// Entry is one named value of a section. Note carries the region
// selection the value was measured on, if any.
type Entry struct {
	Section string `json:"section"`
	Name    string `json:"name"`
	Value   Value  `json:"value"`
	Note    string `json:"note,omitempty"`
}

// Comparison is a derived value set against a literature reference.
type Comparison struct {
	Name            string  `json:"name"`
	Measured        Value   `json:"measured"`
	Reference       Value   `json:"reference"`
	FractionalError float64 `json:"fractional_error"`
}

// Profile is an enclosed-mass profile. Mass is in solar masses.
type Profile struct {
	RadiusUnit string    `json:"radius_unit"`
	Radius     []float64 `json:"radius"`
	Mass       []float64 `json:"mass_msun"`
}

// Report is the flattened form of a derive.Result.
type Report struct {
	Target      string       `json:"target,omitempty"`
	Entries     []Entry      `json:"entries"`
	Comparisons []Comparison `json:"comparisons,omitempty"`
	Profile     *Profile     `json:"profile,omitempty"`
	Caveats     []string     `json:"caveats,omitempty"`
}

// FromResult flattens res.
func FromResult(res derive.Result) Report {
	r := Report{Target: res.Target, Entries: []Entry{}}

	if d := res.Dispersion; d != nil {
		sel := d.Measurement.Selection.String()
		r.add(SectionDispersion, "centroid", d.Measurement.Centroid, sel)
		r.add(SectionDispersion, "sigma_width", d.Measurement.Width, sel)
		r.add(SectionDispersion, "sigma", d.Sigma, "")
		r.add(SectionDispersion, "black_hole_mass", d.BlackHoleMass, "")
		r.add(SectionDispersion, "log_black_hole_mass", d.LogMass, "")
	}

	if rot := res.Rotation; rot != nil {
		r.add(SectionRotation, "approaching_centroid", rot.Approaching.Centroid, rot.Approaching.Selection.String())
		r.add(SectionRotation, "receding_centroid", rot.Receding.Centroid, rot.Receding.Selection.String())
		r.add(SectionRotation, "velocity", rot.Velocity, "")
		r.add(SectionRotation, "angle", rot.Angle, "")
		r.add(SectionRotation, "radius", rot.Radius, "")
		r.add(SectionRotation, "enclosed_mass", rot.EnclosedMass, "")
		r.add(SectionRotation, "density", rot.Density, "")
	}

	for _, c := range res.Comparisons {
		r.Comparisons = append(r.Comparisons, Comparison{
			Name:            c.Name,
			Measured:        valueOf(c.Measured),
			Reference:       valueOf(c.Reference),
			FractionalError: c.FractionalError.Value,
		})
	}

	if p := res.Profile; p != nil {
		r.Profile = &Profile{
			RadiusUnit: p.RadiusUnit.Symbol(),
			Radius:     append([]float64(nil), p.Radius...),
			Mass:       append([]float64(nil), p.Mass...),
		}
	}

	r.Caveats = append(r.Caveats, res.Caveats...)

	return r
}

func (r *Report) add(section, name string, q quantity.Quantity, note string) {
	r.Entries = append(r.Entries, Entry{Section: section, Name: name, Value: valueOf(q), Note: note})
}

// Lookup returns the value of entry name in section.
func (r Report) Lookup(section, name string) (Value, bool) {
	for _, e := range r.Entries {
		if e.Section == section && e.Name == name {
			return e.Value, true
		}
	}

	return Value{}, false
}
