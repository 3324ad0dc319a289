package session

import (
	"sort"
	"strings"

	"github.com/javerbukh/jwebbinar-prep/phys/quantity"
)

// Result field names reported by the line-analysis collaborator.
const (
	FieldCentroid   = "centroid"
	FieldSigmaWidth = "sigma_width"
)

var fieldAliases = map[string]string{
	"centroid":             FieldCentroid,
	"line_centroid":        FieldCentroid,
	"sigma_width":          FieldSigmaWidth,
	"sigma":                FieldSigmaWidth,
	"gaussian_sigma_width": FieldSigmaWidth,
}

// Field is one raw (value, unit) pair from the collaborator.
type Field struct {
	Value float64
	Unit  string
}

// Fields is the collaborator's result mapping for one region selection.
// Keys are matched case-insensitively; spaces and dashes count as
// underscores ("Gaussian Sigma Width" == "gaussian_sigma_width").
type Fields map[string]Field

func normalizeField(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer(" ", "_", "-", "_").Replace(n)

	if canon, ok := fieldAliases[n]; ok {
		return canon
	}

	return n
}

func (f Fields) lookup(name string) (Field, bool) {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	for _, k := range keys {
		if normalizeField(k) == name {
			return f[k], true
		}
	}

	return Field{}, false
}

// Selection names one spatial + spectral region pair.
type Selection struct {
	Spatial  string
	Spectral string
}

func (s Selection) String() string {
	return s.Spatial + "/" + s.Spectral
}

// IsZero reports whether no region is named.
func (s Selection) IsZero() bool {
	return s.Spatial == "" && s.Spectral == ""
}

// LineMeasurement is a validated line centroid and Gaussian width for one
// selection.
type LineMeasurement struct {
	Selection Selection
	Centroid  quantity.Quantity
	Width     quantity.Quantity
}

// MeasurementFromFields validates the collaborator's result for sel. Both
// centroid and sigma width are required and must be wavelengths; a
// missing field is *InsufficientInputError.
func MeasurementFromFields(sel Selection, f Fields) (LineMeasurement, error) {
	const op = "line measurement"

	if sel.Spatial == "" || sel.Spectral == "" {
		return LineMeasurement{}, missing(op, "no region selection (spatial=%q spectral=%q)", sel.Spatial, sel.Spectral)
	}

	if len(f) == 0 {
		return LineMeasurement{}, missing(op, "no line results for %s", sel)
	}

	centroid, err := wavelengthField(op, sel, f, FieldCentroid)
	if err != nil {
		return LineMeasurement{}, err
	}

	width, err := wavelengthField(op, sel, f, FieldSigmaWidth)
	if err != nil {
		return LineMeasurement{}, err
	}

	if !(centroid.Value > 0) {
		return LineMeasurement{}, &quantity.DomainError{Op: op, Param: FieldCentroid, Value: centroid.Value, Rule: "centroid > 0"}
	}

	if !(width.Value >= 0) {
		return LineMeasurement{}, &quantity.DomainError{Op: op, Param: FieldSigmaWidth, Value: width.Value, Rule: "width >= 0"}
	}

	return LineMeasurement{Selection: sel, Centroid: centroid, Width: width}, nil
}

func wavelengthField(op string, sel Selection, f Fields, name string) (quantity.Quantity, error) {
	raw, ok := f.lookup(name)
	if !ok {
		return quantity.Quantity{}, missing(op, "field %q not reported for %s", name, sel)
	}

	q, err := quantity.Parse(raw.Value, raw.Unit)
	if err != nil {
		return quantity.Quantity{}, err
	}

	if !q.Has(quantity.Meter) {
		return quantity.Quantity{}, &quantity.InvalidUnitError{
			Op:     op,
			Have:   []quantity.Unit{q.Unit},
			Want:   "wavelength",
			Detail: "field " + name,
		}
	}

	return q, nil
}
