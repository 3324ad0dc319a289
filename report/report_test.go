package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javerbukh/jwebbinar-prep/ifu/session"
	"github.com/javerbukh/jwebbinar-prep/phys/derive"
	"github.com/javerbukh/jwebbinar-prep/phys/quantity"
)

func sampleResult() derive.Result {
	nucleus := session.LineMeasurement{
		Selection: session.Selection{Spatial: "nucleus", Spectral: "hbeta"},
		Centroid:  quantity.MustParse(4.861, "um"),
		Width:     quantity.MustParse(0.0021, "um"),
	}

	return derive.Result{
		Target: "NGC 4151",
		Dispersion: &derive.DispersionResult{
			Measurement:   nucleus,
			Sigma:         quantity.MustParse(129.485, "km/s"),
			BlackHoleMass: quantity.MustParse(2.3496e7, "Msun"),
			LogMass:       quantity.New(7.371, quantity.Dimensionless),
		},
		Comparisons: []derive.Comparison{{
			Name:            "black hole mass",
			Measured:        quantity.MustParse(2.3496e7, "Msun"),
			Reference:       quantity.MustParse(2.0e7, "Msun"),
			FractionalError: quantity.New(0.1488, quantity.Dimensionless),
		}},
		Profile: &derive.Profile{
			Radius:     []float64{10, 20},
			RadiusUnit: quantity.Parsec,
			Mass:       []float64{1e7, 4e7},
		},
		Caveats: []string{derive.CaveatInclination},
	}
}

func TestFromResult(t *testing.T) {
	r := FromResult(sampleResult())

	assert.Equal(t, "NGC 4151", r.Target)
	assert.Len(t, r.Entries, 5)

	v, ok := r.Lookup(SectionDispersion, "black_hole_mass")
	require.True(t, ok)
	assert.InDelta(t, 2.3496e7, v.Value, 0)
	assert.Equal(t, "Msun", v.Unit)

	logm, ok := r.Lookup(SectionDispersion, "log_black_hole_mass")
	require.True(t, ok)
	assert.Empty(t, logm.Unit)

	_, ok = r.Lookup(SectionRotation, "velocity")
	assert.False(t, ok)

	assert.Equal(t, "nucleus/hbeta", r.Entries[0].Note)
	require.Len(t, r.Comparisons, 1)
	assert.InDelta(t, 0.1488, r.Comparisons[0].FractionalError, 0)
	require.NotNil(t, r.Profile)
	assert.Equal(t, "pc", r.Profile.RadiusUnit)
}

func TestCBORRoundTripAndDigest(t *testing.T) {
	r := FromResult(sampleResult())

	var buf bytes.Buffer
	require.NoError(t, WriteCBOR(&buf, r))

	back, err := ReadCBOR(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, r, back)

	d1, err := Digest(r)
	require.NoError(t, err)
	assert.Len(t, d1, 64)

	d2, err := Digest(back)
	require.NoError(t, err)
	assert.Equal(t, d1, d2)

	back.Entries[2].Value.Value = 130
	d3, err := Digest(back)
	require.NoError(t, err)
	assert.NotEqual(t, d1, d3)
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FromResult(sampleResult()), FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "NGC 4151", decoded["target"])
	assert.Contains(t, decoded, "entries")
	assert.Contains(t, decoded, "profile")
}

func TestWritePretty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FromResult(sampleResult()), FormatPretty))

	out := buf.String()
	for _, want := range []string{"NGC 4151", "dispersion", "black_hole_mass", "2.3496e+07", "Msun", "nucleus/hbeta", "Fractional error", "+0.1488", "Radius [pc]", "note: "} {
		assert.Contains(t, out, want)
	}

	assert.NotContains(t, out, "rotation")
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatPretty, "JSON": FormatJSON, " cbor ": FormatCBOR, "pretty": FormatPretty} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("yaml")
	assert.ErrorIs(t, err, ErrUnknownFormat)

	err = Write(&bytes.Buffer{}, Report{}, Format("xml"))
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.True(t, strings.Contains(err.Error(), "xml"))
}
