package session

import (
	"errors"
	"maps"
)

// LineAnalyzer is the line-measurement side of the external spectral
// analysis tool. It reports raw result fields for one region selection,
// or an empty Fields when nothing has been measured.
type LineAnalyzer interface {
	LineFields(sel Selection) (Fields, error)
}

// WCSLookup is the world-coordinate side of the external tool. It
// projects a pixel region onto the sky.
type WCSLookup interface {
	SkyRegion(r SpatialRegion) (SkyRegion, error)
}

// Capture queries the collaborator for sel, validates the result and
// returns a copy of s with the measurement recorded and sel made active.
// When wcs is non-nil the sky projection of the spatial region is
// recorded too, if the lookup has one.
func Capture(s State, lines LineAnalyzer, wcs WCSLookup, sel Selection) (State, error) {
	region, err := s.SpatialRegion(sel.Spatial)
	if err != nil {
		return State{}, err
	}

	if _, err := s.SpectralRegion(sel.Spectral); err != nil {
		return State{}, err
	}

	fields, err := lines.LineFields(sel)
	if err != nil {
		return State{}, err
	}

	m, err := MeasurementFromFields(sel, fields)
	if err != nil {
		return State{}, err
	}

	next, err := s.WithMeasurement(m)
	if err != nil {
		return State{}, err
	}

	if wcs != nil {
		if next, err = captureSky(next, wcs, region); err != nil {
			return State{}, err
		}
	}

	return next.Select(sel), nil
}

// captureSky records the sky projection of region unless it is already
// known. A lookup that has nothing to report leaves the state unchanged;
// derivations that need the projection fail later with the same error.
func captureSky(s State, wcs WCSLookup, region SpatialRegion) (State, error) {
	if _, err := s.SkyRegion(region.ID); err == nil {
		return s, nil
	}

	sky, err := wcs.SkyRegion(region)
	if errors.Is(err, ErrInsufficientInput) {
		return s, nil
	}

	if err != nil {
		return State{}, err
	}

	return s.WithSkyRegion(region.ID, sky)
}

// StaticCollaborator serves pre-recorded line results and sky projections,
// e.g. values exported from an interactive session into a target file.
type StaticCollaborator struct {
	lines map[Selection]Fields
	sky   map[string]SkyRegion
}

var (
	_ LineAnalyzer = StaticCollaborator{}
	_ WCSLookup    = StaticCollaborator{}
)

// WithLine returns a copy of c that reports f for sel.
func (c StaticCollaborator) WithLine(sel Selection, f Fields) StaticCollaborator {
	c.lines = cloneWith(c.lines, sel, maps.Clone(f))
	return c
}

// WithSky returns a copy of c that projects spatial region id onto sky.
func (c StaticCollaborator) WithSky(id string, sky SkyRegion) StaticCollaborator {
	c.sky = cloneWith(c.sky, id, sky)
	return c
}

// LineFields implements LineAnalyzer. Unknown selections yield an empty
// result, which Capture reports as insufficient input.
func (c StaticCollaborator) LineFields(sel Selection) (Fields, error) {
	return maps.Clone(c.lines[sel]), nil
}

// SkyRegion implements WCSLookup.
func (c StaticCollaborator) SkyRegion(r SpatialRegion) (SkyRegion, error) {
	sky, ok := c.sky[r.ID]
	if !ok {
		return SkyRegion{}, missing("wcs lookup", "no sky projection for spatial region %q", r.ID)
	}

	return sky, nil
}
