package session

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// State is an immutable snapshot of a session: the regions defined so
// far, their sky projections, the line measurements captured for region
// pairs and the active selection. The zero value is an empty session.
type State struct {
	spatial      map[string]SpatialRegion
	sky          map[string]SkyRegion
	spectral     map[string]SpectralRegion
	measurements map[Selection]LineMeasurement
	active       Selection
}

// NewState returns an empty session.
func NewState() State {
	return State{}
}

// WithSpatialRegion returns a copy of s with r defined (replacing any
// region with the same ID). The region's sky projection, if any, is
// dropped since it no longer describes the new geometry.
func (s State) WithSpatialRegion(r SpatialRegion) State {
	s.spatial = cloneWith(s.spatial, r.ID, r)

	if _, ok := s.sky[r.ID]; ok {
		s.sky = maps.Clone(s.sky)
		delete(s.sky, r.ID)
	}

	return s
}

// WithSkyRegion returns a copy of s with the sky projection of spatial
// region id recorded.
func (s State) WithSkyRegion(id string, sky SkyRegion) (State, error) {
	if _, ok := s.spatial[id]; !ok {
		return State{}, missing("sky region", "spatial region %q is not defined", id)
	}

	s.sky = cloneWith(s.sky, id, sky)

	return s, nil
}

// WithSpectralRegion returns a copy of s with r defined.
func (s State) WithSpectralRegion(r SpectralRegion) State {
	s.spectral = cloneWith(s.spectral, r.ID, r)
	return s
}

// WithMeasurement returns a copy of s with m recorded for its selection.
// Both regions of the selection must already be defined, and the centroid
// must lie inside the spectral window.
func (s State) WithMeasurement(m LineMeasurement) (State, error) {
	const op = "record measurement"

	if _, ok := s.spatial[m.Selection.Spatial]; !ok {
		return State{}, missing(op, "spatial region %q is not defined", m.Selection.Spatial)
	}

	win, ok := s.spectral[m.Selection.Spectral]
	if !ok {
		return State{}, missing(op, "spectral region %q is not defined", m.Selection.Spectral)
	}

	inside, err := win.Contains(m.Centroid)
	if err != nil {
		return State{}, err
	}

	if !inside {
		return State{}, fmt.Errorf("%w: %s: centroid %v outside spectral region %q [%v, %v]", ErrInvalidRegion, op, m.Centroid, win.ID, win.Lower, win.Upper)
	}

	s.measurements = cloneWith(s.measurements, m.Selection, m)

	return s, nil
}

// Select returns a copy of s with sel as the active selection.
func (s State) Select(sel Selection) State {
	s.active = sel
	return s
}

// Active returns the active selection.
func (s State) Active() (Selection, error) {
	if s.active.Spatial == "" || s.active.Spectral == "" {
		return Selection{}, missing("active selection", "no spatial and spectral subset selected")
	}

	return s.active, nil
}

// Measurement returns the measurement recorded for sel.
func (s State) Measurement(sel Selection) (LineMeasurement, error) {
	m, ok := s.measurements[sel]
	if !ok {
		return LineMeasurement{}, missing("measurement", "no line measurement for %s", sel)
	}

	return m, nil
}

// ActiveMeasurement returns the measurement of the active selection.
func (s State) ActiveMeasurement() (LineMeasurement, error) {
	sel, err := s.Active()
	if err != nil {
		return LineMeasurement{}, err
	}

	return s.Measurement(sel)
}

// SpatialRegion returns the spatial region id.
func (s State) SpatialRegion(id string) (SpatialRegion, error) {
	r, ok := s.spatial[id]
	if !ok {
		return SpatialRegion{}, missing("spatial region", "%q is not defined", id)
	}

	return r, nil
}

// SpectralRegion returns the spectral region id.
func (s State) SpectralRegion(id string) (SpectralRegion, error) {
	r, ok := s.spectral[id]
	if !ok {
		return SpectralRegion{}, missing("spectral region", "%q is not defined", id)
	}

	return r, nil
}

// SkyRegion returns the sky projection of spatial region id.
func (s State) SkyRegion(id string) (SkyRegion, error) {
	r, ok := s.sky[id]
	if !ok {
		return SkyRegion{}, missing("sky region", "no sky projection for spatial region %q", id)
	}

	return r, nil
}

// SpatialRegions returns all spatial regions ordered by ID.
func (s State) SpatialRegions() []SpatialRegion {
	return sortedValues(s.spatial, func(a, b SpatialRegion) int { return strings.Compare(a.ID, b.ID) })
}

// SpectralRegions returns all spectral regions ordered by ID.
func (s State) SpectralRegions() []SpectralRegion {
	return sortedValues(s.spectral, func(a, b SpectralRegion) int { return strings.Compare(a.ID, b.ID) })
}

// Measurements returns all measurements ordered by selection.
func (s State) Measurements() []LineMeasurement {
	return sortedValues(s.measurements, func(a, b LineMeasurement) int {
		if c := strings.Compare(a.Selection.Spatial, b.Selection.Spatial); c != 0 {
			return c
		}

		return strings.Compare(a.Selection.Spectral, b.Selection.Spectral)
	})
}

func cloneWith[K comparable, V any](m map[K]V, k K, v V) map[K]V {
	out := make(map[K]V, len(m)+1)
	maps.Copy(out, m)
	out[k] = v

	return out
}

func sortedValues[K comparable, V any](m map[K]V, cmp func(a, b V) int) []V {
	out := slices.Collect(maps.Values(m))
	slices.SortFunc(out, cmp)

	return out
}
