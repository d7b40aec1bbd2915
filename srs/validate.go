// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import "fmt"

var axisDirections = map[string]bool{
	"NORTH": true, "SOUTH": true, "EAST": true, "WEST": true,
	"UP": true, "DOWN": true, "OTHER": true,
}

// Validate checks the reference for structural and numeric problems.
// It returns the empty string if the reference is valid, and a short
// diagnostic naming the first problem found otherwise.
func (r *SpatialReference) Validate() string {
	if r.def.kind == KindEmpty {
		return "empty spatial reference"
	}
	return r.def.validate()
}

func (d *definition) validate() string {
	switch d.kind {
	case KindGeographic:
		if d.geog == nil {
			return "missing GEOGCS"
		}
		return d.geog.validate()
	case KindProjected:
		if d.geog == nil {
			return "PROJCS has no GEOGCS"
		}
		if msg := d.geog.validate(); msg != "" {
			return msg
		}
		if d.proj == nil || d.proj.method == "" {
			return "PROJCS has no PROJECTION"
		}
		m := findMethod(d.proj.method)
		if m == nil {
			return fmt.Sprintf("unsupported projection method %q", d.proj.method)
		}
		for _, mp := range m.params {
			if requiredParam(m, mp.name) && !d.proj.has(mp.name) {
				return fmt.Sprintf("projection %q is missing parameter %q", m.name, mp.name)
			}
		}
		if msg := validateUnit(d.linear); msg != "" {
			return msg
		}
		return validateAxes(d.axes)
	case KindGeocentric:
		if d.geog == nil {
			return "GEOCCS has no DATUM"
		}
		if msg := d.geog.datum.validate(); msg != "" {
			return msg
		}
		if msg := validateUnit(d.linear); msg != "" {
			return msg
		}
		return validateAxes(d.axes)
	case KindLocal, KindVertical:
		if msg := validateUnit(d.linear); msg != "" {
			return msg
		}
		return validateAxes(d.axes)
	case KindCompound:
		if d.head == nil || d.tail == nil {
			return "COMPD_CS needs two components"
		}
		if msg := d.head.validate(); msg != "" {
			return msg
		}
		return d.tail.validate()
	}
	return fmt.Sprintf("unknown reference kind %v", d.kind)
}

// requiredParam reports whether a parameter of m must be present.
// Standard parallels are required by the two standard parallel Lambert
// variant only; everything else may default to zero.
func requiredParam(m *method, name string) bool {
	return m.name == LambertConformalConic2 && (name == paramSP1 || name == paramSP2)
}

func (g *geogCS) validate() string {
	if msg := g.datum.validate(); msg != "" {
		return msg
	}
	if g.angular.factor <= 0 {
		return fmt.Sprintf("angular unit %q has non-positive factor", g.angular.name)
	}
	return validateAxes(g.axes)
}

func (d *datum) validate() string {
	e := &d.ellipsoid
	if e.a <= 0 {
		return fmt.Sprintf("ellipsoid %q has non-positive semi-major axis", e.name)
	}
	if e.invf < 0 {
		return fmt.Sprintf("ellipsoid %q has negative inverse flattening", e.name)
	}
	if d.towgs84 != nil && len(d.towgs84) != 3 && len(d.towgs84) != 7 {
		return fmt.Sprintf("TOWGS84 of datum %q has %d values, want 3 or 7", d.name, len(d.towgs84))
	}
	return ""
}

func validateUnit(u *unit) string {
	if u != nil && u.factor <= 0 {
		return fmt.Sprintf("unit %q has non-positive factor", u.name)
	}
	return ""
}

func validateAxes(axes []axis) string {
	for _, a := range axes {
		if !axisDirections[a.dir] {
			return fmt.Sprintf("invalid AXIS direction %q", a.dir)
		}
	}
	return ""
}
