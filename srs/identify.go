// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"strconv"
	"strings"
)

// AutoIdentifyEPSG tries to attach an EPSG authority to the root of the
// reference by finding an equivalent catalog entry of the same kind.
// It reports whether the reference ends up with an EPSG authority.
// When no entry matches the reference is left unchanged.
//
// Entries whose datum name also matches are preferred, so that datums
// sharing an ellipsoid and a null shift, such as NAD83 and ETRS89,
// identify as themselves.
func (r *SpatialReference) AutoIdentifyEPSG() bool {
	d := r.def.horizontal()
	if d == nil {
		return false
	}
	if strings.EqualFold(r.def.rootAuthority().name, "EPSG") {
		return true
	}
	c := r.catalogOrDefault()
	code, ok := c.identify(r.def)
	if !ok {
		return false
	}
	r.def.setAuthority(epsg(code))
	if r.def.kind == KindProjected && r.def.geog.auth.isZero() {
		g := &definition{kind: KindGeographic, geog: r.def.geog}
		if gc, ok := c.identify(g); ok {
			r.def.geog.auth = epsg(gc)
		}
	}
	return true
}

// identify returns the code of the first catalog entry equivalent to
// d, preferring entries with the same datum name.
func (c *Catalog) identify(d *definition) (string, bool) {
	if d.kind == KindEmpty {
		return "", false
	}
	var fallback string
	for _, code := range c.codes {
		e := c.defs[code]
		if e.kind != d.kind || !sameDefinition(d, e) {
			continue
		}
		if d.geog == nil || e.geog == nil ||
			normalizeDatumName(d.geog.datum.name) == normalizeDatumName(e.geog.datum.name) {
			return strconv.Itoa(code), true
		}
		if fallback == "" {
			fallback = strconv.Itoa(code)
		}
	}
	return fallback, fallback != ""
}

// SetWellKnownGeogCS sets the geographic base of the reference to one
// of the well-known geographic references WGS84, WGS72, NAD27, NAD83,
// CRS84, CRS27, CRS83 or "EPSG:n" for a geographic n. A projected
// reference keeps its projection and gets the new base; any other
// reference is replaced by the geographic reference. An error wrapping
// ErrParse is returned for an unknown name.
func (r *SpatialReference) SetWellKnownGeogCS(name string) error {
	g, ok := r.catalogOrDefault().wellKnownGeogCS(name)
	if !ok {
		return parseErr("unknown geographic reference %q", name)
	}
	if h := r.def.horizontal(); h != nil && h.kind == KindProjected {
		h.geog = g.geog
		return nil
	}
	r.def = g
	return nil
}
