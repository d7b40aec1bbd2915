// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"strconv"
	"strings"
)

// FromEPSG returns the reference with the given EPSG code from the
// default catalog, using traditional GIS axis order (longitude first,
// easting first).
func FromEPSG(code int) (*SpatialReference, error) {
	return DefaultCatalog().FromEPSG(code)
}

// FromEPSGA is like FromEPSG but keeps the axis order declared by EPSG,
// for example latitude first for EPSG:4326.
func FromEPSGA(code int) (*SpatialReference, error) {
	return DefaultCatalog().FromEPSGA(code)
}

// FromWKT parses OGC WKT1.
func FromWKT(wkt string) (*SpatialReference, error) {
	return DefaultCatalog().FromWKT(wkt)
}

// FromProj4 parses a Proj4 string such as "+proj=utm +zone=10
// +datum=NAD83 +units=m +no_defs".
func FromProj4(s string) (*SpatialReference, error) {
	return DefaultCatalog().FromProj4(s)
}

// FromUserInput interprets any of the textual forms understood by this
// package. See Catalog.FromUserInput.
func FromUserInput(s string) (*SpatialReference, error) {
	return DefaultCatalog().FromUserInput(s)
}

// FromEPSG returns the reference with the given EPSG code using
// traditional GIS axis order.
func (c *Catalog) FromEPSG(code int) (*SpatialReference, error) {
	d, err := c.lookup(code, false)
	if err != nil {
		return nil, err
	}
	return newReference(d, c), nil
}

// FromEPSGA returns the reference with the given EPSG code using the
// axis order declared by EPSG.
func (c *Catalog) FromEPSGA(code int) (*SpatialReference, error) {
	d, err := c.lookup(code, true)
	if err != nil {
		return nil, err
	}
	return newReference(d, c), nil
}

// FromWKT parses OGC WKT1: PROJCS, GEOGCS, GEOCCS, LOCAL_CS, VERT_CS or
// COMPD_CS roots, delimited by brackets or parentheses.
func (c *Catalog) FromWKT(wkt string) (*SpatialReference, error) {
	n, err := parseWKTTree(wkt)
	if err != nil {
		return nil, err
	}
	d, err := parseDefinition(n)
	if err != nil {
		return nil, err
	}
	return newReference(d, c), nil
}

// FromProj4 parses a Proj4 string.
func (c *Catalog) FromProj4(s string) (*SpatialReference, error) {
	d, err := c.parseProj4(s)
	if err != nil {
		return nil, err
	}
	return newReference(d, c), nil
}

var wktRoots = []string{"PROJCS", "GEOGCS", "GEOCCS", "LOCAL_CS", "VERT_CS", "COMPD_CS"}

// FromUserInput interprets s by trying, in order: WKT, "EPSG:n",
// "EPSGA:n", OGC URNs, opengis.net CRS URLs, other http(s) URLs,
// "AUTO:" WMS identifiers, the well-known names WGS84, WGS72, NAD27,
// NAD83, CRS84, CRS27 and CRS83, Proj4 strings, "ESRI::" prefixed ESRI
// WKT, MapInfo CoordSys clauses and GML XML.
func (c *Catalog) FromUserInput(s string) (*SpatialReference, error) {
	s = strings.TrimSpace(s)
	upper := strings.ToUpper(s)

	for _, root := range wktRoots {
		if strings.HasPrefix(upper, root) {
			return c.FromWKT(s)
		}
	}

	switch {
	case strings.HasPrefix(upper, "EPSGA:"):
		code, err := atoiStrict(s[len("EPSGA:"):])
		if err != nil {
			return nil, parseErr("invalid EPSG code in %q", s)
		}
		return c.FromEPSGA(code)
	case strings.HasPrefix(upper, "EPSG:"):
		code, err := atoiStrict(s[len("EPSG:"):])
		if err != nil {
			return nil, parseErr("invalid EPSG code in %q", s)
		}
		return c.FromEPSG(code)
	case strings.HasPrefix(upper, "URN:OGC:DEF:CRS:"), strings.HasPrefix(upper, "URN:X-OGC:DEF:CRS:"):
		return c.FromURN(s)
	case isOpenGISURL(s):
		return c.FromCRSURL(s)
	case strings.HasPrefix(upper, "HTTP://"), strings.HasPrefix(upper, "HTTPS://"):
		return c.FromURL(s)
	case strings.HasPrefix(upper, "AUTO:"):
		return c.FromWMSAUTO(s)
	}

	if g, ok := c.wellKnownGeogCS(s); ok {
		return newReference(g, c), nil
	}

	switch {
	case strings.Contains(s, "+proj") || strings.Contains(s, "+init"):
		return c.FromProj4(s)
	case strings.HasPrefix(upper, "ESRI::"):
		return c.FromESRI([]string{s[len("ESRI::"):]})
	case strings.HasPrefix(upper, "EARTH PROJECTION"), strings.HasPrefix(upper, "NONEARTH"),
		strings.HasPrefix(upper, "COORDSYS"):
		return c.FromMICoordSys(s)
	case strings.HasPrefix(s, "<"):
		return c.FromXML(s)
	}
	return nil, parseErr("unrecognized spatial reference %q", s)
}

// wellKnownGeogCS resolves the well-known geographic names accepted by
// SetWellKnownGeogCS and FromUserInput.
func (c *Catalog) wellKnownGeogCS(name string) (*definition, bool) {
	var code int
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "WGS84", "CRS84":
		code = 4326
	case "WGS72":
		code = 4322
	case "NAD27", "CRS27":
		code = 4267
	case "NAD83", "CRS83":
		code = 4269
	default:
		upper := strings.ToUpper(name)
		if !strings.HasPrefix(upper, "EPSG:") {
			return nil, false
		}
		n, err := atoiStrict(name[len("EPSG:"):])
		if err != nil {
			return nil, false
		}
		code = n
	}
	d, err := c.lookup(code, false)
	if err != nil || d.kind != KindGeographic {
		return nil, false
	}
	return d, true
}

// atoiStrict parses a decimal integer, ignoring surrounding space.
func atoiStrict(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}
