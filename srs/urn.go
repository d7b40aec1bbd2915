// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"net/url"
	"strings"
)

// FromURN parses an OGC URN using the default catalog.
func FromURN(urn string) (*SpatialReference, error) {
	return DefaultCatalog().FromURN(urn)
}

// FromCRSURL parses an opengis.net CRS URL using the default catalog.
func FromCRSURL(u string) (*SpatialReference, error) {
	return DefaultCatalog().FromCRSURL(u)
}

// FromURL resolves a CRS URL locally using the default catalog.
func FromURL(u string) (*SpatialReference, error) {
	return DefaultCatalog().FromURL(u)
}

// FromURN parses "urn:ogc:def:crs:EPSG:[version]:<code>", its
// "urn:x-ogc" variant, and "urn:ogc:def:crs:OGC:[version]:CRS84",
// CRS27 or CRS83. EPSG URNs use the axis order declared by EPSG.
func (c *Catalog) FromURN(urn string) (*SpatialReference, error) {
	lower := strings.ToLower(strings.TrimSpace(urn))
	var rest string
	switch {
	case strings.HasPrefix(lower, "urn:ogc:def:crs:"):
		rest = urn[len("urn:ogc:def:crs:"):]
	case strings.HasPrefix(lower, "urn:x-ogc:def:crs:"):
		rest = urn[len("urn:x-ogc:def:crs:"):]
	default:
		return nil, parseErr("%q is not a CRS URN", urn)
	}

	// authority:version:code, where version may be empty or absent.
	parts := strings.Split(strings.TrimSpace(rest), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return nil, parseErr("malformed CRS URN %q", urn)
	}
	auth, code := parts[0], parts[len(parts)-1]
	return c.fromAuthorityCode(auth, code, urn)
}

func (c *Catalog) fromAuthorityCode(auth, code, input string) (*SpatialReference, error) {
	switch strings.ToUpper(auth) {
	case "EPSG":
		n, err := atoiStrict(code)
		if err != nil {
			return nil, parseErr("invalid EPSG code in %q", input)
		}
		return c.FromEPSGA(n)
	case "OGC":
		d, ok := c.wellKnownGeogCS(code)
		if !ok || !strings.HasPrefix(strings.ToUpper(code), "CRS") {
			return nil, parseErr("unknown OGC CRS %q in %q", code, input)
		}
		return newReference(d, c), nil
	}
	return nil, parseErr("unsupported authority %q in %q", auth, input)
}

func isOpenGISURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") &&
		strings.EqualFold(u.Host, "www.opengis.net") &&
		strings.HasPrefix(u.Path, "/def/crs/")
}

// FromCRSURL parses "http://www.opengis.net/def/crs/EPSG/0/<code>" and
// "http://www.opengis.net/def/crs/OGC/1.3/CRS84" style URLs.
func (c *Catalog) FromCRSURL(s string) (*SpatialReference, error) {
	if !isOpenGISURL(s) {
		return nil, parseErr("%q is not an opengis.net CRS URL", s)
	}
	u, _ := url.Parse(s)
	parts := strings.Split(strings.Trim(strings.TrimPrefix(u.Path, "/def/crs/"), "/"), "/")
	if len(parts) != 3 {
		return nil, parseErr("malformed CRS URL %q", s)
	}
	return c.fromAuthorityCode(parts[0], parts[2], s)
}

// FromURL resolves a CRS URL without any network access. opengis.net
// CRS URLs are handled as by FromCRSURL, and spatialreference.org
// style URLs of the form ".../ref/epsg/<code>/..." map to the EPSG
// code. Any other URL fails with an error wrapping ErrParse.
func (c *Catalog) FromURL(s string) (*SpatialReference, error) {
	if isOpenGISURL(s) {
		return c.FromCRSURL(s)
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return nil, parseErr("invalid URL %q", s)
	}
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	for i := 0; i+1 < len(parts); i++ {
		if strings.EqualFold(parts[i], "epsg") {
			n, err := atoiStrict(parts[i+1])
			if err != nil {
				break
			}
			return c.FromEPSG(n)
		}
	}
	return nil, parseErr("cannot resolve %q without network access", s)
}
