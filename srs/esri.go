// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"strconv"
	"strings"
)

// esriDatumAliases maps ESRI datum names, without the "D_" prefix, to
// the OGC names used by this package.
var esriDatumAliases = map[string]string{
	"North_American_1983": "North_American_Datum_1983",
	"North_American_1927": "North_American_Datum_1927",
	"ETRS_1989":           "European_Terrestrial_Reference_System_1989",
	"RGF_1993":            "Reseau_Geodesique_Francais_1993",
	"European_1950":       "European_Datum_1950",
}

// esriGeogNames maps geographic reference names to their ESRI form.
var esriGeogNames = map[string]string{
	"WGS 84":    "GCS_WGS_1984",
	"NAD83":     "GCS_North_American_1983",
	"NAD27":     "GCS_North_American_1927",
	"WGS 72":    "GCS_WGS_1972",
	"ETRS89":    "GCS_ETRS_1989",
	"OSGB 1936": "GCS_OSGB_1936",
	"DHDN":      "GCS_Deutsches_Hauptdreiecksnetz",
	"RGF93":     "GCS_RGF_1993",
	"SWEREF99":  "GCS_SWEREF99",
	"ED50":      "GCS_European_1950",

	"China Geodetic Coordinate System 2000": "GCS_China_Geodetic_Coordinate_System_2000",
}

// esriEllipsoidNames maps ellipsoid names to their ESRI form.
var esriEllipsoidNames = map[string]string{
	"WGS 84":             "WGS_1984",
	"GRS 1980":           "GRS_1980",
	"Clarke 1866":        "Clarke_1866",
	"WGS 72":             "WGS_1972",
	"Airy 1830":          "Airy_1830",
	"Bessel 1841":        "Bessel_1841",
	"International 1924": "International_1924",
}

// esriUnitNames maps unit names to their ESRI form.
var esriUnitNames = map[string]string{
	"degree":         "Degree",
	"metre":          "Meter",
	"foot":           "Foot",
	"US survey foot": "Foot_US",
	"kilometre":      "Kilometer",
}

// esriProjcsPrefixes maps the leading geographic name of a projected
// reference name to its ESRI form.
var esriProjcsPrefixes = map[string]string{
	"WGS 84": "WGS_1984",
	"NAD83":  "NAD_1983",
	"NAD27":  "NAD_1927",
	"ETRS89": "ETRS_1989",
}

func reverseMap(m map[string]string) map[string]string {
	r := make(map[string]string, len(m))
	for k, v := range m {
		r[strings.ToLower(v)] = k
	}
	return r
}

var (
	ogcGeogNames      = reverseMap(esriGeogNames)
	ogcEllipsoidNames = reverseMap(esriEllipsoidNames)
	ogcUnitNames      = reverseMap(esriUnitNames)
	ogcDatumNames     = reverseMap(esriDatumAliases)
	ogcParamNames     = reverseMap(esriParamNames)
)

func esriName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '/', '(', ')', '.', ',':
			return '_'
		}
		return r
	}, s)
}

func collapseUnderscores(s string) string {
	for strings.Contains(s, "__") {
		s = strings.ReplaceAll(s, "__", "_")
	}
	return strings.Trim(s, "_")
}

// MorphToESRI rewrites the reference in place into the ESRI WKT
// dialect: ESRI names for geographic references, datums, ellipsoids,
// units, projection methods and parameters, and no AUTHORITY, TOWGS84,
// AXIS or EXTENSION nodes.
func (r *SpatialReference) MorphToESRI() {
	r.def.morphToESRI()
}

func (d *definition) morphToESRI() {
	d.auth = authority{}
	d.axes = nil
	d.extensions = nil
	if d.geog != nil {
		g := d.geog
		if d.kind != KindGeocentric {
			if n, ok := esriGeogNames[g.name]; ok {
				g.name = n
			} else if !strings.HasPrefix(g.name, "GCS_") {
				g.name = "GCS_" + collapseUnderscores(esriName(g.name))
			}
		}
		g.auth = authority{}
		g.axes = nil
		dn := strings.TrimPrefix(g.datum.name, "D_")
		for esri, ogc := range esriDatumAliases {
			if ogc == dn {
				dn = esri
				break
			}
		}
		g.datum.name = "D_" + esriName(dn)
		g.datum.towgs84 = nil
		g.datum.auth = authority{}
		if n, ok := esriEllipsoidNames[g.datum.ellipsoid.name]; ok {
			g.datum.ellipsoid.name = n
		} else {
			g.datum.ellipsoid.name = esriName(g.datum.ellipsoid.name)
		}
		g.datum.ellipsoid.auth = authority{}
		g.pm.auth = authority{}
		g.angular = esriUnit(g.angular)
		if d.kind == KindGeographic {
			d.name = g.name
		}
	}
	if d.linear != nil {
		u := esriUnit(*d.linear)
		d.linear = &u
	}
	if d.proj != nil {
		d.name = esriProjcsName(d.name)
		if m := findMethod(d.proj.method); m != nil {
			d.proj.method = m.esri
		}
		d.proj.auth = authority{}
		for i := range d.proj.params {
			if n, ok := esriParamNames[strings.ToLower(d.proj.params[i].name)]; ok {
				d.proj.params[i].name = n
			}
		}
	}
	if d.vdatum != nil {
		d.vdatum.auth = authority{}
	}
	if d.ldatum != nil {
		d.ldatum.auth = authority{}
	}
	if d.head != nil {
		d.head.morphToESRI()
	}
	if d.tail != nil {
		d.tail.morphToESRI()
	}
}

func esriUnit(u unit) unit {
	if n, ok := esriUnitNames[u.name]; ok {
		u.name = n
	}
	u.auth = authority{}
	return u
}

func esriProjcsName(name string) string {
	for ogc, esri := range esriProjcsPrefixes {
		if strings.HasPrefix(name, ogc+" /") {
			name = esri + name[len(ogc):]
			break
		}
	}
	name = strings.ReplaceAll(name, "UTM zone", "UTM Zone")
	return collapseUnderscores(esriName(name))
}

// MorphFromESRI rewrites an ESRI dialect reference in place into OGC
// naming. Datums recognized by name regain their EPSG authority and
// TOWGS84 parameters.
func (r *SpatialReference) MorphFromESRI() {
	r.def.morphFromESRI()
}

func (d *definition) morphFromESRI() {
	if d.geog != nil {
		g := d.geog
		if n, ok := ogcGeogNames[strings.ToLower(g.name)]; ok {
			g.name = n
		} else {
			g.name = strings.TrimPrefix(g.name, "GCS_")
		}
		dn := strings.TrimPrefix(g.datum.name, "D_")
		if n, ok := esriDatumAliases[dn]; ok {
			dn = n
		}
		g.datum.name = dn
		if known := findDatum(dn); known != nil && known.ellipsoid.sameShape(&g.datum.ellipsoid) {
			g.datum.auth = known.auth
			if g.datum.towgs84 == nil {
				g.datum.towgs84 = cloneFloats(known.towgs84)
			}
			g.datum.ellipsoid.auth = known.ellipsoid.auth
		}
		if n, ok := ogcEllipsoidNames[strings.ToLower(g.datum.ellipsoid.name)]; ok {
			g.datum.ellipsoid.name = n
		}
		g.angular = ogcUnit(g.angular)
		if d.kind == KindGeographic {
			d.name = g.name
		}
	}
	if d.linear != nil {
		u := ogcUnit(*d.linear)
		d.linear = &u
	}
	if d.proj != nil {
		d.proj.method = ogcMethodName(d.proj)
		for i := range d.proj.params {
			if n, ok := ogcParamNames[strings.ToLower(d.proj.params[i].name)]; ok {
				d.proj.params[i].name = n
			}
		}
		if strings.EqualFold(d.proj.method, Mercator2SP) && !d.proj.has(paramSP1) {
			d.proj.method = Mercator1SP
		}
	}
	if d.head != nil {
		d.head.morphFromESRI()
	}
	if d.tail != nil {
		d.tail.morphFromESRI()
	}
}

func ogcUnit(u unit) unit {
	if n, ok := ogcUnitNames[strings.ToLower(u.name)]; ok {
		u.name = n
	}
	return u
}

// ogcMethodName maps an ESRI projection name back to the OGC method,
// using the parameters present to pick between variants.
func ogcMethodName(p *projection) string {
	switch strings.ToLower(p.method) {
	case "mercator":
		if p.has("Standard_Parallel_1") || p.has(paramSP1) {
			return Mercator2SP
		}
		return Mercator1SP
	case "lambert_conformal_conic":
		if p.has("Standard_Parallel_2") || p.has(paramSP2) {
			return LambertConformalConic2
		}
		return LambertConformalConic1
	}
	for i := range methods {
		if strings.EqualFold(methods[i].esri, p.method) {
			return methods[i].name
		}
	}
	return p.method
}

// FromESRI parses ESRI projection definitions using the default
// catalog.
func FromESRI(lines []string) (*SpatialReference, error) {
	return DefaultCatalog().FromESRI(lines)
}

// FromESRI parses the lines of an ESRI .prj file. Either the lines hold
// ESRI dialect WKT, which is parsed and converted with MorphFromESRI,
// or they use the legacy keyword format:
//
//	Projection    UTM
//	Zone          10
//	Datum         NAD83
//	Units         METERS
//	Parameters
func (c *Catalog) FromESRI(lines []string) (*SpatialReference, error) {
	joined := strings.TrimSpace(strings.Join(lines, "\n"))
	if joined == "" {
		return nil, parseErr("empty ESRI definition")
	}
	upper := strings.ToUpper(joined)
	for _, root := range wktRoots {
		if strings.HasPrefix(upper, root) {
			r, err := c.FromWKT(strings.Join(lines, ""))
			if err != nil {
				return nil, err
			}
			r.MorphFromESRI()
			return r, nil
		}
	}
	d, err := parseESRIKeywords(lines)
	if err != nil {
		return nil, err
	}
	return newReference(d, c), nil
}

func parseESRIKeywords(lines []string) (*definition, error) {
	kv := make(map[string]string)
	var params []float64
	inParams := false
	for _, raw := range lines {
		for _, line := range strings.Split(raw, "\n") {
			if i := strings.Index(line, "/*"); i >= 0 {
				line = line[:i]
			}
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			if inParams {
				v, err := parseESRIAngle(fields)
				if err != nil {
					return nil, err
				}
				params = append(params, v)
				continue
			}
			key := strings.ToUpper(fields[0])
			if key == "PARAMETERS" {
				inParams = true
				for _, f := range fields[1:] {
					v, err := strconv.ParseFloat(f, 64)
					if err != nil {
						return nil, parseErr("invalid ESRI parameter %q", f)
					}
					params = append(params, v)
				}
				continue
			}
			kv[key] = strings.Join(fields[1:], " ")
		}
	}

	projName, ok := kv["PROJECTION"]
	if !ok {
		return nil, parseErr("ESRI definition has no Projection")
	}
	g, err := esriKeywordGeog(kv)
	if err != nil {
		return nil, err
	}

	pv := func(i int) float64 {
		if i < len(params) {
			return params[i]
		}
		return 0
	}
	lin := esriKeywordUnit(kv["UNITS"])

	d := &definition{kind: KindProjected, name: "unnamed", geog: g, linear: &lin}
	switch strings.ToUpper(projName) {
	case "GEOGRAPHIC":
		return &definition{kind: KindGeographic, name: g.name, geog: g, auth: g.auth}, nil
	case "UTM":
		zone, err := strconv.Atoi(strings.TrimSpace(kv["ZONE"]))
		north := true
		if zone < 0 {
			zone, north = -zone, false
		}
		if err != nil || zone < 1 || zone > 60 {
			return nil, parseErr("invalid ESRI UTM zone %q", kv["ZONE"])
		}
		if ys, ok := kv["YSHIFT"]; ok {
			if v, err := strconv.ParseFloat(ys, 64); err == nil && v != 0 {
				north = false
			}
		}
		d.proj = utmProjection(zone, north)
		d.name = utmName(zone, north)
	case "TRANSVERSE":
		d.proj = &projection{method: TransverseMercator, params: tmParams(pv(2), pv(1), pv(0), pv(3), pv(4))}
	case "MERCATOR":
		d.proj = &projection{method: Mercator2SP, params: []param{
			{paramSP1, pv(1)}, {paramCentralMe, pv(0)}, {paramFE, pv(2)}, {paramFN, pv(3)},
		}}
	case "LAMBERT":
		d.proj = &projection{method: LambertConformalConic2, params: []param{
			{paramSP1, pv(0)}, {paramSP2, pv(1)}, {paramLatOrigin, pv(3)},
			{paramCentralMe, pv(2)}, {paramFE, pv(4)}, {paramFN, pv(5)},
		}}
	default:
		return nil, parseErr("unsupported ESRI projection %q", projName)
	}
	return d, nil
}

// parseESRIAngle parses a parameter line holding either one number or
// degrees, minutes and seconds.
func parseESRIAngle(fields []string) (float64, error) {
	var v [3]float64
	if len(fields) > 3 {
		fields = fields[:3]
	}
	for i, f := range fields {
		x, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, parseErr("invalid ESRI parameter %q", f)
		}
		v[i] = x
	}
	if len(fields) == 1 {
		return v[0], nil
	}
	sign := 1.0
	if v[0] < 0 || strings.HasPrefix(fields[0], "-") {
		sign = -1
		v[0] = -v[0]
	}
	return sign * (v[0] + v[1]/60 + v[2]/3600), nil
}

func esriKeywordGeog(kv map[string]string) (*geogCS, error) {
	switch strings.ToUpper(kv["DATUM"]) {
	case "NAD83":
		return baseNAD83.geog(), nil
	case "NAD27":
		return baseNAD27.geog(), nil
	case "WGS72":
		return baseWGS72.geog(), nil
	case "WGS84", "":
	default:
		return nil, parseErr("unsupported ESRI datum %q", kv["DATUM"])
	}
	switch strings.ToUpper(kv["SPHEROID"]) {
	case "", "WGS84":
		return baseWGS84.geog(), nil
	case "GRS80":
		return newGeogCS("unknown", datum{name: "unknown", ellipsoid: ellGRS80}, ""), nil
	case "CLARKE1866":
		return newGeogCS("unknown", datum{name: "unknown", ellipsoid: ellClarke66}, ""), nil
	case "INTERNATIONAL1909", "INTERNATIONAL1924":
		return newGeogCS("unknown", datum{name: "unknown", ellipsoid: ellIntl}, ""), nil
	case "BESSEL":
		return newGeogCS("unknown", datum{name: "unknown", ellipsoid: ellBessel}, ""), nil
	case "AIRY":
		return newGeogCS("unknown", datum{name: "unknown", ellipsoid: ellAiry}, ""), nil
	}
	return nil, parseErr("unsupported ESRI spheroid %q", kv["SPHEROID"])
}

func esriKeywordUnit(s string) unit {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "FEET":
		return unitUSFoot
	case "INTERNATIONAL_FEET":
		return unitFoot
	}
	return unitMetre
}
