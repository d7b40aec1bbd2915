// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"math"
	"strconv"
	"strings"
)

// Kind classifies a spatial reference.
type Kind int

const (
	// KindEmpty is the kind of a reference with no definition.
	KindEmpty Kind = iota
	// KindGeographic is a latitude/longitude reference (GEOGCS).
	KindGeographic
	// KindProjected is a map projection over a geographic base
	// (PROJCS).
	KindProjected
	// KindGeocentric is an Earth-centred Cartesian reference (GEOCCS).
	KindGeocentric
	// KindLocal is an engineering reference with no Earth anchoring
	// (LOCAL_CS).
	KindLocal
	// KindVertical is a height reference (VERT_CS).
	KindVertical
	// KindCompound is a horizontal plus vertical reference (COMPD_CS).
	KindCompound
)

var kindNames = [...]string{"Empty", "Geographic", "Projected", "Geocentric", "Local", "Vertical", "Compound"}

// String returns the name of the kind.
func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Units is a named unit of measure with its conversion factor to the
// base unit: metres for linear units and radians for angular units.
type Units struct {
	Name   string
	Factor float64
}

// authority is an (authority name, code) pair such as ("EPSG", "4326").
type authority struct {
	name, code string
}

func (a authority) isZero() bool {
	return a.name == "" && a.code == ""
}

func epsg(code string) authority {
	return authority{name: "EPSG", code: code}
}

type unit struct {
	name   string
	factor float64
	auth   authority
}

type ellipsoid struct {
	name string
	a    float64
	invf float64
	auth authority
}

// b returns the semi-minor axis.
func (e *ellipsoid) b() float64 {
	if e.invf == 0 {
		return e.a
	}
	return e.a * (1 - 1/e.invf)
}

// f returns the flattening.
func (e *ellipsoid) f() float64 {
	if e.invf == 0 {
		return 0
	}
	return 1 / e.invf
}

// es returns the first eccentricity squared.
func (e *ellipsoid) es() float64 {
	f := e.f()
	return f * (2 - f)
}

func (e *ellipsoid) isSphere() bool {
	return e.invf == 0
}

func (e *ellipsoid) sameShape(o *ellipsoid) bool {
	return nearlyEqual(e.a, o.a, 1e-4) && nearlyEqual(e.invf, o.invf, 1e-9)
}

type datum struct {
	name      string
	ellipsoid ellipsoid
	// towgs84 holds 3 or 7 Helmert parameters, or nil if the datum
	// has no known shift to WGS84.
	towgs84 []float64
	auth    authority
}

func (d *datum) isUnnamed() bool {
	n := strings.ToLower(d.name)
	return n == "" || n == "unknown" || strings.HasPrefix(n, "unknown_based_on") || n == "d_unknown"
}

// isWGS84 reports whether the datum is WGS84 itself.
func (d *datum) isWGS84() bool {
	return normalizeDatumName(d.name) == "wgs_1984"
}

// shift returns the 7-parameter shift to WGS84, and whether one is
// known.
func (d *datum) shift() ([7]float64, bool) {
	var p [7]float64
	if d.isWGS84() {
		return p, true
	}
	if len(d.towgs84) != 3 && len(d.towgs84) != 7 {
		return p, false
	}
	copy(p[:], d.towgs84)
	return p, true
}

// sameDatum reports whether d and o denote the same geodetic datum:
// their names match, their TOWGS84 vectors match, or both are unnamed
// with the same ellipsoid.
func (d *datum) sameDatum(o *datum) bool {
	if !d.ellipsoid.sameShape(&o.ellipsoid) {
		return false
	}
	if d.isUnnamed() && o.isUnnamed() {
		return true
	}
	if !d.isUnnamed() && !o.isUnnamed() && normalizeDatumName(d.name) == normalizeDatumName(o.name) {
		return true
	}
	return d.towgs84 != nil && o.towgs84 != nil && towgs84Equal(d.towgs84, o.towgs84)
}

func towgs84Equal(a, b []float64) bool {
	var pa, pb [7]float64
	copy(pa[:], a)
	copy(pb[:], b)
	for i := range pa {
		if !nearlyEqual(pa[i], pb[i], 1e-9) {
			return false
		}
	}
	return true
}

// normalizeDatumName folds the OGC and ESRI spellings of a datum name
// to one comparable form.
func normalizeDatumName(name string) string {
	n := strings.TrimPrefix(name, "D_")
	if alias, ok := esriDatumAliases[n]; ok {
		n = alias
	}
	n = strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return '_'
		}
		return r
	}, n)
	return strings.ToLower(n)
}

type primeMeridian struct {
	name string
	// lon is the longitude in degrees east of Greenwich.
	lon  float64
	auth authority
}

type axis struct {
	name string
	dir  string
}

type geogCS struct {
	name    string
	datum   datum
	pm      primeMeridian
	angular unit
	axes    []axis
	auth    authority
}

type param struct {
	name  string
	value float64
}

type projection struct {
	method string
	params []param
	auth   authority
}

// get returns the value of the named parameter, or def if the
// projection does not carry it.
func (p *projection) get(name string, def float64) float64 {
	for i := range p.params {
		if strings.EqualFold(p.params[i].name, name) {
			return p.params[i].value
		}
	}
	return def
}

func (p *projection) has(name string) bool {
	for i := range p.params {
		if strings.EqualFold(p.params[i].name, name) {
			return true
		}
	}
	return false
}

func (p *projection) set(name string, value float64) {
	for i := range p.params {
		if strings.EqualFold(p.params[i].name, name) {
			p.params[i].value = value
			return
		}
	}
	p.params = append(p.params, param{name: name, value: value})
}

type vertDatum struct {
	name string
	typ  int
	auth authority
}

type localDatum struct {
	name string
	typ  int
	auth authority
}

type extension struct {
	name, value string
}

// definition is the normalized, typed content of a spatial reference.
// Which fields are meaningful depends on kind:
//
//   - geographic: geog.
//   - projected: geog, proj, linear, axes.
//   - geocentric: geog (datum and prime meridian only), linear, axes.
//   - local: ldatum, linear, axes.
//   - vertical: vdatum, linear, axes.
//   - compound: head, tail.
type definition struct {
	kind       Kind
	name       string
	geog       *geogCS
	proj       *projection
	linear     *unit
	axes       []axis
	vdatum     *vertDatum
	ldatum     *localDatum
	head, tail *definition
	extensions []extension
	auth       authority
}

// clone returns a deep copy of d.
func (d *definition) clone() *definition {
	if d == nil {
		return nil
	}
	c := *d
	if d.geog != nil {
		g := *d.geog
		g.datum.towgs84 = cloneFloats(d.geog.datum.towgs84)
		g.axes = cloneAxes(d.geog.axes)
		c.geog = &g
	}
	if d.proj != nil {
		p := *d.proj
		p.params = append([]param(nil), d.proj.params...)
		c.proj = &p
	}
	if d.linear != nil {
		u := *d.linear
		c.linear = &u
	}
	if d.vdatum != nil {
		v := *d.vdatum
		c.vdatum = &v
	}
	if d.ldatum != nil {
		l := *d.ldatum
		c.ldatum = &l
	}
	c.axes = cloneAxes(d.axes)
	c.extensions = append([]extension(nil), d.extensions...)
	c.head = d.head.clone()
	c.tail = d.tail.clone()
	return &c
}

func cloneFloats(f []float64) []float64 {
	if f == nil {
		return nil
	}
	return append([]float64(nil), f...)
}

func cloneAxes(a []axis) []axis {
	if a == nil {
		return nil
	}
	return append([]axis(nil), a...)
}

// horizontal returns the horizontal component: d itself, or the head
// of a compound reference.
func (d *definition) horizontal() *definition {
	if d.kind == KindCompound {
		if d.head == nil {
			return nil
		}
		return d.head.horizontal()
	}
	return d
}

// vertical returns the vertical component: d itself, or the tail of a
// compound reference.
func (d *definition) vertical() *definition {
	switch d.kind {
	case KindVertical:
		return d
	case KindCompound:
		if d.tail != nil {
			return d.tail.vertical()
		}
	}
	return nil
}

const (
	degreeFactor = 0.0174532925199433
	usFootFactor = 0.304800609601219
	footFactor   = 0.3048
	arcSecond    = math.Pi / (180 * 3600)
)

var (
	unitDegree = unit{name: "degree", factor: degreeFactor, auth: epsg("9122")}
	unitMetre  = unit{name: "metre", factor: 1, auth: epsg("9001")}
	unitFoot   = unit{name: "foot", factor: footFactor, auth: epsg("9002")}
	unitUSFoot = unit{name: "US survey foot", factor: usFootFactor, auth: epsg("9003")}
	greenwich  = primeMeridian{name: "Greenwich", lon: 0, auth: epsg("8901")}
)

// Well-known ellipsoids.
var (
	ellWGS84    = ellipsoid{name: "WGS 84", a: 6378137, invf: 298.257223563, auth: epsg("7030")}
	ellGRS80    = ellipsoid{name: "GRS 1980", a: 6378137, invf: 298.257222101, auth: epsg("7019")}
	ellClarke66 = ellipsoid{name: "Clarke 1866", a: 6378206.4, invf: 294.978698213898, auth: epsg("7008")}
	ellWGS72    = ellipsoid{name: "WGS 72", a: 6378135, invf: 298.26, auth: epsg("7043")}
	ellAiry     = ellipsoid{name: "Airy 1830", a: 6377563.396, invf: 299.3249646, auth: epsg("7001")}
	ellBessel   = ellipsoid{name: "Bessel 1841", a: 6377397.155, invf: 299.1528128, auth: epsg("7004")}
	ellIntl     = ellipsoid{name: "International 1924", a: 6378388, invf: 297, auth: epsg("7022")}
	ellCGCS2000 = ellipsoid{name: "CGCS2000", a: 6378137, invf: 298.257222101, auth: epsg("1024")}
)

// proj4Ellipsoids maps the +ellps names understood by FromProj4 to
// ellipsoids.
var proj4Ellipsoids = map[string]ellipsoid{
	"WGS84":    ellWGS84,
	"GRS80":    ellGRS80,
	"clrk66":   ellClarke66,
	"WGS72":    ellWGS72,
	"airy":     ellAiry,
	"bessel":   ellBessel,
	"intl":     ellIntl,
	"sphere":   {name: "Normal Sphere (r=6370997)", a: 6370997},
	"CGCS2000": ellCGCS2000,
}

var proj4EllipsoidOrder = []string{"WGS84", "GRS80", "clrk66", "WGS72", "airy", "bessel", "intl", "sphere", "CGCS2000"}

// Well-known datums.
var (
	datumWGS84 = datum{name: "WGS_1984", ellipsoid: ellWGS84, auth: epsg("6326")}
	datumNAD83 = datum{name: "North_American_Datum_1983", ellipsoid: ellGRS80,
		towgs84: []float64{0, 0, 0, 0, 0, 0, 0}, auth: epsg("6269")}
	datumNAD27 = datum{name: "North_American_Datum_1927", ellipsoid: ellClarke66,
		towgs84: []float64{-8, 160, 176, 0, 0, 0, 0}, auth: epsg("6267")}
	datumWGS72 = datum{name: "WGS_1972", ellipsoid: ellWGS72,
		towgs84: []float64{0, 0, 4.5, 0, 0, 0.554, 0.2263}, auth: epsg("6322")}
	datumETRS89 = datum{name: "European_Terrestrial_Reference_System_1989", ellipsoid: ellGRS80,
		towgs84: []float64{0, 0, 0, 0, 0, 0, 0}, auth: epsg("6258")}
	datumOSGB36 = datum{name: "OSGB_1936", ellipsoid: ellAiry,
		towgs84: []float64{446.448, -125.157, 542.06, 0.15, 0.247, 0.842, -20.489}, auth: epsg("6277")}
	datumDHDN = datum{name: "Deutsches_Hauptdreiecksnetz", ellipsoid: ellBessel,
		towgs84: []float64{598.1, 73.7, 418.2, 0.202, 0.045, -2.455, 6.7}, auth: epsg("6314")}
	datumRGF93 = datum{name: "Reseau_Geodesique_Francais_1993", ellipsoid: ellGRS80,
		towgs84: []float64{0, 0, 0, 0, 0, 0, 0}, auth: epsg("6171")}
	datumSWEREF99 = datum{name: "SWEREF99", ellipsoid: ellGRS80,
		towgs84: []float64{0, 0, 0, 0, 0, 0, 0}, auth: epsg("6619")}
	datumED50 = datum{name: "European_Datum_1950", ellipsoid: ellIntl,
		towgs84: []float64{-87, -98, -121, 0, 0, 0, 0}, auth: epsg("6230")}
	datumCGCS2000 = datum{name: "China_2000", ellipsoid: ellCGCS2000,
		towgs84: []float64{0, 0, 0, 0, 0, 0, 0}, auth: epsg("1043")}
)

var knownDatums = []*datum{
	&datumWGS84, &datumNAD83, &datumNAD27, &datumWGS72, &datumETRS89, &datumOSGB36,
	&datumDHDN, &datumRGF93, &datumSWEREF99, &datumED50, &datumCGCS2000,
}

// findDatum returns the well-known datum with a matching name.
func findDatum(name string) *datum {
	n := normalizeDatumName(name)
	for _, d := range knownDatums {
		if normalizeDatumName(d.name) == n {
			return d
		}
	}
	return nil
}

// proj4Datums maps +datum names to datums.
var proj4Datums = map[string]*datum{
	"WGS84": &datumWGS84,
	"NAD83": &datumNAD83,
	"NAD27": &datumNAD27,
}

func newGeogCS(name string, d datum, code string) *geogCS {
	d.towgs84 = cloneFloats(d.towgs84)
	g := &geogCS{
		name:    name,
		datum:   d,
		pm:      greenwich,
		angular: unitDegree,
	}
	if code != "" {
		g.auth = epsg(code)
	}
	return g
}

func latLongAxes() []axis {
	return []axis{{"Latitude", "NORTH"}, {"Longitude", "EAST"}}
}

func eastNorthAxes() []axis {
	return []axis{{"Easting", "EAST"}, {"Northing", "NORTH"}}
}

func northEastAxes() []axis {
	return []axis{{"Northing", "NORTH"}, {"Easting", "EAST"}}
}

func nearlyEqual(a, b, tol float64) bool {
	if a == b {
		return true
	}
	d := math.Abs(a - b)
	if d <= tol {
		return true
	}
	return d <= tol*math.Max(math.Abs(a), math.Abs(b))
}
