// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"strconv"
	"strings"
)

// MapInfo projection type numbers.
const (
	miLongLat  = 1
	miLambert  = 3
	miTM       = 8
	miMercator = 10
)

// miDatums maps MapInfo datum numbers to geographic bases.
var miDatums = map[int]geogBase{
	104: baseWGS84,
	74:  baseNAD83,
	62:  baseNAD27,
	103: baseWGS72,
	115: baseETRS89,
	79:  baseOSGB36,
}

var miUnits = map[string]unit{
	"m":         unitMetre,
	"km":        {name: "kilometre", factor: 1000, auth: epsg("9036")},
	"ft":        unitFoot,
	"survey ft": unitUSFoot,
}

// FromMICoordSys parses a MapInfo CoordSys clause using the default
// catalog.
func FromMICoordSys(s string) (*SpatialReference, error) {
	return DefaultCatalog().FromMICoordSys(s)
}

// FromMICoordSys parses a MapInfo CoordSys clause such as
//
//	Earth Projection 8, 104, "m", -123, 0, 0.9996, 500000, 0
//
// The optional leading "CoordSys" keyword is ignored. Projection types
// 1 (longitude/latitude), 3 (Lambert Conformal Conic), 8 (Transverse
// Mercator) and 10 (Mercator) are supported. "NonEarth Units "<u>""
// yields a local reference.
func (c *Catalog) FromMICoordSys(s string) (*SpatialReference, error) {
	body := strings.TrimSpace(s)
	if strings.HasPrefix(strings.ToUpper(body), "COORDSYS") {
		body = strings.TrimSpace(body[len("COORDSYS"):])
	}
	upper := strings.ToUpper(body)
	switch {
	case strings.HasPrefix(upper, "NONEARTH"):
		return c.fromMINonEarth(body[len("NONEARTH"):])
	case strings.HasPrefix(upper, "EARTH"):
		body = strings.TrimSpace(body[len("EARTH"):])
	default:
		return nil, parseErr("%q is not a MapInfo CoordSys clause", s)
	}
	if !strings.HasPrefix(strings.ToUpper(body), "PROJECTION") {
		return nil, parseErr("MapInfo CoordSys %q has no Projection", s)
	}
	fields := splitMIFields(body[len("PROJECTION"):])
	if len(fields) < 2 {
		return nil, parseErr("MapInfo CoordSys %q is too short", s)
	}

	projType, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, parseErr("invalid MapInfo projection %q", fields[0])
	}
	datumCode, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, parseErr("invalid MapInfo datum %q", fields[1])
	}
	base, ok := miDatums[datumCode]
	if !ok {
		return nil, parseErr("unsupported MapInfo datum %d", datumCode)
	}
	if projType == miLongLat {
		g := base.geog()
		return newReference(&definition{kind: KindGeographic, name: g.name, geog: g, auth: g.auth}, c), nil
	}

	rest := fields[2:]
	u := unitMetre
	if len(rest) > 0 && strings.HasPrefix(rest[0], `"`) {
		name := strings.Trim(rest[0], `"`)
		if u, ok = miUnits[name]; !ok {
			return nil, parseErr("unsupported MapInfo unit %q", name)
		}
		rest = rest[1:]
	}
	vals := make([]float64, len(rest))
	for i, f := range rest {
		if vals[i], err = strconv.ParseFloat(f, 64); err != nil {
			return nil, parseErr("invalid MapInfo parameter %q", f)
		}
	}
	want := map[int]int{miLambert: 6, miTM: 5, miMercator: 1}
	n, ok := want[projType]
	if !ok {
		return nil, parseErr("unsupported MapInfo projection %d", projType)
	}
	if len(vals) < n {
		return nil, parseErr("MapInfo projection %d needs %d parameters, got %d", projType, n, len(vals))
	}

	d := &definition{kind: KindProjected, name: "unnamed", geog: base.geog(), linear: &u}
	switch projType {
	case miLambert:
		d.proj = &projection{method: LambertConformalConic2, params: []param{
			{paramSP1, vals[2]}, {paramSP2, vals[3]}, {paramLatOrigin, vals[1]},
			{paramCentralMe, vals[0]}, {paramFE, vals[4]}, {paramFN, vals[5]},
		}}
	case miTM:
		d.proj = &projection{method: TransverseMercator, params: tmParams(vals[1], vals[0], vals[2], vals[3], vals[4])}
		if zone, north, ok := d.proj.utmZone(); ok {
			d.name = utmName(zone, north)
		}
	case miMercator:
		d.proj = &projection{method: Mercator1SP, params: []param{
			{paramCentralMe, vals[0]}, {paramScale, 1}, {paramFE, 0}, {paramFN, 0},
		}}
	}
	return newReference(d, c), nil
}

func (c *Catalog) fromMINonEarth(rest string) (*SpatialReference, error) {
	fields := strings.Fields(rest)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "UNITS") {
		return nil, parseErr("MapInfo NonEarth clause needs Units")
	}
	name := strings.Trim(strings.Join(fields[1:], " "), `"`)
	if i := strings.Index(name, `"`); i >= 0 {
		name = name[:i]
	}
	u, ok := miUnits[name]
	if !ok {
		return nil, parseErr("unsupported MapInfo unit %q", name)
	}
	return newReference(&definition{
		kind:   KindLocal,
		name:   "Nonearth",
		ldatum: &localDatum{name: "Unknown", typ: 32767},
		linear: &u,
	}, c), nil
}

// splitMIFields splits a comma separated MapInfo parameter list,
// keeping quoted unit names intact.
func splitMIFields(s string) []string {
	var fields []string
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		fields = append(fields, f)
	}
	return fields
}

// MICoordSys returns the reference as a MapInfo CoordSys clause. An
// error wrapping ErrUnsupported is returned when the datum, unit or
// projection method has no MapInfo equivalent.
func (r *SpatialReference) MICoordSys() (string, error) {
	d := r.def.horizontal()
	if d == nil {
		return "", kindErr(ErrUnsupported, "empty reference has no MapInfo form")
	}
	if d.kind == KindLocal {
		name, ok := miUnitName(d.linear)
		if !ok {
			return "", kindErr(ErrUnsupported, "unit %q has no MapInfo name", d.linear.name)
		}
		return `NonEarth Units "` + name + `"`, nil
	}
	if d.kind != KindGeographic && d.kind != KindProjected {
		return "", kindErr(ErrUnsupported, "%s reference has no MapInfo form", d.kind)
	}
	datumCode := miDatumCode(&d.geog.datum)
	if datumCode == 0 {
		return "", kindErr(ErrUnsupported, "datum %q has no MapInfo number", d.geog.datum.name)
	}
	var b strings.Builder
	b.WriteString("Earth Projection ")
	if d.kind == KindGeographic {
		b.WriteString(strconv.Itoa(miLongLat) + ", " + strconv.Itoa(datumCode))
		return b.String(), nil
	}
	unitName, ok := miUnitName(d.linear)
	if !ok {
		return "", kindErr(ErrUnsupported, "unit %q has no MapInfo name", d.linear.name)
	}
	p := d.proj
	var projType int
	var vals []float64
	switch {
	case strings.EqualFold(p.method, TransverseMercator):
		projType = miTM
		vals = []float64{p.get(paramCentralMe, 0), p.get(paramLatOrigin, 0), p.get(paramScale, 1),
			p.get(paramFE, 0), p.get(paramFN, 0)}
	case strings.EqualFold(p.method, LambertConformalConic2):
		projType = miLambert
		vals = []float64{p.get(paramCentralMe, 0), p.get(paramLatOrigin, 0), p.get(paramSP1, 0),
			p.get(paramSP2, 0), p.get(paramFE, 0), p.get(paramFN, 0)}
	case strings.EqualFold(p.method, Mercator1SP) && p.get(paramScale, 1) == 1 &&
		p.get(paramFE, 0) == 0 && p.get(paramFN, 0) == 0:
		projType = miMercator
		vals = []float64{p.get(paramCentralMe, 0)}
	default:
		return "", kindErr(ErrUnsupported, "projection %q has no MapInfo form", p.method)
	}
	b.WriteString(strconv.Itoa(projType) + ", " + strconv.Itoa(datumCode) + `, "` + unitName + `"`)
	for _, v := range vals {
		b.WriteString(", " + formatNumber(v))
	}
	return b.String(), nil
}

// miDatumCodes lists the MapInfo datum numbers in lookup order.
var miDatumCodes = []int{104, 74, 62, 103, 115, 79}

// miDatumCode returns the MapInfo number of d, or 0. A datum with the
// same name wins over one that is merely equivalent.
func miDatumCode(d *datum) int {
	for _, code := range miDatumCodes {
		if normalizeDatumName(miDatums[code].datum.name) == normalizeDatumName(d.name) {
			return code
		}
	}
	for _, code := range miDatumCodes {
		if miDatums[code].datum.sameDatum(d) {
			return code
		}
	}
	return 0
}

func miUnitName(u *unit) (string, bool) {
	if u == nil {
		return "m", true
	}
	for name, mu := range miUnits {
		if nearlyEqual(mu.factor, u.factor, 1e-12) {
			return name, true
		}
	}
	return "", false
}
