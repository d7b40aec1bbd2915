// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"math"
	"strconv"
	"strings"
)

// proj4Params is a parsed Proj4 definition: an ordered list of keys
// with their values. Flags such as +south have an empty value.
type proj4Params struct {
	keys   []string
	values map[string]string
}

func parseProj4Params(s string) (*proj4Params, error) {
	p := &proj4Params{values: make(map[string]string)}
	for _, tok := range strings.Fields(s) {
		if !strings.HasPrefix(tok, "+") {
			return nil, parseErr("proj4 token %q does not start with '+'", tok)
		}
		tok = tok[1:]
		if tok == "" {
			continue
		}
		key, value, _ := strings.Cut(tok, "=")
		if _, dup := p.values[key]; !dup {
			p.keys = append(p.keys, key)
		}
		p.values[key] = value
	}
	if len(p.keys) == 0 {
		return nil, parseErr("empty proj4 string")
	}
	return p, nil
}

func (p *proj4Params) has(key string) bool {
	_, ok := p.values[key]
	return ok
}

func (p *proj4Params) float(key string, def float64) (float64, error) {
	v, ok := p.values[key]
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, parseErr("invalid +%s value %q", key, v)
	}
	return f, nil
}

// proj4PrimeMeridians maps +pm names to longitudes in degrees.
var proj4PrimeMeridians = map[string]float64{
	"greenwich": 0,
	"paris":     2.33722917,
	"lisbon":    -9.131906111111,
	"bogota":    -74.08091666666667,
	"madrid":    -3.687938888888889,
	"rome":      12.45233333333333,
	"bern":      7.439583333333333,
	"jakarta":   106.8077194444444,
	"ferro":     -17.66666666666667,
	"brussels":  4.367975,
	"stockholm": 18.05827777777778,
	"athens":    23.7163375,
	"oslo":      10.72291666666667,
}

// proj4Units maps +units names to linear units.
var proj4Units = map[string]unit{
	"m":     unitMetre,
	"ft":    unitFoot,
	"us-ft": unitUSFoot,
	"km":    {name: "kilometre", factor: 1000, auth: epsg("9036")},
}

// parseProj4 builds a definition from a Proj4 string.
func (c *Catalog) parseProj4(s string) (*definition, error) {
	p, err := parseProj4Params(s)
	if err != nil {
		return nil, err
	}

	if init, ok := p.values["init"]; ok {
		authName, code, found := strings.Cut(init, ":")
		if !found || !strings.EqualFold(authName, "epsg") {
			return nil, parseErr("unsupported +init=%s", init)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			return nil, parseErr("invalid EPSG code in +init=%s", init)
		}
		return c.lookup(n, false)
	}

	projName, ok := p.values["proj"]
	if !ok {
		return nil, parseErr("proj4 string has no +proj")
	}

	g, err := proj4GeogCS(p)
	if err != nil {
		return nil, err
	}

	switch projName {
	case "longlat", "latlong", "lonlat", "latlon":
		d := &definition{kind: KindGeographic, name: g.name, geog: g}
		if projName == "latlong" || projName == "latlon" || strings.HasPrefix(p.values["axis"], "n") {
			g.axes = latLongAxes()
		}
		return d, nil
	case "geocent":
		g.name = ""
		lin, err := proj4LinearUnit(p)
		if err != nil {
			return nil, err
		}
		return &definition{kind: KindGeocentric, name: "Geocentric", geog: g, linear: lin}, nil
	}

	proj, name, err := proj4Projection(projName, p, g)
	if err != nil {
		return nil, err
	}
	lin, err := proj4LinearUnit(p)
	if err != nil {
		return nil, err
	}
	// x_0 and y_0 are always metres; WKT expresses them in the linear
	// unit.
	for i := range proj.params {
		switch proj.params[i].name {
		case paramFE, paramFN:
			proj.params[i].value /= lin.factor
		}
	}
	d := &definition{kind: KindProjected, name: name, geog: g, proj: proj, linear: lin}
	if strings.HasPrefix(p.values["axis"], "n") {
		d.axes = northEastAxes()
	}
	return d, nil
}

func proj4GeogCS(p *proj4Params) (*geogCS, error) {
	var g *geogCS
	if name, ok := p.values["datum"]; ok {
		d, known := proj4Datums[name]
		if !known {
			return nil, parseErr("unknown +datum=%s", name)
		}
		g = wellKnownGeog(d)
	} else {
		e, err := proj4Ellipsoid(p)
		if err != nil {
			return nil, err
		}
		g = &geogCS{
			name:    "unknown",
			datum:   datum{name: "unknown", ellipsoid: e},
			pm:      greenwich,
			angular: unitDegree,
		}
		if e.sameShape(&ellWGS84) && e.name == ellWGS84.name {
			g.name = "WGS 84"
			g.datum = datumWGS84
		}
	}

	if v, ok := p.values["towgs84"]; ok {
		parts := strings.Split(v, ",")
		if len(parts) != 3 && len(parts) != 7 {
			return nil, parseErr("+towgs84 needs 3 or 7 values, got %d", len(parts))
		}
		t := make([]float64, 7)
		for i, s := range parts {
			f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
			if err != nil {
				return nil, parseErr("invalid +towgs84 value %q", s)
			}
			t[i] = f
		}
		g.datum.towgs84 = t
		if g.datum.isWGS84() && !towgs84Equal(t, nil) {
			g.datum.name = "unknown"
			g.datum.auth = authority{}
		}
	}

	if v, ok := p.values["pm"]; ok {
		lon, known := proj4PrimeMeridians[strings.ToLower(v)]
		if !known {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, parseErr("unknown +pm=%s", v)
			}
			lon = f
			g.pm = primeMeridian{name: "unnamed", lon: lon}
		} else {
			pm := strings.ToUpper(v[:1]) + strings.ToLower(v[1:])
			g.pm = primeMeridian{name: pm, lon: lon}
			if strings.EqualFold(v, "greenwich") {
				g.pm = greenwich
			}
		}
	}
	return g, nil
}

func proj4Ellipsoid(p *proj4Params) (ellipsoid, error) {
	var e ellipsoid
	if name, ok := p.values["ellps"]; ok {
		known, found := proj4Ellipsoids[name]
		if !found {
			return e, parseErr("unknown +ellps=%s", name)
		}
		e = known
	} else if !p.has("a") && !p.has("R") {
		e = ellWGS84
	}

	if p.has("R") {
		r, err := p.float("R", 0)
		if err != nil {
			return e, err
		}
		return ellipsoid{name: "unnamed", a: r}, nil
	}
	if p.has("a") {
		a, err := p.float("a", 0)
		if err != nil {
			return e, err
		}
		e = ellipsoid{name: "unnamed", a: a, invf: e.invf}
		switch {
		case p.has("rf"):
			if e.invf, err = p.float("rf", 0); err != nil {
				return e, err
			}
		case p.has("f"):
			f, err := p.float("f", 0)
			if err != nil {
				return e, err
			}
			e.invf = 0
			if f != 0 {
				e.invf = 1 / f
			}
		case p.has("b"):
			b, err := p.float("b", 0)
			if err != nil {
				return e, err
			}
			e.invf = 0
			if b != a {
				e.invf = a / (a - b)
			}
		}
	}
	if e.a <= 0 {
		return e, parseErr("semi-major axis must be positive")
	}
	return e, nil
}

func proj4LinearUnit(p *proj4Params) (*unit, error) {
	u := unitMetre
	if v, ok := p.values["units"]; ok {
		known, found := proj4Units[v]
		if !found {
			return nil, parseErr("unknown +units=%s", v)
		}
		u = known
	}
	if p.has("to_meter") {
		f, err := p.float("to_meter", 1)
		if err != nil {
			return nil, err
		}
		u = unitByFactor(f)
	}
	return &u, nil
}

// unitByFactor returns the well-known linear unit with the given
// factor, or an unnamed one.
func unitByFactor(f float64) unit {
	for _, u := range []unit{unitMetre, unitFoot, unitUSFoot} {
		if nearlyEqual(u.factor, f, 1e-12) {
			return u
		}
	}
	return unit{name: "unknown", factor: f}
}

func proj4Projection(projName string, p *proj4Params, g *geogCS) (*projection, string, error) {
	var m *method
	name := "unnamed"

	if projName == "utm" {
		zone, err := p.float("zone", 0)
		if err != nil {
			return nil, "", err
		}
		if zone < 1 || zone > 60 || zone != math.Trunc(zone) {
			return nil, "", parseErr("invalid UTM zone %v", p.values["zone"])
		}
		south := p.has("south")
		return utmProjection(int(zone), !south), utmName(int(zone), !south), nil
	}

	switch projName {
	case "tmerc":
		m = findMethod(TransverseMercator)
	case "merc":
		e := &g.datum.ellipsoid
		switch {
		case e.isSphere() && e.a == 6378137 && p.values["nadgrids"] == "@null":
			m = findMethod(PseudoMercator)
			g.name = "WGS 84"
			g.datum = datumWGS84
		case p.has("lat_ts"):
			m = findMethod(Mercator2SP)
		default:
			m = findMethod(Mercator1SP)
		}
	case "lcc":
		lat1, _ := p.float("lat_1", 0)
		lat0, _ := p.float("lat_0", lat1)
		if p.has("lat_2") || lat1 != lat0 {
			m = findMethod(LambertConformalConic2)
		} else {
			m = findMethod(LambertConformalConic1)
		}
	case "eqc":
		m = findMethod(Equirectangular)
	case "ortho":
		m = findMethod(Orthographic)
	case "moll":
		m = findMethod(Mollweide)
	default:
		return nil, "", parseErr("unsupported projection +proj=%s", projName)
	}

	proj := &projection{method: m.name}
	for _, mp := range m.params {
		key := mp.proj4
		if !p.has(key) {
			switch {
			case mp.name == paramScale && p.has("k_0"):
				key = "k_0"
			case m.name == LambertConformalConic1 && mp.name == paramLatOrigin && !p.has("lat_0"):
				key = "lat_1"
			}
		}
		v, err := p.float(key, mp.def)
		if err != nil {
			return nil, "", err
		}
		proj.params = append(proj.params, param{name: mp.name, value: v})
	}
	return proj, name, nil
}

func utmProjection(zone int, north bool) *projection {
	fn := 0.0
	if !north {
		fn = 10000000
	}
	return &projection{
		method: TransverseMercator,
		params: []param{
			{paramLatOrigin, 0},
			{paramCentralMe, float64(zone*6 - 183)},
			{paramScale, 0.9996},
			{paramFE, 500000},
			{paramFN, fn},
		},
	}
}

func utmName(zone int, north bool) string {
	h := "Northern"
	if !north {
		h = "Southern"
	}
	return "UTM Zone " + strconv.Itoa(zone) + ", " + h + " Hemisphere"
}

// utmZone reports the UTM zone and hemisphere of a Transverse Mercator
// projection, if it is one.
func (p *projection) utmZone() (zone int, north bool, ok bool) {
	if !strings.EqualFold(p.method, TransverseMercator) {
		return 0, false, false
	}
	if p.get(paramLatOrigin, 0) != 0 || p.get(paramScale, 1) != 0.9996 || p.get(paramFE, 0) != 500000 {
		return 0, false, false
	}
	fn := p.get(paramFN, 0)
	if fn != 0 && fn != 10000000 {
		return 0, false, false
	}
	z := (p.get(paramCentralMe, 0) + 183) / 6
	if z < 1 || z > 60 || z != math.Trunc(z) {
		return 0, false, false
	}
	return int(z), fn == 0, true
}

// proj4 renders d as a Proj4 string.
func (d *definition) proj4() (string, error) {
	var b strings.Builder
	switch d.kind {
	case KindGeographic:
		b.WriteString("+proj=longlat ")
		d.geog.writeProj4Datum(&b)
	case KindGeocentric:
		b.WriteString("+proj=geocent ")
		d.geog.writeProj4Datum(&b)
		writeProj4Units(&b, d.linear)
	case KindProjected:
		if err := d.writeProj4Projection(&b); err != nil {
			return "", err
		}
		if !strings.EqualFold(d.proj.method, PseudoMercator) {
			d.geog.writeProj4Datum(&b)
		}
		writeProj4Units(&b, d.linear)
		if strings.EqualFold(d.proj.method, PseudoMercator) {
			b.WriteString("+nadgrids=@null +wktext ")
		}
	case KindCompound:
		if d.head == nil {
			return "", kindErr(ErrUnsupported, "compound reference has no horizontal part")
		}
		return d.head.proj4()
	default:
		return "", kindErr(ErrUnsupported, "%s references have no proj4 form", d.kind)
	}
	b.WriteString("+no_defs")
	return b.String(), nil
}

func (d *definition) writeProj4Projection(b *strings.Builder) error {
	p := d.proj
	if zone, north, ok := p.utmZone(); ok {
		b.WriteString("+proj=utm +zone=")
		b.WriteString(strconv.Itoa(zone))
		b.WriteByte(' ')
		if !north {
			b.WriteString("+south ")
		}
		return nil
	}

	m := findMethod(p.method)
	if m == nil {
		return kindErr(ErrUnsupported, "projection method %q has no proj4 form", p.method)
	}
	angular := d.geog.angular.factor / degreeFactor
	linear := 1.0
	if d.linear != nil {
		linear = d.linear.factor
	}

	b.WriteString("+proj=")
	b.WriteString(m.proj4)
	b.WriteByte(' ')
	if m.name == PseudoMercator {
		a := d.geog.datum.ellipsoid.a
		writeProj4Value(b, "a", a)
		writeProj4Value(b, "b", a)
		writeProj4Value(b, "lat_ts", 0)
		writeProj4Value(b, "lon_0", p.get(paramCentralMe, 0)*angular)
		writeProj4Value(b, "x_0", p.get(paramFE, 0)*linear)
		writeProj4Value(b, "y_0", p.get(paramFN, 0)*linear)
		writeProj4Value(b, "k", p.get(paramScale, 1))
		return nil
	}
	if m.name == LambertConformalConic1 {
		writeProj4Value(b, "lat_1", p.get(paramLatOrigin, 0)*angular)
	}
	for _, mp := range m.params {
		v := p.get(mp.name, mp.def)
		switch {
		case mp.angular:
			v *= angular
		case mp.linear:
			v *= linear
		}
		key := mp.proj4
		if m.name == LambertConformalConic1 && mp.name == paramScale {
			key = "k_0"
		}
		writeProj4Value(b, key, v)
	}
	return nil
}

func writeProj4Value(b *strings.Builder, key string, v float64) {
	b.WriteByte('+')
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(formatNumber(v))
	b.WriteByte(' ')
}

func (g *geogCS) writeProj4Datum(b *strings.Builder) {
	d := &g.datum
	wroteDatum := false
	for name, known := range proj4Datums {
		if normalizeDatumName(known.name) == normalizeDatumName(d.name) &&
			known.ellipsoid.sameShape(&d.ellipsoid) &&
			(d.towgs84 == nil || towgs84Equal(d.towgs84, known.towgs84)) {
			b.WriteString("+datum=")
			b.WriteString(name)
			b.WriteByte(' ')
			wroteDatum = true
			break
		}
	}
	if !wroteDatum {
		writeProj4Ellipsoid(b, &d.ellipsoid)
		if d.towgs84 != nil {
			b.WriteString("+towgs84=")
			for i, v := range d.towgs84 {
				if i > 0 {
					b.WriteByte(',')
				}
				b.WriteString(formatNumber(v))
			}
			b.WriteByte(' ')
		}
	}
	if g.pm.lon != 0 {
		name := strings.ToLower(g.pm.name)
		if _, known := proj4PrimeMeridians[name]; known {
			b.WriteString("+pm=" + name + " ")
		} else {
			writeProj4Value(b, "pm", g.pm.lon)
		}
	}
}

func writeProj4Ellipsoid(b *strings.Builder, e *ellipsoid) {
	for _, name := range proj4EllipsoidOrder {
		known := proj4Ellipsoids[name]
		if known.sameShape(e) {
			b.WriteString("+ellps=")
			b.WriteString(name)
			b.WriteByte(' ')
			return
		}
	}
	writeProj4Value(b, "a", e.a)
	if e.isSphere() {
		writeProj4Value(b, "b", e.a)
	} else {
		writeProj4Value(b, "rf", e.invf)
	}
}

func writeProj4Units(b *strings.Builder, u *unit) {
	if u == nil {
		b.WriteString("+units=m ")
		return
	}
	for name, known := range proj4Units {
		if nearlyEqual(known.factor, u.factor, 1e-12) {
			b.WriteString("+units=")
			b.WriteString(name)
			b.WriteByte(' ')
			return
		}
	}
	writeProj4Value(b, "to_meter", u.factor)
}
