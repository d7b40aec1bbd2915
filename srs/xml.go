// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"bytes"
	"encoding/xml"
	"io"
	"strconv"
	"strings"
)

const (
	gmlNamespace   = "http://www.opengis.net/gml"
	xlinkNamespace = "http://www.w3.org/1999/xlink"
	urnCRS         = "urn:ogc:def:crs:EPSG::"
	urnDatum       = "urn:ogc:def:datum:EPSG::"
	urnEllipsoid   = "urn:ogc:def:ellipsoid:EPSG::"
	urnMeridian    = "urn:ogc:def:meridian:EPSG::"
	urnMethod      = "urn:ogc:def:method:EPSG::"
	urnParameter   = "urn:ogc:def:parameter:EPSG::"
	urnUOM         = "urn:ogc:def:uom:EPSG::"
	uomDegree      = "9102"
	uomMetre       = "9001"
	uomUnity       = "9201"
)

// xmlUnits maps EPSG unit of measure codes to units.
var xmlUnits = map[string]unit{
	"9001": unitMetre,
	"9002": unitFoot,
	"9003": unitUSFoot,
	"9036": {name: "kilometre", factor: 1000, auth: epsg("9036")},
}

type xmlWriter struct {
	b  bytes.Buffer
	id int
}

func (w *xmlWriter) open(tag string, attrs ...string) {
	w.b.WriteString("<gml:" + tag)
	for i := 0; i+1 < len(attrs); i += 2 {
		w.b.WriteString(" " + attrs[i] + `="`)
		xml.EscapeText(&w.b, []byte(attrs[i+1]))
		w.b.WriteByte('"')
	}
	w.b.WriteByte('>')
}

func (w *xmlWriter) openID(tag string, attrs ...string) {
	w.id++
	w.open(tag, append([]string{"gml:id", "srs" + strconv.Itoa(w.id)}, attrs...)...)
}

func (w *xmlWriter) close(tag string) {
	w.b.WriteString("</gml:" + tag + ">")
}

func (w *xmlWriter) text(tag, text string, attrs ...string) {
	w.open(tag, attrs...)
	xml.EscapeText(&w.b, []byte(text))
	w.close(tag)
}

func (w *xmlWriter) empty(tag string, attrs ...string) {
	w.open(tag, attrs...)
	w.b.Truncate(w.b.Len() - 1)
	w.b.WriteString("/>")
}

// identifier writes an EPSG identifier element when a is set.
func (w *xmlWriter) identifier(tag, codeSpace string, a authority) {
	if !strings.EqualFold(a.name, "EPSG") || a.code == "" {
		return
	}
	w.open(tag)
	w.text("name", a.code, "gml:codeSpace", codeSpace)
	w.close(tag)
}

// XML returns the reference as a GML 3.1.1 CRS dictionary entry. Only
// geographic and projected references with degree angular units and
// EPSG-coded linear units can be written; other references give an
// error wrapping ErrUnsupported.
func (r *SpatialReference) XML() (string, error) {
	d := r.def
	if d.kind != KindGeographic && d.kind != KindProjected {
		return "", kindErr(ErrUnsupported, "%s reference has no GML form", d.kind)
	}
	if !nearlyEqual(d.geog.angular.factor, unitDegree.factor, 1e-12) {
		return "", kindErr(ErrUnsupported, "angular unit %q has no GML form", d.geog.angular.name)
	}
	w := &xmlWriter{}
	root := "GeographicCRS"
	if d.kind == KindProjected {
		root = "ProjectedCRS"
	}
	w.id++
	w.open(root, "gml:id", "srs1", "xmlns:gml", gmlNamespace, "xmlns:xlink", xlinkNamespace)
	if d.kind == KindGeographic {
		w.geographicBody(d.geog)
		w.close(root)
		return w.b.String(), nil
	}

	code := unitCode(d.linear)
	if code == "" {
		return "", kindErr(ErrUnsupported, "linear unit %q has no GML form", d.linear.name)
	}
	m := findMethod(d.proj.method)
	if m == nil {
		return "", kindErr(ErrUnsupported, "projection %q has no GML form", d.proj.method)
	}
	w.text("srsName", d.name)
	w.identifier("srsID", urnCRS, d.auth)
	w.open("baseCRS")
	w.openID("GeographicCRS")
	w.geographicBody(d.geog)
	w.close("GeographicCRS")
	w.close("baseCRS")

	w.open("definedByConversion")
	w.openID("Conversion")
	w.text("coordinateOperationName", m.name)
	if m.epsg != "" {
		w.empty("usesMethod", "xlink:href", urnMethod+m.epsg)
	}
	for _, p := range d.proj.params {
		mp := m.param(p.name)
		pc := epsgParamCodes[strings.ToLower(p.name)]
		if mp == nil || pc == "" {
			continue
		}
		uom := uomUnity
		switch {
		case mp.angular:
			uom = uomDegree
		case mp.linear:
			uom = code
		}
		w.open("usesValue")
		w.text("value", formatNumber(p.value), "uom", urnUOM+uom)
		w.empty("valueOfParameter", "xlink:href", urnParameter+pc)
		w.close("usesValue")
	}
	w.close("Conversion")
	w.close("definedByConversion")

	w.open("usesCartesianCS")
	w.openID("CartesianCS")
	w.text("csName", "Cartesian")
	axes := d.axes
	if len(axes) == 0 {
		axes = eastNorthAxes()
	}
	for _, a := range axes {
		w.open("usesAxis")
		w.openID("CoordinateSystemAxis", "gml:uom", urnUOM+code)
		w.text("name", a.name)
		w.text("axisAbbrev", abbrev(a.name, 1))
		w.text("axisDirection", strings.ToLower(a.dir))
		w.close("CoordinateSystemAxis")
		w.close("usesAxis")
	}
	w.close("CartesianCS")
	w.close("usesCartesianCS")
	w.close(root)
	return w.b.String(), nil
}

func abbrev(name string, n int) string {
	r := []rune(name)
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}

func unitCode(u *unit) string {
	if u == nil {
		return uomMetre
	}
	if strings.EqualFold(u.auth.name, "EPSG") {
		if _, ok := xmlUnits[u.auth.code]; ok {
			return u.auth.code
		}
	}
	for code, xu := range xmlUnits {
		if nearlyEqual(xu.factor, u.factor, 1e-12) {
			return code
		}
	}
	return ""
}

func (w *xmlWriter) geographicBody(g *geogCS) {
	w.text("srsName", g.name)
	w.identifier("srsID", urnCRS, g.auth)
	w.open("usesEllipsoidalCS")
	w.openID("EllipsoidalCS")
	w.text("csName", "ellipsoidal")
	axes := g.axes
	if len(axes) == 0 {
		axes = []axis{{"Longitude", "EAST"}, {"Latitude", "NORTH"}}
	}
	for _, a := range axes {
		w.open("usesAxis")
		w.openID("CoordinateSystemAxis", "gml:uom", urnUOM+uomDegree)
		w.text("name", a.name)
		w.text("axisAbbrev", strings.ToLower(abbrev(a.name, 3)))
		w.text("axisDirection", strings.ToLower(a.dir))
		w.close("CoordinateSystemAxis")
		w.close("usesAxis")
	}
	w.close("EllipsoidalCS")
	w.close("usesEllipsoidalCS")

	dt := &g.datum
	w.open("usesGeodeticDatum")
	w.openID("GeodeticDatum")
	w.text("datumName", dt.name)
	w.identifier("datumID", urnDatum, dt.auth)
	w.open("usesPrimeMeridian")
	w.openID("PrimeMeridian")
	w.text("meridianName", g.pm.name)
	w.identifier("meridianID", urnMeridian, g.pm.auth)
	w.open("greenwichLongitude")
	w.text("angle", formatNumber(g.pm.lon), "uom", urnUOM+uomDegree)
	w.close("greenwichLongitude")
	w.close("PrimeMeridian")
	w.close("usesPrimeMeridian")

	e := &dt.ellipsoid
	w.open("usesEllipsoid")
	w.openID("Ellipsoid")
	w.text("ellipsoidName", e.name)
	w.identifier("ellipsoidID", urnEllipsoid, e.auth)
	w.text("semiMajorAxis", formatNumber(e.a), "uom", urnUOM+uomMetre)
	w.open("secondDefiningParameter")
	if e.isSphere() {
		w.text("isSphere", "sphere")
	} else {
		w.text("inverseFlattening", formatNumber(e.invf), "uom", urnUOM+uomUnity)
	}
	w.close("secondDefiningParameter")
	w.close("Ellipsoid")
	w.close("usesEllipsoid")
	w.close("GeodeticDatum")
	w.close("usesGeodeticDatum")
}

// xmlElement is a generic parsed XML element keyed by local names.
type xmlElement struct {
	name     string
	attrs    map[string]string
	children []*xmlElement
	text     string
}

func (e *xmlElement) child(name string) *xmlElement {
	if e == nil {
		return nil
	}
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

func (e *xmlElement) all(name string) []*xmlElement {
	var r []*xmlElement
	for _, c := range e.children {
		if c.name == name {
			r = append(r, c)
		}
	}
	return r
}

// path follows a chain of child names.
func (e *xmlElement) path(names ...string) *xmlElement {
	for _, n := range names {
		e = e.child(n)
	}
	return e
}

func (e *xmlElement) value() string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.text)
}

func (e *xmlElement) float(what string) (float64, error) {
	v, err := strconv.ParseFloat(e.value(), 64)
	if err != nil {
		return 0, parseErr("invalid GML %s %q", what, e.value())
	}
	return v, nil
}

// urnCode returns the trailing code of an EPSG URN.
func urnCode(urn string) string {
	if i := strings.LastIndex(urn, ":"); i >= 0 {
		return urn[i+1:]
	}
	return urn
}

func parseXMLTree(s string) (*xmlElement, error) {
	dec := xml.NewDecoder(strings.NewReader(s))
	var stack []*xmlElement
	var root *xmlElement
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, parseErr("invalid XML: %v", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			e := &xmlElement{name: t.Name.Local, attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				e.attrs[a.Name.Local] = a.Value
			}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.children = append(parent.children, e)
			} else if root == nil {
				root = e
			}
			stack = append(stack, e)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].text += string(t)
			}
		}
	}
	if root == nil {
		return nil, parseErr("empty XML document")
	}
	return root, nil
}

// FromXML parses a GML CRS definition using the default catalog.
func FromXML(s string) (*SpatialReference, error) {
	return DefaultCatalog().FromXML(s)
}

// FromXML parses the GML 3.1.1 GeographicCRS or ProjectedCRS form
// written by XML. Datums recognized by name regain their TOWGS84
// parameters.
func (c *Catalog) FromXML(s string) (*SpatialReference, error) {
	root, err := parseXMLTree(s)
	if err != nil {
		return nil, err
	}
	switch root.name {
	case "GeographicCRS":
		g, err := parseGMLGeographic(root)
		if err != nil {
			return nil, err
		}
		return newReference(&definition{kind: KindGeographic, name: g.name, geog: g, auth: g.auth}, c), nil
	case "ProjectedCRS":
		d, err := parseGMLProjected(root)
		if err != nil {
			return nil, err
		}
		return newReference(d, c), nil
	}
	return nil, parseErr("unsupported GML root %q", root.name)
}

func gmlIdentifier(e *xmlElement) authority {
	n := e.child("name")
	if n == nil || n.value() == "" {
		return authority{}
	}
	return epsg(n.value())
}

func parseGMLAxes(cs *xmlElement) []axis {
	var axes []axis
	for _, ua := range cs.all("usesAxis") {
		a := ua.child("CoordinateSystemAxis")
		if a == nil {
			continue
		}
		axes = append(axes, axis{
			name: a.child("name").value(),
			dir:  strings.ToUpper(a.child("axisDirection").value()),
		})
	}
	return axes
}

func parseGMLGeographic(e *xmlElement) (*geogCS, error) {
	gd := e.path("usesGeodeticDatum", "GeodeticDatum")
	if gd == nil {
		return nil, parseErr("GML GeographicCRS has no GeodeticDatum")
	}
	ell := gd.path("usesEllipsoid", "Ellipsoid")
	if ell == nil {
		return nil, parseErr("GML GeodeticDatum has no Ellipsoid")
	}
	a, err := ell.child("semiMajorAxis").float("semi-major axis")
	if err != nil {
		return nil, err
	}
	var invf float64
	if inv := ell.path("secondDefiningParameter", "inverseFlattening"); inv != nil {
		if invf, err = inv.float("inverse flattening"); err != nil {
			return nil, err
		}
	}
	g := &geogCS{
		name: e.child("srsName").value(),
		datum: datum{
			name: gd.child("datumName").value(),
			ellipsoid: ellipsoid{
				name: ell.child("ellipsoidName").value(),
				a:    a,
				invf: invf,
				auth: gmlIdentifier(ell.child("ellipsoidID")),
			},
			auth: gmlIdentifier(gd.child("datumID")),
		},
		pm:      greenwich,
		angular: unitDegree,
		auth:    gmlIdentifier(e.child("srsID")),
	}
	if pm := gd.path("usesPrimeMeridian", "PrimeMeridian"); pm != nil {
		lon, err := pm.path("greenwichLongitude", "angle").float("prime meridian")
		if err != nil {
			return nil, err
		}
		g.pm = primeMeridian{
			name: pm.child("meridianName").value(),
			lon:  lon,
			auth: gmlIdentifier(pm.child("meridianID")),
		}
	}
	if known := findDatum(g.datum.name); known != nil && known.ellipsoid.sameShape(&g.datum.ellipsoid) {
		g.datum.towgs84 = cloneFloats(known.towgs84)
	}
	if cs := e.path("usesEllipsoidalCS", "EllipsoidalCS"); cs != nil {
		axes := parseGMLAxes(cs)
		if len(axes) == 2 && (axes[0].dir == "NORTH" || axes[0].dir == "SOUTH") {
			g.axes = axes
		}
	}
	return g, nil
}

func parseGMLProjected(e *xmlElement) (*definition, error) {
	base := e.path("baseCRS", "GeographicCRS")
	if base == nil {
		return nil, parseErr("GML ProjectedCRS has no baseCRS")
	}
	g, err := parseGMLGeographic(base)
	if err != nil {
		return nil, err
	}
	conv := e.path("definedByConversion", "Conversion")
	if conv == nil {
		return nil, parseErr("GML ProjectedCRS has no Conversion")
	}
	var m *method
	if um := conv.child("usesMethod"); um != nil {
		m = findMethodByEPSG(urnCode(um.attrs["href"]))
	}
	if m == nil {
		m = findMethod(conv.child("coordinateOperationName").value())
	}
	if m == nil {
		return nil, parseErr("unsupported GML operation method")
	}

	codeToParam := make(map[string]string, len(epsgParamCodes))
	for name, code := range epsgParamCodes {
		codeToParam[code] = name
	}
	p := &projection{method: m.name}
	for _, uv := range conv.all("usesValue") {
		ref := uv.child("valueOfParameter")
		if ref == nil {
			continue
		}
		name, ok := codeToParam[urnCode(ref.attrs["href"])]
		if !ok {
			return nil, parseErr("unknown GML parameter %q", ref.attrs["href"])
		}
		v, err := uv.child("value").float("parameter value")
		if err != nil {
			return nil, err
		}
		p.params = append(p.params, param{name: name, value: v})
	}

	u := unitMetre
	var axes []axis
	if cs := e.path("usesCartesianCS", "CartesianCS"); cs != nil {
		if a := cs.path("usesAxis", "CoordinateSystemAxis"); a != nil {
			code := urnCode(a.attrs["uom"])
			xu, ok := xmlUnits[code]
			if !ok {
				return nil, parseErr("unsupported GML unit %q", a.attrs["uom"])
			}
			u = xu
		}
		axes = parseGMLAxes(cs)
	}
	if len(axes) == 2 && axes[0].dir == "EAST" && axes[1].dir == "NORTH" && axes[0].name == "Easting" {
		axes = nil
	}
	return &definition{
		kind:   KindProjected,
		name:   e.child("srsName").value(),
		geog:   g,
		proj:   p,
		linear: &u,
		axes:   axes,
		auth:   gmlIdentifier(e.child("srsID")),
	}, nil
}
