// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"strconv"
	"strings"
)

// tree converts a definition to its WKT node tree.
func (d *definition) tree() *node {
	switch d.kind {
	case KindGeographic:
		n := d.geog.tree()
		n.children = insertBeforeAuthority(n.children, d.extensionNodes()...)
		return n
	case KindProjected:
		n := keyword("PROJCS", quoted(d.name), d.geog.tree())
		pn := keyword("PROJECTION", quoted(d.proj.method))
		if !d.proj.auth.isZero() {
			pn.children = append(pn.children, authorityNode(d.proj.auth))
		}
		n.children = append(n.children, pn)
		for _, p := range d.proj.params {
			n.children = append(n.children, keyword("PARAMETER", quoted(p.name), number(p.value)))
		}
		n.children = append(n.children, unitNode(d.linear))
		n.children = append(n.children, axisNodes(d.axes)...)
		n.children = append(n.children, d.extensionNodes()...)
		return withAuthority(n, d.auth)
	case KindGeocentric:
		n := keyword("GEOCCS", quoted(d.name), d.geog.datum.tree(), d.geog.pm.tree(), unitNode(d.linear))
		n.children = append(n.children, axisNodes(d.axes)...)
		return withAuthority(n, d.auth)
	case KindLocal:
		ld := keyword("LOCAL_DATUM", quoted(d.ldatum.name), bare(strconv.Itoa(d.ldatum.typ)))
		n := keyword("LOCAL_CS", quoted(d.name), withAuthority(ld, d.ldatum.auth), unitNode(d.linear))
		n.children = append(n.children, axisNodes(d.axes)...)
		return withAuthority(n, d.auth)
	case KindVertical:
		vd := keyword("VERT_DATUM", quoted(d.vdatum.name), bare(strconv.Itoa(d.vdatum.typ)))
		n := keyword("VERT_CS", quoted(d.name), withAuthority(vd, d.vdatum.auth), unitNode(d.linear))
		n.children = append(n.children, axisNodes(d.axes)...)
		n.children = append(n.children, d.extensionNodes()...)
		return withAuthority(n, d.auth)
	case KindCompound:
		n := keyword("COMPD_CS", quoted(d.name), d.head.tree(), d.tail.tree())
		return withAuthority(n, d.auth)
	}
	return nil
}

func (g *geogCS) tree() *node {
	n := keyword("GEOGCS", quoted(g.name), g.datum.tree(), g.pm.tree(), unitNode(&g.angular))
	n.children = append(n.children, axisNodes(g.axes)...)
	return withAuthority(n, g.auth)
}

func (d *datum) tree() *node {
	e := &d.ellipsoid
	sph := keyword("SPHEROID", quoted(e.name), number(e.a), number(e.invf))
	n := keyword("DATUM", quoted(d.name), withAuthority(sph, e.auth))
	if d.towgs84 != nil {
		t := keyword("TOWGS84")
		for _, v := range d.towgs84 {
			t.children = append(t.children, number(v))
		}
		n.children = append(n.children, t)
	}
	return withAuthority(n, d.auth)
}

func (pm *primeMeridian) tree() *node {
	return withAuthority(keyword("PRIMEM", quoted(pm.name), number(pm.lon)), pm.auth)
}

func unitNode(u *unit) *node {
	return withAuthority(keyword("UNIT", quoted(u.name), number(u.factor)), u.auth)
}

func axisNodes(axes []axis) []*node {
	nodes := make([]*node, len(axes))
	for i := range axes {
		nodes[i] = keyword("AXIS", quoted(axes[i].name), bare(axes[i].dir))
	}
	return nodes
}

func (d *definition) extensionNodes() []*node {
	nodes := make([]*node, len(d.extensions))
	for i, x := range d.extensions {
		nodes[i] = keyword("EXTENSION", quoted(x.name), quoted(x.value))
	}
	return nodes
}

func withAuthority(n *node, a authority) *node {
	if !a.isZero() {
		n.children = append(n.children, authorityNode(a))
	}
	return n
}

func insertBeforeAuthority(children []*node, extra ...*node) []*node {
	if len(extra) == 0 {
		return children
	}
	last := len(children) - 1
	if last >= 0 && strings.EqualFold(children[last].value, "AUTHORITY") && children[last].isKeyword() {
		auth := children[last]
		return append(append(children[:last:last], extra...), auth)
	}
	return append(children, extra...)
}

// parseDefinition builds a definition from a WKT node tree.
func parseDefinition(n *node) (*definition, error) {
	name := strings.ToUpper(n.value)
	if len(n.children) == 0 || !n.children[0].quoted {
		return nil, parseErr("%s node has no name", name)
	}
	d := &definition{name: n.children[0].value}
	var err error

	switch name {
	case "GEOGCS":
		d.kind = KindGeographic
		d.geog, err = parseGeogCS(n)
		if err != nil {
			return nil, err
		}
		d.name = d.geog.name
		d.auth = d.geog.auth
		d.extensions = parseExtensions(n)
		return d, nil
	case "PROJCS":
		d.kind = KindProjected
		err = d.parseProjected(n)
	case "GEOCCS":
		d.kind = KindGeocentric
		err = d.parseGeocentric(n)
	case "LOCAL_CS":
		d.kind = KindLocal
		err = d.parseLocal(n)
	case "VERT_CS":
		d.kind = KindVertical
		err = d.parseVertical(n)
	case "COMPD_CS":
		d.kind = KindCompound
		err = d.parseCompound(n)
	default:
		return nil, parseErr("unsupported WKT root %q", n.value)
	}
	if err != nil {
		return nil, err
	}
	d.extensions = parseExtensions(n)
	d.auth, err = parseAuthority(n)
	return d, err
}

func (d *definition) parseProjected(n *node) error {
	gn := n.child("GEOGCS")
	if gn == nil {
		return parseErr("PROJCS %q has no GEOGCS", d.name)
	}
	g, err := parseGeogCS(gn)
	if err != nil {
		return err
	}
	d.geog = g
	d.proj = &projection{}
	if pn := n.child("PROJECTION"); pn != nil && len(pn.children) > 0 {
		d.proj.method = pn.children[0].value
		if d.proj.auth, err = parseAuthority(pn); err != nil {
			return err
		}
	}
	for _, c := range n.children {
		if !c.isKeyword() || !strings.EqualFold(c.value, "PARAMETER") {
			continue
		}
		if len(c.children) < 2 {
			return parseErr("PARAMETER needs a name and a value")
		}
		v, err := parseNumber(c.children[1])
		if err != nil {
			return err
		}
		d.proj.params = append(d.proj.params, param{name: c.children[0].value, value: v})
	}
	if d.linear, err = parseUnitChild(n); err != nil {
		return err
	}
	if d.linear == nil {
		u := unitMetre
		d.linear = &u
	}
	d.axes, err = parseAxes(n)
	return err
}

func (d *definition) parseGeocentric(n *node) error {
	g := &geogCS{pm: greenwich, angular: unitDegree}
	dn := n.child("DATUM")
	if dn == nil {
		return parseErr("GEOCCS %q has no DATUM", d.name)
	}
	var err error
	if err = parseDatum(dn, &g.datum); err != nil {
		return err
	}
	if pn := n.child("PRIMEM"); pn != nil {
		if err = parsePrimeMeridian(pn, &g.pm); err != nil {
			return err
		}
	}
	d.geog = g
	if d.linear, err = parseUnitChild(n); err != nil {
		return err
	}
	if d.linear == nil {
		u := unitMetre
		d.linear = &u
	}
	d.axes, err = parseAxes(n)
	return err
}

func (d *definition) parseLocal(n *node) error {
	d.ldatum = &localDatum{}
	var err error
	if ln := n.child("LOCAL_DATUM"); ln != nil && len(ln.children) > 0 {
		d.ldatum.name = ln.children[0].value
		if len(ln.children) > 1 && !ln.children[1].isKeyword() {
			d.ldatum.typ, _ = strconv.Atoi(ln.children[1].value)
		}
		if d.ldatum.auth, err = parseAuthority(ln); err != nil {
			return err
		}
	}
	if d.linear, err = parseUnitChild(n); err != nil {
		return err
	}
	if d.linear == nil {
		u := unitMetre
		d.linear = &u
	}
	d.axes, err = parseAxes(n)
	return err
}

func (d *definition) parseVertical(n *node) error {
	d.vdatum = &vertDatum{typ: 2005}
	var err error
	if vn := n.child("VERT_DATUM"); vn != nil && len(vn.children) > 0 {
		d.vdatum.name = vn.children[0].value
		if len(vn.children) > 1 && !vn.children[1].isKeyword() {
			d.vdatum.typ, _ = strconv.Atoi(vn.children[1].value)
		}
		if d.vdatum.auth, err = parseAuthority(vn); err != nil {
			return err
		}
	}
	if d.linear, err = parseUnitChild(n); err != nil {
		return err
	}
	if d.linear == nil {
		u := unitMetre
		d.linear = &u
	}
	d.axes, err = parseAxes(n)
	return err
}

func (d *definition) parseCompound(n *node) error {
	var parts []*definition
	for _, c := range n.children[1:] {
		if !c.isKeyword() || strings.EqualFold(c.value, "AUTHORITY") {
			continue
		}
		p, err := parseDefinition(c)
		if err != nil {
			return err
		}
		parts = append(parts, p)
	}
	if len(parts) != 2 {
		return parseErr("COMPD_CS %q needs exactly two components", d.name)
	}
	d.head, d.tail = parts[0], parts[1]
	return nil
}

func parseGeogCS(n *node) (*geogCS, error) {
	if len(n.children) == 0 {
		return nil, parseErr("GEOGCS node is empty")
	}
	g := &geogCS{name: n.children[0].value, pm: greenwich, angular: unitDegree}
	dn := n.child("DATUM")
	if dn == nil {
		return nil, parseErr("GEOGCS %q has no DATUM", g.name)
	}
	var err error
	if err = parseDatum(dn, &g.datum); err != nil {
		return nil, err
	}
	if pn := n.child("PRIMEM"); pn != nil {
		if err = parsePrimeMeridian(pn, &g.pm); err != nil {
			return nil, err
		}
	}
	u, err := parseUnitChild(n)
	if err != nil {
		return nil, err
	}
	if u != nil {
		g.angular = *u
	}
	if g.axes, err = parseAxes(n); err != nil {
		return nil, err
	}
	g.auth, err = parseAuthority(n)
	return g, err
}

func parseDatum(n *node, d *datum) error {
	if len(n.children) == 0 {
		return parseErr("DATUM node is empty")
	}
	d.name = n.children[0].value
	sn := n.child("SPHEROID")
	if sn == nil {
		return parseErr("DATUM %q has no SPHEROID", d.name)
	}
	if len(sn.children) < 3 {
		return parseErr("SPHEROID needs a name, a semi-major axis and an inverse flattening")
	}
	d.ellipsoid.name = sn.children[0].value
	var err error
	if d.ellipsoid.a, err = parseNumber(sn.children[1]); err != nil {
		return err
	}
	if d.ellipsoid.invf, err = parseNumber(sn.children[2]); err != nil {
		return err
	}
	if d.ellipsoid.auth, err = parseAuthority(sn); err != nil {
		return err
	}
	if tn := n.child("TOWGS84"); tn != nil {
		d.towgs84 = make([]float64, 0, len(tn.children))
		for _, c := range tn.children {
			v, err := parseNumber(c)
			if err != nil {
				return err
			}
			d.towgs84 = append(d.towgs84, v)
		}
	}
	d.auth, err = parseAuthority(n)
	return err
}

func parsePrimeMeridian(n *node, pm *primeMeridian) error {
	if len(n.children) < 2 {
		return parseErr("PRIMEM needs a name and a longitude")
	}
	pm.name = n.children[0].value
	var err error
	if pm.lon, err = parseNumber(n.children[1]); err != nil {
		return err
	}
	pm.auth, err = parseAuthority(n)
	return err
}

func parseUnitChild(n *node) (*unit, error) {
	un := n.child("UNIT")
	if un == nil {
		return nil, nil
	}
	if len(un.children) < 2 {
		return nil, parseErr("UNIT needs a name and a factor")
	}
	f, err := parseNumber(un.children[1])
	if err != nil {
		return nil, err
	}
	u := &unit{name: un.children[0].value, factor: f}
	u.auth, err = parseAuthority(un)
	return u, err
}

func parseAxes(n *node) ([]axis, error) {
	var axes []axis
	for _, c := range n.children {
		if !c.isKeyword() || !strings.EqualFold(c.value, "AXIS") {
			continue
		}
		if len(c.children) != 2 {
			return nil, parseErr("AXIS needs a name and a direction")
		}
		axes = append(axes, axis{name: c.children[0].value, dir: strings.ToUpper(c.children[1].value)})
	}
	return axes, nil
}

func parseAuthority(n *node) (authority, error) {
	an := n.child("AUTHORITY")
	if an == nil {
		return authority{}, nil
	}
	if len(an.children) != 2 {
		return authority{}, parseErr("AUTHORITY needs a name and a code")
	}
	return authority{name: an.children[0].value, code: an.children[1].value}, nil
}

func parseExtensions(n *node) []extension {
	var ext []extension
	for _, c := range n.children {
		if c.isKeyword() && strings.EqualFold(c.value, "EXTENSION") && len(c.children) == 2 {
			ext = append(ext, extension{name: c.children[0].value, value: c.children[1].value})
		}
	}
	return ext
}

func parseNumber(n *node) (float64, error) {
	if n.isKeyword() {
		return 0, parseErr("expected a number, found %s node", n.value)
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(n.value), 64)
	if err != nil {
		return 0, parseErr("invalid number %q", n.value)
	}
	return f, nil
}
