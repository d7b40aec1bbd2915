// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package srs

import (
	"math"
	"strings"
)

// SpatialReference is a parsed coordinate reference system.
//
// A SpatialReference may be read concurrently by any number of
// goroutines, but the mutating methods (MorphToESRI, MorphFromESRI,
// AutoIdentifyEPSG and SetWellKnownGeogCS) must not run concurrently
// with any other access. Use Clone to obtain an independent copy.
type SpatialReference struct {
	def     *definition
	catalog *Catalog
}

// New returns an empty reference backed by the default catalog.
func New() *SpatialReference {
	return &SpatialReference{def: &definition{}, catalog: DefaultCatalog()}
}

func newReference(d *definition, c *Catalog) *SpatialReference {
	return &SpatialReference{def: d, catalog: c}
}

// Clone returns a deep copy of r.
func (r *SpatialReference) Clone() *SpatialReference {
	return newReference(r.def.clone(), r.catalog)
}

// CloneGeogCS returns a new geographic reference holding a copy of the
// geographic base of r. The result is empty if r has no geographic
// base.
func (r *SpatialReference) CloneGeogCS() *SpatialReference {
	h := r.def.horizontal()
	if h == nil || h.geog == nil || h.kind == KindGeocentric {
		return newReference(&definition{}, r.catalog)
	}
	d := &definition{kind: KindGeographic}
	d.geog = h.clone().geog
	d.name = d.geog.name
	d.auth = d.geog.auth
	return newReference(d, r.catalog)
}

// Kind returns the kind of the reference.
func (r *SpatialReference) Kind() Kind {
	return r.def.kind
}

// IsEmpty reports whether the reference has no definition.
func (r *SpatialReference) IsEmpty() bool {
	return r.def.kind == KindEmpty
}

// IsGeographic reports whether the root of the reference is a GEOGCS,
// or a COMPD_CS whose horizontal part is.
func (r *SpatialReference) IsGeographic() bool {
	h := r.def.horizontal()
	return h != nil && h.kind == KindGeographic
}

// IsProjected reports whether the reference, or the horizontal part of
// a compound reference, is projected.
func (r *SpatialReference) IsProjected() bool {
	h := r.def.horizontal()
	return h != nil && h.kind == KindProjected
}

// IsGeocentric reports whether the reference is geocentric.
func (r *SpatialReference) IsGeocentric() bool {
	return r.def.kind == KindGeocentric
}

// IsLocal reports whether the reference is a LOCAL_CS.
func (r *SpatialReference) IsLocal() bool {
	return r.def.kind == KindLocal
}

// IsCompound reports whether the reference is a COMPD_CS.
func (r *SpatialReference) IsCompound() bool {
	return r.def.kind == KindCompound
}

// IsVertical reports whether the reference is, or contains, a VERT_CS.
func (r *SpatialReference) IsVertical() bool {
	return r.def.vertical() != nil
}

// Name returns the name of the root node.
func (r *SpatialReference) Name() string {
	return r.def.name
}

// SemiMajor returns the semi-major axis of the ellipsoid in metres,
// or 0 if the reference has no datum.
func (r *SpatialReference) SemiMajor() float64 {
	if e := r.def.ellipsoid(); e != nil {
		return e.a
	}
	return 0
}

// SemiMinor returns the semi-minor axis of the ellipsoid in metres,
// or 0 if the reference has no datum.
func (r *SpatialReference) SemiMinor() float64 {
	if e := r.def.ellipsoid(); e != nil {
		return e.b()
	}
	return 0
}

// InvFlattening returns the inverse flattening of the ellipsoid, which
// is 0 for a sphere or a reference with no datum.
func (r *SpatialReference) InvFlattening() float64 {
	if e := r.def.ellipsoid(); e != nil {
		return e.invf
	}
	return 0
}

func (d *definition) ellipsoid() *ellipsoid {
	h := d.horizontal()
	if h == nil || h.geog == nil {
		return nil
	}
	return &h.geog.datum.ellipsoid
}

// LinearUnits returns the linear unit of the reference. References
// without one report Units{"unknown", 1}.
func (r *SpatialReference) LinearUnits() Units {
	for _, d := range []*definition{r.def.horizontal(), r.def.vertical()} {
		if d != nil && d.linear != nil {
			return Units{Name: d.linear.name, Factor: d.linear.factor}
		}
	}
	return Units{Name: "unknown", Factor: 1}
}

// AngularUnits returns the angular unit of the geographic base, or
// degrees if there is none.
func (r *SpatialReference) AngularUnits() Units {
	if h := r.def.horizontal(); h != nil && h.geog != nil && h.kind != KindGeocentric {
		return Units{Name: h.geog.angular.name, Factor: h.geog.angular.factor}
	}
	return Units{Name: unitDegree.name, Factor: unitDegree.factor}
}

// AxisOrderSwapped reports whether the first horizontal axis of the
// reference points north or south, meaning coordinates are given as
// (latitude, longitude) or (northing, easting).
func (r *SpatialReference) AxisOrderSwapped() bool {
	h := r.def.horizontal()
	if h == nil {
		return false
	}
	var axes []axis
	switch h.kind {
	case KindGeographic:
		axes = h.geog.axes
	case KindProjected:
		axes = h.axes
	}
	return len(axes) > 0 && (axes[0].dir == "NORTH" || axes[0].dir == "SOUTH")
}

// EPSGTreatsAsLatLong reports whether the reference is geographic and
// its EPSG definition orders axes latitude first.
func (r *SpatialReference) EPSGTreatsAsLatLong() bool {
	if !r.IsGeographic() {
		return false
	}
	e, ok := r.epsgEntry()
	return ok && e.LatLong
}

// EPSGTreatsAsNorthingEasting reports whether the reference is
// projected and its EPSG definition orders axes northing first.
func (r *SpatialReference) EPSGTreatsAsNorthingEasting() bool {
	if !r.IsProjected() {
		return false
	}
	e, ok := r.epsgEntry()
	return ok && e.NorthingEasting
}

func (r *SpatialReference) epsgEntry() (Entry, bool) {
	h := r.def.horizontal()
	if h == nil {
		return Entry{}, false
	}
	a := h.rootAuthority()
	if !strings.EqualFold(a.name, "EPSG") {
		return Entry{}, false
	}
	code, err := atoiStrict(a.code)
	if err != nil {
		return Entry{}, false
	}
	return r.catalogOrDefault().Entry(code)
}

func (r *SpatialReference) catalogOrDefault() *Catalog {
	if r.catalog == nil {
		return DefaultCatalog()
	}
	return r.catalog
}

// AttrValue returns the value of the i-th child of the named node. The
// name may be a "|" separated path such as "PROJCS|GEOGCS|DATUM"; an
// empty name is the root node. An empty string is returned when the
// node or child does not exist.
func (r *SpatialReference) AttrValue(name string, i int) string {
	if r.IsEmpty() {
		return ""
	}
	n := r.def.tree().path(name)
	if n == nil || i < 0 || i >= len(n.children) {
		return ""
	}
	return n.children[i].value
}

// AuthorityName returns the authority name of the named node, for
// example "EPSG". The key may be a node name or path; an empty key is
// the root node.
func (r *SpatialReference) AuthorityName(key string) string {
	return r.authorityAttr(key, 0)
}

// AuthorityCode returns the authority code of the named node, for
// example "4326".
func (r *SpatialReference) AuthorityCode(key string) string {
	return r.authorityAttr(key, 1)
}

func (r *SpatialReference) authorityAttr(key string, i int) string {
	if r.IsEmpty() {
		return ""
	}
	n := r.def.tree().path(key)
	if n == nil {
		return ""
	}
	a := n.child("AUTHORITY")
	if a == nil || len(a.children) <= i {
		return ""
	}
	return a.children[i].value
}

// IsSame reports whether r and o describe the same coordinate
// reference system. Names, authorities and axis declarations are
// ignored; numeric parameters are compared with a small tolerance.
func (r *SpatialReference) IsSame(o *SpatialReference) bool {
	return sameDefinition(r.def, o.def)
}

// IsSameGeogCS reports whether r and o have the same geographic base.
func (r *SpatialReference) IsSameGeogCS(o *SpatialReference) bool {
	a, b := r.def.horizontal(), o.def.horizontal()
	if a == nil || b == nil || a.geog == nil || b.geog == nil {
		return false
	}
	return sameGeog(a.geog, b.geog)
}

// IsSameVertCS reports whether r and o have the same vertical
// component.
func (r *SpatialReference) IsSameVertCS(o *SpatialReference) bool {
	a, b := r.def.vertical(), o.def.vertical()
	if a == nil || b == nil {
		return false
	}
	return sameDefinition(a, b)
}

func sameDefinition(a, b *definition) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindEmpty:
		return true
	case KindGeographic:
		return sameGeog(a.geog, b.geog)
	case KindProjected:
		return sameGeog(a.geog, b.geog) && sameProjection(a.proj, b.proj) && sameUnit(a.linear, b.linear)
	case KindGeocentric:
		return a.geog.datum.sameDatum(&b.geog.datum) &&
			nearlyEqual(a.geog.pm.lon, b.geog.pm.lon, 1e-10) &&
			sameUnit(a.linear, b.linear)
	case KindLocal:
		return strings.EqualFold(a.ldatum.name, b.ldatum.name) && sameUnit(a.linear, b.linear)
	case KindVertical:
		return strings.EqualFold(a.vdatum.name, b.vdatum.name) && sameUnit(a.linear, b.linear)
	case KindCompound:
		return sameDefinition(a.head, b.head) && sameDefinition(a.tail, b.tail)
	}
	return false
}

func sameGeog(a, b *geogCS) bool {
	return a.datum.sameDatum(&b.datum) &&
		nearlyEqual(a.pm.lon, b.pm.lon, 1e-10) &&
		nearlyEqual(a.angular.factor, b.angular.factor, 1e-12)
}

func sameUnit(a, b *unit) bool {
	fa, fb := 1.0, 1.0
	if a != nil {
		fa = a.factor
	}
	if b != nil {
		fb = b.factor
	}
	return nearlyEqual(fa, fb, 1e-12)
}

func sameProjection(a, b *projection) bool {
	if !strings.EqualFold(a.method, b.method) {
		return false
	}
	m := findMethod(a.method)
	names := make(map[string]float64)
	for _, p := range a.params {
		names[strings.ToLower(p.name)] = 0
	}
	for _, p := range b.params {
		names[strings.ToLower(p.name)] = 0
	}
	for name := range names {
		def := 0.0
		if m != nil {
			if mp := m.param(name); mp != nil {
				def = mp.def
			}
		}
		if !nearlyEqual(a.get(name, def), b.get(name, def), 1e-10) {
			return false
		}
	}
	return true
}

// rootAuthority returns the authority of the root node.
func (d *definition) rootAuthority() authority {
	if d.kind == KindGeographic && d.geog != nil {
		return d.geog.auth
	}
	return d.auth
}

func (d *definition) setAuthority(a authority) {
	d.auth = a
	if d.kind == KindGeographic && d.geog != nil {
		d.geog.auth = a
	}
}

func (d *definition) setName(name string) {
	d.name = name
	if d.kind == KindGeographic && d.geog != nil {
		d.geog.name = name
	}
}

// WKT returns the reference as single line OGC WKT. An empty reference
// yields the empty string.
func (r *SpatialReference) WKT() string {
	if r.IsEmpty() {
		return ""
	}
	return r.def.tree().String()
}

// String returns the WKT of the reference.
func (r *SpatialReference) String() string {
	return r.WKT()
}

// PrettyWKT returns multi-line WKT indented with four spaces per
// level. If simplify is true AXIS, EXTENSION and all non-root
// AUTHORITY nodes are omitted.
func (r *SpatialReference) PrettyWKT(simplify bool) string {
	if r.IsEmpty() {
		return ""
	}
	n := r.def.tree()
	if simplify {
		var rootAuth *node
		if a := n.child("AUTHORITY"); a != nil {
			rootAuth = a
		}
		n.strip("AXIS", "EXTENSION", "AUTHORITY")
		if rootAuth != nil {
			n.children = append(n.children, rootAuth)
		}
	}
	return n.pretty()
}

// Proj4 returns the reference as a Proj4 string. An error wrapping
// ErrUnsupported is returned if the reference kind or projection
// method has no Proj4 form.
func (r *SpatialReference) Proj4() (string, error) {
	return r.def.proj4()
}

// normalizeLongitude wraps a longitude in radians to [-pi, pi]. Values
// within rounding of +/-pi are left alone so that 180 degrees stays
// east.
func normalizeLongitude(lam float64) float64 {
	const eps = 1e-12
	if lam >= -math.Pi-eps && lam <= math.Pi+eps {
		return lam
	}
	lam = math.Mod(lam+math.Pi, 2*math.Pi)
	if lam < 0 {
		lam += 2 * math.Pi
	}
	return lam - math.Pi
}
