// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

import (
	"math"

	"github.com/gogama/geokit/srs"
)

// Coord is a single coordinate. Z is ignored, and kept at zero, in a
// two-dimensional geometry.
type Coord struct {
	X, Y, Z float64
}

func (c Coord) equal2D(o Coord) bool {
	return c.X == o.X && c.Y == o.Y
}

func hasZ(coords []Coord) bool {
	for i := range coords {
		if coords[i].Z != 0 {
			return true
		}
	}
	return false
}

// Geometry is a vector shape: a point, curve, surface, or collection of
// those. The shape is selected by its Type; Point, LineString and
// LinearRing geometries hold coordinates directly, while Polygon and
// collection geometries hold parts. A Polygon's parts are its rings,
// exterior first.
//
// Every coordinate of a geometry and its parts has the same dimension.
// Adding a coordinate with a non-zero Z value, or a three-dimensional
// part, promotes the whole geometry to three dimensions.
//
// A Geometry may be read from many goroutines at once, but it must not
// be modified while any other goroutine is using it. Use Clone to get
// an independent copy.
type Geometry struct {
	typ    Type
	is3D   bool
	coords []Coord
	parts  []*Geometry
	ref    *srs.SpatialReference
}

// Create returns an empty geometry of the given type. If the type has
// the 25D bit set, the geometry is three-dimensional. Panics if the
// type is not a geometry type.
func Create(t Type) *Geometry {
	switch t.Flatten() {
	case Point, LineString, Polygon, MultiPoint, MultiLineString, MultiPolygon, GeometryCollection, LinearRing:
		return &Geometry{typ: t.Flatten(), is3D: t.Is25D()}
	default:
		fmtPanic("cannot create geometry of type %s", t)
		return nil
	}
}

// NewPoint returns a two-dimensional point.
func NewPoint(x, y float64) *Geometry {
	return &Geometry{typ: Point, coords: []Coord{{X: x, Y: y}}}
}

// NewPointZ returns a three-dimensional point.
func NewPointZ(x, y, z float64) *Geometry {
	return &Geometry{typ: Point, is3D: true, coords: []Coord{{X: x, Y: y, Z: z}}}
}

// NewLineString returns a line string through the given coordinates.
// The line string is three-dimensional if any coordinate has a
// non-zero Z value.
func NewLineString(coords ...Coord) *Geometry {
	return newCurve(LineString, coords)
}

// NewLinearRing returns a linear ring through the given coordinates.
// The ring is not closed automatically; see CloseRings.
func NewLinearRing(coords ...Coord) *Geometry {
	return newCurve(LinearRing, coords)
}

func newCurve(t Type, coords []Coord) *Geometry {
	c := append([]Coord(nil), coords...)
	return &Geometry{typ: t, is3D: hasZ(c), coords: c}
}

// NewPolygon returns a polygon whose rings have the given coordinates.
// The first ring is the exterior ring.
func NewPolygon(rings ...[]Coord) *Geometry {
	g := &Geometry{typ: Polygon}
	for _, r := range rings {
		ring := NewLinearRing(r...)
		g.is3D = g.is3D || ring.is3D
		g.parts = append(g.parts, ring)
	}
	g.setDim(g.is3D)
	return g
}

// NewCollection returns a geometry of collection type t holding copies
// of the given parts. Type t may also be Polygon, in which case the
// parts must be rings. Returns an error wrapping ErrGeometryOperation
// if t cannot hold one of the parts.
func NewCollection(t Type, parts ...*Geometry) (*Geometry, error) {
	if !t.isCollection() && t.Flatten() != Polygon {
		return nil, kindErr(ErrGeometryOperation, "%s is not a collection type", t)
	}
	g := Create(t)
	for i, p := range parts {
		if err := g.AddGeometry(p); err != nil {
			return nil, wrapErr("part %d", err, i)
		}
	}
	return g, nil
}

// Clone returns a deep copy of the geometry. The copy shares the
// spatial reference.
func (g *Geometry) Clone() *Geometry {
	h := &Geometry{
		typ:  g.typ,
		is3D: g.is3D,
		ref:  g.ref,
	}
	if g.coords != nil {
		h.coords = append([]Coord(nil), g.coords...)
	}
	if g.parts != nil {
		h.parts = make([]*Geometry, len(g.parts))
		for i, p := range g.parts {
			h.parts[i] = p.Clone()
		}
	}
	return h
}

// Type returns the geometry type without the 25D bit.
func (g *Geometry) Type() Type {
	return g.typ
}

// WKBType returns the geometry type, with the 25D bit set if the
// geometry is three-dimensional.
func (g *Geometry) WKBType() Type {
	if g.is3D {
		return g.typ | Wkb25DBit
	}
	return g.typ
}

// Name returns the upper case name of the geometry type, for example
// "MULTIPOLYGON".
func (g *Geometry) Name() string {
	return g.typ.name()
}

// Dimension returns the topological dimension: 0 for points, 1 for
// curves, 2 for surfaces. The dimension of a collection is the highest
// dimension of its parts, and 0 if it has none.
func (g *Geometry) Dimension() int {
	if g.typ != GeometryCollection {
		return g.typ.dimension()
	}
	d := 0
	for _, p := range g.parts {
		if e := p.Dimension(); e > d {
			d = e
		}
	}
	return d
}

// CoordinateDimension returns 2 or 3.
func (g *Geometry) CoordinateDimension() int {
	if g.is3D {
		return 3
	}
	return 2
}

// SetCoordinateDimension changes the coordinate dimension to 2 or 3.
// Reducing the dimension discards Z values; increasing it sets them to
// zero.
func (g *Geometry) SetCoordinateDimension(d int) {
	if d != 2 && d != 3 {
		fmtPanic("invalid coordinate dimension %d", d)
	}
	g.setDim(d == 3)
}

// FlattenTo2D discards Z values, making the geometry two-dimensional.
func (g *Geometry) FlattenTo2D() {
	g.setDim(false)
}

func (g *Geometry) setDim(is3D bool) {
	g.is3D = is3D
	if !is3D {
		for i := range g.coords {
			g.coords[i].Z = 0
		}
	}
	for _, p := range g.parts {
		p.setDim(is3D)
	}
}

// SRS returns the spatial reference assigned to the geometry, or nil.
func (g *Geometry) SRS() *srs.SpatialReference {
	return g.ref
}

// AssignSRS sets the spatial reference of the geometry and its parts
// without changing any coordinate. Use Transform or TransformTo to
// reproject.
func (g *Geometry) AssignSRS(r *srs.SpatialReference) {
	g.ref = r
	for _, p := range g.parts {
		p.AssignSRS(r)
	}
}

// IsEmpty reports whether the geometry has no coordinates.
func (g *Geometry) IsEmpty() bool {
	if len(g.coords) > 0 {
		return false
	}
	for _, p := range g.parts {
		if !p.IsEmpty() {
			return false
		}
	}
	return true
}

// Empty removes every coordinate and part, leaving an empty geometry of
// the same type.
func (g *Geometry) Empty() {
	g.coords = nil
	g.parts = nil
}

// NumPoints returns the number of coordinates of a point or curve, and
// zero for other types.
func (g *Geometry) NumPoints() int {
	return len(g.coords)
}

// Point returns the i-th coordinate of a point or curve. Panics if i is
// out of range.
func (g *Geometry) Point(i int) Coord {
	if i < 0 || i >= len(g.coords) {
		fmtPanic("point index %d out of range [0, %d)", i, len(g.coords))
	}
	return g.coords[i]
}

// SetPoint replaces the i-th coordinate of a point or curve, appending
// it if i equals NumPoints. A point can hold only one coordinate.
func (g *Geometry) SetPoint(i int, c Coord) {
	g.mustHoldCoords()
	n := len(g.coords)
	if i < 0 || i > n || (g.typ == Point && i > 0) {
		fmtPanic("point index %d out of range [0, %d]", i, n)
	}
	if i == n {
		g.coords = append(g.coords, c)
	} else {
		g.coords[i] = c
	}
	g.promoteFor(c)
}

// AddPoint appends a coordinate to a curve, or sets the coordinate of
// a point.
func (g *Geometry) AddPoint(c Coord) {
	g.mustHoldCoords()
	if g.typ == Point {
		g.coords = append(g.coords[:0], c)
	} else {
		g.coords = append(g.coords, c)
	}
	g.promoteFor(c)
}

func (g *Geometry) mustHoldCoords() {
	if g.typ != Point && !g.typ.isCurve() {
		fmtPanic("%s has no points of its own", g.Name())
	}
}

func (g *Geometry) promoteFor(c Coord) {
	if c.Z != 0 && !g.is3D {
		g.setDim(true)
	}
}

// X returns the X coordinate of a point, or zero if it is empty.
func (g *Geometry) X() float64 {
	return g.point().X
}

// Y returns the Y coordinate of a point, or zero if it is empty.
func (g *Geometry) Y() float64 {
	return g.point().Y
}

// Z returns the Z coordinate of a point, or zero if it is empty.
func (g *Geometry) Z() float64 {
	return g.point().Z
}

func (g *Geometry) point() Coord {
	if g.typ != Point {
		fmtPanic("%s is not a POINT", g.Name())
	}
	if len(g.coords) == 0 {
		return Coord{}
	}
	return g.coords[0]
}

// NumGeometries returns the number of parts of a collection, or the
// number of rings of a polygon. It is zero for other types.
func (g *Geometry) NumGeometries() int {
	return len(g.parts)
}

// Geometry returns the i-th part of a collection or ring of a polygon.
// The part is shared with g, not copied. Panics if i is out of range.
func (g *Geometry) Geometry(i int) *Geometry {
	if i < 0 || i >= len(g.parts) {
		fmtPanic("geometry index %d out of range [0, %d)", i, len(g.parts))
	}
	return g.parts[i]
}

// ExteriorRing returns the exterior ring of a polygon, or nil if the
// polygon is empty.
func (g *Geometry) ExteriorRing() *Geometry {
	if g.typ != Polygon {
		fmtPanic("%s is not a POLYGON", g.Name())
	}
	if len(g.parts) == 0 {
		return nil
	}
	return g.parts[0]
}

// NumInteriorRings returns the number of holes of a polygon.
func (g *Geometry) NumInteriorRings() int {
	if g.typ != Polygon {
		fmtPanic("%s is not a POLYGON", g.Name())
	}
	if len(g.parts) == 0 {
		return 0
	}
	return len(g.parts) - 1
}

// InteriorRing returns the i-th hole of a polygon.
func (g *Geometry) InteriorRing(i int) *Geometry {
	if i < 0 || i >= g.NumInteriorRings() {
		fmtPanic("interior ring index %d out of range [0, %d)", i, g.NumInteriorRings())
	}
	return g.parts[i+1]
}

// AddGeometry appends a copy of p to a collection, or a ring to a
// polygon. A Multi* collection accepts only its member type and a
// polygon only rings. Returns an error wrapping ErrGeometryOperation if
// g cannot hold p.
func (g *Geometry) AddGeometry(p *Geometry) error {
	if p == nil {
		textPanic("nil geometry")
	}
	part := p.Clone()
	switch g.typ {
	case Polygon:
		if !p.typ.isCurve() {
			return kindErr(ErrGeometryOperation, "a POLYGON cannot hold a %s", p.Name())
		}
		part.typ = LinearRing
	case MultiPoint, MultiLineString, MultiPolygon:
		if p.typ != g.typ.memberType() {
			return kindErr(ErrGeometryOperation, "a %s cannot hold a %s", g.Name(), p.Name())
		}
	case GeometryCollection:
		if p.typ == LinearRing {
			return kindErr(ErrGeometryOperation, "a GEOMETRYCOLLECTION cannot hold a LINEARRING")
		}
	default:
		return kindErr(ErrGeometryOperation, "a %s has no parts", g.Name())
	}
	if part.is3D && !g.is3D {
		g.setDim(true)
	} else if g.is3D && !part.is3D {
		part.setDim(true)
	}
	part.AssignSRS(g.ref)
	g.parts = append(g.parts, part)
	return nil
}

// WKBSize returns the size in bytes of the ISO Well-Known Binary
// encoding of the geometry.
func (g *Geometry) WKBSize() int {
	n := 5
	dim := g.CoordinateDimension()
	switch g.typ {
	case Point:
		n += 8 * dim
	case LineString, LinearRing:
		n += 4 + 8*dim*len(g.coords)
	case Polygon:
		n += 4
		for _, r := range g.parts {
			n += 4 + 8*dim*len(r.coords)
		}
	default:
		n += 4
		for _, p := range g.parts {
			n += p.WKBSize()
		}
	}
	return n
}

// EqualsExact reports whether g and o have the same type, dimension and
// structure, and every pair of corresponding coordinates differs by no
// more than tolerance on each axis.
func (g *Geometry) EqualsExact(o *Geometry, tolerance float64) bool {
	if g.typ != o.typ || g.is3D != o.is3D || len(g.coords) != len(o.coords) || len(g.parts) != len(o.parts) {
		return false
	}
	for i := range g.coords {
		a, b := g.coords[i], o.coords[i]
		if !near(a.X, b.X, tolerance) || !near(a.Y, b.Y, tolerance) || !near(a.Z, b.Z, tolerance) {
			return false
		}
	}
	for i := range g.parts {
		if !g.parts[i].EqualsExact(o.parts[i], tolerance) {
			return false
		}
	}
	return true
}

func near(a, b, tolerance float64) bool {
	return a == b || math.Abs(a-b) <= tolerance || (math.IsNaN(a) && math.IsNaN(b))
}

// eachCoord calls f with a pointer to every coordinate of the geometry
// and its parts, in storage order.
func (g *Geometry) eachCoord(f func(c *Coord)) {
	for i := range g.coords {
		f(&g.coords[i])
	}
	for _, p := range g.parts {
		p.eachCoord(f)
	}
}

// SwapXY exchanges the X and Y value of every coordinate.
func (g *Geometry) SwapXY() {
	g.eachCoord(func(c *Coord) {
		c.X, c.Y = c.Y, c.X
	})
}

// CloseRings appends the first coordinate to every ring whose last
// coordinate differs from its first.
func (g *Geometry) CloseRings() {
	if g.typ == LinearRing {
		n := len(g.coords)
		if n > 0 && g.coords[0] != g.coords[n-1] {
			g.coords = append(g.coords, g.coords[0])
		}
		return
	}
	for _, p := range g.parts {
		p.CloseRings()
	}
}
