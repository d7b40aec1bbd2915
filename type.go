// Copyright 2023 The geokit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package geokit

// Type is a geometry type code as used in the OGC Well-Known Binary
// encoding. The high bit, Wkb25DBit, marks a type whose coordinates
// carry a Z value.
type Type uint32

const (
	Unknown            Type = 0
	Point              Type = 1
	LineString         Type = 2
	Polygon            Type = 3
	MultiPoint         Type = 4
	MultiLineString    Type = 5
	MultiPolygon       Type = 6
	GeometryCollection Type = 7
	None               Type = 100
	LinearRing         Type = 101

	// Wkb25DBit is set on the type code of a geometry with Z values.
	Wkb25DBit Type = 0x80000000

	Point25D              = Point | Wkb25DBit
	LineString25D         = LineString | Wkb25DBit
	Polygon25D            = Polygon | Wkb25DBit
	MultiPoint25D         = MultiPoint | Wkb25DBit
	MultiLineString25D    = MultiLineString | Wkb25DBit
	MultiPolygon25D       = MultiPolygon | Wkb25DBit
	GeometryCollection25D = GeometryCollection | Wkb25DBit
	LinearRing25D         = LinearRing | Wkb25DBit
)

// Flatten returns the type with the 25D bit cleared.
func (t Type) Flatten() Type {
	return t &^ Wkb25DBit
}

// Is25D reports whether the 25D bit is set.
func (t Type) Is25D() bool {
	return t&Wkb25DBit != 0
}

func (t Type) isCollection() bool {
	switch t.Flatten() {
	case MultiPoint, MultiLineString, MultiPolygon, GeometryCollection:
		return true
	default:
		return false
	}
}

func (t Type) isCurve() bool {
	f := t.Flatten()
	return f == LineString || f == LinearRing
}

// memberType returns the type a Multi* collection accepts as a member,
// or Unknown for a GeometryCollection which accepts anything.
func (t Type) memberType() Type {
	switch t.Flatten() {
	case MultiPoint:
		return Point
	case MultiLineString:
		return LineString
	case MultiPolygon:
		return Polygon
	default:
		return Unknown
	}
}

// dimension returns the topological dimension of a non-empty geometry
// of the type: 0 for points, 1 for curves and 2 for surfaces.
func (t Type) dimension() int {
	switch t.Flatten() {
	case Point, MultiPoint:
		return 0
	case LineString, LinearRing, MultiLineString:
		return 1
	case Polygon, MultiPolygon:
		return 2
	default:
		return -1
	}
}

// name returns the upper case geometry name, as in WKT.
func (t Type) name() string {
	switch t.Flatten() {
	case Point:
		return "POINT"
	case LineString:
		return "LINESTRING"
	case Polygon:
		return "POLYGON"
	case MultiPoint:
		return "MULTIPOINT"
	case MultiLineString:
		return "MULTILINESTRING"
	case MultiPolygon:
		return "MULTIPOLYGON"
	case GeometryCollection:
		return "GEOMETRYCOLLECTION"
	case LinearRing:
		return "LINEARRING"
	case None:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}
